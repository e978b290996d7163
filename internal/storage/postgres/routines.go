package postgres

import (
	"database/sql"
	"time"

	apperrs "routinely/internal/errors"
	"routinely/internal/models"
	"routinely/internal/validation"
)

func (s *Store) CreateRoutine(routine models.Routine) error {
	if err := validation.ValidateRoutine(routine); err != nil {
		return err
	}

	weekdays, err := marshalWeekdays(routine.Weekdays)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO routines (id, owner_id, name, description, active, weekdays, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		routine.ID, routine.OwnerID, routine.Name, routine.Description, routine.Active,
		weekdays, routine.CreatedAt.Format(time.RFC3339), routine.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return apperrs.Persistencef("create routine", err)
	}
	return nil
}

func (s *Store) GetRoutine(id string) (models.Routine, error) {
	row := s.db.QueryRow(`
		SELECT id, owner_id, name, description, active, weekdays, created_at, updated_at
		FROM routines WHERE id = $1`, id)

	routine, err := scanRoutine(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Routine{}, apperrs.NotFoundf("routine %s", id)
		}
		return models.Routine{}, err
	}
	return routine, nil
}

func (s *Store) GetRoutineByName(ownerID, name string) (models.Routine, error) {
	row := s.db.QueryRow(`
		SELECT id, owner_id, name, description, active, weekdays, created_at, updated_at
		FROM routines WHERE owner_id = $1 AND name = $2`, ownerID, name)

	routine, err := scanRoutine(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Routine{}, apperrs.NotFoundf("routine %q", name)
		}
		return models.Routine{}, err
	}
	return routine, nil
}

func (s *Store) GetAllRoutines(ownerID string) ([]models.Routine, error) {
	return s.queryRoutines(`
		SELECT id, owner_id, name, description, active, weekdays, created_at, updated_at
		FROM routines WHERE owner_id = $1 ORDER BY created_at`, ownerID)
}

func (s *Store) GetActiveRoutines() ([]models.Routine, error) {
	return s.queryRoutines(`
		SELECT id, owner_id, name, description, active, weekdays, created_at, updated_at
		FROM routines WHERE active ORDER BY created_at`)
}

func (s *Store) queryRoutines(query string, args ...interface{}) ([]models.Routine, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, apperrs.Persistencef("query routines", err)
	}
	defer rows.Close()

	var routines []models.Routine
	for rows.Next() {
		routine, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, routine)
	}
	return routines, rows.Err()
}

func (s *Store) ListRoutinesWithHabits(ownerID string) ([]models.RoutineWithHabits, error) {
	routines, err := s.GetAllRoutines(ownerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT h.id, h.routine_id, h.name, h.description, h.category, h.block,
		       h.duration_min, h.position, h.optional, h.custom, h.icon, h.created_at, h.updated_at
		FROM habits h
		JOIN routines r ON r.id = h.routine_id
		WHERE r.owner_id = $1
		ORDER BY h.routine_id, h.position`, ownerID)
	if err != nil {
		return nil, apperrs.Persistencef("query habits", err)
	}
	defer rows.Close()

	byRoutine := make(map[string][]models.Habit)
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		byRoutine[habit.RoutineID] = append(byRoutine[habit.RoutineID], habit)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrs.Persistencef("query habits", err)
	}

	out := make([]models.RoutineWithHabits, 0, len(routines))
	for _, routine := range routines {
		out = append(out, models.RoutineWithHabits{
			Routine: routine,
			Habits:  byRoutine[routine.ID],
		})
	}
	return out, nil
}

func (s *Store) UpdateRoutine(routine models.Routine) error {
	if err := validation.ValidateRoutine(routine); err != nil {
		return err
	}

	weekdays, err := marshalWeekdays(routine.Weekdays)
	if err != nil {
		return err
	}

	result, err := s.db.Exec(`
		UPDATE routines SET name = $1, description = $2, active = $3, weekdays = $4, updated_at = $5
		WHERE id = $6`,
		routine.Name, routine.Description, routine.Active, weekdays,
		routine.UpdatedAt.Format(time.RFC3339), routine.ID)
	if err != nil {
		return apperrs.Persistencef("update routine", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrs.NotFoundf("routine %s", routine.ID)
	}
	return nil
}

func (s *Store) DeleteRoutine(id, today string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return apperrs.Persistencef("delete routine", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habits WHERE routine_id = $1", id); err != nil {
		return apperrs.Persistencef("delete routine habits", err)
	}

	result, err := tx.Exec("DELETE FROM routines WHERE id = $1", id)
	if err != nil {
		return apperrs.Persistencef("delete routine", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrs.NotFoundf("routine %s", id)
	}

	if _, err := tx.Exec(
		"DELETE FROM calendar_events WHERE routine_id = $1 AND event_date >= $2 AND NOT completed",
		id, today); err != nil {
		return apperrs.Persistencef("delete routine events", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrs.Persistencef("delete routine", err)
	}
	return nil
}

func scanRoutine(row rowScanner) (models.Routine, error) {
	var r models.Routine
	var weekdays, createdAt, updatedAt string

	err := row.Scan(&r.ID, &r.OwnerID, &r.Name, &r.Description, &r.Active, &weekdays, &createdAt, &updatedAt)
	if err != nil {
		return models.Routine{}, err
	}

	r.Weekdays, err = unmarshalWeekdays(weekdays)
	if err != nil {
		return models.Routine{}, err
	}
	r.CreatedAt, err = parseTimestamp(createdAt, "created_at")
	if err != nil {
		return models.Routine{}, err
	}
	r.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at")
	if err != nil {
		return models.Routine{}, err
	}

	return r, nil
}
