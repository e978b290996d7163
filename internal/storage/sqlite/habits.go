package sqlite

import (
	"database/sql"
	"time"

	apperrs "routinely/internal/errors"
	"routinely/internal/models"
	"routinely/internal/validation"
)

func (s *Store) CreateHabit(habit models.Habit) error {
	if err := validation.ValidateHabit(habit); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (id, routine_id, name, description, category, block,
		                    duration_min, position, optional, custom, icon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.RoutineID, habit.Name, habit.Description, habit.Category, habit.Block,
		habit.DurationMin, habit.Position, habit.Optional, habit.Custom, habit.Icon,
		habit.CreatedAt.Format(time.RFC3339), habit.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return apperrs.Persistencef("create habit", err)
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, routine_id, name, description, category, block,
		       duration_min, position, optional, custom, icon, created_at, updated_at
		FROM habits WHERE id = ?`, id)

	habit, err := scanHabit(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Habit{}, apperrs.NotFoundf("habit %s", id)
		}
		return models.Habit{}, err
	}
	return habit, nil
}

func (s *Store) GetHabitsForRoutine(routineID string) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, routine_id, name, description, category, block,
		       duration_min, position, optional, custom, icon, created_at, updated_at
		FROM habits WHERE routine_id = ? ORDER BY position`, routineID)
	if err != nil {
		return nil, apperrs.Persistencef("query habits", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	if err := validation.ValidateHabit(habit); err != nil {
		return err
	}

	result, err := s.db.Exec(`
		UPDATE habits SET name = ?, description = ?, category = ?, block = ?,
		       duration_min = ?, position = ?, optional = ?, custom = ?, icon = ?, updated_at = ?
		WHERE id = ?`,
		habit.Name, habit.Description, habit.Category, habit.Block,
		habit.DurationMin, habit.Position, habit.Optional, habit.Custom, habit.Icon,
		habit.UpdatedAt.Format(time.RFC3339), habit.ID)
	if err != nil {
		return apperrs.Persistencef("update habit", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrs.NotFoundf("habit %s", habit.ID)
	}
	return nil
}

// DeleteHabit removes the habit and its pending future events, then
// re-densifies position order for the surviving habits of the routine.
func (s *Store) DeleteHabit(id, today string) error {
	habit, err := s.GetHabit(id)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return apperrs.Persistencef("delete habit", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habits WHERE id = ?", id); err != nil {
		return apperrs.Persistencef("delete habit", err)
	}

	if _, err := tx.Exec(
		"DELETE FROM calendar_events WHERE habit_id = ? AND event_date >= ? AND completed = 0",
		id, today); err != nil {
		return apperrs.Persistencef("delete habit events", err)
	}

	// Close the position gap so the order stays dense.
	if _, err := tx.Exec(
		"UPDATE habits SET position = position - 1 WHERE routine_id = ? AND position > ?",
		habit.RoutineID, habit.Position); err != nil {
		return apperrs.Persistencef("reorder habits", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrs.Persistencef("delete habit", err)
	}
	return nil
}

// ReorderHabits rewrites position order to match orderedIDs, dense from 0.
// Every habit of the routine must appear in orderedIDs exactly once.
func (s *Store) ReorderHabits(routineID string, orderedIDs []string, now time.Time) error {
	habits, err := s.GetHabitsForRoutine(routineID)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(habits) {
		return apperrs.Validationf("reorder needs all %d habits of the routine, got %d ids", len(habits), len(orderedIDs))
	}

	known := make(map[string]bool, len(habits))
	for _, h := range habits {
		known[h.ID] = true
	}
	for _, id := range orderedIDs {
		if !known[id] {
			return apperrs.NotFoundf("habit %s in routine %s", id, routineID)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return apperrs.Persistencef("reorder habits", err)
	}
	defer tx.Rollback()

	stamp := now.UTC().Format(time.RFC3339)
	for position, id := range orderedIDs {
		if _, err := tx.Exec(
			"UPDATE habits SET position = ?, updated_at = ? WHERE id = ?",
			position, stamp, id); err != nil {
			return apperrs.Persistencef("reorder habits", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrs.Persistencef("reorder habits", err)
	}
	return nil
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var category, block, createdAt, updatedAt string

	err := row.Scan(&h.ID, &h.RoutineID, &h.Name, &h.Description, &category, &block,
		&h.DurationMin, &h.Position, &h.Optional, &h.Custom, &h.Icon, &createdAt, &updatedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Category = models.Category(category)
	h.Block = models.TimeBlock(block)
	h.CreatedAt, err = parseTimestamp(createdAt, "created_at")
	if err != nil {
		return models.Habit{}, err
	}
	h.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at")
	if err != nil {
		return models.Habit{}, err
	}

	return h, nil
}
