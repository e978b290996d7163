package sqlite

import (
	"database/sql"
	"time"

	apperrs "routinely/internal/errors"
	"routinely/internal/models"
)

// InsertEvents bulk-inserts calendar events inside a single transaction.
// Rows that collide with the (routine, habit, date) unique index are ignored,
// so concurrent or repeated materialization cannot create duplicates. Returns
// the number of rows actually inserted.
func (s *Store) InsertEvents(events []models.CalendarEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, apperrs.Persistencef("insert events", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO calendar_events
			(id, owner_id, routine_id, habit_id, event_date, start_time, end_time, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, apperrs.Persistencef("insert events", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, e := range events {
		result, err := stmt.Exec(
			e.ID, e.OwnerID, e.RoutineID, e.HabitID, e.EventDate, e.StartTime, e.EndTime,
			e.Completed, e.CreatedAt.Format(time.RFC3339), e.UpdatedAt.Format(time.RFC3339))
		if err != nil {
			return 0, apperrs.Persistencef("insert events", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrs.Persistencef("insert events", err)
	}
	return inserted, nil
}

func (s *Store) GetEvent(id string) (models.CalendarEvent, error) {
	row := s.db.QueryRow(`
		SELECT id, owner_id, routine_id, habit_id, event_date, start_time, end_time, completed, created_at, updated_at
		FROM calendar_events WHERE id = ?`, id)

	event, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.CalendarEvent{}, apperrs.NotFoundf("calendar event %s", id)
		}
		return models.CalendarEvent{}, err
	}
	return event, nil
}

func (s *Store) GetEventsForDate(ownerID, date string) ([]models.CalendarEvent, error) {
	return s.queryEvents(`
		SELECT id, owner_id, routine_id, habit_id, event_date, start_time, end_time, completed, created_at, updated_at
		FROM calendar_events WHERE owner_id = ? AND event_date = ?
		ORDER BY start_time, created_at`, ownerID, date)
}

func (s *Store) GetEventsForRoutineFrom(routineID, fromDate string) ([]models.CalendarEvent, error) {
	return s.queryEvents(`
		SELECT id, owner_id, routine_id, habit_id, event_date, start_time, end_time, completed, created_at, updated_at
		FROM calendar_events WHERE routine_id = ? AND event_date >= ?
		ORDER BY event_date, start_time`, routineID, fromDate)
}

func (s *Store) queryEvents(query string, args ...interface{}) ([]models.CalendarEvent, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, apperrs.Persistencef("query events", err)
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (s *Store) UpdateEvent(event models.CalendarEvent) error {
	result, err := s.db.Exec(`
		UPDATE calendar_events SET completed = ?, start_time = ?, end_time = ?, updated_at = ?
		WHERE id = ?`,
		event.Completed, event.StartTime, event.EndTime,
		event.UpdatedAt.Format(time.RFC3339), event.ID)
	if err != nil {
		return apperrs.Persistencef("update event", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrs.NotFoundf("calendar event %s", event.ID)
	}
	return nil
}

func (s *Store) DeleteEvent(id string) error {
	result, err := s.db.Exec("DELETE FROM calendar_events WHERE id = ?", id)
	if err != nil {
		return apperrs.Persistencef("delete event", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrs.NotFoundf("calendar event %s", id)
	}
	return nil
}

func scanEvent(row rowScanner) (models.CalendarEvent, error) {
	var e models.CalendarEvent
	var createdAt, updatedAt string

	err := row.Scan(&e.ID, &e.OwnerID, &e.RoutineID, &e.HabitID, &e.EventDate,
		&e.StartTime, &e.EndTime, &e.Completed, &createdAt, &updatedAt)
	if err != nil {
		return models.CalendarEvent{}, err
	}

	e.CreatedAt, err = parseTimestamp(createdAt, "created_at")
	if err != nil {
		return models.CalendarEvent{}, err
	}
	e.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at")
	if err != nil {
		return models.CalendarEvent{}, err
	}

	return e, nil
}
