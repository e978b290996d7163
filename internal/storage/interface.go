package storage

import (
	"time"

	"routinely/internal/models"
)

// Provider is the persistence boundary for routines, habits, calendar events
// and the read-only template catalog. Both the SQLite and Postgres backends
// implement it.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Routines
	CreateRoutine(models.Routine) error
	GetRoutine(id string) (models.Routine, error)
	GetRoutineByName(ownerID, name string) (models.Routine, error)
	GetAllRoutines(ownerID string) ([]models.Routine, error)
	// GetActiveRoutines returns active routines across all owners. Used by
	// the watch daemon's daily refresh.
	GetActiveRoutines() ([]models.Routine, error)
	// ListRoutinesWithHabits returns an owner's routines with their habits
	// sorted by position. Implementations fetch habits in a single batched
	// query, not one query per routine.
	ListRoutinesWithHabits(ownerID string) ([]models.RoutineWithHabits, error)
	UpdateRoutine(models.Routine) error
	// DeleteRoutine removes the routine, its habits, and its pending
	// future events. Completed or past-dated events are retained for
	// historical stats.
	DeleteRoutine(id, today string) error

	// Habits
	CreateHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitsForRoutine(routineID string) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// DeleteHabit removes the habit and its pending future events, keeping
	// completed or past-dated events.
	DeleteHabit(id, today string) error
	// ReorderHabits rewrites position order to match orderedIDs, dense
	// from 0, stamping updated_at from the caller-supplied now.
	ReorderHabits(routineID string, orderedIDs []string, now time.Time) error

	// Calendar events
	// InsertEvents bulk-inserts with insert-or-ignore semantics against
	// the (routine, habit, date) unique index and returns how many rows
	// were actually inserted.
	InsertEvents(events []models.CalendarEvent) (int, error)
	GetEvent(id string) (models.CalendarEvent, error)
	GetEventsForDate(ownerID, date string) ([]models.CalendarEvent, error)
	// GetEventsForRoutineFrom returns the routine's events with
	// event_date >= fromDate. This is the materializer's idempotency probe.
	GetEventsForRoutineFrom(routineID, fromDate string) ([]models.CalendarEvent, error)
	UpdateEvent(models.CalendarEvent) error
	DeleteEvent(id string) error

	// Habit templates (read-only catalog)
	GetAllTemplates() ([]models.HabitTemplate, error)
	GetTemplate(id string) (models.HabitTemplate, error)
	GetTemplateByName(name string) (models.HabitTemplate, error)

	// Utils
	GetConfigPath() string
}
