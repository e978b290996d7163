// Package materializer expands active routines into concrete calendar events
// over a rolling forward-looking window.
package materializer

import (
	"time"

	"github.com/google/uuid"

	"routinely/internal/constants"
	"routinely/internal/logger"
	"routinely/internal/models"
	"routinely/internal/storage"
)

type Materializer struct {
	store storage.Provider
}

func New(store storage.Provider) *Materializer {
	return &Materializer{store: store}
}

// Materialize expands the routine into calendar events for the next
// MaterializeWindowDays days, counting today. If the routine already has any
// event dated today or later the call is a no-op, so re-activating a routine
// never doubles its schedule. Returns the number of events inserted.
func (m *Materializer) Materialize(routineID string, now time.Time) (int, error) {
	today := now.Format(constants.DateFormat)

	existing, err := m.store.GetEventsForRoutineFrom(routineID, today)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		logger.Debug("routine already materialized, skipping", "routine", routineID, "events", len(existing))
		return 0, nil
	}

	return m.Extend(routineID, now)
}

// Extend inserts the routine's events for the current window without the
// already-materialized guard. The storage layer ignores conflicting
// (routine, habit, date) rows, so days that already have events gain nothing
// and only genuinely new days are filled in. The watch daemon uses this to
// roll the window forward each morning.
func (m *Materializer) Extend(routineID string, now time.Time) (int, error) {
	routine, err := m.store.GetRoutine(routineID)
	if err != nil {
		return 0, err
	}

	habits, err := m.store.GetHabitsForRoutine(routineID)
	if err != nil {
		return 0, err
	}
	if len(habits) == 0 {
		logger.Debug("routine has no habits, nothing to materialize", "routine", routineID)
		return 0, nil
	}

	var events []models.CalendarEvent
	for offset := 0; offset < constants.MaterializeWindowDays; offset++ {
		day := now.AddDate(0, 0, offset)
		if !routine.Weekdays.Contains(day.Weekday()) {
			continue
		}
		date := day.Format(constants.DateFormat)
		for _, habit := range habits {
			events = append(events, BuildEvent(routine, habit, date, now))
		}
	}
	if len(events) == 0 {
		return 0, nil
	}

	inserted, err := m.store.InsertEvents(events)
	if err != nil {
		return 0, err
	}
	logger.Debug("materialized routine", "routine", routineID, "inserted", inserted)
	return inserted, nil
}

// MaterializeDay inserts the routine's events for a single calendar date.
// Dates whose weekday is outside the routine's set produce nothing.
func (m *Materializer) MaterializeDay(routineID, date string, now time.Time) (int, error) {
	day, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return 0, err
	}

	routine, err := m.store.GetRoutine(routineID)
	if err != nil {
		return 0, err
	}
	if !routine.Weekdays.Contains(day.Weekday()) {
		return 0, nil
	}

	habits, err := m.store.GetHabitsForRoutine(routineID)
	if err != nil {
		return 0, err
	}

	events := make([]models.CalendarEvent, 0, len(habits))
	for _, habit := range habits {
		events = append(events, BuildEvent(routine, habit, date, now))
	}
	if len(events) == 0 {
		return 0, nil
	}
	return m.store.InsertEvents(events)
}

// BuildEvent derives one calendar event for a habit on a date. The start time
// is the habit's time-block default; the end time adds the estimated duration,
// clamped so it never rolls past midnight into the next date.
func BuildEvent(routine models.Routine, habit models.Habit, date string, now time.Time) models.CalendarEvent {
	start := habit.Block.DefaultStart()
	return models.CalendarEvent{
		ID:        uuid.NewString(),
		OwnerID:   routine.OwnerID,
		RoutineID: routine.ID,
		HabitID:   habit.ID,
		EventDate: date,
		StartTime: start,
		EndTime:   EndTime(start, habit.DurationMin),
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EndTime adds durationMin minutes to an HH:MM start time, clamping at the end
// of the day.
func EndTime(start string, durationMin int) string {
	t, err := time.Parse(constants.TimeFormat, start)
	if err != nil {
		return constants.EndOfDay
	}
	end := t.Add(time.Duration(durationMin) * time.Minute)
	if end.Day() != t.Day() {
		return constants.EndOfDay
	}
	return end.Format(constants.TimeFormat)
}
