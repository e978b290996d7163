// Package tracker records habit completion against materialized calendar
// events.
package tracker

import (
	"time"

	"routinely/internal/constants"
	apperrs "routinely/internal/errors"
	"routinely/internal/logger"
	"routinely/internal/materializer"
	"routinely/internal/models"
	"routinely/internal/storage"
)

type Tracker struct {
	store storage.Provider
}

func New(store storage.Provider) *Tracker {
	return &Tracker{store: store}
}

// ToggleEvent sets the completion flag on an existing event. Both directions
// are allowed so an accidental check-off can be undone.
func (t *Tracker) ToggleEvent(eventID string, completed bool, now time.Time) error {
	event, err := t.store.GetEvent(eventID)
	if err != nil {
		return err
	}

	event.Completed = completed
	event.UpdatedAt = now
	return t.store.UpdateEvent(event)
}

// CompleteHabitToday records a completion for a habit whose occurrence today
// has not been materialized yet, inserting the event already marked done.
// When today's event turns out to exist after all, it is toggled to completed
// instead. If today's weekday is outside the parent routine's set this is a
// silent no-op: the habit simply was not scheduled today.
func (t *Tracker) CompleteHabitToday(ownerID, habitID string, now time.Time) error {
	habit, err := t.store.GetHabit(habitID)
	if err != nil {
		return err
	}

	routine, err := t.store.GetRoutine(habit.RoutineID)
	if err != nil {
		return err
	}

	if !routine.Weekdays.Contains(now.Weekday()) {
		logger.Debug("habit not scheduled today, skipping completion",
			"habit", habitID, "routine", routine.ID, "weekday", now.Weekday())
		return nil
	}

	event := materializer.BuildEvent(routine, habit, now.Format(constants.DateFormat), now)
	event.OwnerID = ownerID
	event.Completed = true

	inserted, err := t.store.InsertEvents([]models.CalendarEvent{event})
	if err != nil {
		return err
	}
	if inserted == 0 {
		// Today's event was already materialized as pending, e.g. by the
		// watch daemon between the caller's lookup and this insert. Complete
		// the existing row instead of dropping the completion.
		return t.completeExisting(habit, now)
	}
	return nil
}

func (t *Tracker) completeExisting(habit models.Habit, now time.Time) error {
	today := now.Format(constants.DateFormat)
	events, err := t.store.GetEventsForRoutineFrom(habit.RoutineID, today)
	if err != nil {
		return err
	}
	for _, event := range events {
		if event.HabitID == habit.ID && event.EventDate == today {
			return t.ToggleEvent(event.ID, true, now)
		}
	}
	return apperrs.NotFoundf("event for habit %s on %s", habit.ID, today)
}

// EventsForDate returns an owner's events for one date, keeping only the
// first event per habit. Duplicates can exist when a habit was re-attached to
// a routine under a different id; the earliest-starting event wins.
func (t *Tracker) EventsForDate(ownerID, date string) ([]models.CalendarEvent, error) {
	events, err := t.store.GetEventsForDate(ownerID, date)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(events))
	out := make([]models.CalendarEvent, 0, len(events))
	for _, event := range events {
		if seen[event.HabitID] {
			continue
		}
		seen[event.HabitID] = true
		out = append(out, event)
	}
	return out, nil
}
