package tracker

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	apperrs "routinely/internal/errors"
	"routinely/internal/models"
	"routinely/internal/storage/sqlite"
)

// Tuesday.
var testNow = time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)

func setupStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "routinely.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedRoutineWithHabit(t *testing.T, store *sqlite.Store, weekdays models.WeekdaySet) (models.Routine, models.Habit) {
	t.Helper()
	routine := models.Routine{
		ID:        uuid.New().String(),
		OwnerID:   "local",
		Name:      "Routine " + uuid.New().String()[:8],
		Active:    true,
		Weekdays:  weekdays,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	if err := store.CreateRoutine(routine); err != nil {
		t.Fatalf("CreateRoutine() failed: %v", err)
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		RoutineID:   routine.ID,
		Name:        "Meditate",
		Category:    models.CategorySpirituality,
		Block:       models.BlockMorning,
		DurationMin: 15,
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	}
	if err := store.CreateHabit(habit); err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}
	return routine, habit
}

func TestToggleEvent(t *testing.T) {
	store := setupStore(t)
	routine, habit := seedRoutineWithHabit(t, store, models.AllWeekdays())

	event := models.CalendarEvent{
		ID:        uuid.New().String(),
		OwnerID:   routine.OwnerID,
		RoutineID: routine.ID,
		HabitID:   habit.ID,
		EventDate: "2026-09-01",
		StartTime: "07:00",
		EndTime:   "07:15",
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	if _, err := store.InsertEvents([]models.CalendarEvent{event}); err != nil {
		t.Fatalf("InsertEvents() failed: %v", err)
	}

	tracker := New(store)
	if err := tracker.ToggleEvent(event.ID, true, testNow); err != nil {
		t.Fatalf("ToggleEvent(true) failed: %v", err)
	}
	got, err := store.GetEvent(event.ID)
	if err != nil {
		t.Fatalf("GetEvent() failed: %v", err)
	}
	if !got.Completed {
		t.Error("event not completed after toggle on")
	}

	// done -> pending is allowed too.
	if err := tracker.ToggleEvent(event.ID, false, testNow); err != nil {
		t.Fatalf("ToggleEvent(false) failed: %v", err)
	}
	got, err = store.GetEvent(event.ID)
	if err != nil {
		t.Fatalf("GetEvent() failed: %v", err)
	}
	if got.Completed {
		t.Error("event still completed after toggle off")
	}
}

func TestToggleEventNotFound(t *testing.T) {
	store := setupStore(t)

	err := New(store).ToggleEvent("no-such-event", true, testNow)
	if !apperrs.IsNotFound(err) {
		t.Errorf("ToggleEvent() error = %v, want not-found error", err)
	}
}

func TestCompleteHabitTodayInsertsCompletedEvent(t *testing.T) {
	store := setupStore(t)
	_, habit := seedRoutineWithHabit(t, store, models.AllWeekdays())

	if err := New(store).CompleteHabitToday("local", habit.ID, testNow); err != nil {
		t.Fatalf("CompleteHabitToday() failed: %v", err)
	}

	events, err := store.GetEventsForDate("local", "2026-09-01")
	if err != nil {
		t.Fatalf("GetEventsForDate() failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if !events[0].Completed {
		t.Error("lazily materialized event not marked completed")
	}
	if events[0].StartTime != "07:00" || events[0].EndTime != "07:15" {
		t.Errorf("event times = %s-%s, want 07:00-07:15", events[0].StartTime, events[0].EndTime)
	}
}

func TestCompleteHabitTodayCompletesExistingPendingEvent(t *testing.T) {
	store := setupStore(t)
	routine, habit := seedRoutineWithHabit(t, store, models.AllWeekdays())

	// The daemon already materialized today's event as pending.
	pending := models.CalendarEvent{
		ID:        uuid.New().String(),
		OwnerID:   "local",
		RoutineID: routine.ID,
		HabitID:   habit.ID,
		EventDate: "2026-09-01",
		StartTime: "07:00",
		EndTime:   "07:15",
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	if _, err := store.InsertEvents([]models.CalendarEvent{pending}); err != nil {
		t.Fatalf("InsertEvents() failed: %v", err)
	}

	if err := New(store).CompleteHabitToday("local", habit.ID, testNow); err != nil {
		t.Fatalf("CompleteHabitToday() failed: %v", err)
	}

	events, err := store.GetEventsForDate("local", "2026-09-01")
	if err != nil {
		t.Fatalf("GetEventsForDate() failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].ID != pending.ID {
		t.Errorf("completion created event %s, want the existing %s", events[0].ID, pending.ID)
	}
	if !events[0].Completed {
		t.Error("existing pending event not marked completed")
	}
}

func TestCompleteHabitTodayOffScheduleIsNoOp(t *testing.T) {
	store := setupStore(t)
	// Monday-only routine; testNow is a Tuesday.
	_, habit := seedRoutineWithHabit(t, store, models.WeekdaySet{time.Monday})

	if err := New(store).CompleteHabitToday("local", habit.ID, testNow); err != nil {
		t.Fatalf("CompleteHabitToday() failed: %v", err)
	}

	events, err := store.GetEventsForDate("local", "2026-09-01")
	if err != nil {
		t.Fatalf("GetEventsForDate() failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0 (silent no-op)", len(events))
	}
}

func TestCompleteHabitTodayUnknownHabit(t *testing.T) {
	store := setupStore(t)

	err := New(store).CompleteHabitToday("local", "no-such-habit", testNow)
	if !apperrs.IsNotFound(err) {
		t.Errorf("CompleteHabitToday() error = %v, want not-found error", err)
	}
}

func TestEventsForDateDeduplicatesByHabit(t *testing.T) {
	store := setupStore(t)
	routine, habit := seedRoutineWithHabit(t, store, models.AllWeekdays())

	// The unique index covers (routine, habit, date), so a duplicate row for
	// the same habit can still appear under a different routine id, e.g.
	// after the habit was re-attached. The read path collapses these.
	first := models.CalendarEvent{
		ID:        uuid.New().String(),
		OwnerID:   "local",
		RoutineID: routine.ID,
		HabitID:   habit.ID,
		EventDate: "2026-09-01",
		StartTime: "07:00",
		EndTime:   "07:15",
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	shadow := first
	shadow.ID = uuid.New().String()
	shadow.RoutineID = uuid.New().String()
	shadow.StartTime = "08:00"
	shadow.EndTime = "08:15"

	if _, err := store.InsertEvents([]models.CalendarEvent{first, shadow}); err != nil {
		t.Fatalf("InsertEvents() failed: %v", err)
	}

	events, err := New(store).EventsForDate("local", "2026-09-01")
	if err != nil {
		t.Fatalf("EventsForDate() failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 after dedup", len(events))
	}
	if events[0].StartTime != "07:00" {
		t.Errorf("dedup kept event starting %s, want the earliest (07:00)", events[0].StartTime)
	}
}
