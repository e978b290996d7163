package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	apperrs "routinely/internal/errors"
	"routinely/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "routinely.db")
	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRoutine(name string, weekdays models.WeekdaySet) models.Routine {
	now := time.Now().UTC()
	return models.Routine{
		ID:        uuid.New().String(),
		OwnerID:   "local",
		Name:      name,
		Active:    false,
		Weekdays:  weekdays,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testHabit(routineID, name string, position int) models.Habit {
	now := time.Now().UTC()
	return models.Habit{
		ID:          uuid.New().String(),
		RoutineID:   routineID,
		Name:        name,
		Category:    models.CategoryFitness,
		Block:       models.BlockMorning,
		DurationMin: 15,
		Position:    position,
		Custom:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func testEvent(routine models.Routine, habitID, date string, completed bool) models.CalendarEvent {
	now := time.Now().UTC()
	return models.CalendarEvent{
		ID:        uuid.New().String(),
		OwnerID:   routine.OwnerID,
		RoutineID: routine.ID,
		HabitID:   habitID,
		EventDate: date,
		StartTime: "07:00",
		EndTime:   "07:15",
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRoutineRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	routine := testRoutine("Morning routine", models.WeekdaySet{time.Monday, time.Wednesday, time.Friday})
	routine.Description = "weekday mornings"
	if err := store.CreateRoutine(routine); err != nil {
		t.Fatalf("CreateRoutine() failed: %v", err)
	}

	got, err := store.GetRoutine(routine.ID)
	if err != nil {
		t.Fatalf("GetRoutine() failed: %v", err)
	}
	if got.Name != routine.Name || got.Description != routine.Description {
		t.Errorf("GetRoutine() = %+v, want name %q description %q", got, routine.Name, routine.Description)
	}
	if len(got.Weekdays) != 3 || !got.Weekdays.Contains(time.Wednesday) {
		t.Errorf("GetRoutine() weekdays = %v, want {Mon, Wed, Fri}", got.Weekdays)
	}

	byName, err := store.GetRoutineByName("local", "Morning routine")
	if err != nil {
		t.Fatalf("GetRoutineByName() failed: %v", err)
	}
	if byName.ID != routine.ID {
		t.Errorf("GetRoutineByName() id = %q, want %q", byName.ID, routine.ID)
	}
}

func TestCreateRoutineValidation(t *testing.T) {
	store := setupTestStore(t)

	tests := []struct {
		name    string
		routine models.Routine
	}{
		{"empty name", testRoutine("", models.AllWeekdays())},
		{"whitespace name", testRoutine("   ", models.AllWeekdays())},
		{"empty weekday set", testRoutine("No days", models.WeekdaySet{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.CreateRoutine(tt.routine)
			if err == nil {
				t.Fatal("CreateRoutine() succeeded, want validation error")
			}
			if !apperrs.IsValidation(err) {
				t.Errorf("CreateRoutine() error = %v, want validation error", err)
			}
		})
	}
}

func TestGetRoutineNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetRoutine("no-such-id")
	if !apperrs.IsNotFound(err) {
		t.Errorf("GetRoutine() error = %v, want not-found error", err)
	}
}

func TestDeleteRoutineCascade(t *testing.T) {
	store := setupTestStore(t)

	routine := testRoutine("Evening routine", models.AllWeekdays())
	if err := store.CreateRoutine(routine); err != nil {
		t.Fatalf("CreateRoutine() failed: %v", err)
	}
	habit := testHabit(routine.ID, "Read", 0)
	if err := store.CreateHabit(habit); err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}

	// One completed past event, one pending future event.
	past := testEvent(routine, habit.ID, "2026-08-30", true)
	future := testEvent(routine, habit.ID, "2026-09-03", false)
	if _, err := store.InsertEvents([]models.CalendarEvent{past, future}); err != nil {
		t.Fatalf("InsertEvents() failed: %v", err)
	}

	if err := store.DeleteRoutine(routine.ID, "2026-09-01"); err != nil {
		t.Fatalf("DeleteRoutine() failed: %v", err)
	}

	if _, err := store.GetRoutine(routine.ID); !apperrs.IsNotFound(err) {
		t.Errorf("routine still present after delete, error = %v", err)
	}
	if _, err := store.GetHabit(habit.ID); !apperrs.IsNotFound(err) {
		t.Errorf("habit still present after delete, error = %v", err)
	}
	if _, err := store.GetEvent(future.ID); !apperrs.IsNotFound(err) {
		t.Errorf("pending future event still present after delete, error = %v", err)
	}
	if _, err := store.GetEvent(past.ID); err != nil {
		t.Errorf("completed past event should be retained, got error = %v", err)
	}
}

func TestDeleteHabitCascade(t *testing.T) {
	store := setupTestStore(t)

	routine := testRoutine("Routine", models.AllWeekdays())
	if err := store.CreateRoutine(routine); err != nil {
		t.Fatalf("CreateRoutine() failed: %v", err)
	}
	habit := testHabit(routine.ID, "Stretch", 0)
	if err := store.CreateHabit(habit); err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}

	past := testEvent(routine, habit.ID, "2026-08-30", true)
	future := testEvent(routine, habit.ID, "2026-09-03", false)
	if _, err := store.InsertEvents([]models.CalendarEvent{past, future}); err != nil {
		t.Fatalf("InsertEvents() failed: %v", err)
	}

	if err := store.DeleteHabit(habit.ID, "2026-09-01"); err != nil {
		t.Fatalf("DeleteHabit() failed: %v", err)
	}

	if _, err := store.GetHabit(habit.ID); !apperrs.IsNotFound(err) {
		t.Errorf("habit still present after delete, error = %v", err)
	}
	if _, err := store.GetEvent(future.ID); !apperrs.IsNotFound(err) {
		t.Errorf("pending future event still present after delete, error = %v", err)
	}
	if _, err := store.GetEvent(past.ID); err != nil {
		t.Errorf("completed past event should be retained, got error = %v", err)
	}
}

func TestDeleteHabitClosesPositionGap(t *testing.T) {
	store := setupTestStore(t)

	routine := testRoutine("Routine", models.AllWeekdays())
	if err := store.CreateRoutine(routine); err != nil {
		t.Fatalf("CreateRoutine() failed: %v", err)
	}

	names := []string{"First", "Second", "Third"}
	habits := make([]models.Habit, len(names))
	for i, name := range names {
		habits[i] = testHabit(routine.ID, name, i)
		if err := store.CreateHabit(habits[i]); err != nil {
			t.Fatalf("CreateHabit(%s) failed: %v", name, err)
		}
	}

	if err := store.DeleteHabit(habits[1].ID, "2026-09-01"); err != nil {
		t.Fatalf("DeleteHabit() failed: %v", err)
	}

	remaining, err := store.GetHabitsForRoutine(routine.ID)
	if err != nil {
		t.Fatalf("GetHabitsForRoutine() failed: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("got %d habits, want 2", len(remaining))
	}
	for i, habit := range remaining {
		if habit.Position != i {
			t.Errorf("habit %q position = %d, want %d", habit.Name, habit.Position, i)
		}
	}
	if remaining[0].Name != "First" || remaining[1].Name != "Third" {
		t.Errorf("remaining order = %q, %q; want First, Third", remaining[0].Name, remaining[1].Name)
	}
}

func TestReorderHabits(t *testing.T) {
	store := setupTestStore(t)

	routine := testRoutine("Routine", models.AllWeekdays())
	if err := store.CreateRoutine(routine); err != nil {
		t.Fatalf("CreateRoutine() failed: %v", err)
	}

	a := testHabit(routine.ID, "A", 0)
	b := testHabit(routine.ID, "B", 1)
	c := testHabit(routine.ID, "C", 2)
	for _, habit := range []models.Habit{a, b, c} {
		if err := store.CreateHabit(habit); err != nil {
			t.Fatalf("CreateHabit() failed: %v", err)
		}
	}

	reorderedAt := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	if err := store.ReorderHabits(routine.ID, []string{c.ID, a.ID, b.ID}, reorderedAt); err != nil {
		t.Fatalf("ReorderHabits() failed: %v", err)
	}

	habits, err := store.GetHabitsForRoutine(routine.ID)
	if err != nil {
		t.Fatalf("GetHabitsForRoutine() failed: %v", err)
	}
	gotOrder := []string{habits[0].Name, habits[1].Name, habits[2].Name}
	wantOrder := []string{"C", "A", "B"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Errorf("order = %v, want %v", gotOrder, wantOrder)
			break
		}
	}
	for _, habit := range habits {
		if !habit.UpdatedAt.Equal(reorderedAt) {
			t.Errorf("habit %q updated_at = %v, want %v", habit.Name, habit.UpdatedAt, reorderedAt)
		}
	}

	// Partial id lists are rejected.
	if err := store.ReorderHabits(routine.ID, []string{a.ID}, reorderedAt); !apperrs.IsValidation(err) {
		t.Errorf("ReorderHabits() with partial ids error = %v, want validation error", err)
	}
}

func TestInsertEventsIgnoresDuplicates(t *testing.T) {
	store := setupTestStore(t)

	routine := testRoutine("Routine", models.AllWeekdays())
	if err := store.CreateRoutine(routine); err != nil {
		t.Fatalf("CreateRoutine() failed: %v", err)
	}
	habit := testHabit(routine.ID, "Habit", 0)
	if err := store.CreateHabit(habit); err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}

	event := testEvent(routine, habit.ID, "2026-09-02", false)
	inserted, err := store.InsertEvents([]models.CalendarEvent{event})
	if err != nil {
		t.Fatalf("InsertEvents() failed: %v", err)
	}
	if inserted != 1 {
		t.Errorf("first insert = %d rows, want 1", inserted)
	}

	// Same (routine, habit, date) under a fresh id is silently ignored.
	dup := testEvent(routine, habit.ID, "2026-09-02", false)
	inserted, err = store.InsertEvents([]models.CalendarEvent{dup})
	if err != nil {
		t.Fatalf("InsertEvents() duplicate failed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("duplicate insert = %d rows, want 0", inserted)
	}

	events, err := store.GetEventsForRoutineFrom(routine.ID, "2026-09-01")
	if err != nil {
		t.Fatalf("GetEventsForRoutineFrom() failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("got %d events, want 1", len(events))
	}
}

func TestListRoutinesWithHabits(t *testing.T) {
	store := setupTestStore(t)

	first := testRoutine("First", models.AllWeekdays())
	second := testRoutine("Second", models.Weekdays())
	for _, routine := range []models.Routine{first, second} {
		if err := store.CreateRoutine(routine); err != nil {
			t.Fatalf("CreateRoutine() failed: %v", err)
		}
	}
	if err := store.CreateHabit(testHabit(first.ID, "H1", 0)); err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}
	if err := store.CreateHabit(testHabit(first.ID, "H2", 1)); err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}

	listing, err := store.ListRoutinesWithHabits("local")
	if err != nil {
		t.Fatalf("ListRoutinesWithHabits() failed: %v", err)
	}
	if len(listing) != 2 {
		t.Fatalf("got %d routines, want 2", len(listing))
	}

	byName := make(map[string]models.RoutineWithHabits)
	for _, entry := range listing {
		byName[entry.Routine.Name] = entry
	}
	if len(byName["First"].Habits) != 2 {
		t.Errorf("routine First has %d habits, want 2", len(byName["First"].Habits))
	}
	if byName["First"].Habits[0].Name != "H1" {
		t.Errorf("habits not sorted by position: first = %q", byName["First"].Habits[0].Name)
	}
	if len(byName["Second"].Habits) != 0 {
		t.Errorf("routine Second has %d habits, want 0", len(byName["Second"].Habits))
	}
}

func TestTemplateCatalogSeeded(t *testing.T) {
	store := setupTestStore(t)

	templates, err := store.GetAllTemplates()
	if err != nil {
		t.Fatalf("GetAllTemplates() failed: %v", err)
	}
	if len(templates) == 0 {
		t.Fatal("template catalog is empty after migrations")
	}

	tmpl, err := store.GetTemplateByName("Meditation")
	if err != nil {
		t.Fatalf("GetTemplateByName() failed: %v", err)
	}
	if tmpl.Category != models.CategorySpirituality || tmpl.Block != models.BlockMorning {
		t.Errorf("Meditation template = %+v, want spirituality/morning", tmpl)
	}
}

func TestUpdateEventToggle(t *testing.T) {
	store := setupTestStore(t)

	routine := testRoutine("Routine", models.AllWeekdays())
	if err := store.CreateRoutine(routine); err != nil {
		t.Fatalf("CreateRoutine() failed: %v", err)
	}
	habit := testHabit(routine.ID, "Habit", 0)
	if err := store.CreateHabit(habit); err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}
	event := testEvent(routine, habit.ID, "2026-09-02", false)
	if _, err := store.InsertEvents([]models.CalendarEvent{event}); err != nil {
		t.Fatalf("InsertEvents() failed: %v", err)
	}

	event.Completed = true
	event.UpdatedAt = time.Now().UTC()
	if err := store.UpdateEvent(event); err != nil {
		t.Fatalf("UpdateEvent() failed: %v", err)
	}

	got, err := store.GetEvent(event.ID)
	if err != nil {
		t.Fatalf("GetEvent() failed: %v", err)
	}
	if !got.Completed {
		t.Error("event not marked completed after update")
	}

	missing := event
	missing.ID = "no-such-event"
	if err := store.UpdateEvent(missing); !apperrs.IsNotFound(err) {
		t.Errorf("UpdateEvent() on missing id error = %v, want not-found error", err)
	}
}
