package system

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"routinely/internal/cli"
	"routinely/internal/models"
	"routinely/internal/storage/sqlite"
)

// Tuesday.
var doctorNow = time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)

func setupDoctorContext(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "routinely.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{
		Store: store,
		Owner: "local",
		Now:   func() time.Time { return doctorNow },
	}, store
}

// orphanEvent builds an event referencing a habit that does not exist;
// calendar_events carries no foreign key, so the insert succeeds.
func orphanEvent(date string, completed bool) models.CalendarEvent {
	return models.CalendarEvent{
		ID:        uuid.New().String(),
		OwnerID:   "local",
		RoutineID: uuid.New().String(),
		HabitID:   uuid.New().String(),
		EventDate: date,
		StartTime: "07:00",
		EndTime:   "07:15",
		Completed: completed,
		CreatedAt: doctorNow,
		UpdatedAt: doctorNow,
	}
}

func TestCheckEventIntegrity(t *testing.T) {
	ctx, store := setupDoctorContext(t)

	// Completed and past-dated orphans are retained history, not defects.
	if _, err := store.InsertEvents([]models.CalendarEvent{
		orphanEvent("2026-08-30", false),
		orphanEvent("2026-09-03", true),
	}); err != nil {
		t.Fatalf("InsertEvents() failed: %v", err)
	}
	if err := checkEventIntegrity(ctx); err != nil {
		t.Errorf("checkEventIntegrity() flagged retained history: %v", err)
	}

	// A pending future orphan indicates a failed cascade.
	if _, err := store.InsertEvents([]models.CalendarEvent{orphanEvent("2026-09-03", false)}); err != nil {
		t.Fatalf("InsertEvents() failed: %v", err)
	}
	if err := checkEventIntegrity(ctx); err == nil {
		t.Error("checkEventIntegrity() missed a pending future orphan")
	}
}
