package models

import (
	"testing"
	"time"
)

func TestWeekdaySetContains(t *testing.T) {
	set := WeekdaySet{time.Monday, time.Wednesday, time.Friday}

	if !set.Contains(time.Wednesday) {
		t.Error("Contains(Wednesday) = false, want true")
	}
	if set.Contains(time.Sunday) {
		t.Error("Contains(Sunday) = true, want false")
	}
}

func TestWeekdaySetNormalize(t *testing.T) {
	set := WeekdaySet{time.Friday, time.Monday, time.Friday, time.Monday}
	normalized := set.Normalize()

	if len(normalized) != 2 {
		t.Fatalf("Normalize() length = %d, want 2", len(normalized))
	}
	if normalized[0] != time.Monday || normalized[1] != time.Friday {
		t.Errorf("Normalize() = %v, want [Monday Friday]", normalized)
	}
}

func TestWeekdaySetShorthands(t *testing.T) {
	if len(AllWeekdays()) != 7 {
		t.Errorf("AllWeekdays() length = %d, want 7", len(AllWeekdays()))
	}
	if !Weekdays().IsWeekdayOnly() {
		t.Error("Weekdays().IsWeekdayOnly() = false, want true")
	}
	if !Weekend().IsWeekendOnly() {
		t.Error("Weekend().IsWeekendOnly() = false, want true")
	}
	if AllWeekdays().IsWeekdayOnly() {
		t.Error("AllWeekdays().IsWeekdayOnly() = true, want false")
	}
}

func TestTimeBlockDefaultStart(t *testing.T) {
	tests := []struct {
		block TimeBlock
		want  string
	}{
		{BlockMorning, "07:00"},
		{BlockForenoon, "09:00"},
		{BlockNoon, "12:00"},
		{BlockAfternoon, "15:00"},
		{BlockEvening, "19:00"},
	}

	for _, tt := range tests {
		if got := tt.block.DefaultStart(); got != tt.want {
			t.Errorf("%s.DefaultStart() = %q, want %q", tt.block, got, tt.want)
		}
	}
}

func TestCategoryValid(t *testing.T) {
	if !CategoryFitness.Valid() {
		t.Error("CategoryFitness.Valid() = false, want true")
	}
	if Category("gardening").Valid() {
		t.Error(`Category("gardening").Valid() = true, want false`)
	}
}

func TestHabitFromTemplateIsIndependent(t *testing.T) {
	now := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	tmpl := HabitTemplate{
		ID:          "tpl-meditation",
		Name:        "Meditation",
		Description: "Quiet sitting practice",
		Category:    CategorySpirituality,
		Block:       BlockMorning,
		DurationMin: 15,
		Popular:     true,
	}

	habit := HabitFromTemplate(tmpl, "habit-1", "routine-1", 3, now)

	if habit.Name != tmpl.Name || habit.Category != tmpl.Category || habit.DurationMin != tmpl.DurationMin {
		t.Errorf("HabitFromTemplate() did not copy template fields: %+v", habit)
	}
	if habit.RoutineID != "routine-1" || habit.Position != 3 {
		t.Errorf("HabitFromTemplate() routine/position = %q/%d, want routine-1/3", habit.RoutineID, habit.Position)
	}
	if habit.Custom {
		t.Error("template-derived habit should not be marked custom")
	}

	// Mutating the habit must not touch the template; the copy holds no
	// reference back to the catalog.
	habit.Name = "Renamed"
	habit.DurationMin = 90
	if tmpl.Name != "Meditation" || tmpl.DurationMin != 15 {
		t.Errorf("template mutated through habit copy: %+v", tmpl)
	}
}
