package models

import (
	"sort"
	"time"
)

// WeekdaySet is the set of weekdays a routine recurs on. Stored as a JSON
// array of time.Weekday values (0=Sunday, 6=Saturday).
type WeekdaySet []time.Weekday

// AllWeekdays returns a set covering every day of the week, the default for a
// new routine.
func AllWeekdays() WeekdaySet {
	return WeekdaySet{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
}

// Weekdays returns the Monday-through-Friday set.
func Weekdays() WeekdaySet {
	return WeekdaySet{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
}

// Weekend returns the Saturday/Sunday set.
func Weekend() WeekdaySet {
	return WeekdaySet{time.Sunday, time.Saturday}
}

// Contains reports whether wd is a member of the set.
func (s WeekdaySet) Contains(wd time.Weekday) bool {
	for _, d := range s {
		if d == wd {
			return true
		}
	}
	return false
}

// Normalize returns the set sorted with duplicates removed.
func (s WeekdaySet) Normalize() WeekdaySet {
	seen := make(map[time.Weekday]bool)
	var out WeekdaySet
	for _, d := range s {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsWeekendOnly reports whether the set is exactly {Saturday, Sunday}.
func (s WeekdaySet) IsWeekendOnly() bool {
	return s.equals(Weekend())
}

// IsWeekdayOnly reports whether the set is exactly Monday through Friday.
func (s WeekdaySet) IsWeekdayOnly() bool {
	return s.equals(Weekdays())
}

func (s WeekdaySet) equals(other WeekdaySet) bool {
	a := s.Normalize()
	b := other.Normalize()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Routine is a named bundle of habits repeated on a weekly recurrence.
// A routine exclusively owns its habits: deleting the routine deletes them.
type Routine struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Active      bool       `json:"active"`
	Weekdays    WeekdaySet `json:"weekdays"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RoutineWithHabits pairs a routine with its habits sorted by position order.
type RoutineWithHabits struct {
	Routine Routine `json:"routine"`
	Habits  []Habit `json:"habits"`
}
