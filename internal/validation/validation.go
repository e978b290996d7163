package validation

import (
	"strings"
	"time"

	"routinely/internal/constants"
	apperrs "routinely/internal/errors"
	"routinely/internal/models"
)

// ValidateRoutine checks routine fields before they reach the store.
// Name must be non-empty after trimming; the weekday set must not be empty
// and must contain only valid weekdays.
func ValidateRoutine(r models.Routine) error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrs.Validationf("routine name must not be empty")
	}
	if r.OwnerID == "" {
		return apperrs.Validationf("routine owner must not be empty")
	}
	if len(r.Weekdays) == 0 {
		return apperrs.Validationf("routine %q must recur on at least one weekday", r.Name)
	}
	for _, wd := range r.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return apperrs.Validationf("routine %q has invalid weekday %d", r.Name, int(wd))
		}
	}
	return nil
}

// ValidateHabit checks habit fields before they reach the store.
func ValidateHabit(h models.Habit) error {
	if strings.TrimSpace(h.Name) == "" {
		return apperrs.Validationf("habit name must not be empty")
	}
	if h.RoutineID == "" {
		return apperrs.Validationf("habit %q must belong to a routine", h.Name)
	}
	if !h.Category.Valid() {
		return apperrs.Validationf("habit %q has unknown category %q", h.Name, string(h.Category))
	}
	if !h.Block.Valid() {
		return apperrs.Validationf("habit %q has unknown time block %q", h.Name, string(h.Block))
	}
	if h.DurationMin <= 0 {
		return apperrs.Validationf("habit %q must have a positive duration, got %d", h.Name, h.DurationMin)
	}
	if h.Position < 0 {
		return apperrs.Validationf("habit %q has negative position %d", h.Name, h.Position)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(date string) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return apperrs.Validationf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return nil
}
