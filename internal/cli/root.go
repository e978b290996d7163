package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"routinely/internal/constants"
	"routinely/internal/models"
	"routinely/internal/storage"
)

type Context struct {
	Store storage.Provider
	Owner string
	Now   func() time.Time
}

// Today returns the current date in YYYY-MM-DD format.
func (c *Context) Today() string {
	return c.Now().Format(constants.DateFormat)
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// (0=Sunday, 6=Saturday). The shorthands "daily", "weekdays" and "weekend"
// expand to their respective sets.
func ParseWeekdays(s string) (models.WeekdaySet, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "daily", "all":
		return models.AllWeekdays(), nil
	case "weekdays":
		return models.Weekdays(), nil
	case "weekend":
		return models.Weekend(), nil
	}

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	var weekdays models.WeekdaySet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, time.Weekday(num))
	}

	return weekdays.Normalize(), nil
}

// FormatWeekdays renders a weekday set as a short human-readable string.
func FormatWeekdays(s models.WeekdaySet) string {
	set := s.Normalize()
	if len(set) == 7 {
		return "daily"
	}
	if set.IsWeekdayOnly() {
		return "weekdays"
	}
	if set.IsWeekendOnly() {
		return "weekend"
	}
	var days []string
	for _, wd := range set {
		days = append(days, wd.String()[:3])
	}
	return strings.Join(days, ",")
}
