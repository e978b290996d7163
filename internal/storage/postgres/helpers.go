package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"routinely/internal/models"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func marshalWeekdays(set models.WeekdaySet) (string, error) {
	b, err := json.Marshal(set.Normalize())
	if err != nil {
		return "", fmt.Errorf("failed to marshal weekday set: %w", err)
	}
	return string(b), nil
}

func unmarshalWeekdays(raw string) (models.WeekdaySet, error) {
	var days []int
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weekday set %q: %w", raw, err)
	}
	var set models.WeekdaySet
	for _, d := range days {
		set = append(set, time.Weekday(d))
	}
	return set, nil
}

func parseTimestamp(raw, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}
