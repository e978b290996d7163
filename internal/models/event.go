package models

import "time"

// CalendarEvent is one scheduled occurrence of one habit on one calendar
// date. EventDate is a naive YYYY-MM-DD string; StartTime/EndTime are HH:MM.
// At most one event exists per (routine, habit, date), enforced by a unique
// index at the storage layer.
type CalendarEvent struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	RoutineID string    `json:"routine_id"`
	HabitID   string    `json:"habit_id"`
	EventDate string    `json:"event_date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
