package models

import "time"

type Category string

const (
	CategorySpirituality Category = "spirituality"
	CategoryFitness      Category = "fitness"
	CategoryHealth       Category = "health"
	CategoryLearning     Category = "learning"
	CategoryProductivity Category = "productivity"
	CategoryWellness     Category = "wellness"
)

// Categories lists every valid habit category.
func Categories() []Category {
	return []Category{
		CategorySpirituality, CategoryFitness, CategoryHealth,
		CategoryLearning, CategoryProductivity, CategoryWellness,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// TimeBlock is the part of the day a habit is scheduled into. Each block has a
// fixed default start time and display color.
type TimeBlock string

const (
	BlockMorning   TimeBlock = "morning"
	BlockForenoon  TimeBlock = "forenoon"
	BlockNoon      TimeBlock = "noon"
	BlockAfternoon TimeBlock = "afternoon"
	BlockEvening   TimeBlock = "evening"
)

// TimeBlocks lists every block in day order.
func TimeBlocks() []TimeBlock {
	return []TimeBlock{BlockMorning, BlockForenoon, BlockNoon, BlockAfternoon, BlockEvening}
}

// Valid reports whether b is a known time block.
func (b TimeBlock) Valid() bool {
	for _, known := range TimeBlocks() {
		if b == known {
			return true
		}
	}
	return false
}

// DefaultStart returns the block's fixed default start time in HH:MM format.
func (b TimeBlock) DefaultStart() string {
	switch b {
	case BlockMorning:
		return "07:00"
	case BlockForenoon:
		return "09:00"
	case BlockNoon:
		return "12:00"
	case BlockAfternoon:
		return "15:00"
	case BlockEvening:
		return "19:00"
	default:
		return "07:00"
	}
}

// Color returns the block's default display color as a hex string.
func (b TimeBlock) Color() string {
	switch b {
	case BlockMorning:
		return "#F2C94C"
	case BlockForenoon:
		return "#6FCF97"
	case BlockNoon:
		return "#56CCF2"
	case BlockAfternoon:
		return "#BB6BD9"
	case BlockEvening:
		return "#EB5757"
	default:
		return "#BDBDBD"
	}
}

// Habit is one recurring practice inside a routine. Position defines the
// display/execution order within the routine and is kept dense (0..N-1).
type Habit struct {
	ID          string    `json:"id"`
	RoutineID   string    `json:"routine_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    Category  `json:"category"`
	Block       TimeBlock `json:"block"`
	DurationMin int       `json:"duration_min"`
	Position    int       `json:"position"`
	Optional    bool      `json:"optional"`
	Custom      bool      `json:"custom"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HabitTemplate is a read-only catalog entry. Creating a habit from a template
// copies its fields; the habit never references the template afterwards.
type HabitTemplate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    Category  `json:"category"`
	Block       TimeBlock `json:"block"`
	DurationMin int       `json:"duration_min"`
	Popular     bool      `json:"popular"`
}

// HabitFromTemplate copies a catalog template into a new habit owned by the
// given routine. The copy is independent of the template.
func HabitFromTemplate(tmpl HabitTemplate, id, routineID string, position int, now time.Time) Habit {
	return Habit{
		ID:          id,
		RoutineID:   routineID,
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Category:    tmpl.Category,
		Block:       tmpl.Block,
		DurationMin: tmpl.DurationMin,
		Position:    position,
		Optional:    false,
		Custom:      false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
