package habits

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"routinely/internal/cli"
	"routinely/internal/models"
)

type HabitCmd struct {
	Add          HabitAddCmd     `cmd:"" help:"Add a new habit to a routine."`
	FromTemplate FromTemplateCmd `cmd:"" name:"from-template" help:"Add a habit from the template catalog."`
	Edit         HabitEditCmd    `cmd:"" help:"Edit a habit."`
	Delete       HabitDeleteCmd  `cmd:"" help:"Delete a habit."`
	Reorder      HabitReorderCmd `cmd:"" help:"Reorder the habits of a routine."`
	Templates    TemplateListCmd `cmd:"" help:"List the habit template catalog."`
}

// findHabit resolves a habit by name within a routine, matching
// case-insensitively.
func findHabit(ctx *cli.Context, routineName, habitName string) (models.Routine, models.Habit, error) {
	routine, err := ctx.Store.GetRoutineByName(ctx.Owner, routineName)
	if err != nil {
		return models.Routine{}, models.Habit{}, err
	}

	habits, err := ctx.Store.GetHabitsForRoutine(routine.ID)
	if err != nil {
		return models.Routine{}, models.Habit{}, err
	}
	for _, habit := range habits {
		if strings.EqualFold(habit.Name, habitName) {
			return routine, habit, nil
		}
	}
	return models.Routine{}, models.Habit{}, fmt.Errorf("habit %q not found in routine %q", habitName, routineName)
}

type HabitAddCmd struct {
	Routine  string `arg:"" help:"Routine name."`
	Name     string `arg:"" help:"Habit name."`
	Category string `help:"Habit category (spirituality, fitness, health, learning, productivity, wellness)." default:"wellness"`
	Block    string `help:"Time block (morning, forenoon, noon, afternoon, evening)." default:"morning"`
	Duration int    `help:"Estimated duration in minutes." default:"15"`
	Optional bool   `help:"Mark the habit as optional."`
	Icon     string `help:"Custom icon reference." default:""`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	routine, err := ctx.Store.GetRoutineByName(ctx.Owner, c.Routine)
	if err != nil {
		return err
	}

	existing, err := ctx.Store.GetHabitsForRoutine(routine.ID)
	if err != nil {
		return err
	}
	for _, habit := range existing {
		if strings.EqualFold(habit.Name, c.Name) {
			return fmt.Errorf("habit %q already exists in routine %q", c.Name, c.Routine)
		}
	}

	now := ctx.Now()
	habit := models.Habit{
		ID:          uuid.New().String(),
		RoutineID:   routine.ID,
		Name:        c.Name,
		Category:    models.Category(c.Category),
		Block:       models.TimeBlock(c.Block),
		DurationMin: c.Duration,
		Position:    len(existing),
		Optional:    c.Optional,
		Custom:      true,
		Icon:        c.Icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := ctx.Store.CreateHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit %q to routine %q (%s, %dmin).\n", c.Name, c.Routine, habit.Block, habit.DurationMin)
	return nil
}

type FromTemplateCmd struct {
	Routine  string `arg:"" help:"Routine name."`
	Template string `arg:"" help:"Template name."`
}

func (c *FromTemplateCmd) Run(ctx *cli.Context) error {
	routine, err := ctx.Store.GetRoutineByName(ctx.Owner, c.Routine)
	if err != nil {
		return err
	}

	tmpl, err := ctx.Store.GetTemplateByName(c.Template)
	if err != nil {
		return err
	}

	existing, err := ctx.Store.GetHabitsForRoutine(routine.ID)
	if err != nil {
		return err
	}
	for _, habit := range existing {
		if strings.EqualFold(habit.Name, tmpl.Name) {
			return fmt.Errorf("habit %q already exists in routine %q", tmpl.Name, c.Routine)
		}
	}

	habit := models.HabitFromTemplate(tmpl, uuid.New().String(), routine.ID, len(existing), ctx.Now())
	if err := ctx.Store.CreateHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit %q to routine %q from template.\n", habit.Name, c.Routine)
	return nil
}

type HabitEditCmd struct {
	Routine  string `arg:"" help:"Routine name."`
	Name     string `arg:"" help:"Habit name."`
	NewName  string `help:"New habit name." default:""`
	Category string `help:"New category." default:""`
	Block    string `help:"New time block." default:""`
	Duration int    `help:"New estimated duration in minutes." default:"0"`
	Icon     string `help:"New icon reference." default:""`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	_, habit, err := findHabit(ctx, c.Routine, c.Name)
	if err != nil {
		return err
	}

	changed := false
	if c.NewName != "" {
		habit.Name = c.NewName
		changed = true
	}
	if c.Category != "" {
		habit.Category = models.Category(c.Category)
		changed = true
	}
	if c.Block != "" {
		habit.Block = models.TimeBlock(c.Block)
		changed = true
	}
	if c.Duration > 0 {
		habit.DurationMin = c.Duration
		changed = true
	}
	if c.Icon != "" {
		habit.Icon = c.Icon
		changed = true
	}

	if !changed {
		fmt.Println("Nothing to change.")
		return nil
	}

	habit.UpdatedAt = ctx.Now()
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Updated habit %q.\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Routine string `arg:"" help:"Routine name."`
	Name    string `arg:"" help:"Habit name."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	_, habit, err := findHabit(ctx, c.Routine, c.Name)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteHabit(habit.ID, ctx.Today()); err != nil {
		return err
	}

	fmt.Printf("Deleted habit %q. Pending future events were removed; completed history is kept.\n", c.Name)
	return nil
}

type HabitReorderCmd struct {
	Routine string   `arg:"" help:"Routine name."`
	Names   []string `arg:"" help:"Habit names in the desired order."`
}

func (c *HabitReorderCmd) Run(ctx *cli.Context) error {
	routine, err := ctx.Store.GetRoutineByName(ctx.Owner, c.Routine)
	if err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabitsForRoutine(routine.ID)
	if err != nil {
		return err
	}

	byName := make(map[string]string, len(habits))
	for _, habit := range habits {
		byName[strings.ToLower(habit.Name)] = habit.ID
	}

	orderedIDs := make([]string, 0, len(c.Names))
	for _, name := range c.Names {
		id, ok := byName[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("habit %q not found in routine %q", name, c.Routine)
		}
		orderedIDs = append(orderedIDs, id)
	}

	if err := ctx.Store.ReorderHabits(routine.ID, orderedIDs, ctx.Now()); err != nil {
		return err
	}

	fmt.Printf("Reordered %d habit(s) in routine %q.\n", len(orderedIDs), c.Routine)
	return nil
}

type TemplateListCmd struct{}

func (c *TemplateListCmd) Run(ctx *cli.Context) error {
	templates, err := ctx.Store.GetAllTemplates()
	if err != nil {
		return err
	}

	if len(templates) == 0 {
		fmt.Println("No templates found. Run 'routinely migrate' to seed the catalog.")
		return nil
	}

	fmt.Println("Habit templates:")
	for _, tmpl := range templates {
		popular := ""
		if tmpl.Popular {
			popular = " ★"
		}
		fmt.Printf("  %s [%s, %s, %dmin]%s\n", tmpl.Name, tmpl.Category, tmpl.Block, tmpl.DurationMin, popular)
	}
	return nil
}
