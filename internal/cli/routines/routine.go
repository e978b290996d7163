package routines

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"routinely/internal/cli"
	"routinely/internal/materializer"
	"routinely/internal/models"
)

type RoutineCmd struct {
	Add        RoutineAddCmd        `cmd:"" help:"Create a new routine."`
	List       RoutineListCmd       `cmd:"" help:"List routines and their habits."`
	Activate   RoutineActivateCmd   `cmd:"" help:"Activate a routine and materialize its schedule."`
	Deactivate RoutineDeactivateCmd `cmd:"" help:"Deactivate a routine."`
	Edit       RoutineEditCmd       `cmd:"" help:"Edit a routine."`
	Delete     RoutineDeleteCmd     `cmd:"" help:"Delete a routine and its habits."`
}

type RoutineAddCmd struct {
	Name        string `arg:"" optional:"" help:"Routine name."`
	Description string `help:"Routine description." default:""`
	Days        string `help:"Weekdays the routine repeats on (e.g. 'mon,wed,fri', 'weekdays', 'daily')." default:"daily"`
	Interactive bool   `short:"i" help:"Create the routine through an interactive form."`
}

func (c *RoutineAddCmd) Run(ctx *cli.Context) error {
	name := c.Name
	description := c.Description
	days := c.Days

	if c.Interactive {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Name").
					Value(&name).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("name is required")
						}
						return nil
					}),
				huh.NewInput().
					Title("Description").
					Value(&description),
				huh.NewInput().
					Title("Days").
					Description("e.g. 'mon,wed,fri', 'weekdays', 'daily'").
					Value(&days).
					Validate(func(s string) error {
						_, err := cli.ParseWeekdays(s)
						return err
					}),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	if name == "" {
		return fmt.Errorf("routine name is required")
	}

	weekdays, err := cli.ParseWeekdays(days)
	if err != nil {
		return err
	}

	if _, err := ctx.Store.GetRoutineByName(ctx.Owner, name); err == nil {
		return fmt.Errorf("routine %q already exists", name)
	}

	now := ctx.Now()
	routine := models.Routine{
		ID:          uuid.New().String(),
		OwnerID:     ctx.Owner,
		Name:        name,
		Description: description,
		Active:      false,
		Weekdays:    weekdays,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := ctx.Store.CreateRoutine(routine); err != nil {
		return err
	}

	fmt.Printf("Added routine %q (%s). Activate it with 'routinely routine activate %s'.\n",
		name, cli.FormatWeekdays(weekdays), name)
	return nil
}

type RoutineListCmd struct{}

func (c *RoutineListCmd) Run(ctx *cli.Context) error {
	listing, err := ctx.Store.ListRoutinesWithHabits(ctx.Owner)
	if err != nil {
		return err
	}

	if len(listing) == 0 {
		fmt.Println("No routines found.")
		return nil
	}

	for _, entry := range listing {
		status := " "
		if entry.Routine.Active {
			status = "*"
		}
		fmt.Printf("[%s] %s (%s) — %d habit(s)\n",
			status, entry.Routine.Name, cli.FormatWeekdays(entry.Routine.Weekdays), len(entry.Habits))
		for _, habit := range entry.Habits {
			optional := ""
			if habit.Optional {
				optional = " (optional)"
			}
			fmt.Printf("      %d. %s [%s, %s, %dmin]%s\n",
				habit.Position+1, habit.Name, habit.Category, habit.Block, habit.DurationMin, optional)
		}
	}
	return nil
}

type RoutineActivateCmd struct {
	Name string `arg:"" help:"Routine name."`
}

func (c *RoutineActivateCmd) Run(ctx *cli.Context) error {
	routine, err := ctx.Store.GetRoutineByName(ctx.Owner, c.Name)
	if err != nil {
		return err
	}

	now := ctx.Now()
	if !routine.Active {
		routine.Active = true
		routine.UpdatedAt = now
		if err := ctx.Store.UpdateRoutine(routine); err != nil {
			return err
		}
	}

	inserted, err := materializer.New(ctx.Store).Materialize(routine.ID, now)
	if err != nil {
		return err
	}

	if inserted == 0 {
		fmt.Printf("Activated routine %q (schedule already materialized).\n", c.Name)
	} else {
		fmt.Printf("Activated routine %q and scheduled %d event(s).\n", c.Name, inserted)
	}
	return nil
}

type RoutineDeactivateCmd struct {
	Name string `arg:"" help:"Routine name."`
}

func (c *RoutineDeactivateCmd) Run(ctx *cli.Context) error {
	routine, err := ctx.Store.GetRoutineByName(ctx.Owner, c.Name)
	if err != nil {
		return err
	}
	if !routine.Active {
		fmt.Printf("Routine %q is already inactive.\n", c.Name)
		return nil
	}

	routine.Active = false
	routine.UpdatedAt = ctx.Now()
	if err := ctx.Store.UpdateRoutine(routine); err != nil {
		return err
	}

	fmt.Printf("Deactivated routine %q. Existing events are kept; the watch daemon stops extending its schedule.\n", c.Name)
	return nil
}

type RoutineEditCmd struct {
	Name        string `arg:"" help:"Routine name."`
	NewName     string `help:"New routine name." default:""`
	Description string `help:"New description." default:""`
	Days        string `help:"New weekday set." default:""`
}

func (c *RoutineEditCmd) Run(ctx *cli.Context) error {
	routine, err := ctx.Store.GetRoutineByName(ctx.Owner, c.Name)
	if err != nil {
		return err
	}

	changed := false
	if c.NewName != "" && c.NewName != routine.Name {
		if _, err := ctx.Store.GetRoutineByName(ctx.Owner, c.NewName); err == nil {
			return fmt.Errorf("routine %q already exists", c.NewName)
		}
		routine.Name = c.NewName
		changed = true
	}
	if c.Description != "" {
		routine.Description = c.Description
		changed = true
	}
	if c.Days != "" {
		weekdays, err := cli.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		routine.Weekdays = weekdays
		changed = true
	}

	if !changed {
		fmt.Println("Nothing to change.")
		return nil
	}

	routine.UpdatedAt = ctx.Now()
	if err := ctx.Store.UpdateRoutine(routine); err != nil {
		return err
	}

	fmt.Printf("Updated routine %q.\n", routine.Name)
	return nil
}

type RoutineDeleteCmd struct {
	Name  string `arg:"" help:"Routine name."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *RoutineDeleteCmd) Run(ctx *cli.Context) error {
	routine, err := ctx.Store.GetRoutineByName(ctx.Owner, c.Name)
	if err != nil {
		return err
	}

	if !c.Force {
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete routine %q?", c.Name)).
					Description("Its habits and pending future events are removed. Completed history is kept.").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Store.DeleteRoutine(routine.ID, ctx.Today()); err != nil {
		return err
	}

	fmt.Printf("Deleted routine %q.\n", c.Name)
	return nil
}
