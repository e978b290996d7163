package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"routinely/internal/cli"
	"routinely/internal/constants"
	"routinely/internal/materializer"
	"routinely/internal/models"
	"routinely/internal/tracker"
)

type EventCmd struct {
	Day         DayCmd         `cmd:"" help:"Show the schedule for a day."`
	Done        DoneCmd        `cmd:"" help:"Mark a habit as done for today."`
	Undo        UndoCmd        `cmd:"" help:"Mark a habit as not done for today."`
	Materialize MaterializeCmd `cmd:"" help:"Materialize a routine's schedule for the coming week."`
	Delete      DeleteCmd      `cmd:"" help:"Delete a single calendar event."`
}

var (
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("240"))
	pendingStyle = lipgloss.NewStyle()
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

func blockStyle(block models.TimeBlock) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(block.Color())).Bold(true)
}

type DayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	IDs  bool   `help:"Show event ids."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	date := c.Date
	if date == "" {
		date = ctx.Today()
	} else if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", date)
	}

	events, err := tracker.New(ctx.Store).EventsForDate(ctx.Owner, date)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Printf("Nothing scheduled for %s.\n", date)
		return nil
	}

	// Group events by time block, preserving the start-time order inside each.
	byBlock := make(map[models.TimeBlock][]models.CalendarEvent)
	names := make(map[string]string)
	for _, event := range events {
		block := models.BlockMorning
		if habit, err := ctx.Store.GetHabit(event.HabitID); err == nil {
			block = habit.Block
			names[event.HabitID] = habit.Name
		}
		byBlock[block] = append(byBlock[block], event)
	}

	fmt.Printf("Schedule for %s:\n\n", date)
	done := 0
	for _, block := range models.TimeBlocks() {
		blockEvents := byBlock[block]
		if len(blockEvents) == 0 {
			continue
		}
		fmt.Println(blockStyle(block).Render(strings.ToUpper(string(block))))
		for _, event := range blockEvents {
			check := "[ ]"
			style := pendingStyle
			if event.Completed {
				check = "[x]"
				style = doneStyle
				done++
			}

			name, ok := names[event.HabitID]
			if !ok {
				name = dimStyle.Render("(deleted habit)")
			}

			line := fmt.Sprintf("  %s %s-%s  %s", check, event.StartTime, event.EndTime, style.Render(name))
			if c.IDs {
				line += dimStyle.Render("  " + event.ID)
			}
			fmt.Println(line)
		}
	}

	fmt.Printf("\n%d/%d done\n", done, len(events))
	return nil
}

type DoneCmd struct {
	Routine string `arg:"" help:"Routine name."`
	Habit   string `arg:"" help:"Habit name."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	return setCompletion(ctx, c.Routine, c.Habit, true)
}

type UndoCmd struct {
	Routine string `arg:"" help:"Routine name."`
	Habit   string `arg:"" help:"Habit name."`
}

func (c *UndoCmd) Run(ctx *cli.Context) error {
	return setCompletion(ctx, c.Routine, c.Habit, false)
}

// setCompletion toggles today's event for a habit. When no event exists yet
// (the window has not been materialized for today) a done-mark falls back to
// inserting the event already completed.
func setCompletion(ctx *cli.Context, routineName, habitName string, completed bool) error {
	routine, err := ctx.Store.GetRoutineByName(ctx.Owner, routineName)
	if err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabitsForRoutine(routine.ID)
	if err != nil {
		return err
	}
	var habit models.Habit
	found := false
	for _, h := range habits {
		if strings.EqualFold(h.Name, habitName) {
			habit = h
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("habit %q not found in routine %q", habitName, routineName)
	}

	now := ctx.Now()
	today := ctx.Today()
	track := tracker.New(ctx.Store)

	events, err := ctx.Store.GetEventsForDate(ctx.Owner, today)
	if err != nil {
		return err
	}
	for _, event := range events {
		if event.HabitID == habit.ID {
			if err := track.ToggleEvent(event.ID, completed, now); err != nil {
				return err
			}
			if completed {
				fmt.Printf("Marked %q done for %s.\n", habitName, today)
			} else {
				fmt.Printf("Marked %q not done for %s.\n", habitName, today)
			}
			return nil
		}
	}

	if !completed {
		fmt.Printf("No event for %q today; nothing to undo.\n", habitName)
		return nil
	}

	if err := track.CompleteHabitToday(ctx.Owner, habit.ID, now); err != nil {
		return err
	}
	if !routine.Weekdays.Contains(now.Weekday()) {
		fmt.Printf("%q is not scheduled on %ss; nothing recorded.\n", habitName, now.Weekday())
		return nil
	}
	fmt.Printf("Marked %q done for %s.\n", habitName, today)
	return nil
}

type MaterializeCmd struct {
	Routine string `arg:"" help:"Routine name."`
}

func (c *MaterializeCmd) Run(ctx *cli.Context) error {
	routine, err := ctx.Store.GetRoutineByName(ctx.Owner, c.Routine)
	if err != nil {
		return err
	}

	inserted, err := materializer.New(ctx.Store).Materialize(routine.ID, ctx.Now())
	if err != nil {
		return err
	}

	if inserted == 0 {
		fmt.Printf("Routine %q already has a materialized schedule; nothing inserted.\n", c.Routine)
	} else {
		fmt.Printf("Scheduled %d event(s) for routine %q over the next %d days.\n",
			inserted, c.Routine, constants.MaterializeWindowDays)
	}
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Event id (see 'routinely event day --ids')."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteEvent(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted event %s.\n", c.ID)
	return nil
}
