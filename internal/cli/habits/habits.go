package habits

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mgurlek/hybit/internal/cli"
	"github.com/mgurlek/hybit/internal/constants"
	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/tracker"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	List      HabitListCmd      `cmd:"" help:"List habits with their streaks."`
	Toggle    HabitToggleCmd    `cmd:"" help:"Mark a habit done for a day, or undo it."`
	Status    HabitStatusCmd    `cmd:"" help:"Show streak details for a habit."`
	Log       HabitLogCmd       `cmd:"" help:"Show habit log (ASCII history)."`
	Edit      HabitEditCmd      `cmd:"" help:"Change a habit."`
	Archive   HabitArchiveCmd   `cmd:"" help:"Archive a habit."`
	Unarchive HabitUnarchiveCmd `cmd:"" help:"Bring an archived habit back."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Delete a habit (soft delete)."`
	Restore   HabitRestoreCmd   `cmd:"" help:"Restore a deleted habit."`
	Purge     HabitPurgeCmd     `cmd:"" help:"Permanently remove a habit and its history."`
}

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Color    string `help:"Color as #RRGGBB." default:""`
	Icon     string `help:"Icon name." default:""`
	Target   int    `help:"Target streak in days (default: from settings)." default:"0"`
	Reminder string `help:"Daily reminder time in HH:MM format." default:""`
	Random   bool   `help:"Also send one surprise reminder a day."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habit, err := tr.CreateHabit(tracker.NewHabit{
		Name:             c.Name,
		Color:            c.Color,
		Icon:             c.Icon,
		TargetStreakDays: c.Target,
		ReminderTime:     c.Reminder,
		RandomReminders:  c.Random,
	})
	if err != nil {
		return err
	}

	ctx.Printf("Added habit: %s (target %d days)\n", habit.Name, habit.TargetStreakDays)
	if habit.ReminderTime != "" {
		ctx.Printf("  Reminder at %s\n", habit.ReminderTime)
	}
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
	Deleted  bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	statuses, err := tr.Statuses(c.Archived)
	if err != nil {
		return err
	}

	var deleted []models.Habit
	if c.Deleted {
		all, err := ctx.Store.GetAllHabits(true, true)
		if err != nil {
			return err
		}
		for _, h := range all {
			if h.DeletedAt != nil {
				deleted = append(deleted, h)
			}
		}
	}

	if len(statuses) == 0 && len(deleted) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	ctx.Printf("Habits for %s:\n\n", tr.Today())
	done := 0
	for _, st := range statuses {
		mark := "[ ]"
		if st.Summary.DoneToday {
			mark = "[x]"
			done++
		}
		last := "never"
		if st.LastDone != nil {
			last = humanize.RelTime(*st.LastDone, tr.Now(), "ago", "from now")
		}
		state := ""
		if st.Habit.ArchivedAt != nil {
			state = " [ARCHIVED]"
		}
		ctx.Printf("%s %-20s streak %3d/%-3d best %3d  last done %s%s\n",
			mark, st.Habit.Name, st.Summary.Current, st.Summary.Target, st.Summary.Longest, last, state)
	}
	for _, h := range deleted {
		ctx.Printf("    %-20s [DELETED %s]\n", h.Name, humanize.RelTime(*h.DeletedAt, tr.Now(), "ago", "from now"))
	}

	ctx.Printf("\nDone today: %d/%d\n", done, len(statuses))
	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
	Date string `help:"Logical day in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habit, err := tr.FindHabit(c.Name)
	if err != nil {
		return err
	}
	day, err := cli.ParseDay(tr, c.Date)
	if err != nil {
		return err
	}

	result, err := tr.ToggleDay(habit.ID, day)
	if err != nil {
		return err
	}

	st, err := tr.Status(habit)
	if err != nil {
		return err
	}
	switch result {
	case tracker.Added:
		ctx.Printf("✓ Marked %q done for %s\n", habit.Name, day)
	case tracker.Removed:
		ctx.Printf("Unmarked %q for %s\n", habit.Name, day)
	}
	ctx.Printf("  Current streak: %d day(s)\n", st.Summary.Current)
	return nil
}

type HabitStatusCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
}

func (c *HabitStatusCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habit, err := tr.FindHabit(c.Name)
	if err != nil {
		return err
	}
	st, err := tr.Status(habit)
	if err != nil {
		return err
	}

	s := st.Summary
	ctx.Printf("%s\n", habit.Name)
	ctx.Printf("  Current streak:  %d day(s)\n", s.Current)
	ctx.Printf("  Longest streak:  %d day(s)\n", s.Longest)
	ctx.Printf("  Target:          %d day(s) (%d%%)\n", s.Target, s.Percent)
	if s.Reached {
		ctx.Println("  Target reached!")
	} else {
		ctx.Printf("  Remaining:       %d day(s)\n", s.Remaining)
	}
	ctx.Printf("  Done today:      %v\n", s.DoneToday)
	if st.LastDone != nil {
		ctx.Printf("  Last done:       %s\n", humanize.RelTime(*st.LastDone, tr.Now(), "ago", "from now"))
	}
	if habit.ReminderTime != "" {
		random := ""
		if habit.RandomReminders {
			random = " (+ surprise)"
		}
		ctx.Printf("  Reminder:        %s%s\n", habit.ReminderTime, random)
	}
	ctx.Printf("  Created:         %s\n", humanize.Time(habit.CreatedAt))
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	var habits []models.Habit
	if c.Habit != "" {
		h, err := tr.FindHabit(c.Habit)
		if err != nil {
			return err
		}
		habits = append(habits, h)
	} else {
		habits, err = ctx.Store.GetAllHabits(false, false)
		if err != nil {
			return err
		}
	}
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	to := tr.Today()
	from := to.AddDays(-(c.Days - 1))
	ctx.Printf("Habit log from %s to %s:\n\n", from, to)

	width := 0
	for _, h := range habits {
		if len(h.Name) > width {
			width = len(h.Name)
		}
	}
	for _, h := range habits {
		marks, err := tr.History(h.ID, from, to)
		if err != nil {
			return err
		}
		var b strings.Builder
		for _, m := range marks {
			if m.Done {
				b.WriteString("█")
			} else {
				b.WriteString("·")
			}
		}
		ctx.Printf("%-*s  %s\n", width, h.Name, b.String())
	}
	return nil
}

type HabitEditCmd struct {
	Name     string  `arg:"" help:"Habit name or ID."`
	Rename   string  `help:"New name." default:""`
	Color    string  `help:"Color as #RRGGBB." default:""`
	Icon     string  `help:"Icon name." default:""`
	Target   int     `help:"Target streak in days." default:"0"`
	Reminder *string `help:"Daily reminder time in HH:MM format, empty to clear."`
	Random   *bool   `help:"Enable or disable the surprise reminder."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habit, err := tr.FindHabit(c.Name)
	if err != nil {
		return err
	}

	if c.Rename != "" {
		habit.Name = c.Rename
	}
	if c.Color != "" {
		habit.Color = strings.ToUpper(c.Color)
	}
	if c.Icon != "" {
		habit.Icon = c.Icon
	}
	if c.Target != 0 {
		habit.TargetStreakDays = c.Target
	}
	if c.Reminder != nil {
		habit.ReminderTime = strings.TrimSpace(*c.Reminder)
	}
	if c.Random != nil {
		habit.RandomReminders = *c.Random
	}

	if err := tr.UpdateHabit(habit); err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s\n", habit.Name)
	return nil
}

type HabitArchiveCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	habit, err := tr.FindHabit(c.Name)
	if err != nil {
		return err
	}
	if err := tr.ArchiveHabit(habit.ID); err != nil {
		return err
	}
	ctx.Printf("Archived habit: %s\n", habit.Name)
	return nil
}

type HabitUnarchiveCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
}

func (c *HabitUnarchiveCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	habit, err := tr.FindHabit(c.Name)
	if err != nil {
		return err
	}
	if err := tr.UnarchiveHabit(habit.ID); err != nil {
		return err
	}
	ctx.Printf("Unarchived habit: %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	habit, err := tr.FindHabit(c.Name)
	if err != nil {
		return err
	}
	if err := tr.DeleteHabit(habit.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", habit.Name)
	ctx.Printf("  Use '%s habit restore %q' to bring it back.\n", constants.AppName, habit.Name)
	return nil
}

type HabitRestoreCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	habit, err := tr.FindAnyHabit(c.Name)
	if err != nil {
		return err
	}
	if habit.DeletedAt == nil {
		return fmt.Errorf("habit %q is not deleted", habit.Name)
	}
	if err := tr.RestoreHabit(habit.ID); err != nil {
		return err
	}
	ctx.Printf("Restored habit: %s\n", habit.Name)
	return nil
}

type HabitPurgeCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *HabitPurgeCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	habit, err := tr.FindAnyHabit(c.Name)
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.Printf("⚠️  This permanently removes %q and its whole history.\n", habit.Name)
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Purge cancelled.")
			return nil
		}
	}

	if err := tr.PurgeHabit(habit.ID); err != nil {
		return err
	}
	ctx.Printf("Purged habit: %s\n", habit.Name)
	return nil
}
