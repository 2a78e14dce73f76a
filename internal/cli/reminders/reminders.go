package reminders

import (
	"github.com/mgurlek/hybit/internal/cli"
)

type ReminderCmd struct {
	List ReminderListCmd `cmd:"" default:"withargs" help:"List today's planned reminders."`
}

type ReminderListCmd struct {
	Rules bool `help:"Show the recurrence rule of each reminder."`
}

func (c *ReminderListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	planned, err := ctx.PlanReminders()
	if err != nil {
		return err
	}

	if len(planned) == 0 {
		ctx.Println("No reminders planned for today.")
		return nil
	}

	now := tr.Now()
	ctx.Printf("Reminders for %s:\n\n", tr.Today())
	for _, r := range planned {
		state := "pending"
		if !r.At.After(now) {
			state = "due"
		}
		delivered, err := ctx.Store.HasDelivery(r.ID, r.Day.String())
		if err != nil {
			return err
		}
		if delivered {
			state = "sent"
		}
		ctx.Printf("  %s  %-8s %-7s %s\n", r.At.Format("15:04"), r.Kind, state, r.Title)
		if c.Rules {
			ctx.Printf("         %s\n", r.Rule())
		}
	}
	return nil
}
