package system

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mgurlek/hybit/internal/cli"
	"github.com/mgurlek/hybit/internal/constants"
	"github.com/mgurlek/hybit/internal/logger"
	"github.com/mgurlek/hybit/internal/notifier"
	"github.com/mgurlek/hybit/internal/reminder"
)

// Sender delivers one notification.
type Sender interface {
	Notify(ctx context.Context, title, body string) error
}

type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`

	// Sender overrides the tray notifier.
	Sender Sender `kong:"-"`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		if c.DryRun {
			ctx.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	planned, err := ctx.PlanReminders()
	if err != nil {
		return err
	}
	now := tr.Now()
	grace := time.Duration(settings.NotificationGraceMin) * time.Minute

	var pending []reminder.Reminder
	for _, r := range reminder.Due(planned, now, grace) {
		sent, err := ctx.Store.HasDelivery(r.ID, r.Day.String())
		if err != nil {
			return err
		}
		if !sent {
			pending = append(pending, r)
		}
	}
	if len(pending) == 0 {
		if c.DryRun {
			ctx.Println("No reminders due.")
		}
		return nil
	}

	if c.DryRun {
		for _, r := range pending {
			ctx.Printf("[DryRun] %s  %s: %s\n", r.At.Format(constants.TimeFormat), r.Title, r.Body)
		}
		return nil
	}

	sender := c.Sender
	if sender == nil {
		sender = notifier.New()
	}

	delivered := make([]bool, len(pending))
	g, gctx := errgroup.WithContext(context.Background())
	g.SetLimit(constants.NotifyConcurrency)
	for i, r := range pending {
		i, r := i, r
		g.Go(func() error {
			if err := sender.Notify(gctx, r.Title, r.Body); err != nil {
				// One failed reminder must not stop the others.
				logger.Warn("Failed to send notification", "reminder", r.ID, "error", err)
				return nil
			}
			delivered[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sent := 0
	for i, r := range pending {
		if !delivered[i] {
			continue
		}
		if _, err := ctx.Store.RecordDelivery(r.Delivery(now.UTC())); err != nil {
			return fmt.Errorf("failed to record delivery: %w", err)
		}
		sent++
	}
	logger.Debug("Reminders delivered", "sent", sent, "due", len(pending))
	if sent < len(pending) {
		return fmt.Errorf("%d of %d reminder(s) could not be delivered", len(pending)-sent, len(pending))
	}
	return nil
}
