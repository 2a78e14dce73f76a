package settings

import (
	"fmt"

	"github.com/mgurlek/hybit/internal/cli"
	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone             *string `help:"IANA timezone name, or Local."`
	DayCutoff            *int    `help:"Hour (0-23) at which a new day begins."`
	DefaultTarget        *int    `help:"Target streak for new habits, in days."`
	NotificationsEnabled *bool   `help:"Enable or disable reminder notifications."`
	RandomWindowStart    *string `help:"Earliest surprise reminder (HH:MM)."`
	RandomWindowEnd      *string `help:"Latest surprise reminder (HH:MM)."`
	GraceMin             *int    `help:"Minutes a missed reminder may still be delivered."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		printSettings(ctx, settings)
		return nil
	}

	updated, err := c.apply(&settings)
	if err != nil {
		return err
	}
	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.ResetTracker()
	ctx.Println("Settings updated successfully.")
	return nil
}

// apply copies the given flags into settings after validating them.
func (c *SettingsCmd) apply(settings *models.Settings) (bool, error) {
	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return false, fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.DayCutoff != nil {
		if *c.DayCutoff < 0 || *c.DayCutoff > 23 {
			return false, fmt.Errorf("day cutoff must be between 0 and 23")
		}
		settings.DayCutoffHour = *c.DayCutoff
		updated = true
	}
	if c.DefaultTarget != nil {
		if *c.DefaultTarget < 1 {
			return false, fmt.Errorf("default target must be at least 1 day")
		}
		settings.DefaultTargetStreak = *c.DefaultTarget
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.RandomWindowStart != nil {
		if !utils.ValidateTimeFormat(*c.RandomWindowStart) {
			return false, fmt.Errorf("invalid window start %q (expected HH:MM)", *c.RandomWindowStart)
		}
		settings.RandomWindowStart = *c.RandomWindowStart
		updated = true
	}
	if c.RandomWindowEnd != nil {
		if !utils.ValidateTimeFormat(*c.RandomWindowEnd) {
			return false, fmt.Errorf("invalid window end %q (expected HH:MM)", *c.RandomWindowEnd)
		}
		settings.RandomWindowEnd = *c.RandomWindowEnd
		updated = true
	}
	if c.GraceMin != nil {
		if *c.GraceMin < 0 {
			return false, fmt.Errorf("grace period cannot be negative")
		}
		settings.NotificationGraceMin = *c.GraceMin
		updated = true
	}
	return updated, nil
}

func printSettings(ctx *cli.Context, s models.Settings) {
	ctx.Println("Current Settings:")
	ctx.Printf("  Timezone:              %s\n", s.Timezone)
	ctx.Printf("  Day Cutoff:            %02d:00\n", s.DayCutoffHour)
	ctx.Printf("  Default Target:        %d days\n", s.DefaultTargetStreak)
	ctx.Println("\nNotification Settings:")
	ctx.Printf("  Notifications Enabled: %v\n", s.NotificationsEnabled)
	ctx.Printf("  Surprise Window:       %s-%s\n", s.RandomWindowStart, s.RandomWindowEnd)
	ctx.Printf("  Grace Period:          %d min\n", s.NotificationGraceMin)
}
