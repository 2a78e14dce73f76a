package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/mgurlek/hybit/internal/backup"
	"github.com/mgurlek/hybit/internal/cli"
	"github.com/mgurlek/hybit/internal/constants"
	"github.com/mgurlek/hybit/internal/logicalday"
	"github.com/mgurlek/hybit/internal/utils"
)

// schemaVersioner is implemented by stores with versioned schemas.
type schemaVersioner interface {
	SchemaVersion() (current, latest int, err error)
}

type schemaChecker interface {
	CheckSchema() error
}

// errWarning marks a check result that should not fail the run.
var errWarning = errors.New("warning")

type check struct {
	name      string
	needsDB   bool
	run       func(ctx *cli.Context) error
	warnOnErr bool
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	checks := []check{
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
		{name: "Schema tables", needsDB: true, run: checkSchemaTables},
		{name: "Backups present", run: checkBackupsPresent, warnOnErr: true},
		{name: "Settings", needsDB: true, run: checkSettings},
		{name: "Clock/timezone", run: checkClockTimezone},
		{name: "Habit integrity", needsDB: true, run: checkHabitsIntegrity},
		{name: "Completion integrity", needsDB: true, run: checkCompletions},
		{name: "Completion days", needsDB: true, run: checkCompletionDays, warnOnErr: true},
	}

	hasError := false
	dbReachable := true
	if err := ctx.Store.Load(); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnErr || errors.Is(err, errWarning):
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	v, ok := ctx.Store.(schemaVersioner)
	if !ok {
		return nil
	}
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	v, ok := ctx.Store.(schemaVersioner)
	if !ok {
		return nil
	}
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')",
			current, latest, constants.AppName)
	}
	return nil
}

func checkSchemaTables(ctx *cli.Context) error {
	if c, ok := ctx.Store.(schemaChecker); ok {
		return c.CheckSchema()
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return fmt.Errorf("%w: automatic backups only cover SQLite databases", errWarning)
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if _, err := utils.CalendarFromSettings(settings); err != nil {
		return err
	}
	if settings.DayCutoffHour < 0 || settings.DayCutoffHour > 23 {
		return fmt.Errorf("day cutoff hour %d is outside 0-23", settings.DayCutoffHour)
	}
	if !utils.ValidateTimeFormat(settings.RandomWindowStart) || !utils.ValidateTimeFormat(settings.RandomWindowEnd) {
		return fmt.Errorf("invalid random reminder window %s-%s", settings.RandomWindowStart, settings.RandomWindowEnd)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkHabitsIntegrity(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	live := make(map[string]string)
	for _, h := range habits {
		if err := h.Validate(); err != nil {
			return fmt.Errorf("habit %s (%s): %w", h.ID, h.Name, err)
		}
		if h.DeletedAt != nil {
			continue
		}
		if other, dup := live[h.Name]; dup {
			return fmt.Errorf("habits %s and %s share the name %q", other, h.ID, h.Name)
		}
		live[h.Name] = h.ID
	}
	return nil
}

func checkCompletions(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	known := make(map[string]bool, len(habits))
	for _, h := range habits {
		known[h.ID] = true
	}

	completions, err := ctx.Store.GetAllCompletions()
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}
	orphaned := 0
	for _, c := range completions {
		if !known[c.HabitID] {
			orphaned++
		}
		if _, err := logicalday.ParseDate(c.Day); err != nil {
			return fmt.Errorf("completion %s has invalid day %q", c.ID, c.Day)
		}
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d orphaned completions (referencing non-existent habits)", orphaned)
	}
	return nil
}

// checkCompletionDays flags completions whose stored day no longer matches
// the logical day of their timestamp, which happens after the timezone or
// cutoff changes. Streaks always follow the timestamp.
func checkCompletionDays(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	completions, err := ctx.Store.GetAllCompletions()
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}
	cal := tr.Calendar()
	moved := 0
	for _, c := range completions {
		if cal.LogicalDate(c.Timestamp).String() != c.Day {
			moved++
		}
	}
	if moved > 0 {
		return fmt.Errorf("%d completion(s) fall on a different day under the current timezone and cutoff", moved)
	}
	return nil
}
