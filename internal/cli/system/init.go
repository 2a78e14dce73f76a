package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgurlek/hybit/internal/cli"
	"github.com/mgurlek/hybit/internal/constants"
	"github.com/mgurlek/hybit/internal/storage"
	"github.com/mgurlek/hybit/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	return nil
}

// reset deletes the local database file. PostgreSQL databases are never
// dropped.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return errors.New("--force only supports SQLite databases")
	}
	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		source, err := cli.ExpandPath(c.Source)
		if err == nil {
			if abs, err := filepath.Abs(source); err == nil && abs == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	sourceStore, err := cli.OpenStore(sourcePath)
	if err != nil {
		return err
	}
	if src, ok := sourceStore.(*sqlite.Store); ok && ctx.IsSQLite() {
		srcAbs, _ := filepath.Abs(src.GetConfigPath())
		dstAbs, _ := filepath.Abs(ctx.Store.GetConfigPath())
		if srcAbs == dstAbs {
			return errors.New("source and destination are the same database")
		}
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	return copyData(ctx, sourceStore)
}

func copyData(ctx *cli.Context, src storage.Provider) error {
	dst := ctx.Store

	ctx.Println("  Migrating settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Migrating habits...")
	habits, err := src.GetAllHabits(true, true)
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}
	for _, habit := range habits {
		if err := dst.AddHabit(habit); err != nil {
			return fmt.Errorf("failed to add habit %s: %w", habit.ID, err)
		}
	}
	ctx.Printf("    Migrated %d habits\n", len(habits))

	ctx.Println("  Migrating completions...")
	completions, err := src.GetAllCompletions()
	if err != nil {
		return fmt.Errorf("failed to get completions from source: %w", err)
	}
	for _, completion := range completions {
		if err := dst.AddCompletion(completion); err != nil {
			return fmt.Errorf("failed to add completion %s: %w", completion.ID, err)
		}
	}
	ctx.Printf("    Migrated %d completions\n", len(completions))

	ctx.Println("  Migrating profiles...")
	profiles, err := src.GetAllProfiles()
	if err != nil {
		return fmt.Errorf("failed to get profiles from source: %w", err)
	}
	for _, profile := range profiles {
		if err := dst.AddProfile(profile); err != nil {
			return fmt.Errorf("failed to add profile %s: %w", profile.Username, err)
		}
	}
	ctx.Printf("    Migrated %d profiles\n", len(profiles))

	return nil
}
