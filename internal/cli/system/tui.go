package system

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgurlek/hybit/internal/cli"
	"github.com/mgurlek/hybit/internal/logger"
	"github.com/mgurlek/hybit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	model := tui.NewModel(tr, ctx.Store)

	// Pick up toggles made from widgets or other shells while the TUI runs.
	if ctx.IsSQLite() {
		w, err := tui.NewWatcher(ctx.Store.GetConfigPath(), 300*time.Millisecond)
		if err == nil {
			err = w.Start(context.Background())
		}
		if err != nil {
			logger.Warn("Live reload disabled", "error", err)
		} else {
			defer w.Stop()
			model = model.WithChanges(w.Changes())
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
