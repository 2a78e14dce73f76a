package export

import (
	"fmt"
	"io"
	"os"

	"github.com/mgurlek/hybit/internal/cli"
	"github.com/mgurlek/hybit/internal/export"
)

type ExportCmd struct {
	Format string `short:"f" help:"Output format: json or yaml." default:"json" enum:"json,yaml,yml"`
	Output string `short:"o" help:"Write to a file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	doc, err := export.Collect(ctx.Store, tr)
	if err != nil {
		return fmt.Errorf("failed to collect data: %w", err)
	}

	var w io.Writer = ctx.Out
	if c.Output != "" {
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.Output, err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, format, doc); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if c.Output != "" {
		ctx.Printf("✓ Exported %d habit(s) to %s\n", len(doc.Habits), c.Output)
	}
	return nil
}
