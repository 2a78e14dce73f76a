package widget

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mgurlek/hybit/internal/cli"
	"github.com/mgurlek/hybit/internal/widget"
)

type WidgetCmd struct {
	Show   WidgetShowCmd   `cmd:"" default:"withargs" help:"Show today's widget snapshot."`
	Toggle WidgetToggleCmd `cmd:"" help:"Toggle today's completion of a widget habit."`
}

type WidgetShowCmd struct {
	JSON bool `name:"json" help:"Print the snapshot as JSON for external widgets."`
}

func (c *WidgetShowCmd) Run(ctx *cli.Context) error {
	snap, err := snapshot(ctx)
	if err != nil {
		return err
	}
	if c.JSON {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	ctx.Printf("%s", widget.Render(snap))
	return nil
}

type WidgetToggleCmd struct {
	Habit string `arg:"" help:"Row of the habit in the widget (starting at 1), or its name."`
	JSON  bool   `name:"json" help:"Print the updated snapshot as JSON."`
}

func (c *WidgetToggleCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	var id string
	if pos, err := strconv.Atoi(c.Habit); err == nil {
		snap, err := snapshot(ctx)
		if err != nil {
			return err
		}
		if pos < 1 || pos > len(snap.Habits) {
			return fmt.Errorf("no habit at position %d (widget shows %d)", pos, len(snap.Habits))
		}
		id = snap.Habits[pos-1].ID
	} else {
		h, err := tr.FindHabit(c.Habit)
		if err != nil {
			return err
		}
		id = h.ID
	}

	if _, err := tr.ToggleToday(id); err != nil {
		return err
	}

	return (&WidgetShowCmd{JSON: c.JSON}).Run(ctx)
}

func snapshot(ctx *cli.Context) (widget.Snapshot, error) {
	tr, err := ctx.Tracker()
	if err != nil {
		return widget.Snapshot{}, err
	}
	statuses, err := tr.Statuses(false)
	if err != nil {
		return widget.Snapshot{}, err
	}
	return widget.Build(statuses, tr.Now()), nil
}

