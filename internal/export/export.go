// Package export writes the habit history as a JSON or YAML document.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mgurlek/hybit/internal/constants"
	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/storage"
	"github.com/mgurlek/hybit/internal/streak"
	"github.com/mgurlek/hybit/internal/tracker"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unsupported export format %q (use json or yaml)", s)
}

// Habit is a habit with its full completion history.
type Habit struct {
	models.Habit `yaml:",inline"`
	Streak       streak.Summary      `json:"streak" yaml:"streak"`
	Completions  []models.Completion `json:"completions" yaml:"completions"`
}

// Document is the root of an export.
type Document struct {
	App        string          `json:"app" yaml:"app"`
	Version    string          `json:"version" yaml:"version"`
	ExportedAt time.Time       `json:"exported_at" yaml:"exported_at"`
	Settings   models.Settings `json:"settings" yaml:"settings"`
	Habits     []Habit         `json:"habits" yaml:"habits"`
}

// Collect gathers every non-deleted habit, archived ones included.
func Collect(store storage.Provider, tr *tracker.Tracker) (Document, error) {
	settings, err := store.GetSettings()
	if err != nil {
		return Document{}, err
	}
	statuses, err := tr.Statuses(true)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		App:        constants.AppName,
		Version:    constants.Version,
		ExportedAt: tr.Now(),
		Settings:   settings,
		Habits:     make([]Habit, 0, len(statuses)),
	}
	for _, st := range statuses {
		completions, err := store.GetCompletionsForHabit(st.Habit.ID)
		if err != nil {
			return Document{}, err
		}
		if completions == nil {
			completions = []models.Completion{}
		}
		doc.Habits = append(doc.Habits, Habit{Habit: st.Habit, Streak: st.Summary, Completions: completions})
	}
	return doc, nil
}

// Write encodes doc to w in the given format.
func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported export format %q", format)
}
