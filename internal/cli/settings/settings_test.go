package settings

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgurlek/hybit/internal/cli"
	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/storage/sqlite"
)

func ptr[T any](v T) *T { return &v }

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		cmd     SettingsCmd
		check   func(*testing.T, models.Settings)
		wantErr bool
	}{
		{
			name: "timezone",
			cmd:  SettingsCmd{Timezone: ptr("Europe/Istanbul")},
			check: func(t *testing.T, s models.Settings) {
				assert.Equal(t, "Europe/Istanbul", s.Timezone)
			},
		},
		{
			name: "cutoff and window",
			cmd:  SettingsCmd{DayCutoff: ptr(0), RandomWindowStart: ptr("10:00"), RandomWindowEnd: ptr("20:00")},
			check: func(t *testing.T, s models.Settings) {
				assert.Equal(t, 0, s.DayCutoffHour)
				assert.Equal(t, "10:00", s.RandomWindowStart)
				assert.Equal(t, "20:00", s.RandomWindowEnd)
			},
		},
		{
			name: "notifications off",
			cmd:  SettingsCmd{NotificationsEnabled: ptr(false), GraceMin: ptr(0)},
			check: func(t *testing.T, s models.Settings) {
				assert.False(t, s.NotificationsEnabled)
				assert.Equal(t, 0, s.NotificationGraceMin)
			},
		},
		{name: "unknown timezone", cmd: SettingsCmd{Timezone: ptr("Mars/Olympus")}, wantErr: true},
		{name: "cutoff too large", cmd: SettingsCmd{DayCutoff: ptr(24)}, wantErr: true},
		{name: "negative cutoff", cmd: SettingsCmd{DayCutoff: ptr(-1)}, wantErr: true},
		{name: "zero target", cmd: SettingsCmd{DefaultTarget: ptr(0)}, wantErr: true},
		{name: "bad window", cmd: SettingsCmd{RandomWindowEnd: ptr("9pm")}, wantErr: true},
		{name: "negative grace", cmd: SettingsCmd{GraceMin: ptr(-5)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.DefaultSettings()
			updated, err := tt.cmd.apply(&s)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, updated)
			tt.check(t, s)
		})
	}
}

func TestRunSavesAndResetsTracker(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "hybit.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	ctx := cli.NewContext(store)
	ctx.Out = &out
	ctx.Now = func() time.Time { return time.Date(2026, 3, 20, 3, 0, 0, 0, time.UTC) }

	require.NoError(t, (&SettingsCmd{Timezone: ptr("UTC")}).Run(ctx))
	tr, err := ctx.Tracker()
	require.NoError(t, err)
	assert.Equal(t, "2026-03-19", tr.Today().String())

	require.NoError(t, (&SettingsCmd{DayCutoff: ptr(2)}).Run(ctx))
	tr, err = ctx.Tracker()
	require.NoError(t, err)
	assert.Equal(t, "2026-03-20", tr.Today().String())

	out.Reset()
	require.NoError(t, (&SettingsCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No changes specified")

	out.Reset()
	require.NoError(t, (&SettingsCmd{List: true}).Run(ctx))
	assert.Contains(t, out.String(), "Day Cutoff:            02:00")
}
