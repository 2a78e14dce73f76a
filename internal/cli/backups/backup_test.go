package backups

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgurlek/hybit/internal/cli"
	"github.com/mgurlek/hybit/internal/storage/postgres"
	"github.com/mgurlek/hybit/internal/storage/sqlite"
	"github.com/mgurlek/hybit/internal/tracker"
)

func setup(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "hybit.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	ctx := cli.NewContext(store)
	ctx.Out = &out
	ctx.In = strings.NewReader("")
	ctx.Now = func() time.Time { return time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC) }
	return ctx, &out
}

func TestResolveBackup(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	require.NoError(t, os.MkdirAll(backupDir, 0700))
	named := filepath.Join(backupDir, "hybit-20260320-091530.db")
	require.NoError(t, os.WriteFile(named, []byte("x"), 0600))

	got, err := resolveBackup(named, backupDir)
	require.NoError(t, err)
	assert.Equal(t, named, got)

	got, err = resolveBackup("hybit-20260320-091530.db", backupDir)
	require.NoError(t, err)
	assert.Equal(t, named, got)

	_, err = resolveBackup("missing.db", backupDir)
	assert.Error(t, err)
	_, err = resolveBackup(filepath.Join(dir, "missing.db"), backupDir)
	assert.Error(t, err)
}

func TestCreateListRestore(t *testing.T) {
	ctx, out := setup(t)

	require.NoError(t, (&BackupListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No backups found.")

	tr, err := ctx.Tracker()
	require.NoError(t, err)
	_, err = tr.CreateHabit(tracker.NewHabit{Name: "Read"})
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, (&BackupCreateCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "✓ Backup created: hybit-")
	name := strings.TrimSpace(strings.TrimPrefix(out.String(), "✓ Backup created: "))

	out.Reset()
	require.NoError(t, (&BackupListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "1 total")
	assert.Contains(t, out.String(), name)

	_, err = tr.CreateHabit(tracker.NewHabit{Name: "Walk"})
	require.NoError(t, err)

	ctx.In = strings.NewReader("n\n")
	out.Reset()
	require.NoError(t, (&BackupRestoreCmd{BackupFile: name}).Run(ctx))
	assert.Contains(t, out.String(), "Restore cancelled.")

	out.Reset()
	require.NoError(t, (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(ctx))
	assert.Contains(t, out.String(), "Database restored successfully")

	require.NoError(t, ctx.Store.Load())
	habits, err := ctx.Store.GetAllHabits(true, true)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Read", habits[0].Name)
}

func TestRequiresSQLite(t *testing.T) {
	ctx := cli.NewContext(postgres.New("postgresql://user@localhost/hybit"))
	assert.ErrorIs(t, (&BackupCreateCmd{}).Run(ctx), errNotSQLite)
	assert.ErrorIs(t, (&BackupListCmd{}).Run(ctx), errNotSQLite)
	assert.ErrorIs(t, (&BackupRestoreCmd{BackupFile: "x.db"}).Run(ctx), errNotSQLite)
}
