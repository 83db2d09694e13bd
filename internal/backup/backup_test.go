package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/collegefinder/internal/store"
)

func seedDatabase(t *testing.T, dir string) string {
	t.Helper()
	dbPath := filepath.Join(dir, "collegefinder.db")
	s, err := store.New(dbPath)
	require.NoError(t, err)
	_, err = s.DB().Exec(`CREATE TABLE colleges (id INTEGER PRIMARY KEY, college_name TEXT)`)
	require.NoError(t, err)
	_, err = s.DB().Exec(`INSERT INTO colleges (college_name) VALUES ('Alpha')`)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	return dbPath
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	dbPath := seedDatabase(t, src)
	cfgPath := filepath.Join(src, "collegefinder.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server:\n  port: \"8000\"\n"), 0o600))

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	require.NoError(t, Backup(ctx, dbPath, cfgPath, archive))

	dst := t.TempDir()
	m, err := Restore(ctx, archive, dst, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"collegefinder.db", "collegefinder.yaml"}, m.Files)
	assert.False(t, m.CreatedAt.IsZero())

	s, err := store.New(filepath.Join(dst, "collegefinder.db"))
	require.NoError(t, err)
	defer s.Close()
	var name string
	require.NoError(t, s.DB().QueryRow(`SELECT college_name FROM colleges`).Scan(&name))
	assert.Equal(t, "Alpha", name)

	cfg, err := os.ReadFile(filepath.Join(dst, "collegefinder.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "port")
}

func TestBackupSkipsMissingConfig(t *testing.T) {
	ctx := context.Background()
	dbPath := seedDatabase(t, t.TempDir())
	archive := filepath.Join(t.TempDir(), "backup.tar.gz")

	require.NoError(t, Backup(ctx, dbPath, "/nonexistent/config.yaml", archive))

	m, err := Restore(ctx, archive, t.TempDir(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"collegefinder.db"}, m.Files)
}

func TestBackupMissingDatabase(t *testing.T) {
	err := Backup(context.Background(), filepath.Join(t.TempDir(), "nope.db"), "", filepath.Join(t.TempDir(), "out.tar.gz"))
	assert.Error(t, err)
}

func TestRestoreRefusesOverwrite(t *testing.T) {
	ctx := context.Background()
	dbPath := seedDatabase(t, t.TempDir())
	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	require.NoError(t, Backup(ctx, dbPath, "", archive))

	dst := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dst, "collegefinder.db"), []byte("old"), 0o600))

	_, err := Restore(ctx, archive, dst, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExists), "error = %v", err)

	_, err = Restore(ctx, archive, dst, true)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dst, "collegefinder.db"))
	require.NoError(t, err)
	assert.NotEqual(t, "old", string(data))
}
