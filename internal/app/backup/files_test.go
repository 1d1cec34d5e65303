package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	stamp := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)

	auto := Filename(false, stamp)
	manual := Filename(true, stamp)

	// Двоеточия из ISO-метки заменены, имя пригодно для любой ФС
	assert.Equal(t, "carwash_backup_2026-03-15T23-59-00Z.json", auto)
	assert.Equal(t, "carwash_manual_backup_2026-03-15T23-59-00Z.json", manual)
	assert.NotContains(t, auto, ":")
}

func TestWriteToDirAndList(t *testing.T) {
	dir := t.TempDir()
	engine := NewEngine(seededStore())

	info, err := engine.WriteToDir(dir, true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, info.Filename), info.Path)
	assert.Positive(t, info.Size)

	files, err := ListBackups(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, info.Filename, files[0].Filename)
}

func TestListBackupsMissingDir(t *testing.T) {
	files, err := ListBackups(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "carwash_backup_2026-01-01T00-00-00Z.json"), []byte("{}"), 0o644))

	files, err := ListBackups(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "carwash_backup_2026-01-01T00-00-00Z.json", files[0].Filename)
}

func TestPruneAutomaticKeepsNewestAndManual(t *testing.T) {
	dir := t.TempDir()

	// 12 автоматических копий с возрастающим временем изменения
	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 12; i++ {
		stamp := base.Add(time.Duration(i) * time.Minute)
		path := filepath.Join(dir, Filename(false, stamp.UTC()))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
		require.NoError(t, os.Chtimes(path, stamp, stamp))
	}
	// Одна ручная, старше всех - удаляться не должна
	manualPath := filepath.Join(dir, Filename(true, base.Add(-time.Hour).UTC()))
	require.NoError(t, os.WriteFile(manualPath, []byte("{}"), 0o644))
	require.NoError(t, os.Chtimes(manualPath, base.Add(-time.Hour), base.Add(-time.Hour)))

	removed, err := PruneAutomatic(dir, KeepAutomatic)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	files, err := ListBackups(dir)
	require.NoError(t, err)
	assert.Len(t, files, KeepAutomatic+1)

	// Ручная копия на месте
	_, err = os.Stat(manualPath)
	assert.NoError(t, err)
}

func TestPruneAutomaticUnderLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Filename(false, time.Now().UTC()))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	removed, err := PruneAutomatic(dir, KeepAutomatic)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
