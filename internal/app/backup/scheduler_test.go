package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettings struct {
	enabled bool
}

func (f *fakeSettings) GetSettingBool(string) (bool, error) {
	return f.enabled, nil
}

func TestSchedulerRunRespectsSetting(t *testing.T) {
	dir := t.TempDir()
	engine := NewEngine(seededStore())
	settings := &fakeSettings{}

	s := NewScheduler(engine, settings, dir)

	// Автобэкап выключен: каталог остаётся пустым
	s.runOnce()
	files, err := ListBackups(dir)
	require.NoError(t, err)
	assert.Empty(t, files)

	settings.enabled = true
	s.runOnce()
	files, err = ListBackups(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)

	// Плановая копия автоматическая, не ручная
	assert.Contains(t, files[0].Filename, "carwash_backup_")
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler(NewEngine(seededStore()), &fakeSettings{}, t.TempDir())

	require.NoError(t, s.Start())
	s.Stop()
}
