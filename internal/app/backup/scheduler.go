package backup

import (
	"backend/internal/app/ds"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SettingsStore отдаёт настройку, включён ли автобэкап
type SettingsStore interface {
	GetSettingBool(key string) (bool, error)
}

// Scheduler запускает ночной автоматический бэкап. Первый запуск - ближайшая
// местная полночь, дальше раз в сутки. Ошибка не ретраится до следующего тика.
type Scheduler struct {
	engine   *Engine
	settings SettingsStore
	dir      string
	cron     *cron.Cron
}

func NewScheduler(engine *Engine, settings SettingsStore, dir string) *Scheduler {
	return &Scheduler{
		engine:   engine,
		settings: settings,
		dir:      dir,
		cron:     cron.New(),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@midnight", s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	logrus.Info("backup scheduler started")
	return nil
}

// Stop останавливает планировщик; уже начатый запуск дорабатывает
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logrus.Info("backup scheduler stopped")
}

func (s *Scheduler) runOnce() {
	enabled, err := s.settings.GetSettingBool(ds.SettingAutoBackupEnabled)
	if err != nil {
		logrus.Error("scheduled backup: cannot read setting: ", err)
		return
	}
	if !enabled {
		logrus.Debug("scheduled backup skipped: disabled")
		return
	}

	info, err := s.engine.WriteToDir(s.dir, false)
	if err != nil {
		logrus.Error("scheduled backup failed: ", err)
		return
	}
	logrus.Infof("scheduled backup written: %s (%d bytes)", info.Filename, info.Size)

	removed, err := PruneAutomatic(s.dir, KeepAutomatic)
	if err != nil {
		logrus.Warn("backup prune failed: ", err)
		return
	}
	if removed > 0 {
		logrus.Infof("pruned %d old automatic backups", removed)
	}
}
