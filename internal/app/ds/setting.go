package ds

import "time"

// Ключи настроек
const (
	SettingAutoBackupEnabled = "auto_backup_enabled"
)

// 8. Таблица настроек (ключ-значение)
type Setting struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"type:varchar(50);unique;not null"`
	Value     string    `gorm:"type:varchar(255);not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
