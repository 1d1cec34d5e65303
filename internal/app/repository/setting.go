package repository

import (
	"errors"
	"time"

	"backend/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Методы для настроек (ключ-значение)

func (r *Repository) GetSetting(key string) (string, error) {
	var setting ds.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// GetSettingBool возвращает false, если ключ не найден
func (r *Repository) GetSettingBool(key string) (bool, error) {
	value, err := r.GetSetting(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return value == "true", nil
}

// SetSetting создаёт или обновляет значение по ключу
func (r *Repository) SetSetting(key, value string) error {
	setting := ds.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

func (r *Repository) SetSettingBool(key string, value bool) error {
	str := "false"
	if value {
		str = "true"
	}
	return r.SetSetting(key, str)
}
