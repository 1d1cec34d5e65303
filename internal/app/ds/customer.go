package ds

import "time"

// 1. Таблица клиентов
type Customer struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Phone     *string   `gorm:"type:varchar(30)"` // Nullable
	Email     *string   `gorm:"type:varchar(100)"`
	CreatedAt time.Time `gorm:"not null"`
}
