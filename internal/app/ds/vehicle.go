package ds

import "time"

// 2. Таблица автомобилей
type Vehicle struct {
	ID         uint      `gorm:"primaryKey"`
	Plate      string    `gorm:"type:varchar(20);unique;not null"` // Госномер
	Brand      string    `gorm:"type:varchar(50);not null"`
	Model      *string   `gorm:"type:varchar(50)"`
	Color      *string   `gorm:"type:varchar(30)"`
	CustomerID uint      `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"not null"`

	Customer Customer `gorm:"foreignKey:CustomerID"`
}
