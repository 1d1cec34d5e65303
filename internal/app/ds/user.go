package ds

// 6. Таблица пользователей
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"type:varchar(50);unique;not null"`
	Password string `gorm:"type:varchar(255);not null"` // формат: saltHex$hashHex
	FullName string `gorm:"type:varchar(100)"`
	IsAdmin  bool   `gorm:"type:boolean;default:false;not null"`
}
