package ds

import "github.com/shopspring/decimal"

// Системные услуги заводятся миграцией и занимают ID до этой границы.
// Импорт бэкапа их не трогает.
const SystemServiceIDLimit uint = 100

// 3. Таблица услуг (каталог моек) - ТОЛЬКО справочная информация
type Service struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description *string         `gorm:"type:text"`
	ImageURL    *string         `gorm:"type:varchar(255)"` // Nullable
}

// IsSystem сообщает, относится ли услуга к системному диапазону
func (s *Service) IsSystem() bool {
	return s.ID != 0 && s.ID <= SystemServiceIDLimit
}
