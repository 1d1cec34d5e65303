package ds

// 5. Таблица многие-ко-многим (заказы-услуги) - ТОЛЬКО связь
type JobService struct {
	ID        uint `gorm:"primaryKey"`
	JobID     uint `gorm:"not null;index;uniqueIndex:idx_job_service"`
	ServiceID uint `gorm:"not null;index;uniqueIndex:idx_job_service"`

	Job     Job     `gorm:"foreignKey:JobID"`
	Service Service `gorm:"foreignKey:ServiceID"`
}
