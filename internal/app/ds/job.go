package ds

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы заказ-наряда
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Valid проверяет, что статус один из четырёх известных
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// InRevenue — единственное место, где решается, попадает ли заказ в статистику.
// Отменённые заказы исключаются из всех агрегатов.
func (s JobStatus) InRevenue() bool {
	return s != JobStatusCancelled
}

// Способы оплаты
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// AllPaymentMethods — фиксированный порядок для отчётов
var AllPaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentTransfer}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

// 4. Таблица заказ-нарядов
type Job struct {
	ID            uint            `gorm:"primaryKey"`
	VehicleID     uint            `gorm:"not null;index"`
	CustomerID    uint            `gorm:"not null;index"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null"` // cash, card, transfer
	Status        JobStatus       `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes         *string         `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"not null;index"`

	Vehicle  Vehicle  `gorm:"foreignKey:VehicleID"`
	Customer Customer `gorm:"foreignKey:CustomerID"`
}
