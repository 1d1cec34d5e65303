package ds

import (
	"time"

	"github.com/shopspring/decimal"
)

// Категории расходов
type ExpenseCategory string

const (
	ExpenseMaterials   ExpenseCategory = "materials"
	ExpenseRent        ExpenseCategory = "rent"
	ExpenseWater       ExpenseCategory = "water"
	ExpenseElectricity ExpenseCategory = "electricity"
	ExpenseStaff       ExpenseCategory = "staff"
	ExpenseOther       ExpenseCategory = "other"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseMaterials, ExpenseRent, ExpenseWater, ExpenseElectricity, ExpenseStaff, ExpenseOther:
		return true
	}
	return false
}

// 7. Таблица расходов
type Expense struct {
	ID       uint            `gorm:"primaryKey"`
	Name     string          `gorm:"type:varchar(100);not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Category ExpenseCategory `gorm:"type:varchar(20);not null"`
	Date     time.Time       `gorm:"not null;index"`
	Notes    *string         `gorm:"type:text"`
}
