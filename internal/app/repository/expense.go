package repository

import (
	"errors"
	"time"

	"backend/internal/app/ds"

	"github.com/shopspring/decimal"
)

// Методы для работы с расходами

type ExpenseFilter struct {
	Category ds.ExpenseCategory
	DateFrom *time.Time
	DateTo   *time.Time
}

func (r *Repository) GetExpenses(filter ExpenseFilter) ([]ds.Expense, error) {
	var expenses []ds.Expense
	q := r.db.Order("date DESC")

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.DateFrom != nil {
		q = q.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("date <= ?", *filter.DateTo)
	}

	err := q.Find(&expenses).Error
	return expenses, err
}

func (r *Repository) GetExpenseByID(id uint) (*ds.Expense, error) {
	var expense ds.Expense
	err := r.db.First(&expense, id).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *Repository) CreateExpense(name string, amount decimal.Decimal,
	category ds.ExpenseCategory, date time.Time, notes *string) (*ds.Expense, error) {

	expense := ds.Expense{
		Name:     name,
		Amount:   amount,
		Category: category,
		Date:     date,
		Notes:    notes,
	}

	err := r.db.Create(&expense).Error
	if err != nil {
		return nil, err
	}

	return &expense, nil
}

// UpdateExpense обновляет только переданные поля
func (r *Repository) UpdateExpense(id uint, name *string, amount *decimal.Decimal,
	category *ds.ExpenseCategory, date *time.Time, notes *string) error {

	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if amount != nil {
		updates["amount"] = *amount
	}
	if category != nil {
		updates["category"] = *category
	}
	if date != nil {
		updates["date"] = *date
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&ds.Expense{}).Where("id = ?", id).Updates(updates).Error
}

func (r *Repository) DeleteExpense(id uint) error {
	result := r.db.Delete(&ds.Expense{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("расход не найден")
	}
	return nil
}

// ExpensesBetween возвращает расходы за период (границы включительно)
func (r *Repository) ExpensesBetween(from, to time.Time) ([]ds.Expense, error) {
	var expenses []ds.Expense
	err := r.db.Where("date >= ? AND date <= ?", from, to).Find(&expenses).Error
	return expenses, err
}
