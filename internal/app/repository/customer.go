package repository

import (
	"errors"
	"time"

	"backend/internal/app/ds"
)

// Методы для работы с клиентами

// ErrHasDependentJobs возвращается при попытке удалить клиента или автомобиль,
// на которого ссылаются заказ-наряды
var ErrHasDependentJobs = errors.New("запись используется в заказ-нарядах и не может быть удалена")

func (r *Repository) GetCustomers(search string) ([]ds.Customer, error) {
	var customers []ds.Customer
	q := r.db.Order("created_at DESC")
	if search != "" {
		q = q.Where("name ILIKE ? OR phone ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	err := q.Find(&customers).Error
	return customers, err
}

func (r *Repository) GetCustomerByID(id uint) (*ds.Customer, error) {
	var customer ds.Customer
	err := r.db.First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *Repository) CreateCustomer(name string, phone, email *string) (*ds.Customer, error) {
	customer := ds.Customer{
		Name:      name,
		Phone:     phone,
		Email:     email,
		CreatedAt: time.Now(),
	}

	err := r.db.Create(&customer).Error
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

// UpdateCustomer обновляет только переданные поля
func (r *Repository) UpdateCustomer(id uint, name *string, phone, email *string) error {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if phone != nil {
		updates["phone"] = *phone
	}
	if email != nil {
		updates["email"] = *email
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&ds.Customer{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteCustomer отказывает в удалении, пока на клиента ссылаются заказ-наряды
func (r *Repository) DeleteCustomer(id uint) error {
	var jobCount int64
	if err := r.db.Model(&ds.Job{}).Where("customer_id = ?", id).Count(&jobCount).Error; err != nil {
		return err
	}
	if jobCount > 0 {
		return ErrHasDependentJobs
	}

	result := r.db.Delete(&ds.Customer{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("клиент не найден")
	}
	return nil
}

func (r *Repository) CustomerExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Customer{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
