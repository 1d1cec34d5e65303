package repository

import (
	"backend/internal/app/backup"
	"backend/internal/app/ds"

	"gorm.io/gorm"
)

// Реализация backup.Store: полное чтение и транзакционное восстановление

func (r *Repository) AllCustomers() ([]ds.Customer, error) {
	var customers []ds.Customer
	err := r.db.Order("id").Find(&customers).Error
	return customers, err
}

func (r *Repository) AllVehicles() ([]ds.Vehicle, error) {
	var vehicles []ds.Vehicle
	err := r.db.Order("id").Find(&vehicles).Error
	return vehicles, err
}

func (r *Repository) AllServices() ([]ds.Service, error) {
	var services []ds.Service
	err := r.db.Order("id").Find(&services).Error
	return services, err
}

func (r *Repository) AllJobServices() ([]ds.JobService, error) {
	var links []ds.JobService
	err := r.db.Order("id").Find(&links).Error
	return links, err
}

func (r *Repository) AllUsers() ([]ds.User, error) {
	var users []ds.User
	err := r.db.Order("id").Find(&users).Error
	return users, err
}

func (r *Repository) AllExpenses() ([]ds.Expense, error) {
	var expenses []ds.Expense
	err := r.db.Order("id").Find(&expenses).Error
	return expenses, err
}

// Restore выполняет восстановление в одной транзакции БД:
// ошибка внутри fn откатывает всё к состоянию до импорта
func (r *Repository) Restore(fn func(tx backup.RestoreTx) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&restoreTx{db: tx})
	})
}

type restoreTx struct {
	db *gorm.DB
}

func (t *restoreTx) DeleteAllJobServices() error {
	return t.db.Where("1 = 1").Delete(&ds.JobService{}).Error
}

func (t *restoreTx) DeleteAllJobs() error {
	return t.db.Where("1 = 1").Delete(&ds.Job{}).Error
}

func (t *restoreTx) DeleteAllVehicles() error {
	return t.db.Where("1 = 1").Delete(&ds.Vehicle{}).Error
}

func (t *restoreTx) DeleteAllExpenses() error {
	return t.db.Where("1 = 1").Delete(&ds.Expense{}).Error
}

func (t *restoreTx) DeleteAllCustomers() error {
	return t.db.Where("1 = 1").Delete(&ds.Customer{}).Error
}

// Системные услуги (ID в зарезервированном диапазоне) переживают импорт
func (t *restoreTx) DeleteNonSystemServices() error {
	return t.db.Where("id > ?", ds.SystemServiceIDLimit).Delete(&ds.Service{}).Error
}

// Администраторы переживают импорт, чтобы в системе остался хотя бы один вход
func (t *restoreTx) DeleteNonAdminUsers() error {
	return t.db.Where("is_admin = ?", false).Delete(&ds.User{}).Error
}

func (t *restoreTx) SystemServicesByName() (map[string]uint, error) {
	var services []ds.Service
	err := t.db.Where("id <= ?", ds.SystemServiceIDLimit).Find(&services).Error
	if err != nil {
		return nil, err
	}

	byName := make(map[string]uint, len(services))
	for _, s := range services {
		byName[s.Name] = s.ID
	}
	return byName, nil
}

func (t *restoreTx) InsertCustomer(c *ds.Customer) error {
	return t.db.Create(c).Error
}

func (t *restoreTx) InsertVehicle(v *ds.Vehicle) error {
	return t.db.Create(v).Error
}

func (t *restoreTx) InsertService(s *ds.Service) error {
	return t.db.Create(s).Error
}

func (t *restoreTx) InsertJob(j *ds.Job) error {
	return t.db.Create(j).Error
}

func (t *restoreTx) InsertJobService(l *ds.JobService) error {
	return t.db.Create(l).Error
}

func (t *restoreTx) InsertUser(u *ds.User) error {
	return t.db.Create(u).Error
}

func (t *restoreTx) InsertExpense(e *ds.Expense) error {
	return t.db.Create(e).Error
}
