package backup

import (
	"fmt"
	"sync"
	"time"

	"backend/internal/app/ds"
)

// Store - доступ к данным, который нужен движку бэкапов.
// Репозиторий реализует его поверх PostgreSQL, тесты - поверх памяти.
type Store interface {
	AllCustomers() ([]ds.Customer, error)
	AllVehicles() ([]ds.Vehicle, error)
	AllServices() ([]ds.Service, error)
	AllJobs() ([]ds.Job, error)
	AllJobServices() ([]ds.JobService, error)
	AllUsers() ([]ds.User, error)
	AllExpenses() ([]ds.Expense, error)

	// Restore выполняет fn в одной транзакции: любая ошибка внутри
	// откатывает хранилище к состоянию до импорта
	Restore(fn func(tx RestoreTx) error) error
}

// RestoreTx - операции, доступные внутри транзакции восстановления
type RestoreTx interface {
	DeleteAllJobServices() error
	DeleteAllJobs() error
	DeleteAllVehicles() error
	DeleteAllExpenses() error
	DeleteAllCustomers() error
	DeleteNonSystemServices() error
	DeleteNonAdminUsers() error

	// SystemServicesByName - оставшиеся после очистки системные услуги,
	// чтобы не плодить дубликаты по именам из снимка
	SystemServicesByName() (map[string]uint, error)

	// Insert* вставляют запись с ID=0; хранилище назначает новый ID
	InsertCustomer(c *ds.Customer) error
	InsertVehicle(v *ds.Vehicle) error
	InsertService(s *ds.Service) error
	InsertJob(j *ds.Job) error
	InsertJobService(l *ds.JobService) error
	InsertUser(u *ds.User) error
	InsertExpense(e *ds.Expense) error
}

// Engine выполняет полный экспорт и восстановление базы
type Engine struct {
	store Store

	// Импорт переписывает всю базу; два одновременных импорта (или импорт
	// во время экспорта) недопустимы
	mu sync.Mutex
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Export читает все сущности целиком и упаковывает в снимок.
// Только чтение, состояние базы не меняется.
func (e *Engine) Export() (*Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	customers, err := e.store.AllCustomers()
	if err != nil {
		return nil, fmt.Errorf("export customers: %w", err)
	}
	vehicles, err := e.store.AllVehicles()
	if err != nil {
		return nil, fmt.Errorf("export vehicles: %w", err)
	}
	services, err := e.store.AllServices()
	if err != nil {
		return nil, fmt.Errorf("export services: %w", err)
	}
	jobs, err := e.store.AllJobs()
	if err != nil {
		return nil, fmt.Errorf("export jobs: %w", err)
	}
	links, err := e.store.AllJobServices()
	if err != nil {
		return nil, fmt.Errorf("export job services: %w", err)
	}
	users, err := e.store.AllUsers()
	if err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}
	expenses, err := e.store.AllExpenses()
	if err != nil {
		return nil, fmt.Errorf("export expenses: %w", err)
	}

	snap := &Snapshot{
		Customers:   make([]CustomerRecord, 0, len(customers)),
		Vehicles:    make([]VehicleRecord, 0, len(vehicles)),
		Services:    make([]ServiceRecord, 0, len(services)),
		Jobs:        make([]JobRecord, 0, len(jobs)),
		JobServices: make([]JobServiceRecord, 0, len(links)),
		Users:       make([]UserRecord, 0, len(users)),
		Expenses:    make([]ExpenseRecord, 0, len(expenses)),
		Timestamp:   time.Now(),
		Version:     SnapshotVersion,
	}

	for _, c := range customers {
		snap.Customers = append(snap.Customers, CustomerRecord{
			ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email, CreatedAt: c.CreatedAt,
		})
	}
	for _, v := range vehicles {
		snap.Vehicles = append(snap.Vehicles, VehicleRecord{
			ID: v.ID, Plate: v.Plate, Brand: v.Brand, Model: v.Model, Color: v.Color,
			CustomerID: v.CustomerID, CreatedAt: v.CreatedAt,
		})
	}
	for _, s := range services {
		snap.Services = append(snap.Services, ServiceRecord{
			ID: s.ID, Name: s.Name, Price: s.Price, Description: s.Description,
		})
	}
	for _, j := range jobs {
		snap.Jobs = append(snap.Jobs, JobRecord{
			ID: j.ID, VehicleID: j.VehicleID, CustomerID: j.CustomerID,
			TotalAmount: j.TotalAmount, PaidAmount: j.PaidAmount,
			PaymentMethod: string(j.PaymentMethod), Status: string(j.Status),
			Notes: j.Notes, CreatedAt: j.CreatedAt,
		})
	}
	for _, l := range links {
		snap.JobServices = append(snap.JobServices, JobServiceRecord{
			JobID: l.JobID, ServiceID: l.ServiceID,
		})
	}
	for _, u := range users {
		snap.Users = append(snap.Users, UserRecord{
			ID: u.ID, Username: u.Username, Password: u.Password,
			FullName: u.FullName, IsAdmin: u.IsAdmin,
		})
	}
	for _, exp := range expenses {
		snap.Expenses = append(snap.Expenses, ExpenseRecord{
			ID: exp.ID, Name: exp.Name, Amount: exp.Amount,
			Category: string(exp.Category), Date: exp.Date, Notes: exp.Notes,
		})
	}

	return snap, nil
}

// Import восстанавливает базу из снимка. Последовательность выполняется в
// одной транзакции: удаление детей раньше родителей, затем вставка с
// перешивкой внешних ключей на свежие ID. Системные услуги и администраторы
// переживают импорт.
func (e *Engine) Import(snap *Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.Restore(func(tx RestoreTx) error {
		// Шаг 1: очистка в порядке зависимостей (дети раньше родителей)
		if err := tx.DeleteAllJobServices(); err != nil {
			return fmt.Errorf("delete job services: %w", err)
		}
		if err := tx.DeleteAllJobs(); err != nil {
			return fmt.Errorf("delete jobs: %w", err)
		}
		if err := tx.DeleteAllVehicles(); err != nil {
			return fmt.Errorf("delete vehicles: %w", err)
		}
		if err := tx.DeleteAllExpenses(); err != nil {
			return fmt.Errorf("delete expenses: %w", err)
		}
		if err := tx.DeleteAllCustomers(); err != nil {
			return fmt.Errorf("delete customers: %w", err)
		}
		if err := tx.DeleteNonSystemServices(); err != nil {
			return fmt.Errorf("delete services: %w", err)
		}
		if err := tx.DeleteNonAdminUsers(); err != nil {
			return fmt.Errorf("delete users: %w", err)
		}

		systemServices, err := tx.SystemServicesByName()
		if err != nil {
			return fmt.Errorf("load system services: %w", err)
		}

		// Шаг 2: вставка с построением карт старый ID -> новый ID.
		// Снимок хранит ключи в своей нумерации, хранилище назначает свою.
		customerIDs := make(map[uint]uint, len(snap.Customers))
		for _, rec := range snap.Customers {
			c := ds.Customer{Name: rec.Name, Phone: rec.Phone, Email: rec.Email, CreatedAt: rec.CreatedAt}
			if err := tx.InsertCustomer(&c); err != nil {
				return fmt.Errorf("insert customer %q: %w", rec.Name, err)
			}
			customerIDs[rec.ID] = c.ID
		}

		vehicleIDs := make(map[uint]uint, len(snap.Vehicles))
		for _, rec := range snap.Vehicles {
			customerID, ok := customerIDs[rec.CustomerID]
			if !ok {
				return fmt.Errorf("vehicle %q ссылается на отсутствующего клиента %d", rec.Plate, rec.CustomerID)
			}
			v := ds.Vehicle{
				Plate: rec.Plate, Brand: rec.Brand, Model: rec.Model, Color: rec.Color,
				CustomerID: customerID, CreatedAt: rec.CreatedAt,
			}
			if err := tx.InsertVehicle(&v); err != nil {
				return fmt.Errorf("insert vehicle %q: %w", rec.Plate, err)
			}
			vehicleIDs[rec.ID] = v.ID
		}

		serviceIDs := make(map[uint]uint, len(snap.Services))
		for _, rec := range snap.Services {
			// Совпадение по имени с системной услугой: вставку пропускаем,
			// ссылки из снимка переводим на системную запись
			if sysID, ok := systemServices[rec.Name]; ok {
				serviceIDs[rec.ID] = sysID
				continue
			}
			s := ds.Service{Name: rec.Name, Price: rec.Price, Description: rec.Description}
			if err := tx.InsertService(&s); err != nil {
				return fmt.Errorf("insert service %q: %w", rec.Name, err)
			}
			serviceIDs[rec.ID] = s.ID
		}

		jobIDs := make(map[uint]uint, len(snap.Jobs))
		for _, rec := range snap.Jobs {
			vehicleID, ok := vehicleIDs[rec.VehicleID]
			if !ok {
				return fmt.Errorf("job %d ссылается на отсутствующий автомобиль %d", rec.ID, rec.VehicleID)
			}
			customerID, ok := customerIDs[rec.CustomerID]
			if !ok {
				return fmt.Errorf("job %d ссылается на отсутствующего клиента %d", rec.ID, rec.CustomerID)
			}
			j := ds.Job{
				VehicleID: vehicleID, CustomerID: customerID,
				TotalAmount: rec.TotalAmount, PaidAmount: rec.PaidAmount,
				PaymentMethod: ds.PaymentMethod(rec.PaymentMethod),
				Status:        ds.JobStatus(rec.Status),
				Notes:         rec.Notes, CreatedAt: rec.CreatedAt,
			}
			if err := tx.InsertJob(&j); err != nil {
				return fmt.Errorf("insert job %d: %w", rec.ID, err)
			}
			jobIDs[rec.ID] = j.ID
		}

		for _, rec := range snap.JobServices {
			jobID, ok := jobIDs[rec.JobID]
			if !ok {
				return fmt.Errorf("связь ссылается на отсутствующий заказ %d", rec.JobID)
			}
			serviceID, ok := serviceIDs[rec.ServiceID]
			if !ok {
				return fmt.Errorf("связь ссылается на отсутствующую услугу %d", rec.ServiceID)
			}
			l := ds.JobService{JobID: jobID, ServiceID: serviceID}
			if err := tx.InsertJobService(&l); err != nil {
				return fmt.Errorf("insert job service link: %w", err)
			}
		}

		for _, rec := range snap.Users {
			// Администраторы из снимка не вставляются: действующие админские
			// учётки сохранены на шаге очистки
			if rec.IsAdmin {
				continue
			}
			u := ds.User{Username: rec.Username, Password: rec.Password, FullName: rec.FullName}
			if err := tx.InsertUser(&u); err != nil {
				return fmt.Errorf("insert user %q: %w", rec.Username, err)
			}
		}

		for _, rec := range snap.Expenses {
			exp := ds.Expense{
				Name: rec.Name, Amount: rec.Amount,
				Category: ds.ExpenseCategory(rec.Category),
				Date:     rec.Date, Notes: rec.Notes,
			}
			if err := tx.InsertExpense(&exp); err != nil {
				return fmt.Errorf("insert expense %q: %w", rec.Name, err)
			}
		}

		return nil
	})
}
