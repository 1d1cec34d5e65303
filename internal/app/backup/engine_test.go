package backup

import (
	"fmt"
	"time"

	"testing"

	"backend/internal/app/ds"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore - хранилище в памяти с транзакционным Restore:
// изменения применяются только при успешном завершении fn
type memStore struct {
	customers   []ds.Customer
	vehicles    []ds.Vehicle
	services    []ds.Service
	jobs        []ds.Job
	jobServices []ds.JobService
	users       []ds.User
	expenses    []ds.Expense

	nextID uint
}

func newMemStore() *memStore {
	return &memStore{nextID: 1000}
}

func (m *memStore) AllCustomers() ([]ds.Customer, error)     { return m.customers, nil }
func (m *memStore) AllVehicles() ([]ds.Vehicle, error)       { return m.vehicles, nil }
func (m *memStore) AllServices() ([]ds.Service, error)       { return m.services, nil }
func (m *memStore) AllJobs() ([]ds.Job, error)               { return m.jobs, nil }
func (m *memStore) AllJobServices() ([]ds.JobService, error) { return m.jobServices, nil }
func (m *memStore) AllUsers() ([]ds.User, error)             { return m.users, nil }
func (m *memStore) AllExpenses() ([]ds.Expense, error)       { return m.expenses, nil }

func (m *memStore) Restore(fn func(tx RestoreTx) error) error {
	staged := *m
	staged.customers = append([]ds.Customer(nil), m.customers...)
	staged.vehicles = append([]ds.Vehicle(nil), m.vehicles...)
	staged.services = append([]ds.Service(nil), m.services...)
	staged.jobs = append([]ds.Job(nil), m.jobs...)
	staged.jobServices = append([]ds.JobService(nil), m.jobServices...)
	staged.users = append([]ds.User(nil), m.users...)
	staged.expenses = append([]ds.Expense(nil), m.expenses...)

	if err := fn(&memTx{store: &staged}); err != nil {
		return err
	}
	*m = staged
	return nil
}

type memTx struct {
	store *memStore
}

func (t *memTx) DeleteAllJobServices() error { t.store.jobServices = nil; return nil }
func (t *memTx) DeleteAllJobs() error        { t.store.jobs = nil; return nil }
func (t *memTx) DeleteAllVehicles() error    { t.store.vehicles = nil; return nil }
func (t *memTx) DeleteAllExpenses() error    { t.store.expenses = nil; return nil }
func (t *memTx) DeleteAllCustomers() error   { t.store.customers = nil; return nil }

func (t *memTx) DeleteNonSystemServices() error {
	var kept []ds.Service
	for _, s := range t.store.services {
		if s.IsSystem() {
			kept = append(kept, s)
		}
	}
	t.store.services = kept
	return nil
}

func (t *memTx) DeleteNonAdminUsers() error {
	var kept []ds.User
	for _, u := range t.store.users {
		if u.IsAdmin {
			kept = append(kept, u)
		}
	}
	t.store.users = kept
	return nil
}

func (t *memTx) SystemServicesByName() (map[string]uint, error) {
	out := make(map[string]uint)
	for _, s := range t.store.services {
		if s.IsSystem() {
			out[s.Name] = s.ID
		}
	}
	return out, nil
}

func (t *memTx) newID() uint {
	t.store.nextID++
	return t.store.nextID
}

func (t *memTx) InsertCustomer(c *ds.Customer) error {
	c.ID = t.newID()
	t.store.customers = append(t.store.customers, *c)
	return nil
}

func (t *memTx) InsertVehicle(v *ds.Vehicle) error {
	for _, existing := range t.store.vehicles {
		if existing.Plate == v.Plate {
			return fmt.Errorf("duplicate plate %q", v.Plate)
		}
	}
	v.ID = t.newID()
	t.store.vehicles = append(t.store.vehicles, *v)
	return nil
}

func (t *memTx) InsertService(s *ds.Service) error {
	s.ID = t.newID()
	t.store.services = append(t.store.services, *s)
	return nil
}

func (t *memTx) InsertJob(j *ds.Job) error {
	j.ID = t.newID()
	t.store.jobs = append(t.store.jobs, *j)
	return nil
}

func (t *memTx) InsertJobService(l *ds.JobService) error {
	l.ID = t.newID()
	t.store.jobServices = append(t.store.jobServices, *l)
	return nil
}

func (t *memTx) InsertUser(u *ds.User) error {
	u.ID = t.newID()
	t.store.users = append(t.store.users, *u)
	return nil
}

func (t *memTx) InsertExpense(e *ds.Expense) error {
	e.ID = t.newID()
	t.store.expenses = append(t.store.expenses, *e)
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seededStore() *memStore {
	m := newMemStore()
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local)
	m.users = []ds.User{
		{ID: 1, Username: "admin", Password: "salt$hash", FullName: "Администратор", IsAdmin: true},
		{ID: 2, Username: "worker", Password: "salt$hash2", FullName: "Работник"},
	}
	m.services = []ds.Service{
		{ID: 1, Name: "Мойка кузова", Price: dec("500")},
		{ID: 200, Name: "Нестандартная услуга", Price: dec("999")},
	}
	m.customers = []ds.Customer{
		{ID: 10, Name: "Иванов", CreatedAt: now},
	}
	m.vehicles = []ds.Vehicle{
		{ID: 20, Plate: "А123БВ77", Brand: "Lada", CustomerID: 10, CreatedAt: now},
	}
	m.jobs = []ds.Job{
		{ID: 30, VehicleID: 20, CustomerID: 10, TotalAmount: dec("1499"), PaidAmount: dec("1499"),
			PaymentMethod: ds.PaymentCash, Status: ds.JobStatusCompleted, CreatedAt: now},
	}
	m.jobServices = []ds.JobService{
		{ID: 40, JobID: 30, ServiceID: 1},
		{ID: 41, JobID: 30, ServiceID: 200},
	}
	m.expenses = []ds.Expense{
		{ID: 50, Name: "Шампунь", Amount: dec("300"), Category: ds.ExpenseMaterials, Date: now},
	}
	return m
}

func TestExportProducesValidSnapshot(t *testing.T) {
	engine := NewEngine(seededStore())

	snap, err := engine.Export()
	require.NoError(t, err)
	require.NoError(t, snap.Validate())

	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.False(t, snap.Timestamp.IsZero())
	assert.Len(t, snap.Customers, 1)
	assert.Len(t, snap.Vehicles, 1)
	assert.Len(t, snap.Services, 2)
	assert.Len(t, snap.Jobs, 1)
	assert.Len(t, snap.JobServices, 2)
	assert.Len(t, snap.Users, 2)
	assert.Len(t, snap.Expenses, 1)
}

func TestImportRoundTrip(t *testing.T) {
	source := seededStore()
	snap, err := NewEngine(source).Export()
	require.NoError(t, err)

	// Принимающая база: свой админ и те же системные услуги
	target := newMemStore()
	target.users = []ds.User{
		{ID: 1, Username: "root", Password: "x$y", IsAdmin: true},
	}
	target.services = []ds.Service{
		{ID: 1, Name: "Мойка кузова", Price: dec("500")},
	}

	require.NoError(t, NewEngine(target).Import(snap))

	assert.Len(t, target.customers, 1)
	assert.Len(t, target.vehicles, 1)
	assert.Len(t, target.jobs, 1)
	assert.Len(t, target.expenses, 1)
	assert.True(t, target.jobs[0].TotalAmount.Equal(dec("1499")))

	// Внешние ключи перешиты на новые ID
	assert.Equal(t, target.customers[0].ID, target.vehicles[0].CustomerID)
	assert.Equal(t, target.vehicles[0].ID, target.jobs[0].VehicleID)
	assert.Equal(t, target.customers[0].ID, target.jobs[0].CustomerID)
	require.Len(t, target.jobServices, 2)
	for _, l := range target.jobServices {
		assert.Equal(t, target.jobs[0].ID, l.JobID)
	}
}

func TestImportPreservesAdminsAndSystemServices(t *testing.T) {
	source := seededStore()
	snap, err := NewEngine(source).Export()
	require.NoError(t, err)

	target := newMemStore()
	target.users = []ds.User{
		{ID: 1, Username: "root", Password: "x$y", IsAdmin: true},
	}
	target.services = []ds.Service{
		{ID: 1, Name: "Мойка кузова", Price: dec("500")},
	}

	require.NoError(t, NewEngine(target).Import(snap))

	// Админ принимающей базы жив, админ из снимка не вставлен
	var admins, workers int
	for _, u := range target.users {
		if u.IsAdmin {
			admins++
			assert.Equal(t, "root", u.Username)
		} else {
			workers++
		}
	}
	assert.Equal(t, 1, admins)
	assert.Equal(t, 1, workers)

	// Ссылки на системную услугу перешли на локальную запись,
	// дубликат по имени не создан
	var systemCount int
	for _, s := range target.services {
		if s.Name == "Мойка кузова" {
			systemCount++
			assert.Equal(t, uint(1), s.ID)
		}
	}
	assert.Equal(t, 1, systemCount)
}

func TestImportRejectsInvalidEnvelope(t *testing.T) {
	target := seededStore()
	engine := NewEngine(target)

	err := engine.Import(&Snapshot{})
	require.Error(t, err)

	// База не тронута
	assert.Len(t, target.customers, 1)
	assert.Len(t, target.jobs, 1)
}

func TestImportRollsBackOnDanglingReference(t *testing.T) {
	snap, err := NewEngine(seededStore()).Export()
	require.NoError(t, err)

	// Ломаем снимок: автомобиль ссылается на несуществующего клиента
	snap.Vehicles[0].CustomerID = 777

	target := seededStore()
	err = NewEngine(target).Import(snap)
	require.Error(t, err)

	// Хранилище осталось в исходном состоянии
	assert.Len(t, target.customers, 1)
	assert.Len(t, target.vehicles, 1)
	assert.Len(t, target.jobs, 1)
	assert.Len(t, target.jobServices, 2)
}
