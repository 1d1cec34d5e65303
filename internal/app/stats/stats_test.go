package stats

import (
	"testing"
	"time"

	"backend/internal/app/ds"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore - хранилище в памяти для проверки агрегатора без БД
type fakeStore struct {
	jobs     []ds.Job
	expenses []ds.Expense
	links    []ds.JobService
	names    map[uint]string
}

func (f *fakeStore) JobsBetween(from, to time.Time) ([]ds.Job, error) {
	var out []ds.Job
	for _, j := range f.jobs {
		if !j.CreatedAt.Before(from) && !j.CreatedAt.After(to) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeStore) AllJobs() ([]ds.Job, error) { return f.jobs, nil }

func (f *fakeStore) ExpensesBetween(from, to time.Time) ([]ds.Expense, error) {
	var out []ds.Expense
	for _, e := range f.expenses {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) JobServiceLinks() ([]ds.JobService, error) { return f.links, nil }

func (f *fakeStore) ServiceNames() (map[uint]string, error) { return f.names, nil }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func job(day time.Time, hour int, total, paid string, status ds.JobStatus, method ds.PaymentMethod) ds.Job {
	return ds.Job{
		TotalAmount:   dec(total),
		PaidAmount:    dec(paid),
		Status:        status,
		PaymentMethod: method,
		CreatedAt:     time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location()),
	}
}

func TestDailyStats_EmptyDay(t *testing.T) {
	agg := NewAggregator(&fakeStore{})

	got, err := agg.DailyStats(time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local))
	require.NoError(t, err)

	assert.Equal(t, 0, got.TotalJobs)
	assert.True(t, got.TotalAmount.IsZero())
	assert.True(t, got.TotalPaid.IsZero())
	assert.True(t, got.PendingPayments.IsZero())
}

func TestDailyStats_ExcludesCancelled(t *testing.T) {
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	store := &fakeStore{jobs: []ds.Job{
		job(day, 10, "1000", "1000", ds.JobStatusCompleted, ds.PaymentCash),
		job(day, 11, "500", "200", ds.JobStatusPending, ds.PaymentCard),
		job(day, 12, "9999", "9999", ds.JobStatusCancelled, ds.PaymentCash),
	}}
	agg := NewAggregator(store)

	got, err := agg.DailyStats(day)
	require.NoError(t, err)

	assert.Equal(t, 2, got.TotalJobs)
	assert.True(t, got.TotalAmount.Equal(dec("1500")), "got %s", got.TotalAmount)
	assert.True(t, got.TotalPaid.Equal(dec("1200")))
	// Недоплаты - это деньги, а не количество заказов
	assert.True(t, got.PendingPayments.Equal(dec("300")))
}

func TestDailyStats_DayBoundaries(t *testing.T) {
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	store := &fakeStore{jobs: []ds.Job{
		// Ровно начало суток
		{TotalAmount: dec("100"), PaidAmount: dec("100"), Status: ds.JobStatusCompleted,
			PaymentMethod: ds.PaymentCash, CreatedAt: DayStart(day)},
		// Последняя миллисекунда суток входит в окно
		{TotalAmount: dec("200"), PaidAmount: dec("200"), Status: ds.JobStatusCompleted,
			PaymentMethod: ds.PaymentCash, CreatedAt: DayEnd(day)},
		// Следующие сутки уже не входят
		{TotalAmount: dec("400"), PaidAmount: dec("400"), Status: ds.JobStatusCompleted,
			PaymentMethod: ds.PaymentCash, CreatedAt: DayStart(day.AddDate(0, 0, 1))},
	}}
	agg := NewAggregator(store)

	got, err := agg.DailyStats(day)
	require.NoError(t, err)

	assert.Equal(t, 2, got.TotalJobs)
	assert.True(t, got.TotalAmount.Equal(dec("300")), "got %s", got.TotalAmount)
}

func TestPaymentMethodStats_AlwaysAllMethods(t *testing.T) {
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	store := &fakeStore{jobs: []ds.Job{
		job(day, 10, "1000", "1000", ds.JobStatusCompleted, ds.PaymentCash),
		job(day, 11, "700", "700", ds.JobStatusCompleted, ds.PaymentCash),
		// Неоплаченный заказ в подсчёт не попадает
		job(day, 12, "500", "0", ds.JobStatusPending, ds.PaymentCard),
		// Отменённый тоже
		job(day, 13, "300", "300", ds.JobStatusCancelled, ds.PaymentTransfer),
	}}
	agg := NewAggregator(store)

	got, err := agg.PaymentMethodStats()
	require.NoError(t, err)
	require.Len(t, got, 3)

	byMethod := make(map[ds.PaymentMethod]PaymentMethodStat, len(got))
	for _, s := range got {
		byMethod[s.Method] = s
	}

	assert.Equal(t, 2, byMethod[ds.PaymentCash].Count)
	assert.True(t, byMethod[ds.PaymentCash].Total.Equal(dec("1700")))
	assert.Equal(t, 0, byMethod[ds.PaymentCard].Count)
	assert.True(t, byMethod[ds.PaymentCard].Total.IsZero())
	assert.Equal(t, 0, byMethod[ds.PaymentTransfer].Count)
	assert.True(t, byMethod[ds.PaymentTransfer].Total.IsZero())
}

func TestNetProfit_CanBeNegative(t *testing.T) {
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	store := &fakeStore{
		jobs: []ds.Job{
			job(day, 10, "100.50", "100.50", ds.JobStatusCompleted, ds.PaymentCash),
		},
		expenses: []ds.Expense{
			{Name: "Аренда", Amount: dec("130.25"), Category: ds.ExpenseRent, Date: day.Add(2 * time.Hour)},
		},
	}
	agg := NewAggregator(store)

	got, err := agg.NetProfit(DayStart(day), DayEnd(day))
	require.NoError(t, err)

	assert.True(t, got.TotalRevenue.Equal(dec("100.50")))
	assert.True(t, got.TotalExpenses.Equal(dec("130.25")))
	// Убыток показывается как есть, сумма точная без ошибок округления
	assert.True(t, got.NetProfit.Equal(dec("-29.75")), "got %s", got.NetProfit)
}

func TestNetProfit_RevenueCountsTotalNotPaid(t *testing.T) {
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	store := &fakeStore{jobs: []ds.Job{
		job(day, 10, "1000", "400", ds.JobStatusInProgress, ds.PaymentCash),
		job(day, 11, "500", "500", ds.JobStatusCancelled, ds.PaymentCash),
	}}
	agg := NewAggregator(store)

	got, err := agg.NetProfit(DayStart(day), DayEnd(day))
	require.NoError(t, err)

	assert.True(t, got.TotalRevenue.Equal(dec("1000")), "got %s", got.TotalRevenue)
}

func TestPopularServices_OrderAndDeleted(t *testing.T) {
	store := &fakeStore{
		links: []ds.JobService{
			{JobID: 1, ServiceID: 1},
			{JobID: 2, ServiceID: 1},
			{JobID: 2, ServiceID: 2},
			{JobID: 3, ServiceID: 2},
			{JobID: 3, ServiceID: 3},
			// Услуга 99 удалена из каталога
			{JobID: 3, ServiceID: 99},
		},
		names: map[uint]string{
			1: "Мойка кузова",
			2: "Химчистка салона",
			3: "Полировка кузова",
		},
	}
	agg := NewAggregator(store)

	got, err := agg.PopularServices()
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, PopularService{Name: "Мойка кузова", Count: 2}, got[0])
	assert.Equal(t, PopularService{Name: "Химчистка салона", Count: 2}, got[1])
	assert.Equal(t, PopularService{Name: "Полировка кузова", Count: 1}, got[2])
}
