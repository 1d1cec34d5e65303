package stats

import (
	"sort"
	"time"

	"backend/internal/app/ds"

	"github.com/shopspring/decimal"
)

// Store - доступ к данным, который нужен агрегатору.
// Репозиторий реализует его поверх PostgreSQL, тесты - поверх памяти.
type Store interface {
	JobsBetween(from, to time.Time) ([]ds.Job, error)
	AllJobs() ([]ds.Job, error)
	ExpensesBetween(from, to time.Time) ([]ds.Expense, error)
	JobServiceLinks() ([]ds.JobService, error)
	ServiceNames() (map[uint]string, error)
}

// Aggregator считает производные финансовые показатели, ничего не сохраняя
type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// DayStart возвращает начало суток в зоне переданного времени
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd возвращает конец суток (23:59:59.999) - границы окна включительны
func DayEnd(t time.Time) time.Time {
	return DayStart(t).Add(24*time.Hour - time.Millisecond)
}

type DailyStats struct {
	TotalAmount     decimal.Decimal
	TotalPaid       decimal.Decimal
	TotalJobs       int
	PendingPayments decimal.Decimal
}

// DailyStats считает итоги за сутки. Отменённые заказы не участвуют ни в одном
// поле; пустой день возвращает нули, а не ошибку.
func (a *Aggregator) DailyStats(date time.Time) (*DailyStats, error) {
	jobs, err := a.store.JobsBetween(DayStart(date), DayEnd(date))
	if err != nil {
		return nil, err
	}

	out := &DailyStats{
		TotalAmount:     decimal.Zero,
		TotalPaid:       decimal.Zero,
		PendingPayments: decimal.Zero,
	}
	for _, j := range jobs {
		if !j.Status.InRevenue() {
			continue
		}
		out.TotalAmount = out.TotalAmount.Add(j.TotalAmount)
		out.TotalPaid = out.TotalPaid.Add(j.PaidAmount)
		out.TotalJobs++
	}
	// Денежная сумма недоплат, не количество заказов
	out.PendingPayments = out.TotalAmount.Sub(out.TotalPaid)

	return out, nil
}

type PaymentMethodStat struct {
	Method ds.PaymentMethod
	Count  int
	Total  decimal.Decimal
}

// PaymentMethodStats группирует оплаченные заказы по способу оплаты.
// В ответе всегда все три способа: для неиспользованных count=0, total=0.
// Учитывается paidAmount, а не totalAmount.
func (a *Aggregator) PaymentMethodStats() ([]PaymentMethodStat, error) {
	jobs, err := a.store.AllJobs()
	if err != nil {
		return nil, err
	}

	byMethod := make(map[ds.PaymentMethod]*PaymentMethodStat, len(ds.AllPaymentMethods))
	result := make([]PaymentMethodStat, len(ds.AllPaymentMethods))
	for i, m := range ds.AllPaymentMethods {
		result[i] = PaymentMethodStat{Method: m, Total: decimal.Zero}
		byMethod[m] = &result[i]
	}

	for _, j := range jobs {
		if !j.Status.InRevenue() || !j.PaidAmount.IsPositive() {
			continue
		}
		stat, ok := byMethod[j.PaymentMethod]
		if !ok {
			continue
		}
		stat.Count++
		stat.Total = stat.Total.Add(j.PaidAmount)
	}

	return result, nil
}

type NetProfit struct {
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal
}

// NetProfit считает выручку минус расходы за период. Результат может быть
// отрицательным, никакого отсечения нет.
func (a *Aggregator) NetProfit(from, to time.Time) (*NetProfit, error) {
	jobs, err := a.store.JobsBetween(from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := a.store.ExpensesBetween(from, to)
	if err != nil {
		return nil, err
	}

	out := &NetProfit{
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, j := range jobs {
		if !j.Status.InRevenue() {
			continue
		}
		out.TotalRevenue = out.TotalRevenue.Add(j.TotalAmount)
	}
	for _, e := range expenses {
		out.TotalExpenses = out.TotalExpenses.Add(e.Amount)
	}
	out.NetProfit = out.TotalRevenue.Sub(out.TotalExpenses)

	return out, nil
}

type PopularService struct {
	Name  string
	Count int
}

// PopularServices возвращает услуги по убыванию числа использований в заказах.
// Услуги, которые ни разу не выполнялись, в список не попадают.
func (a *Aggregator) PopularServices() ([]PopularService, error) {
	links, err := a.store.JobServiceLinks()
	if err != nil {
		return nil, err
	}
	names, err := a.store.ServiceNames()
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int)
	for _, l := range links {
		counts[l.ServiceID]++
	}

	result := make([]PopularService, 0, len(counts))
	for serviceID, count := range counts {
		name, ok := names[serviceID]
		if !ok {
			// Связь на удалённую услугу: показывать нечего
			continue
		}
		result = append(result, PopularService{Name: name, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})

	return result, nil
}
