package backup

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Версия формата снимка; пишется в каждый экспорт и проверяется при импорте
const SnapshotVersion = "1.0"

// Snapshot - полный самоописывающий снимок базы
type Snapshot struct {
	Customers   []CustomerRecord   `json:"customers"`
	Vehicles    []VehicleRecord    `json:"vehicles"`
	Services    []ServiceRecord    `json:"services"`
	Jobs        []JobRecord        `json:"jobs"`
	JobServices []JobServiceRecord `json:"jobServices"`
	Users       []UserRecord       `json:"users"`
	Expenses    []ExpenseRecord    `json:"expenses"`
	Timestamp   time.Time          `json:"timestamp"`
	Version     string             `json:"version"`
}

// Validate проверяет только конверт: timestamp и version обязательны.
// Глубокой проверки схемы нет - битые ссылки всплывут при вставке и
// откатят транзакцию целиком.
func (s *Snapshot) Validate() error {
	if s.Version == "" {
		return errors.New("в снимке отсутствует поле version")
	}
	if s.Timestamp.IsZero() {
		return errors.New("в снимке отсутствует поле timestamp")
	}
	return nil
}

type CustomerRecord struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type VehicleRecord struct {
	ID         uint      `json:"id"`
	Plate      string    `json:"plate"`
	Brand      string    `json:"brand"`
	Model      *string   `json:"model,omitempty"`
	Color      *string   `json:"color,omitempty"`
	CustomerID uint      `json:"customerId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ServiceRecord struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"`
}

type JobRecord struct {
	ID            uint            `json:"id"`
	VehicleID     uint            `json:"vehicleId"`
	CustomerID    uint            `json:"customerId"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type JobServiceRecord struct {
	JobID     uint `json:"jobId"`
	ServiceID uint `json:"serviceId"`
}

// UserRecord включает хеш пароля: снимок содержит всё, что нужно для
// восстановления на чистой базе. Файлы бэкапов нельзя раздавать наружу.
type UserRecord struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	IsAdmin  bool   `json:"isAdmin"`
}

type ExpenseRecord struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     time.Time       `json:"date"`
	Notes    *string         `json:"notes,omitempty"`
}
