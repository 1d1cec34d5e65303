package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Клиенты (Customers) ============

type CustomerResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int                `json:"total"`
}

type CreateCustomerRequest struct {
	Name  string  `json:"name" binding:"required,min=1,max=100"`
	Phone *string `json:"phone"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone *string `json:"phone"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// ============ Автомобили (Vehicles) ============

type VehicleResponse struct {
	ID           uint      `json:"id"`
	Plate        string    `json:"plate"`
	Brand        string    `json:"brand"`
	Model        *string   `json:"model,omitempty"`
	Color        *string   `json:"color,omitempty"`
	CustomerID   uint      `json:"customerId"`
	CustomerName string    `json:"customerName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type VehicleListResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
	Total    int               `json:"total"`
}

type CreateVehicleRequest struct {
	Plate      string  `json:"plate" binding:"required,min=2,max=20"`
	Brand      string  `json:"brand" binding:"required,min=1,max=50"`
	Model      *string `json:"model"`
	Color      *string `json:"color"`
	CustomerID uint    `json:"customerId" binding:"required"`
}

type UpdateVehicleRequest struct {
	Plate      *string `json:"plate" binding:"omitempty,min=2,max=20"`
	Brand      *string `json:"brand" binding:"omitempty,min=1,max=50"`
	Model      *string `json:"model"`
	Color      *string `json:"color"`
	CustomerID *uint   `json:"customerId"`
}

// ============ Услуги (Services) ============

type ServiceResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description *string         `json:"description"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

// ============ Заказ-наряды (Jobs) ============

type JobResponse struct {
	ID            uint              `json:"id"`
	VehicleID     uint              `json:"vehicleId"`
	VehiclePlate  string            `json:"vehiclePlate,omitempty"`
	CustomerID    uint              `json:"customerId"`
	CustomerName  string            `json:"customerName,omitempty"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	PaidAmount    decimal.Decimal   `json:"paidAmount"`
	PaymentMethod string            `json:"paymentMethod"`
	Status        string            `json:"status"`
	Notes         *string           `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	Services      []ServiceResponse `json:"services,omitempty"` // только для GET одного заказа
}

type JobListResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Total int           `json:"total"`
}

type CreateJobRequest struct {
	VehicleID     uint             `json:"vehicleId" binding:"required"`
	CustomerID    uint             `json:"customerId" binding:"required"`
	ServiceIDs    []uint           `json:"serviceIds"`
	TotalAmount   *decimal.Decimal `json:"totalAmount"` // без суммы считается по прайсу услуг
	PaidAmount    *decimal.Decimal `json:"paidAmount"`
	PaymentMethod string           `json:"paymentMethod" binding:"required,oneof=cash card transfer"`
	Status        string           `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	Notes         *string          `json:"notes"`
}

type UpdateJobRequest struct {
	TotalAmount   *decimal.Decimal `json:"totalAmount"`
	PaidAmount    *decimal.Decimal `json:"paidAmount"`
	PaymentMethod *string          `json:"paymentMethod" binding:"omitempty,oneof=cash card transfer"`
	Status        *string          `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	Notes         *string          `json:"notes"`
}

// ============ Расходы (Expenses) ============

type ExpenseResponse struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     time.Time       `json:"date"`
	Notes    *string         `json:"notes,omitempty"`
}

type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    int               `json:"total"`
}

type CreateExpenseRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=100"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Category string          `json:"category" binding:"required,oneof=materials rent water electricity staff other"`
	Date     string          `json:"date" binding:"required"` // YYYY-MM-DD
	Notes    *string         `json:"notes"`
}

type UpdateExpenseRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Amount   *decimal.Decimal `json:"amount"`
	Category *string          `json:"category" binding:"omitempty,oneof=materials rent water electricity staff other"`
	Date     *string          `json:"date"` // YYYY-MM-DD
	Notes    *string          `json:"notes"`
}

// ============ Статистика ============

type DailyStatsResponse struct {
	Date            string          `json:"date"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	TotalJobs       int             `json:"totalJobs"`
	PendingPayments decimal.Decimal `json:"pendingPayments"`
}

type PaymentMethodStatResponse struct {
	Method string          `json:"method"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

type NetProfitResponse struct {
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

type PopularServiceResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ============ Бэкапы ============

type ImportResultResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type BackupSettingsRequest struct {
	AutoBackupEnabled bool `json:"autoBackupEnabled"`
}

type BackupSettingsResponse struct {
	AutoBackupEnabled bool `json:"autoBackupEnabled"`
}

// ============ Пользователи (Users) ============

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	IsAdmin  bool   `json:"isAdmin"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}

type UpdateUserRequest struct {
	FullName string `json:"fullName"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}
