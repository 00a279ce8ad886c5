package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type EmployeeRepo interface {
	GetAllEmployees(ctx context.Context) ([]Employee, error)
	GetEmployeeByID(ctx context.Context, id int) (Employee, error)
	CreateOrUpdateEmployee(ctx context.Context, e Employee) error
	SetHourlyRate(ctx context.Context, id int, rate decimal.Decimal) error
}

type Employee struct {
	ID         int
	Name       string
	ChatID     int64
	Role       string
	HourlyRate decimal.Decimal
}
