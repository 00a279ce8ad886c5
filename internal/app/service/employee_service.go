package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"payroll-bot/internal/domain"
	"payroll-bot/internal/payroll"
)

type EmployeeService struct {
	Repo domain.EmployeeRepo
}

func NewEmployeeService(repo domain.EmployeeRepo) *EmployeeService {
	return &EmployeeService{Repo: repo}
}

func (s *EmployeeService) CreateOrUpdateEmployee(ctx context.Context, e domain.Employee) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Role == "" {
		e.Role = "employee"
	}
	if e.HourlyRate.IsNegative() {
		return &payroll.InvalidAmountError{Field: "hourly rate", Value: e.HourlyRate}
	}
	return s.Repo.CreateOrUpdateEmployee(ctx, e)
}

func (s *EmployeeService) GetAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.Repo.GetAllEmployees(ctx)
}

func (s *EmployeeService) GetEmployeeByID(ctx context.Context, id int) (domain.Employee, error) {
	return s.Repo.GetEmployeeByID(ctx, id)
}

// SetHourlyRate меняет ставку; смены без зафиксированной ставки пересчитаются по новой.
func (s *EmployeeService) SetHourlyRate(ctx context.Context, id int, rate decimal.Decimal) error {
	if rate.IsNegative() {
		return &payroll.InvalidAmountError{Field: "hourly rate", Value: rate}
	}
	return s.Repo.SetHourlyRate(ctx, id, rate)
}
