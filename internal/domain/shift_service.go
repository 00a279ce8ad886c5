package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"payroll-bot/internal/payroll"
)

type ShiftService interface {
	AddShift(ctx context.Context, draft ShiftDraft) (Shift, error)
	PreviewShift(ctx context.Context, draft ShiftDraft) (payroll.ShiftComputed, error)
	PreviewShiftUpdate(ctx context.Context, id int, draft ShiftDraft) (payroll.ShiftComputed, error)
	UpdateShift(ctx context.Context, id int, draft ShiftDraft) (Shift, error)
	GetShift(ctx context.Context, id int) (Shift, error)
	GetShifts(ctx context.Context, employeeID int, from, to time.Time) ([]Shift, error)
	SetStatus(ctx context.Context, id int, status payroll.Status) error
	Summary(ctx context.Context, f payroll.Filter) (payroll.Summary, error)
	ConfirmFortnightPayment(ctx context.Context, employeeID int, key payroll.FortnightKey) ([]int, error)
	PayAmount(ctx context.Context, employeeID int, amount decimal.Decimal) ([]int, decimal.Decimal, error)
	CalculateUnpaidSalary(ctx context.Context, employeeID int) (decimal.Decimal, error)
}
