package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"payroll-bot/internal/payroll"
)

// ShiftDraft — редактируемые поля смены (форма создания и редактирования).
type ShiftDraft struct {
	EmployeeID   int
	Date         time.Time
	Start        payroll.ClockTime
	End          payroll.ClockTime
	Consumptions []payroll.Consumption
	Advance      decimal.Decimal
	PriorDebt    decimal.Decimal
	Discrepancy  decimal.Decimal
}

// Shift — сохранённая смена. Computed не хранится и пересчитывается при каждом чтении.
type Shift struct {
	ID     int
	Status payroll.Status
	// FrozenRate задаётся, только если ставка фиксируется при создании смены.
	FrozenRate *decimal.Decimal
	ShiftDraft
	Computed payroll.ShiftComputed
}

// Input собирает вход калькулятора с переданной ставкой.
func (d ShiftDraft) Input(rate decimal.Decimal) payroll.ShiftInput {
	return payroll.ShiftInput{
		EmployeeID:   d.EmployeeID,
		HourlyRate:   rate,
		Date:         d.Date,
		Start:        d.Start,
		End:          d.End,
		Consumptions: d.Consumptions,
		AdvanceOnPay: d.Advance,
		PriorDebt:    d.PriorDebt,
		Discrepancy:  d.Discrepancy,
	}
}

func (s Shift) Entry(employeeName string) payroll.Entry {
	return payroll.Entry{
		ShiftID:      s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: employeeName,
		Date:         s.Date,
		Status:       s.Status,
		Result:       s.Computed,
	}
}

type ShiftRepo interface {
	AddShift(ctx context.Context, shift Shift) (int, error)
	UpdateShift(ctx context.Context, shift Shift) error
	GetShift(ctx context.Context, id int) (Shift, error)
	// GetShifts: employeeID == 0 — все сотрудники; границы дат включительно,
	// нулевые from и to — без ограничения по дате.
	GetShifts(ctx context.Context, employeeID int, from, to time.Time) ([]Shift, error)
	MarkShiftsPaid(ctx context.Context, ids []int) error
	SetStatus(ctx context.Context, id int, status payroll.Status) error
}
