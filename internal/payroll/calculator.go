// Package payroll считает зарплату за смену и сводки по половинам месяца.
// Пакет чистый: без I/O и общего состояния, безопасен для конкурентного вызова.
package payroll

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaxConsumptionDescription — лимит описания расхода в символах.
const MaxConsumptionDescription = 200

var (
	// ConsumptionDiscountRate — фиксированная скидка заведения на расходы сотрудника.
	ConsumptionDiscountRate = decimal.RequireFromString("0.15")

	sixty = decimal.NewFromInt(60)
)

type Consumption struct {
	Amount      decimal.Decimal
	Description string
}

// ShiftInput — сырые данные одной смены. HourlyRate берётся из карточки сотрудника в момент расчёта.
type ShiftInput struct {
	EmployeeID   int
	HourlyRate   decimal.Decimal
	Date         time.Time
	Start        ClockTime
	End          ClockTime
	Consumptions []Consumption
	AdvanceOnPay decimal.Decimal
	PriorDebt    decimal.Decimal
	Discrepancy  decimal.Decimal
}

type ShiftComputed struct {
	Worked              WorkedTime
	GrossPay            decimal.Decimal
	ConsumptionSubtotal decimal.Decimal
	ConsumptionDiscount decimal.Decimal
	ConsumptionNet      decimal.Decimal
	NetPay              decimal.Decimal
}

// ComputeShift — единственная точка расчёта смены. Порядок операций фиксирован:
// net = gross - consumptionNet - advance - discrepancy + priorDebt.
func ComputeShift(in ShiftInput) (ShiftComputed, error) {
	worked, err := WorkedDuration(in.Start, in.End)
	if err != nil {
		return ShiftComputed{}, err
	}
	if err := validateAmounts(in); err != nil {
		return ShiftComputed{}, err
	}
	if err := validateConsumptions(in.Consumptions); err != nil {
		return ShiftComputed{}, err
	}

	hours := decimal.NewFromInt(int64(worked.Hours)).
		Add(decimal.NewFromInt(int64(worked.Minutes)).Div(sixty))
	gross := hours.Mul(in.HourlyRate)

	subtotal := decimal.Zero
	for _, c := range in.Consumptions {
		subtotal = subtotal.Add(c.Amount)
	}
	discount := subtotal.Mul(ConsumptionDiscountRate)
	consumptionNet := subtotal.Sub(discount)

	net := gross.
		Sub(consumptionNet).
		Sub(in.AdvanceOnPay).
		Sub(in.Discrepancy).
		Add(in.PriorDebt)

	return ShiftComputed{
		Worked:              worked,
		GrossPay:            gross,
		ConsumptionSubtotal: subtotal,
		ConsumptionDiscount: discount,
		ConsumptionNet:      consumptionNet,
		NetPay:              net,
	}, nil
}

func validateAmounts(in ShiftInput) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"hourly rate", in.HourlyRate},
		{"advance on pay", in.AdvanceOnPay},
		{"prior debt", in.PriorDebt},
		{"discrepancy", in.Discrepancy},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return &InvalidAmountError{Field: f.name, Value: f.value}
		}
	}
	for i, c := range in.Consumptions {
		if c.Amount.IsNegative() {
			return &InvalidAmountError{Field: fmt.Sprintf("consumption #%d amount", i+1), Value: c.Amount}
		}
	}
	return nil
}

func validateConsumptions(items []Consumption) error {
	for i, c := range items {
		if strings.TrimSpace(c.Description) == "" {
			return &InvalidConsumptionError{Index: i, Reason: "description is required"}
		}
		if utf8.RuneCountInString(c.Description) > MaxConsumptionDescription {
			return &InvalidConsumptionError{
				Index:  i,
				Reason: fmt.Sprintf("description exceeds %d characters", MaxConsumptionDescription),
			}
		}
	}
	return nil
}
