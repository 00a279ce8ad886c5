package payroll

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Сентинелы для errors.Is на границе доставки.
var (
	ErrInvalidShift       = errors.New("invalid shift")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidConsumption = errors.New("invalid consumption")
)

// InvalidShiftError — время смены не образует положительный интервал.
type InvalidShiftError struct {
	Start  ClockTime
	End    ClockTime
	Reason string
}

func (e *InvalidShiftError) Error() string {
	return fmt.Sprintf("invalid shift %s-%s: %s", e.Start, e.End, e.Reason)
}

func (e *InvalidShiftError) Unwrap() error { return ErrInvalidShift }

// InvalidAmountError — отрицательное денежное поле.
type InvalidAmountError struct {
	Field string
	Value decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount: %s must not be negative (got %s)", e.Field, e.Value)
}

func (e *InvalidAmountError) Unwrap() error { return ErrInvalidAmount }

type InvalidConsumptionError struct {
	Index  int
	Reason string
}

func (e *InvalidConsumptionError) Error() string {
	return fmt.Sprintf("invalid consumption #%d: %s", e.Index+1, e.Reason)
}

func (e *InvalidConsumptionError) Unwrap() error { return ErrInvalidConsumption }

// IsValidationError сообщает, что ошибка вызвана входными данными и показывается пользователю как есть.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidShift) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidConsumption)
}
