package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"payroll-bot/internal/domain"
	"payroll-bot/internal/payroll"
)

var _ domain.ShiftService = (*ShiftServiceImpl)(nil)

// ShiftServiceImpl — единственное место, где вызывается payroll.ComputeShift:
// создание, предпросмотр, редактирование и отображение считают одинаково.
type ShiftServiceImpl struct {
	Repo      domain.ShiftRepo
	Employees domain.EmployeeRepo
	// FreezeRateAtCreation фиксирует ставку сотрудника в смене при создании.
	// Иначе ставка читается из карточки сотрудника при каждом пересчёте.
	FreezeRateAtCreation bool
}

func NewShiftService(repo domain.ShiftRepo, employees domain.EmployeeRepo, freezeRate bool) *ShiftServiceImpl {
	return &ShiftServiceImpl{Repo: repo, Employees: employees, FreezeRateAtCreation: freezeRate}
}

func (s *ShiftServiceImpl) AddShift(ctx context.Context, draft domain.ShiftDraft) (domain.Shift, error) {
	emp, err := s.Employees.GetEmployeeByID(ctx, draft.EmployeeID)
	if err != nil {
		return domain.Shift{}, err
	}
	shift := domain.Shift{ShiftDraft: draft, Status: payroll.StatusPending}
	if s.FreezeRateAtCreation {
		rate := emp.HourlyRate
		shift.FrozenRate = &rate
	}
	if shift.Computed, err = payroll.ComputeShift(draft.Input(rateOf(shift, emp))); err != nil {
		return domain.Shift{}, err
	}
	if shift.ID, err = s.Repo.AddShift(ctx, shift); err != nil {
		return domain.Shift{}, err
	}
	return shift, nil
}

// PreviewShift считает новую смену без сохранения. AddShift фиксирует ту же текущую ставку.
func (s *ShiftServiceImpl) PreviewShift(ctx context.Context, draft domain.ShiftDraft) (payroll.ShiftComputed, error) {
	emp, err := s.Employees.GetEmployeeByID(ctx, draft.EmployeeID)
	if err != nil {
		return payroll.ShiftComputed{}, err
	}
	return payroll.ComputeShift(draft.Input(emp.HourlyRate))
}

// PreviewShiftUpdate считает правку существующей смены без сохранения: ставка берётся
// так же, как в UpdateShift, поэтому предпросмотр совпадает с сохранённым результатом.
func (s *ShiftServiceImpl) PreviewShiftUpdate(ctx context.Context, id int, draft domain.ShiftDraft) (payroll.ShiftComputed, error) {
	current, err := s.Repo.GetShift(ctx, id)
	if err != nil {
		return payroll.ShiftComputed{}, err
	}
	if current.Status.IsPaid() {
		return payroll.ShiftComputed{}, fmt.Errorf("shift %d: %w", id, domain.ErrShiftAlreadyPaid)
	}
	edited := domain.Shift{ID: id, Status: current.Status, FrozenRate: current.FrozenRate, ShiftDraft: draft}
	if err := s.compute(ctx, &edited); err != nil {
		return payroll.ShiftComputed{}, err
	}
	return edited.Computed, nil
}

// UpdateShift пересчитывает смену с нуля. Оплаченную смену менять нельзя.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, id int, draft domain.ShiftDraft) (domain.Shift, error) {
	current, err := s.Repo.GetShift(ctx, id)
	if err != nil {
		return domain.Shift{}, err
	}
	if current.Status.IsPaid() {
		return domain.Shift{}, fmt.Errorf("shift %d: %w", id, domain.ErrShiftAlreadyPaid)
	}
	updated := domain.Shift{
		ID:         id,
		Status:     current.Status,
		FrozenRate: current.FrozenRate,
		ShiftDraft: draft,
	}
	if err := s.compute(ctx, &updated); err != nil {
		return domain.Shift{}, err
	}
	if err := s.Repo.UpdateShift(ctx, updated); err != nil {
		return domain.Shift{}, err
	}
	return updated, nil
}

func (s *ShiftServiceImpl) GetShift(ctx context.Context, id int) (domain.Shift, error) {
	shift, err := s.Repo.GetShift(ctx, id)
	if err != nil {
		return domain.Shift{}, err
	}
	if err := s.compute(ctx, &shift); err != nil {
		return domain.Shift{}, err
	}
	return shift, nil
}

func (s *ShiftServiceImpl) GetShifts(ctx context.Context, employeeID int, from, to time.Time) ([]domain.Shift, error) {
	shifts, err := s.Repo.GetShifts(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	employees, err := s.employeeIndex(ctx)
	if err != nil {
		return nil, err
	}
	for i := range shifts {
		emp, ok := employees[shifts[i].EmployeeID]
		if !ok {
			return nil, fmt.Errorf("shift %d: employee %d: %w", shifts[i].ID, shifts[i].EmployeeID, domain.ErrEmployeeNotFound)
		}
		if shifts[i].Computed, err = payroll.ComputeShift(shifts[i].Input(rateOf(shifts[i], emp))); err != nil {
			return nil, fmt.Errorf("shift %d: %w", shifts[i].ID, err)
		}
	}
	return shifts, nil
}

func (s *ShiftServiceImpl) SetStatus(ctx context.Context, id int, status payroll.Status) error {
	return s.Repo.SetStatus(ctx, id, status)
}

// Summary собирает сводку заново из текущих смен; ничего не кэшируется.
func (s *ShiftServiceImpl) Summary(ctx context.Context, f payroll.Filter) (payroll.Summary, error) {
	entries, err := s.entries(ctx, f)
	if err != nil {
		return payroll.Summary{}, err
	}
	return payroll.Aggregate(entries, f), nil
}

// ConfirmFortnightPayment помечает оплаченными все смены половины месяца и возвращает их ID.
func (s *ShiftServiceImpl) ConfirmFortnightPayment(ctx context.Context, employeeID int, key payroll.FortnightKey) ([]int, error) {
	summary, err := s.Summary(ctx, payroll.Filter{EmployeeID: employeeID, Year: key.Year, Month: key.Month})
	if err != nil {
		return nil, err
	}
	ids := payroll.SelectForPayment(summary, key)
	if err := s.Repo.MarkShiftsPaid(ctx, ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// PayAmount выплачивает целые неоплаченные смены в пределах суммы.
func (s *ShiftServiceImpl) PayAmount(ctx context.Context, employeeID int, amount decimal.Decimal) ([]int, decimal.Decimal, error) {
	if amount.IsNegative() {
		return nil, amount, &payroll.InvalidAmountError{Field: "payout amount", Value: amount}
	}
	entries, err := s.entries(ctx, payroll.Filter{EmployeeID: employeeID})
	if err != nil {
		return nil, amount, err
	}
	ids, remaining := payroll.SelectByBudget(entries, amount)
	if err := s.Repo.MarkShiftsPaid(ctx, ids); err != nil {
		return nil, amount, err
	}
	return ids, remaining, nil
}

func (s *ShiftServiceImpl) CalculateUnpaidSalary(ctx context.Context, employeeID int) (decimal.Decimal, error) {
	summary, err := s.Summary(ctx, payroll.Filter{EmployeeID: employeeID})
	if err != nil {
		return decimal.Zero, err
	}
	return summary.Totals.Unpaid, nil
}

func (s *ShiftServiceImpl) entries(ctx context.Context, f payroll.Filter) ([]payroll.Entry, error) {
	from, to := window(f)
	shifts, err := s.GetShifts(ctx, f.EmployeeID, from, to)
	if err != nil {
		return nil, err
	}
	employees, err := s.employeeIndex(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]payroll.Entry, len(shifts))
	for i, sh := range shifts {
		entries[i] = sh.Entry(employees[sh.EmployeeID].Name)
	}
	return entries, nil
}

func (s *ShiftServiceImpl) compute(ctx context.Context, shift *domain.Shift) error {
	emp, err := s.Employees.GetEmployeeByID(ctx, shift.EmployeeID)
	if err != nil {
		return err
	}
	shift.Computed, err = payroll.ComputeShift(shift.Input(rateOf(*shift, emp)))
	return err
}

func (s *ShiftServiceImpl) employeeIndex(ctx context.Context) (map[int]domain.Employee, error) {
	all, err := s.Employees.GetAllEmployees(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[int]domain.Employee, len(all))
	for _, e := range all {
		index[e.ID] = e
	}
	return index, nil
}

func rateOf(shift domain.Shift, emp domain.Employee) decimal.Decimal {
	if shift.FrozenRate != nil {
		return *shift.FrozenRate
	}
	return emp.HourlyRate
}

func window(f payroll.Filter) (time.Time, time.Time) {
	switch {
	case f.Year == 0:
		return time.Time{}, time.Time{}
	case f.Month == 0:
		return payroll.StartOfMonth(f.Year, time.January), payroll.EndOfMonth(f.Year, time.December)
	default:
		return payroll.StartOfMonth(f.Year, f.Month), payroll.EndOfMonth(f.Year, f.Month)
	}
}
