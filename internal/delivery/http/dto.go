package http

import (
	"time"

	"github.com/shopspring/decimal"

	"payroll-bot/internal/domain"
	"payroll-bot/internal/payroll"
)

const dateLayout = "2006-01-02"

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type EmployeeDTO struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	ChatID     int64           `json:"chat_id,omitempty"`
	Role       string          `json:"role"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

type RateRequest struct {
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

type ConsumptionDTO struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ShiftRequest is the create/edit/preview form. Omitted amounts are zero.
type ShiftRequest struct {
	EmployeeID   int              `json:"employee_id"`
	Date         string           `json:"date"`
	Start        string           `json:"start"`
	End          string           `json:"end"`
	Consumptions []ConsumptionDTO `json:"consumptions"`
	Advance      decimal.Decimal  `json:"advance"`
	PriorDebt    decimal.Decimal  `json:"prior_debt"`
	Discrepancy  decimal.Decimal  `json:"discrepancy"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type PayFortnightRequest struct {
	EmployeeID int    `json:"employee_id"`
	Fortnight  string `json:"fortnight"`
}

type PayFortnightResponse struct {
	ShiftIDs []int `json:"shift_ids"`
}

type ComputedDTO struct {
	Worked              string          `json:"worked"`
	WorkedMinutes       int             `json:"worked_minutes"`
	GrossPay            decimal.Decimal `json:"gross_pay"`
	ConsumptionSubtotal decimal.Decimal `json:"consumption_subtotal"`
	ConsumptionDiscount decimal.Decimal `json:"consumption_discount"`
	ConsumptionNet      decimal.Decimal `json:"consumption_net"`
	NetPay              decimal.Decimal `json:"net_pay"`
	NetPayRounded       decimal.Decimal `json:"net_pay_rounded"`
}

type ShiftDTO struct {
	ID           int              `json:"id"`
	EmployeeID   int              `json:"employee_id"`
	Date         string           `json:"date"`
	Start        string           `json:"start"`
	End          string           `json:"end"`
	Status       payroll.Status   `json:"status"`
	FrozenRate   *decimal.Decimal `json:"frozen_rate,omitempty"`
	Consumptions []ConsumptionDTO `json:"consumptions"`
	Advance      decimal.Decimal  `json:"advance"`
	PriorDebt    decimal.Decimal  `json:"prior_debt"`
	Discrepancy  decimal.Decimal  `json:"discrepancy"`
	Computed     ComputedDTO      `json:"computed"`
}

type TotalsDTO struct {
	Net           decimal.Decimal `json:"net"`
	Unpaid        decimal.Decimal `json:"unpaid"`
	Worked        string          `json:"worked"`
	WorkedMinutes int             `json:"worked_minutes"`
	Shifts        int             `json:"shifts"`
}

type SummaryShiftDTO struct {
	ShiftID       int             `json:"shift_id"`
	Date          string          `json:"date"`
	Status        payroll.Status  `json:"status"`
	Worked        string          `json:"worked"`
	NetPay        decimal.Decimal `json:"net_pay"`
	NetPayRounded decimal.Decimal `json:"net_pay_rounded"`
}

type EmployeeGroupDTO struct {
	EmployeeID int               `json:"employee_id"`
	Name       string            `json:"name"`
	Totals     TotalsDTO         `json:"totals"`
	Shifts     []SummaryShiftDTO `json:"shifts"`
}

type FortnightDTO struct {
	Key       string             `json:"key"`
	From      string             `json:"from"`
	To        string             `json:"to"`
	Totals    TotalsDTO          `json:"totals"`
	Employees []EmployeeGroupDTO `json:"employees"`
}

type MonthDTO struct {
	Year       int            `json:"year"`
	Month      int            `json:"month"`
	Totals     TotalsDTO      `json:"totals"`
	Fortnights []FortnightDTO `json:"fortnights"`
}

type SummaryDTO struct {
	Months []MonthDTO `json:"months"`
	Totals TotalsDTO  `json:"totals"`
}

func (r ShiftRequest) toDraft() (domain.ShiftDraft, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return domain.ShiftDraft{}, err
	}
	start, err := payroll.ParseClock(r.Start)
	if err != nil {
		return domain.ShiftDraft{}, err
	}
	end, err := payroll.ParseClock(r.End)
	if err != nil {
		return domain.ShiftDraft{}, err
	}
	consumptions := make([]payroll.Consumption, len(r.Consumptions))
	for i, c := range r.Consumptions {
		consumptions[i] = payroll.Consumption{Amount: c.Amount, Description: c.Description}
	}
	return domain.ShiftDraft{
		EmployeeID:   r.EmployeeID,
		Date:         date,
		Start:        start,
		End:          end,
		Consumptions: consumptions,
		Advance:      r.Advance,
		PriorDebt:    r.PriorDebt,
		Discrepancy:  r.Discrepancy,
	}, nil
}

func toEmployeeDTO(e domain.Employee) EmployeeDTO {
	return EmployeeDTO{ID: e.ID, Name: e.Name, ChatID: e.ChatID, Role: e.Role, HourlyRate: e.HourlyRate}
}

func toComputedDTO(c payroll.ShiftComputed) ComputedDTO {
	return ComputedDTO{
		Worked:              c.Worked.String(),
		WorkedMinutes:       c.Worked.TotalMinutes(),
		GrossPay:            c.GrossPay,
		ConsumptionSubtotal: c.ConsumptionSubtotal,
		ConsumptionDiscount: c.ConsumptionDiscount,
		ConsumptionNet:      c.ConsumptionNet,
		NetPay:              c.NetPay,
		NetPayRounded:       payroll.RoundUp50(c.NetPay),
	}
}

func toShiftDTO(s domain.Shift) ShiftDTO {
	consumptions := make([]ConsumptionDTO, len(s.Consumptions))
	for i, c := range s.Consumptions {
		consumptions[i] = ConsumptionDTO{Amount: c.Amount, Description: c.Description}
	}
	return ShiftDTO{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		Date:         s.Date.Format(dateLayout),
		Start:        s.Start.String(),
		End:          s.End.String(),
		Status:       s.Status,
		FrozenRate:   s.FrozenRate,
		Consumptions: consumptions,
		Advance:      s.Advance,
		PriorDebt:    s.PriorDebt,
		Discrepancy:  s.Discrepancy,
		Computed:     toComputedDTO(s.Computed),
	}
}

func toTotalsDTO(t payroll.Totals) TotalsDTO {
	return TotalsDTO{
		Net:           t.Net,
		Unpaid:        t.Unpaid,
		Worked:        t.Worked.String(),
		WorkedMinutes: t.Worked.TotalMinutes(),
		Shifts:        t.Shifts,
	}
}

func toSummaryDTO(s payroll.Summary) SummaryDTO {
	out := SummaryDTO{Months: []MonthDTO{}, Totals: toTotalsDTO(s.Totals)}
	for _, m := range s.Months {
		md := MonthDTO{Year: m.Year, Month: int(m.Month), Totals: toTotalsDTO(m.Totals)}
		for _, f := range m.Fortnights {
			from, to := f.Key.Range()
			fd := FortnightDTO{
				Key:    f.Key.String(),
				From:   from.Format(dateLayout),
				To:     to.Format(dateLayout),
				Totals: toTotalsDTO(f.Totals),
			}
			for _, e := range f.Employees {
				ed := EmployeeGroupDTO{EmployeeID: e.EmployeeID, Name: e.Name, Totals: toTotalsDTO(e.Totals)}
				for _, sh := range e.Shifts {
					ed.Shifts = append(ed.Shifts, SummaryShiftDTO{
						ShiftID:       sh.ShiftID,
						Date:          sh.Date.Format(dateLayout),
						Status:        sh.Status,
						Worked:        sh.Result.Worked.String(),
						NetPay:        sh.Result.NetPay,
						NetPayRounded: payroll.RoundUp50(sh.Result.NetPay),
					})
				}
				fd.Employees = append(fd.Employees, ed)
			}
			md.Fortnights = append(md.Fortnights, fd)
		}
		out.Months = append(out.Months, md)
	}
	return out
}
