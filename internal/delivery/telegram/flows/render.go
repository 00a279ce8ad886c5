package flows

import (
	"fmt"
	"strings"

	"payroll-bot/internal/delivery/telegram/keyboards"
	"payroll-bot/internal/domain"
	"payroll-bot/internal/payroll"
)

var statusNames = map[payroll.Status]string{
	payroll.StatusPending:   "ожидает",
	payroll.StatusProcessed: "в обработке",
	payroll.StatusPaid:      "выплачено",
}

// RenderSummary печатает сводку: суммы смен показаны уже округлёнными вверх до 50.
func RenderSummary(s payroll.Summary) string {
	if s.Empty() {
		return "Смен за период нет. Итого: 0"
	}
	var b strings.Builder
	for _, m := range s.Months {
		fmt.Fprintf(&b, "📅 %02d.%04d\n", int(m.Month), m.Year)
		for _, f := range m.Fortnights {
			fmt.Fprintf(&b, "  %s — %s (%s), не выплачено %s\n",
				keyboards.FortnightLabel(f.Key), f.Totals.Net, f.Totals.Worked, f.Totals.Unpaid)
			for _, e := range f.Employees {
				fmt.Fprintf(&b, "    %s — %s (%s)\n", e.Name, e.Totals.Net, e.Totals.Worked)
				for _, sh := range e.Shifts {
					fmt.Fprintf(&b, "      %s %s %s [%s]\n",
						sh.Date.Format("02.01"), sh.Result.Worked, payroll.RoundUp50(sh.Result.NetPay), statusNames[sh.Status])
				}
			}
		}
		fmt.Fprintf(&b, "  Итого за месяц: %s (%s)\n", m.Totals.Net, m.Totals.Worked)
	}
	if len(s.Months) > 1 {
		fmt.Fprintf(&b, "Итого: %s (%s)\n", s.Totals.Net, s.Totals.Worked)
	}
	return b.String()
}

func RenderShift(s domain.Shift) string {
	c := s.Computed
	var b strings.Builder
	fmt.Fprintf(&b, "Смена %s %s–%s: %s\n", s.Date.Format("02.01.2006"), s.Start, s.End, c.Worked)
	fmt.Fprintf(&b, "Начислено: %s\n", c.GrossPay.StringFixed(2))
	if !c.ConsumptionSubtotal.IsZero() {
		fmt.Fprintf(&b, "Расходы: %s − скидка %s = %s\n",
			c.ConsumptionSubtotal.StringFixed(2), c.ConsumptionDiscount.StringFixed(2), c.ConsumptionNet.StringFixed(2))
	}
	if !s.Advance.IsZero() {
		fmt.Fprintf(&b, "Аванс: %s\n", s.Advance.StringFixed(2))
	}
	if !s.Discrepancy.IsZero() {
		fmt.Fprintf(&b, "Недостача: %s\n", s.Discrepancy.StringFixed(2))
	}
	if !s.PriorDebt.IsZero() {
		fmt.Fprintf(&b, "Долг сотруднику: %s\n", s.PriorDebt.StringFixed(2))
	}
	fmt.Fprintf(&b, "К выплате: %s", c.NetPay.StringFixed(2))
	return b.String()
}
