package flows

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"payroll-bot/internal/domain"
	"payroll-bot/internal/payroll"
)

// ShiftFormHelp — подсказка к формату строки смены.
const ShiftFormHelp = "Формат: 09:00-17:30 [аванс=5000] [долг=2000] [недостача=0] [обед:12000 кофе:1500]\n" +
	"В описании расхода используйте _ вместо пробела."

// ShiftForm — разобранная строка смены из чата.
type ShiftForm struct {
	Start        payroll.ClockTime
	End          payroll.ClockTime
	Consumptions []payroll.Consumption
	Advance      decimal.Decimal
	PriorDebt    decimal.Decimal
	Discrepancy  decimal.Decimal
}

var amountKeys = map[string]string{
	"аванс":       "advance",
	"advance":     "advance",
	"долг":        "debt",
	"debt":        "debt",
	"недостача":   "discrepancy",
	"discrepancy": "discrepancy",
}

// ParseShiftLine разбирает "HH:MM-HH:MM key=value desc:amount ...". Проверку сумм и
// описаний выполняет калькулятор, здесь только синтаксис.
func ParseShiftLine(line string) (ShiftForm, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ShiftForm{}, fmt.Errorf("пустая строка смены")
	}
	form := ShiftForm{Advance: decimal.Zero, PriorDebt: decimal.Zero, Discrepancy: decimal.Zero}

	span := strings.SplitN(strings.ReplaceAll(fields[0], "–", "-"), "-", 2)
	if len(span) != 2 {
		return ShiftForm{}, fmt.Errorf("ожидалось время смены вида 09:00-17:30, получено %q", fields[0])
	}
	var err error
	if form.Start, err = payroll.ParseClock(span[0]); err != nil {
		return ShiftForm{}, err
	}
	if form.End, err = payroll.ParseClock(span[1]); err != nil {
		return ShiftForm{}, err
	}

	for _, tok := range fields[1:] {
		if k, v, ok := strings.Cut(tok, "="); ok {
			field, known := amountKeys[strings.ToLower(k)]
			if !known {
				return ShiftForm{}, fmt.Errorf("неизвестное поле %q", k)
			}
			amount, err := decimal.NewFromString(v)
			if err != nil {
				return ShiftForm{}, fmt.Errorf("поле %s: некорректная сумма %q", k, v)
			}
			switch field {
			case "advance":
				form.Advance = amount
			case "debt":
				form.PriorDebt = amount
			case "discrepancy":
				form.Discrepancy = amount
			}
			continue
		}
		i := strings.LastIndexByte(tok, ':')
		if i < 0 {
			return ShiftForm{}, fmt.Errorf("не понял %q: ожидалось описание:сумма или поле=сумма", tok)
		}
		amount, err := decimal.NewFromString(tok[i+1:])
		if err != nil {
			return ShiftForm{}, fmt.Errorf("расход %q: некорректная сумма", tok)
		}
		form.Consumptions = append(form.Consumptions, payroll.Consumption{
			Amount:      amount,
			Description: strings.ReplaceAll(tok[:i], "_", " "),
		})
	}
	return form, nil
}

func (f ShiftForm) Draft(employeeID int, date time.Time) domain.ShiftDraft {
	return domain.ShiftDraft{
		EmployeeID:   employeeID,
		Date:         date,
		Start:        f.Start,
		End:          f.End,
		Consumptions: f.Consumptions,
		Advance:      f.Advance,
		PriorDebt:    f.PriorDebt,
		Discrepancy:  f.Discrepancy,
	}
}
