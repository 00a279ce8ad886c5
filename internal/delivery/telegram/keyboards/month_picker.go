package keyboards

import (
	"fmt"
	"strconv"

	"gopkg.in/telebot.v3"

	"payroll-bot/internal/payroll"
)

var monthNames = []string{"Янв", "Фев", "Мар", "Апр", "Май", "Июн", "Июл", "Авг", "Сен", "Окт", "Ноя", "Дек"}

func BuildMonthKeyboard(year int) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	rows := []telebot.Row{}
	for i := 0; i < 12; i += 3 {
		b1 := markup.Data(monthNames[i], "pick_month", fmt.Sprintf("%04d-%02d", year, i+1))
		b2 := markup.Data(monthNames[i+1], "pick_month", fmt.Sprintf("%04d-%02d", year, i+2))
		b3 := markup.Data(monthNames[i+2], "pick_month", fmt.Sprintf("%04d-%02d", year, i+3))
		rows = append(rows, markup.Row(b1, b2, b3))
	}

	prev := markup.Data("← "+strconv.Itoa(year-1), "month_prev", strconv.Itoa(year))
	next := markup.Data(strconv.Itoa(year+1)+" →", "month_next", strconv.Itoa(year))
	rows = append(rows, markup.Row(prev, next))

	markup.Inline(rows...)
	return fmt.Sprintf("Выберите месяц: %d", year), markup
}

// BuildFortnightKeyboard — выбор половины месяца для подтверждения выплаты.
func BuildFortnightKeyboard(summary payroll.Summary) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	var rows []telebot.Row
	for _, m := range summary.Months {
		for _, f := range m.Fortnights {
			if f.Totals.Unpaid.IsZero() {
				continue
			}
			label := fmt.Sprintf("%s: %s", FortnightLabel(f.Key), f.Totals.Unpaid.String())
			rows = append(rows, markup.Row(markup.Data(label, "pay_fortnight", f.Key.String())))
		}
	}
	if len(rows) == 0 {
		return "Нет невыплаченных смен.", nil
	}
	markup.Inline(rows...)
	return "Какую половину месяца выплатить?", markup
}

func FortnightLabel(k payroll.FortnightKey) string {
	from, to := k.Range()
	return fmt.Sprintf("%02d–%02d.%02d.%04d", from.Day(), to.Day(), int(k.Month), k.Year)
}
