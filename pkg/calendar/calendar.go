package calendar

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gopkg.in/telebot.v3"
)

// CalendarController реализует обработку inline-календаря.
type CalendarController struct {
	OnDate func(time.Time, telebot.Context) error
}

var ruMonths = map[time.Month]string{
	time.January:   "Январь",
	time.February:  "Февраль",
	time.March:     "Март",
	time.April:     "Апрель",
	time.May:       "Май",
	time.June:      "Июнь",
	time.July:      "Июль",
	time.August:    "Август",
	time.September: "Сентябрь",
	time.October:   "Октябрь",
	time.November:  "Ноябрь",
	time.December:  "Декабрь",
}

// ShowCalendar отправляет или редактирует календарь текущего месяца.
func (cc *CalendarController) ShowCalendar(c telebot.Context) error {
	now := time.Now()
	return SendCalendar(c, now.Year(), int(now.Month()))
}

// BuildCalendar строит календарь месяца. Дни 1–15 и 16–конец разделены строкой,
// чтобы половины месяца были видны сразу.
func BuildCalendar(year, month int) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	var rows []telebot.Row
	week := telebot.Row{}
	flush := func() {
		if len(week) > 0 {
			rows = append(rows, week)
			week = telebot.Row{}
		}
	}
	for d := 1; d <= DaysInMonth(year, month); d++ {
		week = append(week, markup.Data(strconv.Itoa(d), "cal_day", fmt.Sprintf("%d-%d-%d", d, month, year)))
		if len(week) == 7 || d == 15 {
			flush()
		}
		if d == 15 {
			rows = append(rows, telebot.Row{markup.Data("· · ·", "cal_noop")})
		}
	}
	flush()

	prev := markup.Data("<", "cal_prev", fmt.Sprintf("%d-%d", month-1, year))
	next := markup.Data(">", "cal_next", fmt.Sprintf("%d-%d", month+1, year))
	rows = append(rows, telebot.Row{prev, next})
	markup.Inline(rows...)

	monthName := time.Month(month).String()
	if ru, ok := ruMonths[time.Month(month)]; ok {
		monthName = ru
	}
	return "Выберите дату: " + monthName + " " + strconv.Itoa(year), markup
}

func SendCalendar(c telebot.Context, year, month int) error {
	title, markup := BuildCalendar(year, month)
	if c.Callback() != nil {
		return c.Edit(title, markup)
	}
	return c.Send(title, markup)
}

// HandleCallback обрабатывает cal_* callback'и, которые ему передаёт общий роутер.
func (cc *CalendarController) HandleCallback(c telebot.Context) error {
	raw := strings.TrimPrefix(c.Data(), "\f")
	key, payload, ok := strings.Cut(raw, "|")
	if !ok {
		return nil
	}
	switch key {
	case "cal_day":
		date, err := ParseDayPayload(payload)
		if err != nil || cc.OnDate == nil {
			return c.Send("Ошибка даты", &telebot.ReplyMarkup{})
		}
		return cc.OnDate(date, c)
	case "cal_prev", "cal_next":
		year, month, err := ParseMonthPayload(payload)
		if err != nil {
			return c.Send("Ошибка месяца", &telebot.ReplyMarkup{})
		}
		log.Printf("[calendar] %s -> %02d.%d", key, month, year)
		return SendCalendar(c, year, month)
	}
	return nil
}

// ParseDayPayload разбирает "d-m-yyyy".
func ParseDayPayload(payload string) (time.Time, error) {
	parts := SplitDateData(payload)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("bad day payload %q", payload)
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 || day < 1 || day > DaysInMonth(year, month) {
		return time.Time{}, fmt.Errorf("bad day payload %q", payload)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// ParseMonthPayload разбирает "m-yyyy", перенося 0 и 13 на соседний год.
func ParseMonthPayload(payload string) (year, month int, err error) {
	parts := SplitDateData(payload)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad month payload %q", payload)
	}
	if month, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, err
	}
	if year, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, err
	}
	switch {
	case month < 1:
		month = 12
		year--
	case month > 12:
		month = 1
		year++
	}
	return year, month, nil
}

func SplitDateData(data string) []string {
	return strings.Split(data, "-")
}

func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
