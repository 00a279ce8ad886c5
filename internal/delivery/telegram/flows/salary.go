package flows

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"gopkg.in/telebot.v3"

	"payroll-bot/internal/app/service"
	"payroll-bot/internal/delivery/telegram/keyboards"
	"payroll-bot/internal/delivery/telegram/middleware"
	"payroll-bot/internal/delivery/telegram/router"
	"payroll-bot/internal/domain"
	"payroll-bot/internal/payroll"
)

// ScopeFunc возвращает ID сотрудника, чьи смены видит отправитель; 0 — все (администратор).
type ScopeFunc func(c telebot.Context) int

func RegisterSalary(r *router.CallbackRouter, shifts domain.ShiftService, async *service.AsyncService, scope ScopeFunc) {
	r.Register("salary_other_month", func(c telebot.Context, payload string) error {
		title, markup := keyboards.BuildMonthKeyboard(time.Now().Year())
		return middleware.EditOrSend(c, title, markup)
	})

	r.Register("month_prev", func(c telebot.Context, payload string) error {
		y, _ := strconv.Atoi(payload)
		title, markup := keyboards.BuildMonthKeyboard(y - 1)
		return middleware.EditOrSend(c, title, markup)
	})

	r.Register("month_next", func(c telebot.Context, payload string) error {
		y, _ := strconv.Atoi(payload)
		title, markup := keyboards.BuildMonthKeyboard(y + 1)
		return middleware.EditOrSend(c, title, markup)
	})

	r.Register("pick_month", func(c telebot.Context, payload string) error {
		parts := strings.Split(payload, "-")
		if len(parts) != 2 {
			return nil
		}
		y, _ := strconv.Atoi(parts[0])
		m, _ := strconv.Atoi(parts[1])
		filter := payroll.Filter{EmployeeID: scope(c), Year: y, Month: time.Month(m)}

		summary, err := async.Summary(context.Background(), shifts, filter)
		if err != nil {
			log.Printf("[salary] summary %+v: %v", filter, err)
			return c.Send("Ошибка при расчёте зарплаты: " + err.Error())
		}
		return middleware.EditOrSend(c, RenderSummary(summary), nil)
	})
}
