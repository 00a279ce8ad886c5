package flows

import (
	"context"
	"fmt"
	"log"
	"time"

	"gopkg.in/telebot.v3"

	"payroll-bot/internal/app/service"
	"payroll-bot/internal/delivery/telegram/keyboards"
	"payroll-bot/internal/delivery/telegram/middleware"
	"payroll-bot/internal/delivery/telegram/router"
	"payroll-bot/internal/domain"
	"payroll-bot/internal/payroll"
)

// ShowPayout показывает невыплаченные половины текущего месяца.
func ShowPayout(c telebot.Context, shifts domain.ShiftService, async *service.AsyncService, employeeID int) error {
	now := time.Now()
	summary, err := async.Summary(context.Background(), shifts,
		payroll.Filter{EmployeeID: employeeID, Year: now.Year(), Month: now.Month()})
	if err != nil {
		return c.Send("Ошибка при получении смен: " + err.Error())
	}
	title, markup := keyboards.BuildFortnightKeyboard(summary)
	if markup == nil {
		return c.Send(title)
	}
	return c.Send(title+"\nИли введите сумму для частичной выплаты.", markup)
}

func RegisterPayout(r *router.CallbackRouter, shifts domain.ShiftService, scope ScopeFunc) {
	r.Register("pay_fortnight", func(c telebot.Context, payload string) error {
		key, err := payroll.ParseFortnightKey(payload)
		if err != nil {
			return c.Send("Ошибка периода: " + err.Error())
		}
		ids, err := shifts.ConfirmFortnightPayment(context.Background(), scope(c), key)
		if err != nil {
			log.Printf("[payout] confirm %s: %v", key, err)
			return c.Send("Ошибка при выплате: " + err.Error())
		}
		log.Printf("[payout] chat=%d fortnight=%s shifts=%v", c.Chat().ID, key, ids)
		return middleware.EditOrSend(c, fmt.Sprintf("Выплачено смен: %d (%s)", len(ids), keyboards.FortnightLabel(key)), nil)
	})
}
