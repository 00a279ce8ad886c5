package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/telebot.v3"

	"payroll-bot/internal/app/service"
	"payroll-bot/internal/delivery/telegram/flows"
	"payroll-bot/internal/delivery/telegram/middleware"
	"payroll-bot/internal/delivery/telegram/router"
	"payroll-bot/internal/domain"
	"payroll-bot/internal/payroll"
	"payroll-bot/pkg/calendar"
)

// Handler держит состояние диалогов по chatID. Telebot вызывает обработчики
// параллельно, поэтому карты защищены mu.
type Handler struct {
	Bot       *telebot.Bot
	Shifts    domain.ShiftService
	Async     *service.AsyncService
	Employees *service.EmployeeService
	Calendar  *calendar.CalendarController
	Router    *router.CallbackRouter
	// Admins видят и выплачивают смены всех сотрудников.
	Admins map[int64]bool

	mu            sync.Mutex
	waitingShift  map[int64]time.Time // chatID -> дата смены
	waitingPayout map[int64]bool
}

var (
	btnAddShift = telebot.Btn{Text: "📅 Добавить смену"}
	btnSalary   = telebot.Btn{Text: "💰 Посмотреть зарплату"}
	btnPayout   = telebot.Btn{Text: "💸 Выплатить"}
)

func (h *Handler) Register() {
	h.waitingShift = make(map[int64]time.Time)
	h.waitingPayout = make(map[int64]bool)
	if h.Router == nil {
		h.Router = router.New()
	}

	h.Bot.Handle("/start", h.handleStart)
	h.Bot.Handle("/employees", h.handleEmployees)
	h.Bot.Handle("/rate", h.handleRate)
	h.Bot.Handle("/unpaid", h.handleUnpaid)

	h.Router.Register("addshift_today", func(c telebot.Context, _ string) error {
		return h.askShiftLine(c, time.Now())
	})
	h.Router.Register("addshift_other", func(c telebot.Context, _ string) error {
		if h.Calendar == nil {
			return nil
		}
		return h.Calendar.ShowCalendar(c)
	})
	if h.Calendar != nil {
		h.Calendar.OnDate = func(date time.Time, c telebot.Context) error {
			return h.askShiftLine(c, date)
		}
		h.Router.CalDelegate = h.Calendar.HandleCallback
	}
	flows.RegisterSalary(h.Router, h.Shifts, h.Async, h.scope)
	flows.RegisterPayout(h.Router, h.Shifts, h.scope)
	h.Router.Attach(h.Bot)

	h.Bot.Handle(telebot.OnText, h.handleText)
}

// scope — чьи смены видит отправитель: администратор видит всех (0).
func (h *Handler) scope(c telebot.Context) int {
	if h.Admins[c.Sender().ID] {
		return 0
	}
	return int(c.Sender().ID)
}

func (h *Handler) askShiftLine(c telebot.Context, date time.Time) error {
	h.mu.Lock()
	h.waitingShift[c.Chat().ID] = date
	delete(h.waitingPayout, c.Chat().ID)
	h.mu.Unlock()
	log.Printf("[state] waitingShift set for chat=%d date=%s", c.Chat().ID, date.Format("2006-01-02"))
	return middleware.EditOrSend(c, "Смена "+date.Format("02.01.2006")+".\n"+flows.ShiftFormHelp, nil)
}

func (h *Handler) handleText(c telebot.Context) error {
	chatID := c.Chat().ID
	text := strings.TrimSpace(c.Text())

	switch text {
	case btnAddShift.Text:
		markup := &telebot.ReplyMarkup{}
		btnToday := markup.Data("Сегодня", "addshift_today")
		btnOther := markup.Data("Другая дата", "addshift_other")
		markup.Inline(markup.Row(btnToday, btnOther))
		return c.Send("Это сегодняшняя смена?", markup)
	case btnSalary.Text:
		return h.showMonth(c)
	case btnPayout.Text:
		h.mu.Lock()
		delete(h.waitingShift, chatID)
		h.waitingPayout[chatID] = true
		h.mu.Unlock()
		return flows.ShowPayout(c, h.Shifts, h.Async, h.scope(c))
	}

	h.mu.Lock()
	date, waitingShift := h.waitingShift[chatID]
	waitingPayout := h.waitingPayout[chatID]
	h.mu.Unlock()

	switch {
	case waitingShift:
		return h.addShift(c, date, text)
	case waitingPayout:
		return h.payAmount(c, text)
	}
	return nil
}

func (h *Handler) addShift(c telebot.Context, date time.Time, line string) error {
	form, err := flows.ParseShiftLine(line)
	if err != nil {
		return c.Send(err.Error() + "\n" + flows.ShiftFormHelp)
	}
	shift, err := h.Shifts.AddShift(context.Background(), form.Draft(int(c.Sender().ID), date))
	if err != nil {
		if payroll.IsValidationError(err) {
			return c.Send("Смена не сохранена: " + err.Error())
		}
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return c.Send("Сначала выполните /start.")
		}
		log.Printf("[shift] add chat=%d: %v", c.Chat().ID, err)
		return c.Send("Ошибка при добавлении смены: " + err.Error())
	}

	h.mu.Lock()
	delete(h.waitingShift, c.Chat().ID)
	h.mu.Unlock()
	log.Printf("[shift] added id=%d employee=%d net=%s", shift.ID, shift.EmployeeID, shift.Computed.NetPay)
	return c.Send("Смена добавлена!\n" + flows.RenderShift(shift))
}

func (h *Handler) payAmount(c telebot.Context, text string) error {
	amount, err := decimal.NewFromString(strings.ReplaceAll(text, ",", "."))
	if err != nil || !amount.IsPositive() {
		return c.Send("Некорректная сумма. Попробуйте ещё раз.")
	}
	ids, rest, err := h.Shifts.PayAmount(context.Background(), int(c.Sender().ID), amount)
	if err != nil {
		return c.Send("Ошибка при выплате: " + err.Error())
	}

	h.mu.Lock()
	delete(h.waitingPayout, c.Chat().ID)
	h.mu.Unlock()
	if len(ids) == 0 {
		return c.Send("Суммы не хватает ни на одну смену.")
	}
	return c.Send(fmt.Sprintf("Выплачено смен: %d. Остаток: %s", len(ids), rest.StringFixed(2)))
}

func (h *Handler) showMonth(c telebot.Context) error {
	now := time.Now()
	f := payroll.Filter{EmployeeID: h.scope(c), Year: now.Year(), Month: now.Month()}
	summary, err := h.Async.Summary(context.Background(), h.Shifts, f)
	if err != nil {
		return c.Send("Ошибка при получении зарплаты: " + err.Error())
	}
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("Другой месяц", "salary_other_month")))
	return c.Send(flows.RenderSummary(summary), markup)
}

func (h *Handler) handleEmployees(c telebot.Context) error {
	employees, err := h.Employees.GetAllEmployees(context.Background())
	if err != nil {
		return c.Send("Ошибка при получении сотрудников: " + err.Error())
	}
	if len(employees) == 0 {
		return c.Send("Сотрудники не найдены.")
	}
	var b strings.Builder
	b.WriteString("Список сотрудников:\n")
	for _, e := range employees {
		fmt.Fprintf(&b, "ID: %d, %s (%s), ставка %s\n", e.ID, e.Name, e.Role, e.HourlyRate.StringFixed(2))
	}
	return c.Send(b.String())
}

// handleRate: /rate <id> <ставка>, только для администраторов.
func (h *Handler) handleRate(c telebot.Context) error {
	if !h.Admins[c.Sender().ID] {
		return c.Send("Команда доступна только администратору.")
	}
	args := c.Args()
	if len(args) != 2 {
		return c.Send("Использование: /rate <id> <ставка>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return c.Send("Некорректный ID сотрудника.")
	}
	rate, err := decimal.NewFromString(args[1])
	if err != nil {
		return c.Send("Некорректная ставка.")
	}
	if err := h.Employees.SetHourlyRate(context.Background(), id, rate); err != nil {
		return c.Send("Ошибка: " + err.Error())
	}
	log.Printf("[rate] employee=%d rate=%s by=%d", id, rate, c.Sender().ID)
	return c.Send("Ставка обновлена: " + rate.StringFixed(2))
}

func (h *Handler) handleUnpaid(c telebot.Context) error {
	unpaid, err := h.Shifts.CalculateUnpaidSalary(context.Background(), h.scope(c))
	if err != nil {
		return c.Send("Ошибка: " + err.Error())
	}
	return c.Send("Не выплачено: " + unpaid.String())
}

func (h *Handler) handleStart(c telebot.Context) error {
	if err := h.ensureEmployee(context.Background(), c.Sender(), c.Chat().ID); err != nil {
		log.Printf("[start] employee %d: %v", c.Sender().ID, err)
	}
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		markup.Row(markup.Text(btnAddShift.Text)),
		markup.Row(markup.Text(btnSalary.Text)),
		markup.Row(markup.Text(btnPayout.Text)),
	)
	return c.Send("Добро пожаловать!", markup)
}

// ensureEmployee регистрирует отправителя при первом /start. Существующая карточка не меняется.
func (h *Handler) ensureEmployee(ctx context.Context, sender *telebot.User, chatID int64) error {
	empID := int(sender.ID)
	_, err := h.Employees.GetEmployeeByID(ctx, empID)
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		return err
	}
	role := "employee"
	if h.Admins[sender.ID] {
		role = "admin"
	}
	return h.Employees.CreateOrUpdateEmployee(ctx, domain.Employee{
		ID:     empID,
		Name:   sender.FirstName,
		ChatID: chatID,
		Role:   role,
	})
}
