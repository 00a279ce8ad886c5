package flows_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll-bot/internal/delivery/telegram/flows"
	"payroll-bot/internal/domain"
	"payroll-bot/internal/payroll"
)

func TestParseShiftLine_Full(t *testing.T) {
	form, err := flows.ParseShiftLine("22:00-02:00 аванс=5000 долг=2000 недостача=150 обед:12000 кофе_с_молоком:1500.50")
	require.NoError(t, err)

	assert.Equal(t, "22:00", form.Start.String())
	assert.Equal(t, "02:00", form.End.String())
	assert.True(t, form.Advance.Equal(decimal.NewFromInt(5000)))
	assert.True(t, form.PriorDebt.Equal(decimal.NewFromInt(2000)))
	assert.True(t, form.Discrepancy.Equal(decimal.NewFromInt(150)))
	require.Len(t, form.Consumptions, 2)
	assert.Equal(t, "кофе с молоком", form.Consumptions[1].Description)
	assert.True(t, form.Consumptions[1].Amount.Equal(decimal.RequireFromString("1500.5")))
}

func TestParseShiftLine_TimesOnly(t *testing.T) {
	form, err := flows.ParseShiftLine("  9:00-17:30 ")
	require.NoError(t, err)
	assert.True(t, form.Advance.IsZero())
	assert.Empty(t, form.Consumptions)

	d := form.Draft(5, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 5, d.EmployeeID)
	out, err := payroll.ComputeShift(d.Input(decimal.NewFromInt(100)))
	require.NoError(t, err)
	assert.Equal(t, "8h30m", out.Worked.String())
}

func TestParseShiftLine_Errors(t *testing.T) {
	for _, line := range []string{
		"",
		"0900-1700",
		"09:00-25:00",
		"09:00-17:00 бонус=5",
		"09:00-17:00 аванс=abc",
		"09:00-17:00 обед",
		"09:00-17:00 обед:xx",
	} {
		_, err := flows.ParseShiftLine(line)
		assert.Error(t, err, line)
	}
}

func TestRenderSummary(t *testing.T) {
	entries := []payroll.Entry{
		{ShiftID: 1, EmployeeID: 1, EmployeeName: "Ana", Date: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
			Status: payroll.StatusPending, Result: payroll.ShiftComputed{Worked: payroll.WorkedTime{Hours: 7, Minutes: 50}, NetPay: decimal.NewFromInt(120)}},
		{ShiftID: 2, EmployeeID: 1, EmployeeName: "Ana", Date: time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
			Status: payroll.StatusPaid, Result: payroll.ShiftComputed{Worked: payroll.WorkedTime{Minutes: 40}, NetPay: decimal.NewFromInt(130)}},
	}
	text := flows.RenderSummary(payroll.Aggregate(entries, payroll.Filter{}))

	assert.Contains(t, text, "03.2026")
	assert.Contains(t, text, "01–15.03.2026 — 300 (8h30m), не выплачено 150")
	assert.Contains(t, text, "Ana — 300")
	assert.Contains(t, text, "[выплачено]")
	assert.Contains(t, text, "Итого за месяц: 300")

	assert.True(t, strings.HasPrefix(flows.RenderSummary(payroll.Summary{}), "Смен за период нет"))
}

func TestRenderShift(t *testing.T) {
	s := domain.Shift{
		ShiftDraft: domain.ShiftDraft{
			Date:      time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
			Start:     payroll.NewClockTime(9, 0),
			End:       payroll.NewClockTime(17, 0),
			Advance:   decimal.NewFromInt(5000),
			PriorDebt: decimal.Zero,
		},
		Computed: payroll.ShiftComputed{
			Worked:              payroll.WorkedTime{Hours: 8},
			GrossPay:            decimal.NewFromInt(80000),
			ConsumptionSubtotal: decimal.NewFromInt(1000),
			ConsumptionDiscount: decimal.NewFromInt(150),
			ConsumptionNet:      decimal.NewFromInt(850),
			NetPay:              decimal.NewFromInt(74150),
		},
	}
	text := flows.RenderShift(s)
	assert.Contains(t, text, "09:00–17:00: 8h00m")
	assert.Contains(t, text, "скидка 150.00")
	assert.Contains(t, text, "Аванс: 5000.00")
	assert.Contains(t, text, "К выплате: 74150.00")
}
