package payroll_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll-bot/internal/payroll"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func clock(h, m int) payroll.ClockTime { return payroll.NewClockTime(h, m) }

func baseInput() payroll.ShiftInput {
	return payroll.ShiftInput{
		EmployeeID:   1,
		HourlyRate:   dec("10000"),
		Date:         time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		Start:        clock(9, 0),
		End:          clock(17, 0),
		AdvanceOnPay: decimal.Zero,
		PriorDebt:    decimal.Zero,
		Discrepancy:  decimal.Zero,
	}
}

func TestWorkedDuration(t *testing.T) {
	cases := []struct {
		name       string
		start, end payroll.ClockTime
		hours, min int
	}{
		{"same day", clock(9, 0), clock(17, 30), 8, 30},
		{"crosses midnight", clock(22, 0), clock(2, 0), 4, 0},
		{"ends at midnight", clock(20, 0), clock(0, 0), 4, 0},
		{"full day from midnight", clock(0, 0), clock(0, 0), 24, 0},
		{"one minute", clock(23, 59), clock(0, 0), 0, 1},
		{"crosses midnight with minutes", clock(23, 15), clock(1, 5), 1, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := payroll.WorkedDuration(tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.hours, w.Hours)
			assert.Equal(t, tc.min, w.Minutes)
			assert.GreaterOrEqual(t, w.Minutes, 0)
			assert.Less(t, w.Minutes, 60)
		})
	}
}

func TestWorkedDuration_ZeroLengthRejected(t *testing.T) {
	_, err := payroll.WorkedDuration(clock(10, 0), clock(10, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrInvalidShift)

	var shiftErr *payroll.InvalidShiftError
	require.ErrorAs(t, err, &shiftErr)
	assert.Equal(t, clock(10, 0), shiftErr.Start)
}

func TestWorkedDuration_OutOfRangeClock(t *testing.T) {
	_, err := payroll.WorkedDuration(clock(24, 0), clock(2, 0))
	assert.ErrorIs(t, err, payroll.ErrInvalidShift)

	_, err = payroll.WorkedDuration(clock(8, 0), clock(9, 60))
	assert.ErrorIs(t, err, payroll.ErrInvalidShift)
}

func TestComputeShift_FullNetPayScenario(t *testing.T) {
	in := baseInput()
	in.Consumptions = []payroll.Consumption{
		{Amount: dec("12000"), Description: "lunch"},
		{Amount: dec("8000"), Description: "drinks"},
	}
	in.AdvanceOnPay = dec("5000")
	in.PriorDebt = dec("2000")

	out, err := payroll.ComputeShift(in)
	require.NoError(t, err)

	assert.Equal(t, 8, out.Worked.Hours)
	assert.Equal(t, 0, out.Worked.Minutes)
	assert.True(t, out.GrossPay.Equal(dec("80000")), "gross %s", out.GrossPay)
	assert.True(t, out.ConsumptionSubtotal.Equal(dec("20000")))
	assert.True(t, out.ConsumptionDiscount.Equal(dec("3000")))
	assert.True(t, out.ConsumptionNet.Equal(dec("17000")))
	assert.True(t, out.NetPay.Equal(dec("60000")), "net %s", out.NetPay)
}

func TestComputeShift_ConsumptionDiscount(t *testing.T) {
	in := baseInput()
	in.Consumptions = []payroll.Consumption{{Amount: dec("1000"), Description: "coffee"}}

	out, err := payroll.ComputeShift(in)
	require.NoError(t, err)
	assert.True(t, out.ConsumptionDiscount.Equal(dec("150")))
	assert.True(t, out.ConsumptionNet.Equal(dec("850")))
}

func TestComputeShift_NoConsumptions(t *testing.T) {
	out, err := payroll.ComputeShift(baseInput())
	require.NoError(t, err)
	assert.True(t, out.ConsumptionSubtotal.IsZero())
	assert.True(t, out.ConsumptionDiscount.IsZero())
	assert.True(t, out.NetPay.Equal(out.GrossPay))
}

func TestComputeShift_PartialHours(t *testing.T) {
	in := baseInput()
	in.HourlyRate = dec("6000")
	in.Start = clock(9, 0)
	in.End = clock(12, 30)

	out, err := payroll.ComputeShift(in)
	require.NoError(t, err)
	assert.True(t, out.GrossPay.Equal(dec("21000")), "gross %s", out.GrossPay)
}

func TestComputeShift_DiscrepancyDeducted(t *testing.T) {
	in := baseInput()
	in.Discrepancy = dec("2500")

	out, err := payroll.ComputeShift(in)
	require.NoError(t, err)
	assert.True(t, out.NetPay.Equal(dec("77500")))
}

func TestComputeShift_NetPayMayGoNegative(t *testing.T) {
	in := baseInput()
	in.AdvanceOnPay = dec("100000")

	out, err := payroll.ComputeShift(in)
	require.NoError(t, err)
	assert.True(t, out.NetPay.Equal(dec("-20000")))
}

func TestComputeShift_Deterministic(t *testing.T) {
	in := baseInput()
	in.Start = clock(7, 20)
	in.End = clock(15, 7)
	in.HourlyRate = dec("9137.77")
	in.Consumptions = []payroll.Consumption{{Amount: dec("333.33"), Description: "snack"}}

	a, err := payroll.ComputeShift(in)
	require.NoError(t, err)
	b, err := payroll.ComputeShift(in)
	require.NoError(t, err)

	assert.Equal(t, a.NetPay.String(), b.NetPay.String())
	assert.Equal(t, a, b)
}

func TestComputeShift_NegativeAmounts(t *testing.T) {
	cases := map[string]func(*payroll.ShiftInput){
		"rate":        func(in *payroll.ShiftInput) { in.HourlyRate = dec("-1") },
		"advance":     func(in *payroll.ShiftInput) { in.AdvanceOnPay = dec("-1") },
		"debt":        func(in *payroll.ShiftInput) { in.PriorDebt = dec("-1") },
		"discrepancy": func(in *payroll.ShiftInput) { in.Discrepancy = dec("-0.01") },
		"consumption": func(in *payroll.ShiftInput) {
			in.Consumptions = []payroll.Consumption{{Amount: dec("-5"), Description: "refund"}}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := baseInput()
			mutate(&in)
			_, err := payroll.ComputeShift(in)
			assert.ErrorIs(t, err, payroll.ErrInvalidAmount)
			assert.True(t, payroll.IsValidationError(err))
		})
	}
}

func TestComputeShift_ConsumptionDescription(t *testing.T) {
	in := baseInput()
	in.Consumptions = []payroll.Consumption{{Amount: dec("10"), Description: "  "}}
	_, err := payroll.ComputeShift(in)
	assert.ErrorIs(t, err, payroll.ErrInvalidConsumption)

	in.Consumptions = []payroll.Consumption{{Amount: dec("10"), Description: strings.Repeat("я", 201)}}
	_, err = payroll.ComputeShift(in)
	var consErr *payroll.InvalidConsumptionError
	require.ErrorAs(t, err, &consErr)
	assert.Equal(t, 0, consErr.Index)

	in.Consumptions = []payroll.Consumption{{Amount: dec("10"), Description: strings.Repeat("я", 200)}}
	_, err = payroll.ComputeShift(in)
	assert.NoError(t, err)
}

func TestComputeShift_InvalidTimeWinsOverAmounts(t *testing.T) {
	in := baseInput()
	in.End = in.Start
	in.HourlyRate = dec("-1")

	_, err := payroll.ComputeShift(in)
	assert.ErrorIs(t, err, payroll.ErrInvalidShift)
}

func TestParseClock(t *testing.T) {
	c, err := payroll.ParseClock("7:05")
	require.NoError(t, err)
	assert.Equal(t, "07:05", c.String())

	for _, bad := range []string{"", "25:00", "10:61", "ab:cd", "10"} {
		_, err := payroll.ParseClock(bad)
		assert.ErrorIs(t, err, payroll.ErrInvalidShift, bad)
		assert.True(t, payroll.IsValidationError(err), bad)
	}
}

func TestParseStatus(t *testing.T) {
	st, err := payroll.ParseStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPaid, st)

	_, err = payroll.ParseStatus("refunded")
	assert.Error(t, err)
}
