package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll-bot/internal/payroll"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(id, emp int, name string, date time.Time, net string) payroll.Entry {
	return payroll.Entry{
		ShiftID:      id,
		EmployeeID:   emp,
		EmployeeName: name,
		Date:         date,
		Status:       payroll.StatusPending,
		Result: payroll.ShiftComputed{
			Worked: payroll.WorkedTime{Hours: 1},
			NetPay: dec(net),
		},
	}
}

func TestRoundUp50(t *testing.T) {
	cases := map[string]string{
		"0":      "0",
		"1":      "50",
		"50":     "50",
		"50.01":  "100",
		"120":    "150",
		"249.99": "250",
		"60000":  "60000",
		"-30":    "0",
	}
	for in, want := range cases {
		got := payroll.RoundUp50(dec(in))
		assert.True(t, got.Equal(dec(want)), "RoundUp50(%s) = %s, want %s", in, got, want)
	}
}

func TestRoundUp50_Properties(t *testing.T) {
	for _, s := range []string{"0", "0.5", "17", "49.999", "1234.56", "99999.01"} {
		x := dec(s)
		r := payroll.RoundUp50(x)
		assert.True(t, r.GreaterThanOrEqual(x), "%s", s)
		assert.True(t, r.Mod(decimal.NewFromInt(50)).IsZero(), "%s", s)
	}
}

func TestAggregate_RoundsEachShiftBeforeSumming(t *testing.T) {
	entries := []payroll.Entry{
		entry(1, 7, "Ana", day(2026, time.March, 3), "120"),
		entry(2, 7, "Ana", day(2026, time.March, 4), "130"),
	}

	s := payroll.Aggregate(entries, payroll.Filter{Year: 2026, Month: time.March})

	require.Len(t, s.Months, 1)
	require.Len(t, s.Months[0].Fortnights, 1)
	fg := s.Months[0].Fortnights[0]
	assert.True(t, fg.Totals.Net.Equal(dec("300")), "fortnight %s", fg.Totals.Net)
	assert.True(t, fg.Employees[0].Totals.Net.Equal(dec("300")))
	assert.True(t, s.Months[0].Totals.Net.Equal(dec("300")))
	assert.True(t, s.Totals.Net.Equal(dec("300")))
}

func TestAggregate_MonthTotalIsSumOfFortnightTotals(t *testing.T) {
	entries := []payroll.Entry{
		entry(1, 1, "Ana", day(2026, time.April, 2), "10"),
		entry(2, 1, "Ana", day(2026, time.April, 20), "10"),
		entry(3, 2, "Bea", day(2026, time.April, 21), "10"),
	}

	s := payroll.Aggregate(entries, payroll.Filter{Year: 2026, Month: time.April})
	m := s.Months[0]
	require.Len(t, m.Fortnights, 2)
	assert.True(t, m.Fortnights[0].Totals.Net.Equal(dec("50")))
	assert.True(t, m.Fortnights[1].Totals.Net.Equal(dec("100")))
	assert.True(t, m.Totals.Net.Equal(dec("150")))
	assert.Equal(t, 3, m.Totals.Shifts)
}

func TestAggregate_FortnightBoundary(t *testing.T) {
	for _, tc := range []struct {
		year  int
		month time.Month
		last  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2024, time.February, 29},
		{2026, time.April, 30},
	} {
		entries := []payroll.Entry{
			entry(1, 1, "Ana", day(tc.year, tc.month, 15), "100"),
			entry(2, 1, "Ana", day(tc.year, tc.month, 16), "100"),
			entry(3, 1, "Ana", day(tc.year, tc.month, tc.last), "100"),
		}
		s := payroll.Aggregate(entries, payroll.Filter{Year: tc.year, Month: tc.month})
		fs := s.Months[0].Fortnights
		require.Len(t, fs, 2)
		assert.Equal(t, payroll.FirstFortnight, fs[0].Key.Half)
		assert.Equal(t, []int{1}, payroll.SelectForPayment(s, fs[0].Key))
		assert.Equal(t, []int{2, 3}, payroll.SelectForPayment(s, fs[1].Key))

		from, to := fs[1].Key.Range()
		assert.Equal(t, 16, from.Day())
		assert.Equal(t, tc.last, to.Day())
	}
}

func TestAggregate_WorkedTimeCarriesMinutes(t *testing.T) {
	a := entry(1, 1, "Ana", day(2026, time.May, 1), "0")
	a.Result.Worked = payroll.WorkedTime{Hours: 7, Minutes: 50}
	b := entry(2, 1, "Ana", day(2026, time.May, 2), "0")
	b.Result.Worked = payroll.WorkedTime{Hours: 0, Minutes: 40}

	s := payroll.Aggregate([]payroll.Entry{a, b}, payroll.Filter{})
	assert.Equal(t, payroll.WorkedTime{Hours: 8, Minutes: 30}, s.Totals.Worked)
	assert.Equal(t, "8h30m", s.Months[0].Fortnights[0].Employees[0].Totals.Worked.String())
}

func TestAggregate_Ordering(t *testing.T) {
	entries := []payroll.Entry{
		entry(1, 2, "carlos", day(2026, time.January, 5), "100"),
		entry(2, 1, "Bea", day(2026, time.January, 3), "100"),
		entry(3, 1, "Bea", day(2026, time.January, 9), "100"),
		entry(4, 3, "ana", day(2026, time.January, 2), "100"),
		entry(5, 3, "ana", day(2025, time.December, 20), "100"),
		entry(6, 3, "ana", day(2026, time.February, 1), "100"),
	}

	s := payroll.Aggregate(entries, payroll.Filter{})
	require.Len(t, s.Months, 3)
	assert.Equal(t, time.February, s.Months[0].Month)
	assert.Equal(t, time.January, s.Months[1].Month)
	assert.Equal(t, 2025, s.Months[2].Year)

	jan := s.Months[1].Fortnights[0]
	names := []string{}
	for _, g := range jan.Employees {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"ana", "Bea", "carlos"}, names)

	bea := jan.Employees[1]
	require.Len(t, bea.Shifts, 2)
	assert.Equal(t, 3, bea.Shifts[0].ShiftID)
	assert.Equal(t, 2, bea.Shifts[1].ShiftID)
}

func TestAggregate_Filter(t *testing.T) {
	entries := []payroll.Entry{
		entry(1, 1, "Ana", day(2026, time.March, 1), "100"),
		entry(2, 2, "Bea", day(2026, time.March, 1), "100"),
		entry(3, 1, "Ana", day(2026, time.April, 1), "100"),
	}

	s := payroll.Aggregate(entries, payroll.Filter{EmployeeID: 1, Year: 2026, Month: time.March})
	require.Len(t, s.Months, 1)
	assert.Equal(t, 1, s.Totals.Shifts)

	s = payroll.Aggregate(entries, payroll.Filter{Year: 2026})
	assert.Len(t, s.Months, 2)
}

func TestAggregate_EmptyIsQueryMiss(t *testing.T) {
	s := payroll.Aggregate(nil, payroll.Filter{EmployeeID: 9, Year: 2026, Month: time.June})
	assert.True(t, s.Empty())
	assert.True(t, s.Totals.Net.IsZero())
	assert.True(t, s.Totals.Unpaid.IsZero())
	assert.Equal(t, 0, s.Totals.Worked.TotalMinutes())

	assert.Empty(t, payroll.SelectForPayment(s, payroll.FortnightKey{Year: 2026, Month: time.June, Half: payroll.FirstFortnight}))
}

func TestAggregate_UnpaidExcludesPaidShifts(t *testing.T) {
	paid := entry(1, 1, "Ana", day(2026, time.March, 2), "120")
	paid.Status = payroll.StatusPaid
	pending := entry(2, 1, "Ana", day(2026, time.March, 3), "130")

	s := payroll.Aggregate([]payroll.Entry{paid, pending}, payroll.Filter{})
	assert.True(t, s.Totals.Net.Equal(dec("300")))
	assert.True(t, s.Totals.Unpaid.Equal(dec("150")))
}

func TestSelectByBudget(t *testing.T) {
	entries := []payroll.Entry{
		entry(1, 1, "Ana", day(2026, time.March, 5), "1000"),
		entry(2, 1, "Ana", day(2026, time.March, 1), "400"),
		entry(3, 1, "Ana", day(2026, time.March, 2), "380"),
		entry(4, 1, "Ana", day(2026, time.March, 3), "5000"),
	}
	entries[3].Status = payroll.StatusPaid

	ids, rest := payroll.SelectByBudget(entries, dec("1900"))
	assert.Equal(t, []int{2, 3, 1}, ids)
	assert.True(t, rest.Equal(dec("100")), "rest %s", rest)

	ids, rest = payroll.SelectByBudget(entries, dec("1500"))
	assert.Equal(t, []int{2, 3}, ids)
	assert.True(t, rest.Equal(dec("700")), "rest %s", rest)

	ids, rest = payroll.SelectByBudget(entries, dec("100"))
	assert.Empty(t, ids)
	assert.True(t, rest.Equal(dec("100")))
}

func TestSelectByBudget_SkipsNonPositiveNet(t *testing.T) {
	entries := []payroll.Entry{
		entry(1, 1, "Ana", day(2026, time.March, 1), "-500"),
		entry(2, 1, "Ana", day(2026, time.March, 2), "0"),
		entry(3, 1, "Ana", day(2026, time.March, 3), "100"),
	}

	ids, rest := payroll.SelectByBudget(entries, dec("100"))
	assert.Equal(t, []int{3}, ids)
	assert.True(t, rest.IsZero(), "rest %s", rest)

	ids, rest = payroll.SelectByBudget(entries, decimal.Zero)
	assert.Empty(t, ids)
	assert.True(t, rest.IsZero())
}

func TestParseFortnightKey(t *testing.T) {
	k, err := payroll.ParseFortnightKey("2026-02-2")
	require.NoError(t, err)
	assert.Equal(t, payroll.FortnightKey{Year: 2026, Month: time.February, Half: payroll.SecondFortnight}, k)
	assert.Equal(t, "2026-02-2", k.String())

	for _, bad := range []string{"2026-02", "2026-13-1", "2026-02-3", "x-02-1"} {
		_, err := payroll.ParseFortnightKey(bad)
		assert.Error(t, err, bad)
	}
}
