package payroll

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var fifty = decimal.NewFromInt(50)

// RoundUp50 округляет вверх до ближайшего кратного 50.
func RoundUp50(x decimal.Decimal) decimal.Decimal {
	return x.Div(fifty).Ceil().Mul(fifty)
}

// Entry — рассчитанная смена с атрибутами для группировки.
type Entry struct {
	ShiftID      int
	EmployeeID   int
	EmployeeName string
	Date         time.Time
	Status       Status
	Result       ShiftComputed
}

// Filter: нулевые поля означают «без ограничения»; Month без Year игнорируется.
type Filter struct {
	EmployeeID int
	Year       int
	Month      time.Month
}

func (f Filter) match(e Entry) bool {
	if f.EmployeeID != 0 && e.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Year != 0 {
		if e.Date.Year() != f.Year {
			return false
		}
		if f.Month != 0 && e.Date.Month() != f.Month {
			return false
		}
	}
	return true
}

// Totals одного уровня группировки. Net и Unpaid — суммы округлённых вверх сумм участников.
type Totals struct {
	Net    decimal.Decimal
	Unpaid decimal.Decimal
	Worked WorkedTime
	Shifts int
}

type EmployeeGroup struct {
	EmployeeID int
	Name       string
	Shifts     []Entry
	Totals     Totals
}

type FortnightGroup struct {
	Key       FortnightKey
	Employees []EmployeeGroup
	Totals    Totals
}

type MonthGroup struct {
	Year       int
	Month      time.Month
	Fortnights []FortnightGroup
	Totals     Totals
}

type Summary struct {
	Filter Filter
	Months []MonthGroup
	Totals Totals
}

func (s Summary) Empty() bool { return len(s.Months) == 0 }

// Fortnight ищет группу половины месяца; ok=false, если в сводке её нет.
func (s Summary) Fortnight(key FortnightKey) (FortnightGroup, bool) {
	for _, m := range s.Months {
		if m.Year != key.Year || m.Month != key.Month {
			continue
		}
		for _, f := range m.Fortnights {
			if f.Key == key {
				return f, true
			}
		}
	}
	return FortnightGroup{}, false
}

// member — вклад участника уровня в итоги родителя.
type member struct {
	net    decimal.Decimal
	unpaid decimal.Decimal
	worked WorkedTime
	shifts int
}

// reduce — одна стадия: каждое значение участника округляется RoundUp50, затем суммируется.
// На верхних уровнях значения уже кратны 50, округление идемпотентно.
func reduce(members []member) Totals {
	t := Totals{Net: decimal.Zero, Unpaid: decimal.Zero}
	minutes := 0
	for _, m := range members {
		t.Net = t.Net.Add(RoundUp50(m.net))
		t.Unpaid = t.Unpaid.Add(RoundUp50(m.unpaid))
		minutes += m.worked.TotalMinutes()
		t.Shifts += m.shifts
	}
	t.Worked = WorkedTimeFromMinutes(minutes)
	return t
}

func (t Totals) asMember() member {
	return member{net: t.Net, unpaid: t.Unpaid, worked: t.Worked, shifts: t.Shifts}
}

func entryMember(e Entry) member {
	m := member{net: e.Result.NetPay, unpaid: decimal.Zero, worked: e.Result.Worked, shifts: 1}
	if !e.Status.IsPaid() {
		m.unpaid = e.Result.NetPay
	}
	return m
}

// Aggregate строит вложенную сводку месяц → половина → сотрудник → смена.
// Пустой результат — это промах запроса, а не ошибка: все итоги нулевые.
func Aggregate(entries []Entry, f Filter) Summary {
	byMonth := make(map[[2]int][]Entry)
	for _, e := range entries {
		if !f.match(e) {
			continue
		}
		k := [2]int{e.Date.Year(), int(e.Date.Month())}
		byMonth[k] = append(byMonth[k], e)
	}

	months := make([]MonthGroup, 0, len(byMonth))
	for k, items := range byMonth {
		months = append(months, buildMonth(k[0], time.Month(k[1]), items))
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year > months[j].Year
		}
		return months[i].Month > months[j].Month
	})

	members := make([]member, len(months))
	for i, m := range months {
		members[i] = m.Totals.asMember()
	}
	return Summary{Filter: f, Months: months, Totals: reduce(members)}
}

func buildMonth(year int, month time.Month, items []Entry) MonthGroup {
	var halves [2][]Entry
	for _, e := range items {
		h := FortnightOf(e.Date)
		halves[h-1] = append(halves[h-1], e)
	}

	g := MonthGroup{Year: year, Month: month}
	var members []member
	for i, part := range halves {
		if len(part) == 0 {
			continue
		}
		key := FortnightKey{Year: year, Month: month, Half: Fortnight(i + 1)}
		fg := buildFortnight(key, part)
		g.Fortnights = append(g.Fortnights, fg)
		members = append(members, fg.Totals.asMember())
	}
	g.Totals = reduce(members)
	return g
}

func buildFortnight(key FortnightKey, items []Entry) FortnightGroup {
	byEmployee := make(map[int][]Entry)
	for _, e := range items {
		byEmployee[e.EmployeeID] = append(byEmployee[e.EmployeeID], e)
	}

	groups := make([]EmployeeGroup, 0, len(byEmployee))
	for id, shifts := range byEmployee {
		groups = append(groups, buildEmployee(id, shifts))
	}
	sort.Slice(groups, func(i, j int) bool {
		a, b := strings.ToLower(groups[i].Name), strings.ToLower(groups[j].Name)
		if a != b {
			return a < b
		}
		return groups[i].EmployeeID < groups[j].EmployeeID
	})

	members := make([]member, len(groups))
	for i, g := range groups {
		members[i] = g.Totals.asMember()
	}
	return FortnightGroup{Key: key, Employees: groups, Totals: reduce(members)}
}

func buildEmployee(id int, shifts []Entry) EmployeeGroup {
	sorted := make([]Entry, len(shifts))
	copy(sorted, shifts)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].ShiftID > sorted[j].ShiftID
	})

	members := make([]member, len(sorted))
	for i, e := range sorted {
		members[i] = entryMember(e)
	}
	g := EmployeeGroup{EmployeeID: id, Shifts: sorted, Totals: reduce(members)}
	if len(sorted) > 0 {
		g.Name = sorted[0].EmployeeName
	}
	return g
}

// SelectForPayment возвращает ID всех смен половины месяца по возрастанию.
// Смену статуса выполняет вызывающая сторона.
func SelectForPayment(s Summary, key FortnightKey) []int {
	fg, ok := s.Fortnight(key)
	if !ok {
		return nil
	}
	var ids []int
	for _, eg := range fg.Employees {
		for _, e := range eg.Shifts {
			ids = append(ids, e.ShiftID)
		}
	}
	sort.Ints(ids)
	return ids
}

// SelectByBudget выплачивает целые смены из суммы: сначала меньшие (по округлённой сумме), при
// равенстве — более ранние. Смены с неположительной суммой сюда не попадают: выплачивать нечего,
// их закрывает только выплата за половину месяца. Возвращает выбранные ID и остаток.
func SelectByBudget(entries []Entry, budget decimal.Decimal) ([]int, decimal.Decimal) {
	unpaid := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Status.IsPaid() {
			unpaid = append(unpaid, e)
		}
	}
	sort.SliceStable(unpaid, func(i, j int) bool {
		a, b := RoundUp50(unpaid[i].Result.NetPay), RoundUp50(unpaid[j].Result.NetPay)
		if !a.Equal(b) {
			return a.LessThan(b)
		}
		return unpaid[i].Date.Before(unpaid[j].Date)
	})

	remaining := budget
	var ids []int
	for _, e := range unpaid {
		if !remaining.IsPositive() {
			break
		}
		amount := RoundUp50(e.Result.NetPay)
		if !amount.IsPositive() {
			continue
		}
		if amount.LessThanOrEqual(remaining) {
			ids = append(ids, e.ShiftID)
			remaining = remaining.Sub(amount)
		}
	}
	return ids, remaining
}
