package payroll

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Fortnight — половина месяца: 1–15 или 16–конец месяца.
type Fortnight int

const (
	FirstFortnight  Fortnight = 1
	SecondFortnight Fortnight = 2
)

const fortnightSplitDay = 15

func FortnightOf(date time.Time) Fortnight {
	if date.Day() <= fortnightSplitDay {
		return FirstFortnight
	}
	return SecondFortnight
}

type FortnightKey struct {
	Year  int
	Month time.Month
	Half  Fortnight
}

func KeyFor(date time.Time) FortnightKey {
	return FortnightKey{Year: date.Year(), Month: date.Month(), Half: FortnightOf(date)}
}

// ParseFortnightKey разбирает "2026-02-1".
func ParseFortnightKey(s string) (FortnightKey, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return FortnightKey{}, fmt.Errorf("fortnight key %q: expected YYYY-MM-H", s)
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return FortnightKey{}, fmt.Errorf("fortnight key %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return FortnightKey{}, fmt.Errorf("fortnight key %q: bad month", s)
	}
	h, err := strconv.Atoi(parts[2])
	if err != nil || (h != int(FirstFortnight) && h != int(SecondFortnight)) {
		return FortnightKey{}, fmt.Errorf("fortnight key %q: half must be 1 or 2", s)
	}
	return FortnightKey{Year: y, Month: time.Month(m), Half: Fortnight(h)}, nil
}

func (k FortnightKey) String() string {
	return fmt.Sprintf("%04d-%02d-%d", k.Year, int(k.Month), int(k.Half))
}

// Range возвращает первый и последний день половины месяца включительно.
func (k FortnightKey) Range() (from, to time.Time) {
	if k.Half == FirstFortnight {
		return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC),
			time.Date(k.Year, k.Month, fortnightSplitDay, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(k.Year, k.Month, fortnightSplitDay+1, 0, 0, 0, 0, time.UTC),
		EndOfMonth(k.Year, k.Month)
}

func StartOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func EndOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}
