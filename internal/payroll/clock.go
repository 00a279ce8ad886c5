package payroll

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ClockTime — время суток без даты.
type ClockTime struct {
	Hour   int
	Minute int
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

// ParseClock разбирает "HH:MM" (допускается "H:MM").
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("clock time %q: %w: expected HH:MM", s, ErrInvalidShift)
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil {
		return ClockTime{}, fmt.Errorf("clock time %q: %w: not a number", s, ErrInvalidShift)
	}
	c := ClockTime{Hour: h, Minute: m}
	if !c.Valid() {
		return ClockTime{}, fmt.Errorf("clock time %q: %w: out of range", s, ErrInvalidShift)
	}
	return c, nil
}

func (c ClockTime) Valid() bool {
	return c.Hour >= 0 && c.Hour < 24 && c.Minute >= 0 && c.Minute < 60
}

func (c ClockTime) IsMidnight() bool { return c.Hour == 0 && c.Minute == 0 }

func (c ClockTime) minutes() int { return c.Hour*60 + c.Minute }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// WorkedTime — отработанное время; Minutes всегда в [0,60).
type WorkedTime struct {
	Hours   int
	Minutes int
}

func WorkedTimeFromMinutes(total int) WorkedTime {
	return WorkedTime{Hours: total / 60, Minutes: total % 60}
}

func (w WorkedTime) TotalMinutes() int { return w.Hours*60 + w.Minutes }

// Add складывает в минутах, чтобы перенос через 60 не терялся.
func (w WorkedTime) Add(other WorkedTime) WorkedTime {
	return WorkedTimeFromMinutes(w.TotalMinutes() + other.TotalMinutes())
}

func (w WorkedTime) String() string {
	return fmt.Sprintf("%dh%02dm", w.Hours, w.Minutes)
}

// WorkedDuration считает длительность смены. Конец раньше начала означает переход через полночь;
// конец ровно в 00:00 всегда трактуется как полночь следующего дня.
func WorkedDuration(start, end ClockTime) (WorkedTime, error) {
	if !start.Valid() || !end.Valid() {
		return WorkedTime{}, &InvalidShiftError{Start: start, End: end, Reason: "clock time out of range"}
	}
	startMinutes := start.minutes()
	endMinutes := end.minutes()
	if endMinutes < startMinutes {
		endMinutes += minutesPerDay
	}
	total := endMinutes - startMinutes
	if total <= 0 {
		if !end.IsMidnight() {
			return WorkedTime{}, &InvalidShiftError{Start: start, End: end, Reason: "duration must be positive"}
		}
		total = minutesPerDay - startMinutes
	}
	return WorkedTimeFromMinutes(total), nil
}
