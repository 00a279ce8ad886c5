package payroll

import (
	"fmt"
	"strings"
)

// Status меняется внешним процессом выплат, движок его только читает.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusProcessed Status = "PROCESSED"
	StatusPaid      Status = "PAID"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusProcessed, StatusPaid:
		return st, nil
	}
	return "", fmt.Errorf("unknown shift status %q", s)
}

func (s Status) IsPaid() bool { return s == StatusPaid }
