package domain

import "errors"

var (
	ErrShiftNotFound    = errors.New("shift not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrShiftAlreadyPaid = errors.New("shift already paid, cannot modify")
)
