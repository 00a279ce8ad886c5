package sqlite

import (
	"database/sql"
	"fmt"
)

const createShiftsTable = `
CREATE TABLE IF NOT EXISTS shifts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    employee_id INTEGER NOT NULL,
    date TEXT NOT NULL,
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL,
    advance TEXT NOT NULL DEFAULT '0',
    prior_debt TEXT NOT NULL DEFAULT '0',
    discrepancy TEXT NOT NULL DEFAULT '0',
    status TEXT NOT NULL DEFAULT 'PENDING',
    frozen_rate TEXT
);
`

const createShiftsIndex = `
CREATE INDEX IF NOT EXISTS idx_shifts_employee_date ON shifts (employee_id, date);
`

const createConsumptionsTable = `
CREATE TABLE IF NOT EXISTS shift_consumptions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    shift_id INTEGER NOT NULL REFERENCES shifts(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    amount TEXT NOT NULL,
    description TEXT NOT NULL
);
`

const createEmployeesTable = `
CREATE TABLE IF NOT EXISTS employees (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    chat_id INTEGER NOT NULL,
    role TEXT NOT NULL,
    hourly_rate TEXT NOT NULL DEFAULT '0'
);
`

func Migrate(db *sql.DB) error {
	for _, stmt := range []string{
		createShiftsTable,
		createShiftsIndex,
		createConsumptionsTable,
		createEmployeesTable,
	} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
