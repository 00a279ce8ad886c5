package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"payroll-bot/internal/domain"
	"payroll-bot/internal/payroll"
)

type SqliteShiftRepo struct {
	db *sql.DB
}

func NewSqliteShiftRepo(db *sql.DB) *SqliteShiftRepo {
	return &SqliteShiftRepo{db: db}
}

const shiftColumns = `id, employee_id, date, start_time, end_time, advance, prior_debt, discrepancy, status, frozen_rate`

func (r *SqliteShiftRepo) AddShift(ctx context.Context, shift domain.Shift) (int, error) {
	var id int
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		status := shift.Status
		if status == "" {
			status = payroll.StatusPending
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO shifts (employee_id, date, start_time, end_time, advance, prior_debt, discrepancy, status, frozen_rate)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			shift.EmployeeID,
			shift.Date.Format(dateLayout),
			shift.Start.String(),
			shift.End.String(),
			shift.Advance,
			shift.PriorDebt,
			shift.Discrepancy,
			string(status),
			frozenRate(shift.FrozenRate),
		)
		if err != nil {
			return fmt.Errorf("insert shift: %w", err)
		}
		lastID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		id = int(lastID)
		return insertConsumptions(ctx, tx, id, shift.Consumptions)
	})
	return id, err
}

// UpdateShift заменяет входные данные смены целиком; статус и зафиксированная ставка не меняются.
func (r *SqliteShiftRepo) UpdateShift(ctx context.Context, shift domain.Shift) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE shifts SET employee_id = ?, date = ?, start_time = ?, end_time = ?, advance = ?, prior_debt = ?, discrepancy = ?
			 WHERE id = ?`,
			shift.EmployeeID,
			shift.Date.Format(dateLayout),
			shift.Start.String(),
			shift.End.String(),
			shift.Advance,
			shift.PriorDebt,
			shift.Discrepancy,
			shift.ID,
		)
		if err != nil {
			return fmt.Errorf("update shift %d: %w", shift.ID, err)
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			return fmt.Errorf("shift %d: %w", shift.ID, domain.ErrShiftNotFound)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM shift_consumptions WHERE shift_id = ?`, shift.ID); err != nil {
			return err
		}
		return insertConsumptions(ctx, tx, shift.ID, shift.Consumptions)
	})
}

func (r *SqliteShiftRepo) GetShift(ctx context.Context, id int) (domain.Shift, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = ?`, id)
	s, err := scanShift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return s, fmt.Errorf("shift %d: %w", id, domain.ErrShiftNotFound)
	}
	if err != nil {
		return s, err
	}
	byShift, err := r.loadConsumptions(ctx, []int{s.ID})
	if err != nil {
		return s, err
	}
	s.Consumptions = byShift[s.ID]
	return s, nil
}

func (r *SqliteShiftRepo) GetShifts(ctx context.Context, employeeID int, from, to time.Time) ([]domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE 1 = 1`
	var args []any
	if !from.IsZero() || !to.IsZero() {
		query += ` AND date BETWEEN ? AND ?`
		args = append(args, from.Format(dateLayout), to.Format(dateLayout))
	}
	if employeeID != 0 {
		query += ` AND employee_id = ?`
		args = append(args, employeeID)
	}
	query += ` ORDER BY date, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []domain.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, nil
	}

	ids := make([]int, len(shifts))
	for i, s := range shifts {
		ids[i] = s.ID
	}
	byShift, err := r.loadConsumptions(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range shifts {
		shifts[i].Consumptions = byShift[shifts[i].ID]
	}
	return shifts, nil
}

// MarkShiftsPaid переводит все смены в PAID одной транзакцией.
func (r *SqliteShiftRepo) MarkShiftsPaid(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			if err := setStatus(ctx, tx, id, payroll.StatusPaid); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SqliteShiftRepo) SetStatus(ctx context.Context, id int, status payroll.Status) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		return setStatus(ctx, tx, id, status)
	})
}

func setStatus(ctx context.Context, tx *sql.Tx, id int, status payroll.Status) error {
	res, err := tx.ExecContext(ctx, `UPDATE shifts SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("set status of shift %d: %w", id, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("shift %d: %w", id, domain.ErrShiftNotFound)
	}
	return nil
}

func (r *SqliteShiftRepo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertConsumptions(ctx context.Context, tx *sql.Tx, shiftID int, items []payroll.Consumption) error {
	for i, c := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO shift_consumptions (shift_id, position, amount, description) VALUES (?, ?, ?, ?)`,
			shiftID, i, c.Amount, c.Description)
		if err != nil {
			return fmt.Errorf("insert consumption for shift %d: %w", shiftID, err)
		}
	}
	return nil
}

func (r *SqliteShiftRepo) loadConsumptions(ctx context.Context, shiftIDs []int) (map[int][]payroll.Consumption, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(shiftIDs)), ",")
	args := make([]any, len(shiftIDs))
	for i, id := range shiftIDs {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT shift_id, amount, description FROM shift_consumptions
		 WHERE shift_id IN (`+placeholders+`) ORDER BY shift_id, position`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int][]payroll.Consumption)
	for rows.Next() {
		var shiftID int
		var c payroll.Consumption
		if err := rows.Scan(&shiftID, &c.Amount, &c.Description); err != nil {
			return nil, err
		}
		out[shiftID] = append(out[shiftID], c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShift(row rowScanner) (domain.Shift, error) {
	var s domain.Shift
	var date, start, end, status string
	var frozen decimal.NullDecimal
	err := row.Scan(&s.ID, &s.EmployeeID, &date, &start, &end,
		&s.Advance, &s.PriorDebt, &s.Discrepancy, &status, &frozen)
	if err != nil {
		return s, err
	}
	if s.Date, err = time.Parse(dateLayout, date); err != nil {
		return s, err
	}
	if s.Start, err = payroll.ParseClock(start); err != nil {
		return s, err
	}
	if s.End, err = payroll.ParseClock(end); err != nil {
		return s, err
	}
	s.Status = payroll.Status(status)
	if frozen.Valid {
		rate := frozen.Decimal
		s.FrozenRate = &rate
	}
	return s, nil
}

func frozenRate(rate *decimal.Decimal) decimal.NullDecimal {
	if rate == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *rate, Valid: true}
}
