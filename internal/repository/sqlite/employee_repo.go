package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"payroll-bot/internal/domain"
)

type SqliteEmployeeRepo struct {
	db *sql.DB
}

func NewSqliteEmployeeRepo(db *sql.DB) *SqliteEmployeeRepo {
	return &SqliteEmployeeRepo{db: db}
}

// CreateOrUpdateEmployee не трогает ставку существующего сотрудника: её меняет только SetHourlyRate.
func (r *SqliteEmployeeRepo) CreateOrUpdateEmployee(ctx context.Context, e domain.Employee) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE employees SET name = ?, chat_id = ?, role = ? WHERE id = ?`,
		e.Name, e.ChatID, e.Role, e.ID)
	if err != nil {
		return fmt.Errorf("update employee %d: %w", e.ID, err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO employees (id, name, chat_id, role, hourly_rate) VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.Name, e.ChatID, e.Role, e.HourlyRate)
		if err != nil {
			return fmt.Errorf("insert employee %d: %w", e.ID, err)
		}
	}
	return nil
}

func (r *SqliteEmployeeRepo) GetAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, chat_id, role, hourly_rate FROM employees ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.ChatID, &e.Role, &e.HourlyRate); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *SqliteEmployeeRepo) GetEmployeeByID(ctx context.Context, id int) (domain.Employee, error) {
	var e domain.Employee
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, chat_id, role, hourly_rate FROM employees WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.ChatID, &e.Role, &e.HourlyRate)
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("employee %d: %w", id, domain.ErrEmployeeNotFound)
	}
	return e, err
}

func (r *SqliteEmployeeRepo) SetHourlyRate(ctx context.Context, id int, rate decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `UPDATE employees SET hourly_rate = ? WHERE id = ?`, rate, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("employee %d: %w", id, domain.ErrEmployeeNotFound)
	}
	return nil
}
