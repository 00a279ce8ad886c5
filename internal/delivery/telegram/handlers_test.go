package telegram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"

	"payroll-bot/internal/app/service"
	"payroll-bot/internal/repository/sqlite"
)

func TestEnsureEmployee(t *testing.T) {
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	employees := service.NewEmployeeService(sqlite.NewSqliteEmployeeRepo(db))
	h := &Handler{Employees: employees, Admins: map[int64]bool{7: true}}
	ctx := context.Background()

	require.NoError(t, h.ensureEmployee(ctx, &telebot.User{ID: 7, FirstName: "Lena"}, 70))
	e, err := employees.GetEmployeeByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "admin", e.Role)

	require.NoError(t, h.ensureEmployee(ctx, &telebot.User{ID: 7, FirstName: "Other"}, 70))
	e, err = employees.GetEmployeeByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Lena", e.Name)
}

func TestEnsureEmployee_ReportsLookupFailure(t *testing.T) {
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	h := &Handler{Employees: service.NewEmployeeService(sqlite.NewSqliteEmployeeRepo(db))}
	require.NoError(t, db.Close())

	err = h.ensureEmployee(context.Background(), &telebot.User{ID: 1, FirstName: "Ivan"}, 1)
	assert.Error(t, err)
}
