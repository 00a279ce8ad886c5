package service

import (
	"context"

	"payroll-bot/internal/domain"
	"payroll-bot/internal/payroll"
	"payroll-bot/pkg/workerpool"
)

// AsyncService выносит тяжёлые запросы (выборка + сводка) из горутины обработчика в пул.
type AsyncService struct {
	Pool *workerpool.WorkerPool
}

func NewAsyncService(pool *workerpool.WorkerPool) *AsyncService {
	return &AsyncService{Pool: pool}
}

func (a *AsyncService) SubmitAsync(ctx context.Context, fn func() (any, error)) (any, error) {
	return a.Pool.Do(ctx, fn)
}

// Summary строит сводку в пуле.
func (a *AsyncService) Summary(ctx context.Context, shifts domain.ShiftService, f payroll.Filter) (payroll.Summary, error) {
	v, err := a.SubmitAsync(ctx, func() (any, error) {
		return shifts.Summary(ctx, f)
	})
	if err != nil {
		return payroll.Summary{}, err
	}
	return v.(payroll.Summary), nil
}
