package workerpool

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed возвращается при отправке задачи в закрытый пул.
var ErrClosed = errors.New("workerpool: closed")

// Task описывает задачу для пула. Fn должна быть безопасна для конкурентного выполнения;
// ResultC (если задан) должен иметь буфер, чтобы воркер не блокировался.
type Task struct {
	Fn      func() (any, error)
	ResultC chan Result
}

type Result struct {
	Value any
	Err   error
}

type WorkerPool struct {
	tasks  chan Task
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool создаёт пул с workerCount воркерами и очередью queueSize.
func NewWorkerPool(workerCount int, queueSize int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	wp := &WorkerPool{tasks: make(chan Task, queueSize)}
	wp.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		res, err := task.Fn()
		if task.ResultC != nil {
			task.ResultC <- Result{Value: res, Err: err}
		}
	}
}

// Submit ставит задачу в очередь, ожидая свободного места не дольше ctx.
func (wp *WorkerPool) Submit(ctx context.Context, task Task) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return ErrClosed
	}
	select {
	case wp.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do выполняет fn в пуле и ждёт результат.
func (wp *WorkerPool) Do(ctx context.Context, fn func() (any, error)) (any, error) {
	resCh := make(chan Result, 1)
	if err := wp.Submit(ctx, Task{Fn: fn, ResultC: resCh}); err != nil {
		return nil, err
	}
	select {
	case res := <-resCh:
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close перестаёт принимать задачи и дожидается выполнения уже поставленных.
func (wp *WorkerPool) Close() {
	wp.mu.Lock()
	if wp.closed {
		wp.mu.Unlock()
		return
	}
	wp.closed = true
	close(wp.tasks)
	wp.mu.Unlock()
	wp.wg.Wait()
}
