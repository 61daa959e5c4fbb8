package concurrency

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// WorkerPool runs batches of tasks on a bounded number of goroutines.
// A pool may be reused; its counters accumulate across batches.
type WorkerPool struct {
	numWorkers int

	busy      atomic.Int32
	completed atomic.Int64
	failed    atomic.Int64
	elapsed   atomic.Int64
}

type Task struct {
	ID       string
	JobID    string
	Index    int
	Function func(ctx context.Context) (interface{}, error)
	Timeout  time.Duration
}

type Result struct {
	TaskID   string
	JobID    string
	Index    int
	Value    interface{}
	Error    error
	Duration time.Duration
	WorkerID int
}

// PoolStats is a point-in-time view of the pool counters.
type PoolStats struct {
	Workers        int
	ActiveWorkers  int
	CompletedTasks int64
	FailedTasks    int64
	AverageLatency time.Duration
}

func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// RunAll runs every task and returns one Result per task in slice order.
// Task failures are reported in their Result; only cancellation of ctx
// fails the batch.
func (p *WorkerPool) RunAll(ctx context.Context, tasks []Task) ([]Result, error) {
	results := make([]Result, len(tasks))
	queue := make(chan int)

	var wg sync.WaitGroup
	for id := 0; id < min(p.numWorkers, len(tasks)); id++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range queue {
				results[i] = p.run(ctx, workerID, tasks[i])
			}
		}(id)
	}

feed:
	for i := range tasks {
		select {
		case queue <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *WorkerPool) GetMetrics() PoolStats {
	completed, failed := p.completed.Load(), p.failed.Load()
	stats := PoolStats{
		Workers:        p.numWorkers,
		ActiveWorkers:  int(p.busy.Load()),
		CompletedTasks: completed,
		FailedTasks:    failed,
	}
	if n := completed + failed; n > 0 {
		stats.AverageLatency = time.Duration(p.elapsed.Load() / n)
	}
	return stats
}

func (p *WorkerPool) run(ctx context.Context, workerID int, task Task) Result {
	p.busy.Add(1)
	defer p.busy.Add(-1)

	start := time.Now()
	taskCtx, cancel := taskContext(ctx, task.Timeout)
	value, err := execute(taskCtx, task.Function)
	cancel()
	duration := time.Since(start)

	if err != nil {
		p.failed.Add(1)
	} else {
		p.completed.Add(1)
	}
	p.elapsed.Add(int64(duration))

	return Result{
		TaskID:   task.ID,
		JobID:    task.JobID,
		Index:    task.Index,
		Value:    value,
		Error:    err,
		Duration: duration,
		WorkerID: workerID,
	}
}

func taskContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// execute returns as soon as ctx is done, even if fn ignores ctx.
func execute(ctx context.Context, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	type outcome struct {
		value interface{}
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := fn(ctx)
		done <- outcome{value, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		return o.value, o.err
	}
}
