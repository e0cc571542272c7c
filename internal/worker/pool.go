package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrQueueFull is returned when the job queue cannot accept more work.
var ErrQueueFull = errors.New("job queue is full")

// Task identifies one queued processing job.
type Task struct {
	JobID     string
	InputPath string
}

// Pool runs queued tasks on a bounded set of workers.
type Pool struct {
	pipeline *Pipeline
	tasks    chan Task
	workers  int
	wg       sync.WaitGroup
	mu       sync.Mutex
	closed   bool
}

// NewPool creates a pool with the given concurrency and queue depth.
func NewPool(pipeline *Pipeline, workers, queueDepth int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueDepth < 1 {
		queueDepth = 1
	}
	return &Pool{
		pipeline: pipeline,
		workers:  workers,
		tasks:    make(chan Task, queueDepth),
	}
}

// Start launches the workers. They exit when the pool is stopped or the
// context is canceled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			if err := p.pipeline.Process(ctx, task.JobID, task.InputPath); err != nil {
				slog.Error("job processing error", "job_id", task.JobID, "error", err)
			}
		}
	}
}

// Enqueue adds a task without blocking. A stopped pool rejects tasks
// rather than panicking on the closed queue.
func (p *Pool) Enqueue(task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrQueueFull
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
