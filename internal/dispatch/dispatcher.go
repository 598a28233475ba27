// Package dispatch runs sync tasks on an in-process worker pool. Submission
// is decoupled from execution so the customer stage can fan out material and
// price work without blocking on it.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
)

const (
	defaultWorkers   = 8
	defaultQueueSize = 1024
	defaultMaxRetry  = 3
	retryBackoff     = 500 * time.Millisecond
)

// ErrStopped is returned by Submit after the pool began draining.
var ErrStopped = errors.New("dispatch: dispatcher stopped")

// ErrQueueFull is returned when the task queue cannot accept more work.
var ErrQueueFull = errors.New("dispatch: queue full")

// Handler executes one task kind.
type Handler func(ctx context.Context, task contracts.Task) error

// Options tunes the pool.
type Options struct {
	Workers   int
	QueueSize int
	MaxRetry  int
}

type envelope struct {
	task    contracts.Task
	attempt int
}

// Dispatcher is a bounded worker pool with a handler registry keyed by task
// kind. Delivery is at-least-once: a failed task is re-queued up to MaxRetry
// times before it is abandoned.
type Dispatcher struct {
	handlers map[string]Handler
	queue    chan envelope
	workers  int
	maxRetry int
	logger   *slog.Logger

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
	baseCtx context.Context
	cancel  context.CancelFunc
}

var _ contracts.Dispatcher = (*Dispatcher)(nil)

// New creates a dispatcher. Handlers must be registered before Start.
func New(opts Options, logger *slog.Logger) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.MaxRetry <= 0 {
		opts.MaxRetry = defaultMaxRetry
	}
	return &Dispatcher{
		handlers: make(map[string]Handler),
		queue:    make(chan envelope, opts.QueueSize),
		workers:  opts.Workers,
		maxRetry: opts.MaxRetry,
		logger:   logger,
	}
}

// Register binds a handler to a task kind. Registering the same kind twice
// overwrites the previous handler.
func (d *Dispatcher) Register(kind string, h Handler) {
	d.handlers[kind] = h
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start(ctx context.Context) {
	d.baseCtx, d.cancel = context.WithCancel(ctx)
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
	d.logger.Info("dispatcher started", "workers", d.workers, "queue_size", cap(d.queue))
}

// Submit enqueues a task. It fails fast when the queue is full rather than
// blocking the caller.
func (d *Dispatcher) Submit(ctx context.Context, task contracts.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.enqueue(envelope{task: task, attempt: 1})
}

// enqueue serializes sends with Stop so the queue is never written after
// close.
func (d *Dispatcher) enqueue(env envelope) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return ErrStopped
	}
	select {
	case d.queue <- env:
		return nil
	default:
		return fmt.Errorf("%w: kind %s", ErrQueueFull, env.task.Kind())
	}
}

// Stop drains the queue and waits for in-flight tasks to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	close(d.queue)
	d.wg.Wait()
	if d.cancel != nil {
		d.cancel()
	}
	d.logger.Info("dispatcher stopped")
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	for env := range d.queue {
		d.process(id, env)
	}
}

func (d *Dispatcher) process(workerID int, env envelope) {
	handler, ok := d.handlers[env.task.Kind()]
	if !ok {
		d.logger.Error("no handler registered for task", "kind", env.task.Kind())
		return
	}

	err := handler(d.baseCtx, env.task)
	if err == nil {
		return
	}

	if env.attempt >= d.maxRetry {
		d.logger.Error("task abandoned after retries",
			"kind", env.task.Kind(), "attempts", env.attempt, "worker", workerID, "error", err)
		return
	}

	d.logger.Warn("task failed, retrying",
		"kind", env.task.Kind(), "attempt", env.attempt, "worker", workerID, "error", err)

	time.Sleep(retryBackoff * time.Duration(env.attempt))

	env.attempt++
	if err := d.enqueue(env); err != nil {
		d.logger.Error("dropping retry", "kind", env.task.Kind(), "error", err)
	}
}
