// ABOUTME: RunLoop executes every engine callback on a single goroutine
// ABOUTME: Gives the cooperative one-body-at-a-time model across all timers

package workers

import (
	"context"
	"sync"
	"time"
)

// job is a queued task and its completion signal
type job struct {
	ctx  context.Context
	task Task
	done chan struct{}
}

// RunLoop owns one goroutine that runs queued tasks to completion in
// submission order.
type RunLoop struct {
	jobQueue      chan *job
	queueSize     int
	submitTimeout time.Duration
	wg            sync.WaitGroup
	ctx           context.Context
	cancel        context.CancelFunc
	exited        chan struct{}
	mu            sync.Mutex
	running       bool
}

// RunLoopConfig holds configuration for the run loop
type RunLoopConfig struct {
	QueueSize     int
	SubmitTimeout time.Duration
}

// DefaultRunLoopConfig returns the default run loop configuration
func DefaultRunLoopConfig() RunLoopConfig {
	return RunLoopConfig{
		QueueSize:     64,
		SubmitTimeout: 5 * time.Second,
	}
}

// NewRunLoop creates a stopped run loop
func NewRunLoop(config RunLoopConfig) *RunLoop {
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultRunLoopConfig().QueueSize
	}
	if config.SubmitTimeout <= 0 {
		config.SubmitTimeout = DefaultRunLoopConfig().SubmitTimeout
	}
	return &RunLoop{
		queueSize:     config.QueueSize,
		submitTimeout: config.SubmitTimeout,
	}
}

// Start starts the loop goroutine
func (rl *RunLoop) Start() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.running {
		return nil
	}

	rl.ctx, rl.cancel = context.WithCancel(context.Background())
	rl.jobQueue = make(chan *job, rl.queueSize)
	rl.exited = make(chan struct{})
	rl.wg.Add(1)
	go rl.run(rl.ctx, rl.jobQueue, rl.exited)

	rl.running = true
	return nil
}

// Stop stops the loop and waits for the running task to finish.
// Queued tasks that never ran are released with their context error.
func (rl *RunLoop) Stop() error {
	rl.mu.Lock()
	if !rl.running {
		rl.mu.Unlock()
		return nil
	}
	rl.cancel()
	rl.running = false
	rl.mu.Unlock()

	rl.wg.Wait()
	return nil
}

// Running reports whether the loop accepts tasks
func (rl *RunLoop) Running() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.running
}

// Do queues task and blocks until it has run. A task must not call Do
// on the same loop.
func (rl *RunLoop) Do(ctx context.Context, task Task) error {
	rl.mu.Lock()
	if !rl.running {
		rl.mu.Unlock()
		return ErrWorkerNotRunning
	}
	queue, loopCtx, exited := rl.jobQueue, rl.ctx, rl.exited
	rl.mu.Unlock()

	j := &job{ctx: ctx, task: task, done: make(chan struct{})}

	timer := time.NewTimer(rl.submitTimeout)
	defer timer.Stop()

	select {
	case queue <- j:
	case <-timer.C:
		return ErrQueueFull
	case <-ctx.Done():
		return ctx.Err()
	case <-loopCtx.Done():
		return ErrWorkerNotRunning
	}

	select {
	case <-j.done:
		return nil
	case <-loopCtx.Done():
		select {
		case <-j.done:
			return nil
		case <-exited:
			return ErrWorkerNotRunning
		}
	}
}

// run is the main loop
func (rl *RunLoop) run(ctx context.Context, queue chan *job, exited chan struct{}) {
	defer rl.wg.Done()
	defer close(exited)

	for {
		select {
		case j := <-queue:
			rl.process(ctx, j)
		case <-ctx.Done():
			rl.drain(queue)
			return
		}
	}
}

// process runs one job unless its submitter or the loop has gone away
func (rl *RunLoop) process(ctx context.Context, j *job) {
	defer close(j.done)
	if ctx.Err() != nil || j.ctx.Err() != nil {
		return
	}
	j.task(j.ctx)
}

// drain releases jobs that were queued but never ran
func (rl *RunLoop) drain(queue chan *job) {
	for {
		select {
		case j := <-queue:
			close(j.done)
		default:
			return
		}
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "run loop is not running"}
	ErrQueueFull        = &WorkerError{Message: "task queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
