// ABOUTME: Executor contract for running tick bodies one at a time
// ABOUTME: Inline runs tasks under a mutex on the caller's goroutine

package workers

import (
	"context"
	"sync"
)

// Task is one unit of work, typically a scan tick.
type Task func(ctx context.Context)

// Executor runs tasks so that no two task bodies overlap.
type Executor interface {
	// Do runs task and returns once it has completed, or with an error
	// if it could not be scheduled.
	Do(ctx context.Context, task Task) error
}

// Inline serialises tasks with a mutex on the calling goroutine.
type Inline struct {
	mu sync.Mutex
}

// NewInline creates an inline executor.
func NewInline() *Inline {
	return &Inline{}
}

// Do runs task while holding the lock.
func (e *Inline) Do(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	task(ctx)
	return nil
}
