package services

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// ActionQueue runs user actions one at a time.
// Waiting for a turn honours context cancellation.
type ActionQueue struct {
	sem *semaphore.Weighted
}

// NewActionQueue creates an empty action queue.
func NewActionQueue() *ActionQueue {
	return &ActionQueue{sem: semaphore.NewWeighted(1)}
}

// Run waits for the queue to be free and runs fn.
func (q *ActionQueue) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := q.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer q.sem.Release(1)
	return fn(ctx)
}
