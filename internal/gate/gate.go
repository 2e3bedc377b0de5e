// Package gate provides shared concurrency limiting for heavyweight
// database operations.
package gate

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Gate limits concurrent schema-building operations using a weighted
// semaphore. Provisioning a tenant walks a long DDL catalog on one pooled
// connection; letting too many run at once starves ordinary request traffic
// of connections.
type Gate struct {
	sem *semaphore.Weighted
}

// New creates a Gate that allows at most limit concurrent operations.
func New(limit int) *Gate {
	if limit < 1 {
		limit = 1
	}
	return &Gate{sem: semaphore.NewWeighted(int64(limit))}
}

// Run acquires a slot, runs fn, and releases the slot.
// Blocks if all slots are busy. Returns ctx.Err() if the context
// is cancelled while waiting for a slot.
// If the gate is nil, fn is executed directly without concurrency control.
func (g *Gate) Run(ctx context.Context, fn func() error) error {
	if g == nil || g.sem == nil {
		return fn()
	}
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer g.sem.Release(1)
	return fn()
}
