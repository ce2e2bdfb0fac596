package usecase_test

import (
	"context"
	"sync"
)

// countingCache cuenta invalidaciones del caché de snapshots.
type countingCache struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.err
}

func (c *countingCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func ptr[T any](v T) *T { return &v }
