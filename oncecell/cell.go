package oncecell

import (
	"sync"

	"go.uber.org/atomic"
)

// Cell is a one-time-initialization cell. The zero value is an empty cell.
type Cell[T any] struct {
	mu    sync.Mutex
	done  atomic.Bool
	value T
}

// GetOrInit returns the cell's value, calling f to produce it if the cell is
// empty. Once f has returned it is never called again; callers arriving while
// f runs wait for it and then observe its result.
//
// If f panics the panic propagates, the cell stays empty and the next call
// runs its f.
func (c *Cell[T]) GetOrInit(f func() T) T {
	// fast path
	if c.done.Load() {
		return c.value
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.done.Load() {
		c.value = f()
		c.done.Store(true)
	}
	return c.value
}

// Get returns the cell's value and true, or the zero value and false if the
// cell was never initialized.
func (c *Cell[T]) Get() (T, bool) {
	if !c.done.Load() {
		var zero T
		return zero, false
	}
	return c.value, true
}

// IsInitialized reports whether the cell holds a value.
func (c *Cell[T]) IsInitialized() bool {
	return c.done.Load()
}
