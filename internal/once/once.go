package once

import (
	"sync"
	"sync/atomic"
)

// Option configures a Flag. See WithLazyDone and WithSuppressPanic.
type Option func(*Flag)

// WithLazyDone makes Do mark the Flag as DONE only after the function returned
// normally. Without it the Flag is marked DONE before the function starts, the
// way the standard library's Once behaves when its function panics.
//
// With lazy done, goroutines racing a running Do block on it and can rely on
// the function's effects once they observe DONE.
func WithLazyDone() Option {
	return func(f *Flag) { f.lazyDone = true }
}

// WithSuppressPanic swallows panics raised by the function passed to Do.
func WithSuppressPanic() Option {
	return func(f *Flag) { f.suppressPanic = true }
}

// Flag is a stateful once-flag. Unlike sync.Once it can be queried, waited
// on, and re-armed with Reset. Use New to create one.
type Flag struct {
	mu            sync.Mutex
	done          uint32
	lazyDone      bool
	suppressPanic bool
	cond          *sync.Cond // signals goroutines blocked in Done(true)
	closed        uint32
}

// New returns an armed Flag.
func New(opts ...Option) *Flag {
	f := &Flag{cond: sync.NewCond(&sync.Mutex{})}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Do calls fn if and only if the Flag is not DONE. Concurrent callers are
// serialized: while one goroutine is inside fn the others wait for it.
// The goroutine that actually ran fn gets true, everybody else gets false.
//
// If fn panics the panic propagates unless WithSuppressPanic was given. Whether
// the Flag ends up DONE after a panic depends on WithLazyDone.
func (f *Flag) Do(fn func()) (ran bool) {
	// fast path
	if atomic.LoadUint32(&f.done) == 1 {
		return false
	}

	if f.suppressPanic {
		defer func() {
			_ = recover()
		}()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done == 1 {
		return false
	}

	defer f.signal()

	if !f.lazyDone {
		atomic.StoreUint32(&f.done, 1)
	}

	ran = true
	fn()

	if f.lazyDone {
		atomic.StoreUint32(&f.done, 1)
	}
	return ran
}

// Done reports whether the Flag is DONE.
//
// Done(false) returns immediately. Done(true) blocks until the Flag becomes
// DONE or Close is called.
func (f *Flag) Done(block bool) bool {
	if block {
		f.cond.L.Lock()
		for atomic.LoadUint32(&f.closed) == 0 && atomic.LoadUint32(&f.done) == 0 {
			f.cond.Wait()
		}
		f.cond.L.Unlock()
	}
	return atomic.LoadUint32(&f.done) == 1
}

// Reset re-arms the Flag and reports whether it was DONE. A Do in progress
// finishes before the reset happens.
func (f *Flag) Reset() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	atomic.StoreUint32(&f.closed, 0)
	return atomic.SwapUint32(&f.done, 0) == 1
}

// Undo re-arms a DONE Flag and then calls fn, both while holding the lock Do
// uses, so a concurrent Do cannot start until fn returned. It reports whether
// the Flag was DONE; fn is not called otherwise.
func (f *Flag) Undo(fn func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if atomic.LoadUint32(&f.done) == 0 {
		return false
	}
	atomic.StoreUint32(&f.done, 0)
	fn()
	return true
}

// Close unblocks all goroutines waiting in Done(true).
func (f *Flag) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	atomic.StoreUint32(&f.closed, 1)
	f.signal()
}

func (f *Flag) signal() {
	f.cond.L.Lock()
	f.cond.Broadcast()
	f.cond.L.Unlock()
}
