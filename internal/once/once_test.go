package once

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func noop()    {}
func doPanic() { panic(1) }

func TestDefaults(t *testing.T) {
	f := New()
	assert.Equal(t, false, f.Done(false))
	assert.Equal(t, true, f.Do(noop))
	assert.Equal(t, true, f.Done(false))
	assert.Equal(t, false, f.Do(noop))
}

func blocker() (fn func(), started, release chan struct{}) {
	started = make(chan struct{})
	release = make(chan struct{})
	return func() { close(started); <-release }, started, release
}

func TestLazyDone(t *testing.T) {
	block, started, release := blocker()
	f := New()
	go func() { assert.Equal(t, true, f.Do(block)) }()
	<-started
	assert.Equal(t, true, f.Done(false))
	close(release)

	block, started, release = blocker()
	f = New(WithLazyDone())
	go func() { assert.Equal(t, true, f.Do(block)) }()
	<-started
	assert.Equal(t, false, f.Done(false))
	close(release)
	assert.Equal(t, true, f.Done(true))
}

func TestPanicOption(t *testing.T) {
	f := New()
	assert.Panics(t, func() { f.Do(doPanic) })

	f = New(WithSuppressPanic())
	assert.NotPanics(t, func() { assert.Equal(t, true, f.Do(doPanic)) })
}

func TestDoneAfterPanic(t *testing.T) {
	// eager done with panic
	f := New()
	assert.Panics(t, func() { f.Do(doPanic) })
	assert.Equal(t, true, f.Done(false))

	// eager done with suppressed panic
	f = New(WithSuppressPanic())
	assert.NotPanics(t, func() { f.Do(doPanic) })
	assert.Equal(t, true, f.Done(false))

	// lazy done with panic
	f = New(WithLazyDone())
	assert.Panics(t, func() { f.Do(doPanic) })
	assert.Equal(t, false, f.Done(false))

	// lazy done with suppressed panic
	f = New(WithLazyDone(), WithSuppressPanic())
	assert.NotPanics(t, func() { assert.Equal(t, true, f.Do(doPanic)) })
	assert.Equal(t, false, f.Done(false))

	// a lazy flag retries after a panic
	assert.Equal(t, true, f.Do(noop))
	assert.Equal(t, true, f.Done(false))
}

func TestBlockingGoroutines(t *testing.T) {
	block, started, release := blocker()
	f := New(WithLazyDone())
	go func() { assert.Equal(t, true, f.Do(block)) }()
	<-started
	assert.Equal(t, false, f.Done(false))

	ts := time.Now()
	time.AfterFunc(20*time.Millisecond, func() { close(release) })
	assert.Equal(t, false, f.Do(noop))
	assert.True(t, time.Since(ts) >= 20*time.Millisecond)
	assert.Equal(t, true, f.Done(false))
}

func TestExactlyOnceConcurrent(t *testing.T) {
	const n = 64
	f := New(WithLazyDone())

	var (
		mu    sync.Mutex
		calls int
		wins  int
		wg    sync.WaitGroup
		start = make(chan struct{})
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ran := f.Do(func() {
				mu.Lock()
				calls++
				mu.Unlock()
			})
			if ran {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, wins)
}

func TestReset(t *testing.T) {
	f := New(WithLazyDone())
	assert.Equal(t, false, f.Reset())
	assert.Equal(t, true, f.Do(noop))
	assert.Equal(t, true, f.Done(false))
	assert.Equal(t, false, f.Do(noop))

	assert.Equal(t, true, f.Reset())
	assert.Equal(t, false, f.Reset())
	assert.Equal(t, false, f.Done(false))
	assert.Equal(t, true, f.Do(noop))
	assert.Equal(t, true, f.Done(false))
}

func TestResetWaitsForDo(t *testing.T) {
	block, started, release := blocker()
	f := New(WithLazyDone())
	go f.Do(block)
	<-started

	reset := make(chan bool)
	go func() { reset <- f.Reset() }()

	select {
	case <-reset:
		t.Fatal("Reset returned while Do was running")
	case <-time.After(5 * time.Millisecond):
	}
	close(release)
	assert.Equal(t, true, <-reset)
	assert.Equal(t, false, f.Done(false))
}

func TestUndo(t *testing.T) {
	f := New(WithLazyDone())
	undone := 0
	assert.Equal(t, false, f.Undo(func() { undone++ }))
	assert.Equal(t, 0, undone)

	f.Do(noop)
	assert.Equal(t, true, f.Undo(func() {
		undone++
		assert.Equal(t, false, f.Done(false))
	}))
	assert.Equal(t, 1, undone)
	assert.Equal(t, true, f.Do(noop))
}

func TestCloseUnblocksWaiters(t *testing.T) {
	f := New()
	waiting := make(chan bool)
	go func() { waiting <- f.Done(true) }()

	time.Sleep(2 * time.Millisecond)
	f.Close()
	assert.Equal(t, false, <-waiting)
}
