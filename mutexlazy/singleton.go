// Package mutexlazy implements a lazily constructed singleton whose every
// access happens under one mutex.
//
// GetInstance blocks until the mutex is free and hands out a Guard. The
// instance is constructed under the same mutex on the first acquisition, so
// construction cannot race. Only one goroutine holds the Guard at a time; the
// others wait in GetInstance until it is released. A Guard that is never
// released blocks every other caller forever. There is no timeout.
package mutexlazy

import (
	"errors"
	"sync"

	"github.com/rs/xid"
	"go.uber.org/atomic"

	"github.com/leangaurav/singleton/internal/logging"
)

// DefaultData is the data of a freshly constructed instance.
const DefaultData = "Singleton2 instance"

// ErrGuardReleased is the panic value raised when a released Guard is used.
var ErrGuardReleased = errors.New("mutexlazy: guard already released")

// Singleton is the shared record. It is only reachable through a Guard.
type Singleton struct {
	id   xid.ID
	data string
}

// New returns a record holding data.
func New(data string) *Singleton {
	return &Singleton{id: xid.New(), data: data}
}

// Guard grants exclusive access to the instance until Release is called.
type Guard struct {
	h        *Holder
	s        *Singleton
	released bool
}

// ID identifies the guarded instance.
func (g *Guard) ID() xid.ID {
	g.check()
	return g.s.id
}

// SetData replaces the data of the guarded instance.
func (g *Guard) SetData(data string) {
	g.check()
	g.s.data = data
}

// GetData returns the data of the guarded instance.
func (g *Guard) GetData() string {
	g.check()
	return g.s.data
}

// Release gives up exclusive access. Calling it more than once is harmless.
func (g *Guard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.h.mu.Unlock()
}

func (g *Guard) check() {
	if g.released {
		panic(ErrGuardReleased)
	}
}

// Holder is a mutex protected slot holding at most one instance. The zero
// value is ready to use.
type Holder struct {
	mu       sync.Mutex
	instance *Singleton
	ctor     func() *Singleton
	inits    atomic.Int64
}

// NewHolder returns an empty slot that builds its instance with ctor. A nil
// ctor builds instances holding DefaultData.
func NewHolder(ctor func() *Singleton) *Holder {
	return &Holder{ctor: ctor}
}

// Acquire blocks until the slot is free and returns a Guard over its
// instance, constructing the instance on first acquisition.
func (h *Holder) Acquire() *Guard {
	h.mu.Lock()
	if h.instance == nil {
		h.instance = h.construct()
	}
	return &Guard{h: h, s: h.instance}
}

// With runs fn with a Guard and releases it on every exit path, including
// a panic in fn.
func (h *Holder) With(fn func(g *Guard)) {
	g := h.Acquire()
	defer g.Release()
	fn(g)
}

// Inits reports how many times the slot constructed an instance.
func (h *Holder) Inits() int64 {
	return h.inits.Load()
}

// construct runs with h.mu held.
func (h *Holder) construct() *Singleton {
	var s *Singleton
	if h.ctor != nil {
		s = h.ctor()
	} else {
		s = New(DefaultData)
	}
	n := h.inits.Inc()

	log := logging.For("mutexlazy")
	log.Debug().Stringer("id", s.id).Int64("inits", n).Msg("instance constructed")
	return s
}

var global Holder

// Default returns the slot backing GetInstance.
func Default() *Holder {
	return &global
}

// GetInstance blocks until the process-wide instance is free and returns a
// Guard over it. The caller must Release the Guard.
func GetInstance() *Guard {
	return global.Acquire()
}

// With runs fn with a Guard over the process-wide instance.
func With(fn func(g *Guard)) {
	global.With(fn)
}
