// Package onceflag implements a lazily constructed singleton whose storage is
// set up behind an explicit once-flag and owned by the package until it is
// explicitly destroyed.
//
// The first goroutine to reach the flag allocates and constructs the
// instance. Every other caller waits until that has finished and then gets
// the same storage. Only construction is protected: SetData and GetData are
// unsynchronized and race exactly like the unsafelazy variant when used
// concurrently.
//
// The instance lives until Destroy is called, which runs the teardown hook
// (a log line and an optional Observer) and re-arms the flag. ReleaseAtExit
// schedules Destroy for process exit through atexit.Exit.
package onceflag

import (
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
	"go.uber.org/atomic"

	"github.com/leangaurav/singleton/internal/logging"
	"github.com/leangaurav/singleton/internal/once"
)

const (
	// DefaultData is the data of a freshly constructed instance.
	DefaultData = "Singleton5 instance"
	// DropMessage is logged when an instance is destroyed.
	DropMessage = "Singleton5 is being dropped"
)

// Observer is notified when an instance is destroyed.
type Observer interface {
	Dropped(id xid.ID, data string)
}

// Singleton is the shared record.
type Singleton struct {
	id   xid.ID
	data string
}

// New returns a record holding data.
func New(data string) *Singleton {
	return &Singleton{id: xid.New(), data: data}
}

// ID identifies the instance. It never changes after construction.
func (s *Singleton) ID() xid.ID {
	return s.id
}

// SetData replaces the data field. It is not synchronized.
func (s *Singleton) SetData(data string) {
	s.data = data
}

// GetData returns the data field.
func (s *Singleton) GetData() string {
	return s.data
}

// Option configures a Holder.
type Option func(*Holder)

// WithConstructor sets the function that builds the instance.
func WithConstructor(ctor func() *Singleton) Option {
	return func(h *Holder) { h.ctor = ctor }
}

// WithObserver registers o to be told about every destroyed instance.
func WithObserver(o Observer) Option {
	return func(h *Holder) { h.observer = o }
}

// Holder owns the storage of at most one instance.
type Holder struct {
	flag     *once.Flag
	instance atomic.Pointer[Singleton]
	ctor     func() *Singleton
	observer Observer
	inits    atomic.Int64
	drops    atomic.Int64
}

// NewHolder returns an empty slot.
func NewHolder(opts ...Option) *Holder {
	h := &Holder{flag: once.New(once.WithLazyDone())}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Get returns the slot's instance, constructing it if the slot is empty.
// Callers racing a construction block until it has finished.
func (h *Holder) Get() *Singleton {
	for {
		h.flag.Do(func() { h.instance.Store(h.construct()) })
		if s := h.instance.Load(); s != nil {
			return s
		}
		// destroyed between Do and Load; build a new one
	}
}

// Destroy tears the instance down and runs the teardown hook. The next Get
// constructs a new instance. Destroy reports false if the slot was empty.
//
// References obtained before Destroy keep pointing at the dropped instance.
func (h *Holder) Destroy() bool {
	if !h.Live() {
		return false
	}
	var dropped *Singleton
	h.flag.Undo(func() { dropped = h.instance.Swap(nil) })
	if dropped == nil {
		return false
	}
	h.drop(dropped)
	return true
}

// Live reports whether the slot currently holds a constructed instance.
func (h *Holder) Live() bool {
	return h.flag.Done(false)
}

// ReleaseAtExit schedules Destroy to run when the process exits through
// atexit.Exit or atexit.Fatal.
func (h *Holder) ReleaseAtExit() {
	atexit.Register(func() { h.Destroy() })
}

// Inits reports how many instances the slot constructed.
func (h *Holder) Inits() int64 {
	return h.inits.Load()
}

// Drops reports how many instances the slot destroyed.
func (h *Holder) Drops() int64 {
	return h.drops.Load()
}

// construct runs behind the flag.
func (h *Holder) construct() *Singleton {
	var s *Singleton
	if h.ctor != nil {
		s = h.ctor()
	} else {
		s = New(DefaultData)
	}
	n := h.inits.Inc()

	log := logging.For("onceflag")
	log.Debug().Stringer("id", s.id).Int64("inits", n).Msg("instance constructed")
	return s
}

func (h *Holder) drop(s *Singleton) {
	h.drops.Inc()

	log := logging.For("onceflag")
	log.Info().Stringer("id", s.id).Str("data", s.data).Msg(DropMessage)
	if h.observer != nil {
		h.observer.Dropped(s.id, s.data)
	}
}

var global = NewHolder()

// Default returns the slot backing GetInstance.
func Default() *Holder {
	return global
}

// GetInstance returns the process-wide instance.
func GetInstance() *Singleton {
	return global.Get()
}

// Destroy tears down the process-wide instance. See Holder.Destroy.
func Destroy() bool {
	return global.Destroy()
}

// ReleaseAtExit schedules Destroy of the process-wide instance for process
// exit.
func ReleaseAtExit() {
	global.ReleaseAtExit()
}
