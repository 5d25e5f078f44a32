// Package unsafelazy implements a lazily constructed singleton without any
// synchronization.
//
// The first call to GetInstance constructs the instance, every later call
// returns it. Nothing protects either the construction or the data field:
// concurrent first calls may construct twice, and concurrent SetData calls race.
// This package is NOT safe for concurrent use and the race detector is expected
// to flag programs that use it from several goroutines. It exists as the
// baseline the synchronized variants are compared against.
package unsafelazy

import (
	"github.com/rs/xid"
	"go.uber.org/atomic"

	"github.com/leangaurav/singleton/internal/logging"
)

// DefaultData is the data of a freshly constructed instance.
const DefaultData = "Singleton1 instance"

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

// Holder is a slot holding at most one instance. The zero value is ready to
// use and constructs instances holding DefaultData.
type Holder struct {
	instance *Singleton
	ctor     func() *Singleton
	inits    atomic.Int64
}

// NewHolder returns an empty slot that builds its instance with ctor. A nil
// ctor builds instances holding DefaultData.
func NewHolder(ctor func() *Singleton) *Holder {
	return &Holder{ctor: ctor}
}

// Get returns the slot's instance, constructing it if the slot is empty.
func (h *Holder) Get() *Singleton {
	if h.instance == nil {
		h.instance = h.construct()
	}
	return h.instance
}

// Inits reports how many times the slot constructed an instance.
func (h *Holder) Inits() int64 {
	return h.inits.Load()
}

func (h *Holder) construct() *Singleton {
	var s *Singleton
	if h.ctor != nil {
		s = h.ctor()
	} else {
		s = New(DefaultData)
	}
	n := h.inits.Inc()

	log := logging.For("unsafelazy")
	log.Debug().Stringer("id", s.id).Int64("inits", n).Msg("instance constructed")
	return s
}

var global Holder

// Default returns the slot backing GetInstance.
func Default() *Holder {
	return &global
}

// GetInstance returns the process-wide instance.
func GetInstance() *Singleton {
	return global.Get()
}
