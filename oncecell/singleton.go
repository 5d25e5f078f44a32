// Package oncecell implements a lazily constructed, read-only singleton on
// top of a one-time-initialization cell.
//
// Construction runs exactly once no matter how many goroutines call
// GetInstance concurrently, and every caller observes the same fully built
// instance. The instance has no setter, so steady-state reads need no lock.
// This is the variant to reach for when the singleton is read-mostly.
package oncecell

import (
	"github.com/rs/xid"
	"go.uber.org/atomic"

	"github.com/leangaurav/singleton/internal/logging"
)

// DefaultData is the data of the instance.
const DefaultData = "Singleton3 instance"

// Singleton is the shared, immutable record.
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

// GetData returns the data field.
func (s *Singleton) GetData() string {
	return s.data
}

// Holder is a slot backed by a Cell. The zero value is ready to use.
type Holder struct {
	cell  Cell[*Singleton]
	ctor  func() *Singleton
	inits atomic.Int64
}

// NewHolder returns an empty slot that builds its instance with ctor. A nil
// ctor builds an instance holding DefaultData.
func NewHolder(ctor func() *Singleton) *Holder {
	return &Holder{ctor: ctor}
}

// Get returns the slot's instance, constructing it on first use.
func (h *Holder) Get() *Singleton {
	return h.cell.GetOrInit(h.construct)
}

// Inits reports how many times the slot constructed an instance. It is
// never more than one.
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
	h.inits.Inc()

	log := logging.For("oncecell")
	log.Debug().Stringer("id", s.id).Msg("instance constructed")
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
