// Package eager implements a singleton that is built during package
// initialization, before any code can ask for it.
//
// GetInstance is a plain read: there is no initialization check and no race
// window. The price is that the instance is fixed at load time. Its data is
// empty and Init cannot change it; Init only returns the existing instance.
package eager

import (
	"github.com/rs/xid"

	"github.com/leangaurav/singleton/internal/logging"
)

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

// Holder is a slot whose instance exists from the moment the slot does.
type Holder struct {
	instance *Singleton
}

// NewHolder builds the slot's instance right away with ctor. A nil ctor
// builds an instance with empty data.
func NewHolder(ctor func() *Singleton) *Holder {
	if ctor == nil {
		return &Holder{instance: New("")}
	}
	return &Holder{instance: ctor()}
}

// Get returns the slot's instance.
func (h *Holder) Get() *Singleton {
	return h.instance
}

// Init returns the slot's instance. data is ignored: the instance was fixed
// when the slot was built.
func (h *Holder) Init(data string) *Singleton {
	log := logging.For("eager")
	log.Debug().
		Stringer("id", h.instance.id).
		Str("ignored", data).
		Msg("instance is fixed at load time, init has no effect")
	return h.instance
}

var global = NewHolder(nil)

// Default returns the slot backing GetInstance.
func Default() *Holder {
	return global
}

// GetInstance returns the process-wide instance.
func GetInstance() *Singleton {
	return global.Get()
}

// Init returns the process-wide instance unchanged. See Holder.Init.
func Init(data string) *Singleton {
	return global.Init(data)
}
