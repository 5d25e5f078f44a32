package singleton

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/leangaurav/singleton/eager"
	"github.com/leangaurav/singleton/mutexlazy"
	"github.com/leangaurav/singleton/oncecell"
	"github.com/leangaurav/singleton/onceflag"
	"github.com/leangaurav/singleton/unsafelazy"
)

// Handle is the read access every variant offers.
type Handle interface {
	ID() xid.ID
	GetData() string
}

// MutableHandle is a Handle whose data can be replaced.
type MutableHandle interface {
	Handle
	SetData(data string)
}

// Provider is one slot holding a single instance under a Policy.
type Provider interface {
	Policy() Policy
	// Acquire returns the slot's instance, constructing it as the policy
	// dictates, and a release function that must be called when the caller is
	// done with the handle. Only PolicyMutex blocks in Acquire.
	Acquire() (Handle, func())
}

// Destroyer is implemented by providers whose instance can be torn down
// explicitly.
type Destroyer interface {
	Destroy() bool
}

// NewProvider returns a fresh slot for p that shares nothing with the
// process-wide instances or other providers.
func NewProvider(p Policy) (Provider, error) {
	switch p {
	case PolicyNone:
		return noneProvider{unsafelazy.NewHolder(nil)}, nil
	case PolicyMutex:
		return mutexProvider{mutexlazy.NewHolder(nil)}, nil
	case PolicyOnceCell:
		return cellProvider{oncecell.NewHolder(nil)}, nil
	case PolicyEager:
		return eagerProvider{eager.NewHolder(nil)}, nil
	case PolicyOnceFlag:
		return flagProvider{onceflag.NewHolder()}, nil
	default:
		return nil, fmt.Errorf("new provider %q: %w", string(p), ErrUnknownPolicy)
	}
}

// Global returns a provider over the process-wide instance of p.
func Global(p Policy) (Provider, error) {
	switch p {
	case PolicyNone:
		return noneProvider{unsafelazy.Default()}, nil
	case PolicyMutex:
		return mutexProvider{mutexlazy.Default()}, nil
	case PolicyOnceCell:
		return cellProvider{oncecell.Default()}, nil
	case PolicyEager:
		return eagerProvider{eager.Default()}, nil
	case PolicyOnceFlag:
		return flagProvider{onceflag.Default()}, nil
	default:
		return nil, fmt.Errorf("global provider %q: %w", string(p), ErrUnknownPolicy)
	}
}

func nop() {}

type noneProvider struct{ h *unsafelazy.Holder }

func (noneProvider) Policy() Policy { return PolicyNone }

func (p noneProvider) Acquire() (Handle, func()) { return p.h.Get(), nop }

type mutexProvider struct{ h *mutexlazy.Holder }

func (mutexProvider) Policy() Policy { return PolicyMutex }

func (p mutexProvider) Acquire() (Handle, func()) {
	g := p.h.Acquire()
	return g, g.Release
}

type cellProvider struct{ h *oncecell.Holder }

func (cellProvider) Policy() Policy { return PolicyOnceCell }

func (p cellProvider) Acquire() (Handle, func()) { return p.h.Get(), nop }

type eagerProvider struct{ h *eager.Holder }

func (eagerProvider) Policy() Policy { return PolicyEager }

func (p eagerProvider) Acquire() (Handle, func()) { return p.h.Get(), nop }

type flagProvider struct{ h *onceflag.Holder }

func (flagProvider) Policy() Policy { return PolicyOnceFlag }

func (p flagProvider) Acquire() (Handle, func()) { return p.h.Get(), nop }

func (p flagProvider) Destroy() bool { return p.h.Destroy() }
