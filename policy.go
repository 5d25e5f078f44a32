package singleton

import (
	"errors"
	"fmt"
	"strings"
)

// Policy names how a slot initializes and protects its instance.
type Policy string

const (
	PolicyNone     Policy = "none"     // lazy, unsynchronized
	PolicyMutex    Policy = "mutex"    // lazy, every access under a mutex
	PolicyOnceCell Policy = "oncecell" // lazy, one-time cell, read-only
	PolicyEager    Policy = "eager"    // built up front, read-only
	PolicyOnceFlag Policy = "onceflag" // lazy, once-flag, explicit teardown
)

// ErrUnknownPolicy is returned for a policy name that is not one of Policies.
var ErrUnknownPolicy = errors.New("unknown policy")

// Policies lists every policy in variant order.
func Policies() []Policy {
	return []Policy{PolicyNone, PolicyMutex, PolicyOnceCell, PolicyEager, PolicyOnceFlag}
}

// ConcurrentSafe reports whether concurrent use of the policy's instance is
// free of data races, including mutation.
func (p Policy) ConcurrentSafe() bool {
	switch p {
	case PolicyMutex, PolicyOnceCell, PolicyEager:
		return true
	default:
		return false
	}
}

// String returns the policy name as accepted by ParsePolicy.
func (p Policy) String() string {
	return string(p)
}

// ParsePolicy maps a policy name to a Policy. Matching ignores case and
// surrounding space.
func ParsePolicy(raw string) (Policy, error) {
	name := Policy(strings.ToLower(strings.TrimSpace(raw)))
	for _, p := range Policies() {
		if p == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("parse policy %q: %w", raw, ErrUnknownPolicy)
}
