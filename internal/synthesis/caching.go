// Package synthesis installs computed attributes on classes: the
// reluctant forwarding pass, which skips whatever it cannot prove
// resolvable, and the greedy composition pass, which treats every
// unresolved declared attribute as a configuration error. Both share
// the resolution substrate in internal/resolve and cooperate through
// implementation status: an attribute synthesized by one pass counts
// as implemented for every later pass.
package synthesis

import "fmt"

// Caching controls memoization of factory-synthesized attributes. It
// is attached to a composition root at decoration time and fixed for
// the class's lifetime.
type Caching int

const (
	// CachingDisabled recomputes the attribute on every access: each
	// read constructs a fresh instance.
	CachingDisabled Caching = iota
	// CachingNotThreadSafe computes once per instance and memoizes
	// into the instance field store with no synchronization.
	// Concurrent first access is an explicit, documented race;
	// callers needing safety use CachingDisabled plus external
	// locking.
	CachingNotThreadSafe
)

func (c Caching) String() string {
	switch c {
	case CachingDisabled:
		return "disabled"
	case CachingNotThreadSafe:
		return "not-thread-safe"
	default:
		return fmt.Sprintf("caching(%d)", int(c))
	}
}

func (c Caching) valid() bool {
	return c == CachingDisabled || c == CachingNotThreadSafe
}
