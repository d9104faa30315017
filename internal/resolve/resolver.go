package resolve

import (
	"strings"

	"github.com/funvibe/reactor/internal/schema"
	"github.com/funvibe/reactor/internal/typesystem"
)

// OutcomeKind classifies how a declared attribute is satisfied.
type OutcomeKind int

const (
	// Implemented: a concrete binding already exists; leave it alone.
	Implemented OutcomeKind = iota
	// Forwarded: statically proven readable through the base
	// reference with a compatible type.
	Forwarded
	// Constructed: the required type is a concrete, constructible
	// class the factory can build.
	Constructed
	// Deferred: existence cannot be proven statically; a deferred
	// binding probes on first instance access.
	Deferred
	// Unresolved: nothing can satisfy the attribute. The forwarding
	// policy skips it silently; the composition policy raises.
	Unresolved
)

func (k OutcomeKind) String() string {
	switch k {
	case Implemented:
		return "implemented"
	case Forwarded:
		return "forwarded"
	case Constructed:
		return "constructed"
	case Deferred:
		return "deferred"
	case Unresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Outcome is the resolution result for one declared attribute. It is
// produced once per attribute per pass and consumed by exactly one
// synthesizer.
type Outcome struct {
	Kind     OutcomeKind
	Base     string          // base reference attribute (Forwarded, Deferred)
	Target   string          // bare target name on the base (Forwarded, Deferred)
	Class    *schema.Class   // class to construct (Constructed)
	Expected typesystem.Type // declared type of the attribute
}

// Resolver composes the walker, classifier and compatibility oracle
// into per-attribute outcomes.
type Resolver struct {
	walker *Walker
}

// NewResolver returns a resolver over the given walker.
func NewResolver(w *Walker) *Resolver {
	return &Resolver{walker: w}
}

// Walker returns the underlying walker.
func (r *Resolver) Walker() *Walker { return r.walker }

// ResolveForwarding decides how attr on c is satisfied through the
// base reference. target is the bare attribute name expected on the
// base object. Static resolution always wins over deferred: a
// statically proven target forwards directly even when deferral is
// permitted.
func (r *Resolver) ResolveForwarding(c *schema.Class, attr string, required typesystem.Type, base, target string, allowDeferred bool) Outcome {
	if !r.walker.NeedsImplementation(c, attr) {
		return Outcome{Kind: Implemented, Expected: required}
	}

	// Forwarding targets must be public names on the base.
	if target == "" || strings.HasPrefix(target, "_") {
		return Outcome{Kind: Unresolved, Expected: required}
	}

	deferred := func() Outcome {
		if !allowDeferred {
			return Outcome{Kind: Unresolved, Expected: required}
		}
		return Outcome{Kind: Deferred, Base: base, Target: target, Expected: required}
	}

	baseType, _ := r.walker.Collect(c).TypeOf(base)
	tc, ok := baseType.(typesystem.TClass)
	if !ok {
		// Base type unknown, forward, opaque, none or primitive:
		// existence can only be checked on a live instance.
		return deferred()
	}
	baseClass, ok := tc.Decl.(*schema.Class)
	if !ok {
		return deferred()
	}

	if provided, declared := r.walker.Collect(baseClass).TypeOf(target); declared {
		if typesystem.Compatible(provided, required) {
			return Outcome{Kind: Forwarded, Base: base, Target: target, Expected: required}
		}
		// Statically proven incompatible: not ours to forward.
		return Outcome{Kind: Unresolved, Expected: required}
	}
	if baseClass.Implements(target) {
		// Concrete member with no declared type: compatibility
		// defaults permissive.
		return Outcome{Kind: Forwarded, Base: base, Target: target, Expected: required}
	}

	// The base class is known but the target is not statically
	// visible. It may still appear at runtime (init-assigned field),
	// so existence is deferred to first access.
	return deferred()
}

// ResolveConstruction decides how attr on c is satisfied by building
// an instance of its required type.
func (r *Resolver) ResolveConstruction(c *schema.Class, attr string, required typesystem.Type) Outcome {
	if !r.walker.NeedsImplementation(c, attr) {
		return Outcome{Kind: Implemented, Expected: required}
	}

	// Any installed accessor counts here, deferred bindings included:
	// the greedy pass leaves everything a forwarding pass synthesized
	// alone. Provisional status only matters between forwarding
	// passes, where static proof may still replace a deferral.
	if _, ok := c.FindAccessor(attr); ok {
		return Outcome{Kind: Implemented, Expected: required}
	}

	if tc, ok := required.(typesystem.TClass); ok {
		if cls, ok := tc.Decl.(*schema.Class); ok && cls.Constructible() {
			return Outcome{Kind: Constructed, Class: cls, Expected: required}
		}
	}

	return Outcome{Kind: Unresolved, Expected: required}
}
