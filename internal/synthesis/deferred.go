package synthesis

import (
	"github.com/funvibe/reactor/internal/schema"
)

// deferredAccessor is a forwarding property whose target existence
// could not be proven at decoration time. The first instance access
// probes the base object; the outcome is cached at the descriptor,
// class-scoped, because attribute existence is a class-shape fact.
//
// The cell is deliberately unsynchronized (single-threaded decoration
// model, see the package notes in caching.go). A failed probe is
// terminal: every later access returns the identical error value.
//
// A deferred binding is provisional. It does not count as a concrete
// binding, a later pass with better static knowledge may replace it,
// and an instance write shadows it.
type deferredAccessor struct {
	class  string
	attr   string
	base   string
	target string

	state deferredState
	err   error
}

type deferredState int

const (
	deferredPending deferredState = iota
	deferredResolved
	deferredFailed
)

func (d *deferredAccessor) ReadOnly() bool { return false }

func (d *deferredAccessor) Provisional() bool { return true }

func (d *deferredAccessor) Get(o *schema.Object) (any, error) {
	switch d.state {
	case deferredFailed:
		return nil, d.err
	case deferredResolved:
		return d.forward(o)
	}

	// First access: probe the base object for the target. A missing
	// base reference is an ordinary attribute error, not a probe
	// result: the question "does the base have the target?" was
	// never answered, so nothing is cached.
	base, err := o.Get(d.base)
	if err != nil {
		return nil, err
	}
	obj, ok := base.(*schema.Object)
	if !ok {
		return nil, &schema.AttributeError{Class: o.Class().Name(), Attr: d.base}
	}
	if !obj.Has(d.target) {
		d.err = &DeferredError{Class: d.class, Attr: d.attr, Base: d.base, Target: d.target}
		d.state = deferredFailed
		return nil, d.err
	}
	d.state = deferredResolved
	return obj.Get(d.target)
}

func (d *deferredAccessor) forward(o *schema.Object) (any, error) {
	base, err := o.Get(d.base)
	if err != nil {
		return nil, err
	}
	obj, ok := base.(*schema.Object)
	if !ok {
		return nil, &schema.AttributeError{Class: o.Class().Name(), Attr: d.base}
	}
	return obj.Get(d.target)
}
