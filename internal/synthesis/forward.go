package synthesis

import (
	"strings"

	"github.com/funvibe/reactor/internal/resolve"
	"github.com/funvibe/reactor/internal/schema"
)

// Planned pairs one declared attribute with its resolution outcome.
// Plans are what the CLI reports; the synthesizers consume them to
// install accessors.
type Planned struct {
	Attr    string
	Outcome resolve.Outcome
}

// handles reports whether a forwarding pass with the given prefix is
// responsible for the attribute. An empty prefix handles only public
// names; a non-empty prefix handles names carrying it.
func handles(name, prefix string) bool {
	if prefix == "" {
		return !strings.HasPrefix(name, "_")
	}
	return strings.HasPrefix(name, prefix)
}

// PlanForwarding resolves every prefix-selected attribute of c
// through the base reference and returns the outcomes in view order.
// The base reference itself is never planned; it is injected by other
// means.
func PlanForwarding(reg *schema.Registry, c *schema.Class, base, prefix string, allowDeferred bool) []Planned {
	w := resolve.NewWalker(reg)
	r := resolve.NewResolver(w)
	view := w.Collect(c)

	var plan []Planned
	for _, name := range view.Names() {
		if !handles(name, prefix) || name == base {
			continue
		}
		required, _ := view.TypeOf(name)
		target := strings.TrimPrefix(name, prefix)
		out := r.ResolveForwarding(c, name, required, base, target, allowDeferred)
		plan = append(plan, Planned{Attr: name, Outcome: out})
	}
	return plan
}

// Forward installs forwarding properties on c for every declared
// attribute provable through the base reference, and deferred
// bindings for the rest that may still exist at runtime. Unresolved
// attributes are skipped silently: under the reluctant policy,
// absence of proof is not an error.
//
// Repeated or stacked application with different base references is
// safe. Implementation status is re-evaluated on each pass, so an
// attribute synthesized earlier reads as implemented and is never
// overwritten.
func Forward(reg *schema.Registry, c *schema.Class, base, prefix string, allowDeferred bool) *schema.Class {
	for _, p := range PlanForwarding(reg, c, base, prefix, allowDeferred) {
		switch p.Outcome.Kind {
		case resolve.Forwarded:
			c.InstallAccessor(p.Attr, &forwardAccessor{
				base:   p.Outcome.Base,
				target: p.Outcome.Target,
			})
		case resolve.Deferred:
			c.InstallAccessor(p.Attr, &deferredAccessor{
				class:  c.Name(),
				attr:   p.Attr,
				base:   p.Outcome.Base,
				target: p.Outcome.Target,
			})
		}
	}
	return c
}

// forwardAccessor is a read-only property delegating to the same
// bare-named attribute of the base object.
type forwardAccessor struct {
	base   string
	target string
}

func (f *forwardAccessor) ReadOnly() bool { return true }

func (f *forwardAccessor) Get(o *schema.Object) (any, error) {
	base, err := o.Get(f.base)
	if err != nil {
		return nil, err
	}
	obj, ok := base.(*schema.Object)
	if !ok {
		return nil, &schema.AttributeError{Class: o.Class().Name(), Attr: f.base}
	}
	return obj.Get(f.target)
}
