package synthesis

import (
	"strings"

	"github.com/funvibe/reactor/internal/resolve"
	"github.com/funvibe/reactor/internal/schema"
)

// PlanComposition resolves every declared attribute of the
// composition root c and returns the outcomes in view order,
// including Implemented and Unresolved entries for reporting.
func PlanComposition(reg *schema.Registry, c *schema.Class) []Planned {
	w := resolve.NewWalker(reg)
	r := resolve.NewResolver(w)
	view := w.Collect(c)

	plan := make([]Planned, 0, view.Len())
	for _, name := range view.Names() {
		required, _ := view.TypeOf(name)
		plan = append(plan, Planned{Attr: name, Outcome: r.ResolveConstruction(c, name, required)})
	}
	return plan
}

// Compose installs lazily-constructing factory properties on the
// composition root c for every declared attribute whose required type
// is a concrete, constructible class. Attributes already implemented,
// including those synthesized by an earlier forwarding pass, are left
// alone. Any unresolved attribute is a configuration error:
// Compose returns before installing anything, so a failed decoration
// never leaves the class partially synthesized.
func Compose(reg *schema.Registry, c *schema.Class, strategy Caching) (*schema.Class, error) {
	if !strategy.valid() {
		return nil, &StrategyError{Strategy: strategy}
	}

	plan := PlanComposition(reg, c)
	for _, p := range plan {
		if p.Outcome.Kind == resolve.Unresolved {
			return nil, &ConfigurationError{Class: c.Name(), Attr: p.Attr, Required: p.Outcome.Expected}
		}
	}

	w := resolve.NewWalker(reg)
	rootView := w.Collect(c)
	for _, p := range plan {
		if p.Outcome.Kind != resolve.Constructed {
			continue
		}
		c.InstallAccessor(p.Attr, &factoryAccessor{
			attr:     p.Attr,
			class:    p.Outcome.Class,
			strategy: strategy,
			walker:   w,
			rootView: rootView,
		})
	}
	return c, nil
}

// factoryAccessor builds an instance of class on access and links its
// declared dependencies back to the composition-root instance, so
// transitive dependencies resolve lazily against the same root. Under
// CachingNotThreadSafe the built instance is stored into the root
// instance's field store, shadowing the accessor on later reads.
type factoryAccessor struct {
	attr     string
	class    *schema.Class
	strategy Caching
	walker   *resolve.Walker
	rootView *resolve.View
}

func (f *factoryAccessor) ReadOnly() bool { return false }

func (f *factoryAccessor) Get(o *schema.Object) (any, error) {
	child, err := schema.New(f.class)
	if err != nil {
		return nil, err
	}

	// Wire the child's unimplemented declarations to the root: same
	// name first, then the underscore-stripped variant. Values flow
	// on the child's first read of each attribute, never eagerly.
	for _, dep := range f.walker.Collect(f.class).Names() {
		if !f.walker.NeedsImplementation(f.class, dep) {
			continue
		}
		if _, ok := f.rootView.TypeOf(dep); ok {
			child.LinkDependency(dep, o, dep)
			continue
		}
		if bare := strings.TrimPrefix(dep, "_"); bare != dep {
			if _, ok := f.rootView.TypeOf(bare); ok {
				child.LinkDependency(dep, o, bare)
			}
		}
	}

	if f.strategy == CachingNotThreadSafe {
		if err := o.Set(f.attr, child); err != nil {
			return nil, err
		}
	}
	return child, nil
}
