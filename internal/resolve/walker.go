package resolve

import (
	"github.com/funvibe/reactor/internal/schema"
	"github.com/funvibe/reactor/internal/typesystem"
)

// View is a merged hierarchy view: every attribute declared anywhere
// in a class's linearization, with the most derived declared type.
// Order is stable for an unchanged class: attributes appear at the
// position of their first (least derived) declaration.
type View struct {
	names []string
	types map[string]typesystem.Type
}

func newView() *View {
	return &View{types: make(map[string]typesystem.Type)}
}

func (v *View) put(name string, t typesystem.Type) {
	if _, seen := v.types[name]; !seen {
		v.names = append(v.names, name)
	}
	v.types[name] = t
}

// Names returns attribute names in view order. Callers must not
// mutate the returned slice.
func (v *View) Names() []string { return v.names }

// TypeOf returns the merged declared type for name.
func (v *View) TypeOf(name string) (typesystem.Type, bool) {
	t, ok := v.types[name]
	return t, ok
}

// Len returns the number of declared attributes in the view.
func (v *View) Len() int { return len(v.names) }

// Walker builds merged hierarchy views. Views are memoized per class:
// declarations are immutable after definition, so a cached view never
// goes stale. Implementation status is NOT part of the view and is
// always checked fresh.
type Walker struct {
	resolved AnnotationProvider
	raw      AnnotationProvider
	memo     map[*schema.Class]*View
}

// NewWalker returns a walker resolving forward references against reg.
func NewWalker(reg *schema.Registry) *Walker {
	return &Walker{
		resolved: &resolvedProvider{reg: reg},
		raw:      &rawProvider{},
		memo:     make(map[*schema.Class]*View),
	}
}

// Collect merges declared attribute types across c's linearization.
// Ancestors are overlaid least derived first, so a subtype's
// re-declaration wins while the attribute keeps its first-seen
// position. A class whose resolved annotations fail to evaluate
// (unresolvable forward reference) silently degrades to its raw
// annotations; the failure is never surfaced.
func (w *Walker) Collect(c *schema.Class) *View {
	if v, ok := w.memo[c]; ok {
		return v
	}

	view := newView()
	lin := c.Linearization()
	for i := len(lin) - 1; i >= 0; i-- {
		entries, err := w.resolved.Annotations(lin[i])
		if err != nil {
			entries, _ = w.raw.Annotations(lin[i])
		}
		for _, e := range entries {
			view.put(e.Name, e.Type)
		}
	}

	w.memo[c] = view
	return view
}
