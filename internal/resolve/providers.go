// Package resolve implements the shared resolution substrate: the
// hierarchy walker that merges declared attribute types across a
// class's linearization, the implementation classifier, and the
// attribute resolver that turns one declaration into one resolution
// outcome. Everything here is pure in-memory metadata work; no user
// code ever runs.
package resolve

import (
	"github.com/funvibe/reactor/internal/schema"
	"github.com/funvibe/reactor/internal/typesystem"
)

// Entry is one annotation read from a class's own declarations.
type Entry struct {
	Name string
	Type typesystem.Type
}

// AnnotationProvider reads one class's own declared attribute types.
// Providers are ranked: the walker consults the resolved provider
// first and falls back to the raw provider when it fails. The
// fallback order is deterministic and never exception-driven.
type AnnotationProvider interface {
	Annotations(c *schema.Class) ([]Entry, error)
}

// resolvedProvider resolves forward-reference names against the class
// registry. It fails for a class whose declarations mention a name
// the registry does not know.
type resolvedProvider struct {
	reg *schema.Registry
}

func (p *resolvedProvider) Annotations(c *schema.Class) ([]Entry, error) {
	decls := c.OwnDecls()
	out := make([]Entry, 0, len(decls))
	for _, d := range decls {
		t := d.Type
		if t == nil {
			ref, ok := p.reg.Lookup(d.Raw)
			if !ok {
				return nil, &schema.UnknownTypeError{Name: d.Raw}
			}
			t = ref.Type()
		}
		out = append(out, Entry{Name: d.Name, Type: t})
	}
	return out, nil
}

// rawProvider never fails: unresolved names are reported as forward
// references and resolution is left to later stages.
type rawProvider struct{}

func (p *rawProvider) Annotations(c *schema.Class) ([]Entry, error) {
	decls := c.OwnDecls()
	out := make([]Entry, 0, len(decls))
	for _, d := range decls {
		t := d.Type
		if t == nil {
			t = typesystem.TForward{Name: d.Raw}
		}
		out = append(out, Entry{Name: d.Name, Type: t})
	}
	return out, nil
}
