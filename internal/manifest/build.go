package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/reactor/internal/schema"
	"github.com/funvibe/reactor/internal/synthesis"
	"github.com/funvibe/reactor/internal/typesystem"
)

// Build turns a manifest's class definitions into a populated
// registry. Classes may reference bases defined later in the file;
// construction iterates until every class is definable or no progress
// can be made.
func Build(doc *Document) (*schema.Registry, error) {
	reg := schema.NewRegistry()

	pending := make([]ClassDef, len(doc.Classes))
	copy(pending, doc.Classes)

	for len(pending) > 0 {
		progressed := false
		var next []ClassDef
		for _, cd := range pending {
			bases, ok := lookupBases(reg, cd.Bases)
			if !ok {
				next = append(next, cd)
				continue
			}
			c, err := buildClass(cd, bases)
			if err != nil {
				return nil, err
			}
			if err := reg.Add(c); err != nil {
				return nil, err
			}
			progressed = true
		}
		if !progressed {
			var names []string
			for _, cd := range next {
				names = append(names, cd.Name)
			}
			return nil, fmt.Errorf("unresolvable base references in classes: %s", strings.Join(names, ", "))
		}
		pending = next
	}
	return reg, nil
}

func lookupBases(reg *schema.Registry, names []string) ([]*schema.Class, bool) {
	bases := make([]*schema.Class, 0, len(names))
	for _, n := range names {
		b, ok := reg.Lookup(n)
		if !ok {
			return nil, false
		}
		bases = append(bases, b)
	}
	return bases, true
}

func buildClass(cd ClassDef, bases []*schema.Class) (*schema.Class, error) {
	c, err := schema.NewClass(cd.Name, bases...)
	if err != nil {
		return nil, err
	}
	if cd.Abstract {
		c.SetAbstract()
	}
	for _, dd := range cd.Declares {
		declare(c, dd)
	}
	for _, md := range cd.Members {
		if md.Abstract {
			c.MarkAbstract(md.Name)
		} else {
			c.SetMember(md.Name, md.Value)
		}
	}
	if len(cd.Init) > 0 {
		init := cd.Init
		names := make([]string, 0, len(init))
		for k := range init {
			names = append(names, k)
		}
		sort.Strings(names)
		c.SetInit(func(o *schema.Object) {
			for _, k := range names {
				_ = o.Set(k, init[k])
			}
		})
	}
	return c, nil
}

// declare maps a manifest type expression onto a declaration.
// Primitive names resolve directly; a bare identifier becomes a class
// reference resolved against the registry at walk time; anything more
// structured stays opaque so the compatibility oracle treats it
// permissively.
func declare(c *schema.Class, dd DeclDef) {
	switch dd.Type {
	case "str":
		c.Declare(dd.Name, typesystem.Str)
	case "int":
		c.Declare(dd.Name, typesystem.Int)
	case "bool":
		c.Declare(dd.Name, typesystem.Bool)
	case "float":
		c.Declare(dd.Name, typesystem.Float)
	case "bytes":
		c.Declare(dd.Name, typesystem.Bytes)
	case "none":
		c.Declare(dd.Name, typesystem.TNone{})
	default:
		if isIdentifier(dd.Type) {
			c.DeclareRef(dd.Name, dd.Type)
		} else {
			c.Declare(dd.Name, typesystem.TOpaque{Desc: dd.Type})
		}
	}
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return s != ""
}

// Report is the record of one applied step: the class it touched and
// the planned outcome for each attribute the step considered.
type Report struct {
	Kind    string // "forward" or "compose"
	Class   string
	Base    string // forwarding only
	Caching synthesis.Caching
	Plan    []synthesis.Planned
	Err     error
}

// Apply runs the manifest's synthesis steps against the registry in
// order and returns a report per step. A compose failure stops the
// run: decoration aborts, so later steps would act on a graph the
// manifest author never saw.
func Apply(reg *schema.Registry, doc *Document) ([]Report, error) {
	var reports []Report
	for i, s := range doc.Apply {
		switch {
		case s.Forward != nil:
			rep, err := applyForward(reg, s.Forward, i)
			reports = append(reports, rep)
			if err != nil {
				return reports, err
			}
		case s.Compose != nil:
			rep, err := applyCompose(reg, s.Compose, i)
			reports = append(reports, rep)
			if err != nil {
				return reports, err
			}
		}
	}
	return reports, nil
}

func applyForward(reg *schema.Registry, st *ForwardStep, idx int) (Report, error) {
	c, ok := reg.Lookup(st.Class)
	if !ok {
		return Report{Kind: "forward", Class: st.Class}, fmt.Errorf("step #%d: unknown class %q", idx+1, st.Class)
	}
	prefix := "_"
	if st.Prefix != nil {
		prefix = *st.Prefix
	}
	allowDeferred := !st.NoDeferred
	plan := synthesis.PlanForwarding(reg, c, st.Base, prefix, allowDeferred)
	synthesis.Forward(reg, c, st.Base, prefix, allowDeferred)
	return Report{Kind: "forward", Class: st.Class, Base: st.Base, Plan: plan}, nil
}

func applyCompose(reg *schema.Registry, st *ComposeStep, idx int) (Report, error) {
	c, ok := reg.Lookup(st.Class)
	if !ok {
		return Report{Kind: "compose", Class: st.Class}, fmt.Errorf("step #%d: unknown class %q", idx+1, st.Class)
	}
	strategy := synthesis.CachingDisabled
	if st.Caching == "not_thread_safe" {
		strategy = synthesis.CachingNotThreadSafe
	}
	plan := synthesis.PlanComposition(reg, c)
	_, err := synthesis.Compose(reg, c, strategy)
	return Report{Kind: "compose", Class: st.Class, Caching: strategy, Plan: plan, Err: err}, err
}
