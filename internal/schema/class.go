// Package schema models the host type system the synthesis engine
// operates on: classes with declared attribute types, concrete and
// abstract members, a precomputed ancestor linearization, and runtime
// instances whose attribute access consults a per-class accessor table.
//
// Classes are built once, at definition time. Declarations are
// append-only and must not change after synthesis passes run; the
// hierarchy walker relies on that to memoize merged views.
package schema

import (
	"github.com/funvibe/reactor/internal/typesystem"
)

// Decl is a single declared attribute on a class: a name plus either a
// resolved declared type or a raw forward-reference name.
type Decl struct {
	Name string
	Type typesystem.Type // nil when only Raw is known
	Raw  string          // forward-reference name, "" when Type is set
}

// InitFunc is an optional constructor body. It runs when an instance
// is created, never at decoration time.
type InitFunc func(*Object)

// Class is a modelled class: the unit the synthesizers decorate.
type Class struct {
	name      string
	bases     []*Class
	lin       []*Class // C3 linearization, self first
	abstract  bool     // explicitly declared abstract
	decls     []Decl   // own declarations, definition order
	members   map[string]*Member
	accessors map[string]Accessor // synthesized computed attributes
	init      InitFunc
}

// NewClass defines a class with the given bases. The ancestor
// linearization is computed eagerly; an inconsistent hierarchy is a
// definition-time error.
func NewClass(name string, bases ...*Class) (*Class, error) {
	c := &Class{
		name:      name,
		bases:     bases,
		members:   make(map[string]*Member),
		accessors: make(map[string]Accessor),
	}
	lin, err := linearize(c)
	if err != nil {
		return nil, err
	}
	c.lin = lin
	return c, nil
}

// MustClass is NewClass panicking on hierarchy errors. Intended for
// statically known hierarchies in tests and examples.
func MustClass(name string, bases ...*Class) *Class {
	c, err := NewClass(name, bases...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Bases returns the direct bases in declaration order.
func (c *Class) Bases() []*Class { return c.bases }

// Linearization returns the precomputed ancestor linearization, most
// derived first, including the class itself. Callers must not mutate
// the returned slice.
func (c *Class) Linearization() []*Class { return c.lin }

// Declare records an attribute declaration with a resolved type.
func (c *Class) Declare(name string, t typesystem.Type) *Class {
	c.decls = append(c.decls, Decl{Name: name, Type: t})
	return c
}

// DeclareRef records an attribute declaration whose type is known only
// by name. The name is resolved against a registry when the hierarchy
// walker collects annotations.
func (c *Class) DeclareRef(name, typeName string) *Class {
	c.decls = append(c.decls, Decl{Name: name, Raw: typeName})
	return c
}

// OwnDecls returns the class's own declarations in definition order.
// Inherited declarations are not included; use the hierarchy walker
// for the merged view.
func (c *Class) OwnDecls() []Decl { return c.decls }

// SetMember installs a concrete class-level binding for name.
func (c *Class) SetMember(name string, value any) *Class {
	c.members[name] = &Member{Kind: MemberConcrete, Value: value}
	return c
}

// MarkAbstract installs an abstract placeholder for name. The marker
// is the only way an attribute is recognized as abstract-declared;
// naming conventions play no part.
func (c *Class) MarkAbstract(name string) *Class {
	c.members[name] = &Member{Kind: MemberAbstract}
	return c
}

// Member returns the class's own member for name, if any. Inherited
// members are not consulted.
func (c *Class) Member(name string) (*Member, bool) {
	m, ok := c.members[name]
	return m, ok
}

// SetInit attaches a constructor body.
func (c *Class) SetInit(fn InitFunc) *Class {
	c.init = fn
	return c
}

// SetAbstract marks the class itself abstract. Abstract classes are
// never constructible regardless of their members.
func (c *Class) SetAbstract() *Class {
	c.abstract = true
	return c
}

// InstallAccessor places a computed attribute in the class's accessor
// table. Installation happens at decoration time only.
func (c *Class) InstallAccessor(name string, a Accessor) {
	c.accessors[name] = a
}

// OwnAccessor returns the class's own accessor for name, if any.
func (c *Class) OwnAccessor(name string) (Accessor, bool) {
	a, ok := c.accessors[name]
	return a, ok
}

// FindAccessor walks the linearization, most derived first, and
// returns the first accessor installed for name.
func (c *Class) FindAccessor(name string) (Accessor, bool) {
	for _, anc := range c.lin {
		if a, ok := anc.accessors[name]; ok {
			return a, true
		}
	}
	return nil, false
}

// Implements reports whether a concrete binding for name exists
// anywhere in the hierarchy: a concrete member or an installed
// accessor. Abstract markers do not count, and neither do provisional
// accessors, so a deferred binding can still be upgraded to a static
// one by a later pass.
func (c *Class) Implements(name string) bool {
	for _, anc := range c.lin {
		if a, ok := anc.accessors[name]; ok && !isProvisional(a) {
			return true
		}
		if m, ok := anc.members[name]; ok && m.Kind == MemberConcrete {
			return true
		}
	}
	return false
}

// AbstractDeclared reports whether name carries an abstract marker
// somewhere in the hierarchy without any concrete binding.
func (c *Class) AbstractDeclared(name string) bool {
	if c.Implements(name) {
		return false
	}
	for _, anc := range c.lin {
		if m, ok := anc.members[name]; ok && m.Kind == MemberAbstract {
			return true
		}
	}
	return false
}

// TypeName implements typesystem.ClassDecl.
func (c *Class) TypeName() string { return c.name }

// Lineage implements typesystem.ClassDecl.
func (c *Class) Lineage() []typesystem.ClassDecl {
	out := make([]typesystem.ClassDecl, len(c.lin))
	for i, a := range c.lin {
		out[i] = a
	}
	return out
}

// Constructible implements typesystem.ClassDecl. A class can be
// instantiated when it is not explicitly abstract and every abstract
// marker in its hierarchy is overridden by a concrete binding or a
// synthesized accessor.
func (c *Class) Constructible() bool {
	if c.abstract {
		return false
	}
	for _, anc := range c.lin {
		for name, m := range anc.members {
			if m.Kind != MemberAbstract {
				continue
			}
			if !c.Implements(name) {
				return false
			}
		}
	}
	return true
}

// Type returns the declared-type value referencing this class.
func (c *Class) Type() typesystem.Type {
	return typesystem.TClass{Decl: c}
}
