package schema

import (
	"github.com/google/uuid"
)

// depLink defers one attribute to another object's attribute. Factory
// accessors install links so a constructed instance reaches its
// dependencies through the composition root lazily, which also keeps
// mutually dependent attributes from recursing at construction time.
type depLink struct {
	source *Object
	attr   string
}

// Object is an instance of a Class. Attribute reads consult, in
// order: the instance field store, lazy dependency links, accessors
// installed along the linearization, then concrete class members.
type Object struct {
	id     uuid.UUID
	class  *Class
	fields map[string]any
	links  map[string]depLink
}

// New instantiates a class and runs its init function, if any.
// Abstract classes and classes with unimplemented abstract members
// cannot be instantiated.
func New(c *Class) (*Object, error) {
	if !c.Constructible() {
		return nil, &NotConstructibleError{Class: c.Name()}
	}
	o := &Object{
		id:     uuid.New(),
		class:  c,
		fields: make(map[string]any),
	}
	if c.init != nil {
		c.init(o)
	}
	return o, nil
}

// MustNew is New panicking on error, for tests and examples.
func MustNew(c *Class) *Object {
	o, err := New(c)
	if err != nil {
		panic(err)
	}
	return o
}

// ID returns the instance identity.
func (o *Object) ID() uuid.UUID { return o.id }

// Class returns the instance's class.
func (o *Object) Class() *Class { return o.class }

// Get reads an attribute. Stored fields shadow everything, including
// accessors; that is what makes memoized factory values stick.
func (o *Object) Get(name string) (any, error) {
	if v, ok := o.fields[name]; ok {
		return v, nil
	}

	if l, ok := o.links[name]; ok {
		v, err := l.source.Get(l.attr)
		if err != nil {
			return nil, err
		}
		o.fields[name] = v
		return v, nil
	}

	for _, anc := range o.class.lin {
		if a, ok := anc.accessors[name]; ok {
			return a.Get(o)
		}
	}

	for _, anc := range o.class.lin {
		if m, ok := anc.members[name]; ok {
			if m.Kind == MemberAbstract {
				return nil, &AbstractMemberError{Class: o.class.name, Attr: name}
			}
			return m.Value, nil
		}
	}

	return nil, &AttributeError{Class: o.class.name, Attr: name}
}

// Set writes an instance field. Writes to attributes backed by a
// read-only accessor are rejected.
func (o *Object) Set(name string, value any) error {
	if a, ok := o.class.FindAccessor(name); ok && a.ReadOnly() {
		return &ReadOnlyError{Class: o.class.name, Attr: name}
	}
	o.fields[name] = value
	return nil
}

// Has reports whether the attribute is reachable on this instance
// without computing accessor values: a stored field, a dependency
// link, an accessor, or a class member. Abstract markers count as
// present; they are part of the class shape.
func (o *Object) Has(name string) bool {
	if _, ok := o.fields[name]; ok {
		return true
	}
	if _, ok := o.links[name]; ok {
		return true
	}
	for _, anc := range o.class.lin {
		if _, ok := anc.accessors[name]; ok {
			return true
		}
		if _, ok := anc.members[name]; ok {
			return true
		}
	}
	return false
}

// LinkDependency defers attribute name to source.attr. The value is
// fetched and cached on first read. Installed by factory accessors;
// an existing field is left alone.
func (o *Object) LinkDependency(name string, source *Object, attr string) {
	if _, ok := o.fields[name]; ok {
		return
	}
	if o.links == nil {
		o.links = make(map[string]depLink)
	}
	o.links[name] = depLink{source: source, attr: attr}
}
