package schema

// Registry maps class names to their declarations. It is the lookup
// source for forward-reference resolution and for manifests.
type Registry struct {
	classes map[string]*Class
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*Class)}
}

// Add registers a class under its name. Registering two classes with
// the same name is an error: forward references would become
// ambiguous.
func (r *Registry) Add(c *Class) error {
	if _, exists := r.classes[c.Name()]; exists {
		return &DuplicateClassError{Name: c.Name()}
	}
	r.classes[c.Name()] = c
	r.order = append(r.order, c.Name())
	return nil
}

// MustAdd is Add panicking on duplicates.
func (r *Registry) MustAdd(c *Class) *Class {
	if err := r.Add(c); err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the class registered under name.
func (r *Registry) Lookup(name string) (*Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Names returns registered class names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
