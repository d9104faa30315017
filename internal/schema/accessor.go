package schema

// Accessor is a computed attribute installed on a class at decoration
// time. Get runs on every instance read unless a stored field shadows
// it (which is how factory memoization works).
type Accessor interface {
	// Get computes the attribute value for the given instance.
	Get(o *Object) (any, error)
	// ReadOnly reports whether instance writes to this attribute are
	// rejected. Forwarding accessors are read-only; factory accessors
	// are not, so memoized values can shadow them.
	ReadOnly() bool
}

// ProvisionalAccessor is an accessor that does not count as a concrete
// binding. Deferred bindings implement it: static resolution always
// wins over deferred, so a later synthesis pass may replace them.
type ProvisionalAccessor interface {
	Accessor
	Provisional() bool
}

func isProvisional(a Accessor) bool {
	p, ok := a.(ProvisionalAccessor)
	return ok && p.Provisional()
}
