package typesystem

// Compatible reports whether a provided declared type may satisfy a
// required declared type. The check is deliberately permissive: in a
// code-generation setting a false negative (rejecting valid wiring)
// costs more than a false positive, which only moves the failure to
// ordinary type checking or first use.
//
// First match wins:
//  1. identical type values are compatible
//  2. two forward references are compatible iff their names match
//  3. two none markers are compatible
//  4. two concrete classes are compatible iff provided equals or
//     descends from required; two primitives iff their names match
//  5. everything else (generics, unions, opaque shapes, mixed kinds)
//     defaults to compatible
func Compatible(provided, required Type) bool {
	if provided == nil || required == nil {
		return true
	}
	if provided == required {
		return true
	}

	switch req := required.(type) {
	case TForward:
		if p, ok := provided.(TForward); ok {
			return p.Name == req.Name
		}
	case TNone:
		if _, ok := provided.(TNone); ok {
			return true
		}
	case TClass:
		if p, ok := provided.(TClass); ok {
			return Descends(p.Decl, req.Decl)
		}
	case TPrim:
		if p, ok := provided.(TPrim); ok {
			return p.Name == req.Name
		}
	}

	return true
}
