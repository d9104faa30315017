package typesystem

// Type is the interface for every declared-type value in the system.
// A declaration on a class carries one of these; they are immutable
// once the class is defined.
type Type interface {
	String() string
}

// ClassDecl is implemented by the schema class model. It exposes just
// enough shape information for compatibility checks without this
// package importing the model itself.
type ClassDecl interface {
	// TypeName returns the class name as used in declarations.
	TypeName() string
	// Lineage returns the ancestor linearization, most derived first,
	// including the class itself.
	Lineage() []ClassDecl
	// Constructible reports whether the class can be instantiated
	// (not abstract, no unimplemented abstract members).
	Constructible() bool
}

// TClass references a concrete class declaration.
type TClass struct {
	Decl ClassDecl
}

func (t TClass) String() string { return t.Decl.TypeName() }

// TForward is a name-only reference to a type that could not be
// resolved at declaration time.
type TForward struct {
	Name string
}

func (t TForward) String() string { return t.Name }

// TNone is the explicit "no type" marker.
type TNone struct{}

func (t TNone) String() string { return "None" }

// TPrim is a primitive value type. Primitives are compared by name and
// are never constructed by the factory synthesizer.
type TPrim struct {
	Name string
}

func (t TPrim) String() string { return t.Name }

// Canonical primitive types. Declarations should use these values so
// identical-reference comparison holds.
var (
	Str   = TPrim{Name: "str"}
	Int   = TPrim{Name: "int"}
	Bool  = TPrim{Name: "bool"}
	Float = TPrim{Name: "float"}
	Bytes = TPrim{Name: "bytes"}
)

// TOpaque stands for any declared shape the oracle cannot decide:
// generics, unions, protocols, callables. Opaque types always pass
// compatibility checks.
type TOpaque struct {
	Desc string
}

func (t TOpaque) String() string { return t.Desc }

// Descends reports whether class c equals or descends from ancestor.
// Identity is pointer identity of the underlying declarations.
func Descends(c, ancestor ClassDecl) bool {
	if c == nil || ancestor == nil {
		return false
	}
	for _, a := range c.Lineage() {
		if a == ancestor {
			return true
		}
	}
	return false
}
