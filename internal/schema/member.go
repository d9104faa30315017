package schema

// MemberKind distinguishes concrete bindings from abstract placeholders.
type MemberKind int

const (
	// MemberConcrete is a class-level binding with a value. Its
	// presence anywhere in the hierarchy makes the attribute
	// implemented.
	MemberConcrete MemberKind = iota
	// MemberAbstract is an explicit abstract placeholder: the
	// attribute is declared but intentionally unimplemented.
	MemberAbstract
)

func (k MemberKind) String() string {
	switch k {
	case MemberConcrete:
		return "concrete"
	case MemberAbstract:
		return "abstract"
	default:
		return "unknown"
	}
}

// Member is a class-level attribute binding.
type Member struct {
	Kind  MemberKind
	Value any // class-level default, concrete members only
}
