package schema

import (
	"errors"
	"fmt"
)

var errInconsistent = errors.New("inconsistent hierarchy")

// HierarchyError indicates the class's bases cannot be linearized
// (C3 merge found no consistent order).
type HierarchyError struct {
	Class string
}

func (e *HierarchyError) Error() string {
	return fmt.Sprintf("cannot linearize bases of %s: inconsistent hierarchy", e.Class)
}

// AttributeError indicates an attribute is not present on an instance
// or anywhere in its class hierarchy.
type AttributeError struct {
	Class string
	Attr  string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("%s has no attribute %q", e.Class, e.Attr)
}

// AbstractMemberError indicates a read of an attribute whose only
// binding is an abstract placeholder.
type AbstractMemberError struct {
	Class string
	Attr  string
}

func (e *AbstractMemberError) Error() string {
	return fmt.Sprintf("%s.%s is abstract and has no implementation", e.Class, e.Attr)
}

// ReadOnlyError indicates a write to an attribute backed by a
// read-only accessor.
type ReadOnlyError struct {
	Class string
	Attr  string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("%s.%s is read-only", e.Class, e.Attr)
}

// NotConstructibleError indicates an attempt to instantiate an
// abstract class or one with unimplemented abstract members.
type NotConstructibleError struct {
	Class string
}

func (e *NotConstructibleError) Error() string {
	return fmt.Sprintf("cannot instantiate %s: class is not constructible", e.Class)
}

// DuplicateClassError indicates two classes registered under one name.
type DuplicateClassError struct {
	Name string
}

func (e *DuplicateClassError) Error() string {
	return fmt.Sprintf("class %q is already registered", e.Name)
}

// UnknownTypeError indicates a forward reference that names no
// registered class. The hierarchy walker recovers from it by falling
// back to the raw annotation provider; it is surfaced only by direct
// registry resolution.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type name %q", e.Name)
}
