package schema

import (
	"errors"
	"testing"
)

func TestRegistryAdd(t *testing.T) {
	reg := NewRegistry()
	reg.MustAdd(MustClass("Config"))
	reg.MustAdd(MustClass("Service"))

	if _, ok := reg.Lookup("Config"); !ok {
		t.Error("Config should be registered")
	}
	if _, ok := reg.Lookup("Cache"); ok {
		t.Error("Cache must not be registered")
	}

	err := reg.Add(MustClass("Config"))
	var dce *DuplicateClassError
	if !errors.As(err, &dce) {
		t.Fatalf("expected *DuplicateClassError, got %T: %v", err, err)
	}

	want := []string{"Config", "Service"}
	got := reg.Names()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
