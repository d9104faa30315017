// Package manifest loads declarative class-graph manifests: YAML
// documents that define modelled classes and the synthesis passes to
// run over them. Manifests are how the CLI drives the engine without
// any Go code.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a parsed manifest: class definitions followed by the
// synthesis steps applied to them, in order.
type Document struct {
	Classes []ClassDef `yaml:"classes"`
	Apply   []Step     `yaml:"apply"`
}

// ClassDef defines one modelled class.
type ClassDef struct {
	Name     string      `yaml:"name"`
	Bases    []string    `yaml:"bases"`
	Abstract bool        `yaml:"abstract"`
	Declares []DeclDef   `yaml:"declares"`
	Members  []MemberDef `yaml:"members"`
	// Init lists attribute values assigned when an instance is
	// created, standing in for a constructor body.
	Init map[string]any `yaml:"init"`
}

// DeclDef is one declared attribute: a name and a type expression.
// The type is either a primitive name (str, int, bool, float, bytes,
// none), the name of another class in the manifest, or anything else,
// which is kept opaque and treated permissively.
type DeclDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// MemberDef is one class-level member. An abstract member is a
// placeholder subclasses must override; a concrete member carries a
// value.
type MemberDef struct {
	Name     string `yaml:"name"`
	Abstract bool   `yaml:"abstract"`
	Value    any    `yaml:"value"`
}

// Step is one synthesis pass. Exactly one of the fields is set.
type Step struct {
	Forward *ForwardStep `yaml:"forward"`
	Compose *ComposeStep `yaml:"compose"`
}

// ForwardStep runs the reluctant forwarding pass.
type ForwardStep struct {
	Class  string  `yaml:"class"`
	Base   string  `yaml:"base"`
	Prefix *string `yaml:"prefix"` // nil means the default "_"
	// NoDeferred skips runtime-probed bindings entirely.
	NoDeferred bool `yaml:"no_deferred"`
}

// ComposeStep runs the greedy composition pass.
type ComposeStep struct {
	Class   string `yaml:"class"`
	Caching string `yaml:"caching"` // "", "disabled" or "not_thread_safe"
}

// Load reads and validates a manifest file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes a manifest from raw YAML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) validate() error {
	if len(d.Classes) == 0 {
		return fmt.Errorf("manifest defines no classes")
	}
	for i, cd := range d.Classes {
		if cd.Name == "" {
			return fmt.Errorf("class #%d: missing name", i+1)
		}
		for _, dd := range cd.Declares {
			if dd.Name == "" || dd.Type == "" {
				return fmt.Errorf("class %s: declaration needs both name and type", cd.Name)
			}
		}
		for _, md := range cd.Members {
			if md.Name == "" {
				return fmt.Errorf("class %s: member needs a name", cd.Name)
			}
		}
	}
	for i, s := range d.Apply {
		switch {
		case s.Forward != nil && s.Compose != nil:
			return fmt.Errorf("step #%d: forward and compose are mutually exclusive", i+1)
		case s.Forward != nil:
			if s.Forward.Class == "" || s.Forward.Base == "" {
				return fmt.Errorf("step #%d: forward needs class and base", i+1)
			}
		case s.Compose != nil:
			if s.Compose.Class == "" {
				return fmt.Errorf("step #%d: compose needs a class", i+1)
			}
			switch s.Compose.Caching {
			case "", "disabled", "not_thread_safe":
			default:
				return fmt.Errorf("step #%d: unknown caching strategy %q", i+1, s.Compose.Caching)
			}
		default:
			return fmt.Errorf("step #%d: empty step", i+1)
		}
	}
	return nil
}
