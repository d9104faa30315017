package resolve

import (
	"github.com/funvibe/reactor/internal/schema"
)

// NeedsImplementation reports whether an attribute is synthesis
// eligible: declared somewhere in the hierarchy (merged view) with no
// concrete binding anywhere in it. Both bare-declared and
// abstract-declared attributes qualify; an attribute implemented by a
// member or an installed accessor never does. That is the cooperation
// contract between synthesizers.
//
// The check runs fresh on every call so accessors installed by an
// earlier synthesis pass are visible to later passes.
func (w *Walker) NeedsImplementation(c *schema.Class, attr string) bool {
	if _, declared := w.Collect(c).TypeOf(attr); !declared {
		return false
	}
	if c.Implements(attr) {
		return false
	}
	return true
}
