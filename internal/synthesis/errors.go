package synthesis

import (
	"fmt"

	"github.com/funvibe/reactor/internal/typesystem"
)

// ConfigurationError is the greedy policy's decoration-time failure:
// a declared attribute that nothing can satisfy. It names the
// attribute and the required type, and its return aborts decoration
// before any accessor is installed.
type ConfigurationError struct {
	Class    string
	Attr     string
	Required typesystem.Type
}

func (e *ConfigurationError) Error() string {
	req := "<unknown>"
	if e.Required != nil {
		req = e.Required.String()
	}
	return fmt.Sprintf("unsatisfied dependency %s.%s: %s", e.Class, e.Attr, req)
}

// DeferredError is the terminal failure of a deferred binding: the
// first-access probe found the target attribute absent on the base
// object. It is cached at the descriptor, so every later access
// returns the identical error value; a permanently missing attribute
// is never retried into success.
type DeferredError struct {
	Class  string // class the deferred attribute was synthesized on
	Attr   string // synthesized attribute name
	Base   string // base reference attribute
	Target string // bare target name probed on the base
}

func (e *DeferredError) Error() string {
	return fmt.Sprintf("cannot resolve %s.%s: %s has no attribute %q", e.Class, e.Attr, e.Base, e.Target)
}

// StrategyError indicates an unsupported caching strategy value.
type StrategyError struct {
	Strategy Caching
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("unsupported caching strategy: %s", e.Strategy)
}
