// Package reactor is the public surface of the object-graph synthesis
// engine.
//
// The engine works on modelled classes. At decoration time, once per
// class-graph definition, it decides how each declared attribute is
// satisfied and installs computed attributes accordingly. Two policies share one resolution substrate:
//
//   - Forward applies the reluctant policy: declared attributes that
//     can be read through a base reference get forwarding properties,
//     attributes whose existence can only be checked at runtime get
//     deferred bindings, and everything else is skipped silently.
//
//   - Compose applies the greedy policy: every declared attribute of
//     a composition root must resolve, either as already implemented
//     or as a lazily constructed dependency; anything unresolved is a
//     configuration error raised before the class can be used.
//
// The two cooperate through implementation status: an attribute
// synthesized by one pass counts as implemented for every later pass
// and is never overwritten. No user code runs during decoration.
//
// Basic usage:
//
//	reg := reactor.NewRegistry()
//	config := reg.MustAdd(reactor.MustClass("Config").
//		SetInit(func(o *reactor.Object) {
//			_ = o.Set("host", "localhost")
//			_ = o.Set("port", 5432)
//		}))
//	service := reg.MustAdd(reactor.MustClass("Service").
//		Declare("_config", config.Type()).
//		Declare("_host", reactor.Str).
//		Declare("_port", reactor.Int))
//
//	reactor.Forward(reg, service, "_config")
//
//	svc := reactor.MustNew(service)
//	_ = svc.Set("_config", reactor.MustNew(config))
//	host, _ := svc.Get("_host") // "localhost"
package reactor

import (
	"github.com/funvibe/reactor/internal/schema"
	"github.com/funvibe/reactor/internal/synthesis"
	"github.com/funvibe/reactor/internal/typesystem"
)

// Core model types, aliased from the engine packages.
type (
	Class    = schema.Class
	Object   = schema.Object
	Registry = schema.Registry
	Type     = typesystem.Type
	Caching  = synthesis.Caching
)

// Error types callers are expected to match with errors.As.
type (
	ConfigurationError = synthesis.ConfigurationError
	DeferredError      = synthesis.DeferredError
	AttributeError     = schema.AttributeError
	ReadOnlyError      = schema.ReadOnlyError
)

// Caching strategies for Compose.
const (
	CachingDisabled      = synthesis.CachingDisabled
	CachingNotThreadSafe = synthesis.CachingNotThreadSafe
)

// Primitive declared types.
var (
	Str   = typesystem.Str
	Int   = typesystem.Int
	Bool  = typesystem.Bool
	Float = typesystem.Float
	Bytes = typesystem.Bytes
)

// None is the explicit "no type" marker.
var None Type = typesystem.TNone{}

// Ref returns a name-only forward reference to a type.
func Ref(name string) Type { return typesystem.TForward{Name: name} }

// Opaque returns a declared type the compatibility oracle treats
// permissively (generics, unions, protocols).
func Opaque(desc string) Type { return typesystem.TOpaque{Desc: desc} }

// NewRegistry returns an empty class registry.
func NewRegistry() *Registry { return schema.NewRegistry() }

// NewClass defines a class with the given bases.
func NewClass(name string, bases ...*Class) (*Class, error) {
	return schema.NewClass(name, bases...)
}

// MustClass is NewClass panicking on hierarchy errors.
func MustClass(name string, bases ...*Class) *Class {
	return schema.MustClass(name, bases...)
}

// New instantiates a class.
func New(c *Class) (*Object, error) { return schema.New(c) }

// MustNew is New panicking on error.
func MustNew(c *Class) *Object { return schema.MustNew(c) }

type forwardConfig struct {
	prefix        string
	allowDeferred bool
}

// ForwardOption configures a forwarding pass.
type ForwardOption func(*forwardConfig)

// WithPrefix sets the declaration prefix stripped to find the target
// name on the base. The default is a single leading underscore; an
// empty prefix forwards public names directly.
func WithPrefix(prefix string) ForwardOption {
	return func(c *forwardConfig) { c.prefix = prefix }
}

// WithoutDeferred disables deferred bindings: attributes that cannot
// be proven statically are skipped instead of probed on first access.
func WithoutDeferred() ForwardOption {
	return func(c *forwardConfig) { c.allowDeferred = false }
}

// Forward runs the reluctant forwarding pass over c, installing
// read-through properties for declared attributes resolvable through
// the attribute named by baseRef. It mutates and returns c.
func Forward(reg *Registry, c *Class, baseRef string, opts ...ForwardOption) *Class {
	cfg := forwardConfig{prefix: "_", allowDeferred: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return synthesis.Forward(reg, c, baseRef, cfg.prefix, cfg.allowDeferred)
}

type composeConfig struct {
	caching Caching
}

// ComposeOption configures a composition pass.
type ComposeOption func(*composeConfig)

// WithCaching sets the caching strategy for synthesized factory
// properties. The default is CachingDisabled.
func WithCaching(strategy Caching) ComposeOption {
	return func(c *composeConfig) { c.caching = strategy }
}

// Compose runs the greedy composition pass over the composition root
// c, installing lazily-constructing factory properties for every
// declared attribute that resolves to a constructible class. It
// mutates and returns c; an unresolved attribute aborts with a
// *ConfigurationError before anything is installed.
func Compose(reg *Registry, c *Class, opts ...ComposeOption) (*Class, error) {
	cfg := composeConfig{caching: CachingDisabled}
	for _, opt := range opts {
		opt(&cfg)
	}
	return synthesis.Compose(reg, c, cfg.caching)
}
