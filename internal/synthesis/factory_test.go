package synthesis

import (
	"errors"
	"testing"

	"github.com/funvibe/reactor/internal/resolve"
	"github.com/funvibe/reactor/internal/schema"
	"github.com/funvibe/reactor/internal/typesystem"
)

func appFixture(t *testing.T) (*schema.Registry, *schema.Class, *schema.Class) {
	t.Helper()
	reg := schema.NewRegistry()
	config := reg.MustAdd(schema.MustClass("Config").
		SetInit(func(o *schema.Object) {
			_ = o.Set("dsn", "postgres://localhost")
		}))
	app := reg.MustAdd(schema.MustClass("App").
		Declare("config", config.Type()))
	return reg, config, app
}

func TestComposeBuildsDependencies(t *testing.T) {
	reg, config, app := appFixture(t)
	if _, err := Compose(reg, app, CachingDisabled); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	a := schema.MustNew(app)
	v, err := a.Get("config")
	if err != nil {
		t.Fatalf("Get(config): %v", err)
	}
	obj, ok := v.(*schema.Object)
	if !ok {
		t.Fatalf("config = %T, want *Object", v)
	}
	if obj.Class() != config {
		t.Errorf("config built from %s, want Config", obj.Class().Name())
	}
	if dsn, _ := obj.Get("dsn"); dsn != "postgres://localhost" {
		t.Errorf("dependency init did not run: dsn = %v", dsn)
	}
}

// TestComposeCachingDisabled checks the transient strategy: every
// access builds a fresh instance.
func TestComposeCachingDisabled(t *testing.T) {
	reg, _, app := appFixture(t)
	if _, err := Compose(reg, app, CachingDisabled); err != nil {
		t.Fatal(err)
	}

	a := schema.MustNew(app)
	first, _ := a.Get("config")
	second, _ := a.Get("config")
	if first.(*schema.Object).ID() == second.(*schema.Object).ID() {
		t.Error("disabled caching must build a fresh instance per access")
	}
}

// TestComposeCachingNotThreadSafe checks the memoizing strategy: one
// instance per composition root, stored on first access.
func TestComposeCachingNotThreadSafe(t *testing.T) {
	reg, _, app := appFixture(t)
	if _, err := Compose(reg, app, CachingNotThreadSafe); err != nil {
		t.Fatal(err)
	}

	a := schema.MustNew(app)
	first, _ := a.Get("config")
	second, _ := a.Get("config")
	if first.(*schema.Object).ID() != second.(*schema.Object).ID() {
		t.Error("memoizing strategy must return the same instance")
	}

	// Distinct roots never share dependencies.
	b := schema.MustNew(app)
	other, _ := b.Get("config")
	if other.(*schema.Object).ID() == first.(*schema.Object).ID() {
		t.Error("memoization is per root instance, not per class")
	}
}

// TestComposeUnresolvedAborts checks the greedy failure mode: an
// unsatisfiable declaration raises a configuration error naming the
// attribute, and nothing is installed.
func TestComposeUnresolvedAborts(t *testing.T) {
	reg := schema.NewRegistry()
	config := reg.MustAdd(schema.MustClass("Config"))
	app := reg.MustAdd(schema.MustClass("App").
		Declare("config", config.Type()).
		Declare("retries", typesystem.Int))

	_, err := Compose(reg, app, CachingDisabled)
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigurationError, got %T: %v", err, err)
	}
	if ce.Class != "App" || ce.Attr != "retries" {
		t.Errorf("error identifies %s.%s, want App.retries", ce.Class, ce.Attr)
	}

	// No partial synthesis: the resolvable attribute was not touched.
	if _, ok := app.OwnAccessor("config"); ok {
		t.Error("aborted decoration must not leave accessors behind")
	}
}

func TestComposeAbstractDependencyUnresolved(t *testing.T) {
	reg := schema.NewRegistry()
	proto := reg.MustAdd(schema.MustClass("Proto").MarkAbstract("run"))
	app := reg.MustAdd(schema.MustClass("App").
		Declare("proto", proto.Type()))

	_, err := Compose(reg, app, CachingDisabled)
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigurationError for abstract dependency, got %T: %v", err, err)
	}
}

func TestComposeInvalidStrategy(t *testing.T) {
	reg, _, app := appFixture(t)
	_, err := Compose(reg, app, Caching(42))
	var se *StrategyError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StrategyError, got %T: %v", err, err)
	}
}

// TestComposeTransitive checks recursive composition: a constructed
// dependency resolves its own declarations against the same root.
func TestComposeTransitive(t *testing.T) {
	reg := schema.NewRegistry()
	config := reg.MustAdd(schema.MustClass("Config").
		SetInit(func(o *schema.Object) {
			_ = o.Set("dsn", "postgres://localhost")
		}))
	db := reg.MustAdd(schema.MustClass("Database").
		Declare("_config", config.Type()))
	app := reg.MustAdd(schema.MustClass("App").
		Declare("config", config.Type()).
		Declare("database", db.Type()))

	if _, err := Compose(reg, app, CachingNotThreadSafe); err != nil {
		t.Fatal(err)
	}

	a := schema.MustNew(app)
	v, err := a.Get("database")
	if err != nil {
		t.Fatalf("Get(database): %v", err)
	}
	dbObj := v.(*schema.Object)

	// The database's underscore-declared config maps to the root's
	// bare-named attribute and is fetched through it lazily.
	cfgV, err := dbObj.Get("_config")
	if err != nil {
		t.Fatalf("Get(_config): %v", err)
	}
	rootCfg, _ := a.Get("config")
	if cfgV.(*schema.Object).ID() != rootCfg.(*schema.Object).ID() {
		t.Error("transitive dependency must resolve against the composition root")
	}
}

// TestComposeLeavesDeferredBindings checks cross-policy cooperation
// for runtime-probed attributes: a deferred binding installed by the
// forwarding pass reads as implemented to the composition pass, so a
// primitive-typed deferral never becomes a greedy failure.
func TestComposeLeavesDeferredBindings(t *testing.T) {
	reg := schema.NewRegistry()
	config := reg.MustAdd(schema.MustClass("Config").
		SetInit(func(o *schema.Object) { _ = o.Set("host", "localhost") }))
	service := reg.MustAdd(schema.MustClass("Service").
		Declare("_config", config.Type()).
		Declare("_host", typesystem.Str))

	// _host exists on Config only after init, so forwarding defers it.
	Forward(reg, service, "_config", "_", true)

	if _, err := Compose(reg, service, CachingDisabled); err != nil {
		t.Fatalf("Compose after deferred forwarding: %v", err)
	}
	for _, p := range PlanComposition(reg, service) {
		if p.Attr == "_host" && p.Outcome.Kind != resolve.Implemented {
			t.Errorf("_host outcome = %s, want implemented", p.Outcome.Kind)
		}
	}

	// The deferral still works end to end.
	svc := schema.MustNew(service)
	_ = svc.Set("_config", schema.MustNew(config))
	if host, err := svc.Get("_host"); err != nil || host != "localhost" {
		t.Errorf("_host = %v, %v; want localhost", host, err)
	}
}

// TestComposeCooperatesWithForwarding applies forwarding first, then
// composition, and checks the forwarded attribute reads as implemented.
func TestComposeCooperatesWithForwarding(t *testing.T) {
	reg := schema.NewRegistry()
	config := reg.MustAdd(schema.MustClass("Config").
		Declare("name", typesystem.Str).
		SetInit(func(o *schema.Object) { _ = o.Set("name", "app") }))
	root := reg.MustAdd(schema.MustClass("Root").
		Declare("_config", config.Type()).
		Declare("_name", typesystem.Str))

	Forward(reg, root, "_config", "_", true)

	plan := PlanComposition(reg, root)
	for _, p := range plan {
		if p.Attr == "_name" && p.Outcome.Kind != resolve.Implemented {
			t.Errorf("_name outcome = %s, want implemented after forwarding", p.Outcome.Kind)
		}
	}

	if _, err := Compose(reg, root, CachingDisabled); err != nil {
		t.Fatalf("Compose after Forward: %v", err)
	}
}
