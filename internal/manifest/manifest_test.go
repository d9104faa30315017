package manifest

import (
	"strings"
	"testing"

	"github.com/funvibe/reactor/internal/resolve"
	"github.com/funvibe/reactor/internal/schema"
	"github.com/funvibe/reactor/internal/typesystem"
)

const serviceManifest = `
classes:
  - name: Config
    init:
      host: localhost
      port: 5432
  - name: Service
    declares:
      - {name: _config, type: Config}
      - {name: _host, type: str}
      - {name: _port, type: int}
apply:
  - forward: {class: Service, base: _config}
`

func TestParseAndBuild(t *testing.T) {
	doc, err := Parse([]byte(serviceManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	reg, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	config, ok := reg.Lookup("Config")
	if !ok {
		t.Fatal("Config not registered")
	}
	service, _ := reg.Lookup("Service")
	if service == nil {
		t.Fatal("Service not registered")
	}

	o := schema.MustNew(config)
	if host, _ := o.Get("host"); host != "localhost" {
		t.Errorf("init host = %v, want localhost", host)
	}

	decls := service.OwnDecls()
	if len(decls) != 3 {
		t.Fatalf("Service has %d declarations, want 3", len(decls))
	}
	if decls[0].Raw != "Config" {
		t.Errorf("class-name type must stay a reference, got %+v", decls[0])
	}
	if decls[1].Type != typesystem.Type(typesystem.Str) {
		t.Errorf("str maps to the canonical primitive, got %v", decls[1].Type)
	}
}

func TestBuildBaseOrderIndependent(t *testing.T) {
	doc, err := Parse([]byte(`
classes:
  - name: Derived
    bases: [Base]
  - name: Base
`))
	if err != nil {
		t.Fatal(err)
	}
	reg, err := Build(doc)
	if err != nil {
		t.Fatalf("Build with forward base reference: %v", err)
	}
	d, _ := reg.Lookup("Derived")
	if len(d.Bases()) != 1 || d.Bases()[0].Name() != "Base" {
		t.Error("Derived must link to Base")
	}
}

func TestBuildUnknownBase(t *testing.T) {
	doc, err := Parse([]byte("classes:\n  - name: C\n    bases: [Ghost]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Build(doc); err == nil {
		t.Error("unknown base must fail the build")
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no classes", "classes: []\n"},
		{"unnamed class", "classes:\n  - declares: []\n"},
		{"declaration without type", "classes:\n  - name: C\n    declares:\n      - {name: x}\n"},
		{"empty step", "classes:\n  - name: C\napply:\n  - {}\n"},
		{"forward without base", "classes:\n  - name: C\napply:\n  - forward: {class: C}\n"},
		{"bad caching", "classes:\n  - name: C\napply:\n  - compose: {class: C, caching: always}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDeclareTypeMapping(t *testing.T) {
	c := schema.MustClass("C")
	declare(c, DeclDef{Name: "a", Type: "bool"})
	declare(c, DeclDef{Name: "b", Type: "none"})
	declare(c, DeclDef{Name: "c", Type: "list[int]"})

	decls := c.OwnDecls()
	if decls[0].Type != typesystem.Type(typesystem.Bool) {
		t.Errorf("bool: got %v", decls[0].Type)
	}
	if _, ok := decls[1].Type.(typesystem.TNone); !ok {
		t.Errorf("none: got %v", decls[1].Type)
	}
	if op, ok := decls[2].Type.(typesystem.TOpaque); !ok || op.Desc != "list[int]" {
		t.Errorf("structured expression must stay opaque, got %v", decls[2].Type)
	}
}

func TestApplyForwardAndRender(t *testing.T) {
	doc, err := Parse([]byte(serviceManifest))
	if err != nil {
		t.Fatal(err)
	}
	reg, err := Build(doc)
	if err != nil {
		t.Fatal(err)
	}

	reports, err := Apply(reg, doc)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	rep := reports[0]
	if rep.Kind != "forward" || rep.Class != "Service" {
		t.Errorf("report = %s %s", rep.Kind, rep.Class)
	}
	for _, p := range rep.Plan {
		// host/port exist only at instance-init time, so both routes
		// are runtime probes.
		if p.Outcome.Kind != resolve.Deferred {
			t.Errorf("%s outcome = %s, want deferred", p.Attr, p.Outcome.Kind)
		}
	}

	var buf strings.Builder
	Render(&buf, reports, nil)
	out := buf.String()
	if !strings.Contains(out, "forward Service via _config") {
		t.Errorf("render missing header:\n%s", out)
	}
	if !strings.Contains(out, "deferred probe of _config.host") {
		t.Errorf("render missing outcome line:\n%s", out)
	}
}

func TestApplyComposeFailureStops(t *testing.T) {
	doc, err := Parse([]byte(`
classes:
  - name: App
    declares:
      - {name: retries, type: int}
apply:
  - compose: {class: App}
  - compose: {class: App}
`))
	if err != nil {
		t.Fatal(err)
	}
	reg, err := Build(doc)
	if err != nil {
		t.Fatal(err)
	}

	reports, applyErr := Apply(reg, doc)
	if applyErr == nil {
		t.Fatal("expected compose failure")
	}
	if len(reports) != 1 {
		t.Errorf("run must stop at the failing step, got %d reports", len(reports))
	}
	if reports[0].Err == nil {
		t.Error("failing report must carry its error")
	}
}
