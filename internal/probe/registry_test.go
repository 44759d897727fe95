package probe_test

import (
	"testing"

	"github.com/seantiz/nonblock/internal/probe"
)

// stubProbe is a minimal Probe for registry tests.
type stubProbe struct {
	name string
}

func (s *stubProbe) Prepare(_ probe.Spec) (probe.Operation, error) {
	return func() ([]byte, error) { return []byte(s.name), nil }, nil
}

func (s *stubProbe) Capabilities() probe.Capabilities {
	return probe.Capabilities{Name: s.name}
}

func TestRegistryRegisterAndList(t *testing.T) {
	reg := probe.NewRegistry()
	reg.Register("zeta", &stubProbe{name: "zeta"})
	reg.Register("alpha", &stubProbe{name: "alpha"})

	list := reg.List()
	if len(list) != 2 {
		t.Fatalf("List() returned %d probes, want 2", len(list))
	}
	if list[0].Kind != "alpha" || list[1].Kind != "zeta" {
		t.Errorf("List() order = [%s, %s], want [alpha, zeta]", list[0].Kind, list[1].Kind)
	}
	if list[0].Capabilities.Name != "alpha" {
		t.Errorf("Capabilities.Name = %q, want %q", list[0].Capabilities.Name, "alpha")
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := probe.NewRegistry()
	reg.Register("stub", &stubProbe{name: "stub"})

	p, err := reg.Resolve("stub")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	op, err := p.Prepare(probe.Spec{Kind: "stub"})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	out, err := op()
	if err != nil || string(out) != "stub" {
		t.Errorf("op() = (%q, %v), want (%q, nil)", out, err, "stub")
	}
}

func TestRegistryResolveUnknown(t *testing.T) {
	reg := probe.NewRegistry()
	if _, err := reg.Resolve("missing"); err == nil {
		t.Error("Resolve of unregistered kind returned nil error")
	}
}

func TestRegistryListEmpty(t *testing.T) {
	reg := probe.NewRegistry()
	if list := reg.List(); len(list) != 0 {
		t.Errorf("List() = %v, want empty", list)
	}
}
