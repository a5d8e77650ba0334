package main

import (
	"math"
	"testing"
)

func TestCatalogConsistency(t *testing.T) {
	for name, spec := range gateCatalog {
		if spec.Name != name {
			t.Errorf("catalogue key %q holds spec named %q", name, spec.Name)
		}
		if spec.Arity < 1 || spec.Arity > 3 {
			t.Errorf("%s arity = %d", name, spec.Arity)
		}
		if spec.Cost < 1 {
			t.Errorf("%s cost = %d", name, spec.Cost)
		}
		if spec.Label == "" || spec.Symbol == "" {
			t.Errorf("%s missing label or symbol", name)
		}
	}
}

func TestControlledGates(t *testing.T) {
	for _, name := range []string{"CX", "CY", "CZ", "CCX"} {
		if spec, _ := LookupGate(name); !spec.Controlled() {
			t.Errorf("%s not marked controlled", name)
		}
	}
	for _, name := range []string{"H", "SWAP", "U3"} {
		if spec, _ := LookupGate(name); spec.Controlled() {
			t.Errorf("%s wrongly marked controlled", name)
		}
	}
}

func TestLookupFallbacks(t *testing.T) {
	if _, ok := LookupGate("NOPE"); ok {
		t.Errorf("unknown gate found in catalogue")
	}
	if got := GateArity("NOPE"); got != 1 {
		t.Errorf("GateArity fallback = %d", got)
	}
	if got := GateCost("NOPE"); got != 1 {
		t.Errorf("GateCost fallback = %d", got)
	}
	if IsParameterizedGate("NOPE") || IsParameterizedGate("H") {
		t.Errorf("parameterized misreported")
	}
}

func TestNormalizeParams(t *testing.T) {
	if got := NormalizeParams("H", []float64{1, 2, 3}); got != nil {
		t.Errorf("params kept for an unparameterized gate: %v", got)
	}

	got := NormalizeParams("RX", nil)
	if len(got) != 1 || got[0] != math.Pi/2 {
		t.Errorf("RX default = %v, want [pi/2]", got)
	}

	got = NormalizeParams("U3", []float64{0.1})
	if len(got) != 3 || got[0] != 0.1 || got[1] != math.Pi/2 || got[2] != math.Pi/2 {
		t.Errorf("U3 padding = %v", got)
	}

	got = NormalizeParams("RZ", []float64{0.1, 0.2, 0.3})
	if len(got) != 1 || got[0] != 0.1 {
		t.Errorf("RZ truncation = %v", got)
	}
}
