package main

import "math"

// GateSpec describes a catalogued gate: how many qubits it acts on, which
// parameters it takes, and its advisory cost weight. The catalogue is the
// single source of truth for gate metadata; everything else (circuit
// validation, the simulator dispatch, export, menus) looks gates up here.
type GateSpec struct {
	Name      string
	Label     string // human-readable name for menus
	Symbol    string // short glyph for the circuit canvas
	Arity     int    // number of qubits (1, 2 or 3)
	NumParams int    // number of angle parameters (0 when not parameterized)
	Cost      int    // advisory quantum-cost weight
}

// Controlled reports whether the gate's leading qubits act as controls.
func (g GateSpec) Controlled() bool {
	switch g.Name {
	case "CX", "CY", "CZ", "CCX":
		return true
	}
	return false
}

var gateCatalog = map[string]GateSpec{
	"H":    {Name: "H", Label: "Hadamard", Symbol: "H", Arity: 1, Cost: 1},
	"X":    {Name: "X", Label: "Pauli-X (NOT)", Symbol: "X", Arity: 1, Cost: 1},
	"Y":    {Name: "Y", Label: "Pauli-Y", Symbol: "Y", Arity: 1, Cost: 1},
	"Z":    {Name: "Z", Label: "Pauli-Z", Symbol: "Z", Arity: 1, Cost: 1},
	"S":    {Name: "S", Label: "Phase (S)", Symbol: "S", Arity: 1, Cost: 1},
	"SDG":  {Name: "SDG", Label: "Phase Dagger (S†)", Symbol: "S†", Arity: 1, Cost: 1},
	"T":    {Name: "T", Label: "T Gate", Symbol: "T", Arity: 1, Cost: 1},
	"TDG":  {Name: "TDG", Label: "T Dagger (T†)", Symbol: "T†", Arity: 1, Cost: 1},
	"RX":   {Name: "RX", Label: "Rotate X", Symbol: "RX", Arity: 1, NumParams: 1, Cost: 1},
	"RY":   {Name: "RY", Label: "Rotate Y", Symbol: "RY", Arity: 1, NumParams: 1, Cost: 1},
	"RZ":   {Name: "RZ", Label: "Rotate Z", Symbol: "RZ", Arity: 1, NumParams: 1, Cost: 1},
	"U3":   {Name: "U3", Label: "Universal U3", Symbol: "U3", Arity: 1, NumParams: 3, Cost: 3},
	"CX":   {Name: "CX", Label: "CNOT", Symbol: "●─⊕", Arity: 2, Cost: 5},
	"CY":   {Name: "CY", Label: "Controlled-Y", Symbol: "●─Y", Arity: 2, Cost: 5},
	"CZ":   {Name: "CZ", Label: "Controlled-Z", Symbol: "●─●", Arity: 2, Cost: 5},
	"SWAP": {Name: "SWAP", Label: "SWAP", Symbol: "×─×", Arity: 2, Cost: 3},
	"CCX":  {Name: "CCX", Label: "Toffoli (CCX)", Symbol: "●─●─⊕", Arity: 3, Cost: 7},
}

// LookupGate returns the spec for a catalogued gate name.
func LookupGate(name string) (GateSpec, bool) {
	spec, ok := gateCatalog[name]
	return spec, ok
}

// GateArity returns the qubit arity for a gate name, falling back to 1 for
// unrecognized names. Unknown names never panic here; the engine rejects
// them separately.
func GateArity(name string) int {
	if spec, ok := gateCatalog[name]; ok {
		return spec.Arity
	}
	return 1
}

// GateCost returns the advisory cost weight, falling back to 1.
func GateCost(name string) int {
	if spec, ok := gateCatalog[name]; ok {
		return spec.Cost
	}
	return 1
}

// IsParameterizedGate reports whether the gate takes angle parameters.
func IsParameterizedGate(name string) bool {
	spec, ok := gateCatalog[name]
	return ok && spec.NumParams > 0
}

// NormalizeParams pads or truncates params to the arity the gate expects.
// Rotation angles default to pi/2 when unspecified.
func NormalizeParams(name string, params []float64) []float64 {
	spec, ok := gateCatalog[name]
	if !ok || spec.NumParams == 0 {
		return nil
	}
	out := make([]float64, spec.NumParams)
	for i := range out {
		if i < len(params) {
			out[i] = params[i]
		} else {
			out[i] = math.Pi / 2
		}
	}
	return out
}
