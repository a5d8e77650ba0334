package main

import (
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestToQiskitScript(t *testing.T) {
	c := NewCircuit(2)
	mustAdd(t, c, "H", []int{0}, nil, 0)
	mustAdd(t, c, "CX", []int{0, 1}, nil, 1)
	mustAdd(t, c, "RY", []int{1}, []float64{math.Pi / 4}, 2)
	mustAdd(t, c, "U3", []int{0}, []float64{math.Pi / 2, 0, math.Pi}, 3)

	py := c.ToQiskit()
	for _, want := range []string{
		"from math import pi",
		"from qiskit import QuantumCircuit",
		"qc = QuantumCircuit(2, 2)",
		"qc.h(0)",
		"qc.cx(0, 1)",
		"qc.ry(pi/4, 1)",
		"qc.u(pi/2, 0, pi, 0)",
		"qc.measure_all()",
		"print(qc)",
	} {
		if !strings.Contains(py, want) {
			t.Errorf("missing %q in:\n%s", want, py)
		}
	}
}

func TestToQiskitExplicitMeasurements(t *testing.T) {
	c := NewCircuit(2)
	mustAdd(t, c, "H", []int{0}, nil, 0)
	c.Measurements = []Measurement{{Qubit: 0, Bit: 1}}

	py := c.ToQiskit()
	if !strings.Contains(py, "qc.measure(0, 1)") {
		t.Errorf("explicit measurement missing:\n%s", py)
	}
	if strings.Contains(py, "measure_all") {
		t.Errorf("measure_all emitted despite explicit measurements:\n%s", py)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := NewCircuit(3)
	mustAdd(t, c, "H", []int{0}, nil, 0)
	mustAdd(t, c, "CCX", []int{0, 1, 2}, nil, 1)
	mustAdd(t, c, "RZ", []int{1}, []float64{0.25}, 2)
	c.Measurements = []Measurement{{Qubit: 2, Bit: 0}}

	data, err := ExportJSON(c)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	imported, err := ImportJSON(data)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if !c.Equivalent(imported) {
		t.Errorf("round trip changed the circuit:\noriginal: %+v\nimported: %+v", c.Gates, imported.Gates)
	}
	for i := range imported.Gates {
		if imported.Gates[i].ID == c.Gates[i].ID {
			t.Errorf("gate %d kept the exported id", i)
		}
	}
}

func TestImportJSONRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"zero qubits", `{"numQubits": 0, "gates": []}`},
		{"too many qubits", `{"numQubits": 99, "gates": []}`},
		{"unknown gate", `{"numQubits": 2, "gates": [{"name": "FOO", "qubits": [0], "position": 0}]}`},
		{"qubit out of range", `{"numQubits": 2, "gates": [{"name": "H", "qubits": [7], "position": 0}]}`},
		{"measurement out of range", `{"numQubits": 2, "gates": [], "measurements": [{"qubit": 5, "bit": 0}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ImportJSON([]byte(tt.data)); err == nil {
				t.Errorf("ImportJSON accepted %s", tt.name)
			}
		})
	}
}

func TestImportJSONValidatesBeforeReturning(t *testing.T) {
	// A document that fails mid-way must not leak a half-built circuit.
	data := `{"numQubits": 2, "gates": [
		{"name": "H", "qubits": [0], "position": 0},
		{"name": "CX", "qubits": [0, 9], "position": 1}
	]}`
	c, err := ImportJSON([]byte(data))
	if !errors.Is(err, ErrQubitOutOfRange) {
		t.Fatalf("ImportJSON = %v, want ErrQubitOutOfRange", err)
	}
	if c != nil {
		t.Errorf("partial circuit returned alongside error")
	}
}
