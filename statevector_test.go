package main

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/pkg/errors"
)

const tol = 1e-9

// simulate builds a state from (name, qubits) pairs applied in order.
func simulate(t testing.TB, numQubits int, gates ...GateInstance) *StateVector {
	t.Helper()
	c := NewCircuit(numQubits)
	for i, g := range gates {
		mustAdd(t, c, g.Name, g.Qubits, g.Params, i)
	}
	s, err := Simulate(c)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	return s
}

func g(name string, qubits ...int) GateInstance {
	return GateInstance{Name: name, Qubits: qubits}
}

func gp(name string, params []float64, qubits ...int) GateInstance {
	return GateInstance{Name: name, Qubits: qubits, Params: params}
}

func approxEq(a, b complex128) bool {
	return cmplx.Abs(a-b) < tol
}

func TestEmptyCircuitIsGroundState(t *testing.T) {
	s := simulate(t, 3)
	if !approxEq(s.Amplitudes[0], 1) {
		t.Errorf("amp[0] = %v, want 1", s.Amplitudes[0])
	}
	for i := 1; i < len(s.Amplitudes); i++ {
		if !approxEq(s.Amplitudes[i], 0) {
			t.Errorf("amp[%d] = %v, want 0", i, s.Amplitudes[i])
		}
	}
}

func TestXFlipsQubitZeroAsHighBit(t *testing.T) {
	// Qubit 0 is the most significant bit of the basis index, so X on
	// qubit 0 of a 2-qubit register lands on |10> = index 2.
	s := simulate(t, 2, g("X", 0))
	if !approxEq(s.Amplitudes[2], 1) {
		t.Errorf("amp = %v, want |10>", s.Amplitudes)
	}

	s = simulate(t, 2, g("X", 1))
	if !approxEq(s.Amplitudes[1], 1) {
		t.Errorf("amp = %v, want |01>", s.Amplitudes)
	}
}

func TestSelfInverseGates(t *testing.T) {
	tests := []struct {
		name  string
		gates []GateInstance
	}{
		{"HH", []GateInstance{g("H", 0), g("H", 0)}},
		{"XX", []GateInstance{g("X", 0), g("X", 0)}},
		{"YY", []GateInstance{g("Y", 0), g("Y", 0)}},
		{"ZZ", []GateInstance{g("Z", 0), g("Z", 0)}},
		{"SWAP twice", []GateInstance{g("X", 0), g("SWAP", 0, 1), g("SWAP", 0, 1), g("X", 0)}},
		{"CX twice", []GateInstance{g("H", 0), g("CX", 0, 1), g("CX", 0, 1), g("H", 0)}},
		{"S then SDG", []GateInstance{g("H", 0), g("S", 0), g("SDG", 0), g("H", 0)}},
		{"T then TDG", []GateInstance{g("H", 0), g("T", 0), g("TDG", 0), g("H", 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := simulate(t, 2, tt.gates...)
			if !approxEq(s.Amplitudes[0], 1) {
				t.Errorf("state after %s = %v, want ground state", tt.name, s.Amplitudes)
			}
		})
	}
}

func TestBellState(t *testing.T) {
	s := simulate(t, 2, g("H", 0), g("CX", 0, 1))
	inv := complex(1/math.Sqrt2, 0)
	if !approxEq(s.Amplitudes[0], inv) || !approxEq(s.Amplitudes[3], inv) {
		t.Fatalf("bell amplitudes = %v", s.Amplitudes)
	}
	if !approxEq(s.Amplitudes[1], 0) || !approxEq(s.Amplitudes[2], 0) {
		t.Fatalf("bell cross terms nonzero: %v", s.Amplitudes)
	}
}

func TestYGatePhases(t *testing.T) {
	// Y|0> = i|1>, Y|1> = -i|0>.
	s := simulate(t, 1, g("Y", 0))
	if !approxEq(s.Amplitudes[1], 1i) {
		t.Errorf("Y|0> = %v, want i|1>", s.Amplitudes)
	}
	s = simulate(t, 1, g("X", 0), g("Y", 0))
	if !approxEq(s.Amplitudes[0], -1i) {
		t.Errorf("Y|1> = %v, want -i|0>", s.Amplitudes)
	}
}

func TestControlledGatesRespectControl(t *testing.T) {
	// Control clear: CX, CY, CZ are identity.
	for _, name := range []string{"CX", "CY", "CZ"} {
		s := simulate(t, 2, g(name, 0, 1))
		if !approxEq(s.Amplitudes[0], 1) {
			t.Errorf("%s with clear control moved the state: %v", name, s.Amplitudes)
		}
	}

	// Control set: CY maps |10> to i|11>, CZ flips the |11> phase.
	s := simulate(t, 2, g("X", 0), g("CY", 0, 1))
	if !approxEq(s.Amplitudes[3], 1i) {
		t.Errorf("CY|10> = %v, want i|11>", s.Amplitudes)
	}
	s = simulate(t, 2, g("X", 0), g("X", 1), g("CZ", 0, 1))
	if !approxEq(s.Amplitudes[3], -1) {
		t.Errorf("CZ|11> = %v, want -|11>", s.Amplitudes)
	}
}

func TestToffoliTruthTable(t *testing.T) {
	tests := []struct {
		name    string
		prep    []GateInstance
		wantIdx int
	}{
		{"both controls clear", nil, 0},
		{"one control set", []GateInstance{g("X", 0)}, 4},
		{"both controls set", []GateInstance{g("X", 0), g("X", 1)}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gates := append(append([]GateInstance(nil), tt.prep...), g("CCX", 0, 1, 2))
			s := simulate(t, 3, gates...)
			if !approxEq(s.Amplitudes[tt.wantIdx], 1) {
				t.Errorf("state = %v, want basis %d", s.Amplitudes, tt.wantIdx)
			}
		})
	}
}

func TestSwapMovesExcitation(t *testing.T) {
	s := simulate(t, 2, g("X", 0), g("SWAP", 0, 1))
	if !approxEq(s.Amplitudes[1], 1) {
		t.Errorf("SWAP result = %v, want |01>", s.Amplitudes)
	}
}

func TestU3MatchesHadamard(t *testing.T) {
	h := simulate(t, 1, g("H", 0))
	u := simulate(t, 1, gp("U3", []float64{math.Pi / 2, 0, math.Pi}, 0))
	for i := range h.Amplitudes {
		if !approxEq(h.Amplitudes[i], u.Amplitudes[i]) {
			t.Errorf("amp[%d]: H=%v U3=%v", i, h.Amplitudes[i], u.Amplitudes[i])
		}
	}
}

func TestRotationsPreserveNorm(t *testing.T) {
	s := simulate(t, 3,
		gp("RX", []float64{1.234}, 0),
		gp("RY", []float64{-0.77}, 1),
		gp("RZ", []float64{2.5}, 2),
		g("H", 0), g("CX", 0, 1), g("CCX", 0, 1, 2),
		gp("U3", []float64{0.3, 1.1, -0.4}, 2),
	)
	if norm := s.Norm(); math.Abs(norm-1) > tol {
		t.Errorf("norm = %.12f, want 1", norm)
	}
}

func TestRXHalfTurnIsBitFlipUpToPhase(t *testing.T) {
	s := simulate(t, 1, gp("RX", []float64{math.Pi}, 0))
	// RX(pi) = -i X, so the population fully transfers.
	if p := s.Probability(1); math.Abs(p-1) > tol {
		t.Errorf("P(|1>) = %v, want 1", p)
	}
}

func TestSimulateRejectsInvalidCircuit(t *testing.T) {
	c := NewCircuit(2)
	// Bypass AddGate to plant a stale reference, the way a shrink that
	// skipped revalidation would.
	c.Gates = append(c.Gates, GateInstance{ID: "x", Name: "CX", Qubits: []int{0, 5}})
	if _, err := Simulate(c); !errors.Is(err, ErrQubitOutOfRange) {
		t.Errorf("Simulate = %v, want ErrQubitOutOfRange", err)
	}

	c = NewCircuit(1)
	c.Gates = append(c.Gates, GateInstance{ID: "y", Name: "NOPE", Qubits: []int{0}})
	if _, err := Simulate(c); !errors.Is(err, ErrUnknownGate) {
		t.Errorf("Simulate = %v, want ErrUnknownGate", err)
	}
}

func TestSimulateHonorsPositionsNotInsertionOrder(t *testing.T) {
	// X at column 1 and H at column 0, inserted in reverse: the engine
	// must apply H first. H then X differs from X then H on |0> only in
	// the sign pattern, so check the exact amplitudes.
	c := NewCircuit(1)
	mustAdd(t, c, "X", []int{0}, nil, 1)
	mustAdd(t, c, "H", []int{0}, nil, 0)
	s, err := Simulate(c)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	inv := complex(1/math.Sqrt2, 0)
	if !approxEq(s.Amplitudes[0], inv) || !approxEq(s.Amplitudes[1], inv) {
		t.Errorf("amps = %v, want H applied before X", s.Amplitudes)
	}
}

func TestGHZProbabilities(t *testing.T) {
	s := simulate(t, 3, g("H", 0), g("CX", 0, 1), g("CX", 1, 2))
	if p0 := s.Probability(0); math.Abs(p0-0.5) > tol {
		t.Errorf("P(|000>) = %v", p0)
	}
	if p7 := s.Probability(7); math.Abs(p7-0.5) > tol {
		t.Errorf("P(|111>) = %v", p7)
	}
}
