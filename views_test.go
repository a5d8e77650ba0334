package main

import (
	"math"
	"math/rand"
	"testing"
)

func TestProbabilitiesFilterAndNormalize(t *testing.T) {
	s := simulate(t, 2, g("H", 0), g("CX", 0, 1))
	probs := Probabilities(s)

	if len(probs) != 2 {
		t.Fatalf("probs = %v, want the two bell terms", probs)
	}
	total := 0.0
	for _, p := range probs {
		total += p.Prob
		if math.Abs(p.Prob-0.5) > tol {
			t.Errorf("P(%s) = %v, want 0.5", p.Bits, p.Prob)
		}
	}
	if math.Abs(total-1) > tol {
		t.Errorf("probabilities sum to %v", total)
	}
	if probs[0].Bits != "00" || probs[1].Bits != "11" {
		t.Errorf("bit labels = %q, %q", probs[0].Bits, probs[1].Bits)
	}
}

func TestBitStringQubitZeroFirst(t *testing.T) {
	// Index 4 of a 3-qubit register is |100>: qubit 0 set, rest clear.
	if got := bitString(4, 3); got != "100" {
		t.Errorf("bitString(4,3) = %q", got)
	}
	if got := bitString(1, 3); got != "001" {
		t.Errorf("bitString(1,3) = %q", got)
	}
}

func TestAmplitudesPhase(t *testing.T) {
	s := simulate(t, 1, g("X", 0), g("Y", 0))
	amps := Amplitudes(s)
	if len(amps) != 1 || amps[0].Bits != "0" {
		t.Fatalf("amps = %v", amps)
	}
	// Y|1> = -i|0>: magnitude 1, phase -pi/2.
	if math.Abs(amps[0].Magnitude-1) > tol {
		t.Errorf("magnitude = %v", amps[0].Magnitude)
	}
	if math.Abs(amps[0].Phase+math.Pi/2) > tol {
		t.Errorf("phase = %v, want -pi/2", amps[0].Phase)
	}
}

func TestBlochAnglesPureStates(t *testing.T) {
	tests := []struct {
		name       string
		gates      []GateInstance
		x, y, z    float64
		theta, phi float64
		checkPhi   bool
	}{
		{name: "ground", z: 1, theta: 0},
		{name: "excited", gates: []GateInstance{g("X", 0)}, z: -1, theta: math.Pi},
		{name: "plus", gates: []GateInstance{g("H", 0)}, x: 1, theta: math.Pi / 2, checkPhi: true},
		{name: "plus-i", gates: []GateInstance{g("H", 0), g("S", 0)}, y: 1, theta: math.Pi / 2, phi: math.Pi / 2, checkPhi: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := simulate(t, 1, tt.gates...)
			v := BlochAngles(s, 0)
			if math.Abs(v.X-tt.x) > tol || math.Abs(v.Y-tt.y) > tol || math.Abs(v.Z-tt.z) > tol {
				t.Errorf("vector = (%v, %v, %v), want (%v, %v, %v)", v.X, v.Y, v.Z, tt.x, tt.y, tt.z)
			}
			if math.Abs(v.Theta-tt.theta) > tol {
				t.Errorf("theta = %v, want %v", v.Theta, tt.theta)
			}
			if tt.checkPhi && math.Abs(v.Phi-tt.phi) > tol {
				t.Errorf("phi = %v, want %v", v.Phi, tt.phi)
			}
		})
	}
}

func TestBlochAnglesEntangledQubitIsMixed(t *testing.T) {
	s := simulate(t, 2, g("H", 0), g("CX", 0, 1))
	for q := 0; q < 2; q++ {
		v := BlochAngles(s, q)
		r := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
		if r > tol {
			t.Errorf("qubit %d vector length = %v, want 0 for a bell pair", q, r)
		}
	}
}

func TestSampleCountsDeterministic(t *testing.T) {
	s := simulate(t, 2, g("H", 0), g("CX", 0, 1))
	dist := Probabilities(s)

	counts := SampleCounts(dist, 1000, nil)
	if counts["00"] != 500 || counts["11"] != 500 {
		t.Errorf("counts = %v, want 500/500", counts)
	}
}

func TestSampleCountsSumExactly(t *testing.T) {
	s := simulate(t, 3, g("H", 0), g("H", 1), gp("RY", []float64{0.7}, 2))
	dist := Probabilities(s)

	for _, shots := range []int{1, 7, 1024, 4999} {
		for _, rng := range []*rand.Rand{nil, rand.New(rand.NewSource(42))} {
			counts := SampleCounts(dist, shots, rng)
			total := 0
			for _, n := range counts {
				total += n
			}
			if total != shots {
				t.Errorf("shots=%d: counts sum to %d", shots, total)
			}
		}
	}
}

func TestSampleCountsEmpty(t *testing.T) {
	if counts := SampleCounts(nil, 100, nil); len(counts) != 0 {
		t.Errorf("counts from empty distribution = %v", counts)
	}
	s := simulate(t, 1)
	if counts := SampleCounts(Probabilities(s), 0, nil); len(counts) != 0 {
		t.Errorf("counts from zero shots = %v", counts)
	}
}

func TestSummarizeCounts(t *testing.T) {
	counts := map[string]int{"00": 500, "11": 500}
	res := SummarizeCounts(counts, 1000, 0)
	if math.Abs(res.Entropy-1) > tol {
		t.Errorf("entropy = %v, want 1 bit", res.Entropy)
	}
	if res.EffectiveStates != 2 {
		t.Errorf("effective states = %d, want 2", res.EffectiveStates)
	}

	// States at or below 1% of shots do not count as effective.
	res = SummarizeCounts(map[string]int{"00": 995, "01": 5}, 1000, 0)
	if res.EffectiveStates != 1 {
		t.Errorf("effective states = %d, want 1", res.EffectiveStates)
	}

	res = SummarizeCounts(map[string]int{"0": 100}, 100, 0)
	if res.Entropy > tol {
		t.Errorf("entropy of a certain outcome = %v", res.Entropy)
	}
}
