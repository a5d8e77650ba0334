package main

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"sort"
	"time"
)

// probEpsilon drops numerically negligible basis states from the
// probability view.
const probEpsilon = 1e-6

// defaultShots is the shot count used when preferences carry none.
const defaultShots = 1024

// BasisProbability is one entry of the measurement distribution.
type BasisProbability struct {
	Index int
	Bits  string // qubit 0 first
	Prob  float64
}

// bitString renders basis index i as an n-wide bit pattern, qubit 0 first.
func bitString(i, n int) string {
	return fmt.Sprintf("%0*b", n, i)
}

// Probabilities projects the state vector onto the measurement
// distribution: squared magnitudes, filtered at probEpsilon and
// renormalized so the survivors sum to 1.
func Probabilities(s *StateVector) []BasisProbability {
	var out []BasisProbability
	total := 0.0
	for i := range s.Amplitudes {
		p := s.Probability(i)
		if p > probEpsilon {
			out = append(out, BasisProbability{Index: i, Bits: bitString(i, s.NumQubits), Prob: p})
			total += p
		}
	}
	if total > 0 {
		for i := range out {
			out[i].Prob /= total
		}
	}
	return out
}

// AmplitudeEntry is one non-negligible state-vector component for the
// amplitude panel.
type AmplitudeEntry struct {
	Index     int
	Bits      string
	Amplitude complex128
	Magnitude float64
	Phase     float64 // radians
}

// Amplitudes lists the components with probability above probEpsilon.
func Amplitudes(s *StateVector) []AmplitudeEntry {
	var out []AmplitudeEntry
	for i, a := range s.Amplitudes {
		if s.Probability(i) > probEpsilon {
			out = append(out, AmplitudeEntry{
				Index:     i,
				Bits:      bitString(i, s.NumQubits),
				Amplitude: a,
				Magnitude: cmplx.Abs(a),
				Phase:     cmplx.Phase(a),
			})
		}
	}
	return out
}

// BlochVector summarizes one qubit's reduced state: Pauli expectations
// and the derived polar/azimuthal angles. For an entangled qubit the
// vector length drops below 1; the angles still come from the exact
// partial trace, never from per-gate heuristics.
type BlochVector struct {
	X, Y, Z    float64
	Theta, Phi float64
}

// BlochAngles computes the reduced density matrix of qubit q by tracing
// out the others, then reads theta = arccos<Z> and phi = atan2(<Y>,<X>).
func BlochAngles(s *StateVector, q int) BlochVector {
	bit := s.mask(q)
	var rho00, rho11 float64
	var rho01 complex128
	for i := range s.Amplitudes {
		if i&bit != 0 {
			continue
		}
		a0 := s.Amplitudes[i]
		a1 := s.Amplitudes[i|bit]
		rho00 += real(a0)*real(a0) + imag(a0)*imag(a0)
		rho11 += real(a1)*real(a1) + imag(a1)*imag(a1)
		rho01 += a0 * cmplx.Conj(a1)
	}
	v := BlochVector{
		X: 2 * real(rho01),
		Y: -2 * imag(rho01),
		Z: rho00 - rho11,
	}
	z := math.Max(-1, math.Min(1, v.Z))
	v.Theta = math.Acos(z)
	v.Phi = math.Atan2(v.Y, v.X)
	return v
}

// ShotResult is the shot-sampled measurement table plus its summary
// statistics. Elapsed is supplied by the caller; the projector itself has
// no clock.
type ShotResult struct {
	Shots           int
	Counts          map[string]int
	Entropy         float64 // Shannon entropy of normalized counts, bits
	EffectiveStates int     // states exceeding 1% of shots
	Elapsed         time.Duration
}

// SampleCounts draws shot counts from the distribution. With a rng it is
// a multinomial sample; with nil it is deterministic largest-remainder
// rounding. Either way the counts sum exactly to shots.
func SampleCounts(dist []BasisProbability, shots int, rng *rand.Rand) map[string]int {
	counts := make(map[string]int, len(dist))
	if len(dist) == 0 || shots <= 0 {
		return counts
	}

	if rng != nil {
		cumulative := make([]float64, len(dist))
		total := 0.0
		for i, d := range dist {
			total += d.Prob
			cumulative[i] = total
		}
		for s := 0; s < shots; s++ {
			r := rng.Float64() * total
			idx := sort.SearchFloat64s(cumulative, r)
			if idx >= len(dist) {
				idx = len(dist) - 1
			}
			counts[dist[idx].Bits]++
		}
		return counts
	}

	// Deterministic split: floor of the expectation per state, then the
	// remaining shots go to the largest remainders.
	type remainder struct {
		bits string
		frac float64
	}
	assigned := 0
	remainders := make([]remainder, 0, len(dist))
	for _, d := range dist {
		exact := d.Prob * float64(shots)
		whole := int(math.Floor(exact))
		counts[d.Bits] = whole
		assigned += whole
		remainders = append(remainders, remainder{bits: d.Bits, frac: exact - float64(whole)})
	}
	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].frac > remainders[j].frac
	})
	for i := 0; i < shots-assigned; i++ {
		counts[remainders[i%len(remainders)].bits]++
	}
	for bits, n := range counts {
		if n == 0 {
			delete(counts, bits)
		}
	}
	return counts
}

// SummarizeCounts derives entropy and the effective-state count from a
// sampled table.
func SummarizeCounts(counts map[string]int, shots int, elapsed time.Duration) ShotResult {
	res := ShotResult{Shots: shots, Counts: counts, Elapsed: elapsed}
	if shots <= 0 {
		return res
	}
	threshold := float64(shots) * 0.01
	for _, n := range counts {
		if n <= 0 {
			continue
		}
		p := float64(n) / float64(shots)
		res.Entropy -= p * math.Log2(p)
		if float64(n) > threshold {
			res.EffectiveStates++
		}
	}
	return res
}
