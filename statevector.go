package main

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
)

// StateVector holds 2^NumQubits complex amplitudes. Index i is the basis
// state whose NumQubits-wide binary form has qubit 0 as the most
// significant bit, so the bit for qubit q sits at position NumQubits-1-q.
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector returns |0...0>: amplitude 1 at index 0.
func NewStateVector(numQubits int) *StateVector {
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// Clone deep-copies the state vector.
func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// mask returns the basis-index bit for qubit q.
func (s *StateVector) mask(q int) int {
	return 1 << (s.NumQubits - 1 - q)
}

// Probability returns |amplitude|^2 of basis index i.
func (s *StateVector) Probability(i int) float64 {
	a := s.Amplitudes[i]
	return real(a)*real(a) + imag(a)*imag(a)
}

// Norm returns the sum of squared magnitudes; unitary evolution keeps
// this at 1.
func (s *StateVector) Norm() float64 {
	total := 0.0
	for i := range s.Amplitudes {
		total += s.Probability(i)
	}
	return total
}

// Apply dispatches one validated gate onto the amplitude vector. Unknown
// names are a hard error here: the engine never guesses at a unitary.
func (s *StateVector) Apply(g GateInstance) error {
	switch g.Name {
	case "H":
		s.applyH(g.Qubits[0])
	case "X":
		s.applyX(g.Qubits[0])
	case "Y":
		s.applyY(g.Qubits[0])
	case "Z":
		s.applyPhaseFlip(g.Qubits[0], -1)
	case "S":
		s.applyPhaseFlip(g.Qubits[0], 1i)
	case "SDG":
		s.applyPhaseFlip(g.Qubits[0], -1i)
	case "T":
		s.applyPhaseFlip(g.Qubits[0], cmplx.Exp(complex(0, math.Pi/4)))
	case "TDG":
		s.applyPhaseFlip(g.Qubits[0], cmplx.Exp(complex(0, -math.Pi/4)))
	case "RX":
		s.applyRX(g.Qubits[0], g.Params[0])
	case "RY":
		s.applyRY(g.Qubits[0], g.Params[0])
	case "RZ":
		s.applyRZ(g.Qubits[0], g.Params[0])
	case "U3":
		s.applyU3(g.Qubits[0], g.Params[0], g.Params[1], g.Params[2])
	case "CX":
		s.applyCX(g.Qubits[0], g.Qubits[1])
	case "CY":
		s.applyCY(g.Qubits[0], g.Qubits[1])
	case "CZ":
		s.applyCZ(g.Qubits[0], g.Qubits[1])
	case "SWAP":
		s.applySWAP(g.Qubits[0], g.Qubits[1])
	case "CCX":
		s.applyCCX(g.Qubits[0], g.Qubits[1], g.Qubits[2])
	default:
		return errors.Wrapf(ErrUnknownGate, "cannot simulate %q", g.Name)
	}
	return nil
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := s.mask(q)
	newAmps := make([]complex128, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = hFactor * (s.Amplitudes[i] + s.Amplitudes[j])
			newAmps[j] = hFactor * (s.Amplitudes[i] - s.Amplitudes[j])
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyX(q int) {
	n := len(s.Amplitudes)
	bit := s.mask(q)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// applyY uses Y = [[0, -i], [i, 0]] exactly; the sign matters once the
// gate appears under a control.
func (s *StateVector) applyY(q int) {
	n := len(s.Amplitudes)
	bit := s.mask(q)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = -1i*s.Amplitudes[j], 1i*s.Amplitudes[i]
		}
	}
}

// applyPhaseFlip multiplies the |1> half of qubit q's subspace by factor.
// Covers Z (-1), S (i), SDG (-i), T and TDG (e^{±iπ/4}).
func (s *StateVector) applyPhaseFlip(q int, factor complex128) {
	n := len(s.Amplitudes)
	bit := s.mask(q)
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyRX(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := s.mask(q)
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	newAmps := make([]complex128, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = c*s.Amplitudes[i] + js*s.Amplitudes[j]
			newAmps[j] = js*s.Amplitudes[i] + c*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyRY(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := s.mask(q)
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	newAmps := make([]complex128, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = c*s.Amplitudes[i] - sn*s.Amplitudes[j]
			newAmps[j] = sn*s.Amplitudes[i] + c*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyRZ(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := s.mask(q)
	phase := cmplx.Exp(complex(0, theta/2))
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		}
	}
}

// applyU3 applies the general single-qubit unitary
//
//	U3(θ,φ,λ) = [[cos(θ/2),        -e^{iλ} sin(θ/2)],
//	             [e^{iφ} sin(θ/2),  e^{i(φ+λ)} cos(θ/2)]]
func (s *StateVector) applyU3(q int, theta, phi, lambda float64) {
	n := len(s.Amplitudes)
	bit := s.mask(q)
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	u00 := c
	u01 := -cmplx.Exp(complex(0, lambda)) * sn
	u10 := cmplx.Exp(complex(0, phi)) * sn
	u11 := cmplx.Exp(complex(0, phi+lambda)) * c
	newAmps := make([]complex128, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = u00*s.Amplitudes[i] + u01*s.Amplitudes[j]
			newAmps[j] = u10*s.Amplitudes[i] + u11*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyCX(control, target int) {
	n := len(s.Amplitudes)
	cBit := s.mask(control)
	tBit := s.mask(target)
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCY(control, target int) {
	n := len(s.Amplitudes)
	cBit := s.mask(control)
	tBit := s.mask(target)
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = -1i*s.Amplitudes[j], 1i*s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	n := len(s.Amplitudes)
	cBit := s.mask(control)
	tBit := s.mask(target)
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applySWAP(q1, q2 int) {
	n := len(s.Amplitudes)
	bit1 := s.mask(q1)
	bit2 := s.mask(q2)
	for i := 0; i < n; i++ {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i &^ bit1) | bit2
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCCX(c1, c2, target int) {
	n := len(s.Amplitudes)
	c1Bit := s.mask(c1)
	c2Bit := s.mask(c2)
	tBit := s.mask(target)
	for i := 0; i < n; i++ {
		if i&c1Bit != 0 && i&c2Bit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// Simulate validates the circuit and folds its gates over a fresh |0...0>
// state in position order (insertion order breaks ties). It is a pure
// function of the circuit snapshot; no state survives between calls.
func Simulate(c *Circuit) (*StateVector, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "refusing to simulate invalid circuit")
	}
	state := NewStateVector(c.NumQubits)
	for _, g := range c.Ordered() {
		if err := state.Apply(g); err != nil {
			return nil, err
		}
	}
	return state, nil
}
