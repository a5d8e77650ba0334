package main

import (
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MaxQubits caps the circuit size; state vectors grow as 2^n.
const MaxQubits = 8

// Structural circuit errors. These are detected at the circuit-model
// boundary and keep invalid circuits out of the engine.
var (
	ErrUnknownGate      = errors.New("unknown gate name")
	ErrArityMismatch    = errors.New("gate arity mismatch")
	ErrQubitOutOfRange  = errors.New("qubit index out of range")
	ErrDuplicateQubit   = errors.New("gate references the same qubit twice")
	ErrNegativePosition = errors.New("gate position must be non-negative")
)

// GateInstance is one placed gate. Qubits is ordered: for controlled gates
// the leading entries are controls and the last is the target.
type GateInstance struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Qubits   []int     `json:"qubits"`
	Params   []float64 `json:"params,omitempty"`
	Position int       `json:"position"`
}

// Target returns the qubit the gate acts on (the last entry).
func (g GateInstance) Target() int {
	if len(g.Qubits) == 0 {
		return -1
	}
	return g.Qubits[len(g.Qubits)-1]
}

// Controls returns the control qubits, if any.
func (g GateInstance) Controls() []int {
	spec, ok := gateCatalog[g.Name]
	if !ok || !spec.Controlled() || len(g.Qubits) < 2 {
		return nil
	}
	return g.Qubits[:len(g.Qubits)-1]
}

// References reports whether the gate touches the given qubit.
func (g GateInstance) References(qubit int) bool {
	for _, q := range g.Qubits {
		if q == qubit {
			return true
		}
	}
	return false
}

// Measurement is a (qubit, classical bit) pair. The engine ignores these;
// they flow through to the interchange document and code export.
type Measurement struct {
	Qubit int `json:"qubit"`
	Bit   int `json:"bit"`
}

// Circuit is the editable circuit model: gates ordered by insertion, with
// an explicit Position giving each gate its column on the timeline.
type Circuit struct {
	NumQubits    int
	Gates        []GateInstance
	Measurements []Measurement
}

// NewCircuit creates an empty circuit, clamping n to [1, MaxQubits].
func NewCircuit(n int) *Circuit {
	if n < 1 {
		n = 1
	}
	if n > MaxQubits {
		n = MaxQubits
	}
	return &Circuit{NumQubits: n}
}

// validateGate checks one gate against the catalogue and qubit bounds.
func validateGate(g GateInstance, numQubits int) error {
	spec, ok := gateCatalog[g.Name]
	if !ok {
		return errors.Wrapf(ErrUnknownGate, "%q", g.Name)
	}
	if len(g.Qubits) != spec.Arity {
		return errors.Wrapf(ErrArityMismatch, "%s wants %d qubits, got %d", g.Name, spec.Arity, len(g.Qubits))
	}
	if g.Position < 0 {
		return errors.Wrapf(ErrNegativePosition, "%s at %d", g.Name, g.Position)
	}
	seen := make(map[int]bool, len(g.Qubits))
	for _, q := range g.Qubits {
		if q < 0 || q >= numQubits {
			return errors.Wrapf(ErrQubitOutOfRange, "%s references q[%d] with %d qubits", g.Name, q, numQubits)
		}
		if seen[q] {
			return errors.Wrapf(ErrDuplicateQubit, "%s references q[%d] twice", g.Name, q)
		}
		seen[q] = true
	}
	return nil
}

// AddGate validates and appends a gate with a freshly assigned id.
// Parameters are normalized against the catalogue defaults. AddGate never
// grows the qubit count; a gate beyond the current bounds is an error.
func (c *Circuit) AddGate(name string, qubits []int, params []float64, position int) (GateInstance, error) {
	g := GateInstance{
		ID:       uuid.NewString(),
		Name:     name,
		Qubits:   append([]int(nil), qubits...),
		Params:   NormalizeParams(name, params),
		Position: position,
	}
	if err := validateGate(g, c.NumQubits); err != nil {
		return GateInstance{}, err
	}
	c.Gates = append(c.Gates, g)
	return g, nil
}

// RemoveGate removes the gate with the given id. Removing an absent id is
// a no-op, not an error.
func (c *Circuit) RemoveGate(id string) {
	for i := range c.Gates {
		if c.Gates[i].ID == id {
			c.Gates = append(c.Gates[:i], c.Gates[i+1:]...)
			return
		}
	}
}

// RemoveGateAt removes any gate occupying the given position and qubit.
func (c *Circuit) RemoveGateAt(position, qubit int) {
	kept := c.Gates[:0]
	for _, g := range c.Gates {
		if g.Position == position && g.References(qubit) {
			continue
		}
		kept = append(kept, g)
	}
	c.Gates = kept
}

// SetNumQubits resizes the circuit and eagerly drops every gate and
// measurement that references a now-invalid qubit, so no dangling
// references survive the resize.
func (c *Circuit) SetNumQubits(n int) {
	if n < 1 || n > MaxQubits {
		return
	}
	c.NumQubits = n
	kept := c.Gates[:0]
	for _, g := range c.Gates {
		valid := true
		for _, q := range g.Qubits {
			if q >= n {
				valid = false
				break
			}
		}
		if valid {
			kept = append(kept, g)
		}
	}
	c.Gates = kept

	keptM := c.Measurements[:0]
	for _, m := range c.Measurements {
		if m.Qubit < n {
			keptM = append(keptM, m)
		}
	}
	c.Measurements = keptM
}

// Clear resets the circuit to an empty gate list.
func (c *Circuit) Clear() {
	c.Gates = nil
	c.Measurements = nil
}

// Depth is the number of time-steps: max position + 1, or 0 when empty.
func (c *Circuit) Depth() int {
	depth := 0
	for _, g := range c.Gates {
		if g.Position+1 > depth {
			depth = g.Position + 1
		}
	}
	return depth
}

// QuantumCost sums the advisory per-gate cost weights.
func (c *Circuit) QuantumCost() int {
	cost := 0
	for _, g := range c.Gates {
		cost += GateCost(g.Name)
	}
	return cost
}

// Ordered returns the gates in application order: ascending position, with
// equal positions kept in insertion order. This tie-break is the one
// deterministic rule the simulator relies on.
func (c *Circuit) Ordered() []GateInstance {
	gates := append([]GateInstance(nil), c.Gates...)
	sort.SliceStable(gates, func(i, j int) bool {
		return gates[i].Position < gates[j].Position
	})
	return gates
}

// Validate checks every gate; the engine refuses to simulate a circuit
// that fails here.
func (c *Circuit) Validate() error {
	for _, g := range c.Gates {
		if err := validateGate(g, c.NumQubits); err != nil {
			return err
		}
	}
	return nil
}

// GateAt returns the gate occupying (position, qubit), or nil.
func (c *Circuit) GateAt(position, qubit int) *GateInstance {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Position == position && g.References(qubit) {
			return g
		}
	}
	return nil
}

// OccupiedAt reports whether any of the given qubits is already used by a
// gate at the given position. Used to block conflicting placements.
func (c *Circuit) OccupiedAt(position int, qubits []int) bool {
	for _, g := range c.Gates {
		if g.Position != position {
			continue
		}
		for _, q := range qubits {
			if g.References(q) {
				return true
			}
		}
	}
	return false
}

// Clone deep-copies the circuit, preserving ids.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{NumQubits: c.NumQubits}
	out.Gates = make([]GateInstance, len(c.Gates))
	for i, g := range c.Gates {
		g.Qubits = append([]int(nil), g.Qubits...)
		g.Params = append([]float64(nil), g.Params...)
		out.Gates[i] = g
	}
	out.Measurements = append([]Measurement(nil), c.Measurements...)
	return out
}

// Equivalent reports whether two circuits hold the same gates, qubit
// references, parameters and positions. Ids are ignored: they are
// regenerated on import and macro replay.
func (c *Circuit) Equivalent(other *Circuit) bool {
	if c.NumQubits != other.NumQubits ||
		len(c.Gates) != len(other.Gates) ||
		len(c.Measurements) != len(other.Measurements) {
		return false
	}
	for i, g := range c.Gates {
		o := other.Gates[i]
		if g.Name != o.Name || g.Position != o.Position ||
			len(g.Qubits) != len(o.Qubits) || len(g.Params) != len(o.Params) {
			return false
		}
		for j := range g.Qubits {
			if g.Qubits[j] != o.Qubits[j] {
				return false
			}
		}
		for j := range g.Params {
			if g.Params[j] != o.Params[j] {
				return false
			}
		}
	}
	for i, m := range c.Measurements {
		if m != other.Measurements[i] {
			return false
		}
	}
	return true
}
