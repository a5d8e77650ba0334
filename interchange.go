package main

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// circuitDocument is the structured file-interchange form of a circuit.
// Round trips are lossless apart from ids, which are regenerated on
// import.
type circuitDocument struct {
	NumQubits    int            `json:"numQubits"`
	Gates        []GateInstance `json:"gates"`
	Measurements []Measurement  `json:"measurements,omitempty"`
}

// ExportJSON serializes the circuit to its interchange document.
func ExportJSON(c *Circuit) ([]byte, error) {
	doc := circuitDocument{
		NumQubits:    c.NumQubits,
		Gates:        c.Gates,
		Measurements: c.Measurements,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "export circuit")
	}
	return data, nil
}

// ImportJSON parses an interchange document into a fresh, validated
// circuit. On any error the caller's live circuit is untouched: nothing
// is swapped in until the whole document decodes and validates.
func ImportJSON(data []byte) (*Circuit, error) {
	var doc circuitDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "import circuit")
	}
	if doc.NumQubits < 1 || doc.NumQubits > MaxQubits {
		return nil, errors.Errorf("import circuit: numQubits %d outside [1,%d]", doc.NumQubits, MaxQubits)
	}

	c := &Circuit{NumQubits: doc.NumQubits}
	for _, g := range doc.Gates {
		g.ID = uuid.NewString()
		g.Params = NormalizeParams(g.Name, g.Params)
		if err := validateGate(g, c.NumQubits); err != nil {
			return nil, errors.Wrap(err, "import circuit")
		}
		c.Gates = append(c.Gates, g)
	}
	for _, m := range doc.Measurements {
		if m.Qubit < 0 || m.Qubit >= c.NumQubits {
			return nil, errors.Wrapf(ErrQubitOutOfRange, "import circuit: measurement on q[%d]", m.Qubit)
		}
		c.Measurements = append(c.Measurements, m)
	}
	return c, nil
}
