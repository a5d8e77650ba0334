package main

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	backupKeyPrefix     = "backup/"
	customGateKeyPrefix = "customgate/"
	prefsKey            = "prefs"
)

// ErrNotFound is returned when a backup or custom gate id is unknown.
var ErrNotFound = errors.New("not found")

// CircuitBackup is a named full-circuit snapshot, independent of the live
// circuit's lifecycle.
type CircuitBackup struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	NumQubits    int            `json:"numQubits"`
	Gates        []GateInstance `json:"gates"`
	Measurements []Measurement  `json:"measurements,omitempty"`
	Created      time.Time      `json:"created"`
}

// Library layers the named stores (backups, custom gates, preferences)
// over the persistence port. Every mutating call writes through
// immediately; nothing is buffered.
type Library struct {
	store Store
}

// NewLibrary wraps a Store.
func NewLibrary(store Store) *Library {
	return &Library{store: store}
}

// SaveBackup snapshots the circuit under a fresh id.
func (l *Library) SaveBackup(name, description string, c *Circuit) (CircuitBackup, error) {
	snap := c.Clone()
	b := CircuitBackup{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  description,
		NumQubits:    snap.NumQubits,
		Gates:        snap.Gates,
		Measurements: snap.Measurements,
		Created:      time.Now(),
	}
	data, err := json.Marshal(b)
	if err != nil {
		return CircuitBackup{}, errors.Wrap(err, "encode backup")
	}
	if err := l.store.Set(backupKeyPrefix+b.ID, data); err != nil {
		return CircuitBackup{}, err
	}
	return b, nil
}

// ListBackups returns all backups, newest first.
func (l *Library) ListBackups() ([]CircuitBackup, error) {
	entries, err := l.store.List(backupKeyPrefix)
	if err != nil {
		return nil, err
	}
	backups := make([]CircuitBackup, 0, len(entries))
	for _, kv := range entries {
		var b CircuitBackup
		if err := json.Unmarshal(kv.Value, &b); err != nil {
			return nil, errors.Wrapf(err, "decode backup %q", kv.Key)
		}
		backups = append(backups, b)
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Created.After(backups[j].Created)
	})
	return backups, nil
}

// LoadBackup restores the snapshot behind an id as a fresh circuit.
func (l *Library) LoadBackup(id string) (*Circuit, error) {
	data, ok, err := l.store.Get(backupKeyPrefix + id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "backup %q", id)
	}
	var b CircuitBackup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrapf(err, "decode backup %q", id)
	}
	c := &Circuit{NumQubits: b.NumQubits, Gates: b.Gates, Measurements: b.Measurements}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "backup %q holds an invalid circuit", id)
	}
	return c, nil
}

// DeleteBackup removes a snapshot by id.
func (l *Library) DeleteBackup(id string) error {
	return l.store.Delete(backupKeyPrefix + id)
}

// CustomGate is a user-defined macro: a captured gate sub-sequence that
// can be replayed into the live circuit.
type CustomGate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Initial     string         `json:"initial"` // display tag, at most 4 chars
	Description string         `json:"description,omitempty"`
	NumQubits   int            `json:"numQubits"`
	Gates       []GateInstance `json:"gates"`
	Created     time.Time      `json:"created"`
}

// CreateCustomGate captures a non-empty gate selection as a macro. The
// captured gates get fresh ids and positions rebased to start at 0;
// qubit indices stay absolute. NumQubits derives from the highest index
// referenced.
func (l *Library) CreateCustomGate(name, initial, description string, selection []GateInstance) (CustomGate, error) {
	if len(selection) == 0 {
		return CustomGate{}, errors.New("custom gate needs a non-empty selection")
	}
	if len(initial) > 4 {
		initial = initial[:4]
	}

	minPos := selection[0].Position
	maxQubit := 0
	for _, g := range selection {
		if g.Position < minPos {
			minPos = g.Position
		}
		for _, q := range g.Qubits {
			if q > maxQubit {
				maxQubit = q
			}
		}
	}

	cg := CustomGate{
		ID:          uuid.NewString(),
		Name:        name,
		Initial:     initial,
		Description: description,
		NumQubits:   maxQubit + 1,
		Created:     time.Now(),
	}
	for _, g := range selection {
		g.ID = uuid.NewString()
		g.Qubits = append([]int(nil), g.Qubits...)
		g.Params = append([]float64(nil), g.Params...)
		g.Position -= minPos
		cg.Gates = append(cg.Gates, g)
	}

	data, err := json.Marshal(cg)
	if err != nil {
		return CustomGate{}, errors.Wrap(err, "encode custom gate")
	}
	if err := l.store.Set(customGateKeyPrefix+cg.ID, data); err != nil {
		return CustomGate{}, err
	}
	return cg, nil
}

// ListCustomGates returns all macros, newest first.
func (l *Library) ListCustomGates() ([]CustomGate, error) {
	entries, err := l.store.List(customGateKeyPrefix)
	if err != nil {
		return nil, err
	}
	gates := make([]CustomGate, 0, len(entries))
	for _, kv := range entries {
		var cg CustomGate
		if err := json.Unmarshal(kv.Value, &cg); err != nil {
			return nil, errors.Wrapf(err, "decode custom gate %q", kv.Key)
		}
		gates = append(gates, cg)
	}
	sort.Slice(gates, func(i, j int) bool {
		return gates[i].Created.After(gates[j].Created)
	})
	return gates, nil
}

// ApplyCustomGate replays a macro into the circuit starting at the given
// position. Captured qubit indices are used verbatim, not remapped; a
// macro that spans more qubits than the circuit has is rejected before
// any gate lands.
func ApplyCustomGate(c *Circuit, cg CustomGate, atPosition int) error {
	if cg.NumQubits > c.NumQubits {
		return errors.Wrapf(ErrQubitOutOfRange, "macro %q spans %d qubits, circuit has %d",
			cg.Name, cg.NumQubits, c.NumQubits)
	}
	for _, g := range cg.Gates {
		if _, err := c.AddGate(g.Name, g.Qubits, g.Params, atPosition+g.Position); err != nil {
			return errors.Wrapf(err, "replay macro %q", cg.Name)
		}
	}
	return nil
}

// Preferences are the process-wide UI settings kept in the store.
type Preferences struct {
	Theme        string `json:"theme"`
	TutorialSeen bool   `json:"tutorialSeen"`
	Shots        int    `json:"shots"`
}

// LoadPreferences reads preferences, falling back to defaults when none
// are stored yet.
func (l *Library) LoadPreferences() (Preferences, error) {
	prefs := Preferences{Theme: "dark", Shots: defaultShots}
	data, ok, err := l.store.Get(prefsKey)
	if err != nil {
		return prefs, err
	}
	if !ok {
		return prefs, nil
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return prefs, errors.Wrap(err, "decode preferences")
	}
	if prefs.Shots <= 0 {
		prefs.Shots = defaultShots
	}
	return prefs, nil
}

// SavePreferences writes preferences through to the store.
func (l *Library) SavePreferences(p Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encode preferences")
	}
	return l.store.Set(prefsKey, data)
}
