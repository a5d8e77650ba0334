package main

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLibrary() *Library {
	return NewLibrary(NewMemoryStore())
}

func TestBackupSaveLoadDelete(t *testing.T) {
	l := testLibrary()
	c := NewCircuit(2)
	mustAdd(t, c, "H", []int{0}, nil, 0)
	mustAdd(t, c, "CX", []int{0, 1}, nil, 1)
	c.Measurements = []Measurement{{Qubit: 0, Bit: 0}}

	b, err := l.SaveBackup("bell", "entangled pair", c)
	require.NoError(t, err)
	require.NotEmpty(t, b.ID)

	// Mutating the live circuit must not touch the snapshot.
	c.Clear()

	restored, err := l.LoadBackup(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, restored.NumQubits)
	assert.Len(t, restored.Gates, 2)
	assert.Len(t, restored.Measurements, 1)

	require.NoError(t, l.DeleteBackup(b.ID))
	_, err = l.LoadBackup(b.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListBackupsNewestFirst(t *testing.T) {
	l := testLibrary()
	c := NewCircuit(1)
	mustAdd(t, c, "H", []int{0}, nil, 0)

	first, err := l.SaveBackup("first", "", c)
	require.NoError(t, err)
	second, err := l.SaveBackup("second", "", c)
	require.NoError(t, err)

	backups, err := l.ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, second.ID, backups[0].ID)
	assert.Equal(t, first.ID, backups[1].ID)
}

func TestLoadBackupRejectsCorruptSnapshot(t *testing.T) {
	store := NewMemoryStore()
	l := NewLibrary(store)
	require.NoError(t, store.Set("backup/bad", []byte("not json")))

	_, err := l.LoadBackup("bad")
	assert.Error(t, err)
}

func TestCreateCustomGateRebasesPositions(t *testing.T) {
	l := testLibrary()
	c := NewCircuit(3)
	g1 := mustAdd(t, c, "H", []int{1}, nil, 4)
	g2 := mustAdd(t, c, "CX", []int{1, 2}, nil, 5)

	cg, err := l.CreateCustomGate("entangler", "ENT", "", []GateInstance{g1, g2})
	require.NoError(t, err)

	assert.Equal(t, 3, cg.NumQubits) // highest referenced index is 2
	require.Len(t, cg.Gates, 2)
	assert.Equal(t, 0, cg.Gates[0].Position)
	assert.Equal(t, 1, cg.Gates[1].Position)
	// Captured qubit indices stay absolute.
	assert.Equal(t, []int{1}, cg.Gates[0].Qubits)
	assert.Equal(t, []int{1, 2}, cg.Gates[1].Qubits)
	// Fresh ids, not the originals.
	assert.NotEqual(t, g1.ID, cg.Gates[0].ID)
	assert.NotEqual(t, g2.ID, cg.Gates[1].ID)
}

func TestCreateCustomGateRejectsEmptySelection(t *testing.T) {
	l := testLibrary()
	_, err := l.CreateCustomGate("empty", "E", "", nil)
	assert.Error(t, err)
}

func TestCreateCustomGateTruncatesInitial(t *testing.T) {
	l := testLibrary()
	c := NewCircuit(1)
	g1 := mustAdd(t, c, "H", []int{0}, nil, 0)

	cg, err := l.CreateCustomGate("long", "TOOLONG", "", []GateInstance{g1})
	require.NoError(t, err)
	assert.Equal(t, "TOOL", cg.Initial)
}

func TestApplyCustomGateReplay(t *testing.T) {
	l := testLibrary()
	src := NewCircuit(2)
	g1 := mustAdd(t, src, "H", []int{0}, nil, 2)
	g2 := mustAdd(t, src, "CX", []int{0, 1}, nil, 3)
	cg, err := l.CreateCustomGate("bell", "BELL", "", []GateInstance{g1, g2})
	require.NoError(t, err)

	dst := NewCircuit(2)
	require.NoError(t, ApplyCustomGate(dst, cg, 5))

	require.Len(t, dst.Gates, 2)
	assert.Equal(t, 5, dst.Gates[0].Position)
	assert.Equal(t, 6, dst.Gates[1].Position)
	for i := range dst.Gates {
		assert.NotEqual(t, cg.Gates[i].ID, dst.Gates[i].ID, "replayed gate %d reused the macro id", i)
	}

	// The replayed bell pair behaves like the original.
	s, err := Simulate(dst)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, s.Probability(0), 1e-9)
	assert.InDelta(t, 0.5, s.Probability(3), 1e-9)
}

func TestApplyCustomGateRejectsUndersizedCircuit(t *testing.T) {
	l := testLibrary()
	src := NewCircuit(3)
	g1 := mustAdd(t, src, "CCX", []int{0, 1, 2}, nil, 0)
	cg, err := l.CreateCustomGate("toffoli", "TOF", "", []GateInstance{g1})
	require.NoError(t, err)

	dst := NewCircuit(2)
	err = ApplyCustomGate(dst, cg, 0)
	assert.True(t, errors.Is(err, ErrQubitOutOfRange))
	assert.Empty(t, dst.Gates, "failed replay must not leave partial gates")
}

func TestPreferencesRoundTrip(t *testing.T) {
	l := testLibrary()

	prefs, err := l.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, "dark", prefs.Theme)
	assert.Equal(t, defaultShots, prefs.Shots)

	prefs.Theme = "light"
	prefs.TutorialSeen = true
	prefs.Shots = 2048
	require.NoError(t, l.SavePreferences(prefs))

	loaded, err := l.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, prefs, loaded)
}

func TestCustomGateParamsSurviveCapture(t *testing.T) {
	l := testLibrary()
	c := NewCircuit(1)
	g1 := mustAdd(t, c, "RZ", []int{0}, []float64{math.Pi / 3}, 0)

	cg, err := l.CreateCustomGate("phase", "PH", "", []GateInstance{g1})
	require.NoError(t, err)
	require.Len(t, cg.Gates[0].Params, 1)
	assert.InDelta(t, math.Pi/3, cg.Gates[0].Params[0], 1e-12)
}
