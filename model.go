package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusSelectTarget
	focusSelectControl
	focusInputParam
	focusBackups
	focusCustomGates
	focusNameInput
)

// viewTab selects the results panel view.
type viewTab int

const (
	tabProbs viewTab = iota
	tabAmps
	tabBloch
	tabCounts
)

// nameTarget says what the name-input overlay is naming.
type nameTarget int

const (
	nameBackup nameTarget = iota
	nameMacro
)

// shotDelay is the cosmetic latency before shot results appear.
const shotDelay = 350 * time.Millisecond

// shotTickMsg fires when the shot delay elapses. seq pins the result to
// the circuit snapshot it was requested for; stale ticks are dropped.
type shotTickMsg struct {
	seq int
}

// Model is the TUI application state.
type Model struct {
	circuit *Circuit
	library *Library
	prefs   Preferences
	logger  *log.Logger

	cursorQubit int
	cursorPos   int
	width       int
	height      int
	qasmEditor  textarea.Model
	focus       focus
	lastQASM    string
	statusMsg   string

	// Menu state
	menuCat  int
	menuItem int

	// Placement state (multi-qubit gates and parameters)
	pendingGate    string
	pendingControl int
	targetQubit    int
	paramInput     string

	// Results panel
	tab    viewTab
	state  *StateVector
	simErr error

	// Shot sampling
	shotSeq      int
	shotsRunning bool
	shotResult   *ShotResult

	// Selection for macro capture (position range; -1 = none)
	selAnchor int

	// Overlay lists
	backups     []CircuitBackup
	backupIdx   int
	customGates []CustomGate
	customIdx   int
	nameInput   string
	naming      nameTarget

	initCmd tea.Cmd
}

func initialModel(cfg Config, library *Library, prefs Preferences, logger *log.Logger) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		circuit:    NewCircuit(cfg.NumQubits),
		library:    library,
		prefs:      prefs,
		logger:     logger,
		qasmEditor: ta,
		focus:      focusCircuit,
		selAnchor:  -1,
	}
	if !prefs.TutorialSeen {
		m.statusMsg = "press a to add a gate, 1-4 to switch views"
		m.prefs.TutorialSeen = true
		if err := library.SavePreferences(m.prefs); err != nil {
			logger.Warn("save preferences", "err", err)
		}
	}
	m.initCmd = m.recompute()
	m.syncQASM()
	return m
}

// recompute re-simulates the current circuit snapshot and schedules a
// fresh shot run. Bumping shotSeq invalidates any tick still in flight.
func (m *Model) recompute() tea.Cmd {
	m.state, m.simErr = Simulate(m.circuit)
	m.shotResult = nil
	m.shotSeq++
	if m.simErr != nil {
		m.logger.Error("simulate", "err", m.simErr)
		m.shotsRunning = false
		return nil
	}
	m.shotsRunning = true
	seq := m.shotSeq
	return tea.Tick(shotDelay, func(time.Time) tea.Msg {
		return shotTickMsg{seq: seq}
	})
}

// syncQASM refreshes the editor panel from the circuit.
func (m *Model) syncQASM() {
	qasm := m.circuit.ToQASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
}

// parseQASMInput re-parses the editor buffer once it diverges from the
// last rendered text. The live circuit only changes when the whole
// buffer parses.
func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return
	}
	m.lastQASM = qasm
	parsed, err := ParseQASM(qasm)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.statusMsg = ""
	m.circuit = parsed
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursorQubit >= m.circuit.NumQubits {
		m.cursorQubit = m.circuit.NumQubits - 1
	}
}

// clearPending resets gate-placement scratch state.
func (m *Model) clearPending() {
	m.pendingGate = ""
	m.pendingControl = -1
	m.paramInput = ""
}

// placeGate places the pending gate using the cursor qubit plus any
// selected control/target. Returns false when the cells are taken.
func (m *Model) placeGate(name string, qubits []int) bool {
	if m.circuit.OccupiedAt(m.cursorPos, qubits) {
		m.statusMsg = "cannot place: qubit already used at this column"
		m.clearPending()
		return false
	}
	var params []float64
	if m.paramInput != "" {
		params, _ = parseParamList(m.paramInput)
	}
	if _, err := m.circuit.AddGate(name, qubits, params, m.cursorPos); err != nil {
		m.statusMsg = err.Error()
		m.clearPending()
		return false
	}
	m.clearPending()
	m.cursorPos++
	return true
}

// finishPlacement routes the pending gate to the next input step or
// places it immediately, based on its arity.
func (m *Model) finishPlacement() tea.Cmd {
	spec, ok := gateCatalog[m.pendingGate]
	if !ok {
		m.focus = focusCircuit
		return nil
	}
	switch spec.Arity {
	case 1:
		placed := m.placeGate(m.pendingGate, []int{m.cursorQubit})
		m.focus = focusCircuit
		if placed {
			m.syncQASM()
			return m.recompute()
		}
	case 2:
		if m.circuit.NumQubits < 2 {
			m.statusMsg = "need at least 2 qubits"
			m.clearPending()
			m.focus = focusCircuit
			return nil
		}
		m.focus = focusSelectTarget
		m.targetQubit = m.nextFreeQubit(m.cursorQubit, -1)
	case 3:
		if m.circuit.NumQubits < 3 {
			m.statusMsg = "need at least 3 qubits"
			m.clearPending()
			m.focus = focusCircuit
			return nil
		}
		m.focus = focusSelectControl
		m.targetQubit = m.nextFreeQubit(m.cursorQubit, -1)
	}
	return nil
}

// nextFreeQubit picks a starting qubit different from the ones in use.
func (m *Model) nextFreeQubit(used ...int) int {
	inUse := make(map[int]bool, len(used))
	for _, q := range used {
		if q >= 0 {
			inUse[q] = true
		}
	}
	for q := 0; q < m.circuit.NumQubits; q++ {
		if !inUse[q] {
			return q
		}
	}
	return 0
}

// moveTarget moves the target-selection cursor up or down, skipping
// qubits already claimed by the pending gate.
func (m *Model) moveTarget(delta int, used ...int) {
	inUse := make(map[int]bool, len(used))
	for _, q := range used {
		if q >= 0 {
			inUse[q] = true
		}
	}
	for next := m.targetQubit + delta; next >= 0 && next < m.circuit.NumQubits; next += delta {
		if !inUse[next] {
			m.targetQubit = next
			return
		}
	}
}

// selectedGates returns the gates inside the current column selection.
func (m *Model) selectedGates() []GateInstance {
	if m.selAnchor < 0 {
		return nil
	}
	lo := min(m.selAnchor, m.cursorPos)
	hi := max(m.selAnchor, m.cursorPos)
	var out []GateInstance
	for _, g := range m.circuit.Gates {
		if g.Position >= lo && g.Position <= hi {
			out = append(out, g)
		}
	}
	return out
}

// exportFiles writes the three export artifacts next to the binary.
func (m *Model) exportFiles() {
	data, err := ExportJSON(m.circuit)
	if err == nil {
		err = os.WriteFile("circuit.json", data, 0644)
	}
	if err == nil {
		err = os.WriteFile("circuit.qasm", []byte(m.circuit.ExportQASM()), 0644)
	}
	if err == nil {
		err = os.WriteFile("circuit.py", []byte(m.circuit.ToQiskit()), 0644)
	}
	if err != nil {
		m.statusMsg = fmt.Sprintf("export error: %v", err)
		m.logger.Error("export", "err", err)
		return
	}
	m.statusMsg = "exported circuit.json, circuit.qasm, circuit.py"
}

// importFile replaces the circuit from circuit.json; the live circuit
// survives any failure untouched.
func (m *Model) importFile() tea.Cmd {
	data, err := os.ReadFile("circuit.json")
	if err == nil {
		var imported *Circuit
		imported, err = ImportJSON(data)
		if err == nil {
			m.circuit = imported
			m.clampCursor()
			m.syncQASM()
			m.statusMsg = "imported circuit.json"
			return m.recompute()
		}
	}
	m.statusMsg = fmt.Sprintf("import error: %v", err)
	m.logger.Error("import", "err", err)
	return nil
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return m.initCmd
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		ctrlH := 6
		circH := msg.Height - ctrlH - 4
		editorH := max(circH-8, 4)
		m.qasmEditor.SetHeight(editorH)

	case shotTickMsg:
		if msg.seq != m.shotSeq || m.state == nil {
			break // stale run; a newer circuit owns the panel now
		}
		start := time.Now()
		dist := Probabilities(m.state)
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		counts := SampleCounts(dist, m.prefs.Shots, rng)
		res := SummarizeCounts(counts, m.prefs.Shots, time.Since(start))
		m.shotResult = &res
		m.shotsRunning = false

	case tea.KeyMsg:
		key := msg.String()
		if m.focus != focusQASM {
			m.statusMsg = ""
		}

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			cmds = append(cmds, m.updateCircuitKeys(key)...)
		case focusMenu:
			cmds = append(cmds, m.updateMenuKeys(key)...)
		case focusSelectTarget, focusSelectControl:
			cmds = append(cmds, m.updateSelectKeys(key)...)
		case focusInputParam:
			cmds = append(cmds, m.updateParamKeys(key)...)
		case focusBackups:
			cmds = append(cmds, m.updateBackupKeys(key)...)
		case focusCustomGates:
			cmds = append(cmds, m.updateCustomGateKeys(key)...)
		case focusNameInput:
			cmds = append(cmds, m.updateNameKeys(key)...)
		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
				m.syncQASM()
				cmds = append(cmds, m.recompute())
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				before := m.circuit
				m.parseQASMInput()
				if m.circuit != before {
					cmds = append(cmds, m.recompute())
				}
			}
		}
	}

	if m.focus == focusCircuit && m.circuit != nil {
		switch msg.(type) {
		case tea.KeyMsg:
			m.clampCursor()
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateCircuitKeys(key string) []tea.Cmd {
	var cmds []tea.Cmd
	switch key {
	case "q":
		cmds = append(cmds, tea.Quit)
	case "tab":
		m.focus = focusQASM
		m.qasmEditor.Focus()
	case "up", "k":
		if m.cursorQubit > 0 {
			m.cursorQubit--
		}
	case "down", "j":
		if m.cursorQubit < m.circuit.NumQubits-1 {
			m.cursorQubit++
		}
	case "left", "h":
		if m.cursorPos > 0 {
			m.cursorPos--
		}
	case "right", "l":
		m.cursorPos++
	case "+", "=":
		if m.circuit.NumQubits < MaxQubits {
			m.circuit.SetNumQubits(m.circuit.NumQubits + 1)
			m.syncQASM()
			cmds = append(cmds, m.recompute())
		}
	case "-":
		if m.circuit.NumQubits > 1 {
			m.circuit.SetNumQubits(m.circuit.NumQubits - 1)
			m.clampCursor()
			m.syncQASM()
			cmds = append(cmds, m.recompute())
		}
	case "a":
		m.focus = focusMenu
		m.menuCat = 0
		m.menuItem = 0
	case "backspace", "delete":
		m.circuit.RemoveGateAt(m.cursorPos, m.cursorQubit)
		m.syncQASM()
		cmds = append(cmds, m.recompute())
	case "ctrl+r":
		m.circuit.Clear()
		m.cursorPos = 0
		m.selAnchor = -1
		m.syncQASM()
		cmds = append(cmds, m.recompute())
	case "1", "2", "3", "4":
		m.tab = viewTab(key[0] - '1')
	case "v":
		if m.selAnchor < 0 {
			m.selAnchor = m.cursorPos
		} else {
			m.selAnchor = -1
		}
	case "g":
		if len(m.selectedGates()) == 0 {
			m.statusMsg = "select gates first (v, then move)"
			break
		}
		m.naming = nameMacro
		m.nameInput = ""
		m.focus = focusNameInput
	case "G":
		gates, err := m.library.ListCustomGates()
		if err != nil {
			m.statusMsg = fmt.Sprintf("custom gates: %v", err)
			break
		}
		if len(gates) == 0 {
			m.statusMsg = "no custom gates saved yet"
			break
		}
		m.customGates = gates
		m.customIdx = 0
		m.focus = focusCustomGates
	case "ctrl+s":
		m.naming = nameBackup
		m.nameInput = ""
		m.focus = focusNameInput
	case "o":
		backups, err := m.library.ListBackups()
		if err != nil {
			m.statusMsg = fmt.Sprintf("backups: %v", err)
			break
		}
		if len(backups) == 0 {
			m.statusMsg = "no backups saved yet"
			break
		}
		m.backups = backups
		m.backupIdx = 0
		m.focus = focusBackups
	case "ctrl+e":
		m.exportFiles()
	case "ctrl+o":
		cmds = append(cmds, m.importFile())
	case "t":
		if m.prefs.Theme == "dark" {
			m.prefs.Theme = "light"
		} else {
			m.prefs.Theme = "dark"
		}
		applyTheme(m.prefs.Theme)
		if err := m.library.SavePreferences(m.prefs); err != nil {
			m.logger.Warn("save preferences", "err", err)
		}
	}
	return cmds
}

func (m *Model) updateMenuKeys(key string) []tea.Cmd {
	switch key {
	case "esc":
		m.focus = focusCircuit
	case "up", "k":
		if m.menuItem > 0 {
			m.menuItem--
		}
	case "down", "j":
		if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
			m.menuItem++
		}
	case "left", "h":
		if m.menuCat > 0 {
			m.menuCat--
			m.menuItem = 0
		}
	case "right", "l":
		if m.menuCat < len(gateMenu)-1 {
			m.menuCat++
			m.menuItem = 0
		}
	case "enter":
		item := gateMenu[m.menuCat].items[m.menuItem]
		m.pendingGate = item.gateName
		m.pendingControl = -1
		if IsParameterizedGate(item.gateName) {
			m.paramInput = ""
			m.focus = focusInputParam
			return nil
		}
		return []tea.Cmd{m.finishPlacement()}
	}
	return nil
}

func (m *Model) updateSelectKeys(key string) []tea.Cmd {
	var cmds []tea.Cmd
	used := []int{m.cursorQubit, m.pendingControl}
	switch key {
	case "esc":
		m.clearPending()
		m.focus = focusCircuit
	case "up", "k":
		m.moveTarget(-1, used...)
	case "down", "j":
		m.moveTarget(1, used...)
	case "enter":
		if m.focus == focusSelectControl {
			m.pendingControl = m.targetQubit
			m.focus = focusSelectTarget
			m.targetQubit = m.nextFreeQubit(m.cursorQubit, m.pendingControl)
			break
		}
		qubits := []int{m.cursorQubit}
		if m.pendingControl >= 0 {
			qubits = append(qubits, m.pendingControl)
		}
		qubits = append(qubits, m.targetQubit)
		m.placeGate(m.pendingGate, qubits)
		m.focus = focusCircuit
		m.syncQASM()
		cmds = append(cmds, m.recompute())
	}
	return cmds
}

func (m *Model) updateParamKeys(key string) []tea.Cmd {
	switch key {
	case "esc":
		m.clearPending()
		m.focus = focusCircuit
	case "backspace":
		if len(m.paramInput) > 0 {
			m.paramInput = m.paramInput[:len(m.paramInput)-1]
		}
	case "enter":
		if m.paramInput != "" {
			if _, ok := parseParamList(m.paramInput); !ok {
				m.statusMsg = "invalid parameter, use numbers or pi expressions (pi/2, 3*pi/4)"
				return nil
			}
		}
		return []tea.Cmd{m.finishPlacement()}
	default:
		if len(key) == 1 && strings.ContainsAny(key, "0123456789.,-eE+pi*/") {
			m.paramInput += key
		}
	}
	return nil
}

func (m *Model) updateBackupKeys(key string) []tea.Cmd {
	var cmds []tea.Cmd
	switch key {
	case "esc":
		m.focus = focusCircuit
	case "up", "k":
		if m.backupIdx > 0 {
			m.backupIdx--
		}
	case "down", "j":
		if m.backupIdx < len(m.backups)-1 {
			m.backupIdx++
		}
	case "d":
		b := m.backups[m.backupIdx]
		if err := m.library.DeleteBackup(b.ID); err != nil {
			m.statusMsg = fmt.Sprintf("delete backup: %v", err)
			break
		}
		m.backups = append(m.backups[:m.backupIdx], m.backups[m.backupIdx+1:]...)
		if m.backupIdx >= len(m.backups) {
			m.backupIdx = max(len(m.backups)-1, 0)
		}
		if len(m.backups) == 0 {
			m.focus = focusCircuit
		}
	case "enter":
		b := m.backups[m.backupIdx]
		restored, err := m.library.LoadBackup(b.ID)
		if err != nil {
			m.statusMsg = fmt.Sprintf("load backup: %v", err)
			m.focus = focusCircuit
			break
		}
		m.circuit = restored
		m.cursorPos = 0
		m.selAnchor = -1
		m.clampCursor()
		m.syncQASM()
		m.statusMsg = fmt.Sprintf("restored %q", b.Name)
		m.focus = focusCircuit
		cmds = append(cmds, m.recompute())
	}
	return cmds
}

func (m *Model) updateCustomGateKeys(key string) []tea.Cmd {
	var cmds []tea.Cmd
	switch key {
	case "esc":
		m.focus = focusCircuit
	case "up", "k":
		if m.customIdx > 0 {
			m.customIdx--
		}
	case "down", "j":
		if m.customIdx < len(m.customGates)-1 {
			m.customIdx++
		}
	case "enter":
		cg := m.customGates[m.customIdx]
		if err := ApplyCustomGate(m.circuit, cg, m.cursorPos); err != nil {
			m.statusMsg = err.Error()
			m.focus = focusCircuit
			break
		}
		m.statusMsg = fmt.Sprintf("applied %q", cg.Name)
		m.focus = focusCircuit
		m.syncQASM()
		cmds = append(cmds, m.recompute())
	}
	return cmds
}

func (m *Model) updateNameKeys(key string) []tea.Cmd {
	var cmds []tea.Cmd
	switch key {
	case "esc":
		m.nameInput = ""
		m.focus = focusCircuit
	case "backspace":
		if len(m.nameInput) > 0 {
			m.nameInput = m.nameInput[:len(m.nameInput)-1]
		}
	case "enter":
		name := strings.TrimSpace(m.nameInput)
		if name == "" {
			m.statusMsg = "name cannot be empty"
			return cmds
		}
		switch m.naming {
		case nameBackup:
			if _, err := m.library.SaveBackup(name, "", m.circuit); err != nil {
				m.statusMsg = fmt.Sprintf("save backup: %v", err)
			} else {
				m.statusMsg = fmt.Sprintf("saved backup %q", name)
			}
		case nameMacro:
			initial := strings.ToUpper(name)
			if len(initial) > 4 {
				initial = initial[:4]
			}
			if _, err := m.library.CreateCustomGate(name, initial, "", m.selectedGates()); err != nil {
				m.statusMsg = fmt.Sprintf("save custom gate: %v", err)
			} else {
				m.statusMsg = fmt.Sprintf("saved custom gate %q", name)
				m.selAnchor = -1
			}
		}
		m.nameInput = ""
		m.focus = focusCircuit
	default:
		if len(key) == 1 {
			m.nameInput += key
		}
	}
	return cmds
}

// ──────────────────────────── View ────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sideWidth := m.width / 3
	circuitWidth := m.width - sideWidth - 4
	controlsHeight := 6
	panelHeight := max(m.height-controlsHeight-2, 6)
	halfH := panelHeight / 2

	circuitPanel := m.renderCircuitPanel(circuitWidth, panelHeight)
	resultsPanel := m.renderSidePanel(sideWidth, halfH)
	qasmPanel := m.renderQASMPanel(sideWidth, panelHeight-halfH)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	sideColumn := lipgloss.JoinVertical(lipgloss.Left, resultsPanel, qasmPanel)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, sideColumn)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusInputParam:
		frame = overlayAt(frame, m.renderParamInput(), 2, 2)
	case focusBackups:
		frame = overlayAt(frame, m.renderBackupList(), 2, 2)
	case focusCustomGates:
		frame = overlayAt(frame, m.renderCustomGateList(), 2, 2)
	case focusNameInput:
		frame = overlayAt(frame, m.renderNameInput(), 2, 2)
	}

	return frame
}

// renderParamInput renders the parameter input overlay.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Enter Parameter"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%s: %s_", m.pendingGate, m.paramInput)
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Examples: pi/2, 3*pi/4, 1.57  (empty = pi/2)"))
	return menuBorderStyle.Render(sb.String())
}

// renderNameInput renders the backup/macro naming overlay.
func (m Model) renderNameInput() string {
	var sb strings.Builder
	title := "Save Backup"
	if m.naming == nameMacro {
		title = "Save Custom Gate"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Name: %s_", m.nameInput)
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("⏎ Save  Esc ✕"))
	return menuBorderStyle.Render(sb.String())
}

// renderBackupList renders the saved-backups overlay.
func (m Model) renderBackupList() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Backups"))
	sb.WriteString("\n\n")
	for i, b := range m.backups {
		line := fmt.Sprintf("%-20s %2d gates  %s",
			b.Name, len(b.Gates), b.Created.Format("Jan 2 15:04"))
		if i == m.backupIdx {
			sb.WriteString(menuSelectedStyle.Render("▸ " + line))
		} else {
			sb.WriteString(menuNormalStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("↑↓ Select  ⏎ Restore  d Delete  Esc ✕"))
	return menuBorderStyle.Render(sb.String())
}

// renderCustomGateList renders the saved-macros overlay.
func (m Model) renderCustomGateList() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Custom Gates"))
	sb.WriteString("\n\n")
	for i, cg := range m.customGates {
		line := fmt.Sprintf("%-4s %-16s %d qubits, %d gates",
			cg.Initial, cg.Name, cg.NumQubits, len(cg.Gates))
		if i == m.customIdx {
			sb.WriteString(menuSelectedStyle.Render("▸ " + line))
		} else {
			sb.WriteString(menuNormalStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("↑↓ Select  ⏎ Apply at cursor  Esc ✕"))
	return menuBorderStyle.Render(sb.String())
}
