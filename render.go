package main

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

const (
	labelVisualW = 7 // visual width of qubit label area
	gateBoxW     = 7 // ┤ + gateNameW + ├
)

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// gateDisplayName returns the short name drawn inside a gate box.
func gateDisplayName(name string) string {
	switch name {
	case "SDG":
		return "S†"
	case "TDG":
		return "T†"
	default:
		return name
	}
}

// wireSymbol returns the glyph drawn on a qubit wire for one slot of a
// multi-qubit gate.
func wireSymbol(name string, isControl bool) string {
	if name == "SWAP" {
		return "×"
	}
	if isControl {
		return "●"
	}
	switch name {
	case "CZ":
		return "●"
	case "CY":
		return "Y"
	default:
		return "⊕"
	}
}

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate        *GateInstance
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

// cellInfoAt returns rendering information for the cell at (position, qubit).
func (c *Circuit) cellInfoAt(position, qubit int) cellInfo {
	var info cellInfo

	if gate := c.GateAt(position, qubit); gate != nil {
		info.gate = gate
		if len(gate.Qubits) > 1 {
			for _, ctrl := range gate.Controls() {
				if ctrl == qubit {
					info.isControl = true
				}
			}
			// SWAP has no controls; both slots render as targets.
			info.isTarget = !info.isControl
		}
	}

	// Vertical connectors for multi-qubit gates spanning this qubit.
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Position != position || len(g.Qubits) < 2 {
			continue
		}
		minQ, maxQ := g.Qubits[0], g.Qubits[0]
		for _, q := range g.Qubits {
			minQ = min(minQ, q)
			maxQ = max(maxQ, q)
		}
		if qubit >= minQ && qubit <= maxQ {
			if qubit > minQ {
				info.vertAbove = true
			}
			if qubit < maxQ {
				info.vertBelow = true
			}
			if qubit > minQ && qubit < maxQ && info.gate == nil {
				info.passThrough = true
			}
		}
	}

	return info
}

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
	hlTargetSelect
	hlSelection
)

// renderCell returns 3 lines (top, mid, bot) for a single cell, each
// exactly cellW visible characters wide.
func renderCell(info cellInfo, hl cellHighlight) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	// ── Highlighted cell (cursor or target selection) ──
	if hl == hlCursor || hl == hlTargetSelect {
		bdr := cursorBoxStyle
		if hl == hlTargetSelect {
			bdr = targetSelectStyle
		}
		innerW := cellW - 2
		inDashL := (innerW - 1) / 2
		inDashR := innerW - inDashL - 1

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case info.gate != nil && (info.isControl || info.isTarget):
			sym := wireSymbol(info.gate.Name, info.isControl)
			mid = bdr.Render("║") + strings.Repeat("─", inDashL) + gateStyle.Render(sym) + strings.Repeat("─", inDashR) + bdr.Render("║")
		case info.gate != nil:
			name := padCenter(gateDisplayName(info.gate.Name), gateNameW)
			mid = bdr.Render("║") + "─┤" + gateStyle.Render(name) + "├─" + bdr.Render("║")
		case info.passThrough:
			mid = bdr.Render("║") + strings.Repeat("─", inDashL) + "┼" + strings.Repeat("─", inDashR) + bdr.Render("║")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	// ── Normal cells ──
	switch {
	case info.gate != nil && (info.isControl || info.isTarget):
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		sym := wireSymbol(info.gate.Name, info.isControl)
		mid = strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}

	case info.gate != nil:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(gateDisplayName(info.gate.Name), gateNameW)
		style := gateStyle
		if hl == hlSelection {
			style = selectionStyle
		}
		top = strings.Repeat(" ", margin) + style.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + style.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + style.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow

	default:
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", cellW)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}
	}
	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s  %s\n\n",
		titleStyle.Render("Circuit"),
		dimStyle.Render(fmt.Sprintf("depth %d · cost %d", m.circuit.Depth(), m.circuit.QuantumCost())))

	availWidth := width - labelVisualW - 4
	maxCols := max(availWidth/cellW, 1)
	startPos := 0
	if m.cursorPos >= maxCols {
		startPos = m.cursorPos - maxCols + 1
	}

	header := strings.Repeat(" ", labelVisualW)
	for pos := startPos; pos < startPos+maxCols; pos++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", pos), cellW))
	}
	sb.WriteString(header + "\n")

	for qubit := 0; qubit < m.circuit.NumQubits; qubit++ {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for pos := startPos; pos < startPos+maxCols; pos++ {
			info := m.circuit.cellInfoAt(pos, qubit)

			hl := hlNone
			switch {
			case pos == m.cursorPos && qubit == m.cursorQubit &&
				(m.focus == focusCircuit || m.focus == focusMenu || m.focus == focusSelectTarget || m.focus == focusSelectControl):
				hl = hlCursor
			case pos == m.cursorPos && qubit == m.targetQubit &&
				(m.focus == focusSelectTarget || m.focus == focusSelectControl):
				hl = hlTargetSelect
			case m.selAnchor >= 0 && pos >= min(m.selAnchor, m.cursorPos) && pos <= max(m.selAnchor, m.cursorPos):
				hl = hlSelection
			}

			top, mid, bot := renderCell(info, hl)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	sb.WriteString("\n")
	switch m.focus {
	case focusSelectTarget:
		fmt.Fprintf(&sb, "  %s  Select target qubit: %s%s",
			activeTabStyle.Render(m.pendingGate),
			targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)),
			dimStyle.Render("   ↑↓ Move  ⏎ Confirm  Esc ✕"))
	case focusSelectControl:
		fmt.Fprintf(&sb, "  %s  Select second control: %s%s",
			activeTabStyle.Render(m.pendingGate),
			targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)),
			dimStyle.Render("   ↑↓ Move  ⏎ Confirm  Esc ✕"))
	default:
		fmt.Fprintf(&sb, "  q[%d] · col %d", m.cursorQubit, m.cursorPos)
		if m.selAnchor >= 0 {
			fmt.Fprintf(&sb, "  │  selecting cols %d–%d",
				min(m.selAnchor, m.cursorPos), max(m.selAnchor, m.cursorPos))
		}
		if m.statusMsg != "" {
			fmt.Fprintf(&sb, "  │  %s", activeTabStyle.Render(m.statusMsg))
		}
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

var viewTabNames = []string{"Probabilities", "Amplitudes", "Bloch", "Counts"}

// renderSidePanel renders the tabbed results panel.
func (m Model) renderSidePanel(width, height int) string {
	var sb strings.Builder

	for i, name := range viewTabNames {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		if viewTab(i) == m.tab {
			sb.WriteString(activeTabStyle.Render(label))
		} else {
			sb.WriteString(dimStyle.Render(label))
		}
	}
	sb.WriteString("\n\n")

	innerW := max(width-6, 20)
	switch {
	case m.simErr != nil:
		sb.WriteString(titleStyle.Render("Simulation error"))
		sb.WriteString("\n" + m.simErr.Error())
	case m.state == nil:
		sb.WriteString(dimStyle.Render("no state"))
	default:
		switch m.tab {
		case tabProbs:
			sb.WriteString(m.renderProbTab(innerW))
		case tabAmps:
			sb.WriteString(m.renderAmpTab(innerW))
		case tabBloch:
			sb.WriteString(m.renderBlochTab(innerW))
		case tabCounts:
			sb.WriteString(m.renderCountsTab(innerW))
		}
	}

	return sideStyle.Width(width).Height(height).Render(sb.String())
}

// probBar renders a horizontal bar scaled to width.
func probBar(p float64, width int) string {
	filled := int(math.Round(p * float64(width)))
	filled = max(min(filled, width), 0)
	return gateStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) renderProbTab(width int) string {
	var sb strings.Builder

	series := make([]float64, len(m.state.Amplitudes))
	for i := range series {
		series[i] = m.state.Probability(i)
	}
	sb.WriteString(asciigraph.Plot(series,
		asciigraph.Height(5),
		asciigraph.Width(min(width, 48)),
		asciigraph.Caption("P over basis index")))
	sb.WriteString("\n\n")

	dist := Probabilities(m.state)
	sort.Slice(dist, func(i, j int) bool { return dist[i].Prob > dist[j].Prob })
	barW := max(width-20, 8)
	for i, d := range dist {
		if i >= 8 {
			fmt.Fprintf(&sb, "%s\n", dimStyle.Render(fmt.Sprintf("… %d more", len(dist)-i)))
			break
		}
		fmt.Fprintf(&sb, "|%s⟩ %6.3f %s\n", d.Bits, d.Prob, probBar(d.Prob, barW))
	}
	return sb.String()
}

func (m Model) renderAmpTab(width int) string {
	var sb strings.Builder
	sb.WriteString(dimStyle.Render("state    magnitude   phase") + "\n")
	for i, a := range Amplitudes(m.state) {
		if i >= 12 {
			sb.WriteString(dimStyle.Render("…") + "\n")
			break
		}
		fmt.Fprintf(&sb, "|%s⟩ %9.4f %+7.1f°  %s\n",
			a.Bits, a.Magnitude, a.Phase*180/math.Pi,
			dimStyle.Render(fmt.Sprintf("(%.3f%+.3fi)", real(a.Amplitude), imag(a.Amplitude))))
	}
	return sb.String()
}

func (m Model) renderBlochTab(width int) string {
	var sb strings.Builder
	sb.WriteString(dimStyle.Render("per-qubit reduced state") + "\n\n")
	for q := 0; q < m.state.NumQubits; q++ {
		v := BlochAngles(m.state, q)
		r := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
		note := ""
		if r < 0.999 {
			note = dimStyle.Render("  mixed")
		}
		fmt.Fprintf(&sb, "%s  θ %6.1f°  φ %7.1f°  r %.2f%s\n",
			qubitLabelStyle.Render(fmt.Sprintf("q[%d]", q)),
			v.Theta*180/math.Pi, v.Phi*180/math.Pi, r, note)
	}
	return sb.String()
}

func (m Model) renderCountsTab(width int) string {
	var sb strings.Builder
	if m.shotsRunning || m.shotResult == nil {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("sampling %d shots…", m.prefs.Shots)))
		return sb.String()
	}

	res := m.shotResult
	type entry struct {
		bits  string
		count int
	}
	entries := make([]entry, 0, len(res.Counts))
	for bits, n := range res.Counts {
		entries = append(entries, entry{bits, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].bits < entries[j].bits
	})

	barW := max(width-22, 8)
	for i, e := range entries {
		if i >= 8 {
			fmt.Fprintf(&sb, "%s\n", dimStyle.Render(fmt.Sprintf("… %d more", len(entries)-i)))
			break
		}
		fmt.Fprintf(&sb, "|%s⟩ %5d %s\n", e.bits, e.count,
			probBar(float64(e.count)/float64(res.Shots), barW))
	}
	fmt.Fprintf(&sb, "\n%s\n", dimStyle.Render(fmt.Sprintf(
		"shots %d · entropy %.3f bits · %d effective · %s",
		res.Shots, res.Entropy, res.EffectiveStates, res.Elapsed.Round(time.Microsecond))))
	return sb.String()
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	return sideStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeTabStyle.Render("Move "))
	sb.WriteString("↑↓←→/hjkl  ")
	sb.WriteString(activeTabStyle.Render("a"))
	sb.WriteString(" add  ")
	sb.WriteString(activeTabStyle.Render("⌫"))
	sb.WriteString(" delete  ")
	sb.WriteString(activeTabStyle.Render("+/-"))
	sb.WriteString(" qubits  ")
	sb.WriteString(activeTabStyle.Render("1-4"))
	sb.WriteString(" views  ")
	sb.WriteString(activeTabStyle.Render("v"))
	sb.WriteString(" select  ")
	sb.WriteString(activeTabStyle.Render("g"))
	sb.WriteString(" macro  ")
	sb.WriteString(activeTabStyle.Render("Tab"))
	sb.WriteString(" qasm\n")

	sb.WriteString(activeTabStyle.Render("^S"))
	sb.WriteString(" backup  ")
	sb.WriteString(activeTabStyle.Render("o"))
	sb.WriteString(" backups  ")
	sb.WriteString(activeTabStyle.Render("G"))
	sb.WriteString(" macros  ")
	sb.WriteString(activeTabStyle.Render("^E"))
	sb.WriteString(" export  ")
	sb.WriteString(activeTabStyle.Render("^O"))
	sb.WriteString(" import  ")
	sb.WriteString(activeTabStyle.Render("^R"))
	sb.WriteString(" clear  ")
	sb.WriteString(activeTabStyle.Render("t"))
	sb.WriteString(" theme  ")
	sb.WriteString(activeTabStyle.Render("q"))
	sb.WriteString(" quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay on top of the background at (x, y),
// tracking visible columns across ANSI escape sequences.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces visible columns starting at x in bgLine with the
// overlay content, preserving escape sequences in the prefix.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix strings.Builder
	var suffix strings.Builder

	col := 0
	i := 0

	// Prefix: everything up to visible column x.
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				r := runes[i]
				i++
				if r != '\x1b' && r != '[' && ((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
					break
				}
			}
		} else {
			prefix.WriteRune(runes[i])
			col++
			i++
		}
	}
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip ovWidth visible columns of the background.
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				r := runes[i]
				i++
				if r != '\x1b' && r != '[' && ((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
					break
				}
			}
		} else {
			skipped++
			i++
		}
	}

	for i < len(runes) {
		suffix.WriteRune(runes[i])
		i++
	}

	return prefix.String() + overlay + suffix.String()
}

// visibleLen counts visible (non-escape) characters.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
