package main

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	cellW     = 11 // width of each position column in characters
	gateNameW = 5  // width of gate name inside box
)

// theme is a named color palette.
type theme struct {
	border1, border2, border3     string
	title, cursor, accent         string
	label, gate, dim, normal, sel string
}

var themes = map[string]theme{
	"dark": {
		border1: "#7aa2f7", border2: "#bb9af7", border3: "#9ece6a",
		title: "#ff9e64", cursor: "#ff9e64", accent: "#e0af68",
		label: "#7dcfff", gate: "#73daca", dim: "#565f89",
		normal: "#c0caf5", sel: "#bb9af7",
	},
	"light": {
		border1: "#2e7de9", border2: "#9854f1", border3: "#587539",
		title: "#b15c00", cursor: "#b15c00", accent: "#8c6c3e",
		label: "#007197", gate: "#118c74", dim: "#8990b3",
		normal: "#3760bf", sel: "#9854f1",
	},
}

// Lipgloss styles used across the TUI; applyTheme rebuilds them.
var (
	circuitStyle      lipgloss.Style
	sideStyle         lipgloss.Style
	controlsStyle     lipgloss.Style
	titleStyle        lipgloss.Style
	cursorBoxStyle    lipgloss.Style
	targetSelectStyle lipgloss.Style
	activeTabStyle    lipgloss.Style
	qubitLabelStyle   lipgloss.Style
	gateStyle         lipgloss.Style
	dimStyle          lipgloss.Style
	menuBorderStyle   lipgloss.Style
	menuSelectedStyle lipgloss.Style
	menuNormalStyle   lipgloss.Style
	selectionStyle    lipgloss.Style
)

func applyTheme(name string) {
	t, ok := themes[name]
	if !ok {
		t = themes["dark"]
	}

	circuitStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.border1)).
		Padding(1)

	sideStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.border2)).
		Padding(1)

	controlsStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.border3)).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.title))

	cursorBoxStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.cursor)).
		Bold(true)

	targetSelectStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.sel)).
		Bold(true)

	activeTabStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.accent))

	qubitLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.label))

	gateStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.gate))

	dimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.dim))

	menuBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.cursor)).
		Padding(0, 1)

	menuSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.cursor))

	menuNormalStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.normal))

	selectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.sel))
}

func init() {
	applyTheme("dark")
}
