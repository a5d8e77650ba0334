package main

import (
	"fmt"
	"strings"
)

// menuItem is a single gate choice in the picker.
type menuItem struct {
	gateName  string
	paramHint string // example parameter input, empty when none
}

// menuCategory groups related items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the picker tabs. Every entry must exist in the gate
// catalogue; label, symbol and arity come from there.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{gateName: "H"},
			{gateName: "X"},
			{gateName: "Y"},
			{gateName: "Z"},
			{gateName: "S"},
			{gateName: "SDG"},
			{gateName: "T"},
			{gateName: "TDG"},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{gateName: "RX", paramHint: "pi/2"},
			{gateName: "RY", paramHint: "pi/2"},
			{gateName: "RZ", paramHint: "pi/2"},
			{gateName: "U3", paramHint: "theta,phi,lambda"},
		},
	},
	{
		name: "Multi Qubit",
		items: []menuItem{
			{gateName: "CX"},
			{gateName: "CY"},
			{gateName: "CZ"},
			{gateName: "SWAP"},
			{gateName: "CCX"},
		},
	},
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeTabStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		spec := gateCatalog[item.gateName]
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", spec.Label)))
			sb.WriteString(gateStyle.Render(spec.Symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", spec.Label)))
			sb.WriteString(dimStyle.Render(spec.Symbol))
		}
		if spec.Arity > 1 {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if spec.NumParams > 0 {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.paramHint)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
