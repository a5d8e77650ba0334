package main

import (
	"fmt"
	"strings"
)

// qiskitMethod maps catalogue names to qiskit QuantumCircuit methods.
var qiskitMethod = map[string]string{
	"H": "h", "X": "x", "Y": "y", "Z": "z",
	"S": "s", "SDG": "sdg", "T": "t", "TDG": "tdg",
	"RX": "rx", "RY": "ry", "RZ": "rz", "U3": "u",
	"CX": "cx", "CY": "cy", "CZ": "cz",
	"SWAP": "swap", "CCX": "ccx",
}

// ToQiskit renders the circuit as a runnable qiskit-style Python script.
// The same unknown-gate contract as QASM export applies: unmapped names
// become explicit comment lines, never silent omissions.
func (c *Circuit) ToQiskit() string {
	var sb strings.Builder
	sb.WriteString("from math import pi\n")
	sb.WriteString("from qiskit import QuantumCircuit\n\n")
	fmt.Fprintf(&sb, "qc = QuantumCircuit(%d, %d)\n", c.NumQubits, c.NumQubits)

	for _, g := range c.Ordered() {
		method, ok := qiskitMethod[g.Name]
		if !ok {
			fmt.Fprintf(&sb, "# unsupported gate: %s %s\n", g.Name, qubitList(g.Qubits))
			continue
		}
		var args []string
		for _, p := range g.Params {
			args = append(args, formatParam(p))
		}
		for _, q := range g.Qubits {
			args = append(args, fmt.Sprintf("%d", q))
		}
		fmt.Fprintf(&sb, "qc.%s(%s)\n", method, strings.Join(args, ", "))
	}

	if len(c.Measurements) > 0 {
		for _, m := range c.Measurements {
			fmt.Fprintf(&sb, "qc.measure(%d, %d)\n", m.Qubit, m.Bit)
		}
	} else {
		sb.WriteString("qc.measure_all()\n")
	}
	sb.WriteString("\nprint(qc)\n")
	return sb.String()
}
