package qtranspile

import (
	"fmt"
	"strings"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

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

// gateDisplayName returns a short display name for an operation kind.
func gateDisplayName(kind OpKind) string {
	switch kind {
	case OpMeasure:
		return "M"
	case OpReset:
		return "|0>"
	default:
		return strings.ToUpper(string(kind))
	}
}

// pauliCellName labels one wire of a Pauli-based operation: the
// rotation level plus the Pauli letter on that qubit, with the sign
// shown on the first support qubit.
func pauliCellName(op Operation, q int, first bool) string {
	level := map[OpKind]string{
		OpTPauli: "T", OpSPauli: "S", OpZPauli: "Z", OpMPauli: "M",
	}[op.Kind]
	name := level + ":" + string(op.Pauli.Letter(q))
	if first && op.Pauli.Negative() {
		name = "-" + name
	}
	return name
}

// controlSymbol returns the wire symbol for the control qubit of a two-qubit gate.
func controlSymbol(kind OpKind) string {
	if kind == OpSWAP {
		return "×"
	}
	return "●"
}

// targetSymbol returns the wire symbol for the target qubit of a two-qubit gate.
func targetSymbol(kind OpKind) string {
	switch kind {
	case OpCZ:
		return "●"
	case OpSWAP:
		return "×"
	default:
		return "⊕"
	}
}

// Render draws the circuit as one text line per qubit wire.
// Each operation goes into the earliest column free on its qubits; a
// multi-qubit operation also claims the wires between its extreme
// qubits, so columns need not match the layers Depth counts.
func Render(c *Circuit) string {
	if c.NumQubits == 0 {
		return dimStyle.Render("(no qubits)")
	}

	type cell struct {
		text    string
		through bool
	}
	front := make([]int, c.NumQubits)
	var grid [][]cell // grid[col][qubit]

	place := func(qubits []int, texts []string) {
		col := 0
		for _, q := range qubits {
			col = max(col, front[q])
		}
		for col >= len(grid) {
			grid = append(grid, make([]cell, c.NumQubits))
		}
		lo, hi := qubits[0], qubits[0]
		for _, q := range qubits {
			lo, hi = min(lo, q), max(hi, q)
		}
		for i, q := range qubits {
			grid[col][q] = cell{text: texts[i]}
			front[q] = col + 1
		}
		// Mark pass-through wires between the extremes.
		for q := lo + 1; q < hi; q++ {
			if grid[col][q].text == "" {
				grid[col][q] = cell{through: true}
				front[q] = col + 1
			}
		}
	}

	for _, op := range c.Ops {
		switch {
		case op.Kind == OpBarrier:
			qubits := op.Qubits
			if len(qubits) == 0 {
				qubits = allQubits(c.NumQubits)
			}
			texts := make([]string, len(qubits))
			for i := range texts {
				texts[i] = "░"
			}
			place(qubits, texts)
		case op.IsPauliBased():
			support := op.Pauli.Support()
			if len(support) == 0 {
				continue
			}
			texts := make([]string, len(support))
			for i, q := range support {
				texts[i] = pauliCellName(op, q, i == 0)
			}
			place(support, texts)
		case op.Kind == OpCX || op.Kind == OpCZ || op.Kind == OpSWAP:
			place(op.Qubits, []string{controlSymbol(op.Kind), targetSymbol(op.Kind)})
		case op.Kind == OpCCX:
			place(op.Qubits, []string{"●", "●", "⊕"})
		case op.IsRotation():
			place(op.Qubits, []string{fmt.Sprintf("%s(%s)", gateDisplayName(op.Kind), formatAngle(op.Theta))})
		default:
			place(op.Qubits, []string{gateDisplayName(op.Kind)})
		}
	}

	widths := make([]int, len(grid))
	for col := range grid {
		w := 3
		for q := range grid[col] {
			if l := len(grid[col][q].text) + 2; l > w {
				w = l
			}
		}
		widths[col] = w
	}

	var sb strings.Builder
	for q := 0; q < c.NumQubits; q++ {
		sb.WriteString(qubitLabelStyle.Render(fmt.Sprintf("q[%d]: ", q)))
		for col := range grid {
			cl := grid[col][q]
			switch {
			case cl.text != "":
				sb.WriteString(gateStyle.Render(padCenter(cl.text, widths[col])))
			case cl.through:
				sb.WriteString(dimStyle.Render(padCenter("┼", widths[col])))
			default:
				sb.WriteString(dimStyle.Render(strings.Repeat("─", widths[col])))
			}
			sb.WriteString(dimStyle.Render("─"))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
