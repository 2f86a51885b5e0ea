package qtranspile

import (
	"fmt"
	"sort"
	"strings"
)

// Circuit holds an ordered operation sequence over a fixed qubit
// register plus a small classical register for measurement results.
type Circuit struct {
	NumQubits int
	NumCbits  int
	Ops       []Operation
}

// NewCircuit creates an empty circuit with fixed register sizes.
func NewCircuit(numQubits, numCbits int) *Circuit {
	return &Circuit{NumQubits: numQubits, NumCbits: numCbits}
}

// Clone returns a deep copy of the circuit.
func (c *Circuit) Clone() *Circuit {
	ops := make([]Operation, len(c.Ops))
	copy(ops, c.Ops)
	for i := range ops {
		if len(ops[i].Qubits) > 0 {
			q := make([]int, len(ops[i].Qubits))
			copy(q, ops[i].Qubits)
			ops[i].Qubits = q
		}
		if ops[i].IsPauliBased() {
			ops[i].Pauli = ops[i].Pauli.Clone()
		}
	}
	return &Circuit{NumQubits: c.NumQubits, NumCbits: c.NumCbits, Ops: ops}
}

// Append validates and appends an operation. It enforces the register
// bounds and the PBC exclusivity invariant: Pauli-based operations
// never coexist with standard operations other than barriers and cx.
func (c *Circuit) Append(op Operation) error {
	for _, q := range op.Qubits {
		if q < 0 || q >= c.NumQubits {
			return &MalformedInputError{Detail: fmt.Sprintf("qubit index %d out of range for %d qubits", q, c.NumQubits)}
		}
	}
	if op.Kind == OpMeasure && (op.Cbit < 0 || op.Cbit >= c.NumCbits) {
		return &MalformedInputError{Detail: fmt.Sprintf("classical bit index %d out of range for %d bits", op.Cbit, c.NumCbits)}
	}
	if op.IsPauliBased() {
		if op.Pauli.NumQubits() != c.NumQubits {
			return &MalformedInputError{Detail: fmt.Sprintf("pauli string length %d does not match %d qubits", op.Pauli.NumQubits(), c.NumQubits)}
		}
		if c.hasStandardOps() {
			return &InvariantViolationError{Detail: "pauli-based operation appended to a standard circuit"}
		}
	} else if op.Kind != OpBarrier && op.Kind != OpCX && c.hasPauliOps() {
		// cx is exempt: the PBC conversion may preserve it verbatim.
		return &InvariantViolationError{Detail: "standard operation appended to a pauli-based circuit"}
	}
	c.Ops = append(c.Ops, op)
	return nil
}

// MustAppend appends and panics on invariant failure. Reserved for
// internal construction where operands are already validated.
func (c *Circuit) MustAppend(op Operation) {
	if err := c.Append(op); err != nil {
		panic(err)
	}
}

func (c *Circuit) hasPauliOps() bool {
	for _, op := range c.Ops {
		if op.IsPauliBased() {
			return true
		}
	}
	return false
}

func (c *Circuit) hasStandardOps() bool {
	for _, op := range c.Ops {
		if !op.IsPauliBased() && op.Kind != OpBarrier && op.Kind != OpCX {
			return true
		}
	}
	return false
}

// IsCliffordT reports whether every operation is drawn from
// {H, S, Sdg, T, Tdg, X, Y, Z, CX, measure, reset, barrier}.
func (c *Circuit) IsCliffordT() bool {
	for _, op := range c.Ops {
		switch op.Kind {
		case OpH, OpS, OpSDG, OpT, OpTDG, OpX, OpY, OpZ, OpCX,
			OpMeasure, OpReset, OpBarrier:
		default:
			return false
		}
	}
	return true
}

// IsPBC reports whether every operation is Pauli-based, a barrier, or a
// preserved CX.
func (c *Circuit) IsPBC() bool {
	for _, op := range c.Ops {
		switch {
		case op.IsPauliBased():
		case op.Kind == OpBarrier || op.Kind == OpCX:
		default:
			return false
		}
	}
	return true
}

// CountOps returns the number of operations per kind, keyed by the
// QASM mnemonic. Empty circuits return an empty map.
func (c *Circuit) CountOps() map[string]int {
	counts := make(map[string]int)
	for _, op := range c.Ops {
		counts[string(op.Kind)]++
	}
	return counts
}

// TCount returns the number of T/Tdg gates plus t_pauli rotations.
func (c *Circuit) TCount() int {
	n := 0
	for _, op := range c.Ops {
		switch op.Kind {
		case OpT, OpTDG, OpTPauli:
			n++
		}
	}
	return n
}

// Depth returns the circuit depth: the longest chain of operations
// sharing a qubit (or classical bit). A barrier without qubits spans
// every wire; one with qubits advances only those wires.
func (c *Circuit) Depth() int {
	if c.NumQubits == 0 {
		return 0
	}
	qFront := make([]int, c.NumQubits)
	cFront := make([]int, c.NumCbits)
	depth := 0
	for _, op := range c.Ops {
		qubits := op.ActiveQubits()
		if op.Kind == OpBarrier && len(qubits) == 0 {
			qubits = allQubits(c.NumQubits)
		}
		layer := 0
		for _, q := range qubits {
			layer = max(layer, qFront[q])
		}
		if op.Cbit >= 0 && op.Cbit < len(cFront) {
			layer = max(layer, cFront[op.Cbit])
		}
		layer++
		for _, q := range qubits {
			qFront[q] = layer
		}
		if op.Cbit >= 0 && op.Cbit < len(cFront) {
			cFront[op.Cbit] = layer
		}
		depth = max(depth, layer)
	}
	return depth
}

func allQubits(n int) []int {
	qs := make([]int, n)
	for i := 0; i < n; i++ {
		qs[i] = i
	}
	return qs
}

// Stats renders a human-readable statistics block: register sizes,
// total gates, depth, T-count and the per-kind counts.
func (c *Circuit) Stats() string {
	var sb strings.Builder
	sb.WriteString("Circuit Statistics\n")
	fmt.Fprintf(&sb, "  qubits:  %d\n", c.NumQubits)
	fmt.Fprintf(&sb, "  cbits:   %d\n", c.NumCbits)
	fmt.Fprintf(&sb, "  gates:   %d\n", len(c.Ops))
	fmt.Fprintf(&sb, "  depth:   %d\n", c.Depth())
	fmt.Fprintf(&sb, "  t-count: %d\n", c.TCount())
	counts := c.CountOps()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(&sb, "    %-9s %d\n", k, counts[k])
	}
	return sb.String()
}
