package qtranspile

import (
	"fmt"
	"strings"
)

// OpKind identifies the kind of an operation. The values double as the
// lower-case QASM mnemonics used by CountOps and the writer.
type OpKind string

const (
	OpH    OpKind = "h"
	OpX    OpKind = "x"
	OpY    OpKind = "y"
	OpZ    OpKind = "z"
	OpS    OpKind = "s"
	OpSDG  OpKind = "sdg"
	OpT    OpKind = "t"
	OpTDG  OpKind = "tdg"
	OpSX   OpKind = "sx"
	OpSXDG OpKind = "sxdg"

	OpRX OpKind = "rx"
	OpRY OpKind = "ry"
	OpRZ OpKind = "rz"

	OpCX   OpKind = "cx"
	OpCZ   OpKind = "cz"
	OpSWAP OpKind = "swap"
	OpCCX  OpKind = "ccx"

	OpMeasure OpKind = "measure"
	OpReset   OpKind = "reset"
	OpBarrier OpKind = "barrier"

	// Pauli-based operations. The payload is a signed Pauli string; the
	// rotation angles are fixed by the kind (pi/4, pi/2, pi).
	OpTPauli OpKind = "t_pauli"
	OpSPauli OpKind = "s_pauli"
	OpZPauli OpKind = "z_pauli"
	OpMPauli OpKind = "m_pauli"
)

// Operation is one element of a circuit: a tagged variant whose payload
// depends on Kind. Qubits holds the operand qubit indices (control first
// for cx/cz, controls then target for ccx). Theta is set for rx/ry/rz,
// Cbit for measure (and m_pauli when it has a classical destination),
// Pauli for the Pauli-based kinds.
type Operation struct {
	Kind   OpKind
	Qubits []int
	Theta  float64
	Cbit   int // classical destination, -1 if none
	Pauli  PauliOp
}

// NewGate builds a parameter-free gate operation.
func NewGate(kind OpKind, qubits ...int) Operation {
	return Operation{Kind: kind, Qubits: qubits, Cbit: -1}
}

// NewRotation builds a rotation gate with angle theta.
func NewRotation(kind OpKind, theta float64, qubit int) Operation {
	return Operation{Kind: kind, Qubits: []int{qubit}, Theta: theta, Cbit: -1}
}

// NewMeasure builds a Z-basis measurement of qubit into cbit.
func NewMeasure(qubit, cbit int) Operation {
	return Operation{Kind: OpMeasure, Qubits: []int{qubit}, Cbit: cbit}
}

// NewReset builds a reset of qubit to |0>.
func NewReset(qubit int) Operation {
	return Operation{Kind: OpReset, Qubits: []int{qubit}, Cbit: -1}
}

// NewBarrier builds a barrier spanning the given qubits.
func NewBarrier(qubits ...int) Operation {
	return Operation{Kind: OpBarrier, Qubits: qubits, Cbit: -1}
}

// NewPauliOp builds a Pauli-based operation (t_pauli, s_pauli, z_pauli,
// m_pauli) acting on the signed Pauli string p.
func NewPauliOp(kind OpKind, p PauliOp) Operation {
	return Operation{Kind: kind, Pauli: p, Cbit: -1}
}

// IsClifford reports whether the operation is a Clifford gate.
func (o Operation) IsClifford() bool {
	switch o.Kind {
	case OpH, OpX, OpY, OpZ, OpS, OpSDG, OpSX, OpSXDG, OpCX, OpCZ, OpSWAP:
		return true
	}
	return false
}

// IsPauliBased reports whether the operation carries a Pauli payload.
func (o Operation) IsPauliBased() bool {
	switch o.Kind {
	case OpTPauli, OpSPauli, OpZPauli, OpMPauli:
		return true
	}
	return false
}

// IsRotation reports whether the operation is a parameterized rotation.
func (o Operation) IsRotation() bool {
	return o.Kind == OpRX || o.Kind == OpRY || o.Kind == OpRZ
}

// ActiveQubits returns the qubit indices the operation touches. For
// Pauli-based operations this is the support of the Pauli string.
func (o Operation) ActiveQubits() []int {
	if o.IsPauliBased() {
		return o.Pauli.Support()
	}
	return o.Qubits
}

// String renders the operation in QASM-like form, used for debugging
// and the renderer labels.
func (o Operation) String() string {
	var sb strings.Builder
	sb.WriteString(string(o.Kind))
	if o.IsRotation() {
		fmt.Fprintf(&sb, "(%s)", formatAngle(o.Theta))
	}
	if o.IsPauliBased() {
		fmt.Fprintf(&sb, "(%q)", o.Pauli.String())
	}
	for i, q := range o.Qubits {
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "q[%d]", q)
	}
	if o.Kind == OpMeasure || (o.Kind == OpMPauli && o.Cbit >= 0) {
		fmt.Fprintf(&sb, " -> c[%d]", o.Cbit)
	}
	return sb.String()
}

// adjointKind maps a gate kind to its adjoint. Self-adjoint kinds map to
// themselves.
func adjointKind(kind OpKind) OpKind {
	switch kind {
	case OpS:
		return OpSDG
	case OpSDG:
		return OpS
	case OpT:
		return OpTDG
	case OpTDG:
		return OpT
	case OpSX:
		return OpSXDG
	case OpSXDG:
		return OpSX
	}
	return kind
}
