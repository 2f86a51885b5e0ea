package qtranspile

import "fmt"

// CliffordFrame is a symplectic tableau for an n-qubit Clifford C. Row
// i of rowX (rowZ) holds the image C†·X_i·C (C†·Z_i·C) as a signed
// Pauli, which is exactly what the PBC conversion needs: conjugating a
// rotation axis through the Cliffords accumulated so far.
type CliffordFrame struct {
	n    int
	rowX []PauliOp
	rowZ []PauliOp
}

// NewCliffordFrame returns the identity frame over n qubits.
func NewCliffordFrame(n int) *CliffordFrame {
	f := &CliffordFrame{n: n, rowX: make([]PauliOp, n), rowZ: make([]PauliOp, n)}
	for i := 0; i < n; i++ {
		f.rowX[i] = NewSingleX(n, i)
		f.rowZ[i] = NewSingleZ(n, i)
	}
	return f
}

// ImageZ returns C†·Z_q·C.
func (f *CliffordFrame) ImageZ(q int) PauliOp { return f.rowZ[q].Clone() }

// ImageX returns C†·X_q·C.
func (f *CliffordFrame) ImageX(q int) PauliOp { return f.rowX[q].Clone() }

// IsIdentity reports whether the frame is the identity Clifford.
func (f *CliffordFrame) IsIdentity() bool {
	for i := 0; i < f.n; i++ {
		if !f.rowX[i].Equal(NewSingleX(f.n, i)) || !f.rowZ[i].Equal(NewSingleZ(f.n, i)) {
			return false
		}
	}
	return true
}

// Flush reinitialises the rows of qubit q to fresh generators. Used
// when a reset discards the frame on one qubit.
func (f *CliffordFrame) Flush(q int) {
	f.rowX[q] = NewSingleX(f.n, q)
	f.rowZ[q] = NewSingleZ(f.n, q)
}

// mulRows multiplies two rows with an extra i-exponent and asserts the
// result is real. Frame rows are Hermitian images, so any imaginary
// residue is an internal sign-tracking bug.
func mulRows(a, b PauliOp, extraExp int) PauliOp {
	r, e := a.Multiply(b)
	e = ((e+extraExp)%4 + 4) % 4
	switch e {
	case 0:
	case 2:
		r.neg = !r.neg
	default:
		panic(fmt.Sprintf("clifford frame lost a real sign: residual phase i^%d", e))
	}
	return r
}

// Absorb folds a Clifford gate into the frame: C <- g·C. The row update
// applies M' = M ∘ conj(g†,·) to the generator images.
func (f *CliffordFrame) Absorb(op Operation) error {
	switch op.Kind {
	case OpH:
		a := op.Qubits[0]
		f.rowX[a], f.rowZ[a] = f.rowZ[a], f.rowX[a]
	case OpS:
		// S† X S = -Y = i^3 · X·Z
		a := op.Qubits[0]
		f.rowX[a] = mulRows(f.rowX[a], f.rowZ[a], 3)
	case OpSDG:
		a := op.Qubits[0]
		f.rowX[a] = mulRows(f.rowX[a], f.rowZ[a], 1)
	case OpSX:
		// SX† Z SX = Y = i · X·Z
		a := op.Qubits[0]
		f.rowZ[a] = mulRows(f.rowX[a], f.rowZ[a], 1)
	case OpSXDG:
		a := op.Qubits[0]
		f.rowZ[a] = mulRows(f.rowX[a], f.rowZ[a], 3)
	case OpX:
		a := op.Qubits[0]
		f.rowZ[a].neg = !f.rowZ[a].neg
	case OpY:
		a := op.Qubits[0]
		f.rowX[a].neg = !f.rowX[a].neg
		f.rowZ[a].neg = !f.rowZ[a].neg
	case OpZ:
		a := op.Qubits[0]
		f.rowX[a].neg = !f.rowX[a].neg
	case OpCX:
		c, t := op.Qubits[0], op.Qubits[1]
		f.rowX[c] = mulRows(f.rowX[c], f.rowX[t], 0)
		f.rowZ[t] = mulRows(f.rowZ[c], f.rowZ[t], 0)
	case OpCZ:
		a, b := op.Qubits[0], op.Qubits[1]
		f.rowX[a] = mulRows(f.rowX[a], f.rowZ[b], 0)
		f.rowX[b] = mulRows(f.rowX[b], f.rowZ[a], 0)
	case OpSWAP:
		a, b := op.Qubits[0], op.Qubits[1]
		f.rowX[a], f.rowX[b] = f.rowX[b], f.rowX[a]
		f.rowZ[a], f.rowZ[b] = f.rowZ[b], f.rowZ[a]
	default:
		return &InvariantViolationError{Detail: fmt.Sprintf("cannot absorb non-Clifford gate %s into frame", op.Kind)}
	}
	return nil
}

// rightMultiply composes on the other side: C <- C·g. Every row picks
// up the string transform conj(g†,·).
func (f *CliffordFrame) rightMultiply(op Operation) {
	adj := adjointKind(op.Kind)
	for i := 0; i < f.n; i++ {
		if err := f.rowX[i].conjugate(adj, op.Qubits); err != nil {
			panic(err)
		}
		if err := f.rowZ[i].conjugate(adj, op.Qubits); err != nil {
			panic(err)
		}
	}
}

// conjugateAll rewrites every row by conj(g,·). Together with Absorb it
// implements the two-sided update C <- g·C·g used when a self-inverse
// gate is passed through verbatim.
func (f *CliffordFrame) conjugateAll(op Operation) {
	for i := 0; i < f.n; i++ {
		if err := f.rowX[i].conjugate(op.Kind, op.Qubits); err != nil {
			panic(err)
		}
		if err := f.rowZ[i].conjugate(op.Kind, op.Qubits); err != nil {
			panic(err)
		}
	}
}

// Synthesize reduces the frame to the identity by composing elementary
// Cliffords on the right, and returns a gate list realising C in the
// {H, S, Sdg, X, Z, CX} set. The frame is consumed: it is the identity
// afterwards.
//
// The reduction is Gaussian elimination on the symplectic rows: for
// each qubit i the X-row is driven to +X_i and the Z-row to +Z_i, using
// only columns >= i. Commutation with the already-finished generators
// keeps earlier columns clear automatically.
func (f *CliffordFrame) Synthesize() []Operation {
	var applied []Operation
	col := func(kind OpKind, qubits ...int) {
		op := NewGate(kind, qubits...)
		f.rightMultiply(op)
		applied = append(applied, op)
	}

	for i := 0; i < f.n; i++ {
		// Pivot: make rowX[i] carry an X at column i.
		j := -1
		for k := i; k < f.n; k++ {
			if f.rowX[i].Letter(k) != 'I' {
				j = k
				break
			}
		}
		if j < 0 {
			panic(fmt.Sprintf("clifford frame row X%d has no pivot: tableau not symplectic", i))
		}
		switch f.rowX[i].Letter(j) {
		case 'Z':
			col(OpH, j)
		case 'Y':
			// conj(Sdg,·) maps Y -> X
			col(OpS, j)
		}
		if j != i {
			col(OpSWAP, i, j)
		}
		for k := i + 1; k < f.n; k++ {
			switch f.rowX[i].Letter(k) {
			case 'I':
				continue
			case 'Z':
				col(OpH, k)
			case 'Y':
				col(OpS, k)
			}
			col(OpCX, i, k)
		}

		// rowZ[i] anticommutes with rowX[i] = ±X_i, so column i is Z or Y.
		if f.rowZ[i].Letter(i) == 'Y' {
			// conj(SX,·) maps Y -> Z and fixes X
			col(OpSXDG, i)
		}
		for k := i + 1; k < f.n; k++ {
			switch f.rowZ[i].Letter(k) {
			case 'I':
				continue
			case 'X':
				col(OpH, k)
			case 'Y':
				col(OpSXDG, k)
			}
			col(OpCX, k, i)
		}

		if f.rowX[i].neg {
			col(OpZ, i)
		}
		if f.rowZ[i].neg {
			col(OpX, i)
		}
	}

	// C·g1···gk = I, so C = gk†···g1†: emit the applied gates in order,
	// each adjointed, expanding the internal-only kinds.
	out := make([]Operation, 0, len(applied))
	for _, op := range applied {
		switch op.Kind {
		case OpSWAP:
			a, b := op.Qubits[0], op.Qubits[1]
			out = append(out, NewGate(OpCX, a, b), NewGate(OpCX, b, a), NewGate(OpCX, a, b))
		case OpSX, OpSXDG:
			// adj(SX) = SXdg = H·Sdg·H, adj(SXdg) = SX = H·S·H
			a := op.Qubits[0]
			mid := OpS
			if op.Kind == OpSX {
				mid = OpSDG
			}
			out = append(out, NewGate(OpH, a), NewGate(mid, a), NewGate(OpH, a))
		default:
			out = append(out, NewGate(adjointKind(op.Kind), op.Qubits...))
		}
	}
	return out
}
