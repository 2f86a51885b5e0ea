package qtranspile

// CliffordReductionPass canonicalises the Clifford portion of a
// Clifford+T circuit. All Cliffords are propagated to the end through a
// symplectic frame; each T/Tdg is re-emitted as a Pauli-rotation
// network over the conjugated axis; the accumulated frame is then
// re-synthesised as a single normalised Clifford block. T-count,
// measurement outcomes and the depth bound (output depth never exceeds
// input depth) are preserved: inverse Clifford pairs left at network
// boundaries are cancelled, and a rewrite that would still come out
// deeper than the input is discarded in favour of the input.
//
// Operations from the first measurement or reset onward are kept as a
// verbatim tail behind the synthesised block, so mid-circuit
// measurement semantics are untouched. A barrier forces the pending
// frame to be synthesised in place, since Cliffords may not cross it.
type CliffordReductionPass struct{}

func (p *CliffordReductionPass) Name() string { return string(PassCliffordReduction) }

func (p *CliffordReductionPass) Run(c *Circuit) (bool, error) {
	if !c.IsCliffordT() {
		return false, &InvariantViolationError{Detail: "clifford reduction requires a Clifford+T circuit"}
	}

	tail := len(c.Ops)
	for i, op := range c.Ops {
		if op.Kind == OpMeasure || op.Kind == OpReset {
			tail = i
			break
		}
	}

	frame := NewCliffordFrame(c.NumQubits)
	out := make([]Operation, 0, len(c.Ops))
	for _, op := range c.Ops[:tail] {
		switch op.Kind {
		case OpT, OpTDG:
			pauli := frame.ImageZ(op.Qubits[0])
			if op.Kind == OpTDG {
				pauli = pauli.Negated()
			}
			out = append(out, pauliRotationNetwork(pauli)...)
		case OpBarrier:
			out = append(out, frame.Synthesize()...)
			out = append(out, op)
		default:
			if err := frame.Absorb(op); err != nil {
				return false, err
			}
		}
	}
	out = append(out, frame.Synthesize()...)
	out = append(out, c.Ops[tail:]...)
	out = cancelBoundaryInverses(out)

	if opsEqual(c.Ops, out) {
		return false, nil
	}
	candidate := &Circuit{NumQubits: c.NumQubits, NumCbits: c.NumCbits, Ops: out}
	if candidate.Depth() > c.Depth() {
		// The canonical form came out deeper than the input; keep the
		// input rather than break the depth bound.
		return false, nil
	}
	c.Ops = out
	return true, nil
}

// cancelBoundaryInverses removes adjacent inverse Clifford pairs, the
// debris the rotation networks and the synthesised block leave next to
// each other (H·H, X·X, Y·Y, Z·Z, S·Sdg, CX·CX). Only Clifford pairs
// cancel, so the T-count is untouched. Adjacency skips operations on
// disjoint qubits and never crosses a barrier or measurement.
func cancelBoundaryInverses(ops []Operation) []Operation {
	for i := 0; i < max(len(ops), 1); i++ {
		consumed := make([]bool, len(ops))
		changed := false
		for i, op := range ops {
			if consumed[i] {
				continue
			}
			switch op.Kind {
			case OpH, OpX, OpY, OpZ, OpS, OpSDG:
				q := op.Qubits[0]
				j := nextOnQubit(ops, consumed, i, q)
				if j < 0 {
					continue
				}
				other := ops[j]
				if other.Kind == adjointKind(op.Kind) && len(other.Qubits) == 1 && other.Qubits[0] == q {
					consumed[i], consumed[j] = true, true
					changed = true
				}
			case OpCX:
				j := nextTouching(ops, consumed, i, op.Qubits)
				if j < 0 {
					continue
				}
				other := ops[j]
				if other.Kind == OpCX && other.Qubits[0] == op.Qubits[0] && other.Qubits[1] == op.Qubits[1] {
					consumed[i], consumed[j] = true, true
					changed = true
				}
			}
		}
		if !changed {
			break
		}
		kept := make([]Operation, 0, len(ops))
		for i, op := range ops {
			if !consumed[i] {
				kept = append(kept, op)
			}
		}
		ops = kept
	}
	return ops
}

// pauliRotationNetwork expands exp(-i·pi/8·P) into Clifford+T gates: a
// per-qubit basis change onto the Z axis, a CX parity ladder into the
// last support qubit, T (or Tdg for negative sign) on that qubit, and
// the mirrored unwinding.
func pauliRotationNetwork(p PauliOp) []Operation {
	support := p.Support()
	if len(support) == 0 {
		// Rotation about the identity is a global phase.
		return nil
	}
	root := support[len(support)-1]

	var pre, post []Operation
	for _, q := range support {
		switch p.Letter(q) {
		case 'X':
			pre = append(pre, NewGate(OpH, q))
			post = append(post, NewGate(OpH, q))
		case 'Y':
			pre = append(pre, NewGate(OpSDG, q), NewGate(OpH, q))
			post = append(post, NewGate(OpH, q), NewGate(OpS, q))
		}
	}
	for _, q := range support[:len(support)-1] {
		pre = append(pre, NewGate(OpCX, q, root))
	}

	core := OpT
	if p.Negative() {
		core = OpTDG
	}

	ops := make([]Operation, 0, 2*len(pre)+1)
	ops = append(ops, pre...)
	ops = append(ops, NewGate(core, root))
	for i := len(pre) - 1; i >= 0; i-- {
		g := pre[i]
		if g.Kind == OpCX {
			ops = append(ops, g)
		}
	}
	ops = append(ops, post...)
	return ops
}

// opsEqual compares two operation slices structurally.
func opsEqual(a, b []Operation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Theta != b[i].Theta || a[i].Cbit != b[i].Cbit {
			return false
		}
		if len(a[i].Qubits) != len(b[i].Qubits) {
			return false
		}
		for j := range a[i].Qubits {
			if a[i].Qubits[j] != b[i].Qubits[j] {
				return false
			}
		}
		if a[i].IsPauliBased() && !a[i].Pauli.Equal(b[i].Pauli) {
			return false
		}
	}
	return true
}
