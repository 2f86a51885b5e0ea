package qtranspile

// RemovePauliPass eliminates Pauli operators whose effect is absorbable
// into state preparation or measurement interpretation.
//
// On standard circuits it strips leading single-qubit Paulis (nothing
// earlier on the qubit) and trailing ones (nothing later on the qubit
// except barriers, measurements and further single-qubit Paulis). On
// PBC circuits it folds
// every z_pauli rotation into a running Pauli frame, flipping the sign
// of any later rotation it anticommutes with, and drops the frame at
// the end.
//
// The classical outcome of a measurement crossed by an anticommuting
// Pauli is flipped; the pass records no adjustment. Callers that need
// exact outcome semantics must apply the inverse flip classically.
type RemovePauliPass struct{}

func (p *RemovePauliPass) Name() string { return string(PassRemovePauli) }

func (p *RemovePauliPass) Run(c *Circuit) (bool, error) {
	if c.IsPBC() && c.hasPauliOps() {
		return p.runPBC(c)
	}
	return p.runStandard(c)
}

// runPBC propagates z_pauli rotations to the end of the circuit as a
// Pauli frame and discards them.
func (p *RemovePauliPass) runPBC(c *Circuit) (bool, error) {
	frame := NewIdentityPauli(c.NumQubits)
	haveFrame := false
	out := make([]Operation, 0, len(c.Ops))
	modified := false

	for _, op := range c.Ops {
		switch op.Kind {
		case OpZPauli:
			prod, _ := frame.Multiply(op.Pauli)
			frame = prod
			haveFrame = true
			modified = true
		case OpTPauli, OpSPauli, OpMPauli:
			if haveFrame && !frame.CommutesWith(op.Pauli) {
				// Conjugating the rotation axis through the frame
				// flips its sign: F·exp(-it·P)·F = exp(-it·F·P·F).
				op.Pauli = op.Pauli.Negated()
				modified = true
			}
			out = append(out, op)
		case OpCX:
			if err := frame.conjugate(OpCX, op.Qubits); err != nil {
				return modified, err
			}
			out = append(out, op)
		default:
			out = append(out, op)
		}
	}
	c.Ops = out
	return modified, nil
}

// runStandard strips leading and trailing single-qubit Pauli gates.
func (p *RemovePauliPass) runStandard(c *Circuit) (bool, error) {
	drop := make([]bool, len(c.Ops))
	modified := false

	for i, op := range c.Ops {
		if !isSingleQubitPauli(op) {
			continue
		}
		q := op.Qubits[0]
		if !p.hasEarlierOn(c.Ops, drop, i, q) || !p.hasLaterOn(c.Ops, i, q) {
			drop[i] = true
			modified = true
		}
	}

	if !modified {
		return false, nil
	}
	out := make([]Operation, 0, len(c.Ops))
	for i, op := range c.Ops {
		if !drop[i] {
			out = append(out, op)
		}
	}
	c.Ops = out
	return true, nil
}

func isSingleQubitPauli(op Operation) bool {
	switch op.Kind {
	case OpX, OpY, OpZ:
		return len(op.Qubits) == 1
	}
	return false
}

// hasEarlierOn reports whether any kept operation before i acts on q.
func (p *RemovePauliPass) hasEarlierOn(ops []Operation, drop []bool, i, q int) bool {
	for j := i - 1; j >= 0; j-- {
		if drop[j] || ops[j].Kind == OpBarrier {
			continue
		}
		for _, oq := range ops[j].ActiveQubits() {
			if oq == q {
				return true
			}
		}
	}
	return false
}

// hasLaterOn reports whether any operation after i acts on q, not
// counting barriers, measurements, and the rest of a trailing Pauli
// run on the same qubit.
func (p *RemovePauliPass) hasLaterOn(ops []Operation, i, q int) bool {
	for j := i + 1; j < len(ops); j++ {
		if ops[j].Kind == OpBarrier || ops[j].Kind == OpMeasure {
			continue
		}
		if isSingleQubitPauli(ops[j]) && ops[j].Qubits[0] == q {
			continue
		}
		for _, oq := range ops[j].ActiveQubits() {
			if oq == q {
				return true
			}
		}
	}
	return false
}
