package qtranspile

// TFusePass fuses adjacent Pauli rotations in a PBC circuit. Two pi/4
// rotations about the same signed Pauli combine into a pi/2 rotation;
// rotations about opposite signs cancel; commuting rotations in
// between are slid across to expose pairs. The analogous rules apply
// one level up (pi/2 pairs combine to pi, pi pairs vanish). The pass
// never increases the T count.
type TFusePass struct{}

func (p *TFusePass) Name() string { return string(PassTFuse) }

func (p *TFusePass) Run(c *Circuit) (bool, error) {
	if !c.IsPBC() {
		return false, &InvariantViolationError{Detail: "tfuse requires a pauli-based circuit"}
	}
	rotations := 0
	for _, op := range c.Ops {
		switch op.Kind {
		case OpTPauli, OpSPauli, OpZPauli:
			rotations++
		}
	}
	modified := false
	for iter := 0; iter < max(rotations, 1); iter++ {
		if !p.sweep(c) {
			break
		}
		modified = true
	}
	return modified, nil
}

func (p *TFusePass) sweep(c *Circuit) bool {
	consumed := make([]bool, len(c.Ops))
	replacement := make(map[int]*Operation)
	changed := false

	for i, op := range c.Ops {
		if consumed[i] || !isPauliRotation(op.Kind) {
			continue
		}
		j := p.findPartner(c.Ops, consumed, i)
		if j < 0 {
			continue
		}
		other := c.Ops[j]
		consumed[i], consumed[j] = true, true
		changed = true
		if !op.Pauli.Equal(other.Pauli) {
			// Opposite signs: the rotations cancel outright.
			continue
		}
		switch op.Kind {
		case OpTPauli:
			rep := NewPauliOp(OpSPauli, op.Pauli.Clone())
			replacement[i] = &rep
		case OpSPauli:
			rep := NewPauliOp(OpZPauli, op.Pauli.Clone())
			replacement[i] = &rep
		case OpZPauli:
			// pi + pi is a global phase; both vanish.
		}
	}

	if !changed {
		return false
	}
	out := make([]Operation, 0, len(c.Ops))
	for i, op := range c.Ops {
		if rep, ok := replacement[i]; ok {
			out = append(out, *rep)
			continue
		}
		if !consumed[i] {
			out = append(out, op)
		}
	}
	c.Ops = out
	return true
}

// findPartner scans right from i for a rotation of the same kind about
// the same Pauli string (up to sign), sliding across commuting
// rotations only. Barriers, measurements and preserved cx block.
func (p *TFusePass) findPartner(ops []Operation, consumed []bool, i int) int {
	op := ops[i]
	for j := i + 1; j < len(ops); j++ {
		if consumed[j] {
			continue
		}
		other := ops[j]
		if other.Kind == op.Kind && other.Pauli.EqualUpToSign(op.Pauli) {
			return j
		}
		if !isPauliRotation(other.Kind) {
			return -1
		}
		if !other.Pauli.CommutesWith(op.Pauli) {
			return -1
		}
	}
	return -1
}

func isPauliRotation(kind OpKind) bool {
	return kind == OpTPauli || kind == OpSPauli || kind == OpZPauli
}
