package qtranspile

import "math"

// gateFusionMaxSweeps bounds the fixed-point iteration.
const gateFusionMaxSweeps = 64

// GateFusionPass is a peephole pass: it cancels adjacent self-inverse
// pairs, fuses adjacent same-axis rotations, and normalises the result
// through the trivial-RZ table. Two operations are adjacent on a qubit
// when nothing between them touches that qubit; barriers and
// measurements are never crossed.
type GateFusionPass struct{}

func (p *GateFusionPass) Name() string { return string(PassGateFusion) }

func (p *GateFusionPass) Run(c *Circuit) (bool, error) {
	modified := false
	sweeps := min(len(c.Ops), gateFusionMaxSweeps)
	for i := 0; i < max(sweeps, 1); i++ {
		if !p.sweep(c) {
			break
		}
		modified = true
	}
	return modified, nil
}

// sweep performs one left-to-right pass and reports whether it changed
// anything.
func (p *GateFusionPass) sweep(c *Circuit) bool {
	consumed := make([]bool, len(c.Ops))
	replacement := make(map[int][]Operation)
	changed := false

	for i, op := range c.Ops {
		if consumed[i] {
			continue
		}
		switch {
		case isDiagonal(op):
			q := op.Qubits[0]
			j := nextOnQubit(c.Ops, consumed, i, q)
			if j < 0 || !isDiagonal(c.Ops[j]) || c.Ops[j].Qubits[0] != q {
				continue
			}
			sum := diagAngle(op) + diagAngle(c.Ops[j])
			var rep []Operation
			if k, ok := trivialQuarterTurns(sum); ok {
				rep = quarterTurnGates(k, q)
			} else {
				rep = []Operation{NewRotation(OpRZ, sum, q)}
			}
			// Two gates that fuse back into the same two gates (e.g.
			// S·T at 3pi/4) are already minimal: leave them alone.
			if len(rep) == 2 && rep[0].Kind == op.Kind && rep[1].Kind == c.Ops[j].Kind {
				continue
			}
			consumed[i], consumed[j] = true, true
			replacement[i] = rep
			changed = true
		case isSelfInverse(op.Kind) && len(op.Qubits) == 1:
			q := op.Qubits[0]
			j := nextOnQubit(c.Ops, consumed, i, q)
			if j < 0 || c.Ops[j].Kind != op.Kind || c.Ops[j].Qubits[0] != q {
				continue
			}
			consumed[i], consumed[j] = true, true
			changed = true
		case op.Kind == OpCX:
			j := nextTouching(c.Ops, consumed, i, op.Qubits)
			if j < 0 {
				continue
			}
			other := c.Ops[j]
			if other.Kind == OpCX && other.Qubits[0] == op.Qubits[0] && other.Qubits[1] == op.Qubits[1] {
				consumed[i], consumed[j] = true, true
				changed = true
			}
		}
	}

	if !changed {
		return false
	}
	out := make([]Operation, 0, len(c.Ops))
	for i, op := range c.Ops {
		if rep, ok := replacement[i]; ok {
			out = append(out, rep...)
			continue
		}
		if !consumed[i] {
			out = append(out, op)
		}
	}
	c.Ops = out
	return true
}

// nextOnQubit returns the index of the first unconsumed operation after
// i that touches q, or -1. Barriers touch every qubit.
func nextOnQubit(ops []Operation, consumed []bool, i, q int) int {
	for j := i + 1; j < len(ops); j++ {
		if consumed[j] {
			continue
		}
		if ops[j].Kind == OpBarrier {
			return j
		}
		for _, oq := range ops[j].ActiveQubits() {
			if oq == q {
				return j
			}
		}
	}
	return -1
}

// nextTouching returns the first unconsumed operation after i sharing
// any qubit with the given set, or -1.
func nextTouching(ops []Operation, consumed []bool, i int, qubits []int) int {
	for j := i + 1; j < len(ops); j++ {
		if consumed[j] {
			continue
		}
		if ops[j].Kind == OpBarrier {
			return j
		}
		for _, oq := range ops[j].ActiveQubits() {
			for _, q := range qubits {
				if oq == q {
					return j
				}
			}
		}
	}
	return -1
}

// isDiagonal reports whether the operation is a Z-axis rotation that
// can fuse by angle addition.
func isDiagonal(op Operation) bool {
	switch op.Kind {
	case OpZ, OpS, OpSDG, OpT, OpTDG, OpRZ:
		return true
	}
	return false
}

// diagAngle returns the RZ-equivalent angle of a diagonal gate.
func diagAngle(op Operation) float64 {
	switch op.Kind {
	case OpZ:
		return math.Pi
	case OpS:
		return math.Pi / 2
	case OpSDG:
		return -math.Pi / 2
	case OpT:
		return math.Pi / 4
	case OpTDG:
		return -math.Pi / 4
	default:
		return op.Theta
	}
}

func isSelfInverse(kind OpKind) bool {
	switch kind {
	case OpH, OpX, OpY, OpZ:
		return true
	}
	return false
}
