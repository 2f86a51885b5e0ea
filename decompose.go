package qtranspile

import "fmt"

// DecomposePass rewrites every operation into the universal set
// {H, S, Sdg, T, Tdg, X, Y, Z, CX, RZ, measure, reset, barrier} with
// ccx optionally preserved as a primitive. Running it twice yields the
// same output.
type DecomposePass struct {
	KeepCCX bool
}

func (p *DecomposePass) Name() string { return string(PassDecompose) }

func (p *DecomposePass) Run(c *Circuit) (bool, error) {
	out := make([]Operation, 0, len(c.Ops))
	modified := false
	for _, op := range c.Ops {
		switch op.Kind {
		case OpH, OpX, OpY, OpZ, OpS, OpSDG, OpT, OpTDG, OpCX, OpRZ,
			OpMeasure, OpReset, OpBarrier:
			out = append(out, op)
		case OpSX:
			q := op.Qubits[0]
			out = append(out, NewGate(OpH, q), NewGate(OpS, q), NewGate(OpH, q))
			modified = true
		case OpSXDG:
			q := op.Qubits[0]
			out = append(out, NewGate(OpH, q), NewGate(OpSDG, q), NewGate(OpH, q))
			modified = true
		case OpRX:
			// RX(t) = H·RZ(t)·H
			q := op.Qubits[0]
			out = append(out, NewGate(OpH, q), NewRotation(OpRZ, op.Theta, q), NewGate(OpH, q))
			modified = true
		case OpRY:
			// RY(t) = S·H·RZ(t)·H·Sdg, applied Sdg-first
			q := op.Qubits[0]
			out = append(out,
				NewGate(OpSDG, q),
				NewGate(OpH, q),
				NewRotation(OpRZ, op.Theta, q),
				NewGate(OpH, q),
				NewGate(OpS, q))
			modified = true
		case OpCZ:
			a, b := op.Qubits[0], op.Qubits[1]
			out = append(out, NewGate(OpH, b), NewGate(OpCX, a, b), NewGate(OpH, b))
			modified = true
		case OpSWAP:
			a, b := op.Qubits[0], op.Qubits[1]
			out = append(out, NewGate(OpCX, a, b), NewGate(OpCX, b, a), NewGate(OpCX, a, b))
			modified = true
		case OpCCX:
			if p.KeepCCX {
				out = append(out, op)
				break
			}
			out = append(out, decomposeCCX(op.Qubits[0], op.Qubits[1], op.Qubits[2])...)
			modified = true
		default:
			return false, &InvariantViolationError{Detail: fmt.Sprintf("decompose: unsupported operation %s", op.Kind)}
		}
	}
	c.Ops = out
	return modified, nil
}

// decomposeCCX expands a Toffoli with controls a, b and target t into
// the standard ancilla-free 15-operation network: 7 T/Tdg and 6 CX.
func decomposeCCX(a, b, t int) []Operation {
	return []Operation{
		NewGate(OpH, t),
		NewGate(OpCX, b, t),
		NewGate(OpTDG, t),
		NewGate(OpCX, a, t),
		NewGate(OpT, t),
		NewGate(OpCX, b, t),
		NewGate(OpTDG, t),
		NewGate(OpCX, a, t),
		NewGate(OpT, b),
		NewGate(OpT, t),
		NewGate(OpH, t),
		NewGate(OpCX, a, b),
		NewGate(OpT, a),
		NewGate(OpTDG, b),
		NewGate(OpCX, a, b),
	}
}
