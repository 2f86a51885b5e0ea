package qtranspile

import "fmt"

// PBCPass converts a Clifford+T circuit into Pauli-based form: pi/4,
// pi/2 and pi rotations about signed Pauli strings plus Pauli
// measurements. Clifford gates are propagated to the end through a
// symplectic frame and discarded once every non-Clifford operation and
// measurement has been conjugated through it.
//
// With KeepCX, cx gates are emitted verbatim and the frame is
// conjugated across them, so the output stays exactly equivalent.
type PBCPass struct {
	KeepCX bool
}

func (p *PBCPass) Name() string { return string(PassToPBC) }

func (p *PBCPass) Run(c *Circuit) (bool, error) {
	frame := NewCliffordFrame(c.NumQubits)
	out := make([]Operation, 0, len(c.Ops))
	modified := false

	for _, op := range c.Ops {
		switch op.Kind {
		case OpT, OpTDG:
			pauli := frame.ImageZ(op.Qubits[0])
			if op.Kind == OpTDG {
				pauli = pauli.Negated()
			}
			out = append(out, NewPauliOp(OpTPauli, pauli))
			modified = true
		case OpS, OpSDG:
			pauli := frame.ImageZ(op.Qubits[0])
			if op.Kind == OpSDG {
				pauli = pauli.Negated()
			}
			out = append(out, NewPauliOp(OpSPauli, pauli))
			modified = true
		case OpZ:
			out = append(out, NewPauliOp(OpZPauli, frame.ImageZ(op.Qubits[0])))
			modified = true
		case OpMeasure:
			m := NewPauliOp(OpMPauli, frame.ImageZ(op.Qubits[0]))
			m.Cbit = op.Cbit
			out = append(out, m)
			modified = true
		case OpReset:
			// Collapse along the conjugated Z axis, then restart the
			// frame on this qubit.
			out = append(out, NewPauliOp(OpMPauli, frame.ImageZ(op.Qubits[0])))
			frame.Flush(op.Qubits[0])
			modified = true
		case OpBarrier:
			out = append(out, op)
		case OpCX:
			if p.KeepCX {
				// Two-sided update C <- CX·C·CX keeps the emitted cx
				// exactly equivalent.
				out = append(out, op)
				if err := frame.Absorb(op); err != nil {
					return modified, err
				}
				frame.conjugateAll(op)
				modified = true
				break
			}
			if err := frame.Absorb(op); err != nil {
				return modified, err
			}
			modified = true
		case OpH, OpX, OpY, OpCZ, OpSWAP, OpSX, OpSXDG:
			if err := frame.Absorb(op); err != nil {
				return modified, err
			}
			modified = true
		case OpTPauli, OpSPauli, OpZPauli, OpMPauli:
			// Already converted; identity frames pass them through.
			if !frame.IsIdentity() {
				return modified, &InvariantViolationError{Detail: "pauli-based operation inside a pending Clifford frame"}
			}
			out = append(out, op)
		default:
			return modified, &InvariantViolationError{Detail: fmt.Sprintf("pbc conversion requires a Clifford+T circuit, found %s", op.Kind)}
		}
	}

	c.Ops = out
	return modified, nil
}
