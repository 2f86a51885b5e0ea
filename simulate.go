package qtranspile

import (
	"math"
	"math/cmplx"
)

type Complex = complex128

// StateVector is a dense n-qubit state used by the test suite for
// projective unitary comparison. Qubit q corresponds to bit 1<<q of
// the basis index.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]Complex, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// NewBasisState prepares |k> over numQubits qubits.
func NewBasisState(numQubits, k int) *StateVector {
	s := NewStateVector(numQubits)
	s.Amplitudes[0] = 0
	s.Amplitudes[k] = 1
	return s
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// ApplyOperation applies one circuit operation to the state.
// Measurements, Pauli measurements and barriers are no-ops here.
func (s *StateVector) ApplyOperation(op Operation) {
	switch op.Kind {
	case OpH:
		s.applyH(op.Qubits[0])
	case OpX:
		s.applyX(op.Qubits[0])
	case OpY:
		s.applyY(op.Qubits[0])
	case OpZ:
		s.applyZ(op.Qubits[0])
	case OpS:
		s.applyS(op.Qubits[0], false)
	case OpSDG:
		s.applyS(op.Qubits[0], true)
	case OpT:
		s.applyT(op.Qubits[0], false)
	case OpTDG:
		s.applyT(op.Qubits[0], true)
	case OpSX:
		s.applyH(op.Qubits[0])
		s.applyS(op.Qubits[0], false)
		s.applyH(op.Qubits[0])
	case OpSXDG:
		s.applyH(op.Qubits[0])
		s.applyS(op.Qubits[0], true)
		s.applyH(op.Qubits[0])
	case OpRX:
		s.applyRX(op.Qubits[0], op.Theta)
	case OpRY:
		s.applyRY(op.Qubits[0], op.Theta)
	case OpRZ:
		s.applyRZ(op.Qubits[0], op.Theta)
	case OpCX:
		s.applyCX(op.Qubits[0], op.Qubits[1])
	case OpCZ:
		s.applyCZ(op.Qubits[0], op.Qubits[1])
	case OpSWAP:
		s.applySWAP(op.Qubits[0], op.Qubits[1])
	case OpCCX:
		s.applyCCX(op.Qubits[0], op.Qubits[1], op.Qubits[2])
	case OpReset:
		s.applyReset(op.Qubits[0])
	case OpTPauli:
		s.applyPauliRotation(op.Pauli, math.Pi/4)
	case OpSPauli:
		s.applyPauliRotation(op.Pauli, math.Pi/2)
	case OpZPauli:
		s.applyPauliRotation(op.Pauli, math.Pi)
	case OpMeasure, OpMPauli, OpBarrier:
	}
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = hFactor * (s.Amplitudes[i] + s.Amplitudes[j])
			newAmps[j] = hFactor * (s.Amplitudes[i] - s.Amplitudes[j])
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyY(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = 1i*s.Amplitudes[j], -1i*s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyZ(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applyS(q int, dagger bool) {
	n := len(s.Amplitudes)
	bit := 1 << q
	factor := 1i
	if dagger {
		factor = -1i
	}
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyT(q int, dagger bool) {
	n := len(s.Amplitudes)
	bit := 1 << q
	var factor Complex
	if dagger {
		factor = cmplx.Exp(complex(0, -math.Pi/4))
	} else {
		factor = cmplx.Exp(complex(0, math.Pi/4))
	}
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyRX(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = c*s.Amplitudes[i] + js*s.Amplitudes[j]
			newAmps[j] = js*s.Amplitudes[i] + c*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyRY(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	s_ := complex(math.Sin(theta/2), 0)
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = c*s.Amplitudes[i] - s_*s.Amplitudes[j]
			newAmps[j] = s_*s.Amplitudes[i] + c*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyRZ(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta/2))
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applySWAP(q1, q2 int) {
	n := len(s.Amplitudes)
	bit1 := 1 << q1
	bit2 := 1 << q2
	for i := 0; i < n; i++ {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i & ^bit1) | bit2
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCCX(c1, c2, target int) {
	n := len(s.Amplitudes)
	b1, b2 := 1<<c1, 1<<c2
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&b1 != 0 && i&b2 != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyReset(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q

	prob0 := 0.0
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			prob0 += real(s.Amplitudes[i] * cmplx.Conj(s.Amplitudes[i]))
		}
	}

	norm := 1.0
	if prob0 > 0 {
		norm = math.Sqrt(prob0)
	}

	for i := 0; i < n; i++ {
		if i&bit == 0 {
			s.Amplitudes[i] = s.Amplitudes[i] / complex(norm, 0)
		} else {
			s.Amplitudes[i] = 0
		}
	}
}

// applyPauliRotation applies exp(-i*theta/2*P) directly:
// cos(theta/2)|psi> - i*sin(theta/2)*P|psi>.
func (s *StateVector) applyPauliRotation(p PauliOp, theta float64) {
	n := len(s.Amplitudes)
	cosHalf := complex(math.Cos(theta/2), 0)
	sinHalf := complex(0, -math.Sin(theta/2))

	pPsi := s.applyPauli(p)
	for i := 0; i < n; i++ {
		s.Amplitudes[i] = cosHalf*s.Amplitudes[i] + sinHalf*pPsi[i]
	}
}

// applyPauli returns P|psi> without modifying the state. The X/Y mask
// flips basis bits; Z/Y factors contribute parity phases and each Y a
// factor of i.
func (s *StateVector) applyPauli(p PauliOp) []Complex {
	n := len(s.Amplitudes)
	xMask := 0
	zMask := 0
	numY := 0
	for q := 0; q < p.NumQubits(); q++ {
		switch p.Letter(q) {
		case 'X':
			xMask |= 1 << q
		case 'Z':
			zMask |= 1 << q
		case 'Y':
			xMask |= 1 << q
			zMask |= 1 << q
			numY++
		}
	}
	base := Complex(1)
	for i := 0; i < numY; i++ {
		base *= 1i
	}
	if p.Negative() {
		base = -base
	}

	out := make([]Complex, n)
	for i := 0; i < n; i++ {
		phase := base
		if bitsCount(i&zMask)%2 == 1 {
			phase = -phase
		}
		out[i^xMask] = phase * s.Amplitudes[i]
	}
	return out
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

func (s *StateVector) GetQubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	n := len(s.Amplitudes)

	for i := 0; i < n; i++ {
		prob := real(s.Amplitudes[i] * cmplx.Conj(s.Amplitudes[i]))
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}

	return probs
}

// SimulateCircuit runs every unitary operation of the circuit on |0...0>.
func SimulateCircuit(c *Circuit) *StateVector {
	if c.NumQubits == 0 {
		return NewStateVector(1)
	}
	state := NewStateVector(c.NumQubits)
	for _, op := range c.Ops {
		state.ApplyOperation(op)
	}
	return state
}

func bitsCount(x int) int {
	count := 0
	for x > 0 {
		count += x & 1
		x >>= 1
	}
	return count
}
