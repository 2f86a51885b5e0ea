package qtranspile

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// trivialRZTolerance is the absolute tolerance for recognising an RZ
// angle as a multiple of pi/4.
const trivialRZTolerance = 1e-10

// RemoveTrivialRZPass replaces RZ gates whose angle is a multiple of
// pi/4 (within tolerance) by the equivalent minimal Clifford+T
// fragment, and drops zero rotations entirely. Global phase is not
// preserved.
type RemoveTrivialRZPass struct{}

func (p *RemoveTrivialRZPass) Name() string { return string(PassRemoveTrivialRZ) }

func (p *RemoveTrivialRZPass) Run(c *Circuit) (bool, error) {
	out := make([]Operation, 0, len(c.Ops))
	modified := false
	for _, op := range c.Ops {
		if op.Kind != OpRZ {
			out = append(out, op)
			continue
		}
		k, ok := trivialQuarterTurns(op.Theta)
		if !ok {
			out = append(out, op)
			continue
		}
		out = append(out, quarterTurnGates(k, op.Qubits[0])...)
		modified = true
	}
	c.Ops = out
	return modified, nil
}

// trivialQuarterTurns normalises theta into (-pi, pi] and returns the
// nearest multiple k of pi/4 in -4..4 when within tolerance.
func trivialQuarterTurns(theta float64) (int, bool) {
	phi := math.Mod(theta, 2*math.Pi)
	if phi > math.Pi {
		phi -= 2 * math.Pi
	} else if phi <= -math.Pi {
		phi += 2 * math.Pi
	}
	for k := -4; k <= 4; k++ {
		if scalar.EqualWithinAbs(phi, float64(k)*math.Pi/4, trivialRZTolerance) {
			return k, true
		}
	}
	return 0, false
}

// quarterTurnGates returns the minimal Clifford+T fragment equivalent
// (up to global phase) to RZ(k*pi/4) on the given qubit.
func quarterTurnGates(k, q int) []Operation {
	switch k {
	case 0:
		return nil
	case 1:
		return []Operation{NewGate(OpT, q)}
	case -1:
		return []Operation{NewGate(OpTDG, q)}
	case 2:
		return []Operation{NewGate(OpS, q)}
	case -2:
		return []Operation{NewGate(OpSDG, q)}
	case 3:
		return []Operation{NewGate(OpS, q), NewGate(OpT, q)}
	case -3:
		return []Operation{NewGate(OpSDG, q), NewGate(OpTDG, q)}
	default: // k = ±4
		return []Operation{NewGate(OpZ, q)}
	}
}
