package qtranspile

import (
	"fmt"
	"math"
	"math/cmplx"
)

// DefaultEpsilonMultiplier scales |theta| into the default synthesis
// tolerance when no override is configured.
const DefaultEpsilonMultiplier = 1e-10

// RZSynthesizer approximates RZ(theta) by a word over
// {H, S, Sdg, T, Tdg} with operator-norm error at most epsilon. The
// grid-synthesis backend that implements it is an external
// collaborator and may be absent.
type RZSynthesizer interface {
	Synthesize(theta, epsilon float64) ([]OpKind, error)
}

// SynthesizeRZPass replaces every remaining RZ by a Clifford+T word
// from the backend. Audit enables post-verification of the returned
// word against epsilon; a failed audit is fatal.
type SynthesizeRZPass struct {
	Backend         RZSynthesizer
	EpsilonOverride float64
	Audit           bool
}

func (p *SynthesizeRZPass) Name() string { return string(PassSynthesizeRZ) }

// epsilonFor returns the tolerance for one angle: the override when
// set, otherwise |theta| scaled by the default multiplier.
func (p *SynthesizeRZPass) epsilonFor(theta float64) float64 {
	if p.EpsilonOverride >= 0 {
		return p.EpsilonOverride
	}
	return math.Abs(theta) * DefaultEpsilonMultiplier
}

func (p *SynthesizeRZPass) Run(c *Circuit) (bool, error) {
	if p.Backend == nil {
		return false, &CollaboratorUnavailableError{Pass: p.Name(), Detail: "no grid-synthesis backend configured"}
	}
	out := make([]Operation, 0, len(c.Ops))
	modified := false
	for _, op := range c.Ops {
		if op.Kind != OpRZ {
			out = append(out, op)
			continue
		}
		eps := p.epsilonFor(op.Theta)
		word, err := p.Backend.Synthesize(op.Theta, eps)
		if err != nil {
			return modified, fmt.Errorf("synthesize rz(%g): %w", op.Theta, err)
		}
		if p.Audit {
			if dist := wordDistance(word, op.Theta); dist > eps {
				return modified, &NumericalError{Detail: fmt.Sprintf("synthesized word for rz(%g) has error %.3e > epsilon %.3e", op.Theta, dist, eps)}
			}
		}
		q := op.Qubits[0]
		for _, kind := range word {
			out = append(out, NewGate(kind, q))
		}
		modified = true
	}
	c.Ops = out
	return modified, nil
}

// wordDistance computes the phase-invariant operator distance between
// the single-qubit word and RZ(theta).
func wordDistance(word []OpKind, theta float64) float64 {
	u := singleQubitWordMatrix(word)
	rz := [2][2]complex128{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}
	// tr(U† V) normalised; distance = sqrt(2·(1 - |tr|/2)).
	var tr complex128
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			tr += cmplx.Conj(u[j][i]) * rz[j][i]
		}
	}
	f := cmplx.Abs(tr) / 2
	if f > 1 {
		f = 1
	}
	return math.Sqrt(2 * (1 - f))
}

// singleQubitWordMatrix multiplies out a word of single-qubit gates.
func singleQubitWordMatrix(word []OpKind) [2][2]complex128 {
	u := [2][2]complex128{{1, 0}, {0, 1}}
	for _, kind := range word {
		var g [2][2]complex128
		h := complex(1/math.Sqrt2, 0)
		switch kind {
		case OpH:
			g = [2][2]complex128{{h, h}, {h, -h}}
		case OpS:
			g = [2][2]complex128{{1, 0}, {0, 1i}}
		case OpSDG:
			g = [2][2]complex128{{1, 0}, {0, -1i}}
		case OpT:
			g = [2][2]complex128{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}
		case OpTDG:
			g = [2][2]complex128{{1, 0}, {0, cmplx.Exp(complex(0, -math.Pi/4))}}
		case OpX:
			g = [2][2]complex128{{0, 1}, {1, 0}}
		case OpZ:
			g = [2][2]complex128{{1, 0}, {0, -1}}
		default:
			continue
		}
		u = mul2x2(g, u)
	}
	return u
}

func mul2x2(a, b [2][2]complex128) [2][2]complex128 {
	var r [2][2]complex128
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j]
		}
	}
	return r
}
