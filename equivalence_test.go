package qtranspile

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

// circuitUnitary builds the full unitary column by column by running
// every basis state through the circuit. Only usable on measurement-free
// circuits at small n.
func circuitUnitary(t *testing.T, c *Circuit) [][]Complex {
	t.Helper()
	require.LessOrEqual(t, c.NumQubits, 5, "state-vector comparison is limited to n <= 5")
	dim := 1 << c.NumQubits
	u := make([][]Complex, dim)
	for k := 0; k < dim; k++ {
		sv := NewBasisState(c.NumQubits, k)
		for _, op := range c.Ops {
			require.NotEqual(t, OpMeasure, op.Kind, "unitary comparison over a measuring circuit")
			sv.ApplyOperation(op)
		}
		u[k] = sv.Amplitudes
	}
	return u
}

// requireEquivalent asserts the two circuits implement the same unitary
// up to a global phase: |tr(U†V)| = 2^n.
func requireEquivalent(t *testing.T, a, b *Circuit) {
	t.Helper()
	require.Equal(t, a.NumQubits, b.NumQubits)
	ua := circuitUnitary(t, a)
	ub := circuitUnitary(t, b)
	dim := len(ua)
	var tr Complex
	for k := 0; k < dim; k++ {
		for i := 0; i < dim; i++ {
			tr += cmplx.Conj(ua[k][i]) * ub[k][i]
		}
	}
	require.True(t, scalar.EqualWithinAbs(cmplx.Abs(tr), float64(dim), 1e-9),
		"unitaries differ: |tr(U†V)| = %g, want %d", cmplx.Abs(tr), dim)
}

// mustCircuit builds a circuit from operations, failing the test on an
// invariant violation.
func mustCircuit(t *testing.T, numQubits, numCbits int, ops ...Operation) *Circuit {
	t.Helper()
	c := NewCircuit(numQubits, numCbits)
	for _, op := range ops {
		require.NoError(t, c.Append(op))
	}
	return c
}

func TestSimulatorPauliRotationMatchesGates(t *testing.T) {
	// t_pauli("+Z") is RZ(pi/4), i.e. T up to phase.
	p, _ := ParsePauliOp("+Z")
	pbc := NewCircuit(1, 0)
	pbc.MustAppend(NewPauliOp(OpTPauli, p))
	gate := mustCircuit(t, 1, 0, NewGate(OpT, 0))
	requireEquivalent(t, pbc, gate)

	// s_pauli("+XX") equals exp(-i*pi/4*XX) up to phase: H on both qubits
	// maps XX to ZZ, and CX·(S on the target)·CX realises the ZZ rotation.
	xx, _ := ParsePauliOp("+XX")
	pbc2 := NewCircuit(2, 0)
	pbc2.MustAppend(NewPauliOp(OpSPauli, xx))
	ladder := mustCircuit(t, 2, 0,
		NewGate(OpH, 0), NewGate(OpH, 1),
		NewGate(OpCX, 0, 1),
		NewGate(OpS, 1),
		NewGate(OpCX, 0, 1),
		NewGate(OpH, 0), NewGate(OpH, 1),
	)
	requireEquivalent(t, pbc2, ladder)
}

func TestSimulatorNegativePauliRotation(t *testing.T) {
	p, _ := ParsePauliOp("-Z")
	pbc := NewCircuit(1, 0)
	pbc.MustAppend(NewPauliOp(OpTPauli, p))
	gate := mustCircuit(t, 1, 0, NewGate(OpTDG, 0))
	requireEquivalent(t, pbc, gate)
}
