package qtranspile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCliffordReductionRejectsNonCliffordT(t *testing.T) {
	c := mustCircuit(t, 1, 0, NewRotation(OpRZ, 0.3, 0))
	_, err := (&CliffordReductionPass{}).Run(c)
	var violation *InvariantViolationError
	require.ErrorAs(t, err, &violation)
}

func TestCliffordReductionPreservesTCount(t *testing.T) {
	c := mustCircuit(t, 3, 0,
		NewGate(OpH, 0),
		NewGate(OpCX, 0, 1),
		NewGate(OpT, 1),
		NewGate(OpS, 2),
		NewGate(OpCX, 1, 2),
		NewGate(OpTDG, 2),
		NewGate(OpH, 1),
		NewGate(OpT, 0),
	)
	before := c.TCount()
	_, err := (&CliffordReductionPass{}).Run(c)
	require.NoError(t, err)
	assert.Equal(t, before, c.TCount())
	assert.True(t, c.IsCliffordT())
}

func TestCliffordReductionEquivalence(t *testing.T) {
	cases := [][]Operation{
		{NewGate(OpH, 0)},
		{NewGate(OpH, 0), NewGate(OpS, 0)},
		{NewGate(OpH, 0), NewGate(OpT, 0), NewGate(OpH, 0)},
		{NewGate(OpX, 0), NewGate(OpY, 1), NewGate(OpCX, 0, 1)},
		{NewGate(OpH, 0), NewGate(OpCX, 0, 1), NewGate(OpT, 1), NewGate(OpCX, 0, 1), NewGate(OpH, 0)},
		{NewGate(OpS, 0), NewGate(OpCX, 1, 0), NewGate(OpTDG, 0), NewGate(OpSDG, 1), NewGate(OpT, 1)},
	}
	for i, ops := range cases {
		n := 2
		before := mustCircuit(t, n, 0, ops...)
		after := before.Clone()
		_, err := (&CliffordReductionPass{}).Run(after)
		require.NoError(t, err, "case %d", i)
		requireEquivalent(t, before, after)
		assert.Equal(t, before.TCount(), after.TCount(), "case %d", i)
		assert.LessOrEqual(t, after.Depth(), before.Depth(), "case %d", i)
	}
}

func TestCliffordReductionDepthBound(t *testing.T) {
	// H(0); T(0); T(1) has depth 2. The raw rewrite would be
	// H(0) T(0) H(0) T(1) H(0) (depth 4): the rotation-network H and
	// the synthesised trailing H must cancel instead of stacking up.
	c := mustCircuit(t, 2, 0,
		NewGate(OpH, 0),
		NewGate(OpT, 0),
		NewGate(OpT, 1),
	)
	before := c.Clone()
	_, err := (&CliffordReductionPass{}).Run(c)
	require.NoError(t, err)
	requireEquivalent(t, before, c)
	assert.Equal(t, before.TCount(), c.TCount())
	assert.LessOrEqual(t, c.Depth(), before.Depth())
	assert.Equal(t, 1, c.CountOps()["h"], "boundary H pairs must cancel")
}

func TestCliffordReductionNeverPessimizesDepth(t *testing.T) {
	// A Clifford the generic synthesis would expand (H·S re-emerges as
	// a longer word) is left untouched rather than made deeper.
	c := mustCircuit(t, 2, 0, NewGate(OpH, 0), NewGate(OpS, 0))
	before := c.Clone()
	_, err := (&CliffordReductionPass{}).Run(c)
	require.NoError(t, err)
	requireEquivalent(t, before, c)
	assert.LessOrEqual(t, c.Depth(), before.Depth())
}

func TestCliffordReductionPureCliffordStaysEquivalent(t *testing.T) {
	// A Clifford-only circuit, whether replaced by one synthesised block or
	// kept by the depth guard, stays equivalent and T-free.
	c := mustCircuit(t, 2, 0,
		NewGate(OpH, 0),
		NewGate(OpCX, 0, 1),
		NewGate(OpS, 1),
		NewGate(OpH, 0),
		NewGate(OpCX, 1, 0),
	)
	before := c.Clone()
	_, err := (&CliffordReductionPass{}).Run(c)
	require.NoError(t, err)
	requireEquivalent(t, before, c)
	assert.Equal(t, 0, c.TCount())
}

func TestCliffordReductionKeepsMeasurementTail(t *testing.T) {
	c := mustCircuit(t, 2, 1,
		NewGate(OpH, 0),
		NewGate(OpCX, 0, 1),
		NewMeasure(0, 0),
	)
	_, err := (&CliffordReductionPass{}).Run(c)
	require.NoError(t, err)
	require.NotEmpty(t, c.Ops)
	last := c.Ops[len(c.Ops)-1]
	assert.Equal(t, OpMeasure, last.Kind)
	assert.Equal(t, 0, last.Cbit)

	// The Clifford block before the measurement is still the same
	// unitary as the original prefix.
	prefix := &Circuit{NumQubits: 2, NumCbits: 1, Ops: c.Ops[:len(c.Ops)-1]}
	want := mustCircuit(t, 2, 1, NewGate(OpH, 0), NewGate(OpCX, 0, 1))
	requireEquivalent(t, want, prefix)
}

func TestCliffordReductionBarrierFlush(t *testing.T) {
	c := mustCircuit(t, 1, 0,
		NewGate(OpH, 0),
		NewBarrier(0),
		NewGate(OpT, 0),
	)
	before := c.Clone()
	_, err := (&CliffordReductionPass{}).Run(c)
	require.NoError(t, err)
	requireEquivalent(t, before, c)
	// The H is synthesised before the barrier, not after it.
	barrierAt := -1
	for i, op := range c.Ops {
		if op.Kind == OpBarrier {
			barrierAt = i
		}
	}
	require.GreaterOrEqual(t, barrierAt, 0)
	for _, op := range c.Ops[barrierAt+1:] {
		assert.NotEqual(t, OpH, op.Kind, "Clifford crossed the barrier")
	}
}

func TestCliffordReductionIdleOnCanonicalInput(t *testing.T) {
	c := mustCircuit(t, 1, 0, NewGate(OpT, 0))
	modified, err := (&CliffordReductionPass{}).Run(c)
	require.NoError(t, err)
	assert.False(t, modified)
	assert.Equal(t, []OpKind{OpT}, kinds(c.Ops))
}
