package qtranspile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveTrivialRZTable(t *testing.T) {
	c := mustCircuit(t, 1, 0,
		NewRotation(OpRZ, 0, 0),
		NewRotation(OpRZ, math.Pi, 0),
		NewRotation(OpRZ, math.Pi/4, 0),
	)
	pass := &RemoveTrivialRZPass{}
	modified, err := pass.Run(c)
	require.NoError(t, err)
	assert.True(t, modified)
	assert.Equal(t, []OpKind{OpZ, OpT}, kinds(c.Ops))
}

func TestRemoveTrivialRZAllMultiples(t *testing.T) {
	cases := []struct {
		theta float64
		want  []OpKind
	}{
		{0, nil},
		{math.Pi / 4, []OpKind{OpT}},
		{-math.Pi / 4, []OpKind{OpTDG}},
		{math.Pi / 2, []OpKind{OpS}},
		{-math.Pi / 2, []OpKind{OpSDG}},
		{3 * math.Pi / 4, []OpKind{OpS, OpT}},
		{-3 * math.Pi / 4, []OpKind{OpSDG, OpTDG}},
		{math.Pi, []OpKind{OpZ}},
		{-math.Pi, []OpKind{OpZ}},
		{2 * math.Pi, nil},
		{9 * math.Pi / 4, []OpKind{OpT}}, // wraps to pi/4
	}
	for _, tc := range cases {
		c := mustCircuit(t, 1, 0, NewRotation(OpRZ, tc.theta, 0))
		_, err := (&RemoveTrivialRZPass{}).Run(c)
		require.NoError(t, err)
		assert.Equal(t, tc.want, kinds(c.Ops), "theta = %g", tc.theta)
	}
}

func TestRemoveTrivialRZEquivalence(t *testing.T) {
	for _, theta := range []float64{math.Pi / 4, -math.Pi / 2, 3 * math.Pi / 4, math.Pi, -3 * math.Pi / 4} {
		before := mustCircuit(t, 1, 0, NewRotation(OpRZ, theta, 0))
		after := before.Clone()
		_, err := (&RemoveTrivialRZPass{}).Run(after)
		require.NoError(t, err)
		requireEquivalent(t, before, after)
	}
}

func TestRemoveTrivialRZTolerance(t *testing.T) {
	// Inside tolerance: rewritten. Outside: untouched.
	inside := mustCircuit(t, 1, 0, NewRotation(OpRZ, math.Pi/4+1e-12, 0))
	modified, err := (&RemoveTrivialRZPass{}).Run(inside)
	require.NoError(t, err)
	assert.True(t, modified)
	assert.Equal(t, []OpKind{OpT}, kinds(inside.Ops))

	outside := mustCircuit(t, 1, 0, NewRotation(OpRZ, math.Pi/4+1e-6, 0))
	modified, err = (&RemoveTrivialRZPass{}).Run(outside)
	require.NoError(t, err)
	assert.False(t, modified)
	assert.Equal(t, []OpKind{OpRZ}, kinds(outside.Ops))
}

func TestRemoveTrivialRZLeavesOtherGates(t *testing.T) {
	c := mustCircuit(t, 2, 0,
		NewGate(OpH, 0),
		NewRotation(OpRZ, 0.3, 1),
		NewGate(OpCX, 0, 1),
	)
	modified, err := (&RemoveTrivialRZPass{}).Run(c)
	require.NoError(t, err)
	assert.False(t, modified)
	assert.Equal(t, []OpKind{OpH, OpRZ, OpCX}, kinds(c.Ops))
}
