package qtranspile

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTranspiler(opts ...Option) *Transpiler {
	base := []Option{WithLogger(zerolog.Nop()), WithOutput(io.Discard)}
	return NewTranspiler(append(base, opts...)...)
}

func silentConfig() PassConfig {
	cfg := DefaultPassConfig()
	cfg.Silent = true
	return cfg
}

func TestExecuteEmptyCircuit(t *testing.T) {
	c := NewCircuit(1, 0)
	tr := newTestTranspiler()
	result, err := tr.Execute(c, ToCliffordT, silentConfig())
	require.NoError(t, err)
	assert.Empty(t, result.Ops)
	assert.Empty(t, result.CountOps())
	assert.Equal(t, 0, result.Depth())
	assert.Equal(t, 1, result.NumQubits)
}

func TestExecuteSingleHUnchanged(t *testing.T) {
	c := mustCircuit(t, 1, 0, NewGate(OpH, 0))
	tr := newTestTranspiler()
	result, err := tr.Execute(c, ToCliffordT, silentConfig())
	require.NoError(t, err)
	assert.Equal(t, []OpKind{OpH}, kinds(result.Ops))
}

func TestExecuteSkipsUnknownPass(t *testing.T) {
	c := mustCircuit(t, 1, 0, NewGate(OpH, 0))
	tr := newTestTranspiler()
	_, err := tr.Execute(c, []PassKind{"NO_SUCH_PASS", PassGateFusion}, silentConfig())
	require.NoError(t, err)
	// Only the known pass shows up in the history.
	require.Len(t, tr.History(), 1)
	assert.Equal(t, string(PassGateFusion), tr.History()[0].Name)
}

func TestExecuteSkipsUnavailableSynthesis(t *testing.T) {
	c := mustCircuit(t, 1, 0, NewRotation(OpRZ, 0.3, 0))
	tr := newTestTranspiler() // no backend
	result, err := tr.Execute(c, []PassKind{PassSynthesizeRZ, PassGateFusion}, silentConfig())
	require.NoError(t, err)
	// The rz survives untouched.
	assert.Equal(t, []OpKind{OpRZ}, kinds(result.Ops))
	require.Len(t, tr.History(), 2)
	assert.True(t, tr.History()[0].Skipped)
}

func TestExecuteUsesConfiguredSynthesizer(t *testing.T) {
	backend := &fakeSynthesizer{word: []OpKind{OpH, OpT, OpH}}
	c := mustCircuit(t, 1, 0, NewRotation(OpRZ, 0.3, 0))
	tr := newTestTranspiler(WithSynthesizer(backend))
	result, err := tr.Execute(c, FullPreprocessing, silentConfig())
	require.NoError(t, err)
	assert.Equal(t, []OpKind{OpH, OpT, OpH}, kinds(result.Ops))
	assert.True(t, result.IsCliffordT())
}

func TestExecuteAbortsOnPassError(t *testing.T) {
	// Clifford reduction rejects the rz; the pipeline stops there and
	// the partially transformed circuit is returned.
	c := mustCircuit(t, 2, 0,
		NewGate(OpSWAP, 0, 1),
		NewRotation(OpRZ, 0.3, 0),
	)
	tr := newTestTranspiler()
	result, err := tr.Execute(c, []PassKind{PassDecompose, PassCliffordReduction, PassGateFusion}, silentConfig())
	require.Error(t, err)
	var violation *InvariantViolationError
	assert.ErrorAs(t, err, &violation)
	require.NotNil(t, result)
	// Decompose already ran: the swap is gone.
	assert.NotContains(t, kinds(result.Ops), OpSWAP)
	// Gate fusion never ran.
	require.Len(t, tr.History(), 2)
}

func TestExecuteEpsilonOverrideReachesPass(t *testing.T) {
	backend := &fakeSynthesizer{word: []OpKind{OpT}}
	c := mustCircuit(t, 1, 0, NewRotation(OpRZ, 0.5, 0))
	tr := newTestTranspiler(WithSynthesizer(backend))
	cfg := silentConfig()
	cfg.EpsilonOverride = 1e-3
	_, err := tr.Execute(c, []PassKind{PassSynthesizeRZ}, cfg)
	require.NoError(t, err)
	require.Len(t, backend.requests, 1)
	assert.Equal(t, 1e-3, backend.requests[0].epsilon)
}

func TestExecuteRecordsHistory(t *testing.T) {
	c := mustCircuit(t, 3, 0, NewGate(OpCCX, 0, 1, 2))
	tr := newTestTranspiler()
	_, err := tr.Execute(c, BasicPreprocessing, silentConfig())
	require.NoError(t, err)
	h := tr.History()
	require.Len(t, h, 2)
	assert.Equal(t, string(PassDecompose), h[0].Name)
	assert.True(t, h[0].Modified)
	assert.Equal(t, 1, h[0].GatesBefore)
	assert.Equal(t, 15, h[0].GatesAfter)
	assert.Equal(t, string(PassRemoveTrivialRZ), h[1].Name)
	assert.False(t, h[1].Modified)
}

func TestExecuteEndToEndPBCOptimized(t *testing.T) {
	c := mustCircuit(t, 2, 1,
		NewGate(OpH, 0),
		NewGate(OpT, 0),
		NewGate(OpT, 0),
		NewGate(OpCX, 0, 1),
		NewMeasure(1, 0),
	)
	tr := newTestTranspiler()
	result, err := tr.Execute(c, ToPBCOptimized, silentConfig())
	require.NoError(t, err)
	assert.True(t, result.IsPBC())
	// The two equal T rotations fused into one s_pauli.
	counts := result.CountOps()
	assert.Equal(t, 0, counts["t_pauli"])
	assert.Equal(t, 1, counts["s_pauli"])
	assert.Equal(t, 1, counts["m_pauli"])
}

func TestExecuteKeepCCXFlag(t *testing.T) {
	c := mustCircuit(t, 3, 0, NewGate(OpCCX, 0, 1, 2))
	tr := newTestTranspiler()
	cfg := silentConfig()
	cfg.KeepCCX = true
	result, err := tr.Execute(c, []PassKind{PassDecompose}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []OpKind{OpCCX}, kinds(result.Ops))
}
