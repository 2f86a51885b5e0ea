package qtranspile

// Pass is a single transformation over a circuit. Run mutates the
// circuit in place and reports whether any observable property changed.
// Passes must preserve circuit semantics up to a global phase and must
// terminate on every well-formed circuit.
type Pass interface {
	Name() string
	Run(c *Circuit) (modified bool, err error)
}

// PassKind enumerates the available passes.
type PassKind string

const (
	PassDecompose         PassKind = "DECOMPOSE"
	PassRemoveTrivialRZ   PassKind = "REMOVE_TRIVIAL_RZ"
	PassGateFusion        PassKind = "GATE_FUSION"
	PassRemovePauli       PassKind = "REMOVE_PAULI"
	PassToPBC             PassKind = "TO_PBC"
	PassCliffordReduction PassKind = "CLIFFORD_REDUCTION"
	PassSynthesizeRZ      PassKind = "SYNTHESIZE_RZ"
	PassTFuse             PassKind = "TFUSE"
)

// PassConfig carries the per-pipeline options.
type PassConfig struct {
	// KeepCCX preserves ccx as a primitive during decomposition.
	KeepCCX bool
	// KeepCX passes cx through the PBC conversion verbatim.
	KeepCX bool
	// EpsilonOverride replaces the per-angle synthesis tolerance when
	// non-negative; a negative value selects |theta| * DefaultEpsilonMultiplier.
	EpsilonOverride float64
	// Silent suppresses the pass execution table.
	Silent bool
}

// DefaultPassConfig returns the zero configuration with the epsilon
// override disabled.
func DefaultPassConfig() PassConfig {
	return PassConfig{EpsilonOverride: -1}
}

// Predefined pass sequences for the common workflows.
var (
	BasicPreprocessing = []PassKind{PassDecompose, PassRemoveTrivialRZ}

	FullPreprocessing = []PassKind{PassDecompose, PassRemoveTrivialRZ, PassSynthesizeRZ}

	ToCliffordT = []PassKind{PassDecompose, PassRemoveTrivialRZ, PassSynthesizeRZ, PassGateFusion}

	ToPBC = []PassKind{PassDecompose, PassRemoveTrivialRZ, PassSynthesizeRZ, PassToPBC}

	ToPBCOptimized = []PassKind{PassDecompose, PassRemoveTrivialRZ, PassSynthesizeRZ, PassToPBC, PassTFuse}

	ToCliffordReduction = []PassKind{PassDecompose, PassRemoveTrivialRZ, PassSynthesizeRZ, PassCliffordReduction}
)

// SequenceByName resolves a predefined sequence name, for the CLI and
// pipeline files.
func SequenceByName(name string) ([]PassKind, bool) {
	switch name {
	case "BASIC_PREPROCESSING":
		return BasicPreprocessing, true
	case "FULL_PREPROCESSING":
		return FullPreprocessing, true
	case "TO_CLIFFORD_T":
		return ToCliffordT, true
	case "TO_PBC":
		return ToPBC, true
	case "TO_PBC_OPTIMIZED":
		return ToPBCOptimized, true
	case "TO_CLIFFORD_REDUCTION":
		return ToCliffordReduction, true
	}
	return nil, false
}
