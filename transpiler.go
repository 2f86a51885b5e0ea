package qtranspile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// PassStat is one row of the pass execution summary.
type PassStat struct {
	Name        string
	Modified    bool
	Skipped     bool
	GatesBefore int
	GatesAfter  int
	DepthAfter  int
	TCountAfter int
}

// Transpiler executes pass sequences over a circuit and records
// per-pass statistics.
type Transpiler struct {
	log     zerolog.Logger
	synth   RZSynthesizer
	out     io.Writer
	history []PassStat
}

// Option configures a Transpiler.
type Option func(*Transpiler)

// WithLogger installs the structured logger used for warnings.
func WithLogger(log zerolog.Logger) Option {
	return func(t *Transpiler) { t.log = log }
}

// WithSynthesizer installs the grid-synthesis backend used by the
// SYNTHESIZE_RZ pass. Without one the pass is skipped with a warning.
func WithSynthesizer(s RZSynthesizer) Option {
	return func(t *Transpiler) { t.synth = s }
}

// WithOutput redirects the pass execution table.
func WithOutput(w io.Writer) Option {
	return func(t *Transpiler) { t.out = w }
}

// NewTranspiler builds a transpiler with the given options.
func NewTranspiler(opts ...Option) *Transpiler {
	t := &Transpiler{
		log: zerolog.New(os.Stderr).With().Timestamp().Logger(),
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// History returns the statistics collected by the last Execute call.
func (t *Transpiler) History() []PassStat { return t.history }

// Execute materialises and runs the passes in order. Unknown pass kinds
// and passes with a missing collaborator are skipped with a warning. A
// failing pass aborts the pipeline; the partially transformed circuit
// is returned alongside the error.
func (t *Transpiler) Execute(c *Circuit, kinds []PassKind, cfg PassConfig) (*Circuit, error) {
	t.history = t.history[:0]
	if !cfg.Silent {
		fmt.Fprintln(t.out, statsTitleStyle.Render("Pass Execution Summary"))
		t.printHeader()
	}

	for _, kind := range kinds {
		pass := t.newPass(kind, cfg)
		if pass == nil {
			t.log.Warn().Str("pass", string(kind)).Msg("unknown pass kind, skipping")
			continue
		}
		gatesBefore := len(c.Ops)
		modified, err := pass.Run(c)

		var unavailable *CollaboratorUnavailableError
		if errors.As(err, &unavailable) {
			t.log.Warn().Str("pass", pass.Name()).Str("reason", unavailable.Detail).Msg("pass unavailable, skipping")
			stat := PassStat{Name: pass.Name(), Skipped: true, GatesBefore: gatesBefore, GatesAfter: len(c.Ops), DepthAfter: c.Depth(), TCountAfter: c.TCount()}
			t.history = append(t.history, stat)
			if !cfg.Silent {
				t.printRow(stat)
			}
			continue
		}

		stat := PassStat{
			Name:        pass.Name(),
			Modified:    modified,
			GatesBefore: gatesBefore,
			GatesAfter:  len(c.Ops),
			DepthAfter:  c.Depth(),
			TCountAfter: c.TCount(),
		}
		t.history = append(t.history, stat)
		if !cfg.Silent {
			t.printRow(stat)
		}
		if err != nil {
			t.log.Error().Str("pass", pass.Name()).Err(err).Msg("pass failed, aborting pipeline")
			return c, fmt.Errorf("pass %s: %w", pass.Name(), err)
		}
	}

	if !cfg.Silent {
		fmt.Fprintln(t.out)
		fmt.Fprint(t.out, c.Stats())
	}
	return c, nil
}

// newPass materialises a pass object for the kind, or nil when the
// kind is unknown.
func (t *Transpiler) newPass(kind PassKind, cfg PassConfig) Pass {
	switch kind {
	case PassDecompose:
		return &DecomposePass{KeepCCX: cfg.KeepCCX}
	case PassRemoveTrivialRZ:
		return &RemoveTrivialRZPass{}
	case PassGateFusion:
		return &GateFusionPass{}
	case PassRemovePauli:
		return &RemovePauliPass{}
	case PassToPBC:
		return &PBCPass{KeepCX: cfg.KeepCX}
	case PassCliffordReduction:
		return &CliffordReductionPass{}
	case PassSynthesizeRZ:
		return &SynthesizeRZPass{Backend: t.synth, EpsilonOverride: cfg.EpsilonOverride}
	case PassTFuse:
		return &TFusePass{}
	}
	return nil
}

var (
	statsTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff9e64"))
	statsHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7dcfff"))
	statsRuleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
)

func (t *Transpiler) printHeader() {
	fmt.Fprintln(t.out, statsHeaderStyle.Render(fmt.Sprintf(
		"%-22s %-9s %13s %13s %7s %8s", "Pass", "Modified", "Gates Before", "Gates After", "Depth", "T-Count")))
	fmt.Fprintln(t.out, statsRuleStyle.Render(strings.Repeat("-", 78)))
}

func (t *Transpiler) printRow(s PassStat) {
	state := "No"
	switch {
	case s.Skipped:
		state = "Skipped"
	case s.Modified:
		state = "Yes"
	}
	fmt.Fprintf(t.out, "%-22s %-9s %13d %13d %7d %8d\n",
		s.Name, state, s.GatesBefore, s.GatesAfter, s.DepthAfter, s.TCountAfter)
}
