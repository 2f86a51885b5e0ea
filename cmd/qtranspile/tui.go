package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"qtranspile"
)

type focus int

const (
	focusInput focus = iota
	focusOutput
)

// sequenceNames drives the sequence picker, in menu order.
var sequenceNames = []string{
	"BASIC_PREPROCESSING",
	"FULL_PREPROCESSING",
	"TO_CLIFFORD_T",
	"TO_PBC",
	"TO_PBC_OPTIMIZED",
	"TO_CLIFFORD_REDUCTION",
}

// viewerModel shows the circuit before and after transpilation and
// re-runs the selected sequence on demand.
type viewerModel struct {
	input    *qtranspile.Circuit
	output   *qtranspile.Circuit
	cfg      qtranspile.PassConfig
	log      zerolog.Logger
	selected int
	focused  focus
	summary  string
	errText  string
	inView   viewport.Model
	outView  viewport.Model
	width    int
	height   int
	ready    bool
}

func newViewerModel(c *qtranspile.Circuit, kinds []qtranspile.PassKind, cfg qtranspile.PassConfig, log zerolog.Logger) viewerModel {
	selected := 0
	for i, name := range sequenceNames {
		if seq, ok := qtranspile.SequenceByName(name); ok && sameKinds(seq, kinds) {
			selected = i
			break
		}
	}
	return viewerModel{input: c, cfg: cfg, log: log, selected: selected}
}

func sameKinds(a, b []qtranspile.PassKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (m viewerModel) Init() tea.Cmd { return nil }

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		panelW := max(msg.Width/2-4, 20)
		panelH := max(msg.Height-10, 5)
		m.inView = viewport.New(panelW, panelH)
		m.outView = viewport.New(panelW, panelH)
		m.inView.SetContent(qtranspile.Render(m.input))
		if m.output != nil {
			m.outView.SetContent(qtranspile.Render(m.output))
		}
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.focused == focusInput {
				m.focused = focusOutput
			} else {
				m.focused = focusInput
			}
		case "left", "h":
			m.selected = (m.selected + len(sequenceNames) - 1) % len(sequenceNames)
		case "right", "l":
			m.selected = (m.selected + 1) % len(sequenceNames)
		case "enter", "r":
			m.run()
		default:
			if m.ready {
				if m.focused == focusInput {
					m.inView, _ = m.inView.Update(msg)
				} else {
					m.outView, _ = m.outView.Update(msg)
				}
			}
		}
	}
	return m, nil
}

// run executes the selected sequence on a copy of the input.
func (m *viewerModel) run() {
	kinds, _ := qtranspile.SequenceByName(sequenceNames[m.selected])
	cfg := m.cfg
	cfg.Silent = true

	t := qtranspile.NewTranspiler(
		qtranspile.WithLogger(m.log),
		qtranspile.WithOutput(io.Discard),
	)
	out, err := t.Execute(m.input.Clone(), kinds, cfg)
	m.output = out
	m.errText = ""
	if err != nil {
		m.errText = err.Error()
	}

	var sb strings.Builder
	for _, s := range t.History() {
		state := "no"
		switch {
		case s.Skipped:
			state = "skipped"
		case s.Modified:
			state = "yes"
		}
		fmt.Fprintf(&sb, "%-22s %-8s %4d -> %-4d depth %-4d t %d\n",
			s.Name, state, s.GatesBefore, s.GatesAfter, s.DepthAfter, s.TCountAfter)
	}
	m.summary = sb.String()
	if m.ready {
		m.outView.SetContent(qtranspile.Render(m.output))
	}
}

func (m viewerModel) View() string {
	if !m.ready {
		return "loading..."
	}

	var menu strings.Builder
	for i, name := range sequenceNames {
		if i == m.selected {
			menu.WriteString(menuSelectedStyle.Render("[" + name + "]"))
		} else {
			menu.WriteString(menuNormalStyle.Render(" " + name + " "))
		}
		menu.WriteString(" ")
	}

	inPanel := panelStyle(m.focused == focusInput).Render(
		titleStyle.Render("input") + "\n" + m.inView.View())
	outContent := dimText.Render("(press r to run)")
	if m.output != nil {
		outContent = m.outView.View()
	}
	outPanel := panelStyle(m.focused == focusOutput).Render(
		titleStyle.Render("output") + "\n" + outContent)

	body := lipgloss.JoinHorizontal(lipgloss.Top, inPanel, outPanel)

	status := m.summary
	if m.errText != "" {
		status += errStyle.Render("error: "+m.errText) + "\n"
	}
	help := dimText.Render("←/→ sequence · r run · tab focus · ↑/↓ scroll · q quit")

	return menu.String() + "\n" + body + "\n" + status + help
}

func runTUI(c *qtranspile.Circuit, kinds []qtranspile.PassKind, cfg qtranspile.PassConfig, log zerolog.Logger) error {
	p := tea.NewProgram(newViewerModel(c, kinds, cfg, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	menuSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ff9e64"))

	menuNormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0caf5"))

	dimText = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#565f89"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e"))
)

func panelStyle(active bool) lipgloss.Style {
	border := lipgloss.Color("#565f89")
	if active {
		border = lipgloss.Color("#7aa2f7")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}
