// Package phases sequences full-screen models and shows which step is active.
package phases

import (
	"strings"

	"github.com/alkime/teeshot/internal/tui/style"
	tea "github.com/charmbracelet/bubbletea"
)

// NextPhaseMsg signals the phases container to advance to the next phase.
type NextPhaseMsg struct{}

// PrevPhaseMsg signals the phases container to go back to the previous phase.
type PrevPhaseMsg struct{}

// GotoPhaseMsg jumps to the phase with the given name. Unknown names are
// ignored.
type GotoPhaseMsg struct {
	Name string
}

// Phase is one named step.
type Phase struct {
	Name string
	mdl  tea.Model
}

// NewPhase wraps mdl as a step called name.
func NewPhase(name string, mdl tea.Model) Phase {
	return Phase{
		Name: name,
		mdl:  mdl,
	}
}

func (p Phase) Init() tea.Cmd {
	return p.mdl.Init()
}

func (p Phase) Update(msg tea.Msg) (Phase, tea.Cmd) {
	updatedMdl, cmd := p.mdl.Update(msg)
	p.mdl = updatedMdl
	return p, cmd
}

func (p Phase) View() string {
	return p.mdl.View()
}

// Model runs one phase at a time. Messages go to the current phase only;
// window sizes go to every phase so later steps start with the right size.
type Model struct {
	phases     []Phase
	curr       int
	showHeader bool
}

// New creates a container starting at the first phase.
func New(phases []Phase) Model {
	return Model{
		phases: phases,
		curr:   0,
	}
}

// WithHeader renders the step names above the current phase.
func (m Model) WithHeader() Model {
	m.showHeader = true
	return m
}

func (m Model) currentPhase() Phase {
	return m.phases[m.curr]
}

func (m Model) Init() tea.Cmd {
	return m.currentPhase().Init()
}

func (m Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch teaMsg := teaMsg.(type) {
	case NextPhaseMsg:
		if m.curr >= len(m.phases)-1 {
			return m, nil
		}
		m.curr++
		return m, m.currentPhase().Init()

	case PrevPhaseMsg:
		if m.curr <= 0 {
			return m, nil
		}
		m.curr--
		return m, m.currentPhase().Init()

	case GotoPhaseMsg:
		for i, p := range m.phases {
			if p.Name == teaMsg.Name && i != m.curr {
				m.curr = i
				return m, m.currentPhase().Init()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		cmds := make([]tea.Cmd, len(m.phases))
		for i := range m.phases {
			m.phases[i], cmds[i] = m.phases[i].Update(teaMsg)
		}
		return m, tea.Batch(cmds...)
	}

	ph, cmd := m.currentPhase().Update(teaMsg)
	m.phases[m.curr] = ph

	return m, cmd
}

func (m Model) View() string {
	if !m.showHeader {
		return m.currentPhase().View()
	}

	return m.header() + "\n\n" + m.currentPhase().View()
}

func (m Model) header() string {
	steps := make([]string, len(m.phases))
	for i, p := range m.phases {
		if i == m.curr {
			steps[i] = style.ActiveStep.Render(p.Name)
		} else {
			steps[i] = style.Step.Render(p.Name)
		}
	}

	return strings.Join(steps, style.Step.Render(" › "))
}

// CurrentPhaseName returns the name of the current phase.
func (m Model) CurrentPhaseName() string {
	return m.currentPhase().Name
}
