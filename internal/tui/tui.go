// Package tui is the terminal front end: it generates content with a spinner
// and then previews it with live image states.
package tui

import (
	"context"

	"github.com/alkime/teeshot/internal/session"
	"github.com/alkime/teeshot/internal/tui/components/phases"
	"github.com/alkime/teeshot/internal/tui/generating"
	"github.com/alkime/teeshot/internal/tui/preview"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	stepGenerate = "생성"
	stepPreview  = "미리보기"
)

type model struct {
	cancel context.CancelFunc
	phases tea.Model
}

// New builds the generate-then-preview program model. cancel is called when
// the user quits.
func New(ctx context.Context, cancel context.CancelFunc, run generating.Func, subtitle string, actions preview.Actions) tea.Model {
	return model{
		cancel: cancel,
		phases: phases.New([]phases.Phase{
			phases.NewPhase(stepGenerate, generating.New(ctx, run, subtitle)),
			phases.NewPhase(stepPreview, preview.New(ctx, actions)),
		}).WithHeader(),
	}
}

// NewPreview builds a model that only previews sess.
func NewPreview(ctx context.Context, cancel context.CancelFunc, sess *session.Session, actions preview.Actions) tea.Model {
	return model{
		cancel: cancel,
		phases: phases.New([]phases.Phase{
			phases.NewPhase(stepPreview, loaded{Model: preview.New(ctx, actions), sess: sess}),
		}),
	}
}

func (m model) Init() tea.Cmd {
	return m.phases.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case generating.DoneMsg:
		sess := msg.Session
		return m, tea.Sequence(
			func() tea.Msg { return phases.NextPhaseMsg{} },
			func() tea.Msg { return preview.LoadMsg{Session: sess} },
		)
	}

	var cmd tea.Cmd
	m.phases, cmd = m.phases.Update(msg)

	return m, cmd
}

func (m model) View() string {
	return m.phases.View()
}

// loaded is a preview that loads its session on start.
type loaded struct {
	preview.Model
	sess *session.Session
}

func (l loaded) Init() tea.Cmd {
	sess := l.sess
	return func() tea.Msg { return preview.LoadMsg{Session: sess} }
}
