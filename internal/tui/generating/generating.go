// Package generating provides the TUI step that waits for content generation.
package generating

import (
	"context"
	"fmt"
	"strings"

	"github.com/alkime/teeshot/internal/genai"
	"github.com/alkime/teeshot/internal/session"
	"github.com/alkime/teeshot/internal/tui/components/labeledspinner"
	"github.com/alkime/teeshot/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Func produces a session, typically by calling the text backend.
type Func func(ctx context.Context) (*session.Session, error)

// DoneMsg carries the generated session.
type DoneMsg struct {
	Session *session.Session
}

// ErrorMsg reports a failed generation.
type ErrorMsg struct {
	Err error
}

// KeyMap defines the key bindings shown after a failure.
type KeyMap struct {
	Retry key.Binding
}

// DefaultKeyMap returns the default key bindings for the generating step.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
	}
}

// Model represents the generating step UI state.
type Model struct {
	ctx     context.Context
	run     Func
	keys    KeyMap
	spinner labeledspinner.Model
	err     error
}

// New creates the step. subtitle describes the request being generated.
func New(ctx context.Context, run Func, subtitle string) Model {
	return Model{
		ctx:  ctx,
		run:  run,
		keys: DefaultKeyMap(),
		spinner: labeledspinner.New(
			spinner.Pulse,
			"콘텐츠 생성 중...",
			subtitle,
			"AI가 콘텐츠를 작성하고 있습니다",
		).Start(),
	}
}

// Init starts the spinner and the generation.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Init(), m.generateCmd())
}

// Update handles messages for the generating step.
func (m Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch teaMsg := teaMsg.(type) {
	case ErrorMsg:
		m.err = teaMsg.Err
		return m, nil

	case tea.KeyMsg:
		if m.err != nil && key.Matches(teaMsg, m.keys.Retry) {
			m.err = nil
			m.spinner = m.spinner.Start()
			return m, tea.Batch(m.spinner.Spinner.Tick, m.generateCmd())
		}
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(teaMsg)

	return m, cmd
}

// View renders the spinner, or the failure with a retry hint.
func (m Model) View() string {
	if m.err == nil {
		return m.spinner.View()
	}

	var sb strings.Builder
	sb.WriteString(style.Error.Render("생성 실패"))
	sb.WriteString("\n\n")
	sb.WriteString(genai.UserMessage(m.err))
	sb.WriteString("\n\n")
	sb.WriteString(style.Help.Render("["))
	sb.WriteString(style.Key.Render(m.keys.Retry.Help().Key))
	sb.WriteString(style.Help.Render("] " + m.keys.Retry.Help().Desc + "  ["))
	sb.WriteString(style.Key.Render("q"))
	sb.WriteString(style.Help.Render("] quit"))

	return sb.String()
}

// Err returns the last failure, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) generateCmd() tea.Cmd {
	return func() tea.Msg {
		sess, err := m.run(m.ctx)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to generate content: %w", err)}
		}

		return DoneMsg{Session: sess}
	}
}
