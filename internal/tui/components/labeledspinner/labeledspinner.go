// Package labeledspinner provides a spinner with a title, subtitle and help
// line that also reports how long it has been spinning.
package labeledspinner

import (
	"fmt"
	"strings"
	"time"

	"github.com/alkime/teeshot/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model displays a spinner with title, subtitle, and help text.
type Model struct {
	Spinner  spinner.Model
	Title    string
	Subtitle string
	Help     string

	started time.Time
	now     func() time.Time
}

// New creates a new labeled spinner with the given configuration.
func New(s spinner.Spinner, title, subtitle, help string) Model {
	sp := spinner.New()
	sp.Spinner = s

	return Model{
		Spinner:  sp,
		Title:    title,
		Subtitle: subtitle,
		Help:     help,
		now:      time.Now,
	}
}

// Init starts the elapsed clock and the spinner.
func (m Model) Init() tea.Cmd {
	return m.Spinner.Tick
}

// Start resets the elapsed clock.
func (m Model) Start() Model {
	m.started = m.now()

	return m
}

// Elapsed is the time since Start, rounded to seconds.
func (m Model) Elapsed() time.Duration {
	if m.started.IsZero() {
		return 0
	}

	return m.now().Sub(m.started).Round(time.Second)
}

// Update handles spinner tick messages.
func (m Model) Update(teaMsg tea.Msg) (Model, tea.Cmd) {
	if tickMsg, ok := teaMsg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(tickMsg)

		return m, cmd
	}

	return m, nil
}

// View renders the spinner, appending the elapsed time to the help line once
// started.
func (m Model) View() string {
	help := m.Help
	if !m.started.IsZero() {
		help = fmt.Sprintf("%s (%s)", help, m.Elapsed())
	}

	var sb strings.Builder

	sb.WriteString(m.Spinner.View())
	sb.WriteString(" ")
	sb.WriteString(style.Title.Render(m.Title))
	sb.WriteString("\n\n")

	sb.WriteString(style.Subtitle.Render(m.Subtitle))
	sb.WriteString("\n\n")

	sb.WriteString(style.Help.Render(help))

	return sb.String()
}
