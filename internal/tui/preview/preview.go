// Package preview provides the TUI step that shows generated content and
// follows its image states.
package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/alkime/teeshot/internal/images"
	"github.com/alkime/teeshot/internal/session"
	"github.com/alkime/teeshot/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight = 3
	footerHeight = 3
	minHeight    = 5
	eventBuffer  = 32
)

// Actions are the operations the preview can trigger. Either may be nil.
type Actions struct {
	// GenerateImages resolves every image prompt of the session.
	GenerateImages func(ctx context.Context, sess *session.Session) error
	// Export writes the export row somewhere and returns where.
	Export func(sess *session.Session) (string, error)
}

// LoadMsg hands the preview a session to show.
type LoadMsg struct {
	Session *session.Session
}

type eventMsg struct {
	event images.Event
}

type imagesDoneMsg struct {
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

// Model represents the preview step UI state.
type Model struct {
	ctx      context.Context
	actions  Actions
	keys     KeyMap
	viewport viewport.Model
	sess     *session.Session
	events   chan images.Event
	stop     func()
	status   string
	busy     bool
	width    int
	height   int
}

// New creates an empty preview; it shows content after a LoadMsg.
func New(ctx context.Context, actions Actions) Model {
	return Model{
		ctx:      ctx,
		actions:  actions,
		keys:     DefaultKeyMap(),
		viewport: viewport.New(0, minHeight),
	}
}

// Init returns the initial command for the preview step.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the preview step.
func (m Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch teaMsg := teaMsg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = teaMsg.Width, teaMsg.Height
		m.resize()
		return m, nil

	case LoadMsg:
		return m.load(teaMsg.Session)

	case eventMsg:
		m.refresh()
		return m, m.waitForEvent()

	case imagesDoneMsg:
		m.busy = false
		if teaMsg.err != nil {
			m.status = style.Warning.Render("일부 이미지 생성 실패")
		} else {
			m.status = style.Success.Render("모든 이미지 생성 완료")
		}
		return m, nil

	case exportDoneMsg:
		if teaMsg.err != nil {
			m.status = style.Error.Render(teaMsg.err.Error())
		} else {
			m.status = style.Success.Render("저장됨: ") + style.Muted.Render(teaMsg.path)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(teaMsg, m.keys.Quit):
			m.close()
			return m, tea.Quit
		case key.Matches(teaMsg, m.keys.Images):
			return m.generateImages()
		case key.Matches(teaMsg, m.keys.Export):
			return m, m.export()
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(teaMsg)

	return m, cmd
}

// View renders the preview step UI.
func (m Model) View() string {
	if m.sess == nil {
		return style.Muted.Render("Initializing...")
	}

	var sb strings.Builder

	title := fmt.Sprintf("=== %s ===", m.sess.Format.Hint())
	sb.WriteString(style.Title.Render(title))
	sb.WriteString("\n\n")

	sb.WriteString(style.Viewport.Render(m.viewport.View()))
	sb.WriteString("\n")
	if m.status != "" {
		sb.WriteString(m.status)
	}
	sb.WriteString("\n")

	for i, b := range m.keys.ShortHelp() {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(style.Help.Render("["))
		sb.WriteString(style.Key.Render(b.Help().Key))
		sb.WriteString(style.Help.Render("] " + b.Help().Desc))
	}

	return sb.String()
}

// Content returns the plain rendering currently in the viewport.
func (m Model) Content() string {
	if m.sess == nil {
		return ""
	}

	return Text(m.sess.Descriptors(), m.viewport.Width)
}

func (m Model) load(sess *session.Session) (tea.Model, tea.Cmd) {
	m.close()
	m.sess = sess
	m.events = make(chan images.Event, eventBuffer)
	stop, err := sess.Watch(m.events)
	if err != nil {
		m.status = style.Error.Render(err.Error())
		m.events = nil
	} else {
		m.stop = stop
	}
	m.resize()

	return m, m.waitForEvent()
}

func (m *Model) close() {
	if m.stop != nil {
		m.stop()
		m.stop = nil
	}
}

func (m *Model) resize() {
	h := m.height - headerHeight - footerHeight
	if h < minHeight {
		h = minHeight
	}
	m.viewport.Width = m.width - 4 // -4 for border padding
	m.viewport.Height = h
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.Content())
}

func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events

	return func() tea.Msg {
		return eventMsg{event: <-events}
	}
}

func (m Model) generateImages() (tea.Model, tea.Cmd) {
	if m.sess == nil || m.busy || m.actions.GenerateImages == nil {
		return m, nil
	}
	m.busy = true
	m.status = style.Progress.Render(fmt.Sprintf("이미지 %d개 생성 중...", len(m.sess.Prompts())))

	sess, ctx, run := m.sess, m.ctx, m.actions.GenerateImages

	return m, func() tea.Msg {
		return imagesDoneMsg{err: run(ctx, sess)}
	}
}

func (m Model) export() tea.Cmd {
	if m.sess == nil || m.actions.Export == nil {
		return nil
	}
	sess, run := m.sess, m.actions.Export

	return func() tea.Msg {
		path, err := run(sess)
		return exportDoneMsg{path: path, err: err}
	}
}
