// Package session keeps generated content and its image states in memory
// for the lifetime of a browser or CLI session.
package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alkime/teeshot/internal/content"
	"github.com/alkime/teeshot/internal/images"
	"github.com/alkime/teeshot/internal/render"
	"github.com/alkime/teeshot/internal/sheet"
	"github.com/alkime/teeshot/pkg/channels"
	"github.com/google/uuid"
)

const (
	eventBuffer = 64
	watchGrace  = 100 * time.Millisecond
)

// Generated is the text generation outcome a session is built from.
type Generated struct {
	Content     string
	Suggestions []string
	Citations   []content.Citation
	Model       string
}

// Session is one piece of generated content.
type Session struct {
	ID        string
	CreatedAt time.Time
	Input     content.Input
	Format    content.Format
	Generated Generated

	images   *images.Store
	events   *channels.Broadcaster[images.Event]
	cancel   context.CancelFunc
	batch    sync.Mutex
	accessMu sync.Mutex
	accessed time.Time
}

func newSession(in content.Input, gen Generated, now time.Time) (*Session, error) {
	ctx, cancel := context.WithCancel(context.Background())
	events := channels.NewBroadcaster[images.Event](eventBuffer)
	sink, err := events.Run(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	return &Session{
		ID:        newID(),
		CreatedAt: now,
		Input:     in,
		Format:    content.Detect(gen.Content, in.Format.Hint()),
		Generated: gen,
		images:    images.NewStore(sink),
		events:    events,
		cancel:    cancel,
		accessed:  now,
	}, nil
}

// Images is the session's image status store.
func (s *Session) Images() *images.Store {
	return s.images
}

// Segments parses the session content.
func (s *Session) Segments() []content.Segment {
	return content.Parse(s.Generated.Content, s.Format)
}

// Prompts lists the distinct image prompts in first-seen order.
func (s *Session) Prompts() []string {
	return content.ImagePrompts(s.Generated.Content)
}

// HasPrompt reports whether prompt occurs in the content.
func (s *Session) HasPrompt(prompt string) bool {
	prompt = strings.TrimSpace(prompt)
	for _, p := range s.Prompts() {
		if p == prompt {
			return true
		}
	}

	return false
}

// Suggestions returns follow-up topics, or the core keywords when the model
// gave none.
func (s *Session) Suggestions() []string {
	return content.SuggestionsOrKeywords(s.Generated.Content, s.Generated.Suggestions)
}

// Descriptors renders the content with the current image states.
func (s *Session) Descriptors() []render.Descriptor {
	return render.Render(s.Segments(), render.Options{
		Format:    s.Format,
		Statuses:  s.images.Snapshot(),
		Keyword:   s.Input.Keyword,
		Citations: s.Generated.Citations,
	})
}

// Row builds the spreadsheet export row.
func (s *Session) Row() sheet.Row {
	return sheet.Build(sheet.Input{
		Raw:       s.Generated.Content,
		Format:    s.Format,
		Category:  s.Input.Category,
		Statuses:  s.images.Snapshot(),
		Citations: s.Generated.Citations,
	})
}

// TryBatch claims the session's single batch image run. ok is false while
// another batch is in progress.
func (s *Session) TryBatch() (release func(), ok bool) {
	if !s.batch.TryLock() {
		return nil, false
	}

	return s.batch.Unlock, true
}

// Watch subscribes ch to image status events until the returned function
// is called. An event ch cannot take within a short grace period is dropped.
func (s *Session) Watch(ch chan<- images.Event) (func(), error) {
	id, err := s.events.SubscribeWithTimeout(ch, watchGrace)
	if err != nil {
		return nil, err
	}

	return func() { s.events.Unsubscribe(id) }, nil
}

func (s *Session) touch(now time.Time) {
	s.accessMu.Lock()
	s.accessed = now
	s.accessMu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.accessMu.Lock()
	defer s.accessMu.Unlock()

	return now.Sub(s.accessed)
}

// close stops event delivery. Pending events are drained first.
func (s *Session) close() {
	s.cancel()
	s.events.Wait()
}

func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}

	return uuid.NewString()
}

// Manager holds live sessions and expires idle ones.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewManager creates a manager. Sessions idle for longer than ttl are
// removed by Sweep; a ttl of zero keeps them forever.
func NewManager(ttl time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Create stores a new session.
func (m *Manager) Create(in content.Input, gen Generated) (*Session, error) {
	s, err := newSession(in, gen, m.now())
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("Session created", "session", s.ID, "format", s.Format, "prompts", len(s.Prompts()))

	return s, nil
}

// Get returns a live session and marks it used.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch(m.now())
	}

	return s, ok
}

// Delete removes a session. It reports whether the session existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.close()
	}

	return ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// Sweep removes idle sessions and returns how many were removed.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	now := m.now()

	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.idleSince(now) > m.ttl {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.close()
		m.logger.Debug("Session expired", "session", s.ID)
	}

	return len(expired)
}

// Run sweeps every interval until ctx is done, then closes all sessions.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Info("Expired idle sessions", "count", n)
			}
		}
	}
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		s.close()
	}
}
