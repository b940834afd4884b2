// Package images tracks generated images by prompt and resolves prompts to
// image assets.
package images

import (
	"strings"
	"sync"

	"github.com/alkime/teeshot/pkg/channels"
	"github.com/google/uuid"
)

// State is the lifecycle position of one image prompt.
type State string

const (
	Idle    State = "idle"
	Pending State = "pending"
	Ready   State = "ready"
	Failed  State = "failed"
)

// Status is the image state for one prompt. LocalURL is always usable for
// display; RemoteURL is set only when durable storage accepted the image.
type Status struct {
	State     State  `json:"state"`
	LocalURL  string `json:"local_url,omitempty"`
	RemoteURL string `json:"remote_url,omitempty"`
	Err       string `json:"error,omitempty"`
	Token     string `json:"-"`
}

// Statuses is an immutable snapshot of image states keyed by trimmed prompt.
// Identical prompts share one entry.
type Statuses map[string]Status

// Lookup returns the status for prompt, Idle when unknown.
func (s Statuses) Lookup(prompt string) Status {
	if st, ok := s[strings.TrimSpace(prompt)]; ok {
		return st
	}

	return Status{State: Idle}
}

// RemoteURL returns the durable URL for prompt, empty unless Ready.
func (s Statuses) RemoteURL(prompt string) string {
	st := s.Lookup(prompt)
	if st.State != Ready {
		return ""
	}

	return st.RemoteURL
}

// Event reports a status change.
type Event struct {
	Prompt string `json:"prompt"`
	Status Status `json:"status"`
}

// Store holds the live image states for one generation. Each Begin issues a
// token; results carrying an older token are discarded.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Status
	sink    chan<- Event
}

// NewStore creates a store. sink, when non-nil, receives every change
// without blocking; events are dropped if it is full.
func NewStore(sink chan<- Event) *Store {
	return &Store{
		entries: make(map[string]Status),
		sink:    sink,
	}
}

// Begin marks prompt Pending and returns the token its result must carry.
func (s *Store) Begin(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	token := newToken()

	s.mu.Lock()
	st := Status{State: Pending, Token: token}
	s.entries[prompt] = st
	s.mu.Unlock()

	s.publish(prompt, st)

	return token
}

// Complete marks prompt Ready. It returns false when token is stale.
func (s *Store) Complete(prompt, token, localURL, remoteURL string) bool {
	return s.settle(prompt, token, Status{
		State:     Ready,
		LocalURL:  localURL,
		RemoteURL: remoteURL,
		Token:     token,
	})
}

// Fail marks prompt Failed. It returns false when token is stale.
func (s *Store) Fail(prompt, token string, err error) bool {
	st := Status{State: Failed, Token: token}
	if err != nil {
		st.Err = err.Error()
	}

	return s.settle(prompt, token, st)
}

func (s *Store) settle(prompt, token string, st Status) bool {
	prompt = strings.TrimSpace(prompt)

	s.mu.Lock()
	if cur, ok := s.entries[prompt]; !ok || cur.Token != token {
		s.mu.Unlock()

		return false
	}
	s.entries[prompt] = st
	s.mu.Unlock()

	s.publish(prompt, st)

	return true
}

// Reset forgets prompt, returning it to Idle. Results still in flight for it
// are discarded.
func (s *Store) Reset(prompt string) {
	prompt = strings.TrimSpace(prompt)

	s.mu.Lock()
	_, ok := s.entries[prompt]
	delete(s.entries, prompt)
	s.mu.Unlock()

	if ok {
		s.publish(prompt, Status{State: Idle})
	}
}

// Status returns the current status for prompt.
func (s *Store) Status(prompt string) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Statuses(s.entries).Lookup(prompt)
}

// Snapshot copies the current statuses.
func (s *Store) Snapshot() Statuses {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(Statuses, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}

	return out
}

func (s *Store) publish(prompt string, st Status) {
	if s.sink == nil {
		return
	}
	_ = channels.SendNonBlock(s.sink, Event{Prompt: prompt, Status: st})
}

func newToken() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}

	return uuid.NewString()
}
