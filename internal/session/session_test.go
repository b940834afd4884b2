//nolint:testpackage // drives the manager clock
package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alkime/teeshot/internal/content"
	"github.com/alkime/teeshot/internal/images"
	"github.com/alkime/teeshot/internal/render"
	"github.com/alkime/teeshot/pkg/channels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardContent = "제목: 겨울 라운드 팁\n[Card 1]\n💡 소제목: 보온\n추운 날씨엔 보온이 핵심\n📸 이미지 프롬프트: 겨울 골프 보온 장비\n🔑 핵심키워드: 보온, 겨울 골프\n#골프 #겨울"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestManager(ttl time.Duration) (*Manager, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewManager(ttl, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.now = clock.Now
	return m, clock
}

func cardInput() content.Input {
	return content.Input{Format: content.Card, Category: "레슨", Keyword: "보온"}
}

func TestSession(t *testing.T) {
	m, _ := newTestManager(0)
	s, err := m.Create(cardInput(), Generated{Content: cardContent, Model: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { m.Delete(s.ID) })

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, content.Card, s.Format)
	assert.Equal(t, []string{"겨울 골프 보온 장비"}, s.Prompts())
	assert.True(t, s.HasPrompt(" 겨울 골프 보온 장비 "))
	assert.False(t, s.HasPrompt("other"))
	assert.Equal(t, []string{"보온", "겨울 골프"}, s.Suggestions())

	t.Run("descriptors follow image state", func(t *testing.T) {
		find := func() render.Descriptor {
			for _, d := range s.Descriptors() {
				if d.Kind == render.KindImage {
					return d
				}
			}
			t.Fatal("no image descriptor")
			return render.Descriptor{}
		}
		assert.Equal(t, images.Idle, find().State)

		token := s.Images().Begin("겨울 골프 보온 장비")
		s.Images().Complete("겨울 골프 보온 장비", token, "data:image/png;base64,AA", "https://b.s3.r.amazonaws.com/k.jpeg")
		assert.Equal(t, images.Ready, find().State)

		row := s.Row()
		assert.Equal(t, "겨울 라운드 팁", row[0])
		assert.Equal(t, "레슨", row[1])
		assert.Equal(t, "https://b.s3.r.amazonaws.com/k.jpeg", row[9])
	})
}

func TestTryBatch(t *testing.T) {
	m, _ := newTestManager(0)
	s, err := m.Create(cardInput(), Generated{Content: cardContent})
	require.NoError(t, err)
	t.Cleanup(func() { m.Delete(s.ID) })

	release, ok := s.TryBatch()
	require.True(t, ok)
	_, ok = s.TryBatch()
	assert.False(t, ok)

	release()
	release, ok = s.TryBatch()
	require.True(t, ok)
	release()
}

func TestSessionWatch(t *testing.T) {
	m, _ := newTestManager(0)
	s, err := m.Create(cardInput(), Generated{Content: cardContent})
	require.NoError(t, err)

	ch := make(chan images.Event, 8)
	stop, err := s.Watch(ch)
	require.NoError(t, err)

	token := s.Images().Begin("겨울 골프 보온 장비")
	s.Images().Fail("겨울 골프 보온 장비", token, assert.AnError)

	events := channels.ReceiveAll(ch, 200*time.Millisecond, 2)
	require.Len(t, events, 2)
	assert.Equal(t, images.Pending, events[0].Status.State)
	assert.Equal(t, images.Failed, events[1].Status.State)

	stop()
	s.Images().Begin("겨울 골프 보온 장비")
	assert.Empty(t, channels.ReceiveAll(ch, 50*time.Millisecond, 0))

	_, err = s.Watch(nil)
	require.Error(t, err)

	assert.True(t, m.Delete(s.ID))
	assert.False(t, m.Delete(s.ID))
}

func TestManagerSweep(t *testing.T) {
	m, clock := newTestManager(time.Hour)

	old, err := m.Create(cardInput(), Generated{Content: cardContent})
	require.NoError(t, err)
	clock.Advance(45 * time.Minute)
	fresh, err := m.Create(cardInput(), Generated{Content: cardContent})
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)
	assert.Equal(t, 1, m.Sweep())

	_, ok := m.Get(old.ID)
	assert.False(t, ok)
	_, ok = m.Get(fresh.ID)
	assert.True(t, ok, "get refreshes the idle timer")

	clock.Advance(59 * time.Minute)
	assert.Equal(t, 0, m.Sweep())
	assert.Equal(t, 1, m.Len())
}

func TestManagerRunClosesSessions(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	_, err := m.Create(cardInput(), Generated{Content: cardContent})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("manager did not stop")
	}
	assert.Equal(t, 0, m.Len())
}
