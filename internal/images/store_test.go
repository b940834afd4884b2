package images_test

import (
	"errors"
	"testing"
	"time"

	"github.com/alkime/teeshot/internal/images"
	"github.com/alkime/teeshot/pkg/channels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("unknown prompt is idle", func(t *testing.T) {
		s := images.NewStore(nil)
		assert.Equal(t, images.Idle, s.Status("a red fox").State)
	})

	t.Run("begin then complete", func(t *testing.T) {
		s := images.NewStore(nil)
		token := s.Begin("  a red fox ")
		assert.Equal(t, images.Pending, s.Status("a red fox").State)

		ok := s.Complete("a red fox", token, "data:image/png;base64,AA", "https://b.s3.r.amazonaws.com/k")
		require.True(t, ok)

		st := s.Snapshot().Lookup("a red fox")
		assert.Equal(t, images.Ready, st.State)
		assert.Equal(t, "data:image/png;base64,AA", st.LocalURL)
		assert.Equal(t, "https://b.s3.r.amazonaws.com/k", s.Snapshot().RemoteURL("a red fox"))
	})

	t.Run("stale result is discarded", func(t *testing.T) {
		s := images.NewStore(nil)
		old := s.Begin("fox")
		fresh := s.Begin("fox")

		assert.False(t, s.Complete("fox", old, "local-old", ""))
		assert.Equal(t, images.Pending, s.Status("fox").State)

		assert.True(t, s.Fail("fox", fresh, errors.New("quota")))
		st := s.Status("fox")
		assert.Equal(t, images.Failed, st.State)
		assert.Equal(t, "quota", st.Err)
		assert.Empty(t, s.Snapshot().RemoteURL("fox"))
	})

	t.Run("settling an unknown prompt is rejected", func(t *testing.T) {
		s := images.NewStore(nil)
		assert.False(t, s.Complete("never started", "token", "x", ""))
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		s := images.NewStore(nil)
		s.Begin("fox")
		snap := s.Snapshot()
		s.Begin("owl")
		assert.Len(t, snap, 1)
	})

	t.Run("events are published", func(t *testing.T) {
		sink := make(chan images.Event, 4)
		s := images.NewStore(sink)
		token := s.Begin("fox")
		s.Complete("fox", token, "local", "")

		events := channels.ReceiveAll(sink, 10*time.Millisecond, 0)
		require.Len(t, events, 2)
		assert.Equal(t, images.Pending, events[0].Status.State)
		assert.Equal(t, images.Ready, events[1].Status.State)
		assert.Equal(t, "fox", events[1].Prompt)
	})

	t.Run("full sink does not block", func(t *testing.T) {
		sink := make(chan images.Event)
		s := images.NewStore(sink)
		s.Begin("fox")
		assert.Equal(t, images.Pending, s.Status("fox").State)
	})

	t.Run("reset discards in-flight result", func(t *testing.T) {
		sink := make(chan images.Event, 4)
		s := images.NewStore(sink)
		token := s.Begin("fox")
		s.Reset("fox")
		assert.False(t, s.Complete("fox", token, "local", ""))
		assert.Equal(t, images.Idle, s.Status("fox").State)

		events := channels.ReceiveAll(sink, 10*time.Millisecond, 0)
		require.Len(t, events, 2)
		assert.Equal(t, images.Idle, events[1].Status.State)
	})
}
