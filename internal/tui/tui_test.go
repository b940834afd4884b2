package tui_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alkime/teeshot/internal/content"
	"github.com/alkime/teeshot/internal/session"
	"github.com/alkime/teeshot/internal/tui"
	"github.com/alkime/teeshot/internal/tui/preview"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

const generated = "제목: 겨울 라운드 팁\n[Card 1]\n💡 소제목: 보온\n추운 날씨엔 보온이 핵심\n📸 이미지 프롬프트: 장갑"

func waitFor(t *testing.T, tm *teatest.TestModel, substr string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(buf []byte) bool {
		return bytes.Contains(buf, []byte(substr))
	}, teatest.WithCheckInterval(50*time.Millisecond), teatest.WithDuration(2*time.Second))
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	m := session.NewManager(0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	sess, err := m.Create(content.Input{Format: content.Card, Category: "레슨"}, session.Generated{Content: generated})
	require.NoError(t, err)
	t.Cleanup(func() { m.Delete(sess.ID) })
	return sess
}

func TestGenerateThenPreview(t *testing.T) {
	sess := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	run := func(context.Context) (*session.Session, error) { return sess, nil }
	actions := preview.Actions{
		GenerateImages: func(_ context.Context, s *session.Session) error {
			token := s.Images().Begin("장갑")
			s.Images().Complete("장갑", token, "data:image/jpeg;base64,AA", "")
			return nil
		},
		Export: func(*session.Session) (string, error) { return "/tmp/row.tsv", nil },
	}

	tm := teatest.NewTestModel(t, tui.New(ctx, cancel, run, "INSTAGRAM-CARD · 레슨", actions),
		teatest.WithInitialTermSize(100, 40))

	waitFor(t, tm, "겨울 라운드 팁")
	waitFor(t, tm, "생성 전")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	waitFor(t, tm, "모든 이미지 생성 완료")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	waitFor(t, tm, "/tmp/row.tsv")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
	require.Error(t, ctx.Err(), "quitting cancels the context")
}

func TestGenerateRetry(t *testing.T) {
	sess := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	run := func(context.Context) (*session.Session, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("backend down")
		}
		return sess, nil
	}

	tm := teatest.NewTestModel(t, tui.New(ctx, cancel, run, "card", preview.Actions{}),
		teatest.WithInitialTermSize(100, 40))

	waitFor(t, tm, "생성 실패")
	waitFor(t, tm, "backend down")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	waitFor(t, tm, "겨울 라운드 팁")
	require.Equal(t, int32(2), calls.Load())

	require.NoError(t, tm.Quit())
}

func TestPreviewOnly(t *testing.T) {
	sess := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tm := teatest.NewTestModel(t, tui.NewPreview(ctx, cancel, sess, preview.Actions{}),
		teatest.WithInitialTermSize(100, 40))
	waitFor(t, tm, "INSTAGRAM-CARD")

	token := sess.Images().Begin("장갑")
	waitFor(t, tm, "생성 중...")
	sess.Images().Fail("장갑", token, errors.New("quota"))
	waitFor(t, tm, "실패")

	require.NoError(t, tm.Quit())
}
