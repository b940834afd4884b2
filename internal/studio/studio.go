// Package studio ties generation, image resolution and sessions together
// for the server and the command line.
package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alkime/teeshot/internal/content"
	"github.com/alkime/teeshot/internal/genai"
	"github.com/alkime/teeshot/internal/images"
	"github.com/alkime/teeshot/internal/session"
)

const maxTokens = 8192

var (
	// ErrBatchRunning is returned when a session already runs a batch.
	ErrBatchRunning = errors.New("image batch already running")
	// ErrUnknownPrompt is returned for prompts the content does not contain.
	ErrUnknownPrompt = errors.New("prompt not found in content")
	// ErrNoVideo is returned when no video backend is configured.
	ErrNoVideo = errors.New("video generation is not configured")
)

// Storage keeps image bytes durably.
type Storage interface {
	images.Uploader
	Delete(ctx context.Context, url string) error
}

// ReferenceFetcher turns a reference URL into quotable text.
type ReferenceFetcher interface {
	Text(ctx context.Context, url string) string
}

// Options are the collaborators a Studio uses. Storage, References and Video
// may be nil.
type Options struct {
	Generator  *genai.Generator
	Images     genai.ImageProvider
	Video      genai.VideoProvider
	Storage    Storage
	References ReferenceFetcher
	Sessions   *session.Manager
	Logger     *slog.Logger
}

// Studio runs content generation requests.
type Studio struct {
	opts Options
}

// New creates a studio.
func New(opts Options) *Studio {
	return &Studio{opts: opts}
}

// Sessions returns the session manager.
func (s *Studio) Sessions() *session.Manager {
	return s.opts.Sessions
}

// Generate requests content for in and stores it as a new session.
func (s *Studio) Generate(ctx context.Context, in content.Input) (*session.Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	reference := ""
	if in.ReferenceURL != "" && s.opts.References != nil {
		reference = s.opts.References.Text(ctx, in.ReferenceURL)
	}

	res, err := s.opts.Generator.Generate(ctx, genai.Request{
		System:    content.SystemPrompt,
		Prompt:    content.BuildUserPrompt(in, reference),
		MaxTokens: maxTokens,
		Search:    true,
	})
	if err != nil {
		return nil, err
	}

	return s.opts.Sessions.Create(in, session.Generated{
		Content:     res.Content,
		Suggestions: res.Suggestions,
		Citations:   res.Citations,
		Model:       res.Model,
	})
}

// Import stores already generated text as a session.
func (s *Studio) Import(in content.Input, raw string) (*session.Session, error) {
	text, suggestions := content.SplitSuggestions(raw)

	return s.opts.Sessions.Create(in, session.Generated{
		Content:     text,
		Suggestions: suggestions,
	})
}

func (s *Studio) resolver(sess *session.Session) *images.Resolver {
	var up images.Uploader
	if s.opts.Storage != nil {
		up = s.opts.Storage
	}

	return images.NewResolver(s.opts.Images, up, sess.Images(), s.opts.Logger.With("session", sess.ID))
}

// GenerateImage resolves one prompt of sess.
func (s *Studio) GenerateImage(ctx context.Context, sess *session.Session, prompt string) (images.Status, error) {
	if !sess.HasPrompt(prompt) {
		return images.Status{State: images.Idle}, fmt.Errorf("%w: %q", ErrUnknownPrompt, prompt)
	}

	return s.resolver(sess).Resolve(ctx, prompt)
}

// GenerateAllImages resolves every prompt of sess one after another.
func (s *Studio) GenerateAllImages(ctx context.Context, sess *session.Session) error {
	release, ok := sess.TryBatch()
	if !ok {
		return ErrBatchRunning
	}
	defer release()

	return s.resolveAll(ctx, sess)
}

// StartAllImages claims the session's batch and resolves its prompts in the
// background. done, when non-nil, receives the outcome.
func (s *Studio) StartAllImages(ctx context.Context, sess *session.Session, done func(error)) error {
	release, ok := sess.TryBatch()
	if !ok {
		return ErrBatchRunning
	}

	go func() {
		defer release()
		err := s.resolveAll(ctx, sess)
		if done != nil {
			done(err)
		}
	}()

	return nil
}

func (s *Studio) resolveAll(ctx context.Context, sess *session.Session) error {
	prompts := sess.Prompts()
	s.opts.Logger.Info("Generating all images", "session", sess.ID, "prompts", len(prompts))

	return s.resolver(sess).ResolveAll(ctx, prompts)
}

// DeleteImage removes the stored copy of prompt's image and returns the
// prompt to Idle.
func (s *Studio) DeleteImage(ctx context.Context, sess *session.Session, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	st := sess.Images().Status(prompt)
	if st.RemoteURL != "" && s.opts.Storage != nil {
		if err := s.opts.Storage.Delete(ctx, st.RemoteURL); err != nil {
			return err
		}
	}
	sess.Images().Reset(prompt)

	return nil
}

// GenerateVideo renders prompt as a video.
func (s *Studio) GenerateVideo(ctx context.Context, prompt string, opts genai.VideoOptions) ([]byte, error) {
	if s.opts.Video == nil {
		return nil, ErrNoVideo
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, images.ErrEmptyPrompt
	}

	return s.opts.Video.GenerateVideo(ctx, prompt, opts)
}
