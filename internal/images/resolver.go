package images

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/multierr"
)

// ErrEmptyPrompt is returned when asked to resolve a blank prompt.
var ErrEmptyPrompt = errors.New("image prompt is empty")

// Generator turns a prompt into raster bytes.
type Generator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// Uploader stores raster bytes durably and returns their URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, prompt string) (string, error)
}

// Resolver generates images for prompts and records the outcome in a Store.
type Resolver struct {
	gen    Generator
	up     Uploader
	store  *Store
	logger *slog.Logger
}

// NewResolver creates a resolver. up may be nil, in which case images stay
// local only.
func NewResolver(gen Generator, up Uploader, store *Store, logger *slog.Logger) *Resolver {
	return &Resolver{
		gen:    gen,
		up:     up,
		store:  store,
		logger: logger,
	}
}

// Store returns the status store the resolver writes to.
func (r *Resolver) Store() *Store {
	return r.store
}

// Resolve generates the image for prompt. Upload failures are logged and do
// not fail the call: the image stays available locally without a remote URL.
func (r *Resolver) Resolve(ctx context.Context, prompt string) (Status, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Status{State: Idle}, ErrEmptyPrompt
	}

	token := r.store.Begin(prompt)

	data, err := r.gen.GenerateImage(ctx, prompt)
	if err != nil {
		r.store.Fail(prompt, token, err)

		return r.store.Status(prompt), fmt.Errorf("failed to generate image: %w", err)
	}

	remote := ""
	if r.up != nil {
		url, err := r.up.Upload(ctx, data, prompt)
		if err != nil {
			r.logger.Warn("Image upload failed, keeping local copy", "prompt", prompt, "error", err)
		} else {
			remote = url
		}
	}

	if !r.store.Complete(prompt, token, DataURL(data), remote) {
		r.logger.Debug("Discarded stale image result", "prompt", prompt)
	}

	return r.store.Status(prompt), nil
}

// ResolveAll resolves prompts one at a time in first-seen order, skipping
// prompts that are already Ready. It keeps going after failures and returns
// them combined.
func (r *Resolver) ResolveAll(ctx context.Context, prompts []string) error {
	var errs error
	seen := make(map[string]struct{}, len(prompts))

	for _, p := range prompts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}

		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		if r.store.Status(p).State == Ready {
			r.logger.Debug("Skipping ready image", "prompt", p)

			continue
		}

		if _, err := r.Resolve(ctx, p); err != nil {
			r.logger.Error("Image generation failed", "prompt", p, "error", err)
			errs = multierr.Append(errs, fmt.Errorf("%q: %w", p, err))
		}
	}

	return errs
}
