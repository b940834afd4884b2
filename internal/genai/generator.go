package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alkime/teeshot/internal/content"
	"go.uber.org/multierr"
)

// ErrEmptyCompletion is returned when a model answers without text.
var ErrEmptyCompletion = errors.New("model returned no text")

// Result is generated content ready for parsing.
type Result struct {
	Content     string             `json:"content"`
	Suggestions []string           `json:"suggestions,omitempty"`
	Citations   []content.Citation `json:"citations,omitempty"`
	Model       string             `json:"model"`
}

// Generator runs text generation across an ordered list of models.
type Generator struct {
	provider TextProvider
	models   []string
	retry    RetryPolicy
	logger   *slog.Logger
}

// NewGenerator creates a generator. models is tried in order.
func NewGenerator(provider TextProvider, models []string, retry RetryPolicy, logger *slog.Logger) *Generator {
	return &Generator{
		provider: provider,
		models:   models,
		retry:    retry,
		logger:   logger,
	}
}

// Generate completes req, falling through to the next model on 404 or 503.
// Any other failure is returned at once. When every model fails the last
// error is returned with the earlier ones wrapped behind it.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if len(g.models) == 0 {
		return nil, errors.New("no models configured")
	}

	var tried error
	for _, model := range g.models {
		g.logger.Info("Generating content", "provider", g.provider.Name(), "model", model, "prompt_chars", len(req.Prompt))

		c, err := Retry(ctx, g.retry, func(ctx context.Context) (*Completion, error) {
			c, err := g.provider.Complete(ctx, model, req)
			if err == nil && (c == nil || strings.TrimSpace(c.Text) == "") {
				return nil, fmt.Errorf("%s: %w", model, ErrEmptyCompletion)
			}

			return c, err
		})
		if err == nil {
			text, suggestions := content.SplitSuggestions(c.Text)

			return &Result{
				Content:     text,
				Suggestions: suggestions,
				Citations:   c.Citations,
				Model:       model,
			}, nil
		}

		tried = multierr.Append(tried, err)
		code := StatusCode(err)
		if code != http.StatusNotFound && code != http.StatusServiceUnavailable {
			return nil, err
		}
		g.logger.Warn("Model failed, trying next", "model", model, "status", code)
	}

	errs := multierr.Errors(tried)
	g.logger.Error("All models failed", "attempts", len(errs), "error", tried)

	last := errs[len(errs)-1]
	if len(errs) == 1 {
		return nil, last
	}

	return nil, fmt.Errorf("%w (earlier: %w)", last, multierr.Combine(errs[:len(errs)-1]...))
}
