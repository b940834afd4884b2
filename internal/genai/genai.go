// Package genai talks to the generative text, image and video backends.
package genai

import (
	"context"

	"github.com/alkime/teeshot/internal/content"
)

// Request is one text generation call.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int64
	// Search asks the backend to ground the answer with web search when it
	// supports it.
	Search bool
}

// Completion is a backend's answer.
type Completion struct {
	Text      string
	Model     string
	Citations []content.Citation
}

// TextProvider generates text with a named model.
type TextProvider interface {
	Name() string
	Complete(ctx context.Context, model string, req Request) (*Completion, error)
}

// ImageProvider turns a prompt into raster bytes.
type ImageProvider interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// VideoOptions shapes a generated video.
type VideoOptions struct {
	AspectRatio string
	Resolution  string
}

// VideoProvider turns a prompt into video bytes.
type VideoProvider interface {
	GenerateVideo(ctx context.Context, prompt string, opts VideoOptions) ([]byte, error)
}
