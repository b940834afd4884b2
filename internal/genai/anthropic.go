package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModels is the fallback order for Anthropic text generation.
var DefaultAnthropicModels = []string{
	string(anthropic.ModelClaudeSonnet4_5_20250929),
	string(anthropic.ModelClaude3_5HaikuLatest),
}

const anthropicMaxTokens = 8192

// Anthropic generates text with the Messages API.
type Anthropic struct {
	apiKey string
	client anthropic.Client
}

// NewAnthropic creates an Anthropic provider. SDK retries are disabled;
// callers retry through RetryPolicy.
func NewAnthropic(apiKey string, opts ...option.RequestOption) *Anthropic {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)

	return &Anthropic{
		apiKey: apiKey,
		client: anthropic.NewClient(opts...),
	}
}

func (a *Anthropic) Name() string { return "anthropic" }

// Complete sends one user message with the system prompt.
func (a *Anthropic) Complete(ctx context.Context, model string, req Request) (*Completion, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("anthropic: %w", ErrMissingKey)
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, &StatusError{Provider: a.Name(), Code: apiErr.StatusCode, Message: apiErr.Error()}
		}

		return nil, fmt.Errorf("failed to generate content via Anthropic API: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}

	return &Completion{Text: sb.String(), Model: model}, nil
}
