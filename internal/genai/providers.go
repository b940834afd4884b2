package genai

import (
	"fmt"
	"log/slog"
)

// Keys holds per-backend API keys.
type Keys struct {
	Gemini    string
	Anthropic string
	OpenAI    string
}

// NewTextProvider returns the named text provider and its default model
// fallback order.
func NewTextProvider(name string, keys Keys, logger *slog.Logger) (TextProvider, []string, error) {
	switch name {
	case "", "gemini":
		return NewGemini(keys.Gemini, logger), DefaultTextModels, nil
	case "anthropic":
		return NewAnthropic(keys.Anthropic), DefaultAnthropicModels, nil
	case "openai":
		return NewOpenAI(keys.OpenAI, ""), DefaultOpenAIModels, nil
	default:
		return nil, nil, fmt.Errorf("unknown text provider %q", name)
	}
}

// NewImageProvider returns the named image provider.
func NewImageProvider(name string, keys Keys, logger *slog.Logger) (ImageProvider, error) {
	switch name {
	case "", "gemini":
		return NewGemini(keys.Gemini, logger), nil
	case "openai":
		return NewOpenAI(keys.OpenAI, ""), nil
	default:
		return nil, fmt.Errorf("unknown image provider %q", name)
	}
}
