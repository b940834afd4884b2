package genai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultOpenAIModels is the fallback order for OpenAI text generation.
var DefaultOpenAIModels = []string{string(openai.ChatModelGPT4o), string(openai.ChatModelGPT4oMini)}

// OpenAI generates text with chat completions and images with the images
// API.
type OpenAI struct {
	apiKey     string
	client     openai.Client
	imageModel string
}

// NewOpenAI creates an OpenAI provider. SDK retries are disabled; callers
// retry through RetryPolicy.
func NewOpenAI(apiKey, imageModel string, opts ...option.RequestOption) *OpenAI {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	if imageModel == "" {
		imageModel = string(openai.ImageModelDallE3)
	}

	return &OpenAI{
		apiKey:     apiKey,
		client:     openai.NewClient(opts...),
		imageModel: imageModel,
	}
}

func (o *OpenAI) Name() string { return "openai" }

// Complete runs one chat completion.
func (o *OpenAI) Complete(ctx context.Context, model string, req Request) (*Completion, error) {
	if o.apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingKey)
	}

	var msgs []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}
	msgs = append(msgs, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: msgs,
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(req.MaxTokens)
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, o.wrap(err, "failed to generate content via OpenAI API")
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: %w", model, ErrEmptyCompletion)
	}

	return &Completion{Text: resp.Choices[0].Message.Content, Model: model}, nil
}

// GenerateImage requests one square image as base64 JSON.
func (o *OpenAI) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	if o.apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingKey)
	}

	resp, err := o.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(o.imageModel),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize1024x1024,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	})
	if err != nil {
		return nil, o.wrap(err, "failed to generate image via OpenAI API")
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, errors.New("image generation returned no image")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return data, nil
}

func (o *OpenAI) wrap(err error, msg string) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &StatusError{Provider: o.Name(), Code: apiErr.StatusCode, Message: apiErr.Error()}
	}

	return fmt.Errorf("%s: %w", msg, err)
}
