package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alkime/teeshot/internal/content"
)

const (
	GeminiBaseURL     = "https://generativelanguage.googleapis.com/v1beta"
	DefaultImageModel = "imagen-4.0-generate-001"
	DefaultVideoModel = "veo-3.1-fast-generate-preview"
)

// DefaultTextModels is the fallback order for Gemini text generation.
var DefaultTextModels = []string{"gemini-2.0-flash-exp", "gemini-1.5-flash"}

// Gemini calls the Generative Language REST API.
type Gemini struct {
	apiKey     string
	baseURL    string
	client     *http.Client
	imageModel string
	videoModel string
	poll       time.Duration
	retry      RetryPolicy
	logger     *slog.Logger
}

// GeminiOption customizes a Gemini provider.
type GeminiOption func(*Gemini)

// WithGeminiBaseURL points the provider at another endpoint.
func WithGeminiBaseURL(u string) GeminiOption {
	return func(g *Gemini) { g.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) GeminiOption {
	return func(g *Gemini) { g.client = c }
}

// WithImageModel selects the image model.
func WithImageModel(m string) GeminiOption {
	return func(g *Gemini) { g.imageModel = m }
}

// WithVideoModel selects the video model.
func WithVideoModel(m string) GeminiOption {
	return func(g *Gemini) { g.videoModel = m }
}

// WithPollInterval sets how often video operations are checked.
func WithPollInterval(d time.Duration) GeminiOption {
	return func(g *Gemini) { g.poll = d }
}

// WithImageRetry sets the retry policy for image generation.
func WithImageRetry(p RetryPolicy) GeminiOption {
	return func(g *Gemini) { g.retry = p }
}

// NewGemini creates a Gemini provider.
func NewGemini(apiKey string, logger *slog.Logger, opts ...GeminiOption) *Gemini {
	g := &Gemini{
		apiKey:     apiKey,
		baseURL:    GeminiBaseURL,
		client:     &http.Client{Timeout: 5 * time.Minute},
		imageModel: DefaultImageModel,
		videoModel: DefaultVideoModel,
		poll:       10 * time.Second,
		retry:      RetryPolicy{MaxRetries: 2, BaseDelay: 2 * time.Second, Logger: logger},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

func (g *Gemini) Name() string { return "gemini" }

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	Tools             []map[string]any `json:"tools,omitempty"`
	GenerationConfig  map[string]any   `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Web *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

// Complete runs generateContent for model.
func (g *Gemini) Complete(ctx context.Context, model string, req Request) (*Completion, error) {
	body := generateRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}},
	}
	if req.System != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}
	if req.Search {
		body.Tools = []map[string]any{{"google_search": map[string]any{}}}
	}
	if req.MaxTokens > 0 {
		body.GenerationConfig = map[string]any{"maxOutputTokens": req.MaxTokens}
	}

	var resp generateResponse
	if err := g.post(ctx, fmt.Sprintf("models/%s:generateContent", model), body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%s: %w", model, ErrEmptyCompletion)
	}

	cand := resp.Candidates[0]
	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		sb.WriteString(p.Text)
	}

	var cites []content.Citation
	for _, ch := range cand.GroundingMetadata.GroundingChunks {
		if ch.Web == nil || ch.Web.URI == "" {
			continue
		}
		title := ch.Web.Title
		if title == "" {
			title = ch.Web.URI
		}
		cites = append(cites, content.Citation{URI: ch.Web.URI, Title: title})
	}

	return &Completion{Text: sb.String(), Model: model, Citations: cites}, nil
}

// GenerateImage calls the image model's predict endpoint for one square
// JPEG.
func (g *Gemini) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	body := map[string]any{
		"instances": []map[string]any{{"prompt": prompt}},
		"parameters": map[string]any{
			"sampleCount":    1,
			"outputMimeType": "image/jpeg",
			"aspectRatio":    "1:1",
		},
	}

	return Retry(ctx, g.retry, func(ctx context.Context) ([]byte, error) {
		var resp struct {
			Predictions []struct {
				BytesBase64Encoded string `json:"bytesBase64Encoded"`
			} `json:"predictions"`
		}
		if err := g.post(ctx, fmt.Sprintf("models/%s:predict", g.imageModel), body, &resp); err != nil {
			return nil, err
		}
		if len(resp.Predictions) == 0 || resp.Predictions[0].BytesBase64Encoded == "" {
			return nil, errors.New("image generation returned no image")
		}

		data, err := base64.StdEncoding.DecodeString(resp.Predictions[0].BytesBase64Encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}

		return data, nil
	})
}

type videoOperation struct {
	Name     string `json:"name"`
	Done     bool   `json:"done"`
	Error    *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Response struct {
		GenerateVideoResponse struct {
			GeneratedSamples []struct {
				Video struct {
					URI string `json:"uri"`
				} `json:"video"`
			} `json:"generatedSamples"`
		} `json:"generateVideoResponse"`
	} `json:"response"`
}

// GenerateVideo starts a long-running video operation, polls it until done
// and downloads the result.
func (g *Gemini) GenerateVideo(ctx context.Context, prompt string, opts VideoOptions) ([]byte, error) {
	body := map[string]any{
		"instances": []map[string]any{{"prompt": prompt}},
		"parameters": map[string]any{
			"aspectRatio": opts.AspectRatio,
			"resolution":  opts.Resolution,
		},
	}

	var op videoOperation
	if err := g.post(ctx, fmt.Sprintf("models/%s:predictLongRunning", g.videoModel), body, &op); err != nil {
		return nil, err
	}

	for !op.Done {
		g.logger.Debug("Waiting for video operation", "operation", op.Name)
		if err := sleepCtx(ctx, g.poll); err != nil {
			return nil, err
		}
		name := op.Name
		op = videoOperation{}
		if err := g.get(ctx, name, &op); err != nil {
			return nil, err
		}
	}

	if op.Error != nil {
		return nil, &StatusError{Provider: g.Name(), Code: op.Error.Code, Message: op.Error.Message}
	}

	samples := op.Response.GenerateVideoResponse.GeneratedSamples
	if len(samples) == 0 || samples[0].Video.URI == "" {
		return nil, errors.New("video generation succeeded but no download link was provided")
	}

	return g.download(ctx, samples[0].Video.URI)
}

func (g *Gemini) download(ctx context.Context, link string) ([]byte, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("failed to parse video link: %w", err)
	}
	q := u.Query()
	q.Set("key", g.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Provider: g.Name(), Code: resp.StatusCode, Message: "failed to download video: " + resp.Status}
	}

	return io.ReadAll(resp.Body)
}

func (g *Gemini) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(path), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return g.do(req, out)
}

func (g *Gemini) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint(path), nil)
	if err != nil {
		return err
	}

	return g.do(req, out)
}

func (g *Gemini) endpoint(path string) string {
	return fmt.Sprintf("%s/%s?key=%s", g.baseURL, path, url.QueryEscape(g.apiKey))
}

func (g *Gemini) do(req *http.Request, out any) error {
	if g.apiKey == "" {
		return fmt.Errorf("gemini: %w", ErrMissingKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call gemini: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Provider: g.Name(), Code: resp.StatusCode, Message: errorMessage(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode gemini response: %w", err)
	}

	return nil
}

// errorMessage pulls error.message out of a JSON error body.
func errorMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error.Message != "" {
		return e.Error.Message
	}

	return strings.TrimSpace(string(body))
}
