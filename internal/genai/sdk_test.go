package genai_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaioption "github.com/openai/openai-go/option"

	"github.com/alkime/teeshot/internal/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropic_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-test",
			"content":[{"type":"text","text":"제목: 팁"}],"stop_reason":"end_turn",
			"usage":{"input_tokens":1,"output_tokens":1}}`))
	}))
	defer srv.Close()

	a := genai.NewAnthropic("k", anthropicoption.WithBaseURL(srv.URL))
	c, err := a.Complete(context.Background(), "claude-test", genai.Request{System: "sys", Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "제목: 팁", c.Text)
}

func TestAnthropic_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`))
	}))
	defer srv.Close()

	a := genai.NewAnthropic("k", anthropicoption.WithBaseURL(srv.URL))
	_, err := a.Complete(context.Background(), "claude-test", genai.Request{Prompt: "hi"})
	assert.Equal(t, 503, genai.StatusCode(err))
	assert.Equal(t, genai.ClassOverloaded, genai.Classify(err))
}

func TestOpenAI_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-test",
			"choices":[{"index":0,"message":{"role":"assistant","content":"제목: 팁"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	o := genai.NewOpenAI("k", "", openaioption.WithBaseURL(srv.URL))
	c, err := o.Complete(context.Background(), "gpt-test", genai.Request{System: "sys", Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "제목: 팁", c.Text)
}

func TestOpenAI_GenerateImage(t *testing.T) {
	img := []byte("png-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/images/generations"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1,"data":[{"b64_json":"` + base64.StdEncoding.EncodeToString(img) + `"}]}`))
	}))
	defer srv.Close()

	o := genai.NewOpenAI("k", "dall-e-3", openaioption.WithBaseURL(srv.URL))
	data, err := o.GenerateImage(context.Background(), "fox")
	require.NoError(t, err)
	assert.Equal(t, img, data)
}

func TestOpenAI_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	o := genai.NewOpenAI("k", "", openaioption.WithBaseURL(srv.URL))
	_, err := o.Complete(context.Background(), "gpt-test", genai.Request{Prompt: "hi"})
	assert.Equal(t, genai.ClassAuth, genai.Classify(err))
}

func TestProviders(t *testing.T) {
	keys := genai.Keys{Gemini: "g", Anthropic: "a", OpenAI: "o"}
	for _, name := range []string{"", "gemini", "anthropic", "openai"} {
		p, models, err := genai.NewTextProvider(name, keys, quiet())
		require.NoError(t, err, name)
		assert.NotNil(t, p)
		assert.NotEmpty(t, models)
	}
	_, _, err := genai.NewTextProvider("nope", keys, quiet())
	assert.Error(t, err)

	_, err = genai.NewImageProvider("anthropic", keys, quiet())
	assert.Error(t, err)
}
