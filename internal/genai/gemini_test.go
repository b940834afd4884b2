package genai_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alkime/teeshot/internal/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGemini_Complete(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"제목: "},{"text":"팁"}]},
			"groundingMetadata":{"groundingChunks":[{"web":{"uri":"https://a.example","title":""}},{"retrievedContext":{}}]}}]}`))
	}))
	defer srv.Close()

	g := genai.NewGemini("k", quiet(), genai.WithGeminiBaseURL(srv.URL))
	c, err := g.Complete(context.Background(), "gemini-test", genai.Request{System: "sys", Prompt: "hi", Search: true})
	require.NoError(t, err)

	assert.Equal(t, "제목: 팁", c.Text)
	require.Len(t, c.Citations, 1)
	assert.Equal(t, "https://a.example", c.Citations[0].Title)
	assert.Contains(t, body, "systemInstruction")
	assert.Contains(t, body, "tools")
}

func TestGemini_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	g := genai.NewGemini("k", quiet(), genai.WithGeminiBaseURL(srv.URL))
	_, err := g.Complete(context.Background(), "m", genai.Request{Prompt: "hi"})

	var se *genai.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 429, se.Code)
	assert.Equal(t, "quota exceeded", se.Message)
	assert.Equal(t, genai.ClassQuota, genai.Classify(err))
}

func TestGemini_MissingKey(t *testing.T) {
	g := genai.NewGemini("", quiet())
	_, err := g.Complete(context.Background(), "m", genai.Request{Prompt: "hi"})
	assert.ErrorIs(t, err, genai.ErrMissingKey)
}

func TestGemini_GenerateImage(t *testing.T) {
	img := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/imagen-test:predict"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"predictions": []map[string]string{{"bytesBase64Encoded": base64.StdEncoding.EncodeToString(img)}},
		})
	}))
	defer srv.Close()

	g := genai.NewGemini("k", quiet(), genai.WithGeminiBaseURL(srv.URL), genai.WithImageModel("imagen-test"))
	data, err := g.GenerateImage(context.Background(), "fox")
	require.NoError(t, err)
	assert.Equal(t, img, data)
}

func TestGemini_GenerateVideo(t *testing.T) {
	var polls atomic.Int32
	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, ":predictLongRunning"):
			_, _ = w.Write([]byte(`{"name":"operations/op1","done":false}`))
		case r.URL.Path == "/operations/op1":
			if polls.Add(1) < 2 {
				_, _ = w.Write([]byte(`{"name":"operations/op1","done":false}`))
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"name": "operations/op1",
				"done": true,
				"response": map[string]any{"generateVideoResponse": map[string]any{
					"generatedSamples": []map[string]any{{"video": map[string]string{"uri": srvURL + "/files/v.mp4?alt=media"}}},
				}},
			})
		case r.URL.Path == "/files/v.mp4":
			assert.Equal(t, "k", r.URL.Query().Get("key"))
			assert.Equal(t, "media", r.URL.Query().Get("alt"))
			_, _ = w.Write([]byte("video-bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	srvURL = srv.URL

	g := genai.NewGemini("k", quiet(), genai.WithGeminiBaseURL(srv.URL), genai.WithPollInterval(time.Millisecond))
	data, err := g.GenerateVideo(context.Background(), "swing", genai.VideoOptions{AspectRatio: "9:16", Resolution: "720p"})
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(data))
	assert.Equal(t, int32(2), polls.Load())
}
