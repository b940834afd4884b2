package images_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/alkime/teeshot/internal/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDataURL(t *testing.T) {
	t.Run("sniffs png", func(t *testing.T) {
		url := images.DataURL(pngBytes(t))
		assert.True(t, len(url) > 22)
		assert.Equal(t, "data:image/png;base64,", url[:22])
	})

	t.Run("falls back to jpeg", func(t *testing.T) {
		assert.Equal(t, "image/jpeg", images.MIMEType([]byte("not an image")))
	})
}

func TestDecodeDataURL(t *testing.T) {
	data := pngBytes(t)
	got, err := images.DecodeDataURL(images.DataURL(data))
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = images.DecodeDataURL("https://example.com/a.png")
	require.ErrorIs(t, err, images.ErrNotDataURL)
	_, err = images.DecodeDataURL("data:text/plain,hello")
	require.ErrorIs(t, err, images.ErrNotDataURL)
}

func TestDownloadName(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"A Red Fox, at dawn!", "a_red_fox__at_dawn_.jpeg"},
		{"  cat  ", "cat.jpeg"},
		{"0123456789012345678901234567890123456789EXTRA", "0123456789012345678901234567890123456789.jpeg"},
		{"여우", "__.jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			assert.Equal(t, tt.want, images.DownloadName(tt.prompt))
		})
	}
}
