package images

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"

	"github.com/h2non/filetype"
)

const defaultMIME = "image/jpeg"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// MIMEType sniffs the image type, falling back to JPEG.
func MIMEType(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(data) {
		return defaultMIME
	}

	return kind.MIME.Value
}

// DataURL encodes raw image bytes for inline display.
func DataURL(data []byte) string {
	return "data:" + MIMEType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ErrNotDataURL is returned by DecodeDataURL for anything but a base64 data URL.
var ErrNotDataURL = errors.New("not a base64 data URL")

// DecodeDataURL returns the bytes of a base64 data URL.
func DecodeDataURL(url string) ([]byte, error) {
	if !strings.HasPrefix(url, "data:") {
		return nil, ErrNotDataURL
	}
	_, payload, ok := strings.Cut(url, ";base64,")
	if !ok {
		return nil, ErrNotDataURL
	}

	return base64.StdEncoding.DecodeString(payload)
}

// DownloadName derives a file name for saving the image of prompt.
func DownloadName(prompt string) string {
	r := []rune(strings.TrimSpace(prompt))
	if len(r) > 40 {
		r = r[:40]
	}

	return nonAlnum.ReplaceAllString(strings.ToLower(string(r)), "_") + ".jpeg"
}
