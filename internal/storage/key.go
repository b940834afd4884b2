package storage

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

const (
	defaultFolder = "images"
	maxKeyBase    = 50
)

var objectURL = regexp.MustCompile(`^https?://([^.]+)\.s3\.([^/]+)/(.+)$`)

// ErrNotObjectURL is returned for URLs that do not address an S3 object.
var ErrNotObjectURL = errors.New("not an S3 object URL")

// BaseName turns a prompt into a file-name stem of at most 50 characters.
func BaseName(prompt string) string {
	name := strings.ReplaceAll(slug.Make(prompt), "-", "_")
	if len(name) > maxKeyBase {
		name = name[:maxKeyBase]
	}
	name = strings.Trim(name, "_")
	if name == "" {
		return "image"
	}

	return name
}

// ObjectKey derives the key for an image of prompt uploaded at now.
func ObjectKey(folder, prompt, ext string, now time.Time) string {
	if folder == "" {
		folder = defaultFolder
	}
	if ext == "" {
		ext = "jpeg"
	}

	return fmt.Sprintf("%s/%s_%s_%d.%s", strings.Trim(folder, "/"), BaseName(prompt), now.Format("20060102"), now.UnixMilli(), ext)
}

// ObjectURL is the public virtual-hosted URL of key.
func ObjectURL(bucket, region, key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}

// ParseObjectURL splits an object URL into bucket and key.
func ParseObjectURL(u string) (bucket, key string, err error) {
	m := objectURL.FindStringSubmatch(strings.TrimSpace(u))
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrNotObjectURL, u)
	}

	return m[1], m[3], nil
}
