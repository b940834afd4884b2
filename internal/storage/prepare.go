package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register decoders
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
)

// Prepared is image data ready for upload.
type Prepared struct {
	Data        []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

// Prepare sniffs data and downscales it to fit maxDim on its longer side,
// re-encoding as JPEG. Images already within bounds keep their original
// bytes. A maxDim of zero disables resizing.
func Prepare(data []byte, maxDim, quality int) (*Prepared, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(data) {
		return nil, fmt.Errorf("unsupported image data")
	}

	p := &Prepared{
		Data:        data,
		ContentType: kind.MIME.Value,
		Extension:   extension(kind.Extension),
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// undecodable but recognizable types (webp) go up untouched
		return p, nil
	}
	b := img.Bounds()
	p.Width, p.Height = b.Dx(), b.Dy()

	if maxDim <= 0 || (p.Width <= maxDim && p.Height <= maxDim) {
		return p, nil
	}

	resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, resized, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("unable to encode resized image: %w", err)
	}

	return &Prepared{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Extension:   "jpeg",
		Width:       resized.Bounds().Dx(),
		Height:      resized.Bounds().Dy(),
	}, nil
}

func extension(ext string) string {
	if ext == "jpg" {
		return "jpeg"
	}

	return ext
}
