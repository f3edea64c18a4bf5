package handlers

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const mobileImageWidth = 640

// mobileVariant scales data down to mobileImageWidth, keeping aspect ratio and
// format. It reports false for images already narrow enough and for formats
// without an encoder (webp).
func mobileVariant(data []byte, contentType string) ([]byte, bool, error) {
	var format imaging.Format
	switch contentType {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	case "image/gif":
		format = imaging.GIF
	default:
		return nil, false, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Dx() <= mobileImageWidth {
		return nil, false, nil
	}

	small := imaging.Resize(img, mobileImageWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, small, format, imaging.JPEGQuality(85)); err != nil {
		return nil, false, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), true, nil
}
