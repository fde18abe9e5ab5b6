// Package media turns uploaded product images into URIs the catalog can
// store in Product.Image.
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

var (
	ErrEmptyImage = errors.New("image is empty")
	ErrNotImage   = errors.New("file is not an image")
)

// Encoder stores or embeds image bytes and returns a URI for them.
type Encoder interface {
	Encode(ctx context.Context, name string, data []byte) (string, error)
}

// DetectImageType sniffs the content type and rejects anything that is not
// an image.
func DetectImageType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return "", ErrNotImage
	}
	return ct, nil
}

// DataURIEncoder embeds the image in a base64 data URI.
type DataURIEncoder struct{}

func (DataURIEncoder) Encode(_ context.Context, _ string, data []byte) (string, error) {
	ct, err := DetectImageType(data)
	if err != nil {
		return "", err
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
