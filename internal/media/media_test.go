package media

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDataURIEncoder(t *testing.T) {
	uri, err := DataURIEncoder{}.Encode(context.Background(), "mouse.png", pngHeader)
	require.NoError(t, err)

	prefix := "data:image/png;base64,"
	require.True(t, strings.HasPrefix(uri, prefix), uri)
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, raw)
}

func TestDataURIEncoder_Rejects(t *testing.T) {
	_, err := DataURIEncoder{}.Encode(context.Background(), "x", nil)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = DataURIEncoder{}.Encode(context.Background(), "notes.txt", []byte("just some text"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDetectImageType(t *testing.T) {
	ct, err := DetectImageType([]byte("GIF89a......"))
	require.NoError(t, err)
	assert.Equal(t, "image/gif", ct)
}
