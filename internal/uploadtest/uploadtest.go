// Package uploadtest builds multipart file headers for upload tests.
package uploadtest

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF, 0xE0}
	pngMagic  = []byte("\x89PNG\r\n\x1a\n")
)

// File is one part of a fake multipart upload.
type File struct {
	Name    string
	Content []byte
}

// JPEG returns size bytes that sniff as image/jpeg.
func JPEG(size int) []byte {
	return pad(jpegMagic, size)
}

// PNG returns size bytes that sniff as image/png.
func PNG(size int) []byte {
	return pad(pngMagic, size)
}

func pad(magic []byte, size int) []byte {
	if size < len(magic) {
		size = len(magic)
	}
	b := make([]byte, size)
	copy(b, magic)
	return b
}

// Headers encodes files under field and parses them back, like a server would.
func Headers(t testing.TB, field string, files ...File) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.Name)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(64 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File[field]
}
