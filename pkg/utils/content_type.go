package utils

import (
	"bytes"
	"io"
	"mime"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

const octetStream = "application/octet-stream"

// DetectContentType sniffs the start of r and returns the detected MIME type
// together with a reader that yields the full, unconsumed stream. Unknown
// content falls back to the type registered for the filename extension.
func DetectContentType(r io.Reader, filename string) (string, io.Reader, error) {
	var head bytes.Buffer
	mtype, err := mimetype.DetectReader(io.TeeReader(r, &head))
	if err != nil {
		return "", nil, err
	}

	contentType := mtype.String()
	if mtype.Is(octetStream) {
		if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
			contentType = byExt
		}
	}

	return contentType, io.MultiReader(&head, r), nil
}
