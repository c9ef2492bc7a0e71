// Package compress handles the gzip envelope that both document formats
// are stored in.
package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Compress wraps data in a gzip envelope.
// A non-empty name is recorded in the gzip header as the original file name.
func Compress(data []byte, name string) ([]byte, error) {
	var buf bytes.Buffer

	w := gzip.NewWriter(&buf)
	w.Name = name
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress unwraps a gzip envelope and returns the full payload.
// Streams with multiple gzip members are read to the end.
func Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
