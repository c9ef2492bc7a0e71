// Package rnote reads and writes the app's native document format.
//
// A native document is gzip compressed JSON: an outer wrapper carrying the
// schema version and the document data. On load, the version tag selects a
// chain of migrations that bring the data up to the current schema. Content
// that no migration touches is passed through as a generic JSON tree,
// numbers included, without reformatting.
package rnote

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/Masterminds/semver/v3"

	"github.com/flxzt/rnotefmt"
	"github.com/flxzt/rnotefmt/internal/compress"
)

// CurrentVersion is the schema version this package writes.
const CurrentVersion = "0.5.9"

// File is a native document in the current schema.
type File = FileV059

// wrapper is the outermost JSON object of every native document.
type wrapper struct {
	Version string          `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// decodeJSON decodes with json.Number for numeric literals, so values we do
// not touch survive a load and save cycle byte for byte.
func decodeJSON(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// toJSONValue turns a typed value back into the generic JSON tree form.
func toJSONValue(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := decodeJSON(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Read loads a native document, upgrading it to the current schema if it
// was saved by an older app version.
func Read(data []byte) (*File, error) {
	f := &File{}
	if err := f.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return f, nil
}

// ReadVersion reads only the version tag of a native document, without
// loading or upgrading its content.
func ReadVersion(data []byte) (string, error) {
	raw, err := compress.Decompress(data)
	if err != nil {
		return "", rnotefmt.NewMalformedPayload(err)
	}
	var w wrapper
	if err := json.Unmarshal(raw, &w); err != nil {
		return "", rnotefmt.NewMalformedPayload(err)
	}
	if w.Version == "" {
		return "", rnotefmt.NewMalformedPayload(errors.New("document has no version tag"))
	}
	return w.Version, nil
}

// UnmarshalBinary loads the document from gzip compressed JSON.
// If an error is returned, the receiver is left unchanged, a document is
// never half loaded.
func (f *File) UnmarshalBinary(data []byte) error {
	raw, err := compress.Decompress(data)
	if err != nil {
		return rnotefmt.NewMalformedPayload(err)
	}
	var w wrapper
	if err := json.Unmarshal(raw, &w); err != nil {
		return rnotefmt.NewMalformedPayload(err)
	}

	ver, err := semver.NewVersion(w.Version)
	if err != nil {
		return rnotefmt.NewMalformedPayload(rnotefmt.Wrap(err, "version tag %q", w.Version))
	}
	upgraded, err := upgrade(ver, w.Data)
	if err != nil {
		return err
	}

	var loaded File
	if err := decodeJSON(upgraded, &loaded); err != nil {
		return rnotefmt.NewMalformedPayload(err)
	}
	*f = loaded
	return nil
}

// Marshal encodes the document under the current schema version.
// A non-empty name is recorded in the gzip header as the file name.
func Marshal(f *File, name string) ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(wrapper{Version: CurrentVersion, Data: data})
	if err != nil {
		return nil, err
	}
	return compress.Compress(payload, name)
}

// MarshalBinary encodes the document as gzip compressed JSON.
func (f *File) MarshalBinary() ([]byte, error) {
	return Marshal(f, "")
}

// Write writes the document to w in the current schema.
func Write(w io.Writer, f *File) error {
	data, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
