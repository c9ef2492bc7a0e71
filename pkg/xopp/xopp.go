// Package xopp reads and writes the gzip compressed XML documents that the
// Xournal family of note taking apps exchange.
//
// Loading is tolerant where content survives it (unknown elements, unknown
// tool names, unreadable background styles) and strict where it does not
// (missing or unreadable sizes, positions and colors). Writing always
// produces the canonical form: colors as lowercase #rrggbbaa values, every
// decimal with three digits after the point, empty layers left out.
package xopp

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/flxzt/rnotefmt"
	"github.com/flxzt/rnotefmt/internal/compress"
)

const (
	// FileVersion is the format version this package writes.
	FileVersion = "4"
	// DPI is the raster resolution behind the document coordinates.
	DPI = 72.0
)

// NewRoot creates an empty document with the given title.
func NewRoot(title string) *Root {
	return &Root{
		FileVersion: FileVersion,
		Title:       title,
	}
}

// Read loads a document from gzip compressed XML bytes.
func Read(data []byte) (*Root, error) {
	r := &Root{}
	if err := r.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return r, nil
}

// UnmarshalBinary loads the document from gzip compressed XML bytes.
// If an error is returned, the receiver is left unchanged, a document is
// never half loaded.
func (r *Root) UnmarshalBinary(data []byte) error {
	raw, err := compress.Decompress(data)
	if err != nil {
		return rnotefmt.NewMalformedPayload(err)
	}
	if !utf8.Valid(raw) {
		return rnotefmt.NewMalformedPayload(errors.New("document is not valid UTF-8"))
	}

	dec := xml.NewDecoder(bytes.NewReader(raw))
	for {
		tok, err := dec.Token()
		if err != nil {
			// includes running out of input without a document element
			return rnotefmt.NewMalformedPayload(err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		var loaded Root
		if err := loaded.UnmarshalXML(dec, se); err != nil {
			return asLoadError(err)
		}
		*r = loaded
		return nil
	}
}

// asLoadError passes the typed attribute errors through and turns everything
// else, i.e. broken markup, into a malformed payload error.
func asLoadError(err error) error {
	if rnotefmt.IsMissingAttribute(err) || rnotefmt.IsInvalidAttribute(err) {
		return err
	}
	return rnotefmt.NewMalformedPayload(err)
}

// MarshalBinary encodes the document as gzip compressed XML.
func (r *Root) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeXML(&buf, r); err != nil {
		return nil, err
	}
	return compress.Compress(buf.Bytes(), "")
}

// Write writes the document to w as gzip compressed XML.
func Write(w io.Writer, r *Root) error {
	data, err := r.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
