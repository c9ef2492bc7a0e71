package rnotefmt

import (
	"errors"
	"fmt"
)

// Wrap wraps an error by prepending additional text.
// The text can contain formatting parameters.
func Wrap(err error, msg string, v ...interface{}) error {
	msg = fmt.Sprintf(msg, v...)
	return fmt.Errorf("%v: %w", msg, err)
}

type validationError struct {
	message string
}

func (v validationError) Error() string {
	return v.message
}

// NewValidationError creates an error of from the given format string.
func NewValidationError(msg string, v ...interface{}) error {
	return validationError{fmt.Sprintf(msg, v...)}
}

// IsValidationError checks if the given error is a validation error.
func IsValidationError(err error) bool {
	var e validationError
	return errors.As(err, &e)
}

// MissingAttributeError tells that a required attribute is absent from an
// element of a foreign document.
type MissingAttributeError struct {
	Element string
	Attr    string
	Offset  int64
}

// NewMissingAttribute creates an error for a required attribute that is
// absent from the named element. The offset locates the element in the
// decompressed document.
func NewMissingAttribute(element, attr string, offset int64) error {
	return &MissingAttributeError{Element: element, Attr: attr, Offset: offset}
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("element <%v> near offset %v has no attribute %q", e.Element, e.Offset, e.Attr)
}

// IsMissingAttribute checks if the given error is a MissingAttributeError.
func IsMissingAttribute(err error) bool {
	var e *MissingAttributeError
	return errors.As(err, &e)
}

// InvalidAttributeError tells that an attribute of a foreign document element
// carries a value that cannot be interpreted.
type InvalidAttributeError struct {
	Element string
	Attr    string
	Value   string
	Offset  int64
	Err     error
}

// NewInvalidAttribute creates an error for an attribute value that could not
// be parsed. The cause may be nil.
func NewInvalidAttribute(element, attr, value string, offset int64, cause error) error {
	return &InvalidAttributeError{
		Element: element,
		Attr:    attr,
		Value:   value,
		Offset:  offset,
		Err:     cause,
	}
}

func (e *InvalidAttributeError) Error() string {
	msg := fmt.Sprintf("element <%v> near offset %v has an invalid value %q for attribute %q",
		e.Element, e.Offset, e.Value, e.Attr)
	if e.Err != nil {
		msg = fmt.Sprintf("%v: %v", msg, e.Err)
	}
	return msg
}

func (e *InvalidAttributeError) Unwrap() error {
	return e.Err
}

// IsInvalidAttribute checks if the given error is an InvalidAttributeError.
func IsInvalidAttribute(err error) bool {
	var e *InvalidAttributeError
	return errors.As(err, &e)
}

// MalformedPayloadError tells that a document could not be read at all,
// e.g. because the compression envelope or the markup is broken.
type MalformedPayloadError struct {
	Err error
}

// NewMalformedPayload creates an error for a document that is broken below
// the level of individual elements.
func NewMalformedPayload(cause error) error {
	return &MalformedPayloadError{Err: cause}
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed payload: %v", e.Err)
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

// IsMalformedPayload checks if the given error is a MalformedPayloadError.
func IsMalformedPayload(err error) bool {
	var e *MalformedPayloadError
	return errors.As(err, &e)
}

// MigrationError tells that upgrading a native document from one schema
// version to the next has failed. The whole load fails with it.
type MigrationError struct {
	From string
	To   string
	Err  error
}

// NewMigration creates an error for a failed schema upgrade step.
func NewMigration(from, to string, cause error) error {
	return &MigrationError{From: from, To: to, Err: cause}
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("cannot upgrade document schema %v to %v: %v", e.From, e.To, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// IsMigration checks if the given error is a MigrationError.
func IsMigration(err error) bool {
	var e *MigrationError
	return errors.As(err, &e)
}

// UnsupportedVersionError tells that a native document was saved by a version
// that is too old to be upgraded.
type UnsupportedVersionError struct {
	Version string
}

// NewUnsupportedVersion creates an error for a document version without an
// upgrade path.
func NewUnsupportedVersion(version string) error {
	return &UnsupportedVersionError{Version: version}
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("document version %v is not supported", e.Version)
}

// IsUnsupportedVersion checks if the given error is an UnsupportedVersionError.
func IsUnsupportedVersion(err error) bool {
	var e *UnsupportedVersionError
	return errors.As(err, &e)
}
