package rnotefmt

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsMissingAttribute(t *testing.T) {
	err := NewMissingAttribute("page", "width", 42)
	if !IsMissingAttribute(err) {
		t.Errorf("expected a missing attribute error, got %v", err)
	}
	if IsMissingAttribute(errors.New("something else")) {
		t.Error("generic error should not be a missing attribute error")
	}
	if IsMissingAttribute(nil) {
		t.Error("nil should not be a missing attribute error")
	}

	// still recognized after wrapping
	wrapped := Wrap(err, "load %q", "test.xopp")
	if !IsMissingAttribute(wrapped) {
		t.Errorf("wrapped error not recognized: %v", wrapped)
	}
	if !strings.Contains(wrapped.Error(), "test.xopp") {
		t.Errorf("wrapped message lost context: %v", wrapped)
	}
}

func TestMissingAttributeMessage(t *testing.T) {
	err := NewMissingAttribute("stroke", "color", 120)
	msg := err.Error()
	for _, want := range []string{"stroke", "color", "120"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not mention %q", msg, want)
		}
	}
}

func TestIsInvalidAttribute(t *testing.T) {
	cause := fmt.Errorf("no such color")
	err := NewInvalidAttribute("background", "color", "octarine", 99, cause)
	if !IsInvalidAttribute(err) {
		t.Errorf("expected an invalid attribute error, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be reachable through Unwrap")
	}
	msg := err.Error()
	for _, want := range []string{"background", "color", "octarine", "no such color"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not mention %q", msg, want)
		}
	}

	// the cause is optional
	err = NewInvalidAttribute("page", "width", "abc", 0, nil)
	if !IsInvalidAttribute(err) {
		t.Errorf("expected an invalid attribute error, got %v", err)
	}
}

func TestIsMalformedPayload(t *testing.T) {
	cause := fmt.Errorf("gzip: invalid header")
	err := NewMalformedPayload(cause)
	if !IsMalformedPayload(err) {
		t.Errorf("expected a malformed payload error, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be reachable through Unwrap")
	}
	if IsMalformedPayload(cause) {
		t.Error("bare cause should not be a malformed payload error")
	}
}

func TestIsMigration(t *testing.T) {
	cause := fmt.Errorf("brushstroke has no path")
	err := NewMigration("0.5.8", "0.5.9", cause)
	if !IsMigration(err) {
		t.Errorf("expected a migration error, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"0.5.8", "0.5.9", "brushstroke has no path"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not mention %q", msg, want)
		}
	}

	var m *MigrationError
	if !errors.As(err, &m) {
		t.Fatal("expected to recover the migration error")
	}
	if m.From != "0.5.8" || m.To != "0.5.9" {
		t.Errorf("unexpected version pair: %v -> %v", m.From, m.To)
	}
}

func TestIsUnsupportedVersion(t *testing.T) {
	err := NewUnsupportedVersion("0.4.0")
	if !IsUnsupportedVersion(err) {
		t.Errorf("expected an unsupported version error, got %v", err)
	}
	if !strings.Contains(err.Error(), "0.4.0") {
		t.Errorf("message should mention the version: %v", err)
	}
	if IsUnsupportedVersion(errors.New("other")) {
		t.Error("generic error should not be an unsupported version error")
	}
}
