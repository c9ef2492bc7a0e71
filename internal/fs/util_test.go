package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.rnote")

	err := WriteFile(path, []byte("one"))
	if err != nil {
		t.Fatal(err)
	}
	assertContent(t, path, "one")

	// overwrite an existing file
	err = WriteFile(path, []byte("two"))
	if err != nil {
		t.Fatal(err)
	}
	assertContent(t, path, "two")

	// no temporary files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected a single file in %v, found %v", dir, len(entries))
	}
}

func TestWriteFileBadDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does", "not", "exist", "doc.rnote")

	if err := WriteFile(path, []byte("data")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	if err := os.WriteFile(src, []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Move(src, dst); err != nil {
		t.Fatal(err)
	}

	assertContent(t, dst, "content")
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("source file should be gone, stat returned %v", err)
	}
}

func assertContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != want {
		t.Errorf("expected content %q, got %q", want, data)
	}
}
