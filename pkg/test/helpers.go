package test

import (
	"os"
	"path/filepath"
	"testing"

	"jsontodos/internal/adapter/database/jsonfile"
	"jsontodos/internal/core/telemetry"
)

// TempDataFile returns a path inside a per-test directory; the file itself is
// not created.
func TempDataFile(t testing.TB) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "data", "todos.json")
}

// InitTestStore returns a JSON file store backed by a fresh temp file.
func InitTestStore(t testing.TB) *jsonfile.Store {
	t.Helper()

	return jsonfile.NewStore(TempDataFile(t), telemetry.NewNoOpProbe())
}

// ReadDataFile returns the raw store document, failing the test when absent.
func ReadDataFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)

	if err != nil {
		t.Fatalf("read data file: %v", err)
	}

	return string(data)
}

// WriteDataFile replaces the store document with raw content.
func WriteDataFile(t testing.TB, path string, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create data dir: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write data file: %v", err)
	}
}
