// Package testsupport holds shared helpers for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"lumen/internal/config"
)

// NewConfigStore returns a store over the default configuration backed by
// a temp path with no file on disk, so SetTheme never persists.
func NewConfigStore(t testing.TB) *config.Store {
	t.Helper()

	cfg := config.Default()
	path := filepath.Join(t.TempDir(), "config.toml")
	return config.NewStore(&cfg, path, false)
}

// WriteDesktopEntry writes a .desktop file under dir and returns its path.
func WriteDesktopEntry(t testing.TB, dir, name, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
