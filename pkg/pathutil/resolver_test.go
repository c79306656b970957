package pathutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWithExplicitPaths(t *testing.T) {
	resolver := New(Config{
		EnvFile:   "/tmp/custom.env",
		HistoryDB: "/tmp/custom.db",
	})

	if got := resolver.GetEnvFile(); got != "/tmp/custom.env" {
		t.Errorf("GetEnvFile() = %q", got)
	}
	if got := resolver.GetHistoryDBPath(); got != "/tmp/custom.db" {
		t.Errorf("GetHistoryDBPath() = %q", got)
	}
}

func TestNewDefaultHistoryDB(t *testing.T) {
	resolver := New(Config{EnvFile: ".env"})

	path := resolver.GetHistoryDBPath()
	if !strings.HasSuffix(path, filepath.Join("fa", "history.db")) {
		t.Errorf("GetHistoryDBPath() = %q, expected fa/history.db suffix", path)
	}
}

func TestEnsureParentDir(t *testing.T) {
	resolver := New(Config{})
	target := filepath.Join(t.TempDir(), "a", "b", "history.db")

	if err := resolver.EnsureParentDir(target); err != nil {
		t.Fatalf("EnsureParentDir() error: %v", err)
	}

	info, err := os.Stat(filepath.Dir(target))
	if err != nil {
		t.Fatalf("parent directory missing: %v", err)
	}
	if !info.IsDir() {
		t.Error("parent path is not a directory")
	}
}

func TestFileExists(t *testing.T) {
	resolver := New(Config{})
	path := filepath.Join(t.TempDir(), "present")

	if resolver.FileExists(path) {
		t.Error("FileExists() = true for missing file")
	}
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if !resolver.FileExists(path) {
		t.Error("FileExists() = false for existing file")
	}
}
