package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_DisabledDiscards(t *testing.T) {
	s := Open(Options{})
	if s.Enabled() {
		t.Error("sink should be disabled without Debug")
	}
	s.Logger("store").Printf("dropped")
	if err := s.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}

func TestOpen_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yap.log")
	s := Open(Options{Debug: true, File: path, MaxSizeMB: 1})
	if !s.Enabled() {
		t.Fatal("sink should be enabled")
	}

	s.Logger("store").Printf("SELECT 1")
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "[store] ") || !strings.Contains(line, "SELECT 1") {
		t.Errorf("log line = %q, want prefix and message", line)
	}
}
