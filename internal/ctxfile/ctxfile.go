// Package ctxfile persists the current context label in a single file.
package ctxfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File is the current-context file. A missing file means no context.
type File struct {
	path string
}

// New returns a File at path. Nothing is read until Get.
func New(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Get returns the current context and whether one is set.
func (f *File) Get() (string, bool, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read context file: %w", err)
	}
	name := strings.TrimSpace(string(data))
	return name, name != "", nil
}

// Set replaces the current context. An empty name clears it.
func (f *File) Set(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return f.Clear()
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create context directory: %w", err)
	}

	// Write atomically via temp file
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(name+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write context file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename context file: %w", err)
	}
	return nil
}

// Clear removes the current context. Clearing when none is set is not an
// error.
func (f *File) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove context file: %w", err)
	}
	return nil
}
