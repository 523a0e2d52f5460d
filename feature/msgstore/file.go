package msgstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps the state in a local JSON file.
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend for the file at path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Location returns the file path.
func (b *FileBackend) Location() string {
	return b.path
}

// Read returns the file content, or nil when the file does not exist.
func (b *FileBackend) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// Write replaces the file through a temporary file and rename, so a crash
// never leaves a half written state file behind.
func (b *FileBackend) Write(_ context.Context, data []byte) error {
	dir, base := filepath.Split(b.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
