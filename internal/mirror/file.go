package mirror

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// FileBackend keeps one JSON document per key inside a directory.
type FileBackend struct {
	dir string
}

// NewFileBackend creates dir if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("mirror dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create mirror dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Path returns the file that backs key.
func (b *FileBackend) Path(key string) string {
	name := unsafeKeyChars.ReplaceAllString(strings.TrimSpace(key), "_")
	if name == "" {
		name = "_"
	}
	return filepath.Join(b.dir, name+".json")
}

// Read implements Backend.
func (b *FileBackend) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(b.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read mirror: %w", err)
	}
	return data, nil
}

// Write implements Backend. The document is replaced atomically.
func (b *FileBackend) Write(key string, value []byte) error {
	target := b.Path(key)
	tmp, err := os.CreateTemp(b.dir, ".mirror-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("replace mirror: %w", err)
	}
	return nil
}

// Close implements Backend.
func (b *FileBackend) Close() error { return nil }
