package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

const defaultFileDir = "data/storage"

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// FileKV stores each key as its own file under a base directory.
// Writes land in a temp file first and are renamed into place, so a reader
// never sees a half-written value.
type FileKV struct {
	basePath string
}

// NewFileKV creates the base directory when missing.
func NewFileKV(basePath string) (*FileKV, error) {
	if basePath == "" {
		basePath = defaultFileDir
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", basePath, err)
	}
	return &FileKV{basePath: basePath}, nil
}

// BasePath exposes the root directory (primarily for testing).
func (f *FileKV) BasePath() string {
	if f == nil {
		return ""
	}
	return f.basePath
}

// Get reads the value stored under key.
func (f *FileKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := f.pathFor(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set writes value under key. Writing identical content is skipped.
func (f *FileKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := f.pathFor(key)
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, value) {
		return nil
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Close is a no-op.
func (f *FileKV) Close() error { return nil }

func (f *FileKV) pathFor(key string) (string, error) {
	if f == nil {
		return "", errors.New("storage: file store not configured")
	}
	if key == "" {
		return "", errors.New("storage: key required")
	}
	name := unsafeKeyChars.ReplaceAllString(key, "_")
	return filepath.Join(f.basePath, name+".json"), nil
}
