package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// KV is a minimal durable key-value store holding opaque values.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Supported drivers.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config selects and configures a backend.
type Config struct {
	Driver      string
	Path        string
	DatabaseURL string
}

// Backend is a KV that owns resources released by Close.
type Backend interface {
	KV
	Close() error
}

// Open builds the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverFile:
		kv, err := NewFileKV(cfg.Path)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case DriverMemory:
		return NewMemoryKV(), nil
	case DriverPostgres:
		kv, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
