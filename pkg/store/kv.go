// Package store provides the key-value persistence behind tend's logs.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("store: key not found")

// KV is a flat byte-string store. Every logical log owns one key.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
	Keys() []string
	Close() error
}

// WriteError reports that a value was not durably written. Callers keep
// their in-memory state and may retry on the next mutation.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store: write %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Backend names a KV implementation.
type Backend string

const (
	BackendDiskv  Backend = "diskv"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Config selects and locates a backend.
type Config interface {
	BasePath() string
	Backend() Backend
}

// Open returns the KV selected by cfg.
func Open(cfg Config) (KV, error) {
	if cfg == nil {
		return nil, errors.New("store: no config")
	}
	switch Backend(strings.ToLower(string(cfg.Backend()))) {
	case BackendDiskv, "":
		return OpenDiskv(cfg.BasePath())
	case BackendSQLite:
		return OpenSQLite(cfg.BasePath())
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}
