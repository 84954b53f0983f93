package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/gofrs/flock"
	"github.com/peterbourgon/diskv/v3"
)

const lockFile = ".lock"

var validKey = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Diskv stores every key as one file under a base directory.
type Diskv struct {
	d        *diskv.Diskv
	lock     *flock.Flock
	basePath string
}

// OpenDiskv creates the base directory if needed and returns a diskv
// backed store rooted there.
func OpenDiskv(basePath string) (*Diskv, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		lock:     flock.New(filepath.Join(basePath, lockFile)),
		basePath: basePath,
	}, nil
}

// BasePath returns the directory the store writes into.
func (s *Diskv) BasePath() string { return s.basePath }

func (s *Diskv) Get(key string) ([]byte, error) {
	if !validKey.MatchString(key) {
		return nil, fmt.Errorf("store: invalid key %q", key)
	}
	if !s.d.Has(key) {
		return nil, ErrNotFound
	}
	// Read around the cache: another process may have rewritten the file.
	rc, err := s.d.ReadStream(key, true)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Set writes the value under an inter-process lock so two tend processes
// never interleave a write to the same data directory.
func (s *Diskv) Set(key string, value []byte) error {
	if !validKey.MatchString(key) {
		return &WriteError{Key: key, Err: errors.New("invalid key")}
	}
	if err := s.lock.Lock(); err != nil {
		return &WriteError{Key: key, Err: fmt.Errorf("lock: %w", err)}
	}
	defer s.lock.Unlock()
	if err := s.d.Write(key, value); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Diskv) Remove(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	if err := s.lock.Lock(); err != nil {
		return &WriteError{Key: key, Err: fmt.Errorf("lock: %w", err)}
	}
	defer s.lock.Unlock()
	if err := s.d.Erase(key); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}

func (s *Diskv) Keys() []string {
	var keys []string
	for key := range s.d.Keys(nil) {
		if !validKey.MatchString(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (s *Diskv) Close() error {
	return s.lock.Close()
}
