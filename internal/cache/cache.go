// Package cache is the durable translation cache: one flat JSON file
// mapping hashed (text, locale) keys to translated strings. The whole
// table lives in memory; every write rewrites the file. Durability is
// best-effort — the file being missing, corrupt, or unwritable never
// breaks translation, it only costs repeat remote calls.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/TTMK7777/Japan-Disaster-Alert/pkg/log"
)

// Key derives the stable cache key for a (text, locale) pair. MD5 keeps
// keys compatible with cache files written by earlier deployments.
func Key(text, localeCode string) string {
	sum := md5.Sum([]byte(text + ":" + localeCode))
	return hex.EncodeToString(sum[:])
}

type Store struct {
	path string

	mu      sync.RWMutex
	entries map[string]string
}

// Open loads the cache file at path. A missing or unreadable file starts
// the cache empty; that is a normal first-run condition, not an error.
func Open(path string) *Store {
	s := &Store{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("Failed to read translation cache %s: %v", path, err)
		}
		return s
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		log.Warn("Translation cache %s is corrupt, starting empty: %v", path, err)
		s.entries = make(map[string]string)
	}
	return s
}

// Get returns the cached translation for key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	return value, ok
}

// Put stores a translation and flushes the whole table to disk. The lock
// is held across the file write: each save rewrites the entire file, so
// concurrent writers would otherwise lose entries. A failed save keeps
// the in-memory entry and logs a warning.
func (s *Store) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
	if err := s.save(); err != nil {
		log.Warn("Failed to persist translation cache %s: %v", s.path, err)
	}
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// save is called with s.mu held.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}
