package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// AudioStore owns the working directory for fallback audio downloads.
// It tracks the single live file a session is allowed to hold and
// purges leftovers from crashed or abandoned runs. The at-most-one
// invariant is enforced by discarding the previous file before a new
// one may be registered.
type AudioStore struct {
	dir     string
	mu      sync.Mutex
	current string
}

func NewAudioStore(dir string) (*AudioStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}
	return &AudioStore{dir: dir}, nil
}

// Dir returns the working directory downloads should target.
func (s *AudioStore) Dir() string {
	return s.dir
}

// Current returns the path of the live audio file, or "" when none.
func (s *AudioStore) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetCurrent registers a freshly downloaded file as the live one. The
// previous file must have been discarded first; if it somehow wasn't,
// it is removed now rather than leaked.
func (s *AudioStore) SetCurrent(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != "" && s.current != path {
		log.Printf("Warning: replacing undiscarded audio file %s", s.current)
		s.removeLocked(s.current)
	}
	s.current = path
}

// Discard deletes the live audio file, if any. It must be called
// before a new analysis run acquires content so the session never
// holds two files at once.
func (s *AudioStore) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == "" {
		return
	}
	s.removeLocked(s.current)
	s.current = ""
}

func (s *AudioStore) removeLocked(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to remove audio file %s: %v", path, err)
	}
}

// PurgeStale removes audio files in the working directory older than
// maxAge, skipping the live one. Returns the number of files removed.
func (s *AudioStore) PurgeStale(maxAge time.Duration) (int, error) {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read audio directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "audio_") {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		if path == current {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				log.Printf("Warning: failed to purge stale audio file %s: %v", path, err)
				continue
			}
			removed++
		}
	}
	return removed, nil
}
