// Package history keeps the bounded, newest-first log of accepted texts that
// is offered ahead of the piped candidates.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/NeverVane/pickline/internal/logger"
	"github.com/NeverVane/pickline/internal/menu"
)

// DefaultCapacity is the number of entries kept when none is configured.
const DefaultCapacity = 20

const maxLineLen = 1 << 20

// ErrNoPath is returned by writes on a store without a backing file.
var ErrNoPath = errors.New("history file not configured")

// Store is a line-oriented history file. Entries are newest-first and
// unique. A Store with an empty path is valid and always empty.
type Store struct {
	mu       sync.Mutex
	path     string
	capacity int
	entries  []string
	logger   *logger.Logger
}

// NewStore creates a store for path. Nothing is read until Load.
func NewStore(path string, capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		path:     path,
		capacity: capacity,
		logger:   logger.WithComponent("history").WithField("path", path),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Capacity returns the maximum number of entries.
func (s *Store) Capacity() int { return s.capacity }

// Load reads up to Capacity lines from the file. A missing or unreadable
// file leaves the store empty; only unexpected read errors are logged.
func (s *Store) Load() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if s.path == "" {
		return nil
	}

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug().Msg("No history file yet")
		} else {
			s.logger.WithError(err).Warn().Msg("Failed to open history file")
		}
		return nil
	}
	defer file.Close()

	entries := make([]string, 0, s.capacity)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLen)
	for len(entries) < s.capacity && scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		s.logger.WithError(err).Warn().Msg("History file partially read")
	}

	s.entries = entries
	s.logger.Debug().Int("entries", len(entries)).Msg("History loaded")
	return s.snapshot()
}

// Entries returns a copy of the loaded entries, newest first.
func (s *Store) Entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Merge appends the loaded entries to b. Called before the piped lines are
// added so history comes first in the pool.
func (s *Store) Merge(b *menu.PoolBuilder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.AddAll(s.entries)
}

// Record moves text to the front of the log, dropping any older copy, and
// rewrites the file. Empty text is ignored.
func (s *Store) Record(text string) error {
	if text == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return ErrNoPath
	}

	next := Promote(s.entries, text, s.capacity)
	if err := writeAtomic(s.path, next); err != nil {
		return err
	}
	s.entries = next
	s.logger.Debug().Int("entries", len(next)).Msg("History recorded")
	return nil
}

// Clear empties the log and removes the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if s.path == "" {
		return ErrNoPath
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove history file: %w", err)
	}
	return nil
}

// Promote returns entries with text at the front and at most capacity items.
func Promote(entries []string, text string, capacity int) []string {
	out := make([]string, 0, capacity)
	out = append(out, text)
	for _, e := range entries {
		if len(out) >= capacity {
			break
		}
		if e != text {
			out = append(out, e)
		}
	}
	return out
}

func writeAtomic(path string, entries []string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temporary history file: %w", err)
	}
	tmpPath := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, e := range entries {
		w.WriteString(e)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary history file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}
