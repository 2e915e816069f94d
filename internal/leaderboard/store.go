// Package leaderboard keeps the top scores across game sessions.
package leaderboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultSize is the number of scores kept.
const DefaultSize = 5

// Store is a ranked score list persisted as a JSON array of integers.
// It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	path   string // Empty for an in-memory store
	size   int
	scores []int
}

// Open loads the store at path. A missing file gives an empty board; an
// unreadable or corrupt file also gives an empty board and logs a warning.
// An empty path gives an in-memory store. size <= 0 uses DefaultSize.
func Open(path string, size int) *Store {
	if size <= 0 {
		size = DefaultSize
	}
	s := &Store{path: path, size: size}
	if path == "" {
		return s
	}

	scores, err := load(path)
	if err != nil {
		log.Warn("leaderboard unreadable, starting empty", "path", path, "err", err)
		return s
	}
	s.scores = s.rank(scores)
	return s
}

func load(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var scores []int
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	return scores, nil
}

// rank sorts scores descending and truncates them to the store size.
func (s *Store) rank(scores []int) []int {
	ranked := slices.Clone(scores)
	slices.SortStableFunc(ranked, func(a, b int) int { return b - a })
	if len(ranked) > s.size {
		ranked = ranked[:s.size]
	}
	return ranked
}

// Record adds score to the board and persists the new ranking. The
// in-memory ranking is updated even if persisting fails.
func (s *Store) Record(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scores = s.rank(append(s.scores, score))
	if s.path == "" {
		return nil
	}
	return s.save()
}

// save writes the ranking through a temp file renamed into place.
// Must be called with the lock held.
func (s *Store) save() error {
	data, err := json.Marshal(s.scores)
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".leaderboard-*")
	if err != nil {
		return fmt.Errorf("write leaderboard: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write leaderboard: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write leaderboard: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write leaderboard: %w", err)
	}
	return nil
}

// Entries returns the scores in stored (descending) order.
func (s *Store) Entries() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.scores)
}

// Best returns the top score, or 0 for an empty board.
func (s *Store) Best() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.scores) == 0 {
		return 0
	}
	return s.scores[0]
}

// Path returns the backing file, empty for an in-memory store.
func (s *Store) Path() string {
	return s.path
}
