// Package snapshot persists in-flight rounds to disk so an interrupted
// session can resume where it left off. One file per player, written
// atomically so a crash mid-save never corrupts the previous snapshot.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjacklab/internal/fileutil"
	"github.com/lox/blackjacklab/internal/game"
)

// DefaultMaxAge is how long a saved round stays resumable. Older snapshots
// are treated as abandoned.
const DefaultMaxAge = time.Hour

var (
	ErrNotFound = errors.New("snapshot: no saved round")
	ErrStale    = errors.New("snapshot: saved round is too old")
)

// Store reads and writes per-player round snapshots under one directory.
type Store struct {
	dir    string
	maxAge time.Duration
	clock  quartz.Clock
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithMaxAge overrides the freshness window.
func WithMaxAge(d time.Duration) Option {
	return func(s *Store) { s.maxAge = d }
}

// WithClock injects the clock used for freshness checks.
func WithClock(clock quartz.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// NewStore creates the directory if needed.
func NewStore(dir string, logger *log.Logger, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}
	s := &Store{
		dir:    dir,
		maxAge: DefaultMaxAge,
		clock:  quartz.NewReal(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Save writes the snapshot for a player, replacing any previous one.
func (s *Store) Save(playerID string, snap game.RoundSnapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path(playerID), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	s.logger.Debug("saved round snapshot", "player", playerID, "phase", snap.Phase)
	return nil
}

// Load returns the player's saved round. ErrNotFound when none exists,
// ErrStale when the snapshot has outlived the freshness window; a stale
// file is removed on the way out.
func (s *Store) Load(playerID string) (game.RoundSnapshot, error) {
	data, err := os.ReadFile(s.path(playerID))
	if errors.Is(err, os.ErrNotExist) {
		return game.RoundSnapshot{}, ErrNotFound
	}
	if err != nil {
		return game.RoundSnapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap game.RoundSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return game.RoundSnapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	if age := s.clock.Now().Sub(snap.Timestamp); age > s.maxAge {
		s.logger.Debug("discarding stale snapshot", "player", playerID, "age", age)
		_ = s.Clear(playerID)
		return game.RoundSnapshot{}, ErrStale
	}
	return snap, nil
}

// Clear removes the player's saved round, if any.
func (s *Store) Clear(playerID string) error {
	err := os.Remove(s.path(playerID))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) path(playerID string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, playerID)
	return filepath.Join(s.dir, safe+".json")
}
