// Package account persists player bankrolls, career statistics and
// preferences. Two implementations share one interface: an in-memory store
// for guest sessions and tests, and a Postgres store for durable profiles.
package account

import (
	"context"
	"errors"
	"time"

	"github.com/lox/blackjacklab/internal/game"
	"github.com/lox/blackjacklab/internal/rules"
)

var ErrNotFound = errors.New("account: player not found")

// Stats are career counters, maintained by the store as rounds are logged.
type Stats struct {
	TotalHands  int       `json:"totalHands"`
	TotalWins   int       `json:"totalWins"`
	TotalLosses int       `json:"totalLosses"`
	BiggestWin  int       `json:"biggestWin"`
	BiggestLoss int       `json:"biggestLoss"`
	LastPlayed  time.Time `json:"lastPlayed"`
}

// WinRate is wins over hands played, 0 when no hands are recorded.
func (s Stats) WinRate() float64 {
	if s.TotalHands == 0 {
		return 0
	}
	return float64(s.TotalWins) / float64(s.TotalHands)
}

// Account is one player profile.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bankroll  int       `json:"bankroll"`
	Stats     Stats     `json:"stats"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings are per-player table preferences, saved between sessions.
type Settings struct {
	CountingSystem string `json:"countingSystem"`
	Payout         string `json:"payout"`
	NumDecks       int    `json:"numDecks"`
	DealDelayMS    int    `json:"dealDelayMs"`
	Multiplayer    bool   `json:"multiplayer"`
	ShowCount      bool   `json:"showCount"`
}

// DefaultSettings mirror a fresh profile.
func DefaultSettings() Settings {
	return Settings{
		CountingSystem: "Hi-Lo",
		Payout:         "3:2",
		NumDecks:       6,
		ShowCount:      true,
	}
}

// Store is the full profile surface. It subsumes the two narrow interfaces
// the round engine settles against.
type Store interface {
	game.PlayerAccount
	game.GameLogSink

	Get(ctx context.Context, id string) (Account, error)
	Create(ctx context.Context, id, name string, bankroll int) (Account, error)
	History(ctx context.Context, id string, limit int) ([]game.GameRecord, error)
	SaveSettings(ctx context.Context, id string, s Settings) error
	LoadSettings(ctx context.Context, id string) (Settings, error)
}

// applyRecord folds one settled round into the career counters. Blackjacks
// count as wins; pushes move no counter but still mark the profile played.
func applyRecord(s *Stats, rec game.GameRecord) {
	s.TotalHands += len(rec.Hands)
	for _, h := range rec.Hands {
		switch h.Outcome {
		case rules.OutcomeWin, rules.OutcomeBlackjack:
			s.TotalWins++
		case rules.OutcomeLose:
			s.TotalLosses++
		}
	}
	if rec.NetPayout > s.BiggestWin {
		s.BiggestWin = rec.NetPayout
	}
	if rec.NetPayout < s.BiggestLoss {
		s.BiggestLoss = rec.NetPayout
	}
	s.LastPlayed = rec.Timestamp
}
