package game

import (
	"context"
	"time"

	"github.com/lox/blackjacklab/internal/rules"
)

// PlayerAccount is the external bankroll store for the main seat. Calls are
// fire-and-forget at settlement: failures are logged, never rolled back
// into game state.
type PlayerAccount interface {
	AdjustBankroll(ctx context.Context, playerID string, delta int) error
}

// HandRecord is one settled hand in a game-log entry.
type HandRecord struct {
	Cards   []string      `json:"cards"`
	Bet     int           `json:"bet"`
	Outcome rules.Outcome `json:"outcome"`
	Doubled bool          `json:"doubled,omitempty"`
}

// GameRecord is an append-only log entry for one main-seat round.
type GameRecord struct {
	PlayerID  string        `json:"playerId"`
	Hands     []HandRecord  `json:"hands"`
	Outcome   rules.Outcome `json:"outcome"`
	TotalBet  int           `json:"totalBet"`
	NetPayout int           `json:"netPayout"`
	Timestamp time.Time     `json:"timestamp"`
}

// GameLogSink records settled rounds for player statistics maintained by
// the collaborator, not the core.
type GameLogSink interface {
	Append(ctx context.Context, rec GameRecord) error
}

// NopAccount satisfies PlayerAccount for guest play.
type NopAccount struct{}

func (NopAccount) AdjustBankroll(context.Context, string, int) error { return nil }

// NopSink satisfies GameLogSink for guest play.
type NopSink struct{}

func (NopSink) Append(context.Context, GameRecord) error { return nil }
