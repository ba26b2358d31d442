package game

import (
	"time"

	"github.com/lox/blackjacklab/internal/deck"
	"github.com/lox/blackjacklab/internal/rules"
)

// Config carries the table rules and the main seat's identity.
type Config struct {
	NumDecks       int
	Penetration    float64
	Payout         rules.PayoutRatio
	MinBet         int
	CountingSystem string

	// Pacing. Both are presentation niceties and default to zero; outcomes
	// are identical at any speed.
	DealDelay  time.Duration
	ThinkDelay time.Duration

	PlayerID   string
	PlayerName string
	Bankroll   int
}

// DefaultConfig returns the standard six-deck table.
func DefaultConfig() Config {
	return Config{
		NumDecks:       6,
		Penetration:    deck.DefaultPenetration,
		Payout:         rules.PayoutThreeToTwo,
		MinBet:         5,
		CountingSystem: "Hi-Lo",
		PlayerID:       "guest",
		PlayerName:     "Player",
		Bankroll:       1000,
	}
}

func (c Config) withDefaults() Config {
	if c.NumDecks <= 0 {
		c.NumDecks = 6
	}
	if c.Penetration <= 0 || c.Penetration > 1 {
		c.Penetration = deck.DefaultPenetration
	}
	if c.Payout == "" {
		c.Payout = rules.PayoutThreeToTwo
	}
	if c.MinBet <= 0 {
		c.MinBet = 5
	}
	if c.PlayerID == "" {
		c.PlayerID = "guest"
	}
	if c.PlayerName == "" {
		c.PlayerName = "Player"
	}
	return c
}
