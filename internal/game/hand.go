package game

import (
	"github.com/lox/blackjacklab/internal/deck"
	"github.com/lox/blackjacklab/internal/rules"
)

// Hand is one bet's worth of cards. A seat starts the round with a single
// hand and fans out to more by splitting.
type Hand struct {
	Cards     []deck.Card   `json:"cards"`
	Bet       int           `json:"bet"`
	Complete  bool          `json:"complete"`
	Outcome   rules.Outcome `json:"outcome,omitempty"`
	Doubled   bool          `json:"doubled"`
	FromSplit bool          `json:"fromSplit"`
}

func newHand(bet int) *Hand {
	return &Hand{Bet: bet}
}

// Value returns the blackjack valuation of the hand.
func (h *Hand) Value() rules.HandValue {
	return rules.Value(h.Cards)
}

// IsBlackjack reports whether the hand is a natural. Split hands can reach
// 21 on two cards but are never naturals.
func (h *Hand) IsBlackjack() bool {
	return !h.FromSplit && rules.IsBlackjack(h.Cards)
}
