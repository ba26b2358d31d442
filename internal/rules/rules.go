// Package rules implements the fixed casino rules of the table: hand
// valuation, legality checks, the dealer's drawing policy and outcome
// resolution. Everything here is a pure function over cards.
package rules

import "github.com/lox/blackjacklab/internal/deck"

// HandValue is the blackjack valuation of a set of cards.
type HandValue struct {
	Total  int
	Soft   bool // an ace is still counted as 11
	Busted bool
}

// Value computes the best blackjack total for the cards. Aces start at 11
// and drop to 1 one at a time while the total is over 21.
func Value(cards []deck.Card) HandValue {
	total := 0
	aces := 0
	for _, c := range cards {
		if c.IsAce() {
			aces++
		}
		total += c.Rank.BlackjackValue()
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return HandValue{
		Total:  total,
		Soft:   aces > 0 && total <= 21,
		Busted: total > 21,
	}
}

// IsBlackjack reports whether the cards are a natural: exactly two cards
// totalling 21. A three-card 21 is not a blackjack.
func IsBlackjack(cards []deck.Card) bool {
	return len(cards) == 2 && Value(cards).Total == 21
}

// CanSplit reports whether the cards form a splittable pair. Ten-valued
// ranks all count as equal, so K-10 splits.
func CanSplit(cards []deck.Card) bool {
	if len(cards) != 2 {
		return false
	}
	return cards[0].Rank.BlackjackValue() == cards[1].Rank.BlackjackValue()
}

// CanDoubleDown reports whether doubling is legal: first two cards only,
// with enough bankroll to match the original bet.
func CanDoubleDown(cards []deck.Card, bankroll, bet int) bool {
	return len(cards) == 2 && bankroll >= bet
}

// DealerDecision is what the house must do next.
type DealerDecision string

const (
	DealerHit   DealerDecision = "hit"
	DealerStand DealerDecision = "stand"
)

// DealerAction applies the house drawing rule: hit below 17, hit soft 17,
// stand otherwise. The soft-17 hit is fixed, not configurable.
func DealerAction(dealerCards []deck.Card) DealerDecision {
	hv := Value(dealerCards)
	if hv.Total < 17 {
		return DealerHit
	}
	if hv.Total == 17 && hv.Soft {
		return DealerHit
	}
	return DealerStand
}

// Outcome is the resolution of one player hand against the dealer.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeWin       Outcome = "win"
	OutcomeLose      Outcome = "lose"
	OutcomePush      Outcome = "push"
	OutcomeBlackjack Outcome = "blackjack"
)

// ResolveOutcome compares a player hand against the dealer. Blackjack flags
// are passed in rather than recomputed so split hands that reach 21 on two
// cards are settled as plain 21s, not naturals.
func ResolveOutcome(playerCards, dealerCards []deck.Card, playerBJ, dealerBJ bool) Outcome {
	player := Value(playerCards)
	dealer := Value(dealerCards)

	if player.Busted {
		return OutcomeLose
	}
	if dealer.Busted {
		return OutcomeWin
	}
	if playerBJ && dealerBJ {
		return OutcomePush
	}
	if playerBJ {
		return OutcomeBlackjack
	}
	if dealerBJ {
		return OutcomeLose
	}

	switch {
	case player.Total > dealer.Total:
		return OutcomeWin
	case player.Total < dealer.Total:
		return OutcomeLose
	default:
		return OutcomePush
	}
}

// PayoutRatio is the blackjack premium paid on a natural.
type PayoutRatio string

const (
	PayoutThreeToTwo PayoutRatio = "3:2"
	PayoutSixToFive  PayoutRatio = "6:5"
	PayoutEvenMoney  PayoutRatio = "1:1"
)

// Multiplier returns the per-unit payout for a blackjack at this ratio.
func (r PayoutRatio) Multiplier() float64 {
	switch r {
	case PayoutSixToFive:
		return 1.2
	case PayoutEvenMoney:
		return 1.0
	default:
		return 1.5
	}
}

// PayoutMultiplier maps an outcome to its bet multiplier: the configured
// ratio for a natural, even money for a win, zero for a push and -1 for a
// loss.
func PayoutMultiplier(outcome Outcome, ratio PayoutRatio) float64 {
	switch outcome {
	case OutcomeBlackjack:
		return ratio.Multiplier()
	case OutcomeWin:
		return 1
	case OutcomePush:
		return 0
	default:
		return -1
	}
}
