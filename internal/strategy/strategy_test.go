package strategy

import (
	"testing"

	"github.com/lox/blackjacklab/internal/deck"
	"github.com/lox/blackjacklab/internal/randutil"
)

func hand(ranks ...deck.Rank) []deck.Card {
	out := make([]deck.Card, len(ranks))
	for i, r := range ranks {
		suit := deck.Spades
		if i%2 == 1 {
			suit = deck.Hearts
		}
		out[i] = deck.NewCard(r, suit, 0)
	}
	return out
}

func up(rank deck.Rank) deck.Card {
	return deck.NewCard(rank, deck.Clubs, 0)
}

func TestDecide_Pairs(t *testing.T) {
	tests := []struct {
		name     string
		cards    []deck.Card
		dealer   deck.Rank
		expected Action
	}{
		{"always split eights", hand(deck.Eight, deck.Eight), deck.Six, Split},
		{"eights even against ten", hand(deck.Eight, deck.Eight), deck.King, Split},
		{"always split aces", hand(deck.Ace, deck.Ace), deck.Ace, Split},
		{"never split fives", hand(deck.Five, deck.Five), deck.Six, Double},
		{"fives against ten just hit", hand(deck.Five, deck.Five), deck.Ten, Hit},
		{"never split tens", hand(deck.Ten, deck.King), deck.Six, Stand},
		{"nines stand against seven", hand(deck.Nine, deck.Nine), deck.Seven, Stand},
		{"nines split against eight", hand(deck.Nine, deck.Nine), deck.Eight, Split},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.cards, 10, 1000, up(tt.dealer))
			if got != tt.expected {
				t.Errorf("Decide() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestDecide_SplitNeedsBankroll(t *testing.T) {
	// 8-8 against 6 splits with money, falls back to the hard-16 row
	// (stand against 6) without it.
	if got := Decide(hand(deck.Eight, deck.Eight), 50, 40, up(deck.Six)); got != Stand {
		t.Errorf("broke bot should not split, got %s", got)
	}
}

func TestDecide_HardTotals(t *testing.T) {
	tests := []struct {
		name     string
		cards    []deck.Card
		dealer   deck.Rank
		expected Action
	}{
		{"eleven doubles", hand(deck.Five, deck.Six), deck.Ten, Double},
		{"twelve hits against two", hand(deck.Ten, deck.Two), deck.Two, Hit},
		{"twelve stands against four", hand(deck.Ten, deck.Two), deck.Four, Stand},
		{"sixteen stands against six", hand(deck.Ten, deck.Six), deck.Six, Stand},
		{"sixteen hits against ten", hand(deck.Ten, deck.Six), deck.Ten, Hit},
		{"seventeen always stands", hand(deck.Ten, deck.Seven), deck.Ace, Stand},
		{"nine doubles against four", hand(deck.Four, deck.Five), deck.Four, Double},
		{"nine hits against two", hand(deck.Four, deck.Five), deck.Two, Hit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.cards, 10, 1000, up(tt.dealer))
			if got != tt.expected {
				t.Errorf("Decide() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestDecide_SoftTotals(t *testing.T) {
	tests := []struct {
		name     string
		cards    []deck.Card
		dealer   deck.Rank
		expected Action
	}{
		{"soft 18 stands against two", hand(deck.Ace, deck.Seven), deck.Two, Stand},
		{"soft 18 doubles against six", hand(deck.Ace, deck.Seven), deck.Six, Double},
		{"soft 18 hits against nine", hand(deck.Ace, deck.Seven), deck.Nine, Hit},
		{"soft 17 doubles against three", hand(deck.Ace, deck.Six), deck.Three, Double},
		{"soft 13 hits against four", hand(deck.Ace, deck.Two), deck.Four, Hit},
		{"soft 19 stands", hand(deck.Ace, deck.Eight), deck.Six, Stand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.cards, 10, 1000, up(tt.dealer))
			if got != tt.expected {
				t.Errorf("Decide() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestDecide_DoubleDegradesToHit(t *testing.T) {
	// Three-card eleven can no longer double.
	if got := Decide(hand(deck.Two, deck.Four, deck.Five), 10, 1000, up(deck.Six)); got != Hit {
		t.Errorf("three-card 11 should hit, got %s", got)
	}
	// Two-card eleven without bankroll for the second bet.
	if got := Decide(hand(deck.Five, deck.Six), 50, 40, up(deck.Six)); got != Hit {
		t.Errorf("broke double should hit, got %s", got)
	}
}

func TestDecide_FaceCardsNormalise(t *testing.T) {
	// J, Q, K upcards behave exactly like a ten.
	for _, r := range []deck.Rank{deck.Ten, deck.Jack, deck.Queen, deck.King} {
		if got := Decide(hand(deck.Ten, deck.Six), 10, 1000, up(r)); got != Hit {
			t.Errorf("16 vs %s should hit, got %s", r, got)
		}
	}
}

func TestBetSize(t *testing.T) {
	tests := []struct {
		bankroll int
		expected int
	}{
		{1000, 15}, // 1.5% of the default bankroll
		{200, 5},   // kelly 3, floored to table minimum
		{5000, 50}, // kelly 75, capped at table max
		{400, 5},   // max bet limited to 10% of bankroll
	}
	for _, tt := range tests {
		if got := BetSize(tt.bankroll); got != tt.expected {
			t.Errorf("BetSize(%d) = %d, want %d", tt.bankroll, got, tt.expected)
		}
	}
}

func TestBotName(t *testing.T) {
	rng := randutil.New(1)
	name := BotName(rng)
	if name == "" {
		t.Fatal("empty bot name")
	}
	if name == BotName(rng) && name == BotName(rng) {
		t.Error("bot names should vary across draws")
	}
}
