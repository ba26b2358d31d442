// Package counting layers card-counting analytics over the round engine:
// pluggable counting systems, running and true counts, and bet sizing
// heuristics derived from the count.
package counting

import "github.com/lox/blackjacklab/internal/deck"

// System is a named card-counting system: a point value per rank, with an
// optional override applied when the card's suit is red, and a balanced
// flag (per-deck values sum to zero).
type System struct {
	Name         string
	Description  string
	Values       map[deck.Rank]float64
	RedOverrides map[deck.Rank]float64
	Balanced     bool
}

// ValueFor returns the system's point value for a card.
func (s System) ValueFor(card deck.Card) float64 {
	if s.RedOverrides != nil && card.IsRed() {
		if v, ok := s.RedOverrides[card.Rank]; ok {
			return v
		}
	}
	return s.Values[card.Rank]
}

// PerDeckSum returns the sum of the system's values over one 52-card deck.
// Zero for balanced systems.
func (s System) PerDeckSum() float64 {
	sum := 0.0
	for rank := deck.Two; rank <= deck.Ace; rank++ {
		for suit := deck.Spades; suit <= deck.Clubs; suit++ {
			sum += s.ValueFor(deck.NewCard(rank, suit, 0))
		}
	}
	return sum
}

func tenValues(v float64) map[deck.Rank]float64 {
	return map[deck.Rank]float64{
		deck.Ten: v, deck.Jack: v, deck.Queen: v, deck.King: v,
	}
}

func merge(maps ...map[deck.Rank]float64) map[deck.Rank]float64 {
	out := make(map[deck.Rank]float64)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// HiLo is the default system.
const (
	HiLo     = "Hi-Lo"
	KO       = "KO"
	RedSeven = "Red 7"
	OmegaII  = "Omega II"
)

// Systems is the registry of supported counting systems.
var Systems = map[string]System{
	HiLo: {
		Name:        HiLo,
		Description: "Most popular balanced system",
		Values: merge(map[deck.Rank]float64{
			deck.Two: 1, deck.Three: 1, deck.Four: 1, deck.Five: 1, deck.Six: 1,
			deck.Seven: 0, deck.Eight: 0, deck.Nine: 0, deck.Ace: -1,
		}, tenValues(-1)),
		Balanced: true,
	},
	KO: {
		Name:        KO,
		Description: "Knock-Out, unbalanced and beginner friendly",
		Values: merge(map[deck.Rank]float64{
			deck.Two: 1, deck.Three: 1, deck.Four: 1, deck.Five: 1, deck.Six: 1,
			deck.Seven: 1, deck.Eight: 0, deck.Nine: 0, deck.Ace: -1,
		}, tenValues(-1)),
		Balanced: false,
	},
	RedSeven: {
		Name:        RedSeven,
		Description: "Colour-based unbalanced system; only red sevens count",
		Values: merge(map[deck.Rank]float64{
			deck.Two: 1, deck.Three: 1, deck.Four: 1, deck.Five: 1, deck.Six: 1,
			deck.Seven: 0, deck.Eight: 0, deck.Nine: 0, deck.Ace: -1,
		}, tenValues(-1)),
		RedOverrides: map[deck.Rank]float64{deck.Seven: 1},
		Balanced:     false,
	},
	OmegaII: {
		Name:        OmegaII,
		Description: "Advanced multi-level balanced system",
		Values: merge(map[deck.Rank]float64{
			deck.Two: 1, deck.Three: 1, deck.Four: 2, deck.Five: 2, deck.Six: 2,
			deck.Seven: 1, deck.Eight: 0, deck.Nine: -1, deck.Ace: 0,
		}, tenValues(-2)),
		Balanced: true,
	},
}

// Lookup returns the named system, falling back to Hi-Lo for unknown names.
func Lookup(name string) System {
	if s, ok := Systems[name]; ok {
		return s
	}
	return Systems[HiLo]
}
