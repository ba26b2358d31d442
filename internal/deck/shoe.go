package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrEmptyShoe is returned when drawing from an exhausted shoe. The round
// engine checks NeedsShuffle before every draw, so seeing this error means
// a caller skipped that check.
var ErrEmptyShoe = errors.New("deck: shoe is empty")

// DefaultPenetration is the fraction of the shoe dealt before a reshuffle.
const DefaultPenetration = 0.75

// Shoe is the working set of cards for a table, built from one or more
// standard 52-card decks and shuffled on creation.
type Shoe struct {
	cards       []Card
	numDecks    int
	dealt       int
	penetration float64
	rng         *rand.Rand
}

// NewShoe creates a shuffled shoe of numDecks standard decks.
func NewShoe(numDecks int, penetration float64, rng *rand.Rand) *Shoe {
	if numDecks < 1 {
		numDecks = 1
	}
	if penetration <= 0 || penetration > 1 {
		penetration = DefaultPenetration
	}
	s := &Shoe{
		cards:       buildCards(numDecks),
		numDecks:    numDecks,
		penetration: penetration,
		rng:         rng,
	}
	s.shuffle()
	return s
}

func buildCards(numDecks int) []Card {
	cards := make([]Card, 0, numDecks*52)
	for d := range numDecks {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				cards = append(cards, NewCard(rank, suit, d))
			}
		}
	}
	return cards
}

// shuffle performs a Fisher-Yates shuffle over the remaining cards.
func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the last card of the shoe.
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrEmptyShoe
	}
	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	s.dealt++
	return card, nil
}

// NeedsShuffle reports whether the dealt fraction has reached the
// penetration threshold. Checked lazily before each draw.
func (s *Shoe) NeedsShuffle() bool {
	return float64(s.dealt) >= float64(s.Total())*s.penetration
}

// Reshuffle rebuilds the shoe to a full, freshly shuffled state.
func (s *Shoe) Reshuffle() {
	s.cards = buildCards(s.numDecks)
	s.dealt = 0
	s.shuffle()
}

// Remaining returns the number of undealt cards.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Dealt returns the number of cards drawn from the current shoe.
func (s *Shoe) Dealt() int {
	return s.dealt
}

// Total returns the full shoe size, numDecks x 52.
func (s *Shoe) Total() int {
	return s.numDecks * 52
}

// NumDecks returns the number of decks the shoe was built from.
func (s *Shoe) NumDecks() int {
	return s.numDecks
}

// Penetration returns the reshuffle threshold fraction.
func (s *Shoe) Penetration() float64 {
	return s.penetration
}

// Snapshot captures the shoe for persistence.
type Snapshot struct {
	Cards       []Card  `json:"cards"`
	NumDecks    int     `json:"numDecks"`
	Dealt       int     `json:"dealt"`
	Penetration float64 `json:"penetration"`
}

// Snapshot returns a copy of the shoe state suitable for serialization.
func (s *Shoe) Snapshot() Snapshot {
	cards := make([]Card, len(s.cards))
	copy(cards, s.cards)
	return Snapshot{
		Cards:       cards,
		NumDecks:    s.numDecks,
		Dealt:       s.dealt,
		Penetration: s.penetration,
	}
}

// Restore rebuilds a shoe from a snapshot, preserving card order.
func Restore(snap Snapshot, rng *rand.Rand) *Shoe {
	cards := make([]Card, len(snap.Cards))
	copy(cards, snap.Cards)
	return &Shoe{
		cards:       cards,
		numDecks:    snap.NumDecks,
		dealt:       snap.Dealt,
		penetration: snap.Penetration,
		rng:         rng,
	}
}
