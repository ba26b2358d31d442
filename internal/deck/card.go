package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Nine {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// BlackjackValue returns the blackjack point value of the rank.
// Aces count as 11 here; soft/hard adjustment happens in hand valuation.
func (r Rank) BlackjackValue() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// Card represents one physical card in the shoe. DeckIndex identifies which
// of the shoe's decks the card came from, so a six-deck shoe holds six
// distinct aces of spades.
type Card struct {
	Rank      Rank `json:"rank"`
	Suit      Suit `json:"suit"`
	DeckIndex int  `json:"deck"`
	FaceDown  bool `json:"faceDown,omitempty"`
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit, deckIndex int) Card {
	return Card{Rank: rank, Suit: suit, DeckIndex: deckIndex}
}

// String returns the string representation of a card (e.g., "A♠").
// Face-down cards render as a card back.
func (c Card) String() string {
	if c.FaceDown {
		return "🂠"
	}
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsTenValue returns true for 10, J, Q and K
func (c Card) IsTenValue() bool {
	return c.Rank >= Ten && c.Rank <= King
}
