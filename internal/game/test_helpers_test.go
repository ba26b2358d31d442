package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacklab/internal/deck"
	"github.com/lox/blackjacklab/internal/randutil"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func testRNG() *rand.Rand {
	return randutil.New(7)
}

// stackedShoe builds a shoe that deals the given ranks in order. Suits
// rotate so duplicate ranks stay distinct cards.
func stackedShoe(ranks ...deck.Rank) *deck.Shoe {
	cards := make([]deck.Card, len(ranks))
	for i, r := range ranks {
		// Draw takes from the end, so write in reverse.
		cards[len(ranks)-1-i] = deck.NewCard(r, deck.Suit(i%4), i/4)
	}
	return deck.Restore(deck.Snapshot{
		Cards:       cards,
		NumDecks:    6,
		Dealt:       0,
		Penetration: deck.DefaultPenetration,
	}, randutil.New(1))
}

func testTable(shoe *deck.Shoe, opts ...Option) *Table {
	cfg := DefaultConfig()
	opts = append([]Option{WithShoe(shoe), WithRNG(randutil.New(1))}, opts...)
	return NewTable(cfg, testLogger(), opts...)
}
