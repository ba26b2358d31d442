package game

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacklab/internal/counting"
	"github.com/lox/blackjacklab/internal/deck"
)

// RoundSnapshot is the serializable state of an in-flight round, used to
// recover from a crash or reload. The timestamp drives the freshness check
// at restore time.
type RoundSnapshot struct {
	Phase     Phase             `json:"phase"`
	Dealer    []deck.Card       `json:"dealer"`
	Seats     []*Seat           `json:"seats"`
	Current   int               `json:"current"`
	Message   string            `json:"message"`
	LastBet   int               `json:"lastBet"`
	Shoe      deck.Snapshot     `json:"shoe"`
	Count     counting.Snapshot `json:"count"`
	Timestamp time.Time         `json:"timestamp"`
}

// Snapshot captures the full round. It takes the table lock, so the
// snapshot always sees a state between discrete transitions, never
// mid-deal.
func (t *Table) Snapshot() RoundSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	seats := make([]*Seat, len(t.seats))
	for i, s := range t.seats {
		seat := *s
		seat.Hands = make([]*Hand, len(s.Hands))
		for j, h := range s.Hands {
			hand := *h
			hand.Cards = append([]deck.Card(nil), h.Cards...)
			seat.Hands[j] = &hand
		}
		seats[i] = &seat
	}

	return RoundSnapshot{
		Phase:     t.phase,
		Dealer:    append([]deck.Card(nil), t.dealer...),
		Seats:     seats,
		Current:   t.current,
		Message:   t.message,
		LastBet:   t.lastBet,
		Shoe:      t.shoe.Snapshot(),
		Count:     t.counter.Snapshot(),
		Timestamp: time.Now(),
	}
}

// RestoreTable rebuilds a table from a snapshot. The caller is responsible
// for the freshness check; a restored table resumes exactly where the
// snapshot left off, including mid-play human turns.
func RestoreTable(snap RoundSnapshot, cfg Config, logger *log.Logger, opts ...Option) *Table {
	t := NewTable(cfg, logger, opts...)
	t.mu.Lock()
	defer t.mu.Unlock()

	t.phase = snap.Phase
	t.dealer = snap.Dealer
	t.seats = snap.Seats
	t.current = snap.Current
	t.message = snap.Message
	if snap.LastBet > 0 {
		t.lastBet = snap.LastBet
	}
	t.shoe = deck.Restore(snap.Shoe, t.rng)
	t.counter = counting.RestoreCounter(snap.Count, logger)
	for _, s := range t.seats {
		if s.Kind == Bot {
			t.nextSeatID++
		}
	}
	return t
}
