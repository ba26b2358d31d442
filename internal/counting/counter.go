package counting

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacklab/internal/deck"
)

// Entry records one count-moving card observation.
type Entry struct {
	Card         deck.Card `json:"card"`
	Delta        float64   `json:"delta"`
	RunningCount float64   `json:"runningCount"`
	TrueCount    float64   `json:"trueCount"`
	Timestamp    time.Time `json:"timestamp"`
}

// AdvantageLevel buckets the true count into a coarse player-edge signal.
type AdvantageLevel string

const (
	AdvantageHigh    AdvantageLevel = "high"
	AdvantageMedium  AdvantageLevel = "medium"
	AdvantageNeutral AdvantageLevel = "neutral"
	AdvantageLow     AdvantageLevel = "low"
)

// Counter tracks the running count for one active system. It observes
// face-up cards as the engine deals them; it never reads the shoe directly,
// so true-count conversion takes the remaining card count as input.
type Counter struct {
	system    System
	running   float64
	totalSeen int
	roundLog  []Entry
	history   []Entry
	logger    *log.Logger
}

// NewCounter creates a counter for the given system.
func NewCounter(system System, logger *log.Logger) *Counter {
	return &Counter{system: system, logger: logger}
}

// System returns the active counting system.
func (c *Counter) System() System {
	return c.system
}

// RunningCount returns the cumulative point total since the last reset.
func (c *Counter) RunningCount() float64 {
	return c.running
}

// TotalSeen returns the number of cards observed this shoe.
func (c *Counter) TotalSeen() int {
	return c.totalSeen
}

// History returns all count-moving observations since the last reset.
func (c *Counter) History() []Entry {
	return c.history
}

// RoundLog returns the count-moving observations for the current round.
func (c *Counter) RoundLog() []Entry {
	return c.roundLog
}

// ReportCard observes a dealt card. Face-down cards are not counted; the
// engine reports the hole card again once it is revealed. Zero-valued cards
// are observed but leave no history entry.
func (c *Counter) ReportCard(card deck.Card, cardsRemaining int) {
	if card.FaceDown {
		return
	}
	c.totalSeen++

	delta := c.system.ValueFor(card)
	if delta == 0 {
		return
	}
	c.running += delta

	entry := Entry{
		Card:         card,
		Delta:        delta,
		RunningCount: c.running,
		TrueCount:    c.TrueCount(cardsRemaining),
		Timestamp:    time.Now(),
	}
	c.roundLog = append(c.roundLog, entry)
	c.history = append(c.history, entry)

	c.logger.Debug("card counted",
		"card", card.String(), "delta", delta, "running", c.running)
}

// DecksRemaining converts a remaining card count to decks, floored at half
// a deck to keep late-shoe true counts from blowing up.
func DecksRemaining(cardsRemaining int) float64 {
	return math.Max(0.5, float64(cardsRemaining)/52)
}

// TrueCount is the running count normalised by decks remaining, rounded to
// one decimal.
func (c *Counter) TrueCount(cardsRemaining int) float64 {
	return math.Round(c.running/DecksRemaining(cardsRemaining)*10) / 10
}

// Advantage buckets the current true count.
func (c *Counter) Advantage(cardsRemaining int) AdvantageLevel {
	tc := c.TrueCount(cardsRemaining)
	switch {
	case tc >= 3:
		return AdvantageHigh
	case tc >= 1:
		return AdvantageMedium
	case tc <= -2:
		return AdvantageLow
	default:
		return AdvantageNeutral
	}
}

// SuggestedBet sizes a bet from the true count: one base unit (1% of
// bankroll, floor 5) at neutral counts, (trueCount-1) units from +2, capped
// at 8 units from +5, never more than 5% of bankroll.
func (c *Counter) SuggestedBet(bankroll, cardsRemaining int) int {
	unit := float64(max(5, bankroll/100))
	tc := c.TrueCount(cardsRemaining)

	units := 1.0
	if tc >= 2 {
		units = tc - 1
	}
	if tc >= 5 {
		units = math.Min(8, tc-1)
	}

	return int(math.Min(units*unit, float64(bankroll)*0.05))
}

// Advice is the human-facing read on the current count.
type Advice struct {
	Level        AdvantageLevel
	Message      string
	SuggestedBet int
}

// Advise summarises the count into a bet recommendation.
func (c *Counter) Advise(bankroll, cardsRemaining int) Advice {
	tc := c.TrueCount(cardsRemaining)
	switch {
	case tc >= 3:
		return Advice{
			Level:        AdvantageHigh,
			Message:      "High count! Increase bet size",
			SuggestedBet: min(c.SuggestedBet(bankroll, cardsRemaining), bankroll/10),
		}
	case tc >= 1:
		return Advice{
			Level:        AdvantageMedium,
			Message:      "Slightly favorable count",
			SuggestedBet: c.SuggestedBet(bankroll, cardsRemaining),
		}
	case tc <= -2:
		return Advice{
			Level:        AdvantageLow,
			Message:      "Unfavorable count - minimum bet",
			SuggestedBet: max(5, bankroll/200),
		}
	default:
		return Advice{
			Level:        AdvantageNeutral,
			Message:      "Neutral count",
			SuggestedBet: c.SuggestedBet(bankroll, cardsRemaining),
		}
	}
}

// ResetRound clears the per-round observation log.
func (c *Counter) ResetRound() {
	c.roundLog = nil
}

// NewShoe handles a reshuffle. Balanced systems restart from zero;
// unbalanced systems keep their running count, carrying the residual bias
// the system is designed around. Per-shoe counters always reset.
func (c *Counter) NewShoe() {
	if c.system.Balanced {
		c.running = 0
	}
	c.totalSeen = 0
	c.history = nil
	c.logger.Debug("new shoe", "system", c.system.Name, "running", c.running)
}

// Reset clears all counter state, including an unbalanced running count.
func (c *Counter) Reset() {
	c.running = 0
	c.totalSeen = 0
	c.roundLog = nil
	c.history = nil
}

// Snapshot captures counter state for round persistence.
type Snapshot struct {
	System       string  `json:"system"`
	RunningCount float64 `json:"runningCount"`
	TotalSeen    int     `json:"totalSeen"`
}

// Snapshot returns the persistable counter state.
func (c *Counter) Snapshot() Snapshot {
	return Snapshot{System: c.system.Name, RunningCount: c.running, TotalSeen: c.totalSeen}
}

// RestoreCounter rebuilds a counter from a snapshot. History is not
// persisted; it restarts empty.
func RestoreCounter(snap Snapshot, logger *log.Logger) *Counter {
	c := NewCounter(Lookup(snap.System), logger)
	c.running = snap.RunningCount
	c.totalSeen = snap.TotalSeen
	return c
}
