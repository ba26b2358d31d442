package game

import (
	"fmt"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjacklab/internal/counting"
	"github.com/lox/blackjacklab/internal/deck"
	"github.com/lox/blackjacklab/internal/strategy"
)

// Phase is the round state. It alone determines which actions are legal.
type Phase string

const (
	PhaseBetting  Phase = "betting"
	PhaseDealing  Phase = "dealing"
	PhasePlaying  Phase = "playing"
	PhaseDealer   Phase = "dealer"
	PhaseFinished Phase = "finished"
)

// Table owns one blackjack round at a time: the shoe, the dealer's hand and
// every seat. All transitions run under one lock, so a snapshot taken
// between calls always sees a fully-formed round.
type Table struct {
	mu sync.Mutex

	cfg     Config
	shoe    *deck.Shoe
	dealer  []deck.Card
	seats   []*Seat
	current int
	phase   Phase
	message string
	lastBet int

	counter  *counting.Counter
	accounts PlayerAccount
	gamelog  GameLogSink
	logger   *log.Logger
	clock    quartz.Clock
	rng      *rand.Rand

	nextSeatID int
}

// Option configures a Table.
type Option func(*Table)

// WithClock injects the clock used for deal pacing and bot think delays.
func WithClock(clock quartz.Clock) Option {
	return func(t *Table) { t.clock = clock }
}

// WithRNG injects the shuffle/bot RNG for reproducible rounds.
func WithRNG(rng *rand.Rand) Option {
	return func(t *Table) { t.rng = rng }
}

// WithAccount routes the main seat's bankroll through a player account.
func WithAccount(accounts PlayerAccount) Option {
	return func(t *Table) { t.accounts = accounts }
}

// WithGameLog records settled main-seat rounds to a sink.
func WithGameLog(sink GameLogSink) Option {
	return func(t *Table) { t.gamelog = sink }
}

// WithShoe replaces the table's shoe, for stacked-deck tests.
func WithShoe(shoe *deck.Shoe) Option {
	return func(t *Table) { t.shoe = shoe }
}

// NewTable creates a table in the betting phase with the main seat at
// seat 1.
func NewTable(cfg Config, logger *log.Logger, opts ...Option) *Table {
	cfg = cfg.withDefaults()
	t := &Table{
		cfg:      cfg,
		phase:    PhaseBetting,
		message:  "Place your bet",
		lastBet:  15,
		accounts: NopAccount{},
		gamelog:  NopSink{},
		logger:   logger,
		clock:    quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if t.shoe == nil {
		t.shoe = deck.NewShoe(cfg.NumDecks, cfg.Penetration, t.rng)
	}
	t.counter = counting.NewCounter(counting.Lookup(cfg.CountingSystem), logger)
	t.seats = []*Seat{{
		ID:       cfg.PlayerID,
		Name:     cfg.PlayerName,
		Kind:     Human,
		Bankroll: cfg.Bankroll,
		Status:   StatusWaiting,
		Number:   1,
	}}
	return t
}

// Phase returns the current round phase.
func (t *Table) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// Message returns the current table prompt.
func (t *Table) Message() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.message
}

// LastBet returns the main seat's previous bet, for quick re-betting.
func (t *Table) LastBet() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastBet
}

// Counter exposes the counting engine for count displays and bet advice.
func (t *Table) Counter() *counting.Counter {
	return t.counter
}

// CardsRemaining returns the undealt cards in the shoe, the input to
// true-count conversion.
func (t *Table) CardsRemaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.shoe.Remaining()
}

// DealerHand returns a copy of the dealer's cards.
func (t *Table) DealerHand() []deck.Card {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]deck.Card, len(t.dealer))
	copy(out, t.dealer)
	return out
}

// DealerUpCard returns the dealer's face-up card, if dealt.
func (t *Table) DealerUpCard() (deck.Card, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.dealer) == 0 {
		return deck.Card{}, false
	}
	return t.dealer[0], true
}

// Seats returns the seats in seat-number order.
func (t *Table) Seats() []*Seat {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Seat, len(t.seats))
	copy(out, t.seats)
	return out
}

// MainSeat returns the main human seat.
func (t *Table) MainSeat() *Seat {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mainSeat()
}

func (t *Table) mainSeat() *Seat {
	for _, s := range t.seats {
		if s.ID == t.cfg.PlayerID {
			return s
		}
	}
	return nil
}

// CurrentSeat returns the seat whose turn it is, or nil outside the playing
// phase.
func (t *Table) CurrentSeat() *Seat {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase != PhasePlaying || t.current >= len(t.seats) {
		return nil
	}
	return t.seats[t.current]
}

// AddBot seats a bot at the first free seat number. Legal only between
// rounds; returns nil when the table is full or a round is in progress.
func (t *Table) AddBot(name string, bankroll int) *Seat {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase != PhaseBetting && t.phase != PhaseFinished {
		return nil
	}
	if len(t.seats) >= MaxSeats {
		return nil
	}
	if name == "" {
		name = strategy.BotName(t.rng)
	}
	t.nextSeatID++
	seat := &Seat{
		ID:       fmt.Sprintf("bot-%d", t.nextSeatID),
		Name:     name,
		Kind:     Bot,
		Bankroll: bankroll,
		Status:   StatusWaiting,
		Number:   t.freeSeatNumber(),
	}
	t.seats = append(t.seats, seat)
	t.sortSeats()
	t.logger.Info("bot joined", "name", seat.Name, "seat", seat.Number, "bankroll", bankroll)
	return seat
}

// RemoveSeat removes a seat by number. The main seat cannot be removed.
// Removing the current seat mid-play forfeits that seat's remaining turn.
func (t *Table) RemoveSeat(number int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := -1
	for i, s := range t.seats {
		if s.Number == number {
			idx = i
			break
		}
	}
	if idx == -1 || t.seats[idx].ID == t.cfg.PlayerID {
		return false
	}
	switch t.phase {
	case PhaseBetting, PhaseFinished:
	case PhasePlaying:
		// Forfeit: complete the seat's hands so turn order stays coherent.
		seat := t.seats[idx]
		seat.Status = StatusFolded
		for _, h := range seat.Hands {
			h.Complete = true
			if h.Outcome == "" {
				h.Outcome = "lose"
			}
		}
	default:
		return false
	}
	removed := t.seats[idx]
	t.seats = append(t.seats[:idx], t.seats[idx+1:]...)
	if t.phase == PhasePlaying {
		if idx < t.current {
			t.current--
		} else if idx == t.current {
			t.current--
			t.advanceSeat()
		}
	}
	t.logger.Info("seat removed", "name", removed.Name, "seat", number)
	return true
}

// SwapSeats exchanges the seat numbers of two seats. Legal only between
// rounds.
func (t *Table) SwapSeats(a, b int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase != PhaseBetting && t.phase != PhaseFinished {
		return false
	}
	var sa, sb *Seat
	for _, s := range t.seats {
		switch s.Number {
		case a:
			sa = s
		case b:
			sb = s
		}
	}
	if sa == nil || sb == nil {
		return false
	}
	sa.Number, sb.Number = sb.Number, sa.Number
	t.sortSeats()
	return true
}

// SetMultiplayer toggles bot seats: disabling removes every non-main seat.
func (t *Table) SetMultiplayer(enabled bool) {
	if enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase != PhaseBetting && t.phase != PhaseFinished {
		return
	}
	kept := t.seats[:0]
	for _, s := range t.seats {
		if s.ID == t.cfg.PlayerID {
			kept = append(kept, s)
		}
	}
	t.seats = kept
}

func (t *Table) freeSeatNumber() int {
	taken := make(map[int]bool, len(t.seats))
	for _, s := range t.seats {
		taken[s.Number] = true
	}
	for n := 1; n <= MaxSeats; n++ {
		if !taken[n] {
			return n
		}
	}
	return len(t.seats) + 1
}

func (t *Table) sortSeats() {
	for i := 1; i < len(t.seats); i++ {
		for j := i; j > 0 && t.seats[j-1].Number > t.seats[j].Number; j-- {
			t.seats[j-1], t.seats[j] = t.seats[j], t.seats[j-1]
		}
	}
}

// pause blocks for d on the table clock. Zero delays collapse to nothing,
// which is how tests and the simulator run.
func (t *Table) pause(d time.Duration) {
	if d <= 0 {
		return
	}
	timer := t.clock.NewTimer(d)
	defer timer.Stop()
	<-timer.C
}
