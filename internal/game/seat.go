package game

// SeatKind discriminates who plays a seat.
type SeatKind string

const (
	Human SeatKind = "human"
	Bot   SeatKind = "bot"
)

// SeatStatus tracks a seat's progress through the current round.
type SeatStatus string

const (
	StatusWaiting   SeatStatus = "waiting"
	StatusPlaying   SeatStatus = "playing"
	StatusBlackjack SeatStatus = "blackjack"
	StatusDone      SeatStatus = "done"
	StatusFolded    SeatStatus = "folded"
)

// MaxSeats is the table capacity.
const MaxSeats = 7

// MaxHandsPerSeat caps split fan-out: a seat may split three times.
const MaxHandsPerSeat = 4

// Seat is one participant at the table. The main human seat's bankroll is
// synced with the player account at settlement; bot and guest seats hold a
// local bankroll that never persists.
type Seat struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Kind       SeatKind   `json:"kind"`
	Bankroll   int        `json:"bankroll"`
	Hands      []*Hand    `json:"hands"`
	ActiveHand int        `json:"activeHand"`
	Status     SeatStatus `json:"status"`
	Number     int        `json:"number"`
	Summary    string     `json:"summary,omitempty"`
}

// CurrentHand returns the seat's active hand, or nil outside of play.
func (s *Seat) CurrentHand() *Hand {
	if s.ActiveHand < 0 || s.ActiveHand >= len(s.Hands) {
		return nil
	}
	return s.Hands[s.ActiveHand]
}

// AllHandsComplete reports whether every hand at the seat is finished.
func (s *Seat) AllHandsComplete() bool {
	for _, h := range s.Hands {
		if !h.Complete {
			return false
		}
	}
	return true
}

// TotalBet returns the sum of bets across the seat's hands.
func (s *Seat) TotalBet() int {
	total := 0
	for _, h := range s.Hands {
		total += h.Bet
	}
	return total
}

func (s *Seat) clearRound() {
	s.Hands = nil
	s.ActiveHand = 0
	s.Status = StatusWaiting
	s.Summary = ""
}
