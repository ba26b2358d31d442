// Package statistics aggregates per-round results from headless
// simulations into summary measures.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjacklab/internal/rules"
)

// RoundResult is the outcome of one simulated round for the subject seat.
type RoundResult struct {
	Net      float64 // net dollars won or lost
	Bet      int     // total amount staked, after doubles and splits
	Hands    int     // hands played, >1 after splits
	Outcome  rules.Outcome
	Seed     int64 // RNG seed for replay
	Bankroll int   // bankroll after settlement
}

// Statistics tracks aggregate results across simulated rounds.
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64 // sum of squares for variance
	Values  []float64

	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int

	TotalStaked int
	TotalHands  int
	BiggestWin  float64
	BiggestLoss float64
	EndBankroll int
	WentBroke   bool
}

// Add incorporates one round result.
func (s *Statistics) Add(result RoundResult) {
	s.Rounds++
	s.SumNet += result.Net
	s.SumNet2 += result.Net * result.Net
	s.Values = append(s.Values, result.Net)
	s.TotalStaked += result.Bet
	s.TotalHands += result.Hands
	s.EndBankroll = result.Bankroll

	switch result.Outcome {
	case rules.OutcomeWin:
		s.Wins++
	case rules.OutcomeBlackjack:
		s.Wins++
		s.Blackjacks++
	case rules.OutcomeLose:
		s.Losses++
	case rules.OutcomePush:
		s.Pushes++
	}

	if result.Net > s.BiggestWin {
		s.BiggestWin = result.Net
	}
	if result.Net < s.BiggestLoss {
		s.BiggestLoss = result.Net
	}
}

// Mean returns the average net per round.
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of round nets.
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of round nets.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median round net.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the p-th percentile of round nets, p in [0, 1].
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), s.Values...)
	sort.Float64s(sorted)
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

// WinRate returns decided wins over decided rounds; pushes don't count.
func (s *Statistics) WinRate() float64 {
	decided := s.Wins + s.Losses
	if decided == 0 {
		return 0
	}
	return float64(s.Wins) / float64(decided)
}

// HouseEdge returns the loss rate as a fraction of total money staked.
// Positive means the house is ahead.
func (s *Statistics) HouseEdge() float64 {
	if s.TotalStaked == 0 {
		return 0
	}
	return -s.SumNet / float64(s.TotalStaked)
}

// Validate sanity-checks internal consistency.
func (s *Statistics) Validate() error {
	if s.Rounds != len(s.Values) {
		return fmt.Errorf("rounds %d != recorded values %d", s.Rounds, len(s.Values))
	}
	if decided := s.Wins + s.Losses + s.Pushes; decided > s.Rounds {
		return fmt.Errorf("outcomes %d exceed rounds %d", decided, s.Rounds)
	}
	return nil
}
