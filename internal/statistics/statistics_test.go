package statistics

import (
	"math"
	"testing"

	"github.com/lox/blackjacklab/internal/rules"
)

func TestStatisticsBasics(t *testing.T) {
	s := &Statistics{}

	if s.Mean() != 0 || s.StdDev() != 0 || s.Median() != 0 {
		t.Error("empty statistics should report zeroes")
	}

	results := []RoundResult{
		{Net: 20, Bet: 20, Hands: 1, Outcome: rules.OutcomeWin, Bankroll: 1020},
		{Net: -20, Bet: 20, Hands: 1, Outcome: rules.OutcomeLose, Bankroll: 1000},
		{Net: 30, Bet: 20, Hands: 1, Outcome: rules.OutcomeBlackjack, Bankroll: 1030},
		{Net: 0, Bet: 20, Hands: 1, Outcome: rules.OutcomePush, Bankroll: 1030},
		{Net: -40, Bet: 40, Hands: 2, Outcome: rules.OutcomeLose, Bankroll: 990},
	}
	for _, r := range results {
		s.Add(r)
	}

	if s.Rounds != 5 {
		t.Errorf("Rounds = %d, want 5", s.Rounds)
	}
	if s.Wins != 2 || s.Losses != 2 || s.Pushes != 1 || s.Blackjacks != 1 {
		t.Errorf("outcome counts = %d/%d/%d/%d", s.Wins, s.Losses, s.Pushes, s.Blackjacks)
	}
	if got := s.Mean(); math.Abs(got-(-2.0)) > 1e-9 {
		t.Errorf("Mean = %v, want -2", got)
	}
	if got := s.Median(); got != 0 {
		t.Errorf("Median = %v, want 0", got)
	}
	if s.BiggestWin != 30 || s.BiggestLoss != -40 {
		t.Errorf("extremes = %v/%v", s.BiggestWin, s.BiggestLoss)
	}
	if s.TotalStaked != 120 || s.TotalHands != 6 {
		t.Errorf("staked/hands = %d/%d", s.TotalStaked, s.TotalHands)
	}
	if s.EndBankroll != 990 {
		t.Errorf("EndBankroll = %d, want 990", s.EndBankroll)
	}
	if got := s.WinRate(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("WinRate = %v, want 0.5", got)
	}

	if err := s.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestStatisticsVariance(t *testing.T) {
	s := &Statistics{}
	for _, net := range []float64{10, -10, 10, -10} {
		s.Add(RoundResult{Net: net, Bet: 10, Hands: 1})
	}

	// Sample variance of {10,-10,10,-10} about mean 0 is 400/3.
	want := 400.0 / 3.0
	if got := s.Variance(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Variance = %v, want %v", got, want)
	}
	if got := s.StdError(); math.Abs(got-s.StdDev()/2) > 1e-9 {
		t.Errorf("StdError = %v", got)
	}

	low, high := s.ConfidenceInterval95()
	if low >= high {
		t.Errorf("CI = [%v, %v]", low, high)
	}
	if mean := s.Mean(); mean < low || mean > high {
		t.Errorf("mean %v outside CI [%v, %v]", mean, low, high)
	}
}

func TestHouseEdge(t *testing.T) {
	s := &Statistics{}
	s.Add(RoundResult{Net: -5, Bet: 100, Hands: 1, Outcome: rules.OutcomeLose})

	if got := s.HouseEdge(); math.Abs(got-0.05) > 1e-9 {
		t.Errorf("HouseEdge = %v, want 0.05", got)
	}
}

func TestPercentile(t *testing.T) {
	s := &Statistics{}
	for i := 1; i <= 100; i++ {
		s.Add(RoundResult{Net: float64(i), Bet: 1, Hands: 1})
	}

	if got := s.Percentile(0); got != 1 {
		t.Errorf("P0 = %v, want 1", got)
	}
	if got := s.Percentile(1); got != 100 {
		t.Errorf("P100 = %v, want 100", got)
	}
	if got := s.Percentile(0.25); got < 24 || got > 27 {
		t.Errorf("P25 = %v", got)
	}
}
