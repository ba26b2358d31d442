// Package simulator plays unattended rounds with the subject seat driven
// by basic strategy and count-aware bet sizing, for measuring long-run
// performance of the tables.
package simulator

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjacklab/internal/game"
	"github.com/lox/blackjacklab/internal/randutil"
	"github.com/lox/blackjacklab/internal/rules"
	"github.com/lox/blackjacklab/internal/statistics"
	"github.com/lox/blackjacklab/internal/strategy"
)

// Config holds configuration for running simulations.
type Config struct {
	Rounds         int
	Decks          int
	Bots           int // extra seats playing alongside the subject
	Bankroll       int
	Payout         rules.PayoutRatio
	CountingSystem string
	CountBets      bool // size bets from the true count instead of flat
	Seed           int64
	Logger         *log.Logger
}

// Simulator runs blackjack round simulations.
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration.
func New(config Config) *Simulator {
	if config.Decks <= 0 {
		config.Decks = 6
	}
	if config.Bankroll <= 0 {
		config.Bankroll = 1000
	}
	if config.Payout == "" {
		config.Payout = rules.PayoutThreeToTwo
	}
	if config.CountingSystem == "" {
		config.CountingSystem = "Hi-Lo"
	}
	return &Simulator{config: config}
}

// Run plays the configured number of rounds and returns the aggregate
// results for the subject seat. Stops early if the subject goes broke.
func (s *Simulator) Run() (*statistics.Statistics, error) {
	cfg := game.DefaultConfig()
	cfg.NumDecks = s.config.Decks
	cfg.Payout = s.config.Payout
	cfg.CountingSystem = s.config.CountingSystem
	cfg.Bankroll = s.config.Bankroll
	cfg.PlayerID = "sim"
	cfg.PlayerName = "Subject"

	table := game.NewTable(cfg, s.config.Logger,
		game.WithRNG(randutil.New(s.config.Seed)))
	for i := 0; i < s.config.Bots; i++ {
		if table.AddBot("", s.config.Bankroll) == nil {
			return nil, fmt.Errorf("could not seat bot %d of %d", i+1, s.config.Bots)
		}
	}

	stats := &statistics.Statistics{}
	for round := 0; round < s.config.Rounds; round++ {
		subject := table.MainSeat()
		before := subject.Bankroll
		bet := s.betSize(table, before)
		if bet > before {
			bet = before
		}
		if bet < strategy.MinBet {
			stats.WentBroke = true
			s.config.Logger.Info("subject went broke", "round", round, "bankroll", before)
			break
		}

		if !table.PlaceBet(bet) {
			return nil, fmt.Errorf("bet refused on round %d (bet %d, bankroll %d)", round+1, bet, before)
		}
		s.playSubject(table)
		if table.Phase() != game.PhaseFinished {
			return nil, fmt.Errorf("round %d stalled in phase %s", round+1, table.Phase())
		}

		stats.Add(statistics.RoundResult{
			Net:      float64(subject.Bankroll - before),
			Bet:      subject.TotalBet(),
			Hands:    len(subject.Hands),
			Outcome:  overallOutcome(subject),
			Seed:     s.config.Seed,
			Bankroll: subject.Bankroll,
		})
		table.ResetRound()
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// betSize picks the subject's bet: flat minimum, or sized from the count.
func (s *Simulator) betSize(table *game.Table, bankroll int) int {
	if !s.config.CountBets {
		return strategy.MinBet
	}
	advice := table.Counter().Advise(bankroll, table.CardsRemaining())
	return advice.SuggestedBet
}

// playSubject drives the subject seat with basic strategy until the round
// settles. Bot seats play themselves inside the engine.
func (s *Simulator) playSubject(table *game.Table) {
	for table.Phase() == game.PhasePlaying {
		seat := table.CurrentSeat()
		if seat == nil || seat.ID != "sim" {
			return
		}
		hand := seat.CurrentHand()
		if hand == nil {
			return
		}
		up, ok := table.DealerUpCard()
		if !ok {
			return
		}
		switch strategy.Decide(hand.Cards, hand.Bet, seat.Bankroll, up) {
		case strategy.Hit:
			table.Hit()
		case strategy.Double:
			if !table.DoubleDown() {
				table.Hit()
			}
		case strategy.Split:
			// Refused at the four-hand cap; stand on the pair instead.
			if !table.Split() {
				table.Stand()
			}
		default:
			table.Stand()
		}
	}
}

func overallOutcome(seat *game.Seat) rules.Outcome {
	wins, losses := 0, 0
	for _, h := range seat.Hands {
		switch h.Outcome {
		case rules.OutcomeWin:
			wins++
		case rules.OutcomeBlackjack:
			return rules.OutcomeBlackjack
		case rules.OutcomeLose:
			losses++
		}
	}
	switch {
	case wins > 0 && losses == 0:
		return rules.OutcomeWin
	case losses > 0 && wins == 0:
		return rules.OutcomeLose
	default:
		return rules.OutcomePush
	}
}

// PrintSummary writes a human-readable report of simulation results.
func PrintSummary(stats *statistics.Statistics, system string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Printf("\n=== SIMULATION RESULTS (%s) ===\n", system)
	fmt.Printf("Rounds played: %d (%d hands)\n", stats.Rounds, stats.TotalHands)
	fmt.Printf("Record: %d wins, %d losses, %d pushes (%d blackjacks)\n",
		stats.Wins, stats.Losses, stats.Pushes, stats.Blackjacks)
	fmt.Printf("Win rate: %.1f%%\n", stats.WinRate()*100)

	fmt.Printf("\nNet: $%.0f over $%d staked (house edge %.2f%%)\n",
		stats.SumNet, stats.TotalStaked, stats.HouseEdge()*100)
	fmt.Printf("Mean: %.3f $/round, median %.1f\n", stats.Mean(), stats.Median())
	fmt.Printf("Std dev: %.2f, 95%% CI [%.3f, %.3f]\n", stats.StdDev(), low, high)
	fmt.Printf("Best round: +$%.0f, worst: -$%.0f\n", stats.BiggestWin, -stats.BiggestLoss)
	fmt.Printf("Final bankroll: $%d\n", stats.EndBankroll)
	if stats.WentBroke {
		fmt.Printf("Subject went broke before completing the run.\n")
	}
}
