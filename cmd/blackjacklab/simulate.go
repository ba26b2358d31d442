package main

import (
	"time"

	"github.com/lox/blackjacklab/internal/rules"
	"github.com/lox/blackjacklab/internal/simulator"
)

// SimulateCmd runs unattended rounds and reports aggregate results.
type SimulateCmd struct {
	Rounds    int    `kong:"default='10000',help='Number of rounds to play'"`
	Decks     int    `kong:"default='6',help='Decks in the shoe'"`
	Bots      int    `kong:"default='0',help='Extra bot seats playing alongside'"`
	Bankroll  int    `kong:"default='100000',help='Subject starting bankroll'"`
	Payout    string `kong:"default='3:2',help='Blackjack payout ratio (3:2, 6:5, 1:1)'"`
	System    string `kong:"default='Hi-Lo',help='Counting system for bet sizing'"`
	CountBets bool   `kong:"help='Size bets from the true count instead of flat minimum'"`
	Seed      *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug     bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger("warn", c.Debug)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Info("starting simulation", "rounds", c.Rounds, "seed", seed)

	sim := simulator.New(simulator.Config{
		Rounds:         c.Rounds,
		Decks:          c.Decks,
		Bots:           c.Bots,
		Bankroll:       c.Bankroll,
		Payout:         rules.PayoutRatio(c.Payout),
		CountingSystem: c.System,
		CountBets:      c.CountBets,
		Seed:           seed,
		Logger:         logger,
	})

	stats, err := sim.Run()
	if err != nil {
		return err
	}
	simulator.PrintSummary(stats, c.System)
	return nil
}
