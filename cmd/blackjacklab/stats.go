package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/lox/blackjacklab/internal/account"
)

// StatsCmd prints a player's career record from the account store.
type StatsCmd struct {
	Player  string `kong:"default='guest',help='Player ID'"`
	History int    `kong:"default='10',help='Recent rounds to list'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *StatsCmd) Run() error {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errors.New("stats need a durable store: set DATABASE_URL")
	}

	ctx := context.Background()
	store, err := account.OpenPostgres(ctx, dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	acct, err := store.Get(ctx, c.Player)
	if errors.Is(err, account.ErrNotFound) {
		return fmt.Errorf("no account for player %q", c.Player)
	}
	if err != nil {
		return err
	}

	fmt.Printf("=== %s (%s) ===\n", acct.Name, acct.ID)
	fmt.Printf("Bankroll: $%d\n", acct.Bankroll)
	fmt.Printf("Hands: %d (%d wins, %d losses, %.1f%% win rate)\n",
		acct.Stats.TotalHands, acct.Stats.TotalWins, acct.Stats.TotalLosses,
		acct.Stats.WinRate()*100)
	fmt.Printf("Biggest win: $%d, biggest loss: $%d\n",
		acct.Stats.BiggestWin, acct.Stats.BiggestLoss)
	if !acct.Stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", acct.Stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	if c.History > 0 {
		recs, err := store.History(ctx, c.Player, c.History)
		if err != nil {
			return err
		}
		if len(recs) > 0 {
			fmt.Printf("\nRecent rounds:\n")
			for _, rec := range recs {
				fmt.Printf("  %s  %-9s  bet $%-4d net %+d\n",
					rec.Timestamp.Format("01-02 15:04"), rec.Outcome, rec.TotalBet, rec.NetPayout)
			}
		}
	}
	return nil
}
