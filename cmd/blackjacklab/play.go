package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjacklab/internal/account"
	"github.com/lox/blackjacklab/internal/config"
	"github.com/lox/blackjacklab/internal/game"
	"github.com/lox/blackjacklab/internal/randutil"
	"github.com/lox/blackjacklab/internal/rules"
	"github.com/lox/blackjacklab/internal/snapshot"
	"github.com/lox/blackjacklab/internal/tui"
)

// PlayCmd runs an interactive table session.
type PlayCmd struct {
	Config string `kong:"default='blackjacklab.hcl',help='Session config file (HCL)'"`
	Player string `kong:"default='guest',help='Player ID for bankroll and stats'"`
	Resume bool   `kong:"default='true',negatable,help='Resume a saved round when one exists'"`
	Seed   *int64 `kong:"help='Deterministic shuffle seed (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	_ = godotenv.Load()

	sessionConfig, err := config.LoadSessionConfig(c.Config)
	if err != nil {
		return err
	}
	logger := setupLogger(sessionConfig.Session.LogLevel, c.Debug)

	store, closeStore, err := openStore(logger, c.Player, sessionConfig.Session.Bankroll)
	if err != nil {
		return err
	}
	defer closeStore()

	snapshots, err := snapshot.NewStore(sessionConfig.Session.SnapshotDir, logger)
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("using deterministic seed", "seed", seed)
	}

	table, err := c.buildTable(logger, sessionConfig, store, snapshots, seed)
	if err != nil {
		return err
	}

	interval := sessionConfig.Session.SnapshotInterval()
	program := tea.NewProgram(tui.New(table, logger), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})
	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := saveOrClear(snapshots, table, c.Player); err != nil {
					logger.Warn("snapshot autosave failed", "err", err)
				}
			}
		}
	})
	if err := g.Wait(); err != nil {
		return err
	}

	// One final save so a quit mid-round is resumable.
	return saveOrClear(snapshots, table, c.Player)
}

// buildTable restores a saved round when one is fresh, otherwise starts a
// new table from configuration.
func (c *PlayCmd) buildTable(logger *log.Logger, sessionConfig *config.SessionConfig, store account.Store, snapshots *snapshot.Store, seed int64) (*game.Table, error) {
	acct, err := store.Create(context.Background(), c.Player, sessionConfig.Session.PlayerName, sessionConfig.Session.Bankroll)
	if err != nil {
		return nil, fmt.Errorf("loading player account: %w", err)
	}

	// Saved per-player preferences win over the session file.
	decks := sessionConfig.Table.Decks
	payout := sessionConfig.Table.Payout
	system := sessionConfig.Session.CountingSystem
	dealDelay := sessionConfig.Session.DealDelay()
	if saved, err := store.LoadSettings(context.Background(), c.Player); err == nil {
		if saved.NumDecks > 0 {
			decks = saved.NumDecks
		}
		if saved.Payout != "" {
			payout = saved.Payout
		}
		if saved.CountingSystem != "" {
			system = saved.CountingSystem
		}
		if saved.DealDelayMS > 0 {
			dealDelay = time.Duration(saved.DealDelayMS) * time.Millisecond
		}
	}

	cfg := game.Config{
		NumDecks:       decks,
		Penetration:    sessionConfig.Table.Penetration,
		Payout:         rules.PayoutRatio(payout),
		MinBet:         sessionConfig.Table.MinBet,
		CountingSystem: system,
		DealDelay:      dealDelay,
		ThinkDelay:     sessionConfig.Session.ThinkDelay(),
		PlayerID:       acct.ID,
		PlayerName:     acct.Name,
		Bankroll:       acct.Bankroll,
	}
	opts := []game.Option{
		game.WithRNG(randutil.New(seed)),
		game.WithAccount(store),
		game.WithGameLog(store),
	}

	if c.Resume {
		snap, err := snapshots.Load(c.Player)
		switch {
		case err == nil:
			logger.Info("resuming saved round", "phase", snap.Phase)
			return game.RestoreTable(snap, cfg, logger, opts...), nil
		case errors.Is(err, snapshot.ErrNotFound):
		case errors.Is(err, snapshot.ErrStale):
			logger.Info("saved round expired, starting fresh")
		default:
			logger.Warn("could not load saved round", "err", err)
		}
	}

	table := game.NewTable(cfg, logger, opts...)
	for _, bot := range sessionConfig.Bots {
		table.AddBot(bot.Name, bot.Bankroll)
	}
	return table, nil
}

// saveOrClear persists an in-flight round and clears settled ones, so a
// restart never replays a finished hand.
func saveOrClear(snapshots *snapshot.Store, table *game.Table, playerID string) error {
	switch table.Phase() {
	case game.PhaseBetting, game.PhaseFinished:
		return snapshots.Clear(playerID)
	default:
		return snapshots.Save(playerID, table.Snapshot())
	}
}

// openStore connects Postgres when DATABASE_URL is set, otherwise plays
// from memory.
func openStore(logger *log.Logger, playerID string, bankroll int) (account.Store, func(), error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Debug("no DATABASE_URL, using in-memory account store")
		return account.NewMemoryStore(), func() {}, nil
	}
	store, err := account.OpenPostgres(context.Background(), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening account store: %w", err)
	}
	logger.Info("connected to account store", "player", playerID)
	return store, store.Close, nil
}
