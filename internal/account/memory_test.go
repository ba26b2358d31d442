package account

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjacklab/internal/deck"
	"github.com/lox/blackjacklab/internal/game"
	"github.com/lox/blackjacklab/internal/randutil"
	"github.com/lox/blackjacklab/internal/rules"
)

func TestMemoryStore_CreateAndAdjust(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	acct, err := store.Create(ctx, "p1", "Alice", 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000, acct.Bankroll)

	// Creating again returns the existing profile untouched.
	again, err := store.Create(ctx, "p1", "Alice", 9999)
	require.NoError(t, err)
	assert.Equal(t, 1000, again.Bankroll)

	require.NoError(t, store.AdjustBankroll(ctx, "p1", 30))
	require.NoError(t, store.AdjustBankroll(ctx, "p1", -45))
	acct, err = store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 985, acct.Bankroll)

	assert.ErrorIs(t, store.AdjustBankroll(ctx, "missing", 10), ErrNotFound)
	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_AppendUpdatesStats(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_, err := store.Create(ctx, "p1", "Alice", 1000)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, store.Append(ctx, game.GameRecord{
		PlayerID: "p1",
		Hands: []game.HandRecord{
			{Bet: 20, Outcome: rules.OutcomeBlackjack},
		},
		Outcome:   rules.OutcomeWin,
		TotalBet:  20,
		NetPayout: 30,
		Timestamp: now,
	}))
	require.NoError(t, store.Append(ctx, game.GameRecord{
		PlayerID: "p1",
		Hands: []game.HandRecord{
			{Bet: 20, Outcome: rules.OutcomeWin},
			{Bet: 20, Outcome: rules.OutcomeLose},
		},
		Outcome:   rules.OutcomePush,
		TotalBet:  40,
		NetPayout: 0,
		Timestamp: now.Add(time.Minute),
	}))
	require.NoError(t, store.Append(ctx, game.GameRecord{
		PlayerID: "p1",
		Hands: []game.HandRecord{
			{Bet: 50, Outcome: rules.OutcomeLose},
		},
		Outcome:   rules.OutcomeLose,
		TotalBet:  50,
		NetPayout: -50,
		Timestamp: now.Add(2 * time.Minute),
	}))

	acct, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, acct.Stats.TotalHands)
	assert.Equal(t, 2, acct.Stats.TotalWins)
	assert.Equal(t, 2, acct.Stats.TotalLosses)
	assert.Equal(t, 30, acct.Stats.BiggestWin)
	assert.Equal(t, -50, acct.Stats.BiggestLoss)
	assert.Equal(t, now.Add(2*time.Minute), acct.Stats.LastPlayed)
	assert.InDelta(t, 0.5, acct.Stats.WinRate(), 1e-9)

	assert.ErrorIs(t, store.Append(ctx, game.GameRecord{PlayerID: "nobody"}), ErrNotFound)
}

func TestMemoryStore_HistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_, err := store.Create(ctx, "p1", "Alice", 1000)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		require.NoError(t, store.Append(ctx, game.GameRecord{
			PlayerID:  "p1",
			NetPayout: i,
			Timestamp: time.Now(),
		}))
	}

	recs, err := store.History(ctx, "p1", 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 3, recs[0].NetPayout)
	assert.Equal(t, 2, recs[1].NetPayout)
}

func TestMemoryStore_SettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.LoadSettings(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound, "nothing saved yet")

	s := DefaultSettings()
	s.CountingSystem = "Omega II"
	s.Multiplayer = true
	require.NoError(t, store.SaveSettings(ctx, "p1", s))

	loaded, err := store.LoadSettings(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestMemoryStore_SettlesFromTable(t *testing.T) {
	// The store plugs straight into the round engine as both the account
	// and the game log. Stack a shoe so the player draws 10,9 against the
	// dealer's 10,(7): standing wins $20.
	ctx := context.Background()
	store := NewMemoryStore()
	_, err := store.Create(ctx, "guest", "Player", 1000)
	require.NoError(t, err)

	ranks := []deck.Rank{deck.Ten, deck.King, deck.Nine, deck.Seven}
	cards := make([]deck.Card, len(ranks))
	for i, r := range ranks {
		cards[len(ranks)-1-i] = deck.NewCard(r, deck.Suit(i%4), 0)
	}
	shoe := deck.Restore(deck.Snapshot{
		Cards:       cards,
		NumDecks:    6,
		Penetration: deck.DefaultPenetration,
	}, randutil.New(1))

	table := game.NewTable(game.DefaultConfig(), log.New(io.Discard),
		game.WithShoe(shoe),
		game.WithRNG(randutil.New(1)),
		game.WithAccount(store),
		game.WithGameLog(store),
	)
	require.True(t, table.PlaceBet(20))
	table.Stand()

	acct, err := store.Get(ctx, "guest")
	require.NoError(t, err)
	assert.Equal(t, 1020, acct.Bankroll)
	assert.Equal(t, 1, acct.Stats.TotalHands)
	assert.Equal(t, 1, acct.Stats.TotalWins)

	recs, err := store.History(ctx, "guest", 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 20, recs[0].NetPayout)
	assert.Equal(t, rules.OutcomeWin, recs[0].Outcome)
}
