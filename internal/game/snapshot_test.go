package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjacklab/internal/deck"
)

func TestSnapshot_RoundTripMidPlay(t *testing.T) {
	// Player 10,6 vs dealer 9,(7): pause mid-decision and restore.
	table := testTable(stackedShoe(
		deck.Ten, deck.Nine, deck.Six, deck.Seven,
		deck.Five, deck.King, deck.Queen,
	))
	require.True(t, table.PlaceBet(20))
	require.Equal(t, PhasePlaying, table.Phase())

	snap := table.Snapshot()
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded RoundSnapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	restored := RestoreTable(decoded, DefaultConfig(), testLogger(),
		WithRNG(testRNG()))

	require.Equal(t, PhasePlaying, restored.Phase())
	main := restored.MainSeat()
	require.NotNil(t, main)
	require.Len(t, main.Hands, 1)
	assert.Equal(t, 20, main.Hands[0].Bet)
	assert.Equal(t, 16, main.Hands[0].Value().Total)
	assert.Equal(t, snap.Count.RunningCount, restored.Counter().RunningCount())
	assert.Equal(t, table.CardsRemaining(), restored.CardsRemaining())

	// The restored round plays on from the same shoe position.
	restored.Hit()
	require.Len(t, restored.MainSeat().Hands[0].Cards, 3)
}

func TestSnapshot_RestoredRoundSettlesIdentically(t *testing.T) {
	// Same shoe order for both tables: stand on 17 and let the dealer
	// play out, once directly and once via a snapshot taken before the
	// stand. Both must settle to the same bankroll.
	ranks := []deck.Rank{deck.Ten, deck.Nine, deck.Seven, deck.Eight, deck.Five}

	direct := testTable(stackedShoe(ranks...))
	require.True(t, direct.PlaceBet(20))
	direct.Stand()
	require.Equal(t, PhaseFinished, direct.Phase())

	table := testTable(stackedShoe(ranks...))
	require.True(t, table.PlaceBet(20))
	snap := table.Snapshot()

	restored := RestoreTable(snap, DefaultConfig(), testLogger(),
		WithRNG(testRNG()))
	restored.Stand()
	require.Equal(t, PhaseFinished, restored.Phase())

	assert.Equal(t, direct.MainSeat().Bankroll, restored.MainSeat().Bankroll)
	assert.Equal(t, direct.MainSeat().Hands[0].Outcome, restored.MainSeat().Hands[0].Outcome)
}

func TestSnapshot_DeepCopiesHands(t *testing.T) {
	table := testTable(stackedShoe(
		deck.Ten, deck.Nine, deck.Six, deck.Seven, deck.Five,
	))
	require.True(t, table.PlaceBet(20))

	snap := table.Snapshot()
	before := len(snap.Seats[0].Hands[0].Cards)
	table.Hit()
	assert.Len(t, snap.Seats[0].Hands[0].Cards, before,
		"snapshot must not alias live hands")
}
