package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjacklab/internal/deck"
)

func TestAddBot_AssignsFirstFreeSeat(t *testing.T) {
	table := testTable(deck.NewShoe(6, deck.DefaultPenetration, testRNG()))

	a := table.AddBot("", 500)
	b := table.AddBot("", 500)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, 2, a.Number)
	assert.Equal(t, 3, b.Number)
	assert.NotEmpty(t, a.Name, "unnamed bots get a generated name")
	assert.NotEqual(t, a.ID, b.ID)

	// Removing the middle seat frees its number for the next join.
	require.True(t, table.RemoveSeat(2))
	c := table.AddBot("Returning", 500)
	require.NotNil(t, c)
	assert.Equal(t, 2, c.Number)
}

func TestAddBot_TableCapacity(t *testing.T) {
	table := testTable(deck.NewShoe(6, deck.DefaultPenetration, testRNG()))
	for i := 0; i < MaxSeats-1; i++ {
		require.NotNil(t, table.AddBot("", 500))
	}
	assert.Nil(t, table.AddBot("", 500), "eighth seat refused")
}

func TestRosterOps_IllegalMidRound(t *testing.T) {
	table := testTable(stackedShoe(
		deck.Ten, deck.Nine, deck.Six, deck.Seven, deck.Five,
	))
	require.True(t, table.PlaceBet(20))
	require.Equal(t, PhasePlaying, table.Phase())

	assert.Nil(t, table.AddBot("", 500))
	assert.False(t, table.SwapSeats(1, 2))
}

func TestRemoveSeat_MainSeatProtected(t *testing.T) {
	table := testTable(deck.NewShoe(6, deck.DefaultPenetration, testRNG()))
	assert.False(t, table.RemoveSeat(1))
	assert.NotNil(t, table.MainSeat())
}

func TestSwapSeats(t *testing.T) {
	table := testTable(deck.NewShoe(6, deck.DefaultPenetration, testRNG()))
	bot := table.AddBot("Swappy", 500)
	require.NotNil(t, bot)

	require.True(t, table.SwapSeats(1, 2))
	seats := table.Seats()
	require.Len(t, seats, 2)
	assert.Equal(t, "Swappy", seats[0].Name)
	assert.Equal(t, 1, seats[0].Number)
	assert.Equal(t, 2, table.MainSeat().Number)

	assert.False(t, table.SwapSeats(1, 9), "unknown seat number")
}

func TestSetMultiplayer_DisableRemovesBots(t *testing.T) {
	table := testTable(deck.NewShoe(6, deck.DefaultPenetration, testRNG()))
	table.AddBot("", 500)
	table.AddBot("", 500)
	require.Len(t, table.Seats(), 3)

	table.SetMultiplayer(false)
	seats := table.Seats()
	require.Len(t, seats, 1)
	assert.Equal(t, Human, seats[0].Kind)
}

func TestDealerUpCard(t *testing.T) {
	table := testTable(stackedShoe(deck.Ten, deck.Nine, deck.Six, deck.Seven))
	_, ok := table.DealerUpCard()
	assert.False(t, ok, "no upcard before the deal")

	require.True(t, table.PlaceBet(20))
	up, ok := table.DealerUpCard()
	require.True(t, ok)
	assert.Equal(t, deck.Nine, up.Rank)
	assert.False(t, up.FaceDown)
}
