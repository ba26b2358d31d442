package strategy

import (
	"fmt"
	rand "math/rand/v2"
)

var botFirstNames = []string{
	"Lucky", "Ace", "Diamond", "Chip", "Vegas", "Royal", "Jack",
	"Queen", "King", "Spade", "Heart", "Club", "High", "Wild",
}

var botLastNames = []string{
	"McBet", "Dealer", "Winner", "Roller", "Counter", "Sharp",
	"Pro", "Master", "Champion", "Bluff", "Stakes", "Cards",
}

// BotName generates a table name for a bot seat.
func BotName(rng *rand.Rand) string {
	first := botFirstNames[rng.IntN(len(botFirstNames))]
	last := botLastNames[rng.IntN(len(botLastNames))]
	return fmt.Sprintf("%s %s", first, last)
}
