// Package strategy implements the bot decision policy: fixed
// basic-strategy tables keyed by hand category and dealer upcard.
package strategy

import (
	"github.com/lox/blackjacklab/internal/deck"
	"github.com/lox/blackjacklab/internal/rules"
)

// Action is a play decision for one hand.
type Action string

const (
	Hit    Action = "hit"
	Stand  Action = "stand"
	Double Action = "double"
	Split  Action = "split"
)

// Dealer upcard table key: 2..10, with 11 standing in for the ace.
const dealerAce = 11

// upcardKey normalises a dealer upcard to a table column. Face cards fold
// into 10.
func upcardKey(card deck.Card) int {
	if card.IsAce() {
		return dealerAce
	}
	return card.Rank.BlackjackValue()
}

// row maps a dealer upcard key to an action, written as a compact string of
// one letter per column 2..A: (h)it, (s)tand, (d)ouble, (p)split.
func row(actions string) map[int]Action {
	out := make(map[int]Action, 10)
	for i, ch := range actions {
		var a Action
		switch ch {
		case 'h':
			a = Hit
		case 's':
			a = Stand
		case 'd':
			a = Double
		case 'p':
			a = Split
		}
		out[i+2] = a
	}
	return out
}

// Columns run dealer 2,3,4,5,6,7,8,9,10,A.
var hardTotals = map[int]map[int]Action{
	5:  row("hhhhhhhhhh"),
	6:  row("hhhhhhhhhh"),
	7:  row("hhhhhhhhhh"),
	8:  row("hhhhhhhhhh"),
	9:  row("hddddhhhhh"),
	10: row("ddddddddhh"),
	11: row("dddddddddd"),
	12: row("hhssshhhhh"),
	13: row("ssssshhhhh"),
	14: row("ssssshhhhh"),
	15: row("ssssshhhhh"),
	16: row("ssssshhhhh"),
	17: row("ssssssssss"),
	18: row("ssssssssss"),
	19: row("ssssssssss"),
	20: row("ssssssssss"),
	21: row("ssssssssss"),
}

var softTotals = map[int]map[int]Action{
	13: row("hhhddhhhhh"),
	14: row("hhhddhhhhh"),
	15: row("hhdddhhhhh"),
	16: row("hhdddhhhhh"),
	17: row("hddddhhhhh"),
	18: row("sddddsshhh"),
	19: row("ssssssssss"),
	20: row("ssssssssss"),
	21: row("ssssssssss"),
}

// Pair rows are keyed by the blackjack value of one of the pair cards
// (ace pairs use 11).
var pairSplits = map[int]map[int]Action{
	11: row("pppppppppp"),
	2:  row("pppppphhhh"),
	3:  row("pppppphhhh"),
	4:  row("hhhpphhhhh"),
	5:  row("ddddddddhh"),
	6:  row("ppppphhhhh"),
	7:  row("pppppphhhh"),
	8:  row("pppppppppp"),
	9:  row("pppppsppss"),
	10: row("ssssssssss"),
}

// Decide returns the basic-strategy action for a hand against a dealer
// upcard. bet and bankroll gate the actions that cost more money: a split
// or double recommendation degrades when the bankroll cannot cover the
// additional bet, double additionally requires an untouched two-card hand.
func Decide(cards []deck.Card, bet, bankroll int, dealerUp deck.Card) Action {
	hv := rules.Value(cards)
	col := upcardKey(dealerUp)

	if len(cards) == 2 && rules.CanSplit(cards) {
		pairKey := cards[0].Rank.BlackjackValue()
		if pairSplits[pairKey][col] == Split && bankroll >= bet {
			return Split
		}
		// Cannot afford the split; fall through to the total tables.
	}

	if hv.Soft && hv.Total >= 13 && hv.Total <= 21 {
		return degrade(softTotals[hv.Total][col], cards, bet, bankroll)
	}
	if hv.Total >= 5 && hv.Total <= 21 {
		return degrade(hardTotals[hv.Total][col], cards, bet, bankroll)
	}

	// Off-table fallback.
	if hv.Total >= 17 {
		return Stand
	}
	if hv.Total <= 11 {
		return Hit
	}
	if col >= 7 {
		return Hit
	}
	return Stand
}

// degrade turns an unaffordable or late double into a hit.
func degrade(action Action, cards []deck.Card, bet, bankroll int) Action {
	if action == Double && !rules.CanDoubleDown(cards, bankroll, bet) {
		return Hit
	}
	if action == "" {
		return Stand
	}
	return action
}

// Table limits for bot betting.
const (
	MinBet = 5
	MaxBet = 50
)

// BetSize picks a bot's bet: roughly 1.5% of bankroll rounded to the
// nearest 5, clamped between the table minimum and min(50, 10% bankroll).
func BetSize(bankroll int) int {
	maxBet := min(MaxBet, bankroll/10)
	if maxBet < MinBet {
		maxBet = MinBet
	}
	bet := bankroll * 15 / 1000
	bet = max(MinBet, min(maxBet, bet))
	return (bet + 2) / 5 * 5
}
