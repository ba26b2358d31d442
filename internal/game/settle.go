package game

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lox/blackjacklab/internal/rules"
)

// finish resolves every outstanding hand, pays out each seat and records
// the main seat's round. Persistence failures are logged and never
// interrupt the round; the in-memory table is the source of truth.
func (t *Table) finish() {
	t.phase = PhaseFinished
	dealerBJ := rules.IsBlackjack(t.dealer)

	for _, seat := range t.seats {
		if len(seat.Hands) == 0 {
			continue
		}
		net := 0
		for _, hand := range seat.Hands {
			if hand.Outcome == rules.OutcomeNone {
				hand.Outcome = rules.ResolveOutcome(
					hand.Cards, t.dealer, hand.IsBlackjack(), dealerBJ)
			}
			mult := rules.PayoutMultiplier(hand.Outcome, t.cfg.Payout)
			net += int(math.Round(float64(hand.Bet) * mult))
		}

		seat.Bankroll += net
		seat.Summary = summarize(seat, net)
		t.logger.Info("seat settled",
			"name", seat.Name, "net", net, "bankroll", seat.Bankroll)

		if seat.ID == t.cfg.PlayerID {
			t.message = resultMessage(net)
			t.persistMainSeat(seat, net)
		}
	}
	t.counter.ResetRound()
}

// persistMainSeat routes the main seat's result through the external
// account and game log, fire-and-forget.
func (t *Table) persistMainSeat(seat *Seat, net int) {
	ctx := context.Background()
	if err := t.accounts.AdjustBankroll(ctx, seat.ID, net); err != nil {
		t.logger.Warn("bankroll update failed", "player", seat.ID, "err", err)
	}

	rec := GameRecord{
		PlayerID:  seat.ID,
		Outcome:   overallOutcome(seat),
		TotalBet:  seat.TotalBet(),
		NetPayout: net,
		Timestamp: time.Now(),
	}
	for _, hand := range seat.Hands {
		hr := HandRecord{Bet: hand.Bet, Outcome: hand.Outcome, Doubled: hand.Doubled}
		for _, c := range hand.Cards {
			hr.Cards = append(hr.Cards, c.String())
		}
		rec.Hands = append(rec.Hands, hr)
	}
	if err := t.gamelog.Append(ctx, rec); err != nil {
		t.logger.Warn("game log append failed", "player", seat.ID, "err", err)
	}
}

// overallOutcome collapses a multi-hand round into a single outcome for
// the game log: win if only wins, lose if only losses, push otherwise.
func overallOutcome(seat *Seat) rules.Outcome {
	wins, losses := 0, 0
	for _, hand := range seat.Hands {
		switch hand.Outcome {
		case rules.OutcomeWin, rules.OutcomeBlackjack:
			wins++
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

// summarize produces the per-seat result line, aggregating split hands.
func summarize(seat *Seat, net int) string {
	wins, losses, pushes := 0, 0, 0
	for _, hand := range seat.Hands {
		switch hand.Outcome {
		case rules.OutcomeWin, rules.OutcomeBlackjack:
			wins++
		case rules.OutcomeLose:
			losses++
		case rules.OutcomePush:
			pushes++
		}
	}

	var parts []string
	if wins > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", wins, plural("win", wins)))
	}
	if losses > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", losses, plural("loss", losses)))
	}
	if pushes > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", pushes, plural("push", pushes)))
	}
	if len(parts) == 0 {
		return "no result"
	}

	switch {
	case net > 0:
		return fmt.Sprintf("%s, +$%d", strings.Join(parts, ", "), net)
	case net < 0:
		return fmt.Sprintf("%s, -$%d", strings.Join(parts, ", "), -net)
	default:
		return fmt.Sprintf("%s, even", strings.Join(parts, ", "))
	}
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	if word == "loss" {
		return "losses"
	}
	if word == "push" {
		return "pushes"
	}
	return word + "s"
}

// resultMessage is the main seat's table prompt after settlement.
func resultMessage(net int) string {
	switch {
	case net > 0:
		return fmt.Sprintf("You won $%d!", net)
	case net < 0:
		return fmt.Sprintf("You lost $%d", -net)
	default:
		return "Push - no money lost or won"
	}
}

// ResetRound clears hands and bets and re-enters the betting phase,
// preserving bankrolls, the seat roster, the shoe and the count. Legal only
// once the previous round has finished.
func (t *Table) ResetRound() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase != PhaseFinished && t.phase != PhaseBetting {
		return
	}
	t.resetRound()
}

// ForceNewRound abandons any in-progress round without settlement and
// returns to betting. Used after restoring a stale snapshot fails or when
// the UI needs a hard reset.
func (t *Table) ForceNewRound() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetRound()
}

func (t *Table) resetRound() {
	t.dealer = nil
	t.current = 0
	for _, seat := range t.seats {
		seat.clearRound()
	}
	t.counter.ResetRound()
	t.phase = PhaseBetting
	t.message = "Place your bet"
}
