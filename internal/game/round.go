package game

import (
	"github.com/lox/blackjacklab/internal/deck"
	"github.com/lox/blackjacklab/internal/rules"
	"github.com/lox/blackjacklab/internal/strategy"
)

// PlaceBet submits the main seat's bet and runs the round forward: bot bets
// are collected, the initial deal happens, and bot seats auto-play until a
// human seat needs input or the round settles. Returns false when the bet
// is illegal for the phase or the bankroll.
func (t *Table) PlaceBet(amount int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != PhaseBetting {
		return false
	}
	main := t.mainSeat()
	if main == nil || amount < t.cfg.MinBet || amount > main.Bankroll {
		return false
	}

	t.lastBet = amount
	main.Hands = []*Hand{newHand(amount)}
	main.Status = StatusPlaying

	for _, seat := range t.seats {
		if seat.Kind != Bot {
			continue
		}
		if seat.Bankroll < t.cfg.MinBet {
			// Busted bots sit the round out.
			seat.Status = StatusFolded
			continue
		}
		bet := min(strategy.BetSize(seat.Bankroll), seat.Bankroll)
		seat.Hands = []*Hand{newHand(bet)}
		seat.Status = StatusPlaying
		t.logger.Debug("bot bet placed", "name", seat.Name, "bet", bet)
	}

	t.phase = PhaseDealing
	t.message = "Dealing cards..."
	t.deal()
	return true
}

// draw takes the next card from the shoe, reshuffling first if the
// penetration threshold has been crossed. Every face-up card is reported to
// the counting engine.
func (t *Table) draw(faceDown bool) deck.Card {
	if t.shoe.NeedsShuffle() {
		t.logger.Info("penetration reached, reshuffling",
			"dealt", t.shoe.Dealt(), "total", t.shoe.Total())
		t.shoe.Reshuffle()
		t.counter.NewShoe()
	}
	card, err := t.shoe.Draw()
	if err != nil {
		// Unreachable when the penetration check runs before every draw;
		// recover with a fresh shoe rather than killing the round.
		t.logger.Error("drew from exhausted shoe", "err", err)
		t.shoe.Reshuffle()
		t.counter.NewShoe()
		card, _ = t.shoe.Draw()
	}
	card.FaceDown = faceDown
	t.counter.ReportCard(card, t.shoe.Remaining())
	return card
}

func (t *Table) dealTo(h *Hand, faceDown bool) {
	h.Cards = append(h.Cards, t.draw(faceDown))
	t.pause(t.cfg.DealDelay)
}

// deal runs the initial two passes: one card to every betting seat in seat
// order then one to the dealer, twice, with the dealer's second card face
// down.
func (t *Table) deal() {
	for pass := 0; pass < 2; pass++ {
		for _, seat := range t.seats {
			if seat.Status != StatusPlaying {
				continue
			}
			t.dealTo(seat.Hands[0], false)
		}
		holeCard := pass == 1
		t.dealer = append(t.dealer, t.draw(holeCard))
		t.pause(t.cfg.DealDelay)
	}
	t.checkForBlackjacks()
}

// checkForBlackjacks resolves the round immediately on a dealer natural,
// otherwise marks player naturals and enters the playing phase.
func (t *Table) checkForBlackjacks() {
	dealerBJ := rules.IsBlackjack(t.dealer)

	for _, seat := range t.seats {
		if seat.Status != StatusPlaying {
			continue
		}
		if seat.Hands[0].IsBlackjack() {
			seat.Hands[0].Complete = true
			seat.Status = StatusBlackjack
			t.logger.Debug("seat has blackjack", "name", seat.Name)
		}
	}

	if dealerBJ {
		t.revealHoleCard()
		t.logger.Info("dealer has blackjack")
		t.finish()
		return
	}

	t.phase = PhasePlaying
	t.message = "Choose your action"
	t.current = -1
	t.advanceSeat()
}

// advanceSeat moves play to the next seat with an incomplete hand, running
// bot turns as it goes, and hands off to the dealer when no seats remain.
// On return the table is either waiting on a human seat or the round is
// settled.
func (t *Table) advanceSeat() {
	for {
		t.current++
		if t.current >= len(t.seats) {
			t.playDealer()
			return
		}
		seat := t.seats[t.current]
		switch {
		case seat.Status == StatusBlackjack:
			// Brief acknowledgment pause so a human sees their natural.
			if seat.Kind == Human {
				t.pause(t.cfg.DealDelay)
			}
		case seat.Status != StatusPlaying:
		case seat.AllHandsComplete():
			seat.Status = StatusDone
		case seat.Kind == Bot:
			t.playBot(seat)
			seat.Status = StatusDone
		default:
			// Human seat: stop and wait for an external action.
			t.message = "Choose your action"
			return
		}
	}
}

// playBot plays out every hand at a bot seat with basic strategy.
func (t *Table) playBot(seat *Seat) {
	for !seat.AllHandsComplete() {
		hand := seat.CurrentHand()
		if hand == nil || hand.Complete {
			seat.ActiveHand++
			continue
		}
		t.pause(t.cfg.ThinkDelay)
		action := strategy.Decide(hand.Cards, hand.Bet, seat.Bankroll, t.dealer[0])
		t.logger.Debug("bot decision",
			"name", seat.Name, "hand", hand.Value().Total, "action", action)
		switch action {
		case strategy.Hit:
			t.applyHit(seat, hand)
		case strategy.Double:
			if !t.applyDouble(seat, hand) {
				t.applyHit(seat, hand)
			}
		case strategy.Split:
			if !t.applySplit(seat) {
				hand.Complete = true
			}
		default:
			hand.Complete = true
		}
		if hand.Complete {
			seat.ActiveHand++
		}
	}
}

// applyHit deals one card to the hand, completing it on bust or 21.
func (t *Table) applyHit(seat *Seat, hand *Hand) {
	t.dealTo(hand, false)
	hv := hand.Value()
	switch {
	case hv.Busted:
		hand.Complete = true
		hand.Outcome = rules.OutcomeLose
		t.logger.Debug("hand busted", "name", seat.Name, "total", hv.Total)
	case hv.Total == 21:
		hand.Complete = true
	}
}

// applyDouble doubles the bet and deals exactly one more card. Returns
// false when doubling is illegal.
func (t *Table) applyDouble(seat *Seat, hand *Hand) bool {
	if !rules.CanDoubleDown(hand.Cards, seat.Bankroll, hand.Bet) {
		return false
	}
	hand.Bet *= 2
	hand.Doubled = true
	t.dealTo(hand, false)
	if hand.Value().Busted {
		hand.Outcome = rules.OutcomeLose
	}
	hand.Complete = true
	return true
}

// applySplit fans the seat's active hand into two one-card hands, each
// dealt one more card. Split aces receive exactly one card and complete
// immediately; any split hand reaching 21 auto-completes but is never a
// blackjack. Returns false when splitting is illegal.
func (t *Table) applySplit(seat *Seat) bool {
	hand := seat.CurrentHand()
	if hand == nil || !rules.CanSplit(hand.Cards) {
		return false
	}
	if seat.Bankroll < hand.Bet || len(seat.Hands) >= MaxHandsPerSeat {
		return false
	}

	aces := hand.Cards[0].IsAce()
	second := hand.Cards[1]
	hand.Cards = hand.Cards[:1]
	hand.FromSplit = true
	split := &Hand{Cards: []deck.Card{second}, Bet: hand.Bet, FromSplit: true}

	idx := seat.ActiveHand
	seat.Hands = append(seat.Hands[:idx+1],
		append([]*Hand{split}, seat.Hands[idx+1:]...)...)

	t.dealTo(hand, false)
	t.dealTo(split, false)

	for _, h := range []*Hand{hand, split} {
		if aces || h.Value().Total == 21 {
			h.Complete = true
		}
	}
	t.logger.Debug("hand split", "name", seat.Name, "hands", len(seat.Hands), "aces", aces)
	return true
}

// Hit deals one card to the current human seat's active hand. Ignored when
// the phase or turn makes it illegal.
func (t *Table) Hit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	seat, hand := t.actionableHand()
	if hand == nil {
		return
	}
	t.applyHit(seat, hand)
	t.afterHumanAction(seat, hand)
}

// Stand completes the current human seat's active hand.
func (t *Table) Stand() {
	t.mu.Lock()
	defer t.mu.Unlock()
	seat, hand := t.actionableHand()
	if hand == nil {
		return
	}
	hand.Complete = true
	t.afterHumanAction(seat, hand)
}

// DoubleDown doubles the active hand's bet and deals one final card.
// Returns false without changing state when doubling is illegal.
func (t *Table) DoubleDown() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	seat, hand := t.actionableHand()
	if hand == nil {
		return false
	}
	if !t.applyDouble(seat, hand) {
		return false
	}
	t.afterHumanAction(seat, hand)
	return true
}

// Split fans the current human seat's pair into two hands. Returns false
// without changing state when splitting is illegal.
func (t *Table) Split() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	seat, _ := t.actionableHand()
	if seat == nil {
		return false
	}
	if !t.applySplit(seat) {
		return false
	}
	t.afterHumanAction(seat, seat.CurrentHand())
	return true
}

// actionableHand returns the current seat and its active hand when a human
// action is legal right now, else nils.
func (t *Table) actionableHand() (*Seat, *Hand) {
	if t.phase != PhasePlaying || t.current >= len(t.seats) {
		return nil, nil
	}
	seat := t.seats[t.current]
	if seat.Kind != Human || seat.Status != StatusPlaying {
		return nil, nil
	}
	hand := seat.CurrentHand()
	if hand == nil || hand.Complete {
		return nil, nil
	}
	return seat, hand
}

// afterHumanAction advances the active hand pointer and the turn once the
// acted-on hand is complete.
func (t *Table) afterHumanAction(seat *Seat, hand *Hand) {
	if hand == nil || !hand.Complete {
		return
	}
	seat.ActiveHand++
	for seat.ActiveHand < len(seat.Hands) && seat.Hands[seat.ActiveHand].Complete {
		seat.ActiveHand++
	}
	if seat.AllHandsComplete() {
		seat.Status = StatusDone
		t.advanceSeat()
	}
}

// playDealer reveals the hole card and draws to the house rule. The dealer
// does not draw when every player hand has busted; the outcomes are
// identical either way.
func (t *Table) playDealer() {
	t.phase = PhaseDealer
	t.message = "Dealer playing..."
	t.revealHoleCard()

	if t.anyLiveHand() {
		for rules.DealerAction(t.dealer) == rules.DealerHit {
			t.dealer = append(t.dealer, t.draw(false))
			t.pause(t.cfg.DealDelay)
		}
	}
	t.finish()
}

func (t *Table) anyLiveHand() bool {
	for _, seat := range t.seats {
		for _, hand := range seat.Hands {
			if !hand.Value().Busted {
				return true
			}
		}
	}
	return false
}

// revealHoleCard flips the dealer's second card and reports it to the
// counting engine, which never sees face-down cards.
func (t *Table) revealHoleCard() {
	if len(t.dealer) < 2 || !t.dealer[1].FaceDown {
		return
	}
	t.dealer[1].FaceDown = false
	t.counter.ReportCard(t.dealer[1], t.shoe.Remaining())
}
