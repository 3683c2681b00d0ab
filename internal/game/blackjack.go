// internal/game/blackjack.go
package game

import (
	"github.com/LFalch/fellestrekk/internal/card"
	"github.com/LFalch/fellestrekk/internal/protocol"
)

// lowWaterMark is the deck size below which a fresh shuffled deck is
// swapped in at the start of a round.
const lowWaterMark = 20

type phase int

const (
	// awaitingBets collects per-player bets until the host starts the
	// round.
	awaitingBets phase = iota
	// playing runs the hands in the play queue, then settles against
	// the dealer.
	playing
)

// seatBet is one recorded wager, kept in registration order.
type seatBet struct {
	player protocol.PlayerID
	amount uint32
}

// playerHand is one hand in play: its owner, cards, stake and the
// still-hidden hole card.
type playerHand struct {
	owner   protocol.PlayerID
	hand    card.Hand
	bet     uint32
	doubled bool
	split   bool
	hole    card.Card
	holeUp  bool
}

// Blackjack is the multi-hand blackjack engine: a state machine that is
// either collecting bets or playing out a queue of hands against the
// dealer. It owns the deck, hands and stakes for one room and emits
// every state change as protocol commands. All methods assume the
// session lock is held.
type Blackjack struct {
	rules Rules
	deck  *card.Deck
	seats []protocol.PlayerID

	phase phase
	bets  []seatBet

	dealerHand card.Hand
	// queue holds the hands still to act; the hand at the tail acts
	// next, so a split inserts its new hand just before the tail.
	queue []*playerHand
	// done holds hands that finished without busting or surrendering,
	// awaiting comparison against the dealer.
	done []*playerHand

	dirtyDeck bool
	// needActivate is set when a leave changed the play queue while a
	// round is running; the next Tick re-announces the active hand.
	needActivate bool
}

// NewBlackjack builds an idle table. The deck starts empty; the first
// round's low-water check deals in a fresh shuffled deck.
func NewBlackjack(rules Rules) *Blackjack {
	return &Blackjack{
		rules:     rules,
		deck:      card.Empty(),
		dirtyDeck: true,
	}
}

// Join registers a seat for the player.
func (b *Blackjack) Join(p protocol.PlayerID) {
	b.seats = append(b.seats, p)
}

// Leave removes the player's seat, wager and hands. The hands are
// abandoned without settlement; a subsequent Tick advances play if the
// abandoned hand was active.
func (b *Blackjack) Leave(p protocol.PlayerID) {
	for i, s := range b.seats {
		if s == p {
			b.seats = append(b.seats[:i], b.seats[i+1:]...)
			break
		}
	}
	for i := 0; i < len(b.bets); i++ {
		if b.bets[i].player == p {
			b.bets = append(b.bets[:i], b.bets[i+1:]...)
			i--
		}
	}
	b.queue = dropOwned(b.queue, p)
	b.done = dropOwned(b.done, p)
	if b.phase == playing && len(b.queue) > 0 {
		b.needActivate = true
	}
}

func dropOwned(hands []*playerHand, p protocol.PlayerID) []*playerHand {
	kept := hands[:0]
	for _, h := range hands {
		if h.owner != p {
			kept = append(kept, h)
		}
	}
	return kept
}

// HasSpace reports whether another seat is available.
func (b *Blackjack) HasSpace() bool {
	return len(b.seats) < b.rules.MaxPlayers
}

// Tick emits any pending time-driven commands: it runs settlement if
// the play queue drained outside Handle (a leaving player) and
// broadcasts the deck size after any deal or draw.
func (b *Blackjack) Tick(q *CommandQueue) bool {
	did := false
	if b.phase == playing {
		if len(b.queue) == 0 {
			b.settle(q)
			did = true
		} else if b.needActivate {
			b.activate(q)
			did = true
		}
	}
	if b.dirtyDeck {
		b.dirtyDeck = false
		q.Broadcast(protocol.DeckSize{Count: b.deck.Size()})
		did = true
	}
	return did
}

// Handle applies one player command. Anything not legal for the
// current state or sender is silently ignored.
func (b *Blackjack) Handle(p protocol.PlayerID, cmd protocol.Command, q *CommandQueue) {
	switch c := cmd.(type) {
	case protocol.Bet:
		b.bet(p, c.Amount, q)
	case protocol.Start:
		b.start(p, q)
	case protocol.Hit:
		b.hit(p, q)
	case protocol.Stand:
		b.stand(p, q)
	case protocol.DoubleDown:
		b.doubleDown(p, q)
	case protocol.Surrender:
		b.surrender(p, q)
	case protocol.Split:
		b.splitHand(p, q)
	default:
	}
}

// draw takes the top card. The low-water reshuffle at round start makes
// exhaustion mid-round almost impossible; if a long run of splits and
// hits empties the deck anyway, a fresh shuffled deck is dealt in, as a
// multi-deck shoe would.
func (b *Blackjack) draw() card.Card {
	b.dirtyDeck = true
	c, ok := b.deck.DrawOne()
	if !ok {
		b.deck = card.NewStandard()
		b.deck.Shuffle()
		c, _ = b.deck.DrawOne()
	}
	return c
}

// bet records or overwrites the caller's wager and debits it up front.
// An overwritten stake is returned first so money stays balanced.
func (b *Blackjack) bet(p protocol.PlayerID, amount uint32, q *CommandQueue) {
	if b.phase != awaitingBets || amount == 0 {
		return
	}
	for i := range b.bets {
		if b.bets[i].player == p {
			q.Reply(protocol.SendMoney{Amount: b.bets[i].amount})
			b.bets[i].amount = amount
			q.Reply(protocol.TakeMoney{Amount: amount})
			return
		}
	}
	b.bets = append(b.bets, seatBet{player: p, amount: amount})
	q.Reply(protocol.TakeMoney{Amount: amount})
}

// start consumes the recorded bets and deals the round: hole cards to
// the betters round-robin (private), the dealer's hole, then open
// cards to the betters and the dealer's up-card. Only the host may
// start, and only with at least one bet down.
func (b *Blackjack) start(p protocol.PlayerID, q *CommandQueue) {
	if b.phase != awaitingBets || p != protocol.HostID || len(b.bets) == 0 {
		return
	}
	if b.deck.Size() < lowWaterMark {
		b.deck = card.NewStandard()
		b.deck.Shuffle()
	}
	q.Broadcast(protocol.Start{})

	hands := make([]*playerHand, 0, len(b.bets))
	for _, sb := range b.bets {
		hole := b.draw()
		hands = append(hands, &playerHand{owner: sb.player, bet: sb.amount, hole: hole})
		q.Send(sb.player, protocol.DownCard{Card: hole})
	}
	dealerHole := b.draw()
	for _, h := range hands {
		open := b.draw()
		h.hand = card.NewHand(h.hole, open)
		q.Broadcast(protocol.PlayerDraw{Player: h.owner, Card: open})
	}
	dealerUp := b.draw()
	b.dealerHand = card.NewHand(dealerHole, dealerUp)
	q.Broadcast(protocol.DealerDraw{Card: dealerUp})

	upOnly := card.NewHand(dealerUp)
	q.Broadcast(protocol.ValueUpdate{Value: upOnly.Value(), Soft: upOnly.Soft()})
	for _, h := range hands {
		q.Broadcast(protocol.ValueUpdate{
			Player: h.owner, HasPlayer: true,
			Value: h.hand.Value(), Soft: h.hand.Soft(),
		})
	}
	b.bets = nil

	if b.dealerHand.IsNatural() {
		b.revealDealer(q)
		for _, h := range hands {
			b.revealHole(h, q)
			if h.hand.IsNatural() {
				q.Send(h.owner, protocol.Draw{})
				q.Send(h.owner, protocol.SendMoney{Amount: h.bet})
			} else {
				q.Send(h.owner, protocol.Lose{})
			}
		}
		b.phase = awaitingBets
		q.Broadcast(protocol.StatusNewGame())
		return
	}

	// Player naturals pay 2:1 plus half immediately and leave play.
	// The rest queue in reverse registration order so the tail (the
	// first better) acts first.
	for i := len(hands) - 1; i >= 0; i-- {
		h := hands[i]
		if h.hand.IsNatural() {
			b.revealHole(h, q)
			q.Send(h.owner, protocol.Win{})
			q.Send(h.owner, protocol.SendMoney{Amount: h.bet*2 + h.bet/2})
			continue
		}
		b.queue = append(b.queue, h)
	}
	b.phase = playing

	if len(b.queue) == 0 {
		b.settle(q)
		return
	}
	b.activate(q)
}

// active returns the hand at the tail of the play queue, which is the
// one allowed to act.
func (b *Blackjack) active() *playerHand {
	if len(b.queue) == 0 {
		return nil
	}
	return b.queue[len(b.queue)-1]
}

func (b *Blackjack) canSplit(h *playerHand) bool {
	cards := h.hand.Cards()
	if len(cards) != 2 || cards[0].Rank() != cards[1].Rank() {
		return false
	}
	return b.rules.ResplitAllowed || !h.split
}

// activate notifies everyone that a new hand is up and sends its owner
// the legal-action flags. A hand past two cards (re-announced after a
// leave) only gets hit and stand.
func (b *Blackjack) activate(q *CommandQueue) {
	b.needActivate = false
	h := b.active()
	q.Broadcast(protocol.StatusWait())
	if len(h.hand.Cards()) == 2 {
		q.Send(h.owner, protocol.StatusNew(b.canSplit(h)))
	} else {
		q.Send(h.owner, protocol.StatusMidHand())
	}
}

// advance runs after an ending action: settle if nothing is left to
// play, otherwise activate the next hand.
func (b *Blackjack) advance(q *CommandQueue) {
	if len(b.queue) == 0 {
		b.settle(q)
		return
	}
	b.activate(q)
}

// popActive removes the tail hand from the play queue.
func (b *Blackjack) popActive() *playerHand {
	h := b.queue[len(b.queue)-1]
	b.queue = b.queue[:len(b.queue)-1]
	return h
}

func (b *Blackjack) hit(p protocol.PlayerID, q *CommandQueue) {
	h := b.active()
	if b.phase != playing || h == nil || h.owner != p {
		return
	}
	c := b.draw()
	h.hand.Add(c)
	q.Broadcast(protocol.PlayerDraw{Player: p, Card: c})
	q.Broadcast(protocol.ValueUpdate{
		Player: p, HasPlayer: true,
		Value: h.hand.Value(), Soft: h.hand.Soft(),
	})
	if h.hand.IsBust() {
		// A busted hand is lost on the spot and never settled.
		q.Send(p, protocol.Lose{})
		b.popActive()
		b.advance(q)
		return
	}
	q.Send(p, protocol.StatusMidHand())
}

func (b *Blackjack) stand(p protocol.PlayerID, q *CommandQueue) {
	h := b.active()
	if b.phase != playing || h == nil || h.owner != p {
		return
	}
	b.done = append(b.done, b.popActive())
	b.advance(q)
}

func (b *Blackjack) doubleDown(p protocol.PlayerID, q *CommandQueue) {
	h := b.active()
	if b.phase != playing || h == nil || h.owner != p || len(h.hand.Cards()) != 2 {
		return
	}
	q.Reply(protocol.TakeMoney{Amount: h.bet})
	h.bet *= 2
	h.doubled = true

	c := b.draw()
	h.hand.Add(c)
	q.Broadcast(protocol.PlayerDraw{Player: p, Card: c})
	q.Broadcast(protocol.ValueUpdate{
		Player: p, HasPlayer: true,
		Value: h.hand.Value(), Soft: h.hand.Soft(),
	})
	b.popActive()
	if h.hand.IsBust() {
		q.Send(p, protocol.Lose{})
	} else {
		b.done = append(b.done, h)
	}
	b.advance(q)
}

func (b *Blackjack) surrender(p protocol.PlayerID, q *CommandQueue) {
	h := b.active()
	if b.phase != playing || h == nil || h.owner != p || len(h.hand.Cards()) != 2 {
		return
	}
	q.Reply(protocol.SendMoney{Amount: h.bet / 2})
	q.Send(p, protocol.Lose{})
	b.popActive()
	b.advance(q)
}

// splitHand divides a matched pair into two hands. The active hand
// keeps its first card plus a fresh draw; the second card seeds a new
// hand with its own fresh draw and equal stake, inserted just before
// the tail so it plays immediately after the current hand finishes.
func (b *Blackjack) splitHand(p protocol.PlayerID, q *CommandQueue) {
	h := b.active()
	if b.phase != playing || h == nil || h.owner != p || !b.canSplit(h) {
		return
	}
	cards := h.hand.Cards()
	first, second := cards[0], cards[1]

	// Splitting necessarily exposes the hole card.
	b.revealHole(h, q)

	c1 := b.draw()
	h.hand = card.NewHand(first, c1)
	h.split = true
	q.Broadcast(protocol.PlayerDraw{Player: p, Card: c1})
	q.Broadcast(protocol.ValueUpdate{
		Player: p, HasPlayer: true,
		Value: h.hand.Value(), Soft: h.hand.Soft(),
	})

	q.Reply(protocol.TakeMoney{Amount: h.bet})
	c2 := b.draw()
	sibling := &playerHand{
		owner:  p,
		hand:   card.NewHand(second, c2),
		bet:    h.bet,
		split:  true,
		hole:   second,
		holeUp: true,
	}
	q.Broadcast(protocol.PlayerDraw{Player: p, Card: c2})
	q.Broadcast(protocol.ValueUpdate{
		Player: p, HasPlayer: true,
		Value: sibling.hand.Value(), Soft: sibling.hand.Soft(),
	})
	b.queue = append(b.queue[:len(b.queue)-1], sibling, h)

	b.activate(q)
}

func (b *Blackjack) revealHole(h *playerHand, q *CommandQueue) {
	if h.holeUp {
		return
	}
	h.holeUp = true
	q.Broadcast(protocol.RevealDown{Player: h.owner, HasPlayer: true, Card: h.hole})
}

func (b *Blackjack) revealDealer(q *CommandQueue) {
	q.Broadcast(protocol.RevealDown{Card: b.dealerHand.Cards()[0]})
	q.Broadcast(protocol.ValueUpdate{Value: b.dealerHand.Value(), Soft: b.dealerHand.Soft()})
}

// isNatural reports whether the hand counts as a blackjack at
// settlement; a two-card 21 formed by a split only does when the table
// rules say so.
func (b *Blackjack) isNatural(h *playerHand) bool {
	if !h.hand.IsNatural() {
		return false
	}
	return !h.split || b.rules.SplitNaturalPaysBonus
}

// settle reveals the dealer's hole card, plays out the dealer per the
// table policy, and compares every surviving hand. The round then
// resets to collecting bets.
func (b *Blackjack) settle(q *CommandQueue) {
	b.revealDealer(q)
	for _, h := range b.done {
		b.revealHole(h, q)
	}
	for b.rules.Dealer.Hits(&b.dealerHand) {
		c := b.draw()
		b.dealerHand.Add(c)
		q.Broadcast(protocol.DealerDraw{Card: c})
		q.Broadcast(protocol.ValueUpdate{Value: b.dealerHand.Value(), Soft: b.dealerHand.Soft()})
	}

	dealerBust := b.dealerHand.IsBust()
	for _, h := range b.done {
		switch {
		case dealerBust || h.hand.Value() > b.dealerHand.Value():
			q.Send(h.owner, protocol.Win{})
			q.Send(h.owner, protocol.SendMoney{Amount: h.bet * 2})
		case h.hand.Value() < b.dealerHand.Value():
			q.Send(h.owner, protocol.Lose{})
		case b.isNatural(h):
			// A natural beats the dealer's non-natural 21.
			q.Send(h.owner, protocol.Win{})
			q.Send(h.owner, protocol.SendMoney{Amount: h.bet * 2})
		default:
			q.Send(h.owner, protocol.Draw{})
			q.Send(h.owner, protocol.SendMoney{Amount: h.bet})
		}
	}

	b.queue = nil
	b.done = nil
	b.phase = awaitingBets
	q.Broadcast(protocol.StatusNewGame())
}
