// internal/card/hand.go
package card

// Hand is an ordered sequence of cards belonging to one party, with the
// derived blackjack value and soft flag. Both are recomputed whenever a
// card is added, so they are always consistent with the card sequence.
type Hand struct {
	cards []Card
	value int
	soft  bool
}

// NewHand builds a hand from the given cards.
func NewHand(cards ...Card) Hand {
	h := Hand{cards: append([]Card(nil), cards...)}
	h.recompute()
	return h
}

// Add appends a card to the hand.
func (h *Hand) Add(c Card) {
	h.cards = append(h.cards, c)
	h.recompute()
}

// Cards returns the cards in the hand, in deal order.
func (h *Hand) Cards() []Card {
	return h.cards
}

// Value is the best blackjack total of the hand: face value for 2-10,
// 10 for face cards, and an Ace counted as 11 when that does not bust.
func (h *Hand) Value() int {
	return h.value
}

// Soft reports whether an Ace is currently counted as 11.
func (h *Hand) Soft() bool {
	return h.soft
}

// IsNatural reports whether the hand is a blackjack: exactly two cards
// totaling 21.
func (h *Hand) IsNatural() bool {
	return len(h.cards) == 2 && h.value == 21
}

// IsBust reports whether the hand value exceeds 21.
func (h *Hand) IsBust() bool {
	return h.value > 21
}

func (h *Hand) recompute() {
	sum := 0
	ace := false
	for _, c := range h.cards {
		v := int(c.Rank()) + 1
		if v == 1 {
			ace = true
		}
		if v > 10 {
			v = 10
		}
		sum += v
	}
	if ace && sum <= 11 {
		h.value = sum + 10
		h.soft = true
	} else {
		h.value = sum
		h.soft = false
	}
}
