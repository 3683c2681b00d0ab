// internal/card/deck.go
package card

import (
	"math/rand"
	"time"
)

// Deck is an ordered sequence of remaining cards. Draws pop from the
// end; a deck in play never contains duplicates.
type Deck struct {
	cards []Card
}

// NewStandard returns a full 52-card deck in id order (unshuffled).
func NewStandard() *Deck {
	cards := make([]Card, 52)
	for i := range cards {
		cards[i] = Card(i)
	}
	return &Deck{cards: cards}
}

// Empty returns a deck with no cards.
func Empty() *Deck {
	return &Deck{}
}

// From builds a deck holding exactly the given cards, in order.
func From(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle permutes the remaining cards uniformly at random.
func (d *Deck) Shuffle() {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// DrawOne removes and returns the top card. The second return is false
// when the deck is empty.
func (d *Deck) DrawOne() (Card, bool) {
	if len(d.cards) == 0 {
		return 0, false
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, true
}

// Size reports how many cards remain.
func (d *Deck) Size() int {
	return len(d.cards)
}
