// internal/card/card.go
package card

// Suit of a standard playing card.
type Suit uint8

const (
	Clubs Suit = iota
	Hearts
	Spades
	Diamonds
)

// Rank of a standard playing card. Ace is low internally; blackjack
// scoring counts it as 1 or 11 (see Hand).
type Rank uint8

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Card identifies one of the 52 standard playing cards. The compact id
// (suit*13 + rank, 0-51) is the form used on the wire.
type Card uint8

// New builds a card from its suit and rank.
func New(s Suit, r Rank) Card {
	return Card(uint8(s)*13 + uint8(r))
}

// FromID builds a card from its 0-51 wire id.
func FromID(id uint8) Card {
	return Card(id)
}

// ID returns the 0-51 wire id of the card.
func (c Card) ID() uint8 {
	return uint8(c)
}

// Suit returns the suit component of the card.
func (c Card) Suit() Suit {
	return Suit(c / 13)
}

// Rank returns the rank component of the card.
func (c Card) Rank() Rank {
	return Rank(c % 13)
}

var suitGlyphs = [4]string{"♣", "♥", "♠", "♦"}

var rankLabels = [13]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// String renders the card as suit glyph plus rank label, e.g. "♠A".
// This form is for logs and debugging only; the wire uses ID.
func (c Card) String() string {
	return suitGlyphs[c.Suit()] + rankLabels[c.Rank()]
}
