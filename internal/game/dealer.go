// internal/game/dealer.go
package game

import "github.com/LFalch/fellestrekk/internal/card"

// Dealer is the dealer's drawing policy.
type Dealer struct {
	hitSoft17 bool
}

// S17 returns a dealer that stands on every 17.
func S17() Dealer {
	return Dealer{}
}

// H17 returns a dealer that hits a soft 17.
func H17() Dealer {
	return Dealer{hitSoft17: true}
}

// Hits reports whether the dealer must take another card.
func (d Dealer) Hits(h *card.Hand) bool {
	if h.Value() < 17 {
		return true
	}
	return h.Value() == 17 && h.Soft() && d.hitSoft17
}
