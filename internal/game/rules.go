// internal/game/rules.go
package game

// Rules are the per-table blackjack settings.
type Rules struct {
	// MaxPlayers caps the number of seats in one room.
	MaxPlayers int
	// Dealer is the dealer's soft-17 policy.
	Dealer Dealer
	// ResplitAllowed permits splitting a hand that was itself created
	// by a split.
	ResplitAllowed bool
	// SplitNaturalPaysBonus treats a two-card 21 formed after a split
	// as a blackjack at settlement. When false (the default, matching
	// common table rules) it counts as a plain 21.
	SplitNaturalPaysBonus bool
}

// DefaultRules returns the standard table settings: four seats, dealer
// hits soft 17, resplitting allowed, split 21s pay even money.
func DefaultRules() Rules {
	return Rules{
		MaxPlayers:     4,
		Dealer:         H17(),
		ResplitAllowed: true,
	}
}
