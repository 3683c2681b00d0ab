// internal/game/dealer_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LFalch/fellestrekk/internal/card"
)

func TestDealerHits(t *testing.T) {
	sixteen := card.NewHand(card.New(card.Clubs, card.Ten), card.New(card.Hearts, card.Six))
	hard17 := card.NewHand(card.New(card.Clubs, card.Ten), card.New(card.Hearts, card.Seven))
	soft17 := card.NewHand(card.New(card.Spades, card.Ace), card.New(card.Hearts, card.Six))
	eighteen := card.NewHand(card.New(card.Clubs, card.Ten), card.New(card.Hearts, card.Eight))

	assert.True(t, S17().Hits(&sixteen))
	assert.True(t, H17().Hits(&sixteen))

	assert.False(t, S17().Hits(&hard17))
	assert.False(t, H17().Hits(&hard17))

	assert.False(t, S17().Hits(&soft17))
	assert.True(t, H17().Hits(&soft17))

	assert.False(t, S17().Hits(&eighteen))
	assert.False(t, H17().Hits(&eighteen))
}
