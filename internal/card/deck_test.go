// internal/card/deck_test.go
package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStandardHasEveryCardOnce(t *testing.T) {
	d := NewStandard()
	require.Equal(t, 52, d.Size())

	seen := make(map[Card]bool)
	for {
		c, ok := d.DrawOne()
		if !ok {
			break
		}
		assert.False(t, seen[c], "card %v drawn twice", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestShufflePreservesCards(t *testing.T) {
	d := NewStandard()
	d.Shuffle()
	require.Equal(t, 52, d.Size())

	seen := make(map[Card]bool)
	for {
		c, ok := d.DrawOne()
		if !ok {
			break
		}
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestDrawOnePopsFromEnd(t *testing.T) {
	d := From([]Card{New(Clubs, Two), New(Hearts, Five), New(Spades, King)})

	c, ok := d.DrawOne()
	require.True(t, ok)
	assert.Equal(t, New(Spades, King), c)

	c, ok = d.DrawOne()
	require.True(t, ok)
	assert.Equal(t, New(Hearts, Five), c)
	assert.Equal(t, 1, d.Size())
}

func TestDrawOneEmpty(t *testing.T) {
	d := Empty()
	_, ok := d.DrawOne()
	assert.False(t, ok)
	assert.Equal(t, 0, d.Size())
}

func TestFromCopies(t *testing.T) {
	cards := []Card{New(Clubs, Two), New(Hearts, Five)}
	d := From(cards)
	cards[1] = New(Diamonds, King)

	c, ok := d.DrawOne()
	require.True(t, ok)
	assert.Equal(t, New(Hearts, Five), c)
}
