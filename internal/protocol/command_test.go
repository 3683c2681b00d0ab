// internal/protocol/command_test.go
package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFalch/fellestrekk/internal/card"
)

func TestCommandRoundTrip(t *testing.T) {
	cmds := []Command{
		Host{},
		Host{Game: "blackjack"},
		Join{Code: 0xBEEF},
		HostOk{Code: 0x0042},
		JoinOk{Code: 0x0042},
		JoinOk{Code: 0xFFFF, Note: "welcome"},
		Start{},
		Bet{Amount: 100},
		TakeMoney{Amount: 50},
		SendMoney{Amount: 250},
		Hit{},
		Stand{},
		DoubleDown{},
		Surrender{},
		Split{},
		PlayerDraw{Player: 3, Card: card.New(card.Spades, card.Ace)},
		DealerDraw{Card: card.New(card.Diamonds, card.King)},
		DownCard{Card: card.New(card.Clubs, card.Two)},
		RevealDown{Card: card.New(card.Hearts, card.Ten)},
		RevealDown{Player: 1, HasPlayer: true, Card: card.New(card.Hearts, card.Ten)},
		ValueUpdate{Value: 17},
		ValueUpdate{Value: 17, Soft: true},
		ValueUpdate{Player: 2, HasPlayer: true, Value: 21},
		ValueUpdate{Player: 2, HasPlayer: true, Value: 12, Soft: true},
		DeckSize{Count: 37},
		Status{},
		StatusNew(true),
		StatusNew(false),
		StatusMidHand(),
		StatusNewGame(),
		Chat{Text: "hello there"},
		ChatMsg{Player: 4, Text: "hello there"},
		Win{},
		Lose{},
		Draw{},
		Nop{},
	}
	for _, cmd := range cmds {
		t.Run(cmd.String(), func(t *testing.T) {
			parsed, err := Parse(cmd.String())
			require.NoError(t, err)
			assert.Equal(t, cmd, parsed)
		})
	}
}

func TestCommandWireForms(t *testing.T) {
	assert.Equal(t, "HOST_OK 00AB", HostOk{Code: 0xAB}.String())
	assert.Equal(t, "JOIN_OK FFFF note", JoinOk{Code: 0xFFFF, Note: "note"}.String())
	assert.Equal(t, "PLAYERDRAW 2 26", PlayerDraw{Player: 2, Card: card.New(card.Spades, card.Ace)}.String())
	assert.Equal(t, "VALUEUPDATE 1 17 soft", ValueUpdate{Player: 1, HasPlayer: true, Value: 17, Soft: true}.String())
	assert.Equal(t, "VALUEUPDATE 20", ValueUpdate{Value: 20}.String())
	assert.Equal(t, "STATUS H S D U P", StatusNew(true).String())
	assert.Equal(t, "STATUS H S", StatusMidHand().String())
	assert.Equal(t, "STATUS N", StatusNewGame().String())
	assert.Equal(t, "STATUS", StatusWait().String())
	assert.Equal(t, "NOP", Nop{}.String())
}

func TestRoomCodeString(t *testing.T) {
	assert.Equal(t, "0000", RoomCode(0).String())
	assert.Equal(t, "00FF", RoomCode(255).String())
	assert.Equal(t, "FFFF", RoomCode(0xFFFF).String())
}

func TestParseRoomCode(t *testing.T) {
	code, err := ParseRoomCode("00ff")
	require.NoError(t, err)
	assert.Equal(t, RoomCode(255), code)

	code, err = ParseRoomCode("BEEF")
	require.NoError(t, err)
	assert.Equal(t, RoomCode(0xBEEF), code)

	_, err = ParseRoomCode("XYZ")
	assert.ErrorIs(t, err, ErrUnparseable)

	_, err = ParseRoomCode("12345")
	assert.ErrorIs(t, err, ErrUnparseable)
}
