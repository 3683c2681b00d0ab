// internal/protocol/command.go
//
// The line-oriented command protocol spoken between server and
// clients. Each command encodes to a tag token followed by
// space-separated fields in a fixed order; room codes are hex, cards
// are their 0-51 integer ids. Encoding is the String method; Parse is
// the inverse. The package is pure: no I/O, no shared state.
package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LFalch/fellestrekk/internal/card"
)

// Command is one typed protocol message. Every variant is a comparable
// value struct, so Parse(cmd.String()) reproduces the original exactly.
type Command interface {
	fmt.Stringer
	isCommand()
}

// Host requests creation of a new room. Game optionally names the game
// type to host; empty means the default (blackjack).
type Host struct {
	Game string
}

// Join requests entry into an existing room.
type Join struct {
	Code RoomCode
}

// HostOk confirms room creation and carries the assigned code.
type HostOk struct {
	Code RoomCode
}

// JoinOk confirms a successful join. Note is an optional trailing
// field, empty when absent.
type JoinOk struct {
	Code RoomCode
	Note string
}

// Start begins a round. Sent by the host; broadcast back on accept.
type Start struct{}

// Bet wagers an amount for the coming round.
type Bet struct {
	Amount uint32
}

// TakeMoney instructs a client to debit its balance.
type TakeMoney struct {
	Amount uint32
}

// SendMoney instructs a client to credit its balance.
type SendMoney struct {
	Amount uint32
}

// Hit, Stand, DoubleDown, Surrender and Split are the player actions
// on the active hand.
type Hit struct{}
type Stand struct{}
type DoubleDown struct{}
type Surrender struct{}
type Split struct{}

// PlayerDraw announces a face-up card dealt to a player.
type PlayerDraw struct {
	Player PlayerID
	Card   card.Card
}

// DealerDraw announces a face-up card dealt to the dealer.
type DealerDraw struct {
	Card card.Card
}

// DownCard privately tells one player their own hole card.
type DownCard struct {
	Card card.Card
}

// RevealDown reveals a previously hidden hole card. HasPlayer is false
// when the card is the dealer's.
type RevealDown struct {
	Player    PlayerID
	HasPlayer bool
	Card      card.Card
}

// ValueUpdate announces a hand's current blackjack value. HasPlayer is
// false for the dealer's hand; Soft marks an Ace counted as 11.
type ValueUpdate struct {
	Player    PlayerID
	HasPlayer bool
	Value     int
	Soft      bool
}

// DeckSize announces how many cards remain in the deck.
type DeckSize struct {
	Count int
}

// Status tells a client which actions are currently legal, so it can
// grey out the rest without duplicating rule logic.
type Status struct {
	Hit       bool
	Stand     bool
	Double    bool
	Surrender bool
	Split     bool
	NewGame   bool
}

// StatusNew is the status for a freshly dealt two-card hand.
func StatusNew(split bool) Status {
	return Status{Hit: true, Stand: true, Double: true, Surrender: true, Split: split}
}

// StatusMidHand is the status after the first hit: only hit or stand.
func StatusMidHand() Status {
	return Status{Hit: true, Stand: true}
}

// StatusWait is the status while some other hand is acting.
func StatusWait() Status {
	return Status{}
}

// StatusNewGame is the status between rounds.
func StatusNewGame() Status {
	return Status{NewGame: true}
}

// Chat carries a chat line from a client.
type Chat struct {
	Text string
}

// ChatMsg relays a chat line to all participants, attributed to its
// sender.
type ChatMsg struct {
	Player PlayerID
	Text   string
}

// Win, Lose and Draw announce a hand's outcome to its owner.
type Win struct{}
type Lose struct{}
type Draw struct{}

// Nop is the keepalive no-op.
type Nop struct{}

func (Host) isCommand()        {}
func (Join) isCommand()        {}
func (HostOk) isCommand()      {}
func (JoinOk) isCommand()      {}
func (Start) isCommand()       {}
func (Bet) isCommand()         {}
func (TakeMoney) isCommand()   {}
func (SendMoney) isCommand()   {}
func (Hit) isCommand()         {}
func (Stand) isCommand()       {}
func (DoubleDown) isCommand()  {}
func (Surrender) isCommand()   {}
func (Split) isCommand()       {}
func (PlayerDraw) isCommand()  {}
func (DealerDraw) isCommand()  {}
func (DownCard) isCommand()    {}
func (RevealDown) isCommand()  {}
func (ValueUpdate) isCommand() {}
func (DeckSize) isCommand()    {}
func (Status) isCommand()      {}
func (Chat) isCommand()        {}
func (ChatMsg) isCommand()     {}
func (Win) isCommand()         {}
func (Lose) isCommand()        {}
func (Draw) isCommand()        {}
func (Nop) isCommand()         {}

func (h Host) String() string {
	if h.Game == "" {
		return "HOST"
	}
	return "HOST " + h.Game
}

func (j Join) String() string {
	return "JOIN " + j.Code.String()
}

func (h HostOk) String() string {
	return "HOST_OK " + h.Code.String()
}

func (j JoinOk) String() string {
	if j.Note == "" {
		return "JOIN_OK " + j.Code.String()
	}
	return "JOIN_OK " + j.Code.String() + " " + j.Note
}

func (Start) String() string { return "START" }

func (b Bet) String() string {
	return "BET " + strconv.FormatUint(uint64(b.Amount), 10)
}

func (t TakeMoney) String() string {
	return "TAKEMONEY " + strconv.FormatUint(uint64(t.Amount), 10)
}

func (s SendMoney) String() string {
	return "SENDMONEY " + strconv.FormatUint(uint64(s.Amount), 10)
}

func (Hit) String() string        { return "HIT" }
func (Stand) String() string      { return "STAND" }
func (DoubleDown) String() string { return "DOUBLEDOWN" }
func (Surrender) String() string  { return "SURRENDER" }
func (Split) String() string      { return "SPLIT" }

func (p PlayerDraw) String() string {
	return fmt.Sprintf("PLAYERDRAW %d %d", p.Player, p.Card.ID())
}

func (d DealerDraw) String() string {
	return fmt.Sprintf("DEALERDRAW %d", d.Card.ID())
}

func (d DownCard) String() string {
	return fmt.Sprintf("DOWNCARD %d", d.Card.ID())
}

func (r RevealDown) String() string {
	var sb strings.Builder
	sb.WriteString("REVEALDOWN")
	if r.HasPlayer {
		fmt.Fprintf(&sb, " %d", r.Player)
	}
	fmt.Fprintf(&sb, " %d", r.Card.ID())
	return sb.String()
}

func (v ValueUpdate) String() string {
	var sb strings.Builder
	sb.WriteString("VALUEUPDATE")
	if v.HasPlayer {
		fmt.Fprintf(&sb, " %d", v.Player)
	}
	fmt.Fprintf(&sb, " %d", v.Value)
	if v.Soft {
		sb.WriteString(" soft")
	}
	return sb.String()
}

func (d DeckSize) String() string {
	return "DECKSIZE " + strconv.Itoa(d.Count)
}

func (s Status) String() string {
	var sb strings.Builder
	sb.WriteString("STATUS")
	if s.Hit {
		sb.WriteString(" H")
	}
	if s.Stand {
		sb.WriteString(" S")
	}
	if s.Double {
		sb.WriteString(" D")
	}
	if s.Surrender {
		sb.WriteString(" U")
	}
	if s.Split {
		sb.WriteString(" P")
	}
	if s.NewGame {
		sb.WriteString(" N")
	}
	return sb.String()
}

func (c Chat) String() string {
	return "CHAT " + c.Text
}

func (c ChatMsg) String() string {
	return fmt.Sprintf("CHAT_MSG %d %s", c.Player, c.Text)
}

func (Win) String() string  { return "WIN" }
func (Lose) String() string { return "LOSE" }
func (Draw) String() string { return "DRAW" }
func (Nop) String() string  { return "NOP" }
