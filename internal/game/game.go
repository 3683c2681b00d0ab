// internal/game/game.go
package game

import (
	"github.com/LFalch/fellestrekk/internal/protocol"
)

// Game is the capability set the session layer needs from a room's
// resident game. The registry is generic over this interface so other
// game types could be registered at room creation; blackjack is the
// only implementation today.
type Game interface {
	// Join registers a new seat for the given player.
	Join(p protocol.PlayerID)
	// Leave removes a player's seat and abandons any hands they own.
	Leave(p protocol.PlayerID)
	// HasSpace reports whether another player may join.
	HasSpace() bool
	// Tick lets the game emit time-driven commands. It reports whether
	// anything was emitted.
	Tick(q *CommandQueue) bool
	// Handle applies one player command. Commands that are not legal
	// for the current state or sender are silently ignored; this
	// leniency tolerates stale and duplicate client messages.
	Handle(p protocol.PlayerID, cmd protocol.Command, q *CommandQueue)
}

// Entry is one queued outbound command: either a send to one player or
// a broadcast to everyone in the session.
type Entry struct {
	To        protocol.PlayerID
	Broadcast bool
	Cmd       protocol.Command
}

// CommandQueue collects the commands a game emits while handling one
// inbound command or tick. The session flushes it to the players'
// outbound channels afterwards.
type CommandQueue struct {
	invoker protocol.PlayerID
	entries []Entry
}

// NewCommandQueue builds a queue whose Reply target is the player that
// triggered the current handle or tick.
func NewCommandQueue(invoker protocol.PlayerID) *CommandQueue {
	return &CommandQueue{invoker: invoker}
}

// Reply queues a command for the invoking player.
func (q *CommandQueue) Reply(cmd protocol.Command) {
	q.Send(q.invoker, cmd)
}

// Send queues a command for one named player.
func (q *CommandQueue) Send(p protocol.PlayerID, cmd protocol.Command) {
	q.entries = append(q.entries, Entry{To: p, Cmd: cmd})
}

// Broadcast queues a command for every player in the session.
func (q *CommandQueue) Broadcast(cmd protocol.Command) {
	q.entries = append(q.entries, Entry{Broadcast: true, Cmd: cmd})
}

// Entries returns the queued commands in emission order.
func (q *CommandQueue) Entries() []Entry {
	return q.entries
}
