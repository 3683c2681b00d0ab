// internal/session/session.go
package session

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/LFalch/fellestrekk/internal/game"
	"github.com/LFalch/fellestrekk/internal/protocol"
)

// outboundBuffer is the per-player outbound channel capacity. A client
// that stops reading for this many commands starts losing messages
// rather than stalling the room.
const outboundBuffer = 32

// Session is one live room: the resident game plus the outbound
// channels of every connected player. All game access goes through the
// session mutex, so the game itself needs no locking.
type Session struct {
	mu     sync.Mutex
	code   protocol.RoomCode
	logger *logrus.Logger

	game    game.Game
	players map[protocol.PlayerID]chan protocol.Command
	nextID  protocol.PlayerID
}

func newSession(code protocol.RoomCode, g game.Game, logger *logrus.Logger) *Session {
	return &Session{
		code:    code,
		logger:  logger,
		game:    g,
		players: make(map[protocol.PlayerID]chan protocol.Command),
	}
}

// Code returns the room code the session was registered under.
func (s *Session) Code() protocol.RoomCode {
	return s.code
}

// Join adds a player to the session. The first joiner gets the host id.
// It returns the assigned id and the channel the player's connection
// must drain; ok is false when the room is full.
func (s *Session) Join() (protocol.PlayerID, <-chan protocol.Command, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.game.HasSpace() {
		return 0, nil, false
	}
	id := s.nextID
	s.nextID++
	ch := make(chan protocol.Command, outboundBuffer)
	s.players[id] = ch
	s.game.Join(id)
	return id, ch, true
}

// Leave detaches a player. The outbound channel is abandoned rather
// than closed; the connection handler stops reading it when its own
// read pump ends.
func (s *Session) Leave(p protocol.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, p)
	s.game.Leave(p)
	q := game.NewCommandQueue(p)
	s.game.Tick(q)
	s.flush(q)
}

// Empty reports whether no players remain; empty sessions are reaped
// by the store.
func (s *Session) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players) == 0
}

// Dispatch routes one inbound command from a player. Chat is handled
// here, since it concerns the room rather than the game; everything
// else goes to the game, followed by a tick.
func (s *Session) Dispatch(p protocol.PlayerID, cmd protocol.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := game.NewCommandQueue(p)
	if chat, ok := cmd.(protocol.Chat); ok {
		if chat.Text != "" {
			q.Broadcast(protocol.ChatMsg{Player: p, Text: chat.Text})
		}
	} else {
		s.game.Handle(p, cmd, q)
		s.game.Tick(q)
	}
	s.flush(q)
}

// Tick gives the game a chance to emit time-driven commands on behalf
// of the given player's connection loop.
func (s *Session) Tick(p protocol.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := game.NewCommandQueue(p)
	if s.game.Tick(q) {
		s.flush(q)
	}
}

// flush delivers queued commands to the players' outbound channels.
// Sends never block; a full channel drops the command with a warning.
func (s *Session) flush(q *game.CommandQueue) {
	for _, e := range q.Entries() {
		if e.Broadcast {
			for id, ch := range s.players {
				s.deliver(id, ch, e.Cmd)
			}
			continue
		}
		if ch, ok := s.players[e.To]; ok {
			s.deliver(e.To, ch, e.Cmd)
		}
	}
}

func (s *Session) deliver(id protocol.PlayerID, ch chan protocol.Command, cmd protocol.Command) {
	select {
	case ch <- cmd:
	default:
		s.logger.WithFields(logrus.Fields{
			"room":   s.code.String(),
			"player": id,
			"cmd":    cmd.String(),
		}).Warn("outbound buffer full, dropping command")
	}
}
