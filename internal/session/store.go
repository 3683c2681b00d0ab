// internal/session/store.go
package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LFalch/fellestrekk/internal/game"
	"github.com/LFalch/fellestrekk/internal/protocol"
)

// Store is the registry of live sessions, keyed by room code.
type Store struct {
	mu       sync.Mutex
	logger   *logrus.Logger
	rng      *rand.Rand
	sessions map[protocol.RoomCode]*Session
}

// NewStore builds an empty registry.
func NewStore(logger *logrus.Logger) *Store {
	return &Store{
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions: make(map[protocol.RoomCode]*Session),
	}
}

// Create registers a new session around the given game under a fresh
// random room code. Empty sessions are reaped first, so abandoned
// codes become reusable.
func (st *Store) Create(g game.Game) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.reap()
	for {
		code := protocol.RoomCode(st.rng.Intn(1 << 16))
		if _, taken := st.sessions[code]; taken {
			continue
		}
		s := newSession(code, g, st.logger)
		st.sessions[code] = s
		st.logger.WithField("room", code.String()).Info("session created")
		return s
	}
}

// Get looks up a session by code.
func (st *Store) Get(code protocol.RoomCode) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[code]
	return s, ok
}

// Remove drops a session from the registry.
func (st *Store) Remove(code protocol.RoomCode) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, code)
}

// reap drops sessions with no players left. Caller holds st.mu.
func (st *Store) reap() {
	for code, s := range st.sessions {
		if s.Empty() {
			delete(st.sessions, code)
			st.logger.WithField("room", code.String()).Info("session reaped")
		}
	}
}
