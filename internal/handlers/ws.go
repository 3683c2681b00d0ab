// internal/handlers/ws.go
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/LFalch/fellestrekk/internal/game"
	"github.com/LFalch/fellestrekk/internal/middleware"
	"github.com/LFalch/fellestrekk/internal/protocol"
	"github.com/LFalch/fellestrekk/internal/session"
)

const (
	// subprotocol is the websocket subprotocol every client must
	// negotiate.
	subprotocol = "fellestrekk"

	// pingInterval paces keepalive pings and game ticks.
	pingInterval = 5 * time.Second

	// writeTimeout bounds each outbound write and ping.
	writeTimeout = 3 * time.Second
)

// WS returns the websocket endpoint. Each connection opens with a HOST
// or JOIN command, attaches to a session and then relays commands in
// both directions until either side closes.
func WS(logger *logrus.Logger, store *session.Store, rules game.Rules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{subprotocol},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.WithError(err).Warn("websocket accept failed")
			return
		}
		defer c.Close(websocket.StatusInternalError, "internal error")

		log := logger.WithFields(logrus.Fields{
			"conn":   uuid.New().String(),
			"remote": r.RemoteAddr,
		})
		middleware.LogWebSocketConnect(log)
		defer middleware.LogWebSocketDisconnect(log)

		if c.Subprotocol() != subprotocol {
			c.Close(BadSubprotocolError, "client must speak the fellestrekk subprotocol")
			return
		}

		ctx := r.Context()
		sess, id, outbound, ok := open(ctx, c, store, rules, log)
		if !ok {
			return
		}
		defer sess.Leave(id)

		log = log.WithFields(logrus.Fields{
			"room":   sess.Code().String(),
			"player": id,
		})
		log.Info("player attached")

		serve(ctx, c, sess, id, outbound, log)
		c.Close(websocket.StatusNormalClosure, "")
	}
}

// open performs the opening handshake: the first command must be HOST,
// which creates a fresh room, or JOIN with an existing room code.
func open(ctx context.Context, c *websocket.Conn, store *session.Store, rules game.Rules, log *logrus.Entry) (*session.Session, protocol.PlayerID, <-chan protocol.Command, bool) {
	line, err := readLine(ctx, c)
	if err != nil {
		log.WithError(err).Debug("connection closed before handshake")
		return nil, 0, nil, false
	}
	cmd, err := protocol.Parse(line)
	if err != nil {
		log.WithError(err).Warn("unparseable handshake")
		c.Close(websocket.StatusPolicyViolation, "expected HOST or JOIN")
		return nil, 0, nil, false
	}

	switch cmd := cmd.(type) {
	case protocol.Host:
		sess := store.Create(game.NewBlackjack(rules))
		id, out, _ := sess.Join()
		if err := writeCommand(ctx, c, protocol.HostOk{Code: sess.Code()}); err != nil {
			sess.Leave(id)
			return nil, 0, nil, false
		}
		return sess, id, out, true
	case protocol.Join:
		sess, found := store.Get(cmd.Code)
		if !found {
			c.Close(RoomNotFoundError, "no such room")
			return nil, 0, nil, false
		}
		id, out, joined := sess.Join()
		if !joined {
			c.Close(RoomFullError, "room is full")
			return nil, 0, nil, false
		}
		if err := writeCommand(ctx, c, protocol.JoinOk{Code: sess.Code()}); err != nil {
			sess.Leave(id)
			return nil, 0, nil, false
		}
		return sess, id, out, true
	default:
		c.Close(websocket.StatusPolicyViolation, "expected HOST or JOIN")
		return nil, 0, nil, false
	}
}

// serve pumps commands both ways until the connection drops. Inbound
// lines that fail to parse are logged and skipped rather than killing
// the connection.
func serve(ctx context.Context, c *websocket.Conn, sess *session.Session, id protocol.PlayerID, outbound <-chan protocol.Command, log *logrus.Entry) {
	inbound := make(chan protocol.Command)
	readErr := make(chan error, 1)
	go func() {
		for {
			line, err := readLine(ctx, c)
			if err != nil {
				readErr <- err
				return
			}
			cmd, err := protocol.Parse(line)
			if err != nil {
				log.WithError(err).Debug("discarding unparseable line")
				continue
			}
			select {
			case inbound <- cmd:
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}
	}()

	pinger := time.NewTicker(pingInterval)
	defer pinger.Stop()

	for {
		select {
		case cmd := <-inbound:
			if _, isNop := cmd.(protocol.Nop); isNop {
				continue
			}
			sess.Dispatch(id, cmd)
		case cmd := <-outbound:
			if err := writeCommand(ctx, c, cmd); err != nil {
				log.WithError(err).Debug("write failed")
				return
			}
		case <-pinger.C:
			sess.Tick(id)
			pctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.Ping(pctx)
			cancel()
			if err != nil {
				log.WithError(err).Debug("ping failed")
				return
			}
		case err := <-readErr:
			log.WithError(err).Debug("read pump ended")
			return
		}
	}
}

func readLine(ctx context.Context, c *websocket.Conn) (string, error) {
	_, data, err := c.Read(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func writeCommand(ctx context.Context, c *websocket.Conn, cmd protocol.Command) error {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.Write(wctx, websocket.MessageText, []byte(cmd.String()))
}
