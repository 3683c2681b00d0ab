// internal/handlers/ws_codes.go
package handlers

import "github.com/coder/websocket"

const (
	// BadSubprotocolError indicates the client did not negotiate the
	// "fellestrekk" subprotocol.
	BadSubprotocolError websocket.StatusCode = 4000

	// RoomFullError indicates the room had no seat left for the joiner.
	RoomFullError websocket.StatusCode = 4001

	// RoomNotFoundError indicates no session exists under the given
	// room code.
	RoomNotFoundError websocket.StatusCode = 4002
)
