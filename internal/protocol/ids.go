// internal/protocol/ids.go
package protocol

import (
	"fmt"
	"strconv"
)

// PlayerID identifies a participant within a session. The host is
// always 0; later joiners get monotonically increasing ids that are
// never reused after a disconnect.
type PlayerID uint32

// HostID is the id of the participant that created the room.
const HostID PlayerID = 0

// RoomCode addresses one live session. Codes render as four hex digits
// and are unique among live sessions at creation time.
type RoomCode uint16

// String renders the code as uppercase 4-digit hex.
func (c RoomCode) String() string {
	return fmt.Sprintf("%04X", uint16(c))
}

// ParseRoomCode parses a hex room code. Case-insensitive.
func ParseRoomCode(s string) (RoomCode, error) {
	n, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("room code %q: %w", s, ErrUnparseable)
	}
	return RoomCode(n), nil
}
