// internal/protocol/parse.go
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/LFalch/fellestrekk/internal/card"
)

// ErrUnparseable is wrapped by every error Parse returns: the input
// had an unknown tag or a missing or malformed field.
var ErrUnparseable = errors.New("unparseable command")

// Parse decodes one protocol line into its typed command.
func Parse(line string) (Command, error) {
	fields := strings.Split(line, " ")
	tag := fields[0]
	args := fields[1:]

	switch tag {
	case "HOST":
		if len(args) > 1 {
			return nil, tagErr(tag)
		}
		h := Host{}
		if len(args) == 1 {
			h.Game = args[0]
		}
		return h, nil
	case "JOIN":
		code, err := parseCode(tag, args)
		if err != nil {
			return nil, err
		}
		return Join{Code: code}, nil
	case "HOST_OK":
		code, err := parseCode(tag, args)
		if err != nil {
			return nil, err
		}
		return HostOk{Code: code}, nil
	case "JOIN_OK":
		if len(args) < 1 || len(args) > 2 {
			return nil, tagErr(tag)
		}
		code, err := ParseRoomCode(args[0])
		if err != nil {
			return nil, err
		}
		ok := JoinOk{Code: code}
		if len(args) == 2 {
			ok.Note = args[1]
		}
		return ok, nil
	case "START":
		return Start{}, nil
	case "BET":
		n, err := parseAmount(tag, args)
		if err != nil {
			return nil, err
		}
		return Bet{Amount: n}, nil
	case "TAKEMONEY":
		n, err := parseAmount(tag, args)
		if err != nil {
			return nil, err
		}
		return TakeMoney{Amount: n}, nil
	case "SENDMONEY":
		n, err := parseAmount(tag, args)
		if err != nil {
			return nil, err
		}
		return SendMoney{Amount: n}, nil
	case "HIT":
		return Hit{}, nil
	case "STAND":
		return Stand{}, nil
	case "DOUBLEDOWN":
		return DoubleDown{}, nil
	case "SURRENDER":
		return Surrender{}, nil
	case "SPLIT":
		return Split{}, nil
	case "PLAYERDRAW":
		if len(args) != 2 {
			return nil, tagErr(tag)
		}
		pid, err := parsePlayerID(tag, args[0])
		if err != nil {
			return nil, err
		}
		c, err := parseCard(tag, args[1])
		if err != nil {
			return nil, err
		}
		return PlayerDraw{Player: pid, Card: c}, nil
	case "DEALERDRAW":
		c, err := parseSoleCard(tag, args)
		if err != nil {
			return nil, err
		}
		return DealerDraw{Card: c}, nil
	case "DOWNCARD":
		c, err := parseSoleCard(tag, args)
		if err != nil {
			return nil, err
		}
		return DownCard{Card: c}, nil
	case "REVEALDOWN":
		// The card is always the last field; an optional player id may
		// precede it.
		if len(args) < 1 || len(args) > 2 {
			return nil, tagErr(tag)
		}
		c, err := parseCard(tag, args[len(args)-1])
		if err != nil {
			return nil, err
		}
		r := RevealDown{Card: c}
		if len(args) == 2 {
			pid, err := parsePlayerID(tag, args[0])
			if err != nil {
				return nil, err
			}
			r.Player = pid
			r.HasPlayer = true
		}
		return r, nil
	case "VALUEUPDATE":
		// Parsed from the end: an optional trailing "soft" flag, then
		// the value, then an optional leading player id.
		if len(args) < 1 || len(args) > 3 {
			return nil, tagErr(tag)
		}
		v := ValueUpdate{}
		if args[len(args)-1] == "soft" {
			v.Soft = true
			args = args[:len(args)-1]
		}
		if len(args) < 1 || len(args) > 2 {
			return nil, tagErr(tag)
		}
		val, err := strconv.Atoi(args[len(args)-1])
		if err != nil || val < 0 {
			return nil, tagErr(tag)
		}
		v.Value = val
		if len(args) == 2 {
			pid, err := parsePlayerID(tag, args[0])
			if err != nil {
				return nil, err
			}
			v.Player = pid
			v.HasPlayer = true
		}
		return v, nil
	case "DECKSIZE":
		if len(args) != 1 {
			return nil, tagErr(tag)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return nil, tagErr(tag)
		}
		return DeckSize{Count: n}, nil
	case "STATUS":
		s := Status{}
		for _, f := range args {
			switch f {
			case "H":
				s.Hit = true
			case "S":
				s.Stand = true
			case "D":
				s.Double = true
			case "U":
				s.Surrender = true
			case "P":
				s.Split = true
			case "N":
				s.NewGame = true
			default:
				return nil, tagErr(tag)
			}
		}
		return s, nil
	case "CHAT":
		return Chat{Text: strings.Join(args, " ")}, nil
	case "CHAT_MSG":
		if len(args) < 1 {
			return nil, tagErr(tag)
		}
		pid, err := parsePlayerID(tag, args[0])
		if err != nil {
			return nil, err
		}
		return ChatMsg{Player: pid, Text: strings.Join(args[1:], " ")}, nil
	case "WIN":
		return Win{}, nil
	case "LOSE":
		return Lose{}, nil
	case "DRAW":
		return Draw{}, nil
	case "NOP":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown tag %q: %w", tag, ErrUnparseable)
	}
}

func tagErr(tag string) error {
	return fmt.Errorf("%s: %w", tag, ErrUnparseable)
}

func parseCode(tag string, args []string) (RoomCode, error) {
	if len(args) != 1 {
		return 0, tagErr(tag)
	}
	return ParseRoomCode(args[0])
}

func parseAmount(tag string, args []string) (uint32, error) {
	if len(args) != 1 {
		return 0, tagErr(tag)
	}
	n, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, tagErr(tag)
	}
	return uint32(n), nil
}

func parsePlayerID(tag, s string) (PlayerID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, tagErr(tag)
	}
	return PlayerID(n), nil
}

func parseCard(tag, s string) (card.Card, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || n > 51 {
		return 0, tagErr(tag)
	}
	return card.FromID(uint8(n)), nil
}

func parseSoleCard(tag string, args []string) (card.Card, error) {
	if len(args) != 1 {
		return 0, tagErr(tag)
	}
	return parseCard(tag, args[0])
}
