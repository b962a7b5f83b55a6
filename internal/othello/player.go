package othello

import "fmt"

// Player identifies the owner of a disc or the side to move.
type Player int8

const (
	Black Player = iota
	White
	// Unknown marks an empty square, or a board decoded without a mover.
	Unknown
)

// ParsePlayer decodes a turn indicator: 'B' or 'W' in either case, or '?' for an undefined mover.
func ParsePlayer(c byte) (Player, error) {
	switch c {
	case 'B', 'b':
		return Black, nil
	case 'W', 'w':
		return White, nil
	case '?':
		return Unknown, nil
	default:
		return Unknown, fmt.Errorf("invalid player %q", c)
	}
}

// Opponent returns the other player. It panics for Unknown.
func (p Player) Opponent() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	case Unknown:
		panic("othello: Unknown has no opponent")
	default:
		panic(fmt.Sprintf("othello: invalid player %d", p))
	}
}

// Byte returns the turn indicator accepted by ParsePlayer.
func (p Player) Byte() byte {
	switch p {
	case Black:
		return 'B'
	case White:
		return 'W'
	case Unknown:
		return '?'
	default:
		panic(fmt.Sprintf("othello: invalid player %d", p))
	}
}

func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	case Unknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Player(%d)", int8(p))
	}
}
