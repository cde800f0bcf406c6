package variant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

var ErrBadMove = errors.New("variant: malformed move")

// Move is a from/to pair with an optional promotion piece type.
type Move struct {
	From  chess.Square
	To    chess.Square
	Promo chess.PieceType
}

// String returns the move in UCI notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promo != chess.NoPieceType {
		s += m.Promo.String()
	}
	return s
}

// ParseMove reads a move in UCI notation.
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	from, ok := parseSquare(s[0:2])
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	to, ok := parseSquare(s[2:4])
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			m.Promo = chess.Queen
		case 'r':
			m.Promo = chess.Rook
		case 'b':
			m.Promo = chess.Bishop
		case 'n':
			m.Promo = chess.Knight
		default:
			return Move{}, fmt.Errorf("%w: %q", ErrBadMove, s)
		}
	}
	return m, nil
}

func parseSquare(s string) (chess.Square, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return chess.NoSquare, false
	}
	return square(int(s[0]-'a'), int(s[1]-'1')), true
}
