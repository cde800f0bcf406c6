// Package variant implements the rules of Survive the Savanna, a racing
// variant where each king tries to reach the opponent's back rank.
//
// Board state lives in bitboards. FEN parsing and the square, piece and
// color vocabulary come from github.com/notnil/chess; the piece geometry,
// move generation and end conditions are the variant's own.
package variant

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrInvalidFEN  = errors.New("variant: invalid fen")
	ErrIllegalMove = errors.New("variant: illegal move")
	ErrEmptyStack  = errors.New("variant: no move to take back")
)

type undo struct {
	move Move
	prev position
}

type Board struct {
	position
	initial string
	stack   []undo
	history []positionKey
}

// NewBoard sets up a board from fen. An empty fen means the starting position.
func NewBoard(fen string) (*Board, error) {
	b := &Board{}
	if fen == "" {
		fen = StartingFEN
	}
	if err := b.SetFEN(fen); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset takes the board back to the position it was last set up with.
func (b *Board) Reset() {
	if err := b.SetFEN(b.initial); err != nil {
		panic(err)
	}
}

// SetFEN replaces the board with the position described by fen and clears
// the move stack.
func (b *Board) SetFEN(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return fmt.Errorf("%w: want 6 fields, got %d", ErrInvalidFEN, len(fields))
	}
	if strings.Count(fields[0], "K") != 1 || strings.Count(fields[0], "k") != 1 {
		return fmt.Errorf("%w: each side needs exactly one king", ErrInvalidFEN)
	}
	fen = strings.Join(fields, " ")
	opt, err := chess.FEN(fen)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	pos := chess.NewGame(opt).Position()

	var p position
	for sq, piece := range pos.Board().SquareMap() {
		p.set(sq, piece)
	}
	p.turn = pos.Turn()
	rights := pos.CastleRights()
	if rights.CanCastle(chess.White, chess.KingSide) {
		p.castling |= castleWhiteKing
	}
	if rights.CanCastle(chess.White, chess.QueenSide) {
		p.castling |= castleWhiteQueen
	}
	if rights.CanCastle(chess.Black, chess.KingSide) {
		p.castling |= castleBlackKing
	}
	if rights.CanCastle(chess.Black, chess.QueenSide) {
		p.castling |= castleBlackQueen
	}

	if fields[3] != "-" {
		sq, ok := parseSquare(fields[3])
		if !ok {
			return fmt.Errorf("%w: en passant square %q", ErrInvalidFEN, fields[3])
		}
		p.ep = BB(sq)
	}

	p.halfmove, err = strconv.Atoi(fields[4])
	if err != nil || p.halfmove < 0 {
		return fmt.Errorf("%w: halfmove clock %q", ErrInvalidFEN, fields[4])
	}
	p.fullmove, err = strconv.Atoi(fields[5])
	if err != nil || p.fullmove < 1 {
		return fmt.Errorf("%w: fullmove number %q", ErrInvalidFEN, fields[5])
	}

	b.position = p
	b.initial = fen
	b.stack = b.stack[:0]
	b.history = append(b.history[:0], p.key())
	return nil
}

// FEN encodes the current position. The en passant square is only written
// when a legal capture onto it exists.
func (b *Board) FEN() string {
	squares := make(map[chess.Square]chess.Piece, b.occupied.Count())
	for _, sq := range b.occupied.Squares() {
		squares[sq] = b.pieceAt(sq)
	}
	placement := chess.NewBoard(squares).String()
	ep := "-"
	if legal := b.legalEP(); legal != Empty {
		ep = legal.Squares()[0].String()
	}
	return fmt.Sprintf("%s %s %s %s %d %d", placement, b.turn, b.castling, ep, b.halfmove, b.fullmove)
}

func (b *Board) String() string {
	return b.FEN()
}

// Draw renders the board as text, rank 8 on top.
func (b *Board) Draw() string {
	squares := make(map[chess.Square]chess.Piece, b.occupied.Count())
	for _, sq := range b.occupied.Squares() {
		squares[sq] = b.pieceAt(sq)
	}
	return chess.NewBoard(squares).Draw()
}

func (b *Board) Turn() chess.Color { return b.turn }

func (b *Board) Occupied() Bitboard { return b.occupied }

func (b *Board) OccupiedBy(c chess.Color) Bitboard { return b.colors[sideOf(c)] }

// Pieces returns the squares holding pieces of type t, either color.
func (b *Board) Pieces(t chess.PieceType) Bitboard { return b.pieces[t] }

func (b *Board) HalfmoveClock() int { return b.halfmove }

func (b *Board) FullmoveNumber() int { return b.fullmove }

func (b *Board) PieceAt(sq chess.Square) chess.Piece { return b.pieceAt(sq) }

// King returns the square of the king of color c.
func (b *Board) King(c chess.Color) (chess.Square, bool) { return b.king(c) }

// AttacksMask returns the squares attacked by the piece on sq, or Empty.
func (b *Board) AttacksMask(sq chess.Square) Bitboard { return b.attacksMask(sq) }

// AttackersMask returns the pieces of color c attacking sq under the given
// occupancy.
func (b *Board) AttackersMask(c chess.Color, sq chess.Square, occupied Bitboard) Bitboard {
	return b.attackersMask(c, sq, occupied)
}

func (b *Board) IsAttackedBy(c chess.Color, sq chess.Square) bool { return b.isAttackedBy(c, sq) }

// IsCheck reports whether the side to move has its king attacked. This only
// happens in positions set up from a FEN, play never produces it.
func (b *Board) IsCheck() bool { return b.kingAttacked(b.turn) }

// PseudoLegalMoves generates moves of the side to move that start inside
// fromMask and end inside toMask, following piece geometry only.
func (b *Board) PseudoLegalMoves(fromMask, toMask Bitboard) []Move {
	return b.pseudoLegalMoves(fromMask, toMask)
}

func (b *Board) LegalMoves() []Move {
	return b.legalMoves(All, All)
}

// LegalMovesFrom lists the legal moves of the piece on sq.
func (b *Board) LegalMovesFrom(sq chess.Square) []Move {
	return b.legalMoves(BB(sq), All)
}

func (b *Board) IsPseudoLegal(m Move) bool {
	if !onBoard(m.From) || !onBoard(m.To) {
		return false
	}
	for _, candidate := range b.pseudoLegalMoves(BB(m.From), BB(m.To)) {
		if candidate == m {
			return true
		}
	}
	return false
}

func (b *Board) IsLegal(m Move) bool {
	return b.IsPseudoLegal(m) && b.isLegal(m)
}

// GivesCheck reports whether m would attack the opponent king.
func (b *Board) GivesCheck(m Move) bool {
	next := b.position
	next.apply(m)
	return next.kingAttacked(b.turn.Other())
}

// Push plays m if it is legal.
func (b *Board) Push(m Move) error {
	if !b.IsLegal(m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	b.stack = append(b.stack, undo{move: m, prev: b.position})
	b.apply(m)
	b.history = append(b.history, b.key())
	return nil
}

// Pop takes back the last move.
func (b *Board) Pop() (Move, error) {
	if len(b.stack) == 0 {
		return Move{}, ErrEmptyStack
	}
	last := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.history = b.history[:len(b.history)-1]
	b.position = last.prev
	return last.move, nil
}

// Moves returns the moves played since the board was set up.
func (b *Board) Moves() []Move {
	moves := make([]Move, len(b.stack))
	for i, u := range b.stack {
		moves[i] = u.move
	}
	return moves
}

// Peek returns the last move played.
func (b *Board) Peek() (Move, bool) {
	if len(b.stack) == 0 {
		return Move{}, false
	}
	return b.stack[len(b.stack)-1].move, true
}

func onBoard(sq chess.Square) bool {
	return sq >= chess.A1 && sq <= chess.H8
}

func (b *Board) repetitions() int {
	current := b.key()
	n := 0
	for _, k := range b.history {
		if k == current {
			n++
		}
	}
	return n
}
