package variant

import "github.com/notnil/chess"

const (
	white = 0
	black = 1
)

func sideOf(c chess.Color) int {
	if c == chess.Black {
		return black
	}
	return white
}

func colorOf(side int) chess.Color {
	if side == black {
		return chess.Black
	}
	return chess.White
}

type castleRights uint8

const (
	castleWhiteKing castleRights = 1 << iota
	castleWhiteQueen
	castleBlackKing
	castleBlackQueen
)

func (c castleRights) String() string {
	s := ""
	if c&castleWhiteKing != 0 {
		s += "K"
	}
	if c&castleWhiteQueen != 0 {
		s += "Q"
	}
	if c&castleBlackKing != 0 {
		s += "k"
	}
	if c&castleBlackQueen != 0 {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// position is the value part of a board: copying it is enough to try a move.
type position struct {
	pieces   [7]Bitboard // indexed by chess.PieceType
	colors   [2]Bitboard
	occupied Bitboard
	turn     chess.Color
	castling castleRights
	ep       Bitboard // square passed by the last double push, if any
	halfmove int
	fullmove int
}

func (p *position) set(sq chess.Square, piece chess.Piece) {
	p.pieces[piece.Type()] |= BB(sq)
	p.colors[sideOf(piece.Color())] |= BB(sq)
	p.occupied |= BB(sq)
}

func (p *position) clear(sq chess.Square) {
	mask := ^BB(sq)
	for i := range p.pieces {
		p.pieces[i] &= mask
	}
	p.colors[white] &= mask
	p.colors[black] &= mask
	p.occupied &= mask
}

func (p *position) pieceAt(sq chess.Square) chess.Piece {
	bb := BB(sq)
	if p.occupied&bb == 0 {
		return chess.NoPiece
	}
	color := chess.White
	if p.colors[black]&bb != 0 {
		color = chess.Black
	}
	for _, t := range pieceTypes {
		if p.pieces[t]&bb != 0 {
			return newPiece(t, color)
		}
	}
	return chess.NoPiece
}

func (p *position) king(c chess.Color) (chess.Square, bool) {
	kings := p.pieces[chess.King] & p.colors[sideOf(c)]
	if kings == 0 {
		return chess.NoSquare, false
	}
	return kings.Squares()[0], true
}

// attacksMask returns the squares attacked by the piece on sq.
func (p *position) attacksMask(sq chess.Square) Bitboard {
	bb := BB(sq)
	switch {
	case p.occupied&bb == 0:
		return Empty
	case p.pieces[chess.Pawn]&bb != 0:
		side := white
		if p.colors[black]&bb != 0 {
			side = black
		}
		return PawnAttacks[side][sq]
	case p.pieces[chess.Knight]&bb != 0:
		return KnightAttacks[sq]
	case p.pieces[chess.King]&bb != 0:
		return KingAttacks[sq]
	}
	var attacks Bitboard
	if p.pieces[chess.Bishop]&bb != 0 || p.pieces[chess.Queen]&bb != 0 {
		attacks = diagAttacks(sq, p.occupied)
	}
	if p.pieces[chess.Rook]&bb != 0 || p.pieces[chess.Queen]&bb != 0 {
		attacks |= lineAttacks(sq, p.occupied)
	}
	return attacks
}

// attackersMask returns the pieces of color c attacking sq, given occupied.
func (p *position) attackersMask(c chess.Color, sq chess.Square, occupied Bitboard) Bitboard {
	queensAndRooks := p.pieces[chess.Queen] | p.pieces[chess.Rook]
	queensAndBishops := p.pieces[chess.Queen] | p.pieces[chess.Bishop]

	// A pawn of color c attacks sq when sq is in its forward step, which is
	// the reverse step of the other color taken from sq.
	attackers := (KingAttacks[sq] & p.pieces[chess.King]) |
		(KnightAttacks[sq] & p.pieces[chess.Knight]) |
		(lineAttacks(sq, occupied) & queensAndRooks) |
		(diagAttacks(sq, occupied) & queensAndBishops) |
		(PawnAttacks[1-sideOf(c)][sq] & p.pieces[chess.Pawn])

	return attackers & p.colors[sideOf(c)]
}

func (p *position) isAttackedBy(c chess.Color, sq chess.Square) bool {
	return p.attackersMask(c, sq, p.occupied) != 0
}

// kingAttacked reports whether the king of color c is attacked. A side
// without a king is never attacked.
func (p *position) kingAttacked(c chess.Color) bool {
	sq, ok := p.king(c)
	if !ok {
		return false
	}
	return p.isAttackedBy(c.Other(), sq)
}

var pieceTypes = []chess.PieceType{chess.King, chess.Queen, chess.Rook, chess.Bishop, chess.Knight, chess.Pawn}

var pieces = [2][7]chess.Piece{
	{chess.NoPiece, chess.WhiteKing, chess.WhiteQueen, chess.WhiteRook, chess.WhiteBishop, chess.WhiteKnight, chess.WhitePawn},
	{chess.NoPiece, chess.BlackKing, chess.BlackQueen, chess.BlackRook, chess.BlackBishop, chess.BlackKnight, chess.BlackPawn},
}

func newPiece(t chess.PieceType, c chess.Color) chess.Piece {
	return pieces[sideOf(c)][t]
}

var promotions = []chess.PieceType{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

func appendPawnMove(moves []Move, from, to chess.Square) []Move {
	if to.Rank() == chess.Rank1 || to.Rank() == chess.Rank8 {
		for _, promo := range promotions {
			moves = append(moves, Move{From: from, To: to, Promo: promo})
		}
		return moves
	}
	return append(moves, Move{From: from, To: to})
}

// pseudoLegalMoves generates moves following the piece geometry only.
func (p *position) pseudoLegalMoves(fromMask, toMask Bitboard) []Move {
	var moves []Move
	us := sideOf(p.turn)
	ours := p.colors[us]

	nonPawns := ours &^ p.pieces[chess.Pawn] & fromMask
	for _, from := range nonPawns.ScanReversed() {
		targets := p.attacksMask(from) &^ ours & toMask
		for _, to := range targets.ScanReversed() {
			moves = append(moves, Move{From: from, To: to})
		}
	}

	if fromMask&p.pieces[chess.King] != 0 {
		moves = append(moves, p.castlingMoves(fromMask, toMask)...)
	}

	pawns := p.pieces[chess.Pawn] & ours & fromMask
	if pawns == 0 {
		return moves
	}

	for _, from := range pawns.ScanReversed() {
		targets := PawnAttacks[us][from] & p.colors[1-us] & toMask
		for _, to := range targets.ScanReversed() {
			moves = appendPawnMove(moves, from, to)
		}
	}

	var singles, doubles Bitboard
	if us == white {
		singles = (pawns << 8) &^ p.occupied
		doubles = (singles << 8) &^ p.occupied & (Rank3 | Rank4)
	} else {
		singles = (pawns >> 8) &^ p.occupied
		doubles = (singles >> 8) &^ p.occupied & (Rank6 | Rank5)
	}
	singles &= toMask
	doubles &= toMask

	for _, to := range singles.ScanReversed() {
		from := to - 8
		if us == black {
			from = to + 8
		}
		moves = appendPawnMove(moves, from, to)
	}
	for _, to := range doubles.ScanReversed() {
		from := to - 16
		if us == black {
			from = to + 16
		}
		moves = append(moves, Move{From: from, To: to})
	}
	return append(moves, p.enPassantMoves(pawns, toMask)...)
}

// enPassantMoves generates captures onto the en passant square by pawns
// standing beside the pawn that just made a double push.
func (p *position) enPassantMoves(pawns, toMask Bitboard) []Move {
	if p.ep&toMask == 0 || p.ep&p.occupied != 0 {
		return nil
	}
	us := sideOf(p.turn)
	fifth := Rank5
	if us == black {
		fifth = Rank4
	}
	ep := p.ep.Squares()[0]
	var moves []Move
	for _, from := range (pawns & epAttacks[1-us][ep] & fifth).ScanReversed() {
		moves = append(moves, Move{From: from, To: ep})
	}
	return moves
}

// legalEP returns the en passant square when some legal capture lands on it.
func (p *position) legalEP() Bitboard {
	if p.ep == 0 {
		return Empty
	}
	pawns := p.pieces[chess.Pawn] & p.colors[sideOf(p.turn)]
	for _, m := range p.enPassantMoves(pawns, p.ep) {
		if p.isLegal(m) {
			return p.ep
		}
	}
	return Empty
}

type castleSide struct {
	right   castleRights
	king    chess.Square
	rook    chess.Square
	kingTo  chess.Square
	rookTo  chess.Square
	empty   Bitboard // squares between king and rook
	passing []chess.Square
	color   chess.Color
}

var castleSides = []castleSide{
	{castleWhiteKing, chess.E1, chess.H1, chess.G1, chess.F1,
		BB(chess.F1) | BB(chess.G1), []chess.Square{chess.E1, chess.F1, chess.G1}, chess.White},
	{castleWhiteQueen, chess.E1, chess.A1, chess.C1, chess.D1,
		BB(chess.B1) | BB(chess.C1) | BB(chess.D1), []chess.Square{chess.E1, chess.D1, chess.C1}, chess.White},
	{castleBlackKing, chess.E8, chess.H8, chess.G8, chess.F8,
		BB(chess.F8) | BB(chess.G8), []chess.Square{chess.E8, chess.F8, chess.G8}, chess.Black},
	{castleBlackQueen, chess.E8, chess.A8, chess.C8, chess.D8,
		BB(chess.B8) | BB(chess.C8) | BB(chess.D8), []chess.Square{chess.E8, chess.D8, chess.C8}, chess.Black},
}

func (p *position) castlingMoves(fromMask, toMask Bitboard) []Move {
	var moves []Move
	us := sideOf(p.turn)
	for _, cs := range castleSides {
		if cs.color != p.turn || p.castling&cs.right == 0 {
			continue
		}
		if !fromMask.Has(cs.king) || !toMask.Has(cs.kingTo) {
			continue
		}
		if !(p.pieces[chess.King] & p.colors[us]).Has(cs.king) ||
			!(p.pieces[chess.Rook] & p.colors[us]).Has(cs.rook) {
			continue
		}
		if p.occupied&cs.empty != 0 {
			continue
		}
		safe := true
		for _, sq := range cs.passing {
			if p.isAttackedBy(p.turn.Other(), sq) {
				safe = false
				break
			}
		}
		if safe {
			moves = append(moves, Move{From: cs.king, To: cs.kingTo})
		}
	}
	return moves
}

func (p *position) castleFor(m Move) (castleSide, bool) {
	if !(p.pieces[chess.King] & p.colors[sideOf(p.turn)]).Has(m.From) {
		return castleSide{}, false
	}
	for _, cs := range castleSides {
		if cs.color == p.turn && cs.king == m.From && cs.kingTo == m.To {
			return cs, true
		}
	}
	return castleSide{}, false
}

// apply plays m without any legality check.
func (p *position) apply(m Move) {
	moving := p.pieceAt(m.From)
	captured := p.pieceAt(m.To)

	if moving.Type() == chess.Pawn && p.ep.Has(m.To) && m.From.File() != m.To.File() {
		behind := m.To - 8
		if moving.Color() == chess.Black {
			behind = m.To + 8
		}
		captured = p.pieceAt(behind)
		p.clear(behind)
	}

	if cs, ok := p.castleFor(m); ok {
		rook := p.pieceAt(cs.rook)
		p.clear(cs.rook)
		p.set(cs.rookTo, rook)
	}

	p.clear(m.From)
	p.clear(m.To)
	placed := moving
	if m.Promo != chess.NoPieceType {
		placed = newPiece(m.Promo, moving.Color())
	}
	p.set(m.To, placed)

	switch m.From {
	case chess.E1:
		if moving.Type() == chess.King {
			p.castling &^= castleWhiteKing | castleWhiteQueen
		}
	case chess.E8:
		if moving.Type() == chess.King {
			p.castling &^= castleBlackKing | castleBlackQueen
		}
	}
	for _, sq := range []chess.Square{m.From, m.To} {
		switch sq {
		case chess.H1:
			p.castling &^= castleWhiteKing
		case chess.A1:
			p.castling &^= castleWhiteQueen
		case chess.H8:
			p.castling &^= castleBlackKing
		case chess.A8:
			p.castling &^= castleBlackQueen
		}
	}

	p.ep = Empty
	if moving.Type() == chess.Pawn {
		switch {
		case m.To-m.From == 16 && m.From.Rank() == chess.Rank2:
			p.ep = BB(m.From + 8)
		case m.From-m.To == 16 && m.From.Rank() == chess.Rank7:
			p.ep = BB(m.From - 8)
		}
	}

	if moving.Type() == chess.Pawn || captured != chess.NoPiece {
		p.halfmove = 0
	} else {
		p.halfmove++
	}
	if p.turn == chess.Black {
		p.fullmove++
	}
	p.turn = p.turn.Other()
}

// isLegal applies the racing rules: the mover may not leave its own king
// attacked and may not attack the opponent king.
func (p *position) isLegal(m Move) bool {
	next := *p
	next.apply(m)
	return !next.kingAttacked(p.turn) && !next.kingAttacked(p.turn.Other())
}

func (p *position) legalMoves(fromMask, toMask Bitboard) []Move {
	pseudo := p.pseudoLegalMoves(fromMask, toMask)
	moves := pseudo[:0]
	for _, m := range pseudo {
		if p.isLegal(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// key identifies a position for repetition counting.
type positionKey struct {
	pieces   [7]Bitboard
	colors   [2]Bitboard
	turn     chess.Color
	castling castleRights
	ep       Bitboard
}

// key leaves out an en passant square nobody can legally capture on.
func (p *position) key() positionKey {
	return positionKey{p.pieces, p.colors, p.turn, p.castling, p.legalEP()}
}
