package variant

import (
	"math/bits"
	"strings"

	"github.com/notnil/chess"
)

// Bitboard holds one bit per square, A1 is bit 0 and H8 is bit 63.
type Bitboard uint64

const (
	Empty Bitboard = 0
	All   Bitboard = 0xffffffffffffffff

	FileA Bitboard = 0x0101010101010101
	FileH Bitboard = FileA << 7

	Rank1 Bitboard = 0xff
	Rank2 Bitboard = Rank1 << (8 * 1)
	Rank3 Bitboard = Rank1 << (8 * 2)
	Rank4 Bitboard = Rank1 << (8 * 3)
	Rank5 Bitboard = Rank1 << (8 * 4)
	Rank6 Bitboard = Rank1 << (8 * 5)
	Rank7 Bitboard = Rank1 << (8 * 6)
	Rank8 Bitboard = Rank1 << (8 * 7)
)

// BB returns the bitboard with only sq set.
func BB(sq chess.Square) Bitboard {
	return Bitboard(1) << uint(sq)
}

// RankOf returns the full rank containing sq.
func RankOf(sq chess.Square) Bitboard {
	return Rank1 << (8 * uint(sq.Rank()))
}

// FileOf returns the full file containing sq.
func FileOf(sq chess.Square) Bitboard {
	return FileA << uint(sq.File())
}

func (b Bitboard) Has(sq chess.Square) bool {
	return b&BB(sq) != 0
}

func (b Bitboard) Count() int {
	return bits.OnesCount64(uint64(b))
}

// Squares lists the set squares from A1 upwards.
func (b Bitboard) Squares() []chess.Square {
	squares := make([]chess.Square, 0, b.Count())
	for b != 0 {
		squares = append(squares, chess.Square(bits.TrailingZeros64(uint64(b))))
		b &= b - 1
	}
	return squares
}

// ScanReversed lists the set squares from H8 downwards.
func (b Bitboard) ScanReversed() []chess.Square {
	squares := make([]chess.Square, 0, b.Count())
	for b != 0 {
		sq := 63 - bits.LeadingZeros64(uint64(b))
		squares = append(squares, chess.Square(sq))
		b &^= Bitboard(1) << uint(sq)
	}
	return squares
}

// Subsets enumerates every subset of b with the carry-rippler trick,
// starting with the empty set.
func (b Bitboard) Subsets() []Bitboard {
	subsets := make([]Bitboard, 0, 1<<uint(b.Count()))
	var subset Bitboard
	for {
		subsets = append(subsets, subset)
		subset = (subset - b) & b
		if subset == 0 {
			return subsets
		}
	}
}

// String draws the board with rank 8 on top, '1' for set squares.
func (b Bitboard) String() string {
	rows := make([]string, 0, 8)
	for rank := 7; rank >= 0; rank-- {
		var sb strings.Builder
		for file := 0; file < 8; file++ {
			if b.Has(square(file, rank)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "\n")
}

func square(file, rank int) chess.Square {
	return chess.Square(rank*8 + file)
}

func squareDistance(a, b chess.Square) int {
	df := int(a.File()) - int(b.File())
	if df < 0 {
		df = -df
	}
	dr := int(a.Rank()) - int(b.Rank())
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}
