package variant

import "github.com/notnil/chess"

// Sliders in the savanna never travel further than this many squares.
const sliderRange = 3

var (
	knightDeltas = []int{25, 23, 11, 5, -25, -23, -11, -5}
	kingDeltas   = []int{8, 1, -8, -1}
	diagDeltas   = []int{-9, -7, 7, 9}
	fileDeltas   = []int{-8, 8}
	rankDeltas   = []int{-1, 1}
)

// Precomputed attack tables, read-only after init.
var (
	KnightAttacks [64]Bitboard
	KingAttacks   [64]Bitboard
	PawnAttacks   [2][64]Bitboard // [side][square]

	// en passant keeps the diagonal capture of ordinary chess
	epAttacks [2][64]Bitboard

	DiagMasks, FileMasks, RankMasks       [64]Bitboard
	DiagAttacks, FileAttacks, RankAttacks [64]map[Bitboard]Bitboard
)

func init() {
	for sq := chess.A1; sq <= chess.H8; sq++ {
		KnightAttacks[sq] = stepAttacks(sq, knightDeltas)
		KingAttacks[sq] = stepAttacks(sq, kingDeltas)
		PawnAttacks[white][sq] = stepAttacks(sq, []int{8})
		PawnAttacks[black][sq] = stepAttacks(sq, []int{-8})
		epAttacks[white][sq] = stepAttacks(sq, []int{7, 9})
		epAttacks[black][sq] = stepAttacks(sq, []int{-7, -9})
	}
	DiagMasks, DiagAttacks = attackTable(diagDeltas)
	FileMasks, FileAttacks = attackTable(fileDeltas)
	RankMasks, RankAttacks = attackTable(rankDeltas)
}

// slidingAttacks walks every delta from sq until it leaves the board, wraps
// around an edge, reaches maxDistance or hits an occupied square. The
// blocking square is part of the result.
func slidingAttacks(sq chess.Square, occupied Bitboard, deltas []int, maxDistance int) Bitboard {
	var attacks Bitboard
	for _, delta := range deltas {
		cur := int(sq)
		for {
			next := cur + delta
			if next < 0 || next >= 64 {
				break
			}
			if squareDistance(chess.Square(next), chess.Square(cur)) > 3 ||
				squareDistance(chess.Square(next), sq) > maxDistance {
				break
			}
			cur = next
			attacks |= BB(chess.Square(cur))
			if occupied.Has(chess.Square(cur)) {
				break
			}
		}
	}
	return attacks
}

// stepAttacks is a single jump along each delta.
func stepAttacks(sq chess.Square, deltas []int) Bitboard {
	return slidingAttacks(sq, All, deltas, 8)
}

// edges returns the board rim minus the rank and file sq stands on.
func edges(sq chess.Square) Bitboard {
	return ((Rank1 | Rank8) &^ RankOf(sq)) | ((FileA | FileH) &^ FileOf(sq))
}

// attackTable builds, per square, the relevant occupancy mask for a slider
// moving along deltas and the attack set for every subset of that mask.
func attackTable(deltas []int) (masks [64]Bitboard, attacks [64]map[Bitboard]Bitboard) {
	for sq := chess.A1; sq <= chess.H8; sq++ {
		mask := slidingAttacks(sq, Empty, deltas, sliderRange) &^ edges(sq)
		subsets := mask.Subsets()
		table := make(map[Bitboard]Bitboard, len(subsets))
		for _, subset := range subsets {
			table[subset] = slidingAttacks(sq, subset, deltas, sliderRange)
		}
		masks[sq] = mask
		attacks[sq] = table
	}
	return masks, attacks
}

func diagAttacks(sq chess.Square, occupied Bitboard) Bitboard {
	return DiagAttacks[sq][DiagMasks[sq]&occupied]
}

func lineAttacks(sq chess.Square, occupied Bitboard) Bitboard {
	return RankAttacks[sq][RankMasks[sq]&occupied] | FileAttacks[sq][FileMasks[sq]&occupied]
}
