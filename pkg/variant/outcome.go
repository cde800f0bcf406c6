package variant

import "github.com/notnil/chess"

// Method explains how a game ended.
type Method uint8

const (
	NoMethod Method = iota
	KingReachedGoal
	BothKingsReachedGoal
	Stalemate
	SeventyFiveMoveRule
	FivefoldRepetition
)

func (m Method) String() string {
	switch m {
	case KingReachedGoal:
		return "KingReachedGoal"
	case BothKingsReachedGoal:
		return "BothKingsReachedGoal"
	case Stalemate:
		return "Stalemate"
	case SeventyFiveMoveRule:
		return "SeventyFiveMoveRule"
	case FivefoldRepetition:
		return "FivefoldRepetition"
	default:
		return "NoMethod"
	}
}

// goal is the rank each king races towards.
var goal = [2]Bitboard{white: Rank8, black: Rank1}

func (b *Board) inGoal(c chess.Color) bool {
	return b.pieces[chess.King]&b.colors[sideOf(c)]&goal[sideOf(c)] != 0
}

// IsVariantEnd reports whether the white king stands on rank 8 or the black
// king on rank 1.
func (b *Board) IsVariantEnd() bool {
	return b.inGoal(chess.White) || b.inGoal(chess.Black)
}

// Outcome returns the result of the game, chess.NoOutcome while it goes on.
func (b *Board) Outcome() chess.Outcome {
	outcome, _ := b.outcome()
	return outcome
}

// Method returns how the game ended, NoMethod while it goes on.
func (b *Board) Method() Method {
	_, method := b.outcome()
	return method
}

// Result is the PGN result string: "1-0", "0-1", "1/2-1/2" or "*".
func (b *Board) Result() string {
	return b.Outcome().String()
}

func (b *Board) IsGameOver() bool {
	return b.Outcome() != chess.NoOutcome
}

// Winner returns the winning color, chess.NoColor for draws and games in
// progress.
func (b *Board) Winner() chess.Color {
	switch b.Outcome() {
	case chess.WhiteWon:
		return chess.White
	case chess.BlackWon:
		return chess.Black
	default:
		return chess.NoColor
	}
}

func (b *Board) outcome() (chess.Outcome, Method) {
	whiteHome, blackHome := b.inGoal(chess.White), b.inGoal(chess.Black)
	switch {
	case whiteHome && blackHome:
		return chess.Draw, BothKingsReachedGoal
	case whiteHome:
		return chess.WhiteWon, KingReachedGoal
	case blackHome:
		return chess.BlackWon, KingReachedGoal
	}
	if len(b.LegalMoves()) == 0 {
		return chess.Draw, Stalemate
	}
	if b.halfmove >= 150 {
		return chess.Draw, SeventyFiveMoveRule
	}
	if b.repetitions() >= 5 {
		return chess.Draw, FivefoldRepetition
	}
	return chess.NoOutcome, NoMethod
}
