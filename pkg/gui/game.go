package gui

import (
	"github.com/notnil/chess"
	"github.com/qnkhuat/savanna/pkg/variant"
)

// GameState encapsulates everything needed to draw a game
type GameState struct {
	Board        *variant.Board   // Variant board
	Selected     chess.Square     // Selected square, valid when HasSelected
	HasSelected  bool             // A piece is selected
	Destinations variant.Bitboard // Legal targets of the selected piece
	Banner       string           // Winner text, drawn over the board
	Message      string           // One line status under the board
	WhiteName    string           // Name of the white player
	BlackName    string           // Name of the black player
	WhiteClock   string           // Time used by white
	BlackClock   string           // Time used by black
}
