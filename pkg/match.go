package pkg

import (
	"log"

	"github.com/notnil/chess"
	"github.com/qnkhuat/savanna/pkg/gui"
	"github.com/qnkhuat/savanna/pkg/variant"
)

// Match is one play session: a board, the two players at the same
// keyboard and what is currently selected on screen.
type Match struct {
	Board       *variant.Board
	Players     [2]*Player
	selected    chess.Square
	hasSelected bool
	message     string
}

func NewMatch(fen, whiteName, blackName string) (*Match, error) {
	board, err := variant.NewBoard(fen)
	if err != nil {
		return nil, err
	}
	m := &Match{
		Board: board,
		Players: [2]*Player{
			NewPlayer(chess.White, whiteName),
			NewPlayer(chess.Black, blackName),
		},
	}
	Journal(MessageStart{Fen: board.FEN(), White: m.Players[0].Name, Black: m.Players[1].Name})
	return m, nil
}

func (m *Match) Player(c chess.Color) *Player {
	if c == chess.Black {
		return m.Players[1]
	}
	return m.Players[0]
}

// Start runs the clocks, the side to move's first
func (m *Match) Start() {
	for _, p := range m.Players {
		go p.Clock.Run()
	}
	if !m.Over() {
		m.Player(m.Board.Turn()).Clock.Start()
	}
}

// Close stops the clocks for good
func (m *Match) Close() {
	for _, p := range m.Players {
		p.Clock.Pause()
		p.Clock.Stop()
	}
}

func (m *Match) Over() bool {
	return m.Board.IsGameOver()
}

// WinnerText is the banner shown once the game is over
func (m *Match) WinnerText() Action {
	switch m.Board.Result() {
	case "1-0":
		return ActionWhiteWins
	case "0-1":
		return ActionBlackWins
	default:
		return ActionDraw
	}
}

func (m *Match) Selected() (chess.Square, bool) {
	return m.selected, m.hasSelected
}

// Destinations are the legal targets of the selected piece
func (m *Match) Destinations() variant.Bitboard {
	var dests variant.Bitboard
	if !m.hasSelected {
		return dests
	}
	for _, move := range m.Board.LegalMovesFrom(m.selected) {
		dests |= variant.BB(move.To)
	}
	return dests
}

func (m *Match) clearSelection() {
	m.selected = chess.NoSquare
	m.hasSelected = false
}

// Select handles a click on sq. The first click picks up a piece, the
// second one tries to move it there; pawns reaching the last rank become
// queens. Illegal moves are dropped. It reports whether a move was played.
func (m *Match) Select(sq chess.Square) bool {
	if m.Over() {
		return false
	}
	if !m.hasSelected {
		if m.Board.PieceAt(sq) != chess.NoPiece {
			m.selected = sq
			m.hasSelected = true
		}
		return false
	}

	move := variant.Move{From: m.selected, To: sq}
	if m.Board.PieceAt(m.selected).Type() == chess.Pawn &&
		(sq.Rank() == chess.Rank1 || sq.Rank() == chess.Rank8) {
		move.Promo = chess.Queen
	}
	m.clearSelection()

	if !m.Board.IsLegal(move) {
		log.Printf("invalid move %s", move)
		return false
	}
	m.play(move)
	return true
}

func (m *Match) play(move variant.Move) {
	mover := m.Player(m.Board.Turn())
	if err := m.Board.Push(move); err != nil {
		log.Printf("push %s: %v", move, err)
		return
	}
	log.Printf("Move: %s", move)
	Journal(MessageMove{Ply: len(m.Board.Moves()), Move: move.String(), Fen: m.Board.FEN()})
	m.message = mover.Name + " played " + move.String()

	mover.Clock.Pause()
	if m.Over() {
		m.finish()
		return
	}
	m.Player(m.Board.Turn()).Clock.Start()
}

func (m *Match) finish() {
	for _, p := range m.Players {
		p.Clock.Pause()
	}
	winner := m.Board.Winner()
	Journal(MessageGameOver{
		Result: m.Board.Result(),
		Method: m.Board.Method().String(),
		Winner: colorName(winner),
	})
	m.message = m.Board.Result() + " " + m.Board.Method().String()
}

// Restart puts the board back where the match began and zeroes the clocks
func (m *Match) Restart() {
	m.Board.Reset()
	m.clearSelection()
	m.message = ""
	for _, p := range m.Players {
		p.Clock.Pause()
		p.Clock.Reset()
	}
	Journal(MessageStart{Fen: m.Board.FEN(), White: m.Players[0].Name, Black: m.Players[1].Name})
	if !m.Over() {
		m.Player(m.Board.Turn()).Clock.Start()
	}
}

// Undo takes back the last move while the game is still going
func (m *Match) Undo() error {
	if m.Over() {
		return ErrGameOver
	}
	m.Player(m.Board.Turn()).Clock.Pause()
	move, err := m.Board.Pop()
	if err != nil {
		m.Player(m.Board.Turn()).Clock.Start()
		return err
	}
	m.clearSelection()
	Journal(MessageUndo{Move: move.String(), Fen: m.Board.FEN()})
	m.message = "took back " + move.String()
	m.Player(m.Board.Turn()).Clock.Start()
	return nil
}

// State is the snapshot the board view draws
func (m *Match) State() gui.GameState {
	gs := gui.GameState{
		Board:        m.Board,
		Selected:     m.selected,
		HasSelected:  m.hasSelected,
		Destinations: m.Destinations(),
		Message:      m.message,
		WhiteName:    m.Players[0].Name,
		BlackName:    m.Players[1].Name,
		WhiteClock:   m.Players[0].Clock.String(),
		BlackClock:   m.Players[1].Clock.String(),
	}
	if m.Over() {
		gs.Banner = m.WinnerText().String()
	}
	return gs
}
