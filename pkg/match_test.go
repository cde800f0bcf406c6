package pkg

import (
	"io"
	"log"
	"os"
	"testing"

	"github.com/notnil/chess"
	"github.com/qnkhuat/savanna/pkg/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestMatch(t *testing.T, fen string) *Match {
	t.Helper()
	m, err := NewMatch(fen, "alice", "bob")
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func TestSelectThenMove(t *testing.T) {
	m := newTestMatch(t, variant.StartingFEN)

	assert.False(t, m.Select(chess.E4), "empty square selects nothing")
	_, ok := m.Selected()
	assert.False(t, ok)

	assert.False(t, m.Select(chess.E2))
	sq, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, chess.E2, sq)
	assert.Equal(t, variant.BB(chess.E3)|variant.BB(chess.E4), m.Destinations())

	assert.True(t, m.Select(chess.E4))
	_, ok = m.Selected()
	assert.False(t, ok)
	assert.Equal(t, chess.Black, m.Board.Turn())
	assert.Equal(t, chess.WhitePawn, m.Board.PieceAt(chess.E4))
	assert.Contains(t, m.State().Message, "e2e4")
}

func TestIllegalClickIsDropped(t *testing.T) {
	m := newTestMatch(t, variant.StartingFEN)
	fen := m.Board.FEN()

	m.Select(chess.B1)
	assert.False(t, m.Select(chess.C3))
	assert.Equal(t, fen, m.Board.FEN())
	_, ok := m.Selected()
	assert.False(t, ok)

	// The opponent's pieces can be picked up but have nowhere to go.
	m.Select(chess.E7)
	assert.Zero(t, m.Destinations())
	assert.False(t, m.Select(chess.E5))
	assert.Equal(t, fen, m.Board.FEN())
}

func TestPawnPromotesToQueen(t *testing.T) {
	m := newTestMatch(t, "8/4P3/8/8/8/k7/8/K7 w - - 0 1")
	m.Select(chess.E7)
	assert.True(t, m.Select(chess.E8))
	assert.Equal(t, chess.WhiteQueen, m.Board.PieceAt(chess.E8))
}

func TestGameOverBanner(t *testing.T) {
	m := newTestMatch(t, "8/K7/8/8/8/8/7k/8 w - - 0 1")
	m.Start()
	assert.False(t, m.Over())
	assert.Empty(t, m.State().Banner)

	m.Select(chess.A7)
	assert.True(t, m.Select(chess.A8))
	assert.True(t, m.Over())
	assert.Equal(t, ActionWhiteWins, m.WinnerText())
	assert.Equal(t, "White wins!", m.State().Banner)
	assert.True(t, m.Players[0].Clock.Paused())
	assert.True(t, m.Players[1].Clock.Paused())

	assert.False(t, m.Select(chess.H2), "clicks after the end are ignored")
	assert.ErrorIs(t, m.Undo(), ErrGameOver)
}

func TestWinnerTexts(t *testing.T) {
	tests := []struct {
		fen  string
		want Action
	}{
		{"8/8/8/8/8/8/8/k6K w - - 0 1", ActionBlackWins},
		{"K7/8/8/8/8/8/8/7k w - - 0 1", ActionDraw},
		{"7k/8/8/8/1r6/8/3r4/K7 w - - 0 1", ActionDraw},
	}
	for _, tt := range tests {
		m := newTestMatch(t, tt.fen)
		assert.True(t, m.Over(), tt.fen)
		assert.Equal(t, tt.want, m.WinnerText(), tt.fen)
	}
}

func TestUndo(t *testing.T) {
	m := newTestMatch(t, variant.StartingFEN)
	assert.ErrorIs(t, m.Undo(), variant.ErrEmptyStack)

	m.Start()
	m.Select(chess.E2)
	m.Select(chess.E4)
	assert.True(t, m.Players[0].Clock.Paused())
	assert.False(t, m.Players[1].Clock.Paused())

	require.NoError(t, m.Undo())
	assert.Equal(t, variant.StartingFEN, m.Board.FEN())
	assert.False(t, m.Players[0].Clock.Paused())
	assert.True(t, m.Players[1].Clock.Paused())
}

func TestRestart(t *testing.T) {
	fen := "8/K7/8/8/8/8/7k/8 w - - 0 1"
	m := newTestMatch(t, fen)
	m.Start()
	m.Select(chess.A7)
	require.True(t, m.Select(chess.A8))
	require.True(t, m.Over())

	m.Restart()
	assert.False(t, m.Over())
	assert.Equal(t, fen, m.Board.FEN())
	assert.Empty(t, m.Board.Moves())
	assert.Equal(t, "", m.State().Banner)
	assert.False(t, m.Players[0].Clock.Paused())
	assert.True(t, m.Players[1].Clock.Paused())
	assert.Zero(t, m.Players[0].Clock.Elapsed())
}

func TestStateNames(t *testing.T) {
	m := newTestMatch(t, variant.StartingFEN)
	gs := m.State()
	assert.Equal(t, "alice", gs.WhiteName)
	assert.Equal(t, "bob", gs.BlackName)
	assert.Equal(t, "0:00", gs.WhiteClock)
	assert.Same(t, m.Board, gs.Board)

	unnamed, err := NewMatch("", "", "")
	require.NoError(t, err)
	defer unnamed.Close()
	assert.NotEmpty(t, unnamed.Players[0].Name)
	assert.Equal(t, chess.Black, unnamed.Player(chess.Black).Color)
}

func TestBadFEN(t *testing.T) {
	_, err := NewMatch("not a fen", "", "")
	assert.ErrorIs(t, err, variant.ErrInvalidFEN)
}
