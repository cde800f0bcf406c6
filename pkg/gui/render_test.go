package gui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/qnkhuat/savanna/pkg/variant"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T) (*BoardView, *variant.Board) {
	t.Helper()
	b, err := variant.NewBoard(variant.StartingFEN)
	require.NoError(t, err)
	v := NewBoardView(ThemeSavanna)
	v.SetRect(0, 0, 80, 30)
	v.SetState(GameState{Board: b})
	return v, b
}

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(80, 30)
	return s
}

// screenPos returns the top left cell of sq for a view placed at 0,0
func screenPos(sq chess.Square) (int, int) {
	col := int(sq.File())
	row := 7 - int(sq.Rank())
	return leftMargin + 2 + col*squareWidth, topMargin + row*squareHeight
}

func TestSquareAt(t *testing.T) {
	v, _ := newTestView(t)
	tests := []struct {
		x, y int
		sq   chess.Square
		ok   bool
	}{
		{4, 2, chess.A8, true},
		{7, 3, chess.A8, true},
		{8, 2, chess.B8, true},
		{35, 17, chess.H1, true},
		{20, 14, chess.E2, true},
		{3, 2, chess.NoSquare, false},
		{36, 17, chess.NoSquare, false},
		{4, 18, chess.NoSquare, false},
	}
	for _, tt := range tests {
		sq, ok := v.SquareAt(tt.x, tt.y)
		assert.Equal(t, tt.ok, ok, "%d,%d", tt.x, tt.y)
		assert.Equal(t, tt.sq, sq, "%d,%d", tt.x, tt.y)
	}
	for sq := chess.A1; sq <= chess.H8; sq++ {
		x, y := screenPos(sq)
		got, ok := v.SquareAt(x, y)
		assert.True(t, ok)
		assert.Equal(t, sq, got)
	}
}

func TestDrawPiecesAndDots(t *testing.T) {
	v, b := newTestView(t)
	s := newTestScreen(t)
	v.SetState(GameState{
		Board:        b,
		Selected:     chess.B1,
		HasSelected:  true,
		Destinations: variant.BB(chess.C4) | variant.BB(chess.A4),
	})
	v.Draw(s)

	x, y := screenPos(chess.E1)
	r, _, _, _ := s.GetContent(x+squareWidth/2-1, y)
	assert.Equal(t, '♔', r)

	x, y = screenPos(chess.D8)
	r, _, _, _ = s.GetContent(x+squareWidth/2-1, y)
	assert.Equal(t, '♛', r)

	x, y = screenPos(chess.C4)
	r, _, _, _ = s.GetContent(x+squareWidth/2, y+1)
	assert.Equal(t, '●', r)

	x, y = screenPos(chess.E4)
	r, _, _, _ = s.GetContent(x+squareWidth/2, y+1)
	assert.Equal(t, ' ', r)

	x, y = screenPos(chess.B1)
	_, _, style, _ := s.GetContent(x, y)
	_, bg, _ := style.Decompose()
	assert.Equal(t, Blend(ThemeSavanna.SquareLight, ThemeSavanna.SquareSelected, selectedAlpha), bg)
}

func TestDrawBanner(t *testing.T) {
	v, b := newTestView(t)
	s := newTestScreen(t)
	v.SetState(GameState{Board: b, Banner: "White wins!"})
	v.Draw(s)

	bx, by := v.origin()
	y := by + boardHeight/2 - 1
	var line []rune
	for x := bx; x < bx+boardWidth; x++ {
		r, _, _, _ := s.GetContent(x, y)
		line = append(line, r)
	}
	assert.Contains(t, string(line), "White wins!")
}

func TestMouseSelectsSquare(t *testing.T) {
	v, _ := newTestView(t)
	var got []chess.Square
	v.SetSelectedFunc(func(sq chess.Square) { got = append(got, sq) })

	handler := v.MouseHandler()
	x, y := screenPos(chess.G1)
	consumed, _ := handler(tview.MouseLeftDown, tcell.NewEventMouse(x+1, y+1, tcell.Button1, tcell.ModNone), func(p tview.Primitive) {})
	assert.True(t, consumed)

	consumed, _ = handler(tview.MouseLeftDown, tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone), func(p tview.Primitive) {})
	assert.True(t, consumed)

	assert.Equal(t, []chess.Square{chess.G1}, got)
	assert.Equal(t, chess.G1, v.Cursor())
}

func TestKeyboardCursor(t *testing.T) {
	v, _ := newTestView(t)
	var got []chess.Square
	undo := 0
	v.SetSelectedFunc(func(sq chess.Square) { got = append(got, sq) })
	v.SetKeyFunc('u', func() { undo++ })

	handler := v.InputHandler()
	press := func(key tcell.Key, r rune) {
		handler(tcell.NewEventKey(key, r, tcell.ModNone), func(p tview.Primitive) {})
	}
	press(tcell.KeyUp, 0)
	press(tcell.KeyUp, 0)
	press(tcell.KeyEnter, 0)
	press(tcell.KeyLeft, 0)
	press(tcell.KeyRune, ' ')
	press(tcell.KeyRune, 'u')
	for i := 0; i < 10; i++ {
		press(tcell.KeyDown, 0)
	}

	assert.Equal(t, []chess.Square{chess.E4, chess.D4}, got)
	assert.Equal(t, 1, undo)
	assert.Equal(t, chess.D1, v.Cursor())
}

func TestMoveWindow(t *testing.T) {
	var moves []variant.Move
	for i := 0; i < 21; i++ {
		moves = append(moves, variant.Move{From: chess.A1, To: chess.A2})
	}
	pairs := movePairs(moves)
	require.Len(t, pairs, 11)
	assert.Equal(t, "", pairs[10].black)

	idx, white, black := moveIdx(pairs, 0)
	assert.Equal(t, "4.", idx)
	assert.Equal(t, "a1a2", white)
	assert.Equal(t, "a1a2", black)

	idx, _, black = moveIdx(pairs, moveRows-1)
	assert.Equal(t, "11.", idx)
	assert.Equal(t, "", black)

	idx, _, _ = moveIdx(pairs[:2], 5)
	assert.Equal(t, "", idx)
}
