package gui

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/qnkhuat/savanna/pkg/variant"
	"github.com/rivo/tview"
)

const (
	leftMargin        = 2
	topMargin         = 2
	squareWidth       = 4
	squareHeight      = 2
	numOfSquaresInRow = 8
	boardWidth        = squareWidth * numOfSquaresInRow
	boardHeight       = squareHeight * numOfSquaresInRow
	sidebarMargin     = 4
	moveRows          = 8
)

// Alpha of the overlays, as in the sprites of the desktop version
const (
	selectedAlpha = 150
	moveDotAlpha  = 200
)

// BoardView is a tview primitive drawing the board, the side bar and the
// winner banner. Clicks and the keyboard cursor report squares through the
// selected func.
type BoardView struct {
	*tview.Box
	state    GameState
	theme    Theme
	cursor   chess.Square
	selected func(sq chess.Square)
	keys     map[rune]func()
}

func NewBoardView(theme Theme) *BoardView {
	return &BoardView{
		Box:    tview.NewBox(),
		theme:  theme,
		cursor: chess.E2,
		keys:   make(map[rune]func()),
	}
}

// SetState replaces what is drawn on the next frame
func (v *BoardView) SetState(gs GameState) *BoardView {
	v.state = gs
	return v
}

// SetSelectedFunc is called with the square under a left click, or under
// the cursor when Enter is pressed
func (v *BoardView) SetSelectedFunc(handler func(sq chess.Square)) *BoardView {
	v.selected = handler
	return v
}

// SetKeyFunc binds a rune key to handler while the board has focus
func (v *BoardView) SetKeyFunc(key rune, handler func()) *BoardView {
	v.keys[key] = handler
	return v
}

func (v *BoardView) Cursor() chess.Square {
	return v.cursor
}

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawRune places a rune at the specified coordinates with the provided style
func drawRune(s tcell.Screen, x, y int, style tcell.Style, r rune) {
	s.SetContent(x, y, r, nil, style)
}

func fill(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}

// squareOf is the inverse of the board layout: rank 8 is drawn on top
func squareOf(col, row int) chess.Square {
	return chess.Square((numOfSquaresInRow-row-1)*8 + col)
}

// squareColor returns the theme's color corresponding to the square
func squareColor(sq chess.Square, t Theme) tcell.Color {
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		return t.SquareDark
	}
	return t.SquareLight
}

// stylePiece applies the theme's style to a piece based upon its color
func stylePiece(p chess.Piece, sqBg tcell.Color, t Theme) tcell.Style {
	pieceStyle := tcell.StyleDefault.Background(sqBg).Bold(true)

	if p.Color() == chess.White {
		return pieceStyle.Foreground(t.White)
	}
	return pieceStyle.Foreground(t.Black)
}

// origin returns the screen position of the top left corner of a8
func (v *BoardView) origin() (int, int) {
	x, y, _, _ := v.GetInnerRect()
	return x + leftMargin + 2, y + topMargin
}

// SquareAt converts a screen position to a board square
func (v *BoardView) SquareAt(x, y int) (chess.Square, bool) {
	bx, by := v.origin()
	if x < bx || y < by || x >= bx+boardWidth || y >= by+boardHeight {
		return chess.NoSquare, false
	}
	return squareOf((x-bx)/squareWidth, (y-by)/squareHeight), true
}

// squareBg picks the background of sq: board color, then the last move,
// then the selection overlay
func (v *BoardView) squareBg(sq chess.Square) tcell.Color {
	t := v.theme
	bg := squareColor(sq, t)
	if last, ok := v.state.Board.Peek(); ok && (last.From == sq || last.To == sq) {
		bg = Blend(bg, t.SquareLast, selectedAlpha)
	}
	if v.state.HasSelected && v.state.Selected == sq {
		bg = Blend(bg, t.SquareSelected, selectedAlpha)
	}
	return bg
}

// drawSquare draws a board square, its piece and the move dot if any
func (v *BoardView) drawSquare(s tcell.Screen, col, row int, sq chess.Square) {
	t := v.theme
	bg := v.squareBg(sq)
	bgStyle := tcell.StyleDefault.Background(bg)
	fill(s, col, row, squareWidth, squareHeight, bgStyle)

	if p := v.state.Board.PieceAt(sq); p != chess.NoPiece {
		piece, _ := utf8.DecodeRuneInString(p.String())
		drawRune(s, col+squareWidth/2-1, row, stylePiece(p, bg, t), piece)
	}
	if v.state.Destinations.Has(sq) {
		dotStyle := bgStyle.Foreground(Blend(bg, t.MoveDot, moveDotAlpha))
		drawRune(s, col+squareWidth/2, row+1, dotStyle, '●')
	}
	if v.HasFocus() && v.cursor == sq {
		cursorStyle := bgStyle.Foreground(t.Msg)
		drawRune(s, col, row, cursorStyle, '[')
		drawRune(s, col+squareWidth-1, row, cursorStyle, ']')
	}
}

// drawBoard draws the squares with rank and file labels
func (v *BoardView) drawBoard(s tcell.Screen) {
	t := v.theme
	bx, by := v.origin()
	rankStyle := tcell.StyleDefault.Foreground(t.Rank)
	for row := 0; row < numOfSquaresInRow; row++ {
		rank := chess.Rank(numOfSquaresInRow - row - 1)
		r, _ := utf8.DecodeRuneInString(rank.String())
		drawRune(s, bx-2, by+row*squareHeight, rankStyle, r)
		for col := 0; col < numOfSquaresInRow; col++ {
			v.drawSquare(s, bx+col*squareWidth, by+row*squareHeight, squareOf(col, row))
		}
	}
	fileStyle := tcell.StyleDefault.Foreground(t.File)
	for col := 0; col < numOfSquaresInRow; col++ {
		drawText(s, bx+col*squareWidth+squareWidth/2-1, by+boardHeight, fileStyle, chess.File(col).String())
	}
}

// drawMoveLabel displays the side to move above the board
func (v *BoardView) drawMoveLabel(s tcell.Screen) {
	t := v.theme
	bx, by := v.origin()
	label := " White to Move "
	if v.state.Board.Turn() == chess.Black {
		label = " Black to Move "
	}
	labelStyle := tcell.StyleDefault.Background(t.MoveLabelBg).Foreground(t.MoveLabelFg)
	drawText(s, bx, by-2, labelStyle, label)
}

// drawMessage displays the status line under the board
func (v *BoardView) drawMessage(s tcell.Screen) {
	bx, by := v.origin()
	msgStyle := tcell.StyleDefault.Foreground(v.theme.Msg)
	drawText(s, bx, by+boardHeight+2, msgStyle, fmt.Sprintf("%-*s", boardWidth, v.state.Message))
}

// drawPlayers displays the names and clocks next to the board, black on top
func (v *BoardView) drawPlayers(s tcell.Screen) {
	bx, by := v.origin()
	x := bx + boardWidth + sidebarMargin
	black := fmt.Sprintf("♚ %-16s %s", v.state.BlackName, v.state.BlackClock)
	white := fmt.Sprintf("♔ %-16s %s", v.state.WhiteName, v.state.WhiteClock)
	drawText(s, x, by, tcell.StyleDefault, black)
	drawText(s, x, by+boardHeight-1, tcell.StyleDefault, white)
}

// drawMoves displays recent moves
func (v *BoardView) drawMoves(s tcell.Screen) {
	bx, by := v.origin()
	x := bx + boardWidth + sidebarMargin
	y := by + 3
	boxStyle := tcell.StyleDefault.Foreground(v.theme.MoveBox)
	drawText(s, x, y, boxStyle, "┏━━━━━━━━━━━━━━━━━━━━━┓")
	pairs := movePairs(v.state.Board.Moves())
	for i := 0; i < moveRows; i++ {
		idx, white, black := moveIdx(pairs, i)
		row := fmt.Sprintf("┃ %-3v %-7v %-7v ┃", idx, white, black)
		drawText(s, x, y+i+1, boxStyle, row)
	}
	drawText(s, x, y+moveRows+1, boxStyle, "┗━━━━━━━━━━━━━━━━━━━━━┛")
}

// drawBanner writes the winner text in the middle of the board
func (v *BoardView) drawBanner(s tcell.Screen) {
	if v.state.Banner == "" {
		return
	}
	bx, by := v.origin()
	text := fmt.Sprintf("  %s  ", v.state.Banner)
	width := utf8.RuneCountInString(text)
	x := bx + (boardWidth-width)/2
	y := by + boardHeight/2 - 1
	style := tcell.StyleDefault.Background(v.theme.BannerBg).Foreground(v.theme.Banner).Bold(true)
	fill(s, x, y-1, width, 3, style)
	drawText(s, x, y, style, text)
}

// Draw renders the whole game view
func (v *BoardView) Draw(screen tcell.Screen) {
	v.Box.Draw(screen)
	if v.state.Board == nil {
		return
	}
	v.drawMoveLabel(screen)
	v.drawBoard(screen)
	v.drawPlayers(screen)
	v.drawMoves(screen)
	v.drawMessage(screen)
	v.drawBanner(screen)
}

// gameMove is used to store intermediate data in moveIdx
type gameMove = struct {
	index string
	white string
	black string
}

// movePairs groups the moves by full move number
func movePairs(moves []variant.Move) []gameMove {
	pairs := make([]gameMove, 0, len(moves)/2+1)
	for i, move := range moves {
		if i%2 == 0 {
			pairs = append(pairs, gameMove{index: fmt.Sprintf("%v.", i/2+1), white: move.String()})
			continue
		}
		pairs[len(pairs)-1].black = move.String()
	}
	return pairs
}

// moveIdx gets the move pair at the requested row, windowed so the most
// recent moves stay visible
func moveIdx(pairs []gameMove, idx int) (string, string, string) {
	moveOffset := 0
	if len(pairs) > moveRows {
		moveOffset = len(pairs) - moveRows
	}
	if idx+moveOffset <= len(pairs)-1 {
		move := pairs[idx+moveOffset]
		return move.index, move.white, move.black
	}
	return "", "", ""
}

// moveCursor shifts the keyboard cursor, staying on the board
func (v *BoardView) moveCursor(df, dr int) {
	file := int(v.cursor.File()) + df
	rank := int(v.cursor.Rank()) + dr
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return
	}
	v.cursor = chess.Square(rank*8 + file)
}

func (v *BoardView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return v.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyUp:
			v.moveCursor(0, 1)
		case tcell.KeyDown:
			v.moveCursor(0, -1)
		case tcell.KeyLeft:
			v.moveCursor(-1, 0)
		case tcell.KeyRight:
			v.moveCursor(1, 0)
		case tcell.KeyEnter:
			if v.selected != nil {
				v.selected(v.cursor)
			}
		case tcell.KeyRune:
			if event.Rune() == ' ' && v.selected != nil {
				v.selected(v.cursor)
				return
			}
			if handler, ok := v.keys[event.Rune()]; ok {
				handler()
			}
		}
	})
}

func (v *BoardView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return v.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !v.InRect(x, y) {
			return false, nil
		}
		if action != tview.MouseLeftDown {
			return false, nil
		}
		setFocus(v)
		if sq, ok := v.SquareAt(x, y); ok {
			v.cursor = sq
			if v.selected != nil {
				v.selected(sq)
			}
		}
		return true, nil
	})
}
