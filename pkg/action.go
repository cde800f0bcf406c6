package pkg

// Action is a label shown on a button or as the end of game banner
type Action string

const (
	ActionStart     Action = "Start Game"
	ActionQuit      Action = "Quit"
	ActionUndo      Action = "Undo"
	ActionWhiteWins Action = "White wins!"
	ActionBlackWins Action = "Black wins!"
	ActionDraw      Action = "It's a draw!"
)

func (a Action) String() string {
	return string(a)
}
