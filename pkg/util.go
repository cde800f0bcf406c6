package pkg

import (
	"errors"
	"log"
	"os"

	"github.com/notnil/chess"
	"golang.org/x/term"
)

var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrGameOver       = errors.New("game is over")
)

func colorName(c chess.Color) string {
	switch c {
	case chess.White:
		return "White"
	case chess.Black:
		return "Black"
	default:
		return "Nobody"
	}
}

// InitLog sends the standard logger to dest. The terminal belongs to the UI.
func InitLog(dest, prefix string) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
