package pkg

import (
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/notnil/chess"
)

type Player struct {
	Name  string
	Color chess.Color
	Clock *Clock
}

// NewPlayer creates a player of the given color. An empty name is replaced
// with a random pet name.
func NewPlayer(color chess.Color, name string) *Player {
	if name == "" {
		name = petname.Generate(2, "-")
	}
	return &Player{
		Name:  name,
		Color: color,
		Clock: NewClock(),
	}
}

func (p *Player) String() string {
	return p.Name + " (" + colorName(p.Color) + ")"
}
