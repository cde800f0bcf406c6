package gui

import (
	"testing"

	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
)

func TestMenuSelect(t *testing.T) {
	var focused tview.Primitive
	started := false
	m := NewMenu(ThemeSavanna, func(p tview.Primitive) { focused = p },
		MenuItem{Label: "Start Game", Action: func() { started = true }},
		MenuItem{Label: "Quit", Action: func() {}},
	)
	assert.Len(t, m.Buttons, 2)
	assert.Equal(t, "Start Game", m.Buttons[0].GetLabel())

	m.Select(5)
	assert.Equal(t, 1, m.Selected())
	assert.Equal(t, m.Buttons[1], focused)

	m.Select(-1)
	assert.Equal(t, 0, m.Selected())
	assert.Equal(t, m.Buttons[0], focused)

	assert.Contains(t, m.Title.GetText(false), "Savanna")
	assert.False(t, started)
}
