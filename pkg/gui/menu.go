package gui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var titleLines = []string{"Survive", "The", "Savanna"}

// Menu is the title screen: the game name over a column of buttons.
type Menu struct {
	*tview.Grid
	Title    *tview.TextView
	Buttons  []*tview.Button
	selected int
	setFocus func(p tview.Primitive)
}

// MenuItem is a labelled button and the func it runs
type MenuItem struct {
	Label  string
	Action func()
}

// NewMenu lays out the title and one button per item. setFocus is used to
// move between buttons with the arrow and tab keys.
func NewMenu(theme Theme, setFocus func(p tview.Primitive), items ...MenuItem) *Menu {
	m := &Menu{setFocus: setFocus}

	m.Title = tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetTextColor(theme.Title).
		SetText(strings.Join(titleLines, "\n\n"))

	buttons := tview.NewGrid().SetGap(1, 0)
	rows := make([]int, len(items))
	for i, item := range items {
		rows[i] = 1
		button := tview.NewButton(item.Label).SetSelectedFunc(item.Action)
		button.SetBackgroundColor(theme.Button)
		button.SetLabelColor(theme.ButtonText)
		button.SetBackgroundColorActivated(theme.SquareSelected)
		button.SetLabelColorActivated(theme.ButtonText)
		buttons.AddItem(button, i, 0, 1, 1, 0, 0, i == 0)
		m.Buttons = append(m.Buttons, button)
	}
	buttons.SetRows(rows...)

	m.Grid = tview.NewGrid().
		SetRows(-1, len(titleLines)*2, 2, len(items)*2, -1).
		SetColumns(-1, 20, -1).
		AddItem(m.Title, 1, 0, 1, 3, 0, 0, false).
		AddItem(buttons, 3, 1, 1, 1, 0, 0, true)

	m.Grid.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyBacktab:
			m.Select(m.selected - 1)
			return nil
		case tcell.KeyDown, tcell.KeyTab:
			m.Select(m.selected + 1)
			return nil
		}
		return event
	})
	return m
}

// Select focuses the button at idx, clamped to the list
func (m *Menu) Select(idx int) {
	if len(m.Buttons) == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.Buttons) {
		idx = len(m.Buttons) - 1
	}
	m.selected = idx
	if m.setFocus != nil {
		m.setFocus(m.Buttons[idx])
	}
}

func (m *Menu) Selected() int {
	return m.selected
}
