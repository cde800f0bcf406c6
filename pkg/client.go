package pkg

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/qnkhuat/savanna/pkg/gui"
	"github.com/qnkhuat/savanna/pkg/variant"
	"github.com/rivo/tview"
)

const (
	pageMenu = "menu"
	pageGame = "game"

	DefaultFrameRate  = 60
	DefaultBannerTime = 5 * time.Second
)

type Config struct {
	FEN        string
	Theme      gui.Theme
	WhiteName  string
	BlackName  string
	Mouse      bool
	FrameRate  int
	BannerTime time.Duration
}

// DefaultConfig plays from the starting position with the savanna theme
func DefaultConfig() Config {
	return Config{
		FEN:        variant.StartingFEN,
		Theme:      gui.ThemeSavanna,
		Mouse:      true,
		FrameRate:  DefaultFrameRate,
		BannerTime: DefaultBannerTime,
	}
}

type Client struct {
	App   *tview.Application
	Pages *tview.Pages
	Menu  *gui.Menu
	Board *gui.BoardView

	config Config

	mu       sync.Mutex
	match    *Match
	matchID  int
	inGame   bool
	done     chan struct{}
	stopOnce sync.Once

	framePending int32 // a frame is waiting in the app's update queue
}

func NewClient(config Config) *Client {
	if config.FrameRate <= 0 {
		config.FrameRate = DefaultFrameRate
	}
	if config.BannerTime <= 0 {
		config.BannerTime = DefaultBannerTime
	}

	app := tview.NewApplication()
	cl := &Client{
		App:    app,
		Pages:  tview.NewPages(),
		config: config,
		done:   make(chan struct{}),
	}

	cl.Menu = gui.NewMenu(config.Theme, func(p tview.Primitive) { app.SetFocus(p) },
		gui.MenuItem{Label: ActionStart.String(), Action: func() {
			log.Println("Start Game clicked")
			if err := cl.StartGame(); err != nil {
				log.Printf("start game: %v", err)
			}
		}},
		gui.MenuItem{Label: ActionQuit.String(), Action: func() {
			log.Println("Quit clicked")
			cl.Quit()
		}},
	)
	menuKeys := cl.Menu.GetInputCapture()
	cl.Menu.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			cl.Quit()
			return nil
		}
		return menuKeys(event)
	})

	cl.Board = gui.NewBoardView(config.Theme).
		SetSelectedFunc(cl.onSelect).
		SetKeyFunc('u', cl.undo).
		SetKeyFunc('r', cl.restart).
		SetKeyFunc('q', cl.ShowMenu)
	cl.Board.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			cl.ShowMenu()
			return nil
		}
		return event
	})

	cl.Pages.
		AddPage(pageMenu, cl.Menu, true, true).
		AddPage(pageGame, cl.Board, true, false)
	app.SetRoot(cl.Pages, true).EnableMouse(config.Mouse)
	return cl
}

// Run blocks until the application stops
func (cl *Client) Run() error {
	go cl.frameLoop()
	defer cl.stop()
	return cl.App.Run()
}

// frameLoop redraws the game at a fixed rate so the clocks keep moving
func (cl *Client) frameLoop() {
	tick := time.NewTicker(time.Second / time.Duration(cl.config.FrameRate))
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			// at most one frame waits in the queue, nothing drains it once
			// the app has stopped
			if !atomic.CompareAndSwapInt32(&cl.framePending, 0, 1) {
				continue
			}
			cl.App.QueueUpdateDraw(func() {
				atomic.StoreInt32(&cl.framePending, 0)
				cl.mu.Lock()
				defer cl.mu.Unlock()
				if cl.inGame {
					cl.refresh()
				}
			})
		case <-cl.done:
			return
		}
	}
}

func (cl *Client) stop() {
	cl.stopOnce.Do(func() { close(cl.done) })
}

// StartGame sets up a fresh match and shows the board
func (cl *Client) StartGame() error {
	match, err := NewMatch(cl.config.FEN, cl.config.WhiteName, cl.config.BlackName)
	if err != nil {
		return err
	}

	cl.mu.Lock()
	if cl.match != nil {
		cl.match.Close()
	}
	cl.match = match
	cl.matchID++
	cl.inGame = true
	cl.refresh()
	cl.mu.Unlock()

	match.Start()
	cl.Pages.SwitchToPage(pageGame)
	cl.App.SetFocus(cl.Board)
	return nil
}

// ShowMenu leaves the current match and returns to the title screen
func (cl *Client) ShowMenu() {
	cl.mu.Lock()
	if cl.match != nil {
		cl.match.Close()
	}
	cl.match = nil
	cl.inGame = false
	cl.mu.Unlock()

	cl.Pages.SwitchToPage(pageMenu)
	cl.Menu.Select(0)
}

func (cl *Client) Quit() {
	cl.mu.Lock()
	if cl.match != nil {
		cl.match.Close()
	}
	cl.mu.Unlock()
	cl.stop()
	cl.App.Stop()
}

// Match returns the match in progress, nil on the menu
func (cl *Client) Match() *Match {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.match
}

func (cl *Client) refresh() {
	if cl.match != nil {
		cl.Board.SetState(cl.match.State())
	}
}

func (cl *Client) onSelect(sq chess.Square) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.match == nil {
		return
	}
	if cl.match.Select(sq) && cl.match.Over() {
		log.Printf("Game over: %s", cl.match.Board.Result())
		cl.scheduleMenu(cl.matchID)
	}
	cl.refresh()
}

func (cl *Client) undo() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.match == nil {
		return
	}
	if err := cl.match.Undo(); err != nil {
		log.Printf("undo: %v", err)
	}
	cl.refresh()
}

// restart plays the current match again from its first position
func (cl *Client) restart() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.match == nil {
		return
	}
	cl.match.Restart()
	cl.matchID++
	cl.refresh()
}

// scheduleMenu returns to the menu once the banner has been shown
func (cl *Client) scheduleMenu(id int) {
	time.AfterFunc(cl.config.BannerTime, func() {
		cl.App.QueueUpdateDraw(func() {
			cl.returnToMenu(id)
		})
	})
}

// returnToMenu shows the menu if match id is still the one being played
func (cl *Client) returnToMenu(id int) {
	cl.mu.Lock()
	current := cl.matchID
	cl.mu.Unlock()
	if current == id {
		cl.ShowMenu()
	}
}
