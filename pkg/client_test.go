package pkg

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, fen string) *Client {
	t.Helper()
	config := DefaultConfig()
	config.FEN = fen
	config.BannerTime = time.Hour
	cl := NewClient(config)
	t.Cleanup(cl.Quit)
	return cl
}

func frontPage(cl *Client) string {
	name, _ := cl.Pages.GetFrontPage()
	return name
}

func TestClientStartsOnMenu(t *testing.T) {
	cl := newTestClient(t, "")
	assert.Equal(t, pageMenu, frontPage(cl))
	assert.Nil(t, cl.Match())
	require.Len(t, cl.Menu.Buttons, 2)
	assert.Equal(t, ActionStart.String(), cl.Menu.Buttons[0].GetLabel())
	assert.Equal(t, ActionQuit.String(), cl.Menu.Buttons[1].GetLabel())
}

func TestClientPlaysAndReturnsToMenu(t *testing.T) {
	cl := newTestClient(t, "")
	require.NoError(t, cl.StartGame())
	assert.Equal(t, pageGame, frontPage(cl))
	require.NotNil(t, cl.Match())

	cl.onSelect(chess.E2)
	cl.onSelect(chess.E4)
	assert.Equal(t, chess.Black, cl.Match().Board.Turn())

	cl.undo()
	assert.Equal(t, chess.White, cl.Match().Board.Turn())

	cl.ShowMenu()
	assert.Equal(t, pageMenu, frontPage(cl))
	assert.Nil(t, cl.Match())

	cl.onSelect(chess.E2)
	cl.undo()
}

func TestClientGameOver(t *testing.T) {
	cl := newTestClient(t, "8/K7/8/8/8/8/7k/8 w - - 0 1")
	require.NoError(t, cl.StartGame())
	cl.onSelect(chess.A7)
	cl.onSelect(chess.A8)

	m := cl.Match()
	require.NotNil(t, m)
	assert.True(t, m.Over())
	assert.Equal(t, "White wins!", m.State().Banner)
}

func TestClientRejectsBadFEN(t *testing.T) {
	cl := newTestClient(t, "bogus")
	assert.Error(t, cl.StartGame())
	assert.Equal(t, pageMenu, frontPage(cl))
}

func TestClientMenuKeys(t *testing.T) {
	cl := newTestClient(t, "")
	keys := cl.Menu.GetInputCapture()
	require.NotNil(t, keys)

	assert.Nil(t, keys(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
	assert.Equal(t, 1, cl.Menu.Selected())
	assert.Nil(t, keys(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone)))
	assert.Equal(t, 0, cl.Menu.Selected())

	event := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	assert.Equal(t, event, keys(event))

	assert.Nil(t, keys(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	select {
	case <-cl.done:
	default:
		t.Fatal("escape on the menu did not quit")
	}
}

func TestClientRestart(t *testing.T) {
	fen := "8/K7/8/8/8/8/7k/8 w - - 0 1"
	cl := newTestClient(t, fen)
	require.NoError(t, cl.StartGame())
	cl.onSelect(chess.A7)
	cl.onSelect(chess.A8)
	require.True(t, cl.Match().Over())
	id := cl.matchID

	cl.restart()
	assert.False(t, cl.Match().Over())
	assert.Equal(t, fen, cl.Match().Board.FEN())

	cl.returnToMenu(id)
	assert.Equal(t, pageGame, frontPage(cl))
	assert.NotNil(t, cl.Match())
}

func TestClientStaleBannerTimer(t *testing.T) {
	cl := newTestClient(t, "")
	require.NoError(t, cl.StartGame())
	old := cl.matchID
	require.NoError(t, cl.StartGame())

	cl.returnToMenu(old)
	assert.Equal(t, pageGame, frontPage(cl))
	assert.NotNil(t, cl.Match())

	cl.returnToMenu(cl.matchID)
	assert.Equal(t, pageMenu, frontPage(cl))
	assert.Nil(t, cl.Match())
}

func TestClientReturnsToMenuAfterBanner(t *testing.T) {
	config := DefaultConfig()
	config.FEN = "8/K7/8/8/8/8/7k/8 w - - 0 1"
	config.BannerTime = 50 * time.Millisecond
	cl := NewClient(config)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 30)
	cl.App.SetScreen(screen)

	require.NoError(t, cl.StartGame())
	cl.onSelect(chess.A7)
	cl.onSelect(chess.A8)
	require.True(t, cl.Match().Over())

	errc := make(chan error, 1)
	go func() { errc <- cl.Run() }()

	assert.Eventually(t, func() bool { return cl.Match() == nil }, 2*time.Second, 10*time.Millisecond)
	cl.Quit()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("client did not stop")
	}
	assert.Equal(t, pageMenu, frontPage(cl))
}

func TestFrameLoopStopsWhileAppIsIdle(t *testing.T) {
	config := DefaultConfig()
	config.FrameRate = 1000
	cl := NewClient(config)

	finished := make(chan struct{})
	go func() {
		cl.frameLoop()
		close(finished)
	}()
	time.Sleep(300 * time.Millisecond)
	cl.stop()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("frame loop blocked on a full update queue")
	}
}
