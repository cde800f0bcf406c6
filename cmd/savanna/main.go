package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qnkhuat/savanna/pkg"
	"github.com/qnkhuat/savanna/pkg/gui"
	"github.com/qnkhuat/savanna/pkg/variant"
)

func main() {
	logPath := flag.String("log", "./savanna.log", "path to log file")
	fen := flag.String("fen", variant.StartingFEN, "starting position")
	themeName := flag.String("theme", gui.ThemeSavanna.Name, "color theme")
	themesPath := flag.String("themes", "", "JSON file with extra themes")
	white := flag.String("white", "", "white player name")
	black := flag.String("black", "", "black player name")
	mouse := flag.Bool("mouse", true, "enable mouse input")
	banner := flag.Duration("banner", pkg.DefaultBannerTime, "how long the result stays on screen")
	flag.Parse()

	if !pkg.IsTerminal(os.Stdout) {
		fmt.Fprintln(os.Stderr, "savanna: non-interactive terminals are not supported")
		os.Exit(1)
	}

	pkg.InitLog(*logPath, "CLIENT: ")
	rand.Seed(time.Now().UnixNano())

	var themes []gui.ThemeHex
	if *themesPath != "" {
		var err error
		themes, err = gui.LoadThemes(*themesPath)
		if err != nil {
			log.Fatalf("failed to load themes: %v", err)
		}
	}
	theme, err := gui.ImportThemes(*themeName, themes)
	if err != nil {
		log.Fatalf("failed to pick theme: %v", err)
	}
	if _, err := variant.NewBoard(*fen); err != nil {
		log.Fatalf("bad starting position: %v", err)
	}

	config := pkg.DefaultConfig()
	config.FEN = *fen
	config.Theme = theme
	config.WhiteName = *white
	config.BlackName = *black
	config.Mouse = *mouse
	config.BannerTime = *banner

	log.Println("New Client")
	cl := pkg.NewClient(config)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() { // Down when receive killed signal
		<-sigc
		cl.Quit()
	}()

	if err := cl.Run(); err != nil {
		log.Fatalf("failed to run application: %v", err)
	}
	log.Println("Client exited")
}
