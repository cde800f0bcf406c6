package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/gliderlabs/ssh"
	"github.com/qnkhuat/savanna/pkg"
)

func main() {
	addr := flag.String("addr", pkg.SshPort, "address to listen on")
	hostKey := flag.String("hostkey", "", "host key file, an ephemeral key is generated when empty")
	bin := flag.String("bin", "", "savanna binary started for each session (default: next to this server)")
	logPath := flag.String("log", "./savanna-server.log", "path to log file")
	idle := flag.Duration("idle", pkg.ServerIdleTimeout, "disconnect idle sessions after")
	flag.Parse()

	if *bin == "" {
		exe, err := os.Executable()
		if err != nil {
			log.Fatalf("failed to locate executable: %v", err)
		}
		*bin = filepath.Join(filepath.Dir(exe), "savanna")
	}

	pkg.InitLog(*logPath, "SERVER: ")
	s, err := pkg.NewServer(pkg.ServerConfig{
		Addr:        *addr,
		HostKeyFile: *hostKey,
		Binary:      *bin,
		Args:        []string{"-log", *logPath},
		IdleTimeout: *idle,
	})
	if err != nil {
		color.Red("savanna-server: %v", err)
		log.Fatal(err)
	}

	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		<-sigc
		log.Println("Server stopping")
		s.Close()
	}()

	color.Green("Survive the Savanna")
	color.Cyan("listening on %s, serving %s", *addr, *bin)
	log.Printf("Listening at %s", *addr)
	if err := s.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
		color.Red("savanna-server: %v", err)
		log.Fatal(err)
	}
}
