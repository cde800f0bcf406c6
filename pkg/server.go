package pkg

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"os/exec"
	"time"

	"github.com/creack/pty"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
)

type ServerConfig struct {
	Addr        string
	HostKeyFile string        // generated at start when empty
	Binary      string        // game binary started for each session
	Args        []string      // extra arguments for Binary
	IdleTimeout time.Duration
}

// Server hands every SSH session its own game running on a pseudo terminal
type Server struct {
	*ssh.Server
	config ServerConfig
}

func NewServer(config ServerConfig) (*Server, error) {
	if config.Addr == "" {
		config.Addr = SshPort
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = ServerIdleTimeout
	}
	if config.Binary == "" {
		return nil, fmt.Errorf("server: no game binary configured")
	}

	server := &Server{config: config}
	s := &ssh.Server{
		Addr:        config.Addr,
		IdleTimeout: config.IdleTimeout,
		Handler:     server.sshHandle,
	}

	if config.HostKeyFile != "" {
		if err := s.SetOption(ssh.HostKeyFile(config.HostKeyFile)); err != nil {
			return nil, fmt.Errorf("server: host key %s: %w", config.HostKeyFile, err)
		}
	} else {
		signer, err := NewHostKey()
		if err != nil {
			return nil, err
		}
		s.AddHostKey(signer)
	}

	server.Server = s
	return server, nil
}

// NewHostKey generates an ephemeral ed25519 host key
func NewHostKey() (ssh.Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("server: generate host key: %w", err)
	}
	signer, err := gossh.NewSignerFromKey(priv)
	if err != nil {
		return nil, fmt.Errorf("server: host key signer: %w", err)
	}
	return signer, nil
}

// SessionName gives a session a readable name for the logs
func SessionName(user string) string {
	return fmt.Sprintf("%s@%s", user, petname.Generate(2, "-"))
}

// gameCommand builds the command run for one session
func (s *Server) gameCommand(ctx context.Context, sess ssh.Session, term string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, s.config.Binary, s.config.Args...)
	cmd.Env = append(sess.Environ(), fmt.Sprintf("TERM=%s", term))
	return cmd
}

func (s *Server) sshHandle(sess ssh.Session) {
	name := SessionName(sess.User())
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		log.Printf("%s: rejected, no pty", name)
		sess.Exit(1)
		return
	}
	log.Printf("%s: connected from %s", name, sess.RemoteAddr())

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := s.gameCommand(cmdCtx, sess, ptyReq.Term)
	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(ptyReq.Window.Height),
		Cols: uint16(ptyReq.Window.Width),
	})
	if err != nil {
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		log.Printf("%s: pty: %v", name, err)
		sess.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			if err := pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)}); err != nil {
				log.Printf("%s: resize: %v", name, err)
			}
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	f.Close()
	if err := cmd.Wait(); err != nil {
		log.Printf("%s: game exited: %v", name, err)
	}
	log.Printf("%s: disconnected", name)
}
