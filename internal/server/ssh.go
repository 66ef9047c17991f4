package server

import (
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"

	"rogue-view/internal/game"
	"rogue-view/internal/logger"
	"rogue-view/internal/render"
)

// SSHServer serves interactive view sessions over SSH.
type SSHServer struct {
	world   *game.World
	addr    string
	hostKey string
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr, hostKey string, w *game.World) *SSHServer {
	return &SSHServer{
		world:   w,
		addr:    addr,
		hostKey: hostKey,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	logger.Log.WithField("addr", s.addr).Info("SSH server listening")
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	log := logger.Log.WithFields(logrus.Fields{
		"user": username,
		"addr": sess.RemoteAddr().String(),
	})

	gs, err := s.world.NewSession("")
	if err != nil {
		fmt.Fprintf(sess, "Error: %v\n", err)
		log.WithError(err).Warn("session rejected")
		return
	}

	log.WithField("map", gs.Map.Name).Info("observer connected")
	defer log.Info("observer disconnected")

	// Terminal dimensions
	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	engine := render.NewEngine(termW, termH)

	// Setup terminal
	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	actionCh := make(chan game.Action, 16)
	quitCh := make(chan struct{})

	// Goroutine: read input
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				close(quitCh)
				return
			}
			for _, action := range ParseInput(buf[:n]) {
				if action == game.ActionQuit {
					close(quitCh)
					return
				}
				select {
				case actionCh <- action:
				default:
				}
			}
		}
	}()

	drawFrame := func() {
		termMu.Lock()
		w, h := termW, termH
		termMu.Unlock()
		engine.Resize(w, h)

		ox, oy := gs.Observer.Cell().X, gs.Observer.Cell().Y
		info := render.ObserverInfo{X: ox, Y: oy, Facing: gs.Observer.Facing()}
		if view, ok := gs.Observer.View(); ok {
			info.HasView = true
			info.Radius = view.Radius
			info.Width = view.Width
		}
		io.WriteString(sess, engine.Render(gs.Map, info, gs.Visible, gs.Explored, gs.Turn))
	}

	// Turn-based loop: block for the next command, apply it, redraw.
	drawFrame()
	for {
		select {
		case <-quitCh:
			return
		case win := <-winCh:
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()
			io.WriteString(sess, render.ClearScreen())
			drawFrame()
		case action := <-actionCh:
			if !gs.Apply(action) {
				return
			}
			log.WithFields(logrus.Fields{
				"action": action.String(),
				"turn":   gs.Turn,
			}).Debug("turn applied")
			drawFrame()
		}
	}
}

// ParseInput converts raw terminal bytes into observer actions. WASD moves
// on the cardinal axes, the arrow keys rotate and translate along the
// facing angle, +/- and [/] tune the light, and q or Ctrl-C quits.
func ParseInput(data []byte) []game.Action {
	var actions []game.Action
	i := 0
	for i < len(data) {
		// Check for escape sequences (arrow keys)
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				actions = append(actions, game.ActionForward)
			case 'B':
				actions = append(actions, game.ActionBackward)
			case 'C':
				actions = append(actions, game.ActionTurnRight)
			case 'D':
				actions = append(actions, game.ActionTurnLeft)
			}
			i += 3
			continue
		}

		// Single byte inputs
		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'w', 'W':
			actions = append(actions, game.ActionMoveNorth)
		case 's', 'S':
			actions = append(actions, game.ActionMoveSouth)
		case 'a', 'A':
			actions = append(actions, game.ActionMoveWest)
		case 'd', 'D':
			actions = append(actions, game.ActionMoveEast)
		case '+', '=':
			actions = append(actions, game.ActionRadiusUp)
		case '-', '_':
			actions = append(actions, game.ActionRadiusDown)
		case ']':
			actions = append(actions, game.ActionFOVWiden)
		case '[':
			actions = append(actions, game.ActionFOVNarrow)
		case 'q', 'Q':
			actions = append(actions, game.ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, game.ActionQuit)
		}
		i += size
	}
	return actions
}
