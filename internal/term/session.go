// Package term provides real PTY-backed terminal sessions for hosts that
// opt out of the default inert terminal stubs.
package term

import (
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
)

// Session is one live PTY with its shell process.
type Session struct {
	ID        string
	Cmd       *exec.Cmd
	Pty       *os.File
	CreatedAt time.Time

	mu      sync.Mutex
	rows    int
	cols    int
	closed  bool
	onClose func()
}

// SessionConfig configures a new session.
type SessionConfig struct {
	ID      string
	Shell   string
	Rows    int
	Cols    int
	Env     []string
	WorkDir string
	OnClose func()
}

// NewSession spawns a shell on a fresh PTY.
func NewSession(cfg SessionConfig) (*Session, error) {
	shell := cfg.Shell
	if shell == "" {
		shell = "/bin/bash"
	}
	rows := cfg.Rows
	if rows <= 0 {
		rows = 24
	}
	cols := cfg.Cols
	if cols <= 0 {
		cols = 80
	}

	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(), cfg.Env...)
	cmd.Env = append(cmd.Env, "TERM=xterm-256color")
	if cfg.WorkDir != "" {
		cmd.Dir = cfg.WorkDir
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:        cfg.ID,
		Cmd:       cmd,
		Pty:       ptmx,
		CreatedAt: time.Now(),
		rows:      rows,
		cols:      cols,
		onClose:   cfg.OnClose,
	}, nil
}

// Read reads shell output from the PTY.
func (s *Session) Read(p []byte) (int, error) {
	return s.Pty.Read(p)
}

// Write sends input to the shell.
func (s *Session) Write(p []byte) (int, error) {
	return s.Pty.Write(p)
}

// Resize changes the PTY window size.
func (s *Session) Resize(rows, cols int) error {
	s.mu.Lock()
	s.rows = rows
	s.cols = cols
	s.mu.Unlock()
	return pty.Setsize(s.Pty, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

// Size returns the current window size.
func (s *Session) Size() (rows, cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows, s.cols
}

// Close ends the shell process and releases the PTY. Idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	onClose := s.onClose
	s.mu.Unlock()

	if s.Cmd.Process != nil {
		s.Cmd.Process.Kill()
	}
	err := s.Pty.Close()
	if onClose != nil {
		onClose()
	}
	return err
}
