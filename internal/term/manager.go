package term

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/xde-mcp/zgsm-sub005/internal/vscode"
)

// Manager owns the live PTY sessions of one host process.
type Manager struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	defaultShell string
	workDir      string
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	DefaultShell string
	WorkDir      string
}

// NewManager constructs an empty Manager.
func NewManager(cfg ManagerConfig) *Manager {
	return &Manager{
		sessions:     make(map[string]*Session),
		defaultShell: cfg.DefaultShell,
		workDir:      cfg.WorkDir,
	}
}

// CreateSession spawns a new PTY session.
func (m *Manager) CreateSession(shell, workDir string, rows, cols int) (*Session, error) {
	if shell == "" {
		shell = m.defaultShell
	}
	if workDir == "" {
		workDir = m.workDir
	}
	id := uuid.NewString()

	session, err := NewSession(SessionConfig{
		ID:      id,
		Shell:   shell,
		Rows:    rows,
		Cols:    cols,
		WorkDir: workDir,
		OnClose: func() { m.remove(id) },
	})
	if err != nil {
		return nil, fmt.Errorf("create pty session: %w", err)
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()
	return session, nil
}

// Session returns the session with the given id.
func (m *Manager) Session(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll ends every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// TerminalFactory adapts the manager to the window façade so
// CreateTerminal hands out live shells instead of stubs.
func (m *Manager) TerminalFactory() vscode.TerminalFactory {
	return func(opts vscode.TerminalOptions) vscode.Terminal {
		var env []string
		for k, v := range opts.Env {
			env = append(env, k+"="+v)
		}
		session, err := NewSession(SessionConfig{
			ID:      uuid.NewString(),
			Shell:   opts.ShellPath,
			WorkDir: opts.CWD,
			Env:     env,
		})
		if err != nil {
			// Fall back to an inert terminal rather than failing creation;
			// extensions treat terminal creation as infallible.
			return &failedTerminal{name: opts.Name}
		}
		m.mu.Lock()
		m.sessions[session.ID] = session
		m.mu.Unlock()
		return &ptyTerminal{name: opts.Name, session: session, manager: m}
	}
}

// ptyTerminal satisfies the shim's Terminal interface over a live session.
type ptyTerminal struct {
	name    string
	session *Session
	manager *Manager
}

func (t *ptyTerminal) Name() string { return t.name }

func (t *ptyTerminal) SendText(text string, addNewLine bool) {
	if addNewLine {
		text += "\n"
	}
	t.session.Write([]byte(text))
}

func (t *ptyTerminal) Show() {}
func (t *ptyTerminal) Hide() {}

func (t *ptyTerminal) Dispose() {
	t.manager.remove(t.session.ID)
	t.session.Close()
}

// failedTerminal stands in when the PTY could not be spawned.
type failedTerminal struct {
	name string
}

func (t *failedTerminal) Name() string          { return t.name }
func (t *failedTerminal) SendText(string, bool) {}
func (t *failedTerminal) Show()                 {}
func (t *failedTerminal) Hide()                 {}
func (t *failedTerminal) Dispose()              {}
