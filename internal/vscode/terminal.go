package vscode

import "sync"

// TerminalOptions configures terminal creation.
type TerminalOptions struct {
	Name      string
	ShellPath string
	CWD       string
	Env       map[string]string
}

// Terminal is the narrow terminal surface extensions use. The default
// implementation is an inert stand-in; a real backend can be installed on
// the WindowAPI via SetTerminalFactory.
type Terminal interface {
	Name() string
	SendText(text string, addNewLine bool)
	Show()
	Hide()
	Dispose()
}

// TerminalFactory produces terminals for WindowAPI.CreateTerminal.
type TerminalFactory func(opts TerminalOptions) Terminal

// stubTerminal records state but spawns no process. A headless host has no
// terminal UI, so SendText and Show are deliberately inert.
type stubTerminal struct {
	name string

	mu       sync.Mutex
	sent     []string
	disposed bool
}

func (t *stubTerminal) Name() string { return t.name }

func (t *stubTerminal) SendText(text string, addNewLine bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return
	}
	if addNewLine {
		text += "\n"
	}
	t.sent = append(t.sent, text)
}

func (t *stubTerminal) Show() {}
func (t *stubTerminal) Hide() {}

func (t *stubTerminal) Dispose() {
	t.mu.Lock()
	t.disposed = true
	t.sent = nil
	t.mu.Unlock()
}
