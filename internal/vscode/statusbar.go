package vscode

import "sync"

// StatusBarAlignment mirrors the host editor's status bar sides.
type StatusBarAlignment int

const (
	StatusBarLeft StatusBarAlignment = iota + 1
	StatusBarRight
)

// StatusBarItem is a headless stand-in for a status bar entry. State is
// recorded so tests and front-ends can read it back, but nothing renders.
type StatusBarItem struct {
	Alignment StatusBarAlignment
	Priority  int

	mu       sync.Mutex
	text     string
	tooltip  string
	visible  bool
	disposed bool
}

// SetText updates the displayed text.
func (s *StatusBarItem) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Text returns the current text.
func (s *StatusBarItem) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// SetTooltip updates the hover text.
func (s *StatusBarItem) SetTooltip(tooltip string) {
	s.mu.Lock()
	s.tooltip = tooltip
	s.mu.Unlock()
}

// Show marks the item visible.
func (s *StatusBarItem) Show() {
	s.mu.Lock()
	if !s.disposed {
		s.visible = true
	}
	s.mu.Unlock()
}

// Hide marks the item hidden.
func (s *StatusBarItem) Hide() {
	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
}

// Visible reports whether the item is shown.
func (s *StatusBarItem) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Dispose hides the item permanently. Idempotent.
func (s *StatusBarItem) Dispose() {
	s.mu.Lock()
	s.visible = false
	s.disposed = true
	s.mu.Unlock()
}
