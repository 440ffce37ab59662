package vscode

import (
	"log/slog"
	"strings"
	"sync"
)

// OutputChannel collects extension log lines. A headless host has no panel
// to show, so lines are buffered for inspection and mirrored to slog at
// debug level.
type OutputChannel struct {
	name string

	mu       sync.Mutex
	pending  strings.Builder
	lines    []string
	disposed bool
}

// Name returns the channel name.
func (o *OutputChannel) Name() string { return o.name }

// Append adds text without a line break.
func (o *OutputChannel) Append(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return
	}
	o.pending.WriteString(text)
}

// AppendLine completes the current line and records it.
func (o *OutputChannel) AppendLine(text string) {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		return
	}
	o.pending.WriteString(text)
	line := o.pending.String()
	o.pending.Reset()
	o.lines = append(o.lines, line)
	o.mu.Unlock()
	slog.Debug("output channel", "channel", o.name, "line", line)
}

// Lines returns a copy of the recorded lines.
func (o *OutputChannel) Lines() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.lines...)
}

// Clear discards all recorded output.
func (o *OutputChannel) Clear() {
	o.mu.Lock()
	o.lines = nil
	o.pending.Reset()
	o.mu.Unlock()
}

// Show is inert in a headless host.
func (o *OutputChannel) Show() {}

// Hide is inert in a headless host.
func (o *OutputChannel) Hide() {}

// Dispose stops the channel from accepting output. Idempotent.
func (o *OutputChannel) Dispose() {
	o.mu.Lock()
	o.disposed = true
	o.lines = nil
	o.pending.Reset()
	o.mu.Unlock()
}
