package vscode

import (
	"log/slog"
	"sync"
)

// MessageSeverity classifies user-facing notifications.
type MessageSeverity int

const (
	MessageInfo MessageSeverity = iota
	MessageWarning
	MessageError
)

// ShownMessage is one notification the window façade surfaced.
type ShownMessage struct {
	Severity MessageSeverity
	Message  string
	Items    []string
}

// WindowAPI reproduces the window namespace: notifications, status bar,
// output channels, terminals, decorations, and webview view registration.
// Only registerWebviewViewProvider is functionally load-bearing in a
// headless host; the rest are lightweight local objects.
type WindowAPI struct {
	registrar WebviewRegistrar

	mu          sync.Mutex
	termFactory TerminalFactory
	messages    []ShownMessage
	onDidShow   *Emitter[ShownMessage]
}

// NewWindowAPI constructs a WindowAPI bound to a provider registrar.
func NewWindowAPI(registrar WebviewRegistrar) *WindowAPI {
	return &WindowAPI{
		registrar: registrar,
		onDidShow: NewEmitter[ShownMessage](),
	}
}

// RegisterWebviewViewProvider records the provider under viewID in the
// extension host's registry. The returned disposable removes it. This is
// the single integration point between the window façade and the host
// bridge.
func (w *WindowAPI) RegisterWebviewViewProvider(viewID string, provider WebviewViewProvider) Disposable {
	w.registrar.RegisterWebviewProvider(viewID, provider)
	return DisposeFunc(func() {
		w.registrar.UnregisterWebviewProvider(viewID)
	})
}

// CreateStatusBarItem returns a local status bar stand-in.
func (w *WindowAPI) CreateStatusBarItem(alignment StatusBarAlignment, priority int) *StatusBarItem {
	return &StatusBarItem{Alignment: alignment, Priority: priority}
}

// CreateOutputChannel returns a buffering output channel.
func (w *WindowAPI) CreateOutputChannel(name string) *OutputChannel {
	return &OutputChannel{name: name}
}

// SetTerminalFactory installs a real terminal backend. When unset,
// CreateTerminal returns inert stubs.
func (w *WindowAPI) SetTerminalFactory(f TerminalFactory) {
	w.mu.Lock()
	w.termFactory = f
	w.mu.Unlock()
}

// CreateTerminal returns a terminal from the installed factory, or an
// inert stub when none is installed.
func (w *WindowAPI) CreateTerminal(opts TerminalOptions) Terminal {
	w.mu.Lock()
	factory := w.termFactory
	w.mu.Unlock()
	if factory != nil {
		return factory(opts)
	}
	return &stubTerminal{name: opts.Name}
}

// CreateTextEditorDecorationType returns a token identifying a decoration
// style. Headless hosts render nothing; disposal is a no-op beyond
// invalidating the token.
func (w *WindowAPI) CreateTextEditorDecorationType() Disposable {
	return DisposeFunc(func() {})
}

// ShowInformationMessage surfaces an informational notification. The first
// item is returned as the "selected" action, since no UI can answer.
func (w *WindowAPI) ShowInformationMessage(message string, items ...string) string {
	return w.show(MessageInfo, message, items)
}

// ShowWarningMessage surfaces a warning notification.
func (w *WindowAPI) ShowWarningMessage(message string, items ...string) string {
	return w.show(MessageWarning, message, items)
}

// ShowErrorMessage surfaces an error notification.
func (w *WindowAPI) ShowErrorMessage(message string, items ...string) string {
	return w.show(MessageError, message, items)
}

// Messages returns the notifications shown so far.
func (w *WindowAPI) Messages() []ShownMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]ShownMessage(nil), w.messages...)
}

// OnDidShowMessage registers an observer for surfaced notifications, so an
// attached front-end can render them.
func (w *WindowAPI) OnDidShowMessage(listener func(ShownMessage), stores ...*DisposableStore) Disposable {
	return w.onDidShow.Event(listener, stores...)
}

func (w *WindowAPI) show(severity MessageSeverity, message string, items []string) string {
	shown := ShownMessage{Severity: severity, Message: message, Items: items}
	w.mu.Lock()
	w.messages = append(w.messages, shown)
	w.mu.Unlock()

	switch severity {
	case MessageError:
		slog.Error("extension message", "message", message)
	case MessageWarning:
		slog.Warn("extension message", "message", message)
	default:
		slog.Info("extension message", "message", message)
	}
	w.onDidShow.Fire(shown)

	if len(items) > 0 {
		return items[0]
	}
	return ""
}
