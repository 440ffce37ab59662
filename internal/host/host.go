// Package host owns the lifecycle of a headlessly loaded extension: it
// assembles the ExtensionContext and API graph, holds the webview provider
// registry, and relays opaque messages between the extension and whatever
// front-end attaches.
package host

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xde-mcp/zgsm-sub005/internal/vscode"
)

// State is the extension-instance lifecycle.
type State int

const (
	StateUnloaded State = iota
	StateActivating
	StateActive
	StateDisposing
	StateDisposed
)

// String renders the state for logs.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateActivating:
		return "activating"
	case StateActive:
		return "active"
	case StateDisposing:
		return "disposing"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// The two relay channels. The bridge never interprets payloads; the names
// record direction only.
const (
	// ChannelWebviewMessage carries front-end messages toward the extension.
	ChannelWebviewMessage = "webviewMessage"
	// ChannelExtensionWebviewMessage carries extension messages toward the
	// front-end.
	ChannelExtensionWebviewMessage = "extensionWebviewMessage"
)

// ErrDisposed is returned by operations attempted after Dispose.
var ErrDisposed = errors.New("extension host disposed")

// TaskRecorder persists task-run outcomes. Implementations must tolerate
// being called from RunTask's goroutine.
type TaskRecorder interface {
	TaskStarted(id, prompt string) error
	TaskFinished(id, outcome string) error
}

// Options configures a Host.
type Options struct {
	ExtensionPath string
	WorkspacePath string
	// StorageDir overrides the default storage root.
	StorageDir string
	Mode       vscode.ExtensionMode
	// ViewID is the webview view the attached front-end renders; its
	// provider registration is what readiness waits for.
	ViewID  string
	AppName string
	// Recorder, when set, receives task-run lifecycle callbacks.
	Recorder TaskRecorder
	// InstallGlobal publishes the host through the process-global handle.
	// Only the process-entry boundary should set this; everything else
	// receives the host by injection.
	InstallGlobal bool
}

// Host is the extension-host bridge. One Host owns exactly one extension
// instance and its ExtensionContext.
type Host struct {
	opts Options

	mu              sync.Mutex
	state           State
	providers       map[string]vscode.WebviewViewProvider
	attachRequested bool
	ready           bool
	view            *webviewView

	readyCh    chan struct{}
	disposedCh chan struct{}

	emitters map[string]*vscode.Emitter[json.RawMessage]

	ectx    *vscode.ExtensionContext
	api     *vscode.API
	ext     Extension
	exports any
}

// New assembles a Host: storage-backed ExtensionContext plus the API graph
// with this host injected as the webview registrar.
func New(opts Options) (*Host, error) {
	h := &Host{
		opts:       opts,
		state:      StateUnloaded,
		providers:  make(map[string]vscode.WebviewViewProvider),
		readyCh:    make(chan struct{}),
		disposedCh: make(chan struct{}),
		emitters: map[string]*vscode.Emitter[json.RawMessage]{
			ChannelWebviewMessage:          vscode.NewEmitter[json.RawMessage](),
			ChannelExtensionWebviewMessage: vscode.NewEmitter[json.RawMessage](),
		},
	}

	ectx, err := vscode.NewExtensionContext(vscode.ExtensionContextOptions{
		ExtensionPath: opts.ExtensionPath,
		WorkspacePath: opts.WorkspacePath,
		StorageDir:    opts.StorageDir,
		Mode:          opts.Mode,
	})
	if err != nil {
		return nil, fmt.Errorf("assemble extension context: %w", err)
	}
	h.ectx = ectx
	h.api = vscode.NewAPI(vscode.APIOptions{
		Registrar:     h,
		WorkspacePath: opts.WorkspacePath,
		AppName:       opts.AppName,
		GlobalState:   ectx.GlobalState,
	})

	if opts.InstallGlobal {
		SetCurrent(h)
	}
	return h, nil
}

// Context returns the host's ExtensionContext.
func (h *Host) Context() *vscode.ExtensionContext { return h.ectx }

// API returns the capability graph handed to the extension.
func (h *Host) API() *vscode.API { return h.api }

// State returns the current lifecycle state.
func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Exports returns whatever the extension's Activate returned.
func (h *Host) Exports() any {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.exports
}

// Activate loads the extension into the host and calls its entry point.
// A failed activation propagates to the caller and leaves the host
// disposable.
func (h *Host) Activate(ext Extension) error {
	h.mu.Lock()
	if h.state >= StateDisposing {
		h.mu.Unlock()
		return ErrDisposed
	}
	if h.state != StateUnloaded {
		h.mu.Unlock()
		return fmt.Errorf("activate in state %s", h.state)
	}
	h.state = StateActivating
	h.ext = ext
	h.mu.Unlock()

	exports, err := ext.Activate(h.ectx, h.api)
	if err != nil {
		return fmt.Errorf("extension activation: %w", err)
	}

	h.mu.Lock()
	if h.state == StateActivating {
		h.state = StateActive
		h.exports = exports
	}
	h.mu.Unlock()
	slog.Info("extension activated", "extension", h.opts.ExtensionPath)
	return nil
}

// RegisterWebviewProvider records provider under viewID. Re-registration
// replaces the previous entry (last-writer-wins). If a front-end already
// asked to attach, registration completes the pending resolve.
func (h *Host) RegisterWebviewProvider(viewID string, provider vscode.WebviewViewProvider) {
	h.mu.Lock()
	if h.state >= StateDisposing {
		h.mu.Unlock()
		return
	}
	h.providers[viewID] = provider
	pending := h.attachRequested && !h.ready && viewID == h.opts.ViewID
	h.mu.Unlock()

	if pending {
		h.resolveMainView(provider)
	}
}

// UnregisterWebviewProvider removes the provider for viewID.
func (h *Host) UnregisterWebviewProvider(viewID string) {
	h.mu.Lock()
	delete(h.providers, viewID)
	h.mu.Unlock()
}

// Provider returns the registered provider for viewID.
func (h *Host) Provider(viewID string) (vscode.WebviewViewProvider, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.providers[viewID]
	return p, ok
}

// ProviderCount returns the number of registered providers.
func (h *Host) ProviderCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.providers)
}

// AttachUI signals that a front-end has connected and wants the main view
// resolved. Tolerates the provider arriving later: the resolve then
// happens at registration time.
func (h *Host) AttachUI() error {
	h.mu.Lock()
	if h.state >= StateDisposing {
		h.mu.Unlock()
		return ErrDisposed
	}
	if h.ready {
		h.mu.Unlock()
		return nil
	}
	h.attachRequested = true
	provider, ok := h.providers[h.opts.ViewID]
	h.mu.Unlock()

	if ok {
		h.resolveMainView(provider)
	}
	return nil
}

// resolveMainView hands the provider a webview wired to the relay, then
// marks readiness.
func (h *Host) resolveMainView(provider vscode.WebviewViewProvider) {
	h.mu.Lock()
	if h.ready || h.state >= StateDisposing {
		h.mu.Unlock()
		return
	}
	view := newWebviewView(h, h.opts.ViewID)
	h.view = view
	h.mu.Unlock()

	// The resolve token cancels when the view is torn down, not when this
	// call returns; a successful resolve must not fire cancellation at
	// listeners the provider just registered.
	src := vscode.NewCancellationTokenSource()
	view.OnDidDispose(func() { src.Dispose() })
	if err := provider.ResolveWebviewView(view, src.Token()); err != nil {
		slog.Error("resolveWebviewView failed", "view", h.opts.ViewID, "error", err)
		src.Dispose()
		return
	}
	h.MarkWebviewReady()
}

// InInitialSetup reports whether no front-end has completed attachment
// yet. Callers sending time-sensitive messages must wait until this turns
// false, since the relay drops messages with no listener.
func (h *Host) InInitialSetup() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.ready
}

// MarkWebviewReady transitions InitialSetup to WebviewReady. Idempotent;
// the transition is one-directional.
func (h *Host) MarkWebviewReady() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ready || h.state >= StateDisposing {
		return
	}
	h.ready = true
	close(h.readyCh)
}

// Ready returns a channel closed once the webview is ready.
func (h *Host) Ready() <-chan struct{} { return h.readyCh }

// Done returns a channel closed once the host is disposed.
func (h *Host) Done() <-chan struct{} { return h.disposedCh }

// Emit delivers message to every listener of channel, synchronously and
// fire-and-forget. Messages on unknown channels are dropped.
func (h *Host) Emit(channel string, message json.RawMessage) {
	emitter, ok := h.emitters[channel]
	if !ok {
		slog.Debug("emit on unknown channel", "channel", channel)
		return
	}
	emitter.Fire(message)
}

// On registers a listener for channel. Listeners on unknown channels get a
// no-op registration.
func (h *Host) On(channel string, listener func(json.RawMessage)) vscode.Disposable {
	emitter, ok := h.emitters[channel]
	if !ok {
		return vscode.DisposeFunc(nil)
	}
	return emitter.Event(listener)
}

// Dispose tears the host down: providers unregistered, context
// subscriptions disposed, global handle cleared. Idempotent and safe even
// when activation never completed.
func (h *Host) Dispose() error {
	h.mu.Lock()
	if h.state >= StateDisposing {
		h.mu.Unlock()
		return nil
	}
	h.state = StateDisposing
	close(h.disposedCh)
	h.providers = make(map[string]vscode.WebviewViewProvider)
	view := h.view
	h.view = nil
	ext := h.ext
	h.mu.Unlock()

	if view != nil {
		view.markDisposed()
	}
	if ext != nil {
		if d, ok := ext.(Deactivator); ok {
			if err := d.Deactivate(); err != nil {
				slog.Warn("extension deactivate failed", "error", err)
			}
		}
	}
	h.ectx.Dispose()
	h.api.Dispose()
	for _, emitter := range h.emitters {
		emitter.Dispose()
	}
	ClearCurrent(h)

	h.mu.Lock()
	h.state = StateDisposed
	h.mu.Unlock()
	slog.Info("extension host disposed", "extension", h.opts.ExtensionPath)
	return nil
}
