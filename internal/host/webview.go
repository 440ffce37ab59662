package host

import (
	"encoding/json"
	"sync"

	"github.com/xde-mcp/zgsm-sub005/internal/vscode"
)

// hostWebview wires a resolved view's message endpoints to the host's two
// relay channels: PostMessage feeds extensionWebviewMessage, incoming
// listeners subscribe to webviewMessage.
type hostWebview struct {
	h *Host

	mu   sync.Mutex
	html string
}

func (w *hostWebview) PostMessage(message json.RawMessage) error {
	select {
	case <-w.h.disposedCh:
		return ErrDisposed
	default:
	}
	w.h.Emit(ChannelExtensionWebviewMessage, message)
	return nil
}

func (w *hostWebview) OnDidReceiveMessage(listener func(json.RawMessage), stores ...*vscode.DisposableStore) vscode.Disposable {
	d := w.h.On(ChannelWebviewMessage, listener)
	for _, s := range stores {
		if s != nil {
			s.Add(d)
		}
	}
	return d
}

func (w *hostWebview) HTML() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.html
}

func (w *hostWebview) SetHTML(html string) {
	w.mu.Lock()
	w.html = html
	w.mu.Unlock()
}

// webviewView is the container handed to the provider for the main view.
type webviewView struct {
	viewType string
	webview  *hostWebview

	mu           sync.Mutex
	title        string
	visible      bool
	disposed     bool
	onDidDispose *vscode.Emitter[struct{}]
}

func newWebviewView(h *Host, viewType string) *webviewView {
	return &webviewView{
		viewType:     viewType,
		webview:      &hostWebview{h: h},
		visible:      true,
		onDidDispose: vscode.NewEmitter[struct{}](),
	}
}

func (v *webviewView) ViewType() string        { return v.viewType }
func (v *webviewView) Webview() vscode.Webview { return v.webview }

func (v *webviewView) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

func (v *webviewView) Title() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.title
}

func (v *webviewView) SetTitle(title string) {
	v.mu.Lock()
	v.title = title
	v.mu.Unlock()
}

func (v *webviewView) Show(preserveFocus bool) {
	v.mu.Lock()
	if !v.disposed {
		v.visible = true
	}
	v.mu.Unlock()
}

func (v *webviewView) OnDidDispose(listener func(), stores ...*vscode.DisposableStore) vscode.Disposable {
	return v.onDidDispose.Event(func(struct{}) { listener() }, stores...)
}

// markDisposed fires the dispose event once and hides the view.
func (v *webviewView) markDisposed() {
	v.mu.Lock()
	if v.disposed {
		v.mu.Unlock()
		return
	}
	v.disposed = true
	v.visible = false
	v.mu.Unlock()
	v.onDidDispose.Fire(struct{}{})
	v.onDidDispose.Dispose()
}
