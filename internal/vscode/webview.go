package vscode

import "encoding/json"

// Webview is the message endpoint an extension talks to once its view has
// been resolved. Payloads are opaque JSON; the shim never interprets them.
type Webview interface {
	// PostMessage sends a message toward the attached front-end.
	PostMessage(message json.RawMessage) error
	// OnDidReceiveMessage registers a listener for messages arriving from
	// the front-end.
	OnDidReceiveMessage(listener func(json.RawMessage), stores ...*DisposableStore) Disposable
	// HTML returns the markup last set on the view.
	HTML() string
	// SetHTML records the markup a rendering front-end would display.
	SetHTML(html string)
}

// WebviewView is the container handed to a WebviewViewProvider when a
// front-end attaches.
type WebviewView interface {
	ViewType() string
	Webview() Webview
	Visible() bool
	Title() string
	SetTitle(title string)
	Show(preserveFocus bool)
	OnDidDispose(listener func(), stores ...*DisposableStore) Disposable
}

// WebviewViewProvider is implemented by extensions that contribute a view.
// ResolveWebviewView is called once a front-end attaches; the provider
// wires its message handlers to the view's webview.
type WebviewViewProvider interface {
	ResolveWebviewView(view WebviewView, token CancellationToken) error
}

// WebviewRegistrar is the slice of the extension host the window façade
// needs: the rendezvous registry between provider registration and view
// resolution.
type WebviewRegistrar interface {
	RegisterWebviewProvider(viewID string, provider WebviewViewProvider)
	UnregisterWebviewProvider(viewID string)
}
