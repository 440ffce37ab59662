package host

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/xde-mcp/zgsm-sub005/internal/vscode"
)

// Interpreted extensions are Go source loaded at runtime rather than
// compiled in. The source declares package ext and exports:
//
//	const ViewID = "some.view"
//	func Activate(send func(message string) error) (func(message string), error)
//
// Activate receives a send function for messages toward the front-end and
// returns the handler for messages arriving from it. Payloads cross the
// interpreter boundary as JSON text to keep the contract to plain
// signatures. Only stdlib imports are available inside the interpreter.
type activateFunc func(func(string) error) (func(string), error)

// LoadInterpreted reads .go source from path (a file or a directory of
// files) and wraps it as an Extension.
func LoadInterpreted(path string) (Extension, error) {
	sources, err := readSources(path)
	if err != nil {
		return nil, err
	}
	return &interpExtension{path: path, sources: sources}, nil
}

type interpExtension struct {
	path    string
	sources []string
}

// Activate evaluates the source, resolves the exported symbols, and
// registers a provider for the declared view that bridges the send/receive
// functions to the resolved webview.
func (e *interpExtension) Activate(ctx *vscode.ExtensionContext, api *vscode.API) (any, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("load interpreter stdlib: %w", err)
	}
	for _, src := range e.sources {
		if _, err := i.Eval(src); err != nil {
			return nil, fmt.Errorf("evaluate extension source %s: %w", e.path, err)
		}
	}

	viewIDv, err := i.Eval("ext.ViewID")
	if err != nil {
		return nil, fmt.Errorf("extension %s: missing ViewID: %w", e.path, err)
	}
	viewID, ok := viewIDv.Interface().(string)
	if !ok || viewID == "" {
		return nil, fmt.Errorf("extension %s: ViewID must be a non-empty string", e.path)
	}

	activatev, err := i.Eval("ext.Activate")
	if err != nil {
		return nil, fmt.Errorf("extension %s: missing Activate: %w", e.path, err)
	}
	activate, ok := activatev.Interface().(func(func(string) error) (func(string), error))
	if !ok {
		return nil, fmt.Errorf("extension %s: Activate has wrong signature", e.path)
	}

	provider := &interpProvider{activate: activateFunc(activate)}
	ctx.Subscribe(api.Window.RegisterWebviewViewProvider(viewID, provider))
	return map[string]string{"viewId": viewID}, nil
}

// interpProvider bridges the interpreter-side functions to a webview.
type interpProvider struct {
	activate activateFunc
}

func (p *interpProvider) ResolveWebviewView(view vscode.WebviewView, token vscode.CancellationToken) error {
	webview := view.Webview()
	send := func(message string) error {
		return webview.PostMessage(json.RawMessage(message))
	}
	onMessage, err := p.activate(send)
	if err != nil {
		return fmt.Errorf("interpreted activate: %w", err)
	}
	if onMessage != nil {
		webview.OnDidReceiveMessage(func(message json.RawMessage) {
			onMessage(string(message))
		})
	}
	return nil
}

// readSources collects the Go source to interpret: path itself when it is
// a file, otherwise every non-test .go file directly under it, in name
// order.
func readSources(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat extension path: %w", err)
	}
	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read extension source: %w", err)
		}
		return []string{string(data)}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read extension dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no extension source in %s", path)
	}
	sort.Strings(names)

	sources := make([]string, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(path, name))
		if err != nil {
			return nil, fmt.Errorf("read extension source %s: %w", name, err)
		}
		sources = append(sources, string(data))
	}
	return sources, nil
}
