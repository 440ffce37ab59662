package host

import (
	"fmt"
	"sort"
	"sync"

	"github.com/xde-mcp/zgsm-sub005/internal/vscode"
)

// Extension is the narrow contract a loaded extension implements. The host
// assumes nothing about its internals beyond this surface.
type Extension interface {
	// Activate receives the per-activation context and the API graph; its
	// return value is exposed through Host.Exports.
	Activate(ctx *vscode.ExtensionContext, api *vscode.API) (any, error)
}

// Deactivator is optionally implemented by extensions that need teardown
// beyond context subscriptions.
type Deactivator interface {
	Deactivate() error
}

// ExtensionFunc adapts a bare function to the Extension interface.
type ExtensionFunc func(ctx *vscode.ExtensionContext, api *vscode.API) (any, error)

// Activate implements Extension.
func (f ExtensionFunc) Activate(ctx *vscode.ExtensionContext, api *vscode.API) (any, error) {
	return f(ctx, api)
}

// Factory creates a fresh extension instance.
type Factory func() Extension

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a compiled-in extension loadable by name, in the manner
// of database/sql drivers. Registering a taken name replaces the previous
// factory.
func Register(name string, factory Factory) {
	if factory == nil {
		panic("host: nil extension factory")
	}
	registryMu.Lock()
	registry[name] = factory
	registryMu.Unlock()
}

// Load instantiates the registered extension name.
func Load(name string) (Extension, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("extension %q not registered", name)
	}
	return factory(), nil
}

// Registered lists registered extension names in sorted order.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
