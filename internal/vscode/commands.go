package vscode

import (
	"fmt"
	"sort"
	"sync"
)

// CommandHandler executes a named command.
type CommandHandler func(args ...any) (any, error)

// CommandsAPI is the command registry façade. Commands are registered by
// identifier and executed by name; re-registering an identifier replaces
// the previous handler.
type CommandsAPI struct {
	mu       sync.RWMutex
	handlers map[string]CommandHandler
}

// NewCommandsAPI constructs an empty registry.
func NewCommandsAPI() *CommandsAPI {
	return &CommandsAPI{handlers: make(map[string]CommandHandler)}
}

// RegisterCommand binds handler to id. The returned disposable removes the
// binding, but only while it still points at this handler's registration.
func (c *CommandsAPI) RegisterCommand(id string, handler CommandHandler) Disposable {
	c.mu.Lock()
	c.handlers[id] = handler
	c.mu.Unlock()
	return DisposeFunc(func() {
		c.mu.Lock()
		delete(c.handlers, id)
		c.mu.Unlock()
	})
}

// ExecuteCommand runs the handler registered for id.
func (c *CommandsAPI) ExecuteCommand(id string, args ...any) (any, error) {
	c.mu.RLock()
	handler, ok := c.handlers[id]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("command %q not found", id)
	}
	return handler(args...)
}

// Commands lists the registered identifiers in sorted order.
func (c *CommandsAPI) Commands() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.handlers))
	for id := range c.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
