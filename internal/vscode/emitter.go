package vscode

import (
	"log/slog"
	"sync"
)

// Emitter is the single concurrency primitive of the shim: a synchronous
// multi-listener fan-out. Fire delivers to every currently registered
// listener before returning; a panicking listener is logged and does not
// stop delivery to the rest.
type Emitter[T any] struct {
	mu        sync.Mutex
	listeners []registration[T]
	nextID    int
	disposed  bool
}

type registration[T any] struct {
	id int
	fn func(T)
}

// NewEmitter constructs an Emitter.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{}
}

// Event registers listener and returns its registration. Disposing the
// registration is idempotent. Any provided stores also receive the
// registration so a caller can tear it down with a DisposableStore.
func (e *Emitter[T]) Event(listener func(T), stores ...*DisposableStore) Disposable {
	if listener == nil {
		return DisposeFunc(nil)
	}
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return DisposeFunc(nil)
	}
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, registration[T]{id: id, fn: listener})
	e.mu.Unlock()

	d := DisposeFunc(func() { e.remove(id) })
	for _, s := range stores {
		if s != nil {
			s.Add(d)
		}
	}
	return d
}

// Fire delivers value synchronously to every registered listener.
func (e *Emitter[T]) Fire(value T) {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	snapshot := make([]registration[T], len(e.listeners))
	copy(snapshot, e.listeners)
	e.mu.Unlock()

	for _, reg := range snapshot {
		invokeIsolated(reg.fn, value)
	}
}

// ListenerCount returns the number of registered listeners.
func (e *Emitter[T]) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// Dispose removes all listeners. Subsequent Fire calls are no-ops.
func (e *Emitter[T]) Dispose() {
	e.mu.Lock()
	e.listeners = nil
	e.disposed = true
	e.mu.Unlock()
}

func (e *Emitter[T]) remove(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, reg := range e.listeners {
		if reg.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// invokeIsolated runs a listener, containing panics so one bad handler
// cannot break delivery to the others.
func invokeIsolated[T any](fn func(T), value T) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event listener panicked", "panic", r)
		}
	}()
	fn(value)
}

// disposeQuietly disposes d under the same isolated-failure policy.
func disposeQuietly(d Disposable) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("disposable panicked during dispose", "panic", r)
		}
	}()
	d.Dispose()
}
