package vscode

import "sync"

// Disposable releases a resource or registration. Implementations must
// tolerate repeated Dispose calls.
type Disposable interface {
	Dispose()
}

// DisposeFunc adapts a function to the Disposable interface.
type DisposeFunc func()

// Dispose invokes the function.
func (f DisposeFunc) Dispose() {
	if f != nil {
		f()
	}
}

// DisposableStore collects disposables so registration sites can hand
// ownership to a single teardown point.
type DisposableStore struct {
	mu       sync.Mutex
	items    []Disposable
	disposed bool
}

// Add records d for later disposal. If the store is already disposed, d is
// disposed immediately.
func (s *DisposableStore) Add(d Disposable) {
	if d == nil {
		return
	}
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		d.Dispose()
		return
	}
	s.items = append(s.items, d)
	s.mu.Unlock()
}

// Dispose disposes every recorded item in insertion order and empties the
// store. Safe to call more than once.
func (s *DisposableStore) Dispose() {
	s.mu.Lock()
	items := s.items
	s.items = nil
	s.disposed = true
	s.mu.Unlock()
	for _, d := range items {
		disposeQuietly(d)
	}
}
