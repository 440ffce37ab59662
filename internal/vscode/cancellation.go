package vscode

import "sync"

// CancellationTokenSource produces a token and controls its cancellation.
// Cancellation is monotonic: once cancelled, a source stays cancelled, and
// the cancellation event fires at most once.
type CancellationTokenSource struct {
	mu        sync.Mutex
	cancelled bool
	emitter   *Emitter[struct{}]
}

// NewCancellationTokenSource constructs an active source.
func NewCancellationTokenSource() *CancellationTokenSource {
	return &CancellationTokenSource{emitter: NewEmitter[struct{}]()}
}

// Token returns the token observing this source.
func (s *CancellationTokenSource) Token() CancellationToken {
	return CancellationToken{src: s}
}

// Cancel transitions the source to cancelled and fires the event. Repeated
// calls are no-ops.
func (s *CancellationTokenSource) Cancel() {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	emitter := s.emitter
	s.mu.Unlock()
	emitter.Fire(struct{}{})
}

// Dispose cancels the source if still active and tears down the emitter.
func (s *CancellationTokenSource) Dispose() {
	s.Cancel()
	s.mu.Lock()
	emitter := s.emitter
	s.mu.Unlock()
	emitter.Dispose()
}

// CancellationToken signals that a caller no longer wants the result of an
// operation. It is advisory: work must poll or subscribe to stop.
type CancellationToken struct {
	src *CancellationTokenSource
}

// IsCancellationRequested reports whether the source has been cancelled.
// The zero token is never cancelled.
func (t CancellationToken) IsCancellationRequested() bool {
	if t.src == nil {
		return false
	}
	t.src.mu.Lock()
	defer t.src.mu.Unlock()
	return t.src.cancelled
}

// OnCancellationRequested registers a listener for the cancellation event.
// Listeners registered after cancellation already happened are never
// invoked; the event is not replayed.
func (t CancellationToken) OnCancellationRequested(listener func(), stores ...*DisposableStore) Disposable {
	if t.src == nil || listener == nil {
		return DisposeFunc(nil)
	}
	return t.src.emitter.Event(func(struct{}) { listener() }, stores...)
}
