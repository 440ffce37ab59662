package host

import "sync"

// The process-global current-host handle exists only for the process-entry
// boundary; everything inside the module receives the host by injection.
var (
	globalMu    sync.Mutex
	currentHost *Host
)

// SetCurrent installs h as the process-global host, disposing any previous
// one first. At most one host is global at a time.
func SetCurrent(h *Host) {
	globalMu.Lock()
	previous := currentHost
	currentHost = h
	globalMu.Unlock()
	if previous != nil && previous != h {
		previous.Dispose()
	}
}

// Current returns the process-global host, or nil.
func Current() *Host {
	globalMu.Lock()
	defer globalMu.Unlock()
	return currentHost
}

// ClearCurrent removes h from the global slot if it is installed there.
// Called from Dispose so a dead host never lingers globally.
func ClearCurrent(h *Host) {
	globalMu.Lock()
	if currentHost == h {
		currentHost = nil
	}
	globalMu.Unlock()
}
