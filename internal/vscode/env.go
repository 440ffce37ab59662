package vscode

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// EnvAPI reproduces the env namespace: application identity and a small
// in-memory clipboard. MachineID is stable for the storage root (persisted
// in global state); SessionID is fresh per process.
type EnvAPI struct {
	AppName   string
	AppRoot   string
	Language  string
	MachineID string
	SessionID string
	URIScheme string

	mu        sync.Mutex
	clipboard string
}

const machineIDKey = "exthost.machineId"

// NewEnvAPI constructs the env façade, minting or recovering the machine
// identifier from globalState.
func NewEnvAPI(appName, appRoot string, globalState *FileMemento) *EnvAPI {
	machineID, _ := globalState.Get(machineIDKey).(string)
	if machineID == "" {
		machineID = uuid.NewString()
		if err := globalState.Update(machineIDKey, machineID); err != nil {
			slog.Warn("persist machine id failed", "error", err)
		}
	}
	return &EnvAPI{
		AppName:   appName,
		AppRoot:   appRoot,
		Language:  "en",
		MachineID: machineID,
		SessionID: uuid.NewString(),
		URIScheme: "exthost",
	}
}

// ClipboardWriteText stores text in the in-memory clipboard.
func (e *EnvAPI) ClipboardWriteText(text string) {
	e.mu.Lock()
	e.clipboard = text
	e.mu.Unlock()
}

// ClipboardReadText returns the clipboard content.
func (e *EnvAPI) ClipboardReadText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clipboard
}

// OpenExternal logs the request; a headless host opens nothing.
func (e *EnvAPI) OpenExternal(target URI) bool {
	slog.Info("openExternal requested", "uri", target.String())
	return false
}
