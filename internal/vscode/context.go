package vscode

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sync"
)

// ExtensionMode mirrors the host editor's activation modes.
type ExtensionMode int

const (
	ModeProduction ExtensionMode = iota + 1
	ModeDevelopment
	ModeTest
)

// defaultStorageDirName is the dotfile directory under the user's home that
// roots all persisted state when no override is configured.
const defaultStorageDirName = ".exthost"

// PackageManifest holds the subset of an extension's package.json the host
// cares about. Raw preserves the full document for anything else.
type PackageManifest struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	DisplayName string            `json:"displayName"`
	Publisher   string            `json:"publisher"`
	Engines     map[string]string `json:"engines"`

	Raw map[string]any `json:"-"`
}

// ExtensionContextOptions configures context assembly.
type ExtensionContextOptions struct {
	ExtensionPath string
	WorkspacePath string
	// StorageDir overrides the default ~/.exthost root.
	StorageDir string
	Mode       ExtensionMode
}

// ExtensionContext is the per-activation aggregate handed to an extension's
// entry point: storage, identity, and the subscription list torn down when
// the extension is disposed.
type ExtensionContext struct {
	ExtensionPath        string
	ExtensionURI         URI
	WorkspacePath        string
	GlobalStoragePath    string
	WorkspaceStoragePath string
	LogPath              string
	Mode                 ExtensionMode
	Manifest             *PackageManifest

	WorkspaceState *FileMemento
	GlobalState    *FileMemento
	Secrets        *FileSecretStorage

	subMu         sync.Mutex
	subscriptions []Disposable
}

// WorkspaceHash derives the storage shard name for a workspace path using
// FNV-64a. The hash is for directory naming only; it is neither a security
// boundary nor a uniqueness guarantee.
func WorkspaceHash(workspacePath string) string {
	h := fnv.New64a()
	h.Write([]byte(filepath.Clean(workspacePath)))
	return fmt.Sprintf("%016x", h.Sum64())
}

// NewExtensionContext assembles storage, identity, and lifecycle state for
// one extension activation. A missing extension manifest is tolerated; a
// storage directory that cannot be created is not.
func NewExtensionContext(opts ExtensionContextOptions) (*ExtensionContext, error) {
	storageDir := opts.StorageDir
	if storageDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		storageDir = filepath.Join(home, defaultStorageDirName)
	}

	globalDir := filepath.Join(storageDir, "global-storage")
	workspaceDir := filepath.Join(storageDir, "workspace-storage", WorkspaceHash(opts.WorkspacePath))
	logDir := filepath.Join(storageDir, "logs")
	for _, dir := range []string{globalDir, workspaceDir, logDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
		}
	}

	globalState, err := OpenMemento(filepath.Join(globalDir, "global-state.json"))
	if err != nil {
		return nil, err
	}
	workspaceState, err := OpenMemento(filepath.Join(workspaceDir, "workspace-state.json"))
	if err != nil {
		return nil, err
	}
	secrets, err := OpenSecretStorage(filepath.Join(globalDir, "secrets.json"))
	if err != nil {
		return nil, err
	}

	mode := opts.Mode
	if mode == 0 {
		mode = ModeProduction
	}

	ctx := &ExtensionContext{
		ExtensionPath:        opts.ExtensionPath,
		ExtensionURI:         FileURI(opts.ExtensionPath),
		WorkspacePath:        opts.WorkspacePath,
		GlobalStoragePath:    globalDir,
		WorkspaceStoragePath: workspaceDir,
		LogPath:              logDir,
		Mode:                 mode,
		GlobalState:          globalState,
		WorkspaceState:       workspaceState,
		Secrets:              secrets,
	}
	ctx.Manifest = loadManifest(opts.ExtensionPath)
	return ctx, nil
}

// Subscribe appends d to the context's subscription list. Everything
// subscribed is disposed, in insertion order, when the context is disposed.
func (c *ExtensionContext) Subscribe(d Disposable) {
	if d == nil {
		return
	}
	c.subMu.Lock()
	c.subscriptions = append(c.subscriptions, d)
	c.subMu.Unlock()
}

// SubscriptionCount returns the number of live subscriptions.
func (c *ExtensionContext) SubscriptionCount() int {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	return len(c.subscriptions)
}

// Dispose tears down every subscription in insertion order, isolating
// individual failures, then clears the list. Safe to call more than once.
func (c *ExtensionContext) Dispose() {
	c.subMu.Lock()
	subs := c.subscriptions
	c.subscriptions = nil
	c.subMu.Unlock()
	for _, d := range subs {
		disposeQuietly(d)
	}
}

// loadManifest reads package.json from the extension path. Absence or a
// malformed file yields nil metadata rather than a construction failure.
func loadManifest(extensionPath string) *PackageManifest {
	data, err := os.ReadFile(filepath.Join(extensionPath, "package.json"))
	if err != nil {
		return nil
	}
	var manifest PackageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err == nil {
		manifest.Raw = raw
	}
	return &manifest
}
