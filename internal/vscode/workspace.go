package vscode

import (
	"path/filepath"
	"strings"
	"sync"
)

// WorkspaceFolder is one root folder of the workspace.
type WorkspaceFolder struct {
	URI   URI
	Name  string
	Index int
}

// WorkspaceAPI reproduces the workspace namespace for a single-root
// workspace: folder queries, document access, edits, configuration, and
// file watching.
type WorkspaceAPI struct {
	folders []WorkspaceFolder
	fs      *FileSystemAPI

	mu       sync.Mutex
	config   map[string]any
	watchers []*FileSystemWatcher
}

// NewWorkspaceAPI constructs a WorkspaceAPI rooted at workspacePath.
func NewWorkspaceAPI(workspacePath string, fs *FileSystemAPI) *WorkspaceAPI {
	var folders []WorkspaceFolder
	if workspacePath != "" {
		folders = []WorkspaceFolder{{
			URI:   FileURI(workspacePath),
			Name:  filepath.Base(workspacePath),
			Index: 0,
		}}
	}
	return &WorkspaceAPI{
		folders: folders,
		fs:      fs,
		config:  make(map[string]any),
	}
}

// FS returns the filesystem façade.
func (w *WorkspaceAPI) FS() *FileSystemAPI { return w.fs }

// WorkspaceFolders returns the open folders; empty when no workspace is
// open.
func (w *WorkspaceAPI) WorkspaceFolders() []WorkspaceFolder {
	return append([]WorkspaceFolder(nil), w.folders...)
}

// Name returns the workspace display name.
func (w *WorkspaceAPI) Name() string {
	if len(w.folders) == 0 {
		return ""
	}
	return w.folders[0].Name
}

// RootPath returns the first folder's path, or empty.
func (w *WorkspaceAPI) RootPath() string {
	if len(w.folders) == 0 {
		return ""
	}
	return w.folders[0].URI.FSPath()
}

// GetWorkspaceFolder returns the folder containing uri.
func (w *WorkspaceAPI) GetWorkspaceFolder(uri URI) (WorkspaceFolder, bool) {
	path := uri.FSPath()
	for _, folder := range w.folders {
		root := folder.URI.FSPath()
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return folder, true
		}
	}
	return WorkspaceFolder{}, false
}

// AsRelativePath renders uri relative to its workspace folder, falling
// back to the absolute path for resources outside the workspace.
func (w *WorkspaceAPI) AsRelativePath(uri URI) string {
	folder, ok := w.GetWorkspaceFolder(uri)
	if !ok {
		return uri.FSPath()
	}
	rel, err := filepath.Rel(folder.URI.FSPath(), uri.FSPath())
	if err != nil {
		return uri.FSPath()
	}
	return filepath.ToSlash(rel)
}

// OpenTextDocument reads uri into an immutable document snapshot.
func (w *WorkspaceAPI) OpenTextDocument(uri URI) (*TextDocument, error) {
	data, err := w.fs.ReadFile(uri)
	if err != nil {
		return nil, err
	}
	return NewTextDocument(uri, string(data)), nil
}

// ApplyEdit writes every entry of edit through the filesystem façade.
// Entries touching unreadable files fail the whole apply.
func (w *WorkspaceAPI) ApplyEdit(edit *WorkspaceEdit) error {
	for _, entry := range edit.Entries() {
		doc, err := w.OpenTextDocument(entry.URI)
		if err != nil {
			return err
		}
		updated := doc.WithEdits(entry.Edits)
		if err := w.fs.WriteFile(entry.URI, []byte(updated.Text())); err != nil {
			return err
		}
	}
	return nil
}

// GetConfiguration returns the value stored under section, or def. The
// headless host carries no settings UI; values come from SetConfiguration.
func (w *WorkspaceAPI) GetConfiguration(section string, def any) any {
	w.mu.Lock()
	defer w.mu.Unlock()
	if v, ok := w.config[section]; ok {
		return v
	}
	return def
}

// SetConfiguration stores a configuration value for later reads.
func (w *WorkspaceAPI) SetConfiguration(section string, value any) {
	w.mu.Lock()
	w.config[section] = value
	w.mu.Unlock()
}

// CreateFileSystemWatcher starts a watcher for paths under the workspace
// root matching glob. The watcher is tracked so Dispose tears it down with
// the workspace.
func (w *WorkspaceAPI) CreateFileSystemWatcher(glob string) (*FileSystemWatcher, error) {
	watcher, err := newFileSystemWatcher(w.RootPath(), glob)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.watchers = append(w.watchers, watcher)
	w.mu.Unlock()
	return watcher, nil
}

// Dispose stops every watcher created through this workspace.
func (w *WorkspaceAPI) Dispose() {
	w.mu.Lock()
	watchers := w.watchers
	w.watchers = nil
	w.mu.Unlock()
	for _, watcher := range watchers {
		watcher.Dispose()
	}
}
