package vscode

import (
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileSystemWatcher reports create, change and delete events for files
// under a workspace root matching a glob pattern. Patterns use slash
// separators; a leading "**/" matches at any depth.
type FileSystemWatcher struct {
	root    string
	pattern string
	watcher *fsnotify.Watcher

	onDidCreate *Emitter[URI]
	onDidChange *Emitter[URI]
	onDidDelete *Emitter[URI]

	mu       sync.Mutex
	disposed bool
	doneCh   chan struct{}
}

func newFileSystemWatcher(root, pattern string) (*FileSystemWatcher, error) {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &FileSystemWatcher{
		root:        root,
		pattern:     pattern,
		watcher:     notifier,
		onDidCreate: NewEmitter[URI](),
		onDidChange: NewEmitter[URI](),
		onDidDelete: NewEmitter[URI](),
		doneCh:      make(chan struct{}),
	}

	if err := w.addRecursive(root); err != nil {
		notifier.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

// OnDidCreate registers a listener for file creation.
func (w *FileSystemWatcher) OnDidCreate(listener func(URI), stores ...*DisposableStore) Disposable {
	return w.onDidCreate.Event(listener, stores...)
}

// OnDidChange registers a listener for file modification.
func (w *FileSystemWatcher) OnDidChange(listener func(URI), stores ...*DisposableStore) Disposable {
	return w.onDidChange.Event(listener, stores...)
}

// OnDidDelete registers a listener for file removal.
func (w *FileSystemWatcher) OnDidDelete(listener func(URI), stores ...*DisposableStore) Disposable {
	return w.onDidDelete.Event(listener, stores...)
}

// Dispose stops watching and removes all listeners. Idempotent.
func (w *FileSystemWatcher) Dispose() {
	w.mu.Lock()
	if w.disposed {
		w.mu.Unlock()
		return
	}
	w.disposed = true
	w.mu.Unlock()

	w.watcher.Close()
	<-w.doneCh
	w.onDidCreate.Dispose()
	w.onDidChange.Dispose()
	w.onDidDelete.Dispose()
}

func (w *FileSystemWatcher) run() {
	defer close(w.doneCh)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("file watcher error", "error", err)
		}
	}
}

func (w *FileSystemWatcher) handle(event fsnotify.Event) {
	// New directories must be added to keep the watch recursive.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				slog.Warn("file watcher add failed", "path", event.Name, "error", err)
			}
			return
		}
	}

	if !w.matches(event.Name) {
		return
	}
	uri := FileURI(event.Name)
	switch {
	case event.Op.Has(fsnotify.Create):
		w.onDidCreate.Fire(uri)
	case event.Op.Has(fsnotify.Write):
		w.onDidChange.Fire(uri)
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		w.onDidDelete.Fire(uri)
	}
}

func (w *FileSystemWatcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.watcher.Add(p); err != nil {
				slog.Warn("file watcher add failed", "path", p, "error", err)
			}
		}
		return nil
	})
}

// matches tests the workspace-relative slash path against the pattern.
func (w *FileSystemWatcher) matches(name string) bool {
	rel, err := filepath.Rel(w.root, name)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if ok, err := path.Match(w.pattern, rel); err == nil && ok {
		return true
	}
	if rest, hasPrefix := strings.CutPrefix(w.pattern, "**/"); hasPrefix {
		if ok, err := path.Match(rest, path.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}
