package vscode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileMemento is a key/value store persisted as one JSON document. Reads
// are served from an in-memory cache hydrated at open time; Update writes
// the whole document back. A missing backing file means an empty store.
//
// Instances over the same path are independent caches; they only agree
// after each has been (re)opened. There is no cross-process locking.
type FileMemento struct {
	path   string
	mu     sync.RWMutex
	values map[string]any
}

// OpenMemento hydrates a FileMemento from path. The file not existing is
// not an error.
func OpenMemento(path string) (*FileMemento, error) {
	m := &FileMemento{path: path, values: make(map[string]any)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, nil
		}
		return nil, fmt.Errorf("read memento %s: %w", path, err)
	}
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m.values); err != nil {
		return nil, fmt.Errorf("decode memento %s: %w", path, err)
	}
	return m, nil
}

// Get returns the stored value for key, or nil.
func (m *FileMemento) Get(key string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key]
}

// GetDefault returns the stored value for key, or def when absent.
func (m *FileMemento) GetDefault(key string, def any) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

// Update stores value under key and persists the document. A nil value
// deletes the entry.
func (m *FileMemento) Update(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if value == nil {
		delete(m.values, key)
	} else {
		m.values[key] = value
	}
	return m.persistLocked()
}

// Keys returns the stored keys in sorted order.
func (m *FileMemento) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear removes every entry and persists the emptied document.
func (m *FileMemento) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]any)
	return m.persistLocked()
}

func (m *FileMemento) persistLocked() error {
	data, err := json.MarshalIndent(m.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode memento %s: %w", m.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create memento dir: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("write memento %s: %w", m.path, err)
	}
	return nil
}
