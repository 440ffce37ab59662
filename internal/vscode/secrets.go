package vscode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
)

// secretFileMode keeps the secrets document readable by the owning user
// only. This is part of the storage contract, not an implementation detail.
const secretFileMode = 0o600

// SecretChangeEvent identifies the key affected by a store or delete.
type SecretChangeEvent struct {
	Key string
}

// FileSecretStorage persists string secrets as one JSON document with
// owner-only permissions. Every mutating call fires OnDidChange with the
// affected key.
type FileSecretStorage struct {
	path        string
	mu          sync.RWMutex
	values      map[string]string
	onDidChange *Emitter[SecretChangeEvent]
}

// OpenSecretStorage hydrates a FileSecretStorage from path. The file not
// existing is not an error.
func OpenSecretStorage(path string) (*FileSecretStorage, error) {
	s := &FileSecretStorage{
		path:        path,
		values:      make(map[string]string),
		onDidChange: NewEmitter[SecretChangeEvent](),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read secrets %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("decode secrets %s: %w", path, err)
	}
	return s, nil
}

// Store saves a secret and notifies observers.
func (s *FileSecretStorage) Store(key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	err := s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.onDidChange.Fire(SecretChangeEvent{Key: key})
	return nil
}

// Get returns the secret for key. ok is false when absent.
func (s *FileSecretStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Delete removes a secret and notifies observers. Deleting an absent key
// still fires the event, matching the per-mutation notification contract.
func (s *FileSecretStorage) Delete(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	err := s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.onDidChange.Fire(SecretChangeEvent{Key: key})
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *FileSecretStorage) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ClearAll wipes every secret without firing per-key events.
func (s *FileSecretStorage) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	return s.persistLocked()
}

// OnDidChange registers an observer for secret mutations.
func (s *FileSecretStorage) OnDidChange(listener func(SecretChangeEvent), stores ...*DisposableStore) Disposable {
	return s.onDidChange.Event(listener, stores...)
}

func (s *FileSecretStorage) persistLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode secrets %s: %w", s.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create secrets dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, secretFileMode); err != nil {
		return fmt.Errorf("write secrets %s: %w", s.path, err)
	}
	if runtime.GOOS != "windows" {
		// WriteFile only applies the mode at creation; clamp pre-existing files.
		if err := os.Chmod(s.path, secretFileMode); err != nil {
			return fmt.Errorf("chmod secrets %s: %w", s.path, err)
		}
	}
	return nil
}
