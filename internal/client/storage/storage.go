// Package storage provides a small JSON-file key-value store used by the
// client to keep state across restarts.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// DefaultFile is where the terminal client keeps its state.
const DefaultFile = "session.json"

// LocalStorage is a string key-value store persisted as a JSON object.
// Entries never expire. An empty Path keeps everything in memory.
type LocalStorage struct {
	Path    string
	mu      sync.Mutex
	entries map[string]string
}

// NewLocalStorage returns a store backed by path.
func NewLocalStorage(path string) *LocalStorage {
	return &LocalStorage{Path: path, entries: make(map[string]string)}
}

// Load replaces the in-memory entries with the file contents. A missing
// file yields an empty store.
func (ls *LocalStorage) Load() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.entries = make(map[string]string)
	if ls.Path == "" {
		return nil
	}

	f, err := os.Open(ls.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&ls.entries); err != nil {
		ls.entries = make(map[string]string)
		return fmt.Errorf("decode %s: %w", ls.Path, err)
	}
	if ls.entries == nil {
		ls.entries = make(map[string]string)
	}
	return nil
}

// save writes the entries to disk. Callers hold ls.mu.
func (ls *LocalStorage) save() error {
	if ls.Path == "" {
		return nil
	}
	f, err := os.Create(ls.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(ls.entries)
}

// Get returns the value stored under key.
func (ls *LocalStorage) Get(key string) (string, bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	v, ok := ls.entries[key]
	return v, ok
}

// Set stores value under key and persists the store.
func (ls *LocalStorage) Set(key, value string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.entries == nil {
		ls.entries = make(map[string]string)
	}
	ls.entries[key] = value
	return ls.save()
}

// Remove deletes key and persists the store. Removing a missing key is
// not an error.
func (ls *LocalStorage) Remove(key string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if _, ok := ls.entries[key]; !ok {
		return nil
	}
	delete(ls.entries, key)
	return ls.save()
}
