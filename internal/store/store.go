// Package store defines the narrow key-value contract the layout engines
// persist through, plus in-memory and directory-backed implementations.
// Keeping the contract this small lets tests run against the in-memory
// store and lets applications substitute their own backend.
package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// KV is the persistence contract consumed by the layout engines. Get
// reports ok=false for missing keys; Set overwrites; Delete is a no-op
// for missing keys.
type KV interface {
	Get(key string) (value string, ok bool)
	Set(key, value string) error
	Delete(key string) error
}

// Memory is a KV backed by a map. Safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

// Get implements KV.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok
}

// Set implements KV.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

// Delete implements KV.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Dir is a KV that stores one file per key under a base directory.
// Writes are atomic via temp-file-then-rename so a crash mid-write never
// leaves a corrupt entry behind.
type Dir struct {
	base string
	mu   sync.Mutex
}

// NewDir creates a directory-backed store, creating the directory if needed.
func NewDir(base string) (*Dir, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, err
	}
	return &Dir{base: base}, nil
}

// Get implements KV. Unreadable entries are reported as missing.
func (d *Dir) Get(key string) (string, bool) {
	data, err := os.ReadFile(d.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set implements KV.
func (d *Dir) Set(key, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	tmp, err := os.CreateTemp(d.base, "tessera-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), d.path(key))
}

// Delete implements KV.
func (d *Dir) Delete(key string) error {
	err := os.Remove(d.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (d *Dir) path(key string) string {
	return filepath.Join(d.base, sanitizeKey(key)+".json")
}

// sanitizeKey makes a key safe for use as a file name.
func sanitizeKey(key string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
		" ", "_",
	)
	safe := replacer.Replace(strings.TrimSpace(key))
	if safe == "" {
		safe = "_"
	}
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return safe
}
