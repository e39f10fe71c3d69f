package kv

import (
	"sort"
	"strings"
	"sync"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// Memory is an in-process Storage. A new Memory is ready for use; after
// Detach its operations return ErrStorageDetached until Attach is called
// again.
type Memory struct {
	mu       sync.RWMutex
	data     map[string][]byte
	detached bool
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

var _ types.Backend = (*Memory)(nil)

// Attach validates config and makes the store usable. Data is kept across
// Attach/Detach cycles.
func (m *Memory) Attach(config types.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.detached = false
	m.mu.Unlock()
	return nil
}

// Detach marks the store detached. Idempotent.
func (m *Memory) Detach() error {
	m.mu.Lock()
	m.detached = true
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, types.ErrInvalidKey
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.detached {
		return nil, types.ErrStorageDetached
	}

	v, ok := m.data[key]
	if !ok {
		return nil, types.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (m *Memory) Set(key string, value []byte) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.detached {
		return types.ErrStorageDetached
	}

	m.data[key] = append([]byte{}, value...)
	return nil
}

// Delete removes key.
func (m *Memory) Delete(key string) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.detached {
		return types.ErrStorageDetached
	}

	delete(m.data, key)
	return nil
}

// Keys returns the sorted keys beginning with prefix.
func (m *Memory) Keys(prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.detached {
		return nil, types.ErrStorageDetached
	}

	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
