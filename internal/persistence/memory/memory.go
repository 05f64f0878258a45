// Package memory provides an in-process persistence gateway.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/daap14/tiermaker/internal/persistence"
)

// Memory keeps blobs in a map. Contents are lost when the process exits.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// New creates an empty Memory gateway.
func New() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Put stores a copy of blob under key, replacing any previous value.
func (m *Memory) Put(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), blob...)
	return nil
}

// Get returns the blob stored under key.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.blobs[key]
	if !ok {
		return nil, persistence.ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

// Keys returns the sorted keys starting with prefix.
func (m *Memory) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := []string{}
	for k := range m.blobs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Delete removes key. Deleting a missing key returns persistence.ErrNotFound.
func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[key]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.blobs, key)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
