package blob

import (
	"context"
	"sync"
)

// Memory is an in-process Store, used in tests and as the default backend
// when no storage driver is configured.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string]string
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string]string)}
}

func (m *Memory) Read(ctx context.Context, name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.blobs[name]
	if !ok {
		return "", ErrNotFound
	}
	return content, nil
}

func (m *Memory) Write(ctx context.Context, name, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[name] = content
	return nil
}

func (m *Memory) Append(ctx context.Context, name, chunk string) error {
	return appendViaRewrite(ctx, m, name, chunk)
}
