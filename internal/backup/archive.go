package backup

import (
	"context"
	"sync"

	"greenlight/pkg/sentinel"
)

// Archive stores encoded snapshot payloads keyed by snapshot ID. Implementations
// may be volatile (in-memory) or durable (redis); the manager does not care.
type Archive interface {
	Save(ctx context.Context, id string, payload []byte) error
	Load(ctx context.Context, id string) ([]byte, error)
}

// MemoryArchive keeps payloads in process memory. It is the default backend;
// snapshots then live only for the process lifetime.
type MemoryArchive struct {
	mu       sync.RWMutex
	payloads map[string][]byte
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{payloads: make(map[string][]byte)}
}

func (a *MemoryArchive) Save(_ context.Context, id string, payload []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.payloads[id] = append([]byte(nil), payload...)
	return nil
}

func (a *MemoryArchive) Load(_ context.Context, id string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	payload, ok := a.payloads[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return append([]byte(nil), payload...), nil
}
