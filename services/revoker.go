package services

import (
	"context"
	"sync"
	"time"
)

// Revoker remembers logged-out session IDs until the token would have
// expired on its own. db.RedisRevoker is the shared implementation.
type Revoker interface {
	Revoke(ctx context.Context, id string, until time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}

// MemoryRevoker is used when no Redis is configured. Revocations are lost
// on restart and are not shared between instances.
type MemoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{revoked: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryRevoker) Revoke(_ context.Context, id string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, k)
		}
	}
	if until.After(now) {
		m.revoked[id] = until
	}
	return nil
}

func (m *MemoryRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.revoked[id]
	if !ok {
		return false, nil
	}
	if !exp.After(m.now()) {
		delete(m.revoked, id)
		return false, nil
	}
	return true, nil
}
