package lease

import (
	"context"
	"sync"
	"time"

	domain "github.com/zoeccivil/licitaciones-engine/internal/domain/lease"
	"github.com/zoeccivil/licitaciones-engine/pkg/id"
)

type memoryEntry struct {
	token   domain.Token
	expires time.Time
}

// MemoryLocker is an in-process lease registry with the same semantics as
// the Redis locker, including TTL expiry.
type MemoryLocker struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{entries: make(map[string]memoryEntry), now: time.Now}
}

func (l *MemoryLocker) Acquire(_ context.Context, tenderID string, ttl time.Duration) (domain.Token, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[tenderID]; ok && l.now().Before(e.expires) {
		return "", domain.ErrLeaseHeld
	}
	token := domain.Token(id.NewID32())
	l.entries[tenderID] = memoryEntry{token: token, expires: l.now().Add(ttl)}
	return token, nil
}

func (l *MemoryLocker) Release(_ context.Context, tenderID string, token domain.Token) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[tenderID]; ok && e.token == token {
		delete(l.entries, tenderID)
	}
	return nil
}
