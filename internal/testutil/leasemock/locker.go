package leasemock

import (
	"context"
	"time"

	domain "github.com/zoeccivil/licitaciones-engine/internal/domain/lease"
)

var _ domain.Locker = (*Locker)(nil)

// Locker is a function-backed mock that satisfies lease.Locker.
// Unfilled Acquire grants a fixed token; unfilled Release succeeds.
type Locker struct {
	AcquireFn func(ctx context.Context, tenderID string, ttl time.Duration) (domain.Token, error)
	ReleaseFn func(ctx context.Context, tenderID string, token domain.Token) error

	// Released records every Release call for assertions.
	Released []string
}

func (m *Locker) Acquire(ctx context.Context, tenderID string, ttl time.Duration) (domain.Token, error) {
	if m.AcquireFn != nil {
		return m.AcquireFn(ctx, tenderID, ttl)
	}
	return domain.Token("test-token"), nil
}

func (m *Locker) Release(ctx context.Context, tenderID string, token domain.Token) error {
	m.Released = append(m.Released, tenderID)
	if m.ReleaseFn != nil {
		return m.ReleaseFn(ctx, tenderID, token)
	}
	return nil
}
