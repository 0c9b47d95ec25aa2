package lease

import (
	"context"
	"errors"
	"time"
)

// ErrLeaseHeld: another evaluation run holds the tender's lease.
var ErrLeaseHeld = errors.New("tender lease held")

type Token string

// Locker serializes evaluation runs per tender: only one holder per tender id
// at a time. Release must be token-checked so an expired holder cannot drop a
// successor's lease.
type Locker interface {
	Acquire(ctx context.Context, tenderID string, ttl time.Duration) (Token, error)
	Release(ctx context.Context, tenderID string, token Token) error
}
