package remediation

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByRequestID(ctx context.Context, requestID string) (*Request, error)
	// GetPending returns the live request for a (tender, document) pair,
	// ErrNotFound when none. At most one can exist.
	GetPending(ctx context.Context, tenderPK, documentPK uint64) (*Request, error)
	ListByTender(ctx context.Context, tenderPK uint64) ([]Request, error)
	ListPendingPastDeadline(ctx context.Context, asOf time.Time) ([]Request, error)
	Save(ctx context.Context, r *Request) error
}
