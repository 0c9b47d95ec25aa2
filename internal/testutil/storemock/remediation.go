package storemock

import (
	"context"
	"time"

	domain "github.com/zoeccivil/licitaciones-engine/internal/domain/remediation"
)

var _ domain.Repository = (*RemediationRepo)(nil)

// RemediationRepo is a function-backed mock that satisfies remediation.Repository.
type RemediationRepo struct {
	CreateFn                  func(ctx context.Context, r *domain.Request) error
	GetByRequestIDFn          func(ctx context.Context, requestID string) (*domain.Request, error)
	GetPendingFn              func(ctx context.Context, tenderPK, documentPK uint64) (*domain.Request, error)
	ListByTenderFn            func(ctx context.Context, tenderPK uint64) ([]domain.Request, error)
	ListPendingPastDeadlineFn func(ctx context.Context, asOf time.Time) ([]domain.Request, error)
	SaveFn                    func(ctx context.Context, r *domain.Request) error
}

func (m *RemediationRepo) Create(ctx context.Context, r *domain.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *RemediationRepo) GetByRequestID(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, domain.ErrNotFound
}

func (m *RemediationRepo) GetPending(ctx context.Context, tenderPK, documentPK uint64) (*domain.Request, error) {
	if m.GetPendingFn != nil {
		return m.GetPendingFn(ctx, tenderPK, documentPK)
	}
	return nil, domain.ErrNotFound
}

func (m *RemediationRepo) ListByTender(ctx context.Context, tenderPK uint64) ([]domain.Request, error) {
	if m.ListByTenderFn != nil {
		return m.ListByTenderFn(ctx, tenderPK)
	}
	return nil, nil
}

func (m *RemediationRepo) ListPendingPastDeadline(ctx context.Context, asOf time.Time) ([]domain.Request, error) {
	if m.ListPendingPastDeadlineFn != nil {
		return m.ListPendingPastDeadlineFn(ctx, asOf)
	}
	return nil, nil
}

func (m *RemediationRepo) Save(ctx context.Context, r *domain.Request) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
