package sqlstore

import (
	"context"
	"errors"
	"time"

	remDomain "github.com/zoeccivil/licitaciones-engine/internal/domain/remediation"

	"gorm.io/gorm"
)

type RemediationRepository struct{ db *gorm.DB }

func NewRemediationRepository(db *gorm.DB) *RemediationRepository {
	return &RemediationRepository{db: db}
}

func (r *RemediationRepository) Create(ctx context.Context, req *remDomain.Request) error {
	err := r.db.WithContext(ctx).Create(req).Error
	// the pending-key unique index backstops the usecase pre-check when two
	// transactions race past it
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return remDomain.ErrDuplicateRemediation
	}
	return err
}

func (r *RemediationRepository) GetByRequestID(ctx context.Context, requestID string) (*remDomain.Request, error) {
	var out remDomain.Request
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	if res.Error != nil {
		return nil, mapNotFound(res.Error)
	}
	return &out, nil
}

func (r *RemediationRepository) GetPending(ctx context.Context, tenderPK, documentPK uint64) (*remDomain.Request, error) {
	var out remDomain.Request
	res := r.db.WithContext(ctx).
		Where("tender_id = ? AND document_id = ? AND state = ?", tenderPK, documentPK, remDomain.StatePending).
		First(&out)
	if res.Error != nil {
		return nil, mapNotFound(res.Error)
	}
	return &out, nil
}

func (r *RemediationRepository) ListByTender(ctx context.Context, tenderPK uint64) ([]remDomain.Request, error) {
	var out []remDomain.Request
	res := r.db.WithContext(ctx).
		Where("tender_id = ?", tenderPK).
		Order("requested_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *RemediationRepository) ListPendingPastDeadline(ctx context.Context, asOf time.Time) ([]remDomain.Request, error) {
	var out []remDomain.Request
	res := r.db.WithContext(ctx).
		Where("state = ? AND deadline < ?", remDomain.StatePending, asOf).
		Order("deadline ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *RemediationRepository) Save(ctx context.Context, req *remDomain.Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return remDomain.ErrNotFound
	}
	return err
}
