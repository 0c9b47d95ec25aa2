package sqlstore

import (
	"context"
	"errors"
	"time"

	evalDomain "github.com/zoeccivil/licitaciones-engine/internal/domain/evaluation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EvaluationRepository struct{ db *gorm.DB }

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

func (r *EvaluationRepository) GetCriteria(ctx context.Context, tenderPK uint64) ([]evalDomain.Criterion, error) {
	var out []evalDomain.Criterion
	res := r.db.WithContext(ctx).
		Where("tender_id = ?", tenderPK).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *EvaluationRepository) GetCriterionScores(ctx context.Context, tenderPK uint64) ([]evalDomain.CriterionScore, error) {
	var out []evalDomain.CriterionScore
	res := r.db.WithContext(ctx).
		Where("tender_id = ?", tenderPK).
		Find(&out)
	return out, res.Error
}

func (r *EvaluationRepository) FindDisqualification(ctx context.Context, lotPK uint64, bidderName string, documentPK uint64) (*evalDomain.Disqualification, error) {
	var out evalDomain.Disqualification
	res := r.db.WithContext(ctx).
		Where("lot_id = ? AND bidder_name = ? AND document_id = ?", lotPK, bidderName, documentPK).
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *EvaluationRepository) SaveDisqualification(ctx context.Context, d *evalDomain.Disqualification) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *EvaluationRepository) ListDisqualifications(ctx context.Context, tenderPK uint64) ([]evalDomain.Disqualification, error) {
	var out []evalDomain.Disqualification
	res := r.db.WithContext(ctx).
		Where("tender_id = ?", tenderPK).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *EvaluationRepository) GetWinnerRecord(ctx context.Context, lotPK uint64) (*evalDomain.WinnerRecord, error) {
	var out evalDomain.WinnerRecord
	res := r.db.WithContext(ctx).
		Where("lot_id = ?", lotPK).
		First(&out)
	return &out, res.Error
}

// SaveWinnerRecord supersedes the existing record for the lot in place: same
// row identity, new winner fields.
func (r *EvaluationRepository) SaveWinnerRecord(ctx context.Context, w *evalDomain.WinnerRecord) error {
	var existing evalDomain.WinnerRecord
	err := r.db.WithContext(ctx).Where("lot_id = ?", w.LotID).First(&existing).Error
	switch {
	case err == nil:
		w.ID = existing.ID
		w.CreatedAt = existing.CreatedAt
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *EvaluationRepository) ListWinnerRecords(ctx context.Context, tenderPK uint64) ([]evalDomain.WinnerRecord, error) {
	var out []evalDomain.WinnerRecord
	res := r.db.WithContext(ctx).
		Where("tender_id = ?", tenderPK).
		Order("lot_number ASC").
		Find(&out)
	return out, res.Error
}

// AppendHistoricalWin inserts one ledger row; the (tender, lot, day) unique
// index plus DoNothing keeps re-runs from duplicating entries.
func (r *EvaluationRepository) AppendHistoricalWin(ctx context.Context, h *evalDomain.HistoricalWin) error {
	h.WonOn = h.WonOn.UTC().Truncate(24 * time.Hour)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tender_id"}, {Name: "lot_id"}, {Name: "won_on"}},
			DoNothing: true,
		}).
		Create(h).Error
}

func (r *EvaluationRepository) ListHistoricalWinsByBidder(ctx context.Context, bidderName string) ([]evalDomain.HistoricalWin, error) {
	var out []evalDomain.HistoricalWin
	res := r.db.WithContext(ctx).
		Where("bidder_name = ?", bidderName).
		Order("won_on DESC, id DESC").
		Find(&out)
	return out, res.Error
}
