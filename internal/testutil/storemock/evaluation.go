package storemock

import (
	"context"

	domain "github.com/zoeccivil/licitaciones-engine/internal/domain/evaluation"
	"gorm.io/gorm"
)

var _ domain.Repository = (*EvaluationRepo)(nil)

// EvaluationRepo is a function-backed mock that satisfies evaluation.Repository.
type EvaluationRepo struct {
	GetCriteriaFn        func(ctx context.Context, tenderPK uint64) ([]domain.Criterion, error)
	GetCriterionScoresFn func(ctx context.Context, tenderPK uint64) ([]domain.CriterionScore, error)

	FindDisqualificationFn  func(ctx context.Context, lotPK uint64, bidderName string, documentPK uint64) (*domain.Disqualification, error)
	SaveDisqualificationFn  func(ctx context.Context, d *domain.Disqualification) error
	ListDisqualificationsFn func(ctx context.Context, tenderPK uint64) ([]domain.Disqualification, error)

	GetWinnerRecordFn   func(ctx context.Context, lotPK uint64) (*domain.WinnerRecord, error)
	SaveWinnerRecordFn  func(ctx context.Context, w *domain.WinnerRecord) error
	ListWinnerRecordsFn func(ctx context.Context, tenderPK uint64) ([]domain.WinnerRecord, error)

	AppendHistoricalWinFn        func(ctx context.Context, h *domain.HistoricalWin) error
	ListHistoricalWinsByBidderFn func(ctx context.Context, bidderName string) ([]domain.HistoricalWin, error)
}

func (m *EvaluationRepo) GetCriteria(ctx context.Context, tenderPK uint64) ([]domain.Criterion, error) {
	if m.GetCriteriaFn != nil {
		return m.GetCriteriaFn(ctx, tenderPK)
	}
	return nil, nil
}

func (m *EvaluationRepo) GetCriterionScores(ctx context.Context, tenderPK uint64) ([]domain.CriterionScore, error) {
	if m.GetCriterionScoresFn != nil {
		return m.GetCriterionScoresFn(ctx, tenderPK)
	}
	return nil, nil
}

func (m *EvaluationRepo) FindDisqualification(ctx context.Context, lotPK uint64, bidderName string, documentPK uint64) (*domain.Disqualification, error) {
	if m.FindDisqualificationFn != nil {
		return m.FindDisqualificationFn(ctx, lotPK, bidderName, documentPK)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *EvaluationRepo) SaveDisqualification(ctx context.Context, d *domain.Disqualification) error {
	if m.SaveDisqualificationFn != nil {
		return m.SaveDisqualificationFn(ctx, d)
	}
	return nil
}

func (m *EvaluationRepo) ListDisqualifications(ctx context.Context, tenderPK uint64) ([]domain.Disqualification, error) {
	if m.ListDisqualificationsFn != nil {
		return m.ListDisqualificationsFn(ctx, tenderPK)
	}
	return nil, nil
}

func (m *EvaluationRepo) GetWinnerRecord(ctx context.Context, lotPK uint64) (*domain.WinnerRecord, error) {
	if m.GetWinnerRecordFn != nil {
		return m.GetWinnerRecordFn(ctx, lotPK)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *EvaluationRepo) SaveWinnerRecord(ctx context.Context, w *domain.WinnerRecord) error {
	if m.SaveWinnerRecordFn != nil {
		return m.SaveWinnerRecordFn(ctx, w)
	}
	return nil
}

func (m *EvaluationRepo) ListWinnerRecords(ctx context.Context, tenderPK uint64) ([]domain.WinnerRecord, error) {
	if m.ListWinnerRecordsFn != nil {
		return m.ListWinnerRecordsFn(ctx, tenderPK)
	}
	return nil, nil
}

func (m *EvaluationRepo) AppendHistoricalWin(ctx context.Context, h *domain.HistoricalWin) error {
	if m.AppendHistoricalWinFn != nil {
		return m.AppendHistoricalWinFn(ctx, h)
	}
	return nil
}

func (m *EvaluationRepo) ListHistoricalWinsByBidder(ctx context.Context, bidderName string) ([]domain.HistoricalWin, error) {
	if m.ListHistoricalWinsByBidderFn != nil {
		return m.ListHistoricalWinsByBidderFn(ctx, bidderName)
	}
	return nil, nil
}
