package uowmock

import (
	"context"
	"errors"

	"github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/uow"
	"github.com/zoeccivil/licitaciones-engine/internal/testutil/storemock"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn    func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLotTxFn func(ctx context.Context, lotPK uint64, fn func(r uow.Repos, l *tender.Lot) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLotTx(ctx context.Context, lotPK uint64, fn func(r uow.Repos, l *tender.Lot) error) error {
	if m.WithinLotTxFn != nil {
		return m.WithinLotTxFn(ctx, lotPK, fn)
	}
	return errUnimplemented
}

// Passthrough builds a UoW whose transactions run the callback directly
// against the given repos. WithinLotTx resolves the lot through lots[lotPK].
func Passthrough(tenders *storemock.TenderRepo, evals *storemock.EvaluationRepo, rems *storemock.RemediationRepo, lots map[uint64]*tender.Lot) *UoW {
	repos := uow.Repos{Tenders: tenders, Evaluations: evals, Remediations: rems}
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(repos)
		},
		WithinLotTxFn: func(ctx context.Context, lotPK uint64, fn func(r uow.Repos, l *tender.Lot) error) error {
			l, ok := lots[lotPK]
			if !ok {
				return errors.New("uowmock: unknown lot")
			}
			return fn(repos, l)
		},
	}
}
