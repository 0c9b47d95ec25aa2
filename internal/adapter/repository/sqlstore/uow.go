package sqlstore

import (
	"context"

	"github.com/zoeccivil/licitaciones-engine/internal/domain/evaluation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/remediation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repos(tx))
	})
}

func (u *GormUoW) WithinLotTx(ctx context.Context, lotPK uint64, fn func(r uow.Repos, l *tender.Lot) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		// lock the lot row up-front so concurrent runs cannot interleave writes
		l, err := r.Tenders.GetLotForUpdate(ctx, lotPK)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}

func repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Tenders:      &TenderRepository{db: tx},
		Evaluations:  &EvaluationRepository{db: tx},
		Remediations: &RemediationRepository{db: tx},
	}
}

// Migrate creates or updates the engine's tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&tender.Tender{},
		&tender.OurCompany{},
		&tender.Lot{},
		&tender.Bidder{},
		&tender.Offer{},
		&tender.Document{},
		&evaluation.Criterion{},
		&evaluation.CriterionScore{},
		&evaluation.Disqualification{},
		&evaluation.WinnerRecord{},
		&evaluation.HistoricalWin{},
		&remediation.Request{},
	)
}
