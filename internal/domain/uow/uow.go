package uow

import (
	"context"

	"github.com/zoeccivil/licitaciones-engine/internal/domain/evaluation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/remediation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
)

type Repos struct {
	Tenders      tender.Repository
	Evaluations  evaluation.Repository
	Remediations remediation.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the lot row first, then pass it in — every write for
	// one lot (disqualifications, winner record, historical win) goes through
	// one of these so a lot's outcome commits as a single unit
	WithinLotTx(ctx context.Context, lotPK uint64, fn func(r Repos, l *tender.Lot) error) error
}
