// Package evaluation sequences a full tender run: lease, Phase-A
// qualification, Phase-B scoring, and adjudication, lot by lot. One bad lot
// never aborts the others; lot-scoped failures land in the run result.
package evaluation

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/zoeccivil/licitaciones-engine/internal/domain/evaluation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/lease"
	remdomain "github.com/zoeccivil/licitaciones-engine/internal/domain/remediation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/uow"
	"github.com/zoeccivil/licitaciones-engine/internal/infrastructure/metrics"
	"github.com/zoeccivil/licitaciones-engine/internal/usecase/adjudication"
	"github.com/zoeccivil/licitaciones-engine/internal/usecase/qualification"
	"github.com/zoeccivil/licitaciones-engine/internal/usecase/scoring"
	"github.com/zoeccivil/licitaciones-engine/pkg/id"
)

const defaultLeaseTTL = 2 * time.Minute

type Orchestrator struct {
	uow      uow.UnitOfWork
	locker   lease.Locker
	leaseTTL time.Duration
	log      *zap.Logger
}

func NewOrchestrator(tx uow.UnitOfWork, locker lease.Locker, leaseTTL time.Duration, log *zap.Logger) *Orchestrator {
	if leaseTTL <= 0 {
		leaseTTL = defaultLeaseTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{uow: tx, locker: locker, leaseTTL: leaseTTL, log: log}
}

// tenderSnapshot is everything read up front, before any write happens.
type tenderSnapshot struct {
	tender   *tender.Tender
	params   tender.EvalParams
	lots     []tender.Lot
	bidders  map[uint64]tender.Bidder
	ourSet   map[string]string
	criteria []domain.Criterion
	points   []domain.CriterionScore
}

// EvaluateTender runs the full evaluation for one tender as of a given date.
// The tender lease is taken first; nothing is written before it is held.
// Configuration errors abort the whole run; lot errors only mark their lot.
func (o *Orchestrator) EvaluateTender(ctx context.Context, tenderID string, asOf time.Time) (*RunResult, error) {
	token, err := o.locker.Acquire(ctx, tenderID, o.leaseTTL)
	if err != nil {
		if errors.Is(err, lease.ErrLeaseHeld) {
			metrics.RunsTotal.WithLabelValues("lease_held").Inc()
		}
		return nil, err
	}
	defer func() {
		// release with a fresh context so cancellation cannot strand the lease
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := o.locker.Release(releaseCtx, tenderID, token); err != nil {
			o.log.Warn("lease release failed", zap.String("tender_id", tenderID), zap.Error(err))
		}
	}()

	snap, err := o.loadSnapshot(ctx, tenderID)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("aborted").Inc()
		return nil, err
	}

	// Weighted scoring cannot proceed on a zero weight sum; fail the run
	// before the first lot so no record is written (scenario: configuration
	// errors leave the store untouched).
	if snap.params.Policy == tender.PolicyWeightedPoints {
		if err := validateWeights(snap.criteria); err != nil {
			metrics.RunsTotal.WithLabelValues("aborted").Inc()
			return nil, err
		}
	}

	result := &RunResult{
		RunID:       uuid.NewString(),
		TenderID:    tenderID,
		TenderState: snap.tender.State,
		AsOf:        asOf.UTC(),
		Lots:        make([]LotOutcome, 0, len(snap.lots)),
	}

	adjudicated := 0
	for i := range snap.lots {
		// cancellation is honored between lots only, never mid-lot
		if err := ctx.Err(); err != nil {
			return result, err
		}

		outcome := o.evaluateLot(ctx, snap, &snap.lots[i], asOf)
		if outcome.Winner != nil {
			adjudicated++
		}
		if outcome.ErrorKind != "" {
			metrics.LotOutcomesTotal.WithLabelValues(outcome.ErrorKind).Inc()
			o.log.Warn("lot evaluation failed",
				zap.String("tender_id", tenderID),
				zap.String("lot", outcome.LotNumber),
				zap.String("kind", outcome.ErrorKind))
		} else {
			metrics.LotOutcomesTotal.WithLabelValues("ok").Inc()
		}
		result.Lots = append(result.Lots, outcome)
	}

	if len(snap.lots) > 0 && adjudicated == len(snap.lots) {
		if err := o.advanceState(ctx, snap.tender); err != nil {
			metrics.RunsTotal.WithLabelValues("aborted").Inc()
			return result, domain.WrapStore(err)
		}
		result.TenderState = tender.StateAdjudicated
		metrics.RunsTotal.WithLabelValues("adjudicated").Inc()
	} else {
		metrics.RunsTotal.WithLabelValues("partial").Inc()
	}

	o.log.Info("tender evaluated",
		zap.String("tender_id", tenderID),
		zap.String("run_id", result.RunID),
		zap.Int("lots", len(result.Lots)),
		zap.Int("adjudicated", adjudicated),
		zap.String("state", string(result.TenderState)))
	return result, nil
}

func (o *Orchestrator) loadSnapshot(ctx context.Context, tenderID string) (*tenderSnapshot, error) {
	snap := &tenderSnapshot{}
	err := o.uow.WithinTx(ctx, func(r uow.Repos) error {
		t, err := r.Tenders.GetByTenderID(ctx, tenderID)
		if err != nil {
			return err
		}
		snap.tender = t

		params, err := tender.ParseEvalParams(t.EvalParamsRaw)
		if err != nil {
			return err
		}
		snap.params = params
		snap.ourSet = t.OurCompanySet()

		lots, err := r.Tenders.GetLots(ctx, t.ID)
		if err != nil {
			return err
		}
		sort.Slice(lots, func(i, j int) bool { return lots[i].Number < lots[j].Number })
		snap.lots = lots

		bidders, err := r.Tenders.GetBidders(ctx, t.ID)
		if err != nil {
			return err
		}
		snap.bidders = make(map[uint64]tender.Bidder, len(bidders))
		for _, b := range bidders {
			snap.bidders[b.ID] = b
		}

		if snap.params.Policy == tender.PolicyWeightedPoints {
			if snap.criteria, err = r.Evaluations.GetCriteria(ctx, t.ID); err != nil {
				return err
			}
			if snap.points, err = r.Evaluations.GetCriterionScores(ctx, t.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isDomainErr(err) || isNotFound(err) {
			return nil, err
		}
		return nil, domain.WrapStore(err)
	}
	return snap, nil
}

// evaluateLot runs qualification, scoring, and adjudication for one lot
// inside a single transaction: either the whole lot outcome commits or none
// of it does.
func (o *Orchestrator) evaluateLot(ctx context.Context, snap *tenderSnapshot, lot *tender.Lot, asOf time.Time) LotOutcome {
	outcome := LotOutcome{LotNumber: lot.Number}

	// The winner is staged here and attached to the outcome only once the
	// transaction has committed; a failed commit must not report a winner.
	var winner *WinnerDTO
	err := o.uow.WithinLotTx(ctx, lot.ID, func(r uow.Repos, locked *tender.Lot) error {
		offers, err := r.Tenders.GetOffers(ctx, locked.TenderID, locked.Number)
		if err != nil {
			return err
		}
		docs, err := r.Tenders.GetDocuments(ctx, locked.ID)
		if err != nil {
			return err
		}
		rems, err := latestRemediations(ctx, r, locked.TenderID)
		if err != nil {
			return err
		}

		qres, err := qualification.Evaluate(qualification.Input{
			Lot:          *locked,
			Offers:       offers,
			Bidders:      snap.bidders,
			Docs:         docs,
			Remediations: rems,
			OurCompanies: snap.ourSet,
			AsOf:         asOf,
		})
		if err != nil {
			return err
		}

		for i := range qres.Disqualifications {
			if err := saveDisqualificationOnce(ctx, r, &qres.Disqualifications[i]); err != nil {
				return err
			}
		}
		for _, or := range qres.Offers {
			if or.Offer.PhaseAPassed != or.Qualified {
				offer := or.Offer
				offer.PhaseAPassed = or.Qualified
				if err := r.Tenders.SaveOffer(ctx, &offer); err != nil {
					return err
				}
			}
		}

		locked.PhaseAPassed = qres.PhaseAPassed
		if !qres.PhaseAPassed {
			// no qualified offer: the lot stays unadjudicated, nothing to rank
			return r.Tenders.SaveLot(ctx, locked)
		}

		scored, err := scoring.Score(snap.params.Policy, qres.Offers, snap.criteria, snap.points, locked.Number)
		if err != nil {
			return err
		}

		adj, err := adjudication.Resolve(*locked, scored, snap.ourSet, asOf)
		if err != nil {
			return err
		}
		if adj == nil {
			return r.Tenders.SaveLot(ctx, locked)
		}

		if err := r.Evaluations.SaveWinnerRecord(ctx, &adj.Record); err != nil {
			return err
		}
		if err := r.Evaluations.AppendHistoricalWin(ctx, &adj.History); err != nil {
			return err
		}
		adjudication.ApplyToLot(locked, adj)
		if err := r.Tenders.SaveLot(ctx, locked); err != nil {
			return err
		}

		winner = &WinnerDTO{
			LotNumber:  locked.Number,
			WinnerName: adj.Record.WinnerName,
			IsOurs:     adj.Record.IsOurs,
			OurCompany: adj.Record.OurCompany,
			Score:      adj.Record.Score,
		}
		return nil
	})
	if err != nil {
		if !isDomainErr(err) {
			err = domain.WrapStore(err)
		}
		outcome.ErrorKind = domain.KindOf(err)
		return outcome
	}
	outcome.Winner = winner
	return outcome
}

func (o *Orchestrator) advanceState(ctx context.Context, t *tender.Tender) error {
	return o.uow.WithinTx(ctx, func(r uow.Repos) error {
		fresh, err := r.Tenders.GetByTenderID(ctx, t.TenderID)
		if err != nil {
			return err
		}
		// state only ever advances; finalization stays with the caller
		switch fresh.State {
		case tender.StateAdjudicated, tender.StateFinalized, tender.StateDisqualified:
			return nil
		}
		fresh.State = tender.StateAdjudicated
		fresh.StateUpdatedAt = time.Now().UTC()
		return r.Tenders.Save(ctx, fresh)
	})
}

// latestRemediations maps each document to its most recent request.
func latestRemediations(ctx context.Context, r uow.Repos, tenderPK uint64) (map[uint64]remdomain.Request, error) {
	reqs, err := r.Remediations.ListByTender(ctx, tenderPK)
	if err != nil {
		return nil, err
	}
	byDoc := make(map[uint64]remdomain.Request, len(reqs))
	for _, req := range reqs {
		cur, ok := byDoc[req.DocumentID]
		if !ok || req.RequestedAt.After(cur.RequestedAt) {
			byDoc[req.DocumentID] = req
		}
	}
	return byDoc, nil
}

// saveDisqualificationOnce keeps re-runs idempotent: an identical failure
// already on record is left alone.
func saveDisqualificationOnce(ctx context.Context, r uow.Repos, d *domain.Disqualification) error {
	existing, err := r.Evaluations.FindDisqualification(ctx, d.LotID, d.BidderName, d.DocumentID)
	if err == nil && existing != nil {
		return nil
	}
	if err != nil && !isNotFound(err) {
		return err
	}
	d.DisqualificationID = id.NewID32()
	return r.Evaluations.SaveDisqualification(ctx, d)
}

func validateWeights(criteria []domain.Criterion) error {
	sum := 0.0
	for _, c := range criteria {
		if c.Active {
			sum += c.Weight
		}
	}
	if sum <= 0 {
		return domain.ErrInvalidWeightConfiguration
	}
	return nil
}

func isDomainErr(err error) bool {
	return errors.Is(err, domain.ErrInsufficientOffers) ||
		errors.Is(err, domain.ErrInvalidWeightConfiguration) ||
		errors.Is(err, domain.ErrUnresolvedTie) ||
		errors.Is(err, domain.ErrStoreUnavailable) ||
		errors.Is(err, tender.ErrInvalidParams)
}

func isNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }
