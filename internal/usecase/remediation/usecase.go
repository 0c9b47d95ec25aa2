// Package remediation drives the subsanación state machine: one Pending
// request per (tender, document), resolved to Delivered or swept to Expired.
package remediation

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	domain "github.com/zoeccivil/licitaciones-engine/internal/domain/remediation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/uow"
	"github.com/zoeccivil/licitaciones-engine/internal/infrastructure/metrics"
	"github.com/zoeccivil/licitaciones-engine/pkg/id"
)

type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, log: log}
}

// Request opens a Pending cure window for a (tender, document) pair. The
// document must be flagged remediable and carry a recorded disqualification;
// a second Pending request for the same pair fails with
// ErrDuplicateRemediation and leaves the existing one untouched.
func (u *Usecase) Request(ctx context.Context, in RequestInput) (*RequestDTO, error) {
	var dto *RequestDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		t, err := r.Tenders.GetByTenderID(ctx, in.TenderID)
		if err != nil {
			return err
		}

		doc, err := r.Tenders.GetDocument(ctx, in.DocumentID)
		if err != nil {
			return err
		}
		if doc.TenderID != t.ID {
			return domain.ErrNotFound
		}
		if !doc.Remediable {
			return domain.ErrNotRemediable
		}
		if err := requireDisqualification(ctx, r, t.ID, doc.ID); err != nil {
			return err
		}

		if _, err := r.Remediations.GetPending(ctx, t.ID, in.DocumentID); err == nil {
			return domain.ErrDuplicateRemediation
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		window := in.WindowDays
		if window <= 0 {
			params, err := tender.ParseEvalParams(t.EvalParamsRaw)
			if err != nil {
				return err
			}
			window = params.RemediationWindowDays
		}

		requestedAt := in.RequestedAt.UTC()
		pendingKey := domain.PendingKeyFor(t.ID, in.DocumentID)
		req := &domain.Request{
			RequestID:   id.NewID32(),
			TenderID:    t.ID,
			DocumentID:  in.DocumentID,
			State:       domain.StatePending,
			PendingKey:  &pendingKey,
			RequestedAt: requestedAt,
			Deadline:    requestedAt.AddDate(0, 0, window),
		}
		if err := r.Remediations.Create(ctx, req); err != nil {
			return err
		}

		dto = toDTO(req, in.TenderID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("remediation requested",
		zap.String("tender_id", in.TenderID),
		zap.Uint64("document_id", in.DocumentID),
		zap.Time("deadline", dto.Deadline))
	return dto, nil
}

// Deliver closes a Pending request as Delivered. Requires delivery on or
// before the deadline; late delivery is rejected and the expiry sweep will
// mark the request Expired instead.
func (u *Usecase) Deliver(ctx context.Context, in DeliverInput) (*RequestDTO, error) {
	var dto *RequestDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Remediations.GetByRequestID(ctx, in.RequestID)
		if err != nil {
			return err
		}
		if req.State != domain.StatePending {
			return domain.ErrInvalidTransition
		}

		deliveredAt := in.DeliveredAt.UTC()
		if deliveredAt.After(req.Deadline) {
			return domain.ErrDeadlinePassed
		}

		req.State = domain.StateDelivered
		req.DeliveredAt = &deliveredAt
		req.PendingKey = nil
		if err := r.Remediations.Save(ctx, req); err != nil {
			return err
		}

		dto = toDTO(req, "")
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("remediation delivered", zap.String("request_id", in.RequestID))
	return dto, nil
}

// ExpireSweep moves every Pending request past its deadline to Expired and
// returns how many changed. Idempotent: a second run finds nothing Pending.
func (u *Usecase) ExpireSweep(ctx context.Context, asOf time.Time) (int, error) {
	expired := 0

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		due, err := r.Remediations.ListPendingPastDeadline(ctx, asOf.UTC())
		if err != nil {
			return err
		}
		for i := range due {
			due[i].State = domain.StateExpired
			due[i].PendingKey = nil
			if err := r.Remediations.Save(ctx, &due[i]); err != nil {
				return err
			}
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		metrics.RemediationsExpiredTotal.Add(float64(expired))
		u.log.Info("remediation sweep", zap.Int("expired", expired), zap.Time("as_of", asOf))
	}
	return expired, nil
}

// History lists every remediation request recorded for a tender.
func (u *Usecase) History(ctx context.Context, tenderID string) ([]RequestDTO, error) {
	var out []RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		t, err := r.Tenders.GetByTenderID(ctx, tenderID)
		if err != nil {
			return err
		}
		reqs, err := r.Remediations.ListByTender(ctx, t.ID)
		if err != nil {
			return err
		}
		out = make([]RequestDTO, 0, len(reqs))
		for i := range reqs {
			out = append(out, *toDTO(&reqs[i], tenderID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// requireDisqualification verifies the cure window is anchored to a recorded
// Phase-A failure for this document.
func requireDisqualification(ctx context.Context, r uow.Repos, tenderPK, documentPK uint64) error {
	disqs, err := r.Evaluations.ListDisqualifications(ctx, tenderPK)
	if err != nil {
		return err
	}
	for i := range disqs {
		if disqs[i].DocumentID == documentPK {
			return nil
		}
	}
	return domain.ErrNotDisqualified
}

func toDTO(r *domain.Request, tenderID string) *RequestDTO {
	return &RequestDTO{
		RequestID:   r.RequestID,
		TenderID:    tenderID,
		DocumentID:  r.DocumentID,
		State:       string(r.State),
		RequestedAt: r.RequestedAt,
		Deadline:    r.Deadline,
		DeliveredAt: r.DeliveredAt,
	}
}
