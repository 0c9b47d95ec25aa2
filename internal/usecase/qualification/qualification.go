// Package qualification applies the Phase-A document screening: per lot, each
// offer either qualifies or produces one disqualification per failed document.
package qualification

import (
	"fmt"
	"time"

	"github.com/zoeccivil/licitaciones-engine/internal/domain/evaluation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/remediation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
)

// Input carries everything the evaluator needs, preloaded by the caller. The
// evaluator itself never touches the store.
type Input struct {
	Lot     tender.Lot
	Offers  []tender.Offer
	Bidders map[uint64]tender.Bidder // by primary key
	Docs    []tender.Document
	// Remediations maps document PK to its most recent request, if any.
	Remediations map[uint64]remediation.Request
	// OurCompanies is the tender's normalized our-company set.
	OurCompanies map[string]string
	AsOf         time.Time
}

type OfferResult struct {
	Offer     tender.Offer
	Bidder    tender.Bidder
	Qualified bool
}

type Result struct {
	Offers            []OfferResult
	Disqualifications []evaluation.Disqualification
	// PhaseAPassed is true iff at least one offer qualified.
	PhaseAPassed bool
}

// Evaluate classifies every offer on the lot. A lot with zero offers fails
// outright with ErrInsufficientOffers instead of silently passing.
func Evaluate(in Input) (Result, error) {
	if len(in.Offers) == 0 {
		return Result{}, fmt.Errorf("lot %s: %w", in.Lot.Number, evaluation.ErrInsufficientOffers)
	}

	res := Result{Offers: make([]OfferResult, 0, len(in.Offers))}
	for _, offer := range in.Offers {
		bidder := in.Bidders[offer.BidderID]
		failed := failedDocuments(bidder, in)

		qualified := len(failed) == 0
		if qualified {
			res.PhaseAPassed = true
		}

		_, isOurs := in.OurCompanies[tender.NormalizeName(bidder.Name)]
		for i := range failed {
			res.Disqualifications = append(res.Disqualifications, evaluation.Disqualification{
				TenderID:     in.Lot.TenderID,
				LotID:        in.Lot.ID,
				BidderName:   bidder.Name,
				DocumentID:   failed[i].doc.ID,
				DocumentName: failed[i].doc.Name,
				Comment:      failed[i].reason,
				IsOurs:       isOurs,
			})
		}

		res.Offers = append(res.Offers, OfferResult{Offer: offer, Bidder: bidder, Qualified: qualified})
	}
	return res, nil
}

type failure struct {
	doc    tender.Document
	reason string
}

// failedDocuments returns the bidder's mandatory documents that fail
// screening: not presented, or presented-but-deficient with the remediation
// window already lapsed and nothing delivered.
func failedDocuments(bidder tender.Bidder, in Input) []failure {
	var failures []failure
	bidderKey := tender.NormalizeName(bidder.Name)

	for _, doc := range in.Docs {
		if !doc.Mandatory {
			continue
		}
		if doc.BidderName != "" && tender.NormalizeName(doc.BidderName) != bidderKey {
			continue
		}

		if !doc.Presented {
			failures = append(failures, failure{doc: doc, reason: fmt.Sprintf("document %q not presented", doc.Name)})
			continue
		}
		if !doc.NeedsRemediation {
			continue
		}

		// Deficient but presented: only a lapsed, undelivered remediation
		// disqualifies. A live window or a delivered cure keeps the offer in.
		if req, ok := in.Remediations[doc.ID]; ok {
			switch req.State {
			case remediation.StateDelivered:
				continue
			case remediation.StatePending:
				if !req.Deadline.Before(in.AsOf) {
					continue
				}
			}
			failures = append(failures, failure{doc: doc, reason: fmt.Sprintf("document %q: remediation window lapsed without delivery", doc.Name)})
			continue
		}

		if doc.RemediationDeadline != nil && doc.RemediationDeadline.Before(in.AsOf) {
			failures = append(failures, failure{doc: doc, reason: fmt.Sprintf("document %q: remediation deadline %s lapsed", doc.Name, doc.RemediationDeadline.Format("2006-01-02"))})
		}
	}
	return failures
}
