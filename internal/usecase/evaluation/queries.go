package evaluation

import (
	"context"

	"github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/uow"
)

// Results assembles the stored adjudication state of a tender for the UI
// layer: one outcome per lot, winners where recorded.
func (o *Orchestrator) Results(ctx context.Context, tenderID string) (*RunResult, error) {
	var result *RunResult

	err := o.uow.WithinTx(ctx, func(r uow.Repos) error {
		t, err := r.Tenders.GetByTenderID(ctx, tenderID)
		if err != nil {
			return err
		}
		lots, err := r.Tenders.GetLots(ctx, t.ID)
		if err != nil {
			return err
		}
		records, err := r.Evaluations.ListWinnerRecords(ctx, t.ID)
		if err != nil {
			return err
		}

		byLot := make(map[uint64]int, len(records))
		for i := range records {
			byLot[records[i].LotID] = i
		}

		result = &RunResult{TenderID: tenderID, TenderState: t.State, Lots: make([]LotOutcome, 0, len(lots))}
		for _, lot := range lots {
			out := LotOutcome{LotNumber: lot.Number}
			if i, ok := byLot[lot.ID]; ok {
				w := records[i]
				out.Winner = &WinnerDTO{
					LotNumber:  w.LotNumber,
					WinnerName: w.WinnerName,
					IsOurs:     w.IsOurs,
					OurCompany: w.OurCompany,
					Score:      w.Score,
				}
			}
			result.Lots = append(result.Lots, out)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Disqualifications lists the Phase-A failure records of a tender.
func (o *Orchestrator) Disqualifications(ctx context.Context, tenderID string) ([]DisqualificationDTO, error) {
	var out []DisqualificationDTO

	err := o.uow.WithinTx(ctx, func(r uow.Repos) error {
		t, err := r.Tenders.GetByTenderID(ctx, tenderID)
		if err != nil {
			return err
		}
		lots, err := r.Tenders.GetLots(ctx, t.ID)
		if err != nil {
			return err
		}
		numbers := make(map[uint64]string, len(lots))
		for _, l := range lots {
			numbers[l.ID] = l.Number
		}

		ds, err := r.Evaluations.ListDisqualifications(ctx, t.ID)
		if err != nil {
			return err
		}
		out = make([]DisqualificationDTO, 0, len(ds))
		for _, d := range ds {
			out = append(out, DisqualificationDTO{
				DisqualificationID: d.DisqualificationID,
				LotNumber:          numbers[d.LotID],
				BidderName:         d.BidderName,
				DocumentName:       d.DocumentName,
				Comment:            d.Comment,
				IsOurs:             d.IsOurs,
				CreatedAt:          d.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Summary computes the tender analytics view: participation totals, the gap
// against official and personal base prices, document completion, and the
// best hypothetical packages over qualified offers.
func (o *Orchestrator) Summary(ctx context.Context, tenderID string) (*SummaryDTO, error) {
	var out *SummaryDTO

	err := o.uow.WithinTx(ctx, func(r uow.Repos) error {
		t, err := r.Tenders.GetByTenderID(ctx, tenderID)
		if err != nil {
			return err
		}
		lots, err := r.Tenders.GetLots(ctx, t.ID)
		if err != nil {
			return err
		}
		bidders, err := r.Tenders.GetBidders(ctx, t.ID)
		if err != nil {
			return err
		}
		names := make(map[uint64]string, len(bidders))
		for _, b := range bidders {
			names[b.ID] = b.Name
		}

		var lotOffers []tender.LotOffer
		var docs []tender.Document
		for _, lot := range lots {
			offers, err := r.Tenders.GetOffers(ctx, t.ID, lot.Number)
			if err != nil {
				return err
			}
			for _, of := range offers {
				lotOffers = append(lotOffers, tender.LotOffer{
					LotNumber:  lot.Number,
					BidderName: names[of.BidderID],
					Amount:     of.Amount,
					Qualified:  of.PhaseAPassed,
				})
			}
			lotDocs, err := r.Tenders.GetDocuments(ctx, lot.ID)
			if err != nil {
				return err
			}
			docs = append(docs, lotDocs...)
		}

		out = &SummaryDTO{
			TenderID:              tenderID,
			TenderState:           t.State,
			TotalBaseAmount:       tender.TotalBaseAmount(lots, true),
			TotalOfferedAmount:    tender.TotalOfferedAmount(lots, true),
			PercentVsOfficialBase: tender.PercentDifference(lots, false),
			PercentVsPersonalBase: tender.PercentDifference(lots, true),
			DocCompletionPercent:  tender.DocCompletionPercent(docs),
			BestIndividualPackage: tender.BestIndividualPackage(lots, lotOffers),
			BestBidderPackage:     tender.BestBidderPackage(lots, lotOffers),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BidderWins feeds competitor analytics with a bidder's win ledger.
func (o *Orchestrator) BidderWins(ctx context.Context, bidderName string) ([]HistoricalWinDTO, error) {
	var out []HistoricalWinDTO

	err := o.uow.WithinTx(ctx, func(r uow.Repos) error {
		wins, err := r.Evaluations.ListHistoricalWinsByBidder(ctx, bidderName)
		if err != nil {
			return err
		}
		out = make([]HistoricalWinDTO, 0, len(wins))
		for _, w := range wins {
			out = append(out, HistoricalWinDTO{BidderName: w.BidderName, WonOn: w.WonOn})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
