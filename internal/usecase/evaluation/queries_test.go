package evaluation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	domain "github.com/zoeccivil/licitaciones-engine/internal/domain/evaluation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
	"github.com/zoeccivil/licitaciones-engine/internal/testutil/leasemock"
	"github.com/zoeccivil/licitaciones-engine/internal/testutil/storemock"
	"github.com/zoeccivil/licitaciones-engine/internal/testutil/uowmock"
)

func queryOrchestrator(tenders *storemock.TenderRepo, evals *storemock.EvaluationRepo) *Orchestrator {
	return NewOrchestrator(uowmock.Passthrough(tenders, evals, &storemock.RemediationRepo{}, nil), &leasemock.Locker{}, time.Minute, nil)
}

func TestResults(t *testing.T) {
	tenders := &storemock.TenderRepo{
		GetByTenderIDFn: func(ctx context.Context, tenderID string) (*tender.Tender, error) {
			return &tender.Tender{ID: 1, TenderID: tenderID, State: tender.StateAdjudicated}, nil
		},
		GetLotsFn: func(ctx context.Context, tenderPK uint64) ([]tender.Lot, error) {
			return []tender.Lot{
				{ID: 10, Number: "1"},
				{ID: 11, Number: "2"},
			}, nil
		},
	}
	evals := &storemock.EvaluationRepo{
		ListWinnerRecordsFn: func(ctx context.Context, tenderPK uint64) ([]domain.WinnerRecord, error) {
			return []domain.WinnerRecord{
				{LotID: 10, LotNumber: "1", WinnerName: "Alfa SA", Score: 100},
			}, nil
		},
	}
	o := queryOrchestrator(tenders, evals)

	res, err := o.Results(context.Background(), testTenderID)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if res.TenderState != tender.StateAdjudicated || len(res.Lots) != 2 {
		t.Fatalf("results = %+v", res)
	}
	if w := res.Lots[0].Winner; w == nil || w.WinnerName != "Alfa SA" || w.Score != 100 {
		t.Fatalf("lot 1 winner = %+v", res.Lots[0].Winner)
	}
	if res.Lots[1].Winner != nil {
		t.Fatalf("lot 2 has no recorded winner, got %+v", res.Lots[1].Winner)
	}
}

func TestResults_NotFound(t *testing.T) {
	o := queryOrchestrator(&storemock.TenderRepo{}, &storemock.EvaluationRepo{})
	if _, err := o.Results(context.Background(), strings.Repeat("f", 32)); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestDisqualifications_MapsLotNumbers(t *testing.T) {
	tenders := &storemock.TenderRepo{
		GetByTenderIDFn: func(ctx context.Context, tenderID string) (*tender.Tender, error) {
			return &tender.Tender{ID: 1, TenderID: tenderID}, nil
		},
		GetLotsFn: func(ctx context.Context, tenderPK uint64) ([]tender.Lot, error) {
			return []tender.Lot{{ID: 10, Number: "2A"}}, nil
		},
	}
	evals := &storemock.EvaluationRepo{
		ListDisqualificationsFn: func(ctx context.Context, tenderPK uint64) ([]domain.Disqualification, error) {
			return []domain.Disqualification{
				{DisqualificationID: strings.Repeat("d", 32), LotID: 10, BidderName: "Gamma", DocumentName: "Garantía"},
			}, nil
		},
	}
	o := queryOrchestrator(tenders, evals)

	out, err := o.Disqualifications(context.Background(), testTenderID)
	if err != nil {
		t.Fatalf("Disqualifications: %v", err)
	}
	if len(out) != 1 || out[0].LotNumber != "2A" || out[0].BidderName != "Gamma" {
		t.Fatalf("out = %+v", out)
	}
}

func TestSummary(t *testing.T) {
	tenders := &storemock.TenderRepo{
		GetByTenderIDFn: func(ctx context.Context, tenderID string) (*tender.Tender, error) {
			return &tender.Tender{ID: 1, TenderID: tenderID, State: tender.StateActive}, nil
		},
		GetLotsFn: func(ctx context.Context, tenderPK uint64) ([]tender.Lot, error) {
			return []tender.Lot{
				{ID: 10, Number: "1", BaseAmount: 1000, OfferedAmount: 900, WeParticipate: true},
				{ID: 11, Number: "2", BaseAmount: 500, OfferedAmount: 450, WeParticipate: true},
			}, nil
		},
		GetBiddersFn: func(ctx context.Context, tenderPK uint64) ([]tender.Bidder, error) {
			return []tender.Bidder{
				{ID: 1, Name: "Alfa SA"},
				{ID: 2, Name: "Beta SRL"},
			}, nil
		},
		GetOffersFn: func(ctx context.Context, tenderPK uint64, lotNumber string) ([]tender.Offer, error) {
			switch lotNumber {
			case "1":
				return []tender.Offer{
					{BidderID: 1, LotNumber: "1", Amount: 900, PhaseAPassed: true},
					{BidderID: 2, LotNumber: "1", Amount: 950, PhaseAPassed: true},
				}, nil
			case "2":
				// Alfa is cheaper here but did not pass Phase A
				return []tender.Offer{
					{BidderID: 1, LotNumber: "2", Amount: 400, PhaseAPassed: false},
					{BidderID: 2, LotNumber: "2", Amount: 450, PhaseAPassed: true},
				}, nil
			}
			return nil, nil
		},
		GetDocumentsFn: func(ctx context.Context, lotPK uint64) ([]tender.Document, error) {
			if lotPK == 10 {
				return []tender.Document{
					{ID: 1, Presented: true},
					{ID: 2, Presented: false},
				}, nil
			}
			return nil, nil
		},
	}
	o := queryOrchestrator(tenders, &storemock.EvaluationRepo{})

	sum, err := o.Summary(context.Background(), testTenderID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalBaseAmount != 1500 || sum.TotalOfferedAmount != 1350 {
		t.Fatalf("totals = %v/%v, want 1500/1350", sum.TotalBaseAmount, sum.TotalOfferedAmount)
	}
	// (1350 - 1500) / 1500 = -10%
	if sum.PercentVsOfficialBase != -10 {
		t.Fatalf("percent vs base = %v, want -10", sum.PercentVsOfficialBase)
	}
	if sum.DocCompletionPercent != 50 {
		t.Fatalf("doc completion = %v, want 50", sum.DocCompletionPercent)
	}
	// cheapest qualified per lot: Alfa 900 on lot 1, Beta 450 on lot 2
	if sum.BestIndividualPackage.Total != 1350 || len(sum.BestIndividualPackage.Lines) != 2 {
		t.Fatalf("best individual = %+v", sum.BestIndividualPackage)
	}
	if sum.BestIndividualPackage.Lines[0].BidderName != "Alfa SA" || sum.BestIndividualPackage.Lines[1].BidderName != "Beta SRL" {
		t.Fatalf("best individual lines = %+v", sum.BestIndividualPackage.Lines)
	}
	// only Beta covers both lots with qualified offers
	if bp := sum.BestBidderPackage; bp == nil || bp.BidderName != "Beta SRL" || bp.Total != 1400 {
		t.Fatalf("best bidder package = %+v", sum.BestBidderPackage)
	}
}

func TestSummary_NotFound(t *testing.T) {
	o := queryOrchestrator(&storemock.TenderRepo{}, &storemock.EvaluationRepo{})
	if _, err := o.Summary(context.Background(), strings.Repeat("f", 32)); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestBidderWins(t *testing.T) {
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	evals := &storemock.EvaluationRepo{
		ListHistoricalWinsByBidderFn: func(ctx context.Context, bidderName string) ([]domain.HistoricalWin, error) {
			return []domain.HistoricalWin{
				{BidderName: bidderName, WonOn: day},
				{BidderName: bidderName, WonOn: day.AddDate(0, 0, 9)},
			}, nil
		},
	}
	o := queryOrchestrator(&storemock.TenderRepo{}, evals)

	out, err := o.BidderWins(context.Background(), "Alfa SA")
	if err != nil {
		t.Fatalf("BidderWins: %v", err)
	}
	if len(out) != 2 || out[0].BidderName != "Alfa SA" || !out[0].WonOn.Equal(day) {
		t.Fatalf("out = %+v", out)
	}
}
