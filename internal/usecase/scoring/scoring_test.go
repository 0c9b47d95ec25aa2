package scoring

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zoeccivil/licitaciones-engine/internal/domain/evaluation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
	"github.com/zoeccivil/licitaciones-engine/internal/usecase/qualification"
)

func qres(bidderPK uint64, name string, amount float64, submitted time.Time) qualification.OfferResult {
	return qualification.OfferResult{
		Offer:     tender.Offer{BidderID: bidderPK, Amount: amount, SubmittedAt: submitted},
		Bidder:    tender.Bidder{ID: bidderPK, Name: name},
		Qualified: true,
	}
}

func scoreOf(t *testing.T, scored []Scored, name string) decimal.Decimal {
	t.Helper()
	for _, s := range scored {
		if s.Bidder.Name == name {
			return s.Score
		}
	}
	t.Fatalf("no score for %q", name)
	return decimal.Zero
}

func TestLowestPrice_InverseDenseRank(t *testing.T) {
	now := time.Now()
	in := []qualification.OfferResult{
		qres(1, "Alfa", 300.00, now),
		qres(2, "Beta", 100.00, now),
		qres(3, "Gamma", 200.00, now),
	}
	out := LowestPrice(in)
	if len(out) != 3 {
		t.Fatalf("scored %d offers, want 3", len(out))
	}
	// 3 distinct amounts: lowest gets 100, then 66.67, then 33.33
	if got := scoreOf(t, out, "Beta"); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("lowest amount score = %s, want 100", got)
	}
	want := decimal.NewFromInt(200).Div(decimal.NewFromInt(3))
	if got := scoreOf(t, out, "Gamma"); !got.Equal(want) {
		t.Fatalf("middle amount score = %s, want %s", got, want)
	}
	if a, b := scoreOf(t, out, "Beta"), scoreOf(t, out, "Gamma"); !a.GreaterThan(b) {
		t.Fatalf("ordering broken: %s <= %s", a, b)
	}
}

func TestLowestPrice_EqualAmountsShareRank(t *testing.T) {
	now := time.Now()
	in := []qualification.OfferResult{
		qres(1, "Alfa", 150.00, now),
		qres(2, "Beta", 150.00, now),
		qres(3, "Gamma", 151.00, now),
	}
	out := LowestPrice(in)
	// 2 distinct amounts: the shared lowest rank scores 100 for both
	a, b := scoreOf(t, out, "Alfa"), scoreOf(t, out, "Beta")
	if !a.Equal(b) {
		t.Fatalf("equal amounts scored differently: %s vs %s", a, b)
	}
	if !a.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("shared lowest score = %s, want 100", a)
	}
	if got := scoreOf(t, out, "Gamma"); !got.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("second rank score = %s, want 50", got)
	}
}

func TestLowestPrice_SkipsUnqualified(t *testing.T) {
	now := time.Now()
	dq := qres(2, "Beta", 1.00, now)
	dq.Qualified = false
	out := LowestPrice([]qualification.OfferResult{qres(1, "Alfa", 500.00, now), dq})
	if len(out) != 1 {
		t.Fatalf("scored %d offers, want 1", len(out))
	}
	// Alfa is alone in the ranking and takes the full score even though
	// Beta's (disqualified) amount was lower.
	if got := scoreOf(t, out, "Alfa"); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("sole qualified score = %s, want 100", got)
	}
}

func TestLowestPrice_Deterministic(t *testing.T) {
	now := time.Now()
	in := []qualification.OfferResult{
		qres(1, "Alfa", 300.10, now),
		qres(2, "Beta", 100.25, now),
		qres(3, "Gamma", 200.50, now),
		qres(4, "Delta", 100.25, now),
	}
	first := LowestPrice(in)
	for i := 0; i < 10; i++ {
		again := LowestPrice(in)
		for j := range first {
			if !first[j].Score.Equal(again[j].Score) || first[j].Bidder.Name != again[j].Bidder.Name {
				t.Fatalf("run %d not identical at %d: %+v vs %+v", i, j, first[j], again[j])
			}
		}
	}
}

func TestWeightedPoints_WeightedMean(t *testing.T) {
	now := time.Now()
	criteria := []evaluation.Criterion{
		{ID: 10, Name: "price", Weight: 60, Active: true},
		{ID: 11, Name: "term", Weight: 40, Active: true},
	}
	points := []evaluation.CriterionScore{
		{CriterionID: 10, BidderName: "Alfa", Points: 80},
		{CriterionID: 11, BidderName: "Alfa", Points: 50},
	}
	out, err := WeightedPoints([]qualification.OfferResult{qres(1, "Alfa", 100, now)}, criteria, points, "1")
	if err != nil {
		t.Fatalf("WeightedPoints: %v", err)
	}
	// (80*60 + 50*40) / 100 = 68
	if got := scoreOf(t, out, "Alfa"); !got.Equal(decimal.NewFromInt(68)) {
		t.Fatalf("weighted score = %s, want 68", got)
	}
}

func TestWeightedPoints_InactiveCriteriaSkipped(t *testing.T) {
	now := time.Now()
	criteria := []evaluation.Criterion{
		{ID: 10, Weight: 50, Active: true},
		{ID: 11, Weight: 50, Active: false}, // stale rows below must not count
	}
	points := []evaluation.CriterionScore{
		{CriterionID: 10, BidderName: "Alfa", Points: 70},
		{CriterionID: 11, BidderName: "Alfa", Points: 10},
	}
	out, err := WeightedPoints([]qualification.OfferResult{qres(1, "Alfa", 100, now)}, criteria, points, "1")
	if err != nil {
		t.Fatalf("WeightedPoints: %v", err)
	}
	if got := scoreOf(t, out, "Alfa"); !got.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("score with inactive criterion = %s, want 70", got)
	}
}

func TestWeightedPoints_ZeroWeightSum(t *testing.T) {
	now := time.Now()
	criteria := []evaluation.Criterion{{ID: 10, Weight: 0, Active: true}}
	if _, err := WeightedPoints([]qualification.OfferResult{qres(1, "Alfa", 100, now)}, criteria, nil, "1"); err != evaluation.ErrInvalidWeightConfiguration {
		t.Fatalf("err = %v, want ErrInvalidWeightConfiguration", err)
	}
	if _, err := WeightedPoints([]qualification.OfferResult{qres(1, "Alfa", 100, now)}, nil, nil, "1"); err != evaluation.ErrInvalidWeightConfiguration {
		t.Fatalf("no criteria: err = %v, want ErrInvalidWeightConfiguration", err)
	}
}

func TestResolvePoints_Specificity(t *testing.T) {
	points := []evaluation.CriterionScore{
		{CriterionID: 10, Points: 10},                                      // tender-wide default
		{CriterionID: 10, LotNumber: "2", Points: 20},                      // lot default
		{CriterionID: 10, BidderName: "Alfa", Points: 30},                  // bidder global
		{CriterionID: 10, BidderName: "Alfa", LotNumber: "2", Points: 40},  // bidder+lot
		{CriterionID: 10, BidderName: "Beta", LotNumber: "9", Points: 99},  // other bidder/lot
	}
	cases := []struct {
		bidder, lot string
		want        int
	}{
		{"Alfa", "2", 40},
		{"alfa ", "2", 40}, // names compare normalized
		{"Alfa", "1", 30},
		{"Beta", "2", 20},
		{"Beta", "1", 10},
	}
	for _, tc := range cases {
		if got := resolvePoints(points, 10, tc.bidder, tc.lot); got != tc.want {
			t.Fatalf("resolvePoints(%q,%q) = %d, want %d", tc.bidder, tc.lot, got, tc.want)
		}
	}
	if got := resolvePoints(points, 99, "Alfa", "2"); got != 0 {
		t.Fatalf("unknown criterion = %d, want 0", got)
	}
}

func TestScore_DispatchesOnPolicy(t *testing.T) {
	now := time.Now()
	in := []qualification.OfferResult{qres(1, "Alfa", 100, now)}

	out, err := Score(tender.PolicyLowestPrice, in, nil, nil, "1")
	if err != nil || len(out) != 1 {
		t.Fatalf("lowest price dispatch: out=%v err=%v", out, err)
	}

	if _, err := Score(tender.PolicyWeightedPoints, in, nil, nil, "1"); err != evaluation.ErrInvalidWeightConfiguration {
		t.Fatalf("weighted dispatch should surface weight error, got %v", err)
	}
}
