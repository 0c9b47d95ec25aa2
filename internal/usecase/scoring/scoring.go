// Package scoring computes Phase-B scores for qualified offers. Two
// interchangeable policies exist: lowest-price inverse ranking and weighted
// criterion points ("BNB"). All arithmetic uses decimal values so equal
// inputs always produce bit-identical scores.
package scoring

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/zoeccivil/licitaciones-engine/internal/domain/evaluation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
	"github.com/zoeccivil/licitaciones-engine/internal/usecase/qualification"
)

// monetaryPrecision matches the 2-decimal offer amounts.
const monetaryPrecision int32 = 2

var hundred = decimal.NewFromInt(100)

// Scored is one qualified offer with its score. Disqualified offers never
// appear here; absence, not zero, keeps them out of any ranking.
type Scored struct {
	Offer  tender.Offer
	Bidder tender.Bidder
	Score  decimal.Decimal
}

// Score dispatches on the tender's configured policy.
func Score(policy tender.Policy, qualified []qualification.OfferResult, criteria []evaluation.Criterion, points []evaluation.CriterionScore, lotNumber string) ([]Scored, error) {
	switch policy {
	case tender.PolicyWeightedPoints:
		return WeightedPoints(qualified, criteria, points, lotNumber)
	default:
		return LowestPrice(qualified), nil
	}
}

// LowestPrice scores by inverse dense rank of the offer amount: the lowest
// amount takes the top score, equal amounts share a rank. Ranks are mapped
// onto 0–100 so both policies order on the same scale.
func LowestPrice(qualified []qualification.OfferResult) []Scored {
	var amounts []decimal.Decimal
	seen := make(map[string]bool)
	for _, q := range qualified {
		if !q.Qualified {
			continue
		}
		amt := decimal.NewFromFloat(q.Offer.Amount).Round(monetaryPrecision)
		if !seen[amt.String()] {
			seen[amt.String()] = true
			amounts = append(amounts, amt)
		}
	}
	sort.Slice(amounts, func(i, j int) bool { return amounts[i].LessThan(amounts[j]) })

	rankOf := make(map[string]int, len(amounts))
	for i, a := range amounts {
		rankOf[a.String()] = i
	}
	n := decimal.NewFromInt(int64(len(amounts)))

	out := make([]Scored, 0, len(qualified))
	for _, q := range qualified {
		if !q.Qualified {
			continue
		}
		amt := decimal.NewFromFloat(q.Offer.Amount).Round(monetaryPrecision)
		rank := rankOf[amt.String()]
		score := hundred.Mul(decimal.NewFromInt(int64(len(amounts) - rank))).Div(n)
		out = append(out, Scored{Offer: q.Offer, Bidder: q.Bidder, Score: score})
	}
	return out
}

// WeightedPoints scores each qualified offer as the weighted mean of its
// criterion points over the active criteria: Σ(points×weight)/Σ(weight),
// already on the 0–100 scale when points are. Inactive criteria are skipped
// even when stale score rows exist for them.
func WeightedPoints(qualified []qualification.OfferResult, criteria []evaluation.Criterion, points []evaluation.CriterionScore, lotNumber string) ([]Scored, error) {
	weightSum := decimal.Zero
	active := make([]evaluation.Criterion, 0, len(criteria))
	for _, c := range criteria {
		if !c.Active {
			continue
		}
		active = append(active, c)
		weightSum = weightSum.Add(decimal.NewFromFloat(c.Weight))
	}
	if !weightSum.IsPositive() {
		return nil, evaluation.ErrInvalidWeightConfiguration
	}

	out := make([]Scored, 0, len(qualified))
	for _, q := range qualified {
		if !q.Qualified {
			continue
		}
		total := decimal.Zero
		for _, c := range active {
			p := resolvePoints(points, c.ID, q.Bidder.Name, lotNumber)
			total = total.Add(decimal.NewFromInt(int64(p)).Mul(decimal.NewFromFloat(c.Weight)))
		}
		out = append(out, Scored{Offer: q.Offer, Bidder: q.Bidder, Score: total.Div(weightSum)})
	}
	return out, nil
}

// resolvePoints finds the most specific score row for (criterion, bidder,
// lot): bidder+lot beats bidder-global beats the tender-wide default. No row
// means zero points.
func resolvePoints(points []evaluation.CriterionScore, criterionPK uint64, bidderName, lotNumber string) int {
	bidderKey := tender.NormalizeName(bidderName)
	best := -1
	value := 0
	for _, s := range points {
		if s.CriterionID != criterionPK {
			continue
		}
		scoreKey := tender.NormalizeName(s.BidderName)
		if scoreKey != "" && scoreKey != bidderKey {
			continue
		}
		if s.LotNumber != "" && s.LotNumber != lotNumber {
			continue
		}

		specificity := 0
		if scoreKey != "" {
			specificity += 2
		}
		if s.LotNumber != "" {
			specificity++
		}
		if specificity > best {
			best = specificity
			value = s.Points
		}
	}
	return value
}
