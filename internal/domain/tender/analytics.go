package tender

import (
	"github.com/shopspring/decimal"
)

// LotOffer is the flattened view of one offer used by package analytics:
// a lot number, the bidder behind it, and whether it survived Phase A.
type LotOffer struct {
	LotNumber  string
	BidderName string
	Amount     float64
	Qualified  bool
}

// PackageLine is the chosen offer for one lot in a hypothetical package.
type PackageLine struct {
	LotNumber  string
	BidderName string
	Amount     float64
}

type Package struct {
	Total float64
	Lines []PackageLine
}

// BidderPackage is the full-coverage package of a single bidder.
type BidderPackage struct {
	BidderName string
	Total      float64
	LotsCount  int
}

// BestIndividualPackage picks, per lot, the cheapest qualified offer
// regardless of bidder and sums the hypothetical total.
func BestIndividualPackage(lots []Lot, offers []LotOffer) Package {
	byLot := make(map[string][]LotOffer)
	for _, o := range offers {
		if o.Qualified && o.Amount > 0 {
			byLot[o.LotNumber] = append(byLot[o.LotNumber], o)
		}
	}

	total := decimal.Zero
	pkg := Package{}
	for _, lot := range lots {
		var best *LotOffer
		for i := range byLot[lot.Number] {
			o := &byLot[lot.Number][i]
			if best == nil || o.Amount < best.Amount {
				best = o
			}
		}
		if best == nil {
			continue
		}
		total = total.Add(decimal.NewFromFloat(best.Amount))
		pkg.Lines = append(pkg.Lines, PackageLine{
			LotNumber:  lot.Number,
			BidderName: best.BidderName,
			Amount:     best.Amount,
		})
	}
	pkg.Total, _ = total.Float64()
	return pkg
}

// BestBidderPackage returns the bidder with the lowest total among those who
// placed a qualified offer on every lot, or nil when no bidder covers all
// lots.
func BestBidderPackage(lots []Lot, offers []LotOffer) *BidderPackage {
	if len(lots) == 0 {
		return nil
	}

	type agg struct {
		total decimal.Decimal
		lots  map[string]bool
	}
	byBidder := make(map[string]*agg)
	for _, o := range offers {
		if !o.Qualified || o.Amount <= 0 {
			continue
		}
		a := byBidder[o.BidderName]
		if a == nil {
			a = &agg{total: decimal.Zero, lots: make(map[string]bool)}
			byBidder[o.BidderName] = a
		}
		if !a.lots[o.LotNumber] {
			a.lots[o.LotNumber] = true
			a.total = a.total.Add(decimal.NewFromFloat(o.Amount))
		}
	}

	var best *BidderPackage
	for name, a := range byBidder {
		if len(a.lots) != len(lots) {
			continue
		}
		total, _ := a.total.Float64()
		if best == nil || total < best.Total || (total == best.Total && name < best.BidderName) {
			best = &BidderPackage{BidderName: name, Total: total, LotsCount: len(a.lots)}
		}
	}
	return best
}

// TotalBaseAmount sums lot base amounts, optionally only for lots we bid on.
func TotalBaseAmount(lots []Lot, onlyParticipating bool) float64 {
	total := decimal.Zero
	for _, l := range lots {
		if onlyParticipating && !l.WeParticipate {
			continue
		}
		total = total.Add(decimal.NewFromFloat(l.BaseAmount))
	}
	f, _ := total.Float64()
	return f
}

// TotalOfferedAmount sums our offered amounts across lots.
func TotalOfferedAmount(lots []Lot, onlyParticipating bool) float64 {
	total := decimal.Zero
	for _, l := range lots {
		if onlyParticipating && !l.WeParticipate {
			continue
		}
		total = total.Add(decimal.NewFromFloat(l.OfferedAmount))
	}
	f, _ := total.Float64()
	return f
}

// PercentDifference returns the percentage gap between our total offer and
// the base total. With usePersonalBase, a lot's personal base substitutes the
// official base when present.
func PercentDifference(lots []Lot, usePersonalBase bool) float64 {
	base := decimal.Zero
	offered := decimal.Zero
	for _, l := range lots {
		b := decimal.NewFromFloat(l.BaseAmount)
		if usePersonalBase && l.PersonalBaseAmount > 0 {
			b = decimal.NewFromFloat(l.PersonalBaseAmount)
		}
		base = base.Add(b)
		offered = offered.Add(decimal.NewFromFloat(l.OfferedAmount))
	}
	if base.IsZero() {
		return 0
	}
	pct := offered.Sub(base).Div(base).Mul(decimal.NewFromInt(100))
	f, _ := pct.Float64()
	return f
}

// DocCompletionPercent is the share of documents presented and not awaiting
// remediation.
func DocCompletionPercent(docs []Document) float64 {
	if len(docs) == 0 {
		return 0
	}
	done := 0
	for _, d := range docs {
		if d.Presented && !d.NeedsRemediation {
			done++
		}
	}
	return float64(done) / float64(len(docs)) * 100
}
