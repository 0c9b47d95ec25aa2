// Package adjudication picks one winner per lot from the scored offers.
// Selection is deterministic: highest score, then earliest submission, then
// lexicographically smaller bidder name; anything still tied is refused
// rather than guessed.
package adjudication

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zoeccivil/licitaciones-engine/internal/domain/evaluation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
	"github.com/zoeccivil/licitaciones-engine/internal/usecase/scoring"
)

// Outcome carries the records the caller persists atomically with the lot.
type Outcome struct {
	Winner  scoring.Scored
	Record  evaluation.WinnerRecord
	History evaluation.HistoricalWin
	// IsOurs is set when the winner matches the tender's our-company set.
	IsOurs     bool
	OurCompany string
}

// Resolve selects the winner among scored offers. Only qualified offers ever
// reach this point; disqualified ones were excluded at the source, so a
// disqualified offer can never be marked winner regardless of its numbers.
// Returns nil with no error when nothing is scored (lot stays unadjudicated).
func Resolve(lot tender.Lot, scored []scoring.Scored, ourCompanies map[string]string, asOf time.Time) (*Outcome, error) {
	if len(scored) == 0 {
		return nil, nil
	}

	ranked := make([]scoring.Scored, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		if c := ranked[i].Score.Cmp(ranked[j].Score); c != 0 {
			return c > 0
		}
		if !ranked[i].Offer.SubmittedAt.Equal(ranked[j].Offer.SubmittedAt) {
			return ranked[i].Offer.SubmittedAt.Before(ranked[j].Offer.SubmittedAt)
		}
		return tender.NormalizeName(ranked[i].Bidder.Name) < tender.NormalizeName(ranked[j].Bidder.Name)
	})

	top := ranked[0]
	if len(ranked) > 1 && tied(top, ranked[1]) {
		return nil, fmt.Errorf("lot %s: %w between %q and %q", lot.Number, evaluation.ErrUnresolvedTie, top.Bidder.Name, ranked[1].Bidder.Name)
	}

	winnerName := strings.TrimSpace(top.Bidder.Name)
	ourName, isOurs := ourCompanies[tender.NormalizeName(winnerName)]

	score, _ := top.Score.Round(6).Float64()
	out := &Outcome{
		Winner:     top,
		IsOurs:     isOurs,
		OurCompany: ourName,
		Record: evaluation.WinnerRecord{
			TenderID:   lot.TenderID,
			LotID:      lot.ID,
			LotNumber:  lot.Number,
			WinnerName: winnerName,
			IsOurs:     isOurs,
			OurCompany: ourName,
			Score:      score,
		},
		History: evaluation.HistoricalWin{
			TenderID:   lot.TenderID,
			LotID:      lot.ID,
			BidderName: winnerName,
			WonOn:      asOf.UTC().Truncate(24 * time.Hour),
		},
	}
	return out, nil
}

// tied reports whether two entries survive every tie-break rule unresolved:
// equal score, equal submission instant, equal normalized name.
func tied(a, b scoring.Scored) bool {
	return a.Score.Cmp(b.Score) == 0 &&
		a.Offer.SubmittedAt.Equal(b.Offer.SubmittedAt) &&
		tender.NormalizeName(a.Bidder.Name) == tender.NormalizeName(b.Bidder.Name)
}

// ApplyToLot writes the outcome onto the lot's winner fields. The original
// our-company assignment is preserved when the winner is not ours.
func ApplyToLot(l *tender.Lot, out *Outcome) {
	l.WinnerName = out.Record.WinnerName
	if out.IsOurs {
		l.WonByUs = true
		l.OurCompany = out.OurCompany
	} else {
		l.WonByUs = false
	}
}
