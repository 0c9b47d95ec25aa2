package evaluation

import "context"

type Repository interface {
	GetCriteria(ctx context.Context, tenderPK uint64) ([]Criterion, error)
	GetCriterionScores(ctx context.Context, tenderPK uint64) ([]CriterionScore, error)

	// FindDisqualification locates an existing record for the same failure so
	// re-runs stay idempotent (records are immutable, never rewritten).
	FindDisqualification(ctx context.Context, lotPK uint64, bidderName string, documentPK uint64) (*Disqualification, error)
	SaveDisqualification(ctx context.Context, d *Disqualification) error
	ListDisqualifications(ctx context.Context, tenderPK uint64) ([]Disqualification, error)

	GetWinnerRecord(ctx context.Context, lotPK uint64) (*WinnerRecord, error)
	// SaveWinnerRecord upserts by lot: a re-evaluation supersedes the record
	// in place rather than duplicating it.
	SaveWinnerRecord(ctx context.Context, w *WinnerRecord) error
	ListWinnerRecords(ctx context.Context, tenderPK uint64) ([]WinnerRecord, error)

	// AppendHistoricalWin is a no-op when the (tender, lot, day) row exists.
	AppendHistoricalWin(ctx context.Context, h *HistoricalWin) error
	ListHistoricalWinsByBidder(ctx context.Context, bidderName string) ([]HistoricalWin, error)
}
