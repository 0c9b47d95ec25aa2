package evaluation

import (
	"time"

	"github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
)

type WinnerDTO struct {
	LotNumber  string  `json:"lot_number"`
	WinnerName string  `json:"winner_name"`
	IsOurs     bool    `json:"is_ours"`
	OurCompany string  `json:"our_company,omitempty"`
	Score      float64 `json:"score"`
}

// LotOutcome reports one lot of a run: a winner, a lot-scoped error kind, or
// neither (no qualified offers — the lot simply stays unadjudicated).
type LotOutcome struct {
	LotNumber string     `json:"lot_number"`
	Winner    *WinnerDTO `json:"winner,omitempty"`
	ErrorKind string     `json:"error,omitempty"`
}

type RunResult struct {
	RunID       string       `json:"run_id"`
	TenderID    string       `json:"tender_id"`
	TenderState tender.State `json:"tender_state"`
	AsOf        time.Time    `json:"as_of"`
	Lots        []LotOutcome `json:"per_lot"`
}

type DisqualificationDTO struct {
	DisqualificationID string    `json:"disqualification_id"`
	LotNumber          string    `json:"lot_number"`
	BidderName         string    `json:"bidder_name"`
	DocumentName       string    `json:"document_name"`
	Comment            string    `json:"comment,omitempty"`
	IsOurs             bool      `json:"is_ours"`
	CreatedAt          time.Time `json:"created_at"`
}

type HistoricalWinDTO struct {
	BidderName string    `json:"bidder_name"`
	WonOn      time.Time `json:"won_on"`
}

// SummaryDTO aggregates tender analytics for the dashboard view: totals over
// the lots we participate in, gap vs the base price, document completion,
// and the two hypothetical best packages.
type SummaryDTO struct {
	TenderID              string                `json:"tender_id"`
	TenderState           tender.State          `json:"tender_state"`
	TotalBaseAmount       float64               `json:"total_base_amount"`
	TotalOfferedAmount    float64               `json:"total_offered_amount"`
	PercentVsOfficialBase float64               `json:"percent_vs_official_base"`
	PercentVsPersonalBase float64               `json:"percent_vs_personal_base"`
	DocCompletionPercent  float64               `json:"doc_completion_percent"`
	BestIndividualPackage tender.Package        `json:"best_individual_package"`
	BestBidderPackage     *tender.BidderPackage `json:"best_bidder_package,omitempty"`
}
