package evaluation

import (
	"time"
)

// Criterion is one weighted scoring axis of the Phase-B ("BNB") evaluation.
type Criterion struct {
	ID          uint64  `gorm:"primaryKey;column:id" json:"-"`
	CriterionID string  `gorm:"size:32;uniqueIndex:ux_criteria_criterion_id" json:"criterion_id"`
	TenderID    uint64  `gorm:"index:idx_criteria_tender" json:"-"`
	Name        string  `gorm:"size:128" json:"name"`
	Weight      float64 `gorm:"type:decimal(8,4)" json:"weight"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Criterion) TableName() string { return "criteria" }

// CriterionScore assigns integer points under one criterion. Empty BidderName
// is the tender-wide default; empty LotNumber is the global score, which a
// lot-specific row overrides.
type CriterionScore struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	TenderID    uint64 `gorm:"index:idx_criterion_scores_tender" json:"-"`
	CriterionID uint64 `gorm:"index:idx_criterion_scores_criterion" json:"-"`
	BidderName  string `gorm:"size:255" json:"bidder_name,omitempty"`
	LotNumber   string `gorm:"size:32" json:"lot_number,omitempty"`
	Points      int    `json:"points"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CriterionScore) TableName() string { return "criterion_scores" }

// Disqualification is one Phase-A failure: a participant missing one required
// document on one lot. Immutable once created; only the remediation flow can
// unlock a re-run that supersedes its effect.
type Disqualification struct {
	ID                 uint64 `gorm:"primaryKey;column:id" json:"-"`
	DisqualificationID string `gorm:"size:32;uniqueIndex:ux_disqualifications_public_id" json:"disqualification_id"`
	TenderID           uint64 `gorm:"index:idx_disqualifications_tender" json:"-"`
	LotID              uint64 `gorm:"index:idx_disqualifications_lot" json:"-"`
	BidderName         string `gorm:"size:255" json:"bidder_name"`
	DocumentID         uint64 `gorm:"index" json:"-"`
	DocumentName       string `gorm:"size:255" json:"document_name"`
	Comment            string `gorm:"type:text" json:"comment,omitempty"`
	IsOurs             bool   `json:"is_ours"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Disqualification) TableName() string { return "disqualifications" }

// WinnerRecord is the adjudication outcome for one lot. One row per
// (tender, lot); re-evaluation supersedes it in place.
type WinnerRecord struct {
	ID         uint64  `gorm:"primaryKey;column:id" json:"-"`
	TenderID   uint64  `gorm:"index:idx_winner_records_tender" json:"-"`
	LotID      uint64  `gorm:"uniqueIndex:ux_winner_records_lot" json:"-"`
	LotNumber  string  `gorm:"size:32" json:"lot_number"`
	WinnerName string  `gorm:"size:255" json:"winner_name"`
	IsOurs     bool    `json:"is_ours"`
	OurCompany string  `gorm:"size:255" json:"our_company,omitempty"`
	Score      float64 `gorm:"type:decimal(18,6)" json:"score"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WinnerRecord) TableName() string { return "winner_records" }

// HistoricalWin is the append-only ledger feeding competitor analytics.
// Never updated; the unique index keeps one row per (tender, lot, day).
type HistoricalWin struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	TenderID   uint64    `gorm:"uniqueIndex:ux_historical_wins_day" json:"-"`
	LotID      uint64    `gorm:"uniqueIndex:ux_historical_wins_day" json:"-"`
	BidderName string    `gorm:"size:255;index:idx_historical_wins_bidder" json:"bidder_name"`
	WonOn      time.Time `gorm:"type:date;uniqueIndex:ux_historical_wins_day" json:"won_on"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (HistoricalWin) TableName() string { return "historical_wins" }
