package tender

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type State string

const (
	StateDraft        State = "draft"
	StateActive       State = "active"
	StatePhaseA       State = "phase_a"
	StatePhaseB       State = "phase_b"
	StateAdjudicated  State = "adjudicated"
	StateFinalized    State = "finalized"
	StateDisqualified State = "disqualified"
)

// Tender is one competitive process ("licitación"). Lots are awarded
// independently; the tender itself only tracks overall lifecycle state.
type Tender struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	TenderID      string `gorm:"size:32;uniqueIndex:ux_tenders_tender_id" json:"tender_id"`
	ProcessName   string `gorm:"size:255" json:"process_name"`
	ProcessNumber string `gorm:"size:64;uniqueIndex:ux_tenders_process_number" json:"process_number"`
	Institution   string `gorm:"size:255" json:"institution"`
	State         State  `gorm:"size:16;default:'draft'" json:"state"`

	// Raw evaluation parameters as stored by the UI layer. Parsed once via
	// ParseEvalParams; never interpreted ad hoc at evaluation time.
	EvalParamsRaw string `gorm:"type:text" json:"-"`

	DisqualifiedReason string `gorm:"type:text" json:"disqualified_reason,omitempty"`

	SubmissionDeadline *time.Time `gorm:"type:date" json:"submission_deadline,omitempty"`
	OpeningDate        *time.Time `gorm:"type:date" json:"opening_date,omitempty"`

	OurCompanies []OurCompany `gorm:"foreignKey:TenderID;constraint:OnDelete:CASCADE" json:"our_companies"`
	Lots         []Lot        `gorm:"foreignKey:TenderID;constraint:OnDelete:CASCADE" json:"lots"`

	StateUpdatedAt time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tender) TableName() string { return "tenders" }

// OurCompany is one of the user-operated bidding entities registered on a
// tender. Winner names are matched against this set, never special-cased.
type OurCompany struct {
	ID       uint64 `gorm:"primaryKey;column:id" json:"-"`
	TenderID uint64 `gorm:"index:idx_our_companies_tender" json:"-"`
	Name     string `gorm:"size:255" json:"name"`
}

func (OurCompany) TableName() string { return "our_companies" }

type Lot struct {
	ID       uint64 `gorm:"primaryKey;column:id" json:"-"`
	TenderID uint64 `gorm:"index:idx_lots_tender;uniqueIndex:ux_lots_tender_number" json:"-"`
	// Number is the business key within the tender; lot numbers are free-form
	// strings ("1", "2A") and offers reference them softly.
	Number string `gorm:"size:32;uniqueIndex:ux_lots_tender_number" json:"number"`
	Name   string `gorm:"size:255" json:"name"`

	BaseAmount         float64 `gorm:"type:decimal(18,2)" json:"base_amount"`
	PersonalBaseAmount float64 `gorm:"type:decimal(18,2)" json:"personal_base_amount"`
	OfferedAmount      float64 `gorm:"type:decimal(18,2)" json:"offered_amount"`

	WeParticipate bool `gorm:"default:true" json:"we_participate"`
	PhaseAPassed  bool `json:"phase_a_passed"`

	// Winner fields are written only by an evaluation run; once recorded they
	// change only when a new run supersedes them.
	WinnerName string `gorm:"size:255" json:"winner_name"`
	WonByUs    bool   `json:"won_by_us"`
	OurCompany string `gorm:"size:255" json:"our_company,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Lot) TableName() string { return "lots" }

type Bidder struct {
	ID       uint64 `gorm:"primaryKey;column:id" json:"-"`
	BidderID string `gorm:"size:32;uniqueIndex:ux_bidders_bidder_id" json:"bidder_id"`
	TenderID uint64 `gorm:"index:idx_bidders_tender" json:"-"`
	Name     string `gorm:"size:255" json:"name"`
	Comment  string `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Bidder) TableName() string { return "bidders" }

// Offer is one bidder's bid for one lot. LotNumber is a soft reference (lot
// numbers are strings reused across the tender), so the pair is scoped by
// tender through the bidder.
type Offer struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	BidderID  uint64 `gorm:"index;uniqueIndex:ux_offers_bidder_lot" json:"-"`
	TenderID  uint64 `gorm:"index:idx_offers_tender" json:"-"`
	LotNumber string `gorm:"size:32;uniqueIndex:ux_offers_bidder_lot" json:"lot_number"`

	Amount           float64 `gorm:"type:decimal(18,2)" json:"amount"`
	PhaseAPassed     bool    `json:"phase_a_passed"`
	DeliveryTermDays int     `json:"delivery_term_days"`
	WarrantyMonths   int     `json:"warranty_months"`

	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Offer) TableName() string { return "offers" }

// Document is one required submission for a lot. BidderName scopes the
// requirement to a single participant; empty means it applies to everyone.
type Document struct {
	ID       uint64 `gorm:"primaryKey;column:id" json:"-"`
	TenderID uint64 `gorm:"index:idx_documents_tender" json:"-"`
	LotID    uint64 `gorm:"index:idx_documents_lot" json:"-"`

	Code       string `gorm:"size:32" json:"code"`
	Name       string `gorm:"size:255" json:"name"`
	Category   string `gorm:"size:128" json:"category"`
	BidderName string `gorm:"size:255" json:"bidder_name,omitempty"`

	Mandatory bool `json:"mandatory"`
	Presented bool `json:"presented"`
	Reviewed  bool `json:"reviewed"`

	// Remediable documents may enter a subsanación cycle when deficient.
	Remediable          bool       `gorm:"default:true" json:"remediable"`
	NeedsRemediation    bool       `json:"needs_remediation"`
	RemediationDeadline *time.Time `json:"remediation_deadline,omitempty"`

	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }

// NormalizeName canonicalizes participant names for comparison: trimmed and
// case-insensitive.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// OurCompanySet returns normalized name -> registered display name.
func (t *Tender) OurCompanySet() map[string]string {
	set := make(map[string]string, len(t.OurCompanies))
	for _, c := range t.OurCompanies {
		if n := NormalizeName(c.Name); n != "" {
			set[n] = strings.TrimSpace(c.Name)
		}
	}
	return set
}
