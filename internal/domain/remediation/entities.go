package remediation

import (
	"errors"
	"fmt"
	"time"
)

type State string

const (
	StatePending   State = "pending"
	StateDelivered State = "delivered"
	StateExpired   State = "expired"
)

var (
	ErrNotFound = errors.New("remediation request not found")
	// ErrDuplicateRemediation: a Pending request already exists for the
	// (tender, document) pair.
	ErrDuplicateRemediation = errors.New("pending remediation already exists")
	// ErrInvalidTransition: the request left Pending already.
	ErrInvalidTransition = errors.New("remediation request is not pending")
	// ErrDeadlinePassed: delivery after the deadline is rejected; the expiry
	// sweep marks the request Expired instead.
	ErrDeadlinePassed = errors.New("remediation deadline has passed")
	// ErrNotRemediable: the document is not flagged for subsanación.
	ErrNotRemediable = errors.New("document is not remediable")
	// ErrNotDisqualified: only a recorded disqualification opens a cure
	// window; the document has none.
	ErrNotDisqualified = errors.New("document has no disqualification on record")
)

// Request tracks one subsanación cycle for a (tender, document) pair.
// Pending is the only live state; Delivered and Expired are terminal.
type Request struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	RequestID  string `gorm:"size:32;uniqueIndex:ux_remediations_request_id" json:"request_id"`
	TenderID   uint64 `gorm:"index:idx_remediations_tender" json:"-"`
	DocumentID uint64 `gorm:"index:idx_remediations_document" json:"-"`

	State State `gorm:"size:16;default:'pending'" json:"state"`

	// PendingKey is "<tender_pk>:<document_pk>" while the request is Pending
	// and NULL once it leaves that state. The unique index makes at-most-one
	// Pending per pair hold even for concurrent creates, on both drivers.
	PendingKey *string `gorm:"size:64;uniqueIndex:ux_remediations_pending" json:"-"`

	RequestedAt time.Time  `json:"requested_at"`
	Deadline    time.Time  `json:"deadline"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Request) TableName() string { return "remediation_requests" }

// PendingKeyFor builds the uniqueness key guarding the single Pending
// request per (tender, document) pair.
func PendingKeyFor(tenderPK, documentPK uint64) string {
	return fmt.Sprintf("%d:%d", tenderPK, documentPK)
}
