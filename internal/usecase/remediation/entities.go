package remediation

import (
	"time"
)

type RequestInput struct {
	TenderID   string // public hex-32 tender id
	DocumentID uint64
	// WindowDays overrides the tender's configured remediation window when >0.
	WindowDays  int
	RequestedAt time.Time
}

type DeliverInput struct {
	RequestID   string
	DeliveredAt time.Time
}

type RequestDTO struct {
	RequestID   string     `json:"request_id"`
	TenderID    string     `json:"tender_id"`
	DocumentID  uint64     `json:"document_id"`
	State       string     `json:"state"`
	RequestedAt time.Time  `json:"requested_at"`
	Deadline    time.Time  `json:"deadline"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}
