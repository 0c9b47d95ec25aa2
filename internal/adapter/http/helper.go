package http

import (
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	evalDomain "github.com/zoeccivil/licitaciones-engine/internal/domain/evaluation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/lease"
	remDomain "github.com/zoeccivil/licitaciones-engine/internal/domain/remediation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
)

// statusFor maps engine errors onto HTTP status codes for the UI layer.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, remDomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, lease.ErrLeaseHeld):
		return http.StatusConflict
	case errors.Is(err, remDomain.ErrDuplicateRemediation):
		return http.StatusConflict
	case errors.Is(err, remDomain.ErrInvalidTransition), errors.Is(err, remDomain.ErrDeadlinePassed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, remDomain.ErrNotRemediable), errors.Is(err, remDomain.ErrNotDisqualified):
		return http.StatusUnprocessableEntity
	case errors.Is(err, evalDomain.ErrInvalidWeightConfiguration), errors.Is(err, tender.ErrInvalidParams):
		return http.StatusUnprocessableEntity
	case errors.Is(err, evalDomain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// parseAsOf reads the optional evaluation date; empty means today.
func parseAsOf(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}
