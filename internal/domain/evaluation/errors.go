package evaluation

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientOffers: a lot with zero offers cannot pass Phase A.
	ErrInsufficientOffers = errors.New("insufficient offers for lot")
	// ErrInvalidWeightConfiguration: active criterion weights sum to zero.
	ErrInvalidWeightConfiguration = errors.New("invalid weight configuration")
	// ErrUnresolvedTie: two offers remain tied after every tie-break rule.
	ErrUnresolvedTie = errors.New("unresolved tie")
	// ErrStoreUnavailable wraps any entity-store failure.
	ErrStoreUnavailable = errors.New("entity store unavailable")
)

// WrapStore marks err as a store failure while keeping the chain intact.
func WrapStore(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// Error kinds as reported in per-lot outcomes and API payloads.
const (
	KindInsufficientOffers         = "insufficient_offers"
	KindInvalidWeightConfiguration = "invalid_weight_configuration"
	KindUnresolvedTie              = "unresolved_tie"
	KindDuplicateRemediation       = "duplicate_remediation"
	KindLeaseHeld                  = "lease_held"
	KindStoreUnavailable           = "store_unavailable"
)

// KindOf classifies err into the engine's error taxonomy; unknown errors map
// to the store bucket since everything else the engine touches is the store.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientOffers):
		return KindInsufficientOffers
	case errors.Is(err, ErrInvalidWeightConfiguration):
		return KindInvalidWeightConfiguration
	case errors.Is(err, ErrUnresolvedTie):
		return KindUnresolvedTie
	default:
		return KindStoreUnavailable
	}
}
