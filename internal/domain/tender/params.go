package tender

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidParams: the stored evaluation parameter blob fails validation.
var ErrInvalidParams = errors.New("invalid evaluation parameters")

type Policy string

const (
	PolicyLowestPrice    Policy = "lowest_price"
	PolicyWeightedPoints Policy = "weighted_points"
)

const DefaultRemediationWindowDays = 5

// EvalParams is the closed form of the per-tender evaluation configuration.
// The UI layer stores it as a JSON blob; it is parsed and validated here once,
// at load time.
type EvalParams struct {
	Policy                Policy `json:"policy"`
	RemediationWindowDays int    `json:"remediation_window_days"`
}

// ParseEvalParams decodes and validates a stored parameter blob. An empty
// blob yields the defaults (lowest-price, standard remediation window).
func ParseEvalParams(raw string) (EvalParams, error) {
	p := EvalParams{
		Policy:                PolicyLowestPrice,
		RemediationWindowDays: DefaultRemediationWindowDays,
	}
	if raw == "" {
		return p, nil
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return EvalParams{}, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if p.Policy == "" {
		p.Policy = PolicyLowestPrice
	}
	switch p.Policy {
	case PolicyLowestPrice, PolicyWeightedPoints:
	default:
		return EvalParams{}, fmt.Errorf("%w: unknown policy %q", ErrInvalidParams, p.Policy)
	}
	if p.RemediationWindowDays < 0 {
		return EvalParams{}, fmt.Errorf("%w: negative remediation window %d", ErrInvalidParams, p.RemediationWindowDays)
	}
	if p.RemediationWindowDays == 0 {
		p.RemediationWindowDays = DefaultRemediationWindowDays
	}
	return p, nil
}

func (p EvalParams) Encode() string {
	b, _ := json.Marshal(p)
	return string(b)
}
