// Package claims gates the claim-submission entry point. The backend's
// per-type eligibility flags are authoritative; this package derives the
// selectable set, the hide-entirely decision, and tooltip reasons for
// ineligible types.
package claims

import (
	"fmt"

	"github.com/jetpack-ops/jetpack/internal/domain"
)

// Inactivity thresholds, in days, before a shipment qualifies as lost in
// transit.
const (
	DomesticLostThresholdDays      = 15
	InternationalLostThresholdDays = 20
)

// EligibilityInput carries the server-provided flags plus the contextual
// fields used to word tooltip reasons.
type EligibilityInput struct {
	Eligible            map[domain.ClaimType]bool
	IsDelivered         bool
	IsInternational     bool
	DaysSinceLastUpdate int
}

// TypeOption is the per-type outcome: selectable or not, with a one-line
// human reason when not.
type TypeOption struct {
	Type     domain.ClaimType `json:"type"`
	Eligible bool             `json:"eligible"`
	Reason   string           `json:"reason,omitempty"`
}

// Result is the gate's full outcome. ShowEntry false means the submission
// entry point is hidden entirely rather than rendered disabled.
type Result struct {
	ShowEntry bool         `json:"showEntry"`
	Options   []TypeOption `json:"options"`
}

// LostThresholdDays returns the inactivity threshold applicable to the
// shipment.
func LostThresholdDays(international bool) int {
	if international {
		return InternationalLostThresholdDays
	}
	return DomesticLostThresholdDays
}

// Evaluate applies the gate. Server flags decide eligibility; reasons are
// computed locally and are display-only.
func Evaluate(in EligibilityInput) Result {
	options := make([]TypeOption, 0, len(domain.AllClaimTypes))
	anyEligible := false

	for _, claimType := range domain.AllClaimTypes {
		eligible := in.Eligible[claimType]
		opt := TypeOption{Type: claimType, Eligible: eligible}
		if !eligible {
			opt.Reason = ineligibleReason(claimType, in)
		} else {
			anyEligible = true
		}
		options = append(options, opt)
	}

	return Result{ShowEntry: anyEligible, Options: options}
}

func ineligibleReason(claimType domain.ClaimType, in EligibilityInput) string {
	if claimType == domain.ClaimLostInTransit {
		if in.IsDelivered {
			return "Shipment was delivered"
		}
		threshold := LostThresholdDays(in.IsInternational)
		remaining := threshold - in.DaysSinceLastUpdate
		if remaining > 0 {
			return fmt.Sprintf("Requires %d days of inactivity (%d days remaining)", threshold, remaining)
		}
		return fmt.Sprintf("Requires %d days of inactivity", threshold)
	}

	if !in.IsDelivered {
		return "Requires delivery to have occurred"
	}
	return "Not eligible for this shipment"
}
