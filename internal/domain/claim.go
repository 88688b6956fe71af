package domain

import "time"

// ClaimType enumerates the claim categories a shipment issue can be filed
// under.
type ClaimType string

const (
	ClaimLostInTransit ClaimType = "lost_in_transit"
	ClaimDamaged       ClaimType = "damaged"
	ClaimWrongItem     ClaimType = "wrong_item"
	ClaimMissingItem   ClaimType = "missing_item"
)

// AllClaimTypes lists claim types in display order.
var AllClaimTypes = []ClaimType{ClaimLostInTransit, ClaimDamaged, ClaimWrongItem, ClaimMissingItem}

// ValidClaimType reports whether the value is a known claim type.
func ValidClaimType(t ClaimType) bool {
	for _, known := range AllClaimTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ClaimStatus enumerates claim ticket lifecycle states.
type ClaimStatus string

const (
	ClaimStatusOpen     ClaimStatus = "OPEN"
	ClaimStatusInReview ClaimStatus = "IN_REVIEW"
	ClaimStatusResolved ClaimStatus = "RESOLVED"
	ClaimStatusDenied   ClaimStatus = "DENIED"
)

// ValidClaimStatus reports whether the value is a known lifecycle state.
func ValidClaimStatus(s ClaimStatus) bool {
	switch s {
	case ClaimStatusOpen, ClaimStatusInReview, ClaimStatusResolved, ClaimStatusDenied:
		return true
	}
	return false
}

// Decided reports whether the status is terminal.
func (s ClaimStatus) Decided() bool {
	return s == ClaimStatusResolved || s == ClaimStatusDenied
}

// CanTransition reports whether a ticket may move from s to next. Tickets
// only move forward: an open ticket enters review or is decided directly,
// a ticket in review is decided, and decided tickets are final.
func (s ClaimStatus) CanTransition(next ClaimStatus) bool {
	switch s {
	case ClaimStatusOpen:
		return next == ClaimStatusInReview || next.Decided()
	case ClaimStatusInReview:
		return next.Decided()
	}
	return false
}

// ClaimTicket is a formal request for credit or compensation tied to a
// shipment issue, surfaced in the shipment drawer alongside tracking events.
type ClaimTicket struct {
	ID          string
	ShipmentID  string
	BrandID     *string
	Type        ClaimType
	Status      ClaimStatus
	Description string
	SubmittedBy string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ResolvedAt  *time.Time
}
