package domain

import "time"

// InvitationStatus enumerates invite lifecycle states.
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "PENDING"
	InvitationStatusAccepted InvitationStatus = "ACCEPTED"
	InvitationStatusExpired  InvitationStatus = "EXPIRED"
)

// Invitation is a pending account invite. BrandID and BrandRole are set only
// when the invited role is brand_user.
type Invitation struct {
	ID         string
	Email      string
	FullName   *string
	Role       UserRole
	BrandID    *string
	BrandRole  *BrandRole
	Token      string
	InvitedBy  string
	Status     InvitationStatus
	ExpiresAt  time.Time
	AcceptedAt *time.Time
	CreatedAt  time.Time
}

// Expired reports whether the invite can no longer be accepted.
func (i *Invitation) Expired(now time.Time) bool {
	return i.Status != InvitationStatusPending || now.After(i.ExpiresAt)
}
