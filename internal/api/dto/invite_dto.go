package dto

import (
	"time"

	"github.com/jetpack-ops/jetpack/internal/domain"
	"github.com/jetpack-ops/jetpack/internal/navigation"
)

// InviteRequest carries a new invitation. ClientID and BrandRole are only
// meaningful when UserType is brand_user.
type InviteRequest struct {
	Email     string            `json:"email"`
	FullName  *string           `json:"full_name"`
	UserType  domain.UserRole   `json:"userType"`
	ClientID  *string           `json:"client_id"`
	BrandRole *domain.BrandRole `json:"brandRole"`
}

// InvitationResponse is the pending-invite row in the users view.
type InvitationResponse struct {
	ID        string                  `json:"id"`
	Email     string                  `json:"email"`
	FullName  *string                 `json:"full_name,omitempty"`
	UserType  domain.UserRole         `json:"userType"`
	ClientID  *string                 `json:"client_id,omitempty"`
	BrandRole *domain.BrandRole       `json:"brandRole,omitempty"`
	Status    domain.InvitationStatus `json:"status"`
	ExpiresAt time.Time               `json:"expires_at"`
	CreatedAt time.Time               `json:"created_at"`
}

// NewInvitationResponse maps a domain invitation to its list view.
func NewInvitationResponse(inv *domain.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:        inv.ID,
		Email:     inv.Email,
		FullName:  inv.FullName,
		UserType:  inv.Role,
		ClientID:  inv.BrandID,
		BrandRole: inv.BrandRole,
		Status:    inv.Status,
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
	}
}

// InviteFormSchema tells the client which extra fields an invite type needs.
type InviteFormSchema struct {
	UserType domain.UserRole          `json:"userType"`
	Fields   []navigation.InviteField `json:"fields"`
}

// AcceptInviteRequest redeems an invitation token into an account.
type AcceptInviteRequest struct {
	Token    string `json:"token"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}
