package dto

import (
	"github.com/jetpack-ops/jetpack/internal/domain"
	"github.com/jetpack-ops/jetpack/internal/navigation"
)

// LoginRequest carries the credential pair.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the signed token alongside the session snapshot.
type LoginResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string            `json:"id"`
	FullName  string            `json:"full_name"`
	Email     string            `json:"email"`
	Role      domain.UserRole   `json:"userType"`
	BrandID   *string           `json:"client_id,omitempty"`
	BrandRole *domain.BrandRole `json:"brandRole,omitempty"`
	AvatarURL *string           `json:"avatar_url,omitempty"`
	Status    domain.UserStatus `json:"status"`
}

// NewUserResponse maps a domain user to its public view.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		BrandID:   u.BrandID,
		BrandRole: u.BrandRole,
		AvatarURL: u.AvatarURL,
		Status:    u.Status,
	}
}

// SessionResponse is everything the client needs to render its chrome: the
// account, the effective role after any dev override, the capability flags,
// and the composed navigation layout.
type SessionResponse struct {
	User          UserResponse        `json:"user"`
	EffectiveRole domain.UserRole     `json:"effectiveRole"`
	Capabilities  domain.Capabilities `json:"capabilities"`
	Layout        navigation.Layout   `json:"layout"`
}

// UpdateProfileRequest carries editable profile fields. Nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

// ChangePasswordRequest carries a password rotation.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// SetAvatarRequest carries the uploaded avatar location.
type SetAvatarRequest struct {
	AvatarURL string `json:"avatar_url"`
}

// DevRoleRequest selects a temporary role override for previewing the
// dashboard as another user type.
type DevRoleRequest struct {
	Role domain.UserRole `json:"role"`
}
