package domain

import "time"

// UserRole enumerates dashboard roles. This is the single role enum for the
// service; every consumer derives Capabilities from it and never branches on
// raw role strings.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleCareAdmin UserRole = "care_admin"
	RoleCareTeam  UserRole = "care_team"
	RoleBrandUser UserRole = "brand_user"
)

// ValidRole reports whether the value is a known role.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleCareAdmin, RoleCareTeam, RoleBrandUser:
		return true
	}
	return false
}

// BrandRole enumerates sub-roles a brand user holds within their brand.
type BrandRole string

const (
	BrandRoleOwner  BrandRole = "owner"
	BrandRoleMember BrandRole = "member"
)

// ValidBrandRole reports whether the value is a known brand sub-role.
func ValidBrandRole(r BrandRole) bool {
	return r == BrandRoleOwner || r == BrandRoleMember
}

// UserStatus represents lifecycle states for a dashboard account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for dashboard accounts. BrandID and BrandRole are
// populated only for brand_user accounts.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Role         UserRole
	BrandID      *string
	BrandRole    *BrandRole
	AvatarURL    *string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
