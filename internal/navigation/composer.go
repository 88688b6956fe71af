// Package navigation composes the settings tabs, sidebar entries, and invite
// form schema for a set of capabilities. Table-driven; the capability flags
// are the single source of truth for visibility.
package navigation

import "github.com/jetpack-ops/jetpack/internal/domain"

// Tab identifies a settings tab.
type Tab string

const (
	TabProfile Tab = "profile"
	TabUsers   Tab = "users"
	TabBrands  Tab = "brands"
	TabBilling Tab = "billing"
)

// NavItem identifies an extra sidebar entry beyond the common set.
type NavItem string

const (
	NavAdminPanel NavItem = "admin"
	NavBilling    NavItem = "billing"
)

// InviteField names the extra invite-form fields revealed for brand users.
type InviteField string

const (
	FieldBrandAssignment InviteField = "client_id"
	FieldBrandSubRole    InviteField = "brandRole"
)

// Layout is the composed visibility set for one effective role.
type Layout struct {
	Tabs            []Tab             `json:"tabs"`
	UsersReadOnly   bool              `json:"usersReadOnly"`
	NavItems        []NavItem         `json:"navItems"`
	InviteUserTypes []domain.UserRole `json:"inviteUserTypes"`
}

// Compose maps capabilities to the visible surface. Brand users are the
// fall-through case: no capability flag is set for them.
func Compose(caps domain.Capabilities) Layout {
	switch {
	case caps.IsAdmin:
		return Layout{
			Tabs:            []Tab{TabProfile, TabUsers, TabBrands, TabBilling},
			NavItems:        []NavItem{NavAdminPanel},
			InviteUserTypes: []domain.UserRole{domain.RoleAdmin, domain.RoleCareAdmin, domain.RoleCareTeam, domain.RoleBrandUser},
		}
	case caps.IsCareAdmin:
		return Layout{
			Tabs:            []Tab{TabProfile, TabUsers},
			InviteUserTypes: []domain.UserRole{domain.RoleCareTeam, domain.RoleBrandUser},
		}
	case caps.IsCareUser:
		return Layout{
			Tabs:          []Tab{TabProfile, TabUsers},
			UsersReadOnly: true,
		}
	default:
		return Layout{
			Tabs:          []Tab{TabProfile, TabUsers, TabBilling},
			UsersReadOnly: true,
			NavItems:      []NavItem{NavBilling},
		}
	}
}

// CanInvite reports whether the capabilities allow inviting the given role.
func CanInvite(caps domain.Capabilities, invited domain.UserRole) bool {
	for _, allowed := range Compose(caps).InviteUserTypes {
		if allowed == invited {
			return true
		}
	}
	return false
}

// InviteFieldsFor lists the extra form fields required for an invite type.
// Only brand_user invites carry a brand assignment and sub-role.
func InviteFieldsFor(invited domain.UserRole) []InviteField {
	if invited == domain.RoleBrandUser {
		return []InviteField{FieldBrandAssignment, FieldBrandSubRole}
	}
	return nil
}

// NormalizeInvite clears brand assignment fields that do not apply to the
// invited role, so a stale selection from a previous form state is never
// submitted.
func NormalizeInvite(invited domain.UserRole, brandID *string, brandRole *domain.BrandRole) (*string, *domain.BrandRole) {
	if invited == domain.RoleBrandUser {
		return brandID, brandRole
	}
	return nil, nil
}
