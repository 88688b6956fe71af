package domain

// Capabilities are the derived rendering flags every downstream component
// consults. They are recomputed from the current role on each use and never
// stored.
type Capabilities struct {
	IsAdmin     bool `json:"isAdmin"`
	IsCareUser  bool `json:"isCareUser"`
	IsCareAdmin bool `json:"isCareAdmin"`
}

// ResolveCapabilities maps a role to its capability flags.
func ResolveCapabilities(role UserRole) Capabilities {
	return Capabilities{
		IsAdmin:     role == RoleAdmin,
		IsCareUser:  role == RoleCareAdmin || role == RoleCareTeam,
		IsCareAdmin: role == RoleCareAdmin,
	}
}

// EffectiveRole returns the role used for rendering decisions. A developer
// override replaces the real role only when one is set and the override is
// valid; the real session role always governs authorization of outgoing
// mutations.
func EffectiveRole(real UserRole, override *UserRole) UserRole {
	if override != nil && ValidRole(*override) {
		return *override
	}
	return real
}
