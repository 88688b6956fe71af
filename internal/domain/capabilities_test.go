package domain

import "testing"

func TestResolveCapabilities(t *testing.T) {
	cases := []struct {
		role UserRole
		want Capabilities
	}{
		{RoleAdmin, Capabilities{IsAdmin: true}},
		{RoleCareAdmin, Capabilities{IsCareUser: true, IsCareAdmin: true}},
		{RoleCareTeam, Capabilities{IsCareUser: true}},
		{RoleBrandUser, Capabilities{}},
	}

	for _, tc := range cases {
		if got := ResolveCapabilities(tc.role); got != tc.want {
			t.Errorf("ResolveCapabilities(%s) = %+v, want %+v", tc.role, got, tc.want)
		}
	}
}

func TestEffectiveRole(t *testing.T) {
	override := RoleCareTeam
	if got := EffectiveRole(RoleAdmin, &override); got != RoleCareTeam {
		t.Errorf("override should replace effective role, got %s", got)
	}
	if got := EffectiveRole(RoleAdmin, nil); got != RoleAdmin {
		t.Errorf("nil override should keep real role, got %s", got)
	}

	bogus := UserRole("superuser")
	if got := EffectiveRole(RoleCareAdmin, &bogus); got != RoleCareAdmin {
		t.Errorf("invalid override must be ignored, got %s", got)
	}
}
