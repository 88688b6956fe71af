package navigation

import (
	"reflect"
	"testing"

	"github.com/jetpack-ops/jetpack/internal/domain"
)

func TestComposeAdmin(t *testing.T) {
	layout := Compose(domain.ResolveCapabilities(domain.RoleAdmin))

	if len(layout.Tabs) != 4 {
		t.Errorf("admin should see all tabs, got %v", layout.Tabs)
	}
	if !reflect.DeepEqual(layout.NavItems, []NavItem{NavAdminPanel}) {
		t.Errorf("admin nav should add the admin panel, got %v", layout.NavItems)
	}
	if len(layout.InviteUserTypes) != 4 {
		t.Errorf("admin should invite all four types, got %v", layout.InviteUserTypes)
	}
	if layout.UsersReadOnly {
		t.Error("admin users tab is editable")
	}
}

func TestComposeCareAdmin(t *testing.T) {
	layout := Compose(domain.ResolveCapabilities(domain.RoleCareAdmin))

	if !reflect.DeepEqual(layout.Tabs, []Tab{TabProfile, TabUsers}) {
		t.Errorf("care_admin tabs wrong: %v", layout.Tabs)
	}
	if len(layout.NavItems) != 0 {
		t.Errorf("care_admin gets no extra nav items, got %v", layout.NavItems)
	}
	want := []domain.UserRole{domain.RoleCareTeam, domain.RoleBrandUser}
	if !reflect.DeepEqual(layout.InviteUserTypes, want) {
		t.Errorf("care_admin invite types = %v, want %v", layout.InviteUserTypes, want)
	}
}

func TestComposeCareTeam(t *testing.T) {
	layout := Compose(domain.ResolveCapabilities(domain.RoleCareTeam))

	if !layout.UsersReadOnly {
		t.Error("care_team users tab is read-only")
	}
	if len(layout.InviteUserTypes) != 0 {
		t.Errorf("care_team cannot invite, got %v", layout.InviteUserTypes)
	}
}

func TestComposeBrandUser(t *testing.T) {
	layout := Compose(domain.ResolveCapabilities(domain.RoleBrandUser))

	if !reflect.DeepEqual(layout.Tabs, []Tab{TabProfile, TabUsers, TabBilling}) {
		t.Errorf("brand_user tabs wrong: %v", layout.Tabs)
	}
	if !reflect.DeepEqual(layout.NavItems, []NavItem{NavBilling}) {
		t.Errorf("brand_user nav should add billing, got %v", layout.NavItems)
	}
	if len(layout.InviteUserTypes) != 0 {
		t.Errorf("brand_user cannot invite, got %v", layout.InviteUserTypes)
	}
}

func TestCanInvite(t *testing.T) {
	careAdmin := domain.ResolveCapabilities(domain.RoleCareAdmin)
	if CanInvite(careAdmin, domain.RoleAdmin) {
		t.Error("care_admin must not invite admins")
	}
	if !CanInvite(careAdmin, domain.RoleCareTeam) {
		t.Error("care_admin may invite care_team")
	}
	if CanInvite(domain.ResolveCapabilities(domain.RoleCareTeam), domain.RoleBrandUser) {
		t.Error("care_team cannot invite anyone")
	}
}

func TestInviteFieldsFor(t *testing.T) {
	if fields := InviteFieldsFor(domain.RoleBrandUser); len(fields) != 2 {
		t.Errorf("brand_user invites need brand assignment and sub-role, got %v", fields)
	}
	if fields := InviteFieldsFor(domain.RoleCareTeam); fields != nil {
		t.Errorf("non-brand invites carry no extra fields, got %v", fields)
	}
}

func TestNormalizeInviteClearsStaleBrand(t *testing.T) {
	brandID := "brand-123"
	brandRole := domain.BrandRoleMember

	gotID, gotRole := NormalizeInvite(domain.RoleCareTeam, &brandID, &brandRole)
	if gotID != nil || gotRole != nil {
		t.Error("switching away from brand_user must clear the brand selection")
	}

	gotID, gotRole = NormalizeInvite(domain.RoleBrandUser, &brandID, &brandRole)
	if gotID == nil || *gotID != brandID || gotRole == nil {
		t.Error("brand_user invites keep the brand selection")
	}
}
