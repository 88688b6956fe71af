package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jetpack-ops/jetpack/internal/config"
	"github.com/jetpack-ops/jetpack/internal/domain"
	"github.com/jetpack-ops/jetpack/internal/events"
)

type mockInviteRepo struct {
	byToken  map[string]*domain.Invitation
	pending  map[string]*domain.Invitation
	created  []*domain.Invitation
	accepted []string
	expired  []string
}

func newMockInviteRepo() *mockInviteRepo {
	return &mockInviteRepo{
		byToken: map[string]*domain.Invitation{},
		pending: map[string]*domain.Invitation{},
	}
}

func (m *mockInviteRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	inv.ID = "inv-1"
	inv.CreatedAt = time.Now()
	m.created = append(m.created, inv)
	m.byToken[inv.Token] = inv
	m.pending[inv.Email] = inv
	return nil
}

func (m *mockInviteRepo) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	if inv, ok := m.byToken[token]; ok {
		return inv, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockInviteRepo) GetPendingByEmail(ctx context.Context, email string) (*domain.Invitation, error) {
	if inv, ok := m.pending[email]; ok {
		return inv, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockInviteRepo) MarkAccepted(ctx context.Context, id string) error {
	m.accepted = append(m.accepted, id)
	return nil
}

func (m *mockInviteRepo) MarkExpired(ctx context.Context, id string) error {
	m.expired = append(m.expired, id)
	return nil
}

func (m *mockInviteRepo) ListPending(ctx context.Context) ([]domain.Invitation, error) {
	out := make([]domain.Invitation, 0, len(m.pending))
	for _, inv := range m.pending {
		out = append(out, *inv)
	}
	return out, nil
}

type mockUserRepo struct {
	byEmail map[string]*domain.User
	created []*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: map[string]*domain.User{}}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = "user-new"
	m.created = append(m.created, user)
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) ListByRoles(ctx context.Context, roles []domain.UserRole) ([]domain.User, error) {
	return nil, nil
}

func (m *mockUserRepo) ListByBrand(ctx context.Context, brandID string) ([]domain.User, error) {
	return nil, nil
}

func inviteTestConfig() config.Config {
	var cfg config.Config
	cfg.Auth.InviteTTLHours = 72
	cfg.Auth.BcryptCost = 4
	return cfg
}

func newInviteService(invites *mockInviteRepo, users *mockUserRepo, brands *mockBrandRepo) *InviteService {
	return NewInviteService(inviteTestConfig(), invites, users, brands, events.NewInMemoryDispatcher())
}

func adminInviter() *domain.User {
	return &domain.User{ID: "admin-1", Role: domain.RoleAdmin}
}

func TestInviteCreateHappyPath(t *testing.T) {
	invites := newMockInviteRepo()
	svc := newInviteService(invites, newMockUserRepo(), newMockBrandRepo())

	inv, err := svc.Create(context.Background(), adminInviter(), InviteInput{
		Email: "New.Agent@Example.com",
		Role:  domain.RoleCareTeam,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inv.Email != "new.agent@example.com" {
		t.Errorf("email should be normalized, got %q", inv.Email)
	}
	if inv.Token == "" {
		t.Error("invite needs a token")
	}
	if inv.Status != domain.InvitationStatusPending {
		t.Errorf("status = %s, want PENDING", inv.Status)
	}
	if remaining := time.Until(inv.ExpiresAt); remaining < 71*time.Hour {
		t.Errorf("expiry should honor the configured TTL, %v remaining", remaining)
	}
	if len(invites.created) != 1 {
		t.Errorf("expected one persisted invite, got %d", len(invites.created))
	}
}

func TestInviteCreateClearsStaleBrandFields(t *testing.T) {
	invites := newMockInviteRepo()
	svc := newInviteService(invites, newMockUserRepo(), newMockBrandRepo())

	brandID := "brand-1"
	brandRole := domain.BrandRoleOwner
	inv, err := svc.Create(context.Background(), adminInviter(), InviteInput{
		Email:     "agent@example.com",
		Role:      domain.RoleCareAdmin,
		BrandID:   &brandID,
		BrandRole: &brandRole,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inv.BrandID != nil || inv.BrandRole != nil {
		t.Error("brand fields must be cleared for non-brand invites")
	}
}

func TestInviteCreateBrandUserRequiresBrand(t *testing.T) {
	svc := newInviteService(newMockInviteRepo(), newMockUserRepo(), newMockBrandRepo())

	_, err := svc.Create(context.Background(), adminInviter(), InviteInput{
		Email: "owner@example.com",
		Role:  domain.RoleBrandUser,
	})
	if err == nil {
		t.Fatal("brand_user invite without a brand must fail")
	}

	missing := "brand-missing"
	_, err = svc.Create(context.Background(), adminInviter(), InviteInput{
		Email:   "owner@example.com",
		Role:    domain.RoleBrandUser,
		BrandID: &missing,
	})
	if err == nil {
		t.Fatal("brand_user invite for an unknown brand must fail")
	}
}

func TestInviteCreateCapabilityGate(t *testing.T) {
	svc := newInviteService(newMockInviteRepo(), newMockUserRepo(), newMockBrandRepo())

	careAdmin := &domain.User{ID: "ca-1", Role: domain.RoleCareAdmin}
	if _, err := svc.Create(context.Background(), careAdmin, InviteInput{
		Email: "x@example.com",
		Role:  domain.RoleAdmin,
	}); err == nil {
		t.Error("care admins may not invite admins")
	}

	careTeam := &domain.User{ID: "ct-1", Role: domain.RoleCareTeam}
	if _, err := svc.Create(context.Background(), careTeam, InviteInput{
		Email: "x@example.com",
		Role:  domain.RoleCareTeam,
	}); err == nil {
		t.Error("care team members may not invite at all")
	}
}

func TestInviteCreateDuplicateChecks(t *testing.T) {
	users := newMockUserRepo()
	users.byEmail["taken@example.com"] = &domain.User{ID: "user-9", Email: "taken@example.com"}
	invites := newMockInviteRepo()
	invites.pending["pending@example.com"] = &domain.Invitation{ID: "inv-9", Email: "pending@example.com"}
	svc := newInviteService(invites, users, newMockBrandRepo())

	if _, err := svc.Create(context.Background(), adminInviter(), InviteInput{
		Email: "taken@example.com",
		Role:  domain.RoleCareTeam,
	}); err == nil {
		t.Error("registered email must be rejected")
	}
	if _, err := svc.Create(context.Background(), adminInviter(), InviteInput{
		Email: "pending@example.com",
		Role:  domain.RoleCareTeam,
	}); err == nil {
		t.Error("already-pending email must be rejected")
	}
}

func TestInviteAcceptCreatesUser(t *testing.T) {
	invites := newMockInviteRepo()
	brandID := "brand-1"
	brandRole := domain.BrandRoleMember
	invites.byToken["tok-1"] = &domain.Invitation{
		ID:        "inv-1",
		Email:     "member@example.com",
		Role:      domain.RoleBrandUser,
		BrandID:   &brandID,
		BrandRole: &brandRole,
		Token:     "tok-1",
		Status:    domain.InvitationStatusPending,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	users := newMockUserRepo()
	svc := newInviteService(invites, users, newMockBrandRepo())

	user, err := svc.Accept(context.Background(), "tok-1", "Jo Member", "longenough")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if user.Role != domain.RoleBrandUser || user.BrandID == nil || *user.BrandID != brandID {
		t.Errorf("accepted user should carry the invite's role and brand: %+v", user)
	}
	if user.Status != domain.UserStatusActive {
		t.Errorf("new accounts start active, got %s", user.Status)
	}
	if len(invites.accepted) != 1 || invites.accepted[0] != "inv-1" {
		t.Error("invitation must be marked accepted")
	}
}

func TestInviteAcceptRejectsExpired(t *testing.T) {
	invites := newMockInviteRepo()
	invites.byToken["tok-old"] = &domain.Invitation{
		ID:        "inv-old",
		Email:     "late@example.com",
		Role:      domain.RoleCareTeam,
		Token:     "tok-old",
		Status:    domain.InvitationStatusPending,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	users := newMockUserRepo()
	svc := newInviteService(invites, users, newMockBrandRepo())

	if _, err := svc.Accept(context.Background(), "tok-old", "Late User", "longenough"); err == nil {
		t.Fatal("expired invite must be rejected")
	}
	if len(invites.expired) != 1 {
		t.Error("expired invite should be marked as such")
	}
	if len(users.created) != 0 {
		t.Error("no account may be created from an expired invite")
	}
}

func TestInviteAcceptShortPassword(t *testing.T) {
	svc := newInviteService(newMockInviteRepo(), newMockUserRepo(), newMockBrandRepo())
	if _, err := svc.Accept(context.Background(), "tok-1", "Jo", "short"); err == nil {
		t.Fatal("short passwords must be rejected before token lookup")
	}
}
