package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jetpack-ops/jetpack/internal/domain"
	"github.com/jetpack-ops/jetpack/internal/events"
	"github.com/jetpack-ops/jetpack/internal/upstream"
	apperrors "github.com/jetpack-ops/jetpack/pkg/util"
)

type mockDataAPI struct {
	snapshot    *upstream.ShipmentSnapshot
	eligibility *upstream.ClaimEligibility
	commissions []upstream.Commission
	files       []upstream.InvoiceFile
	err         error
}

func (m *mockDataAPI) GetShipment(ctx context.Context, shipmentID string) (*upstream.ShipmentSnapshot, error) {
	return m.snapshot, m.err
}

func (m *mockDataAPI) GetClaimEligibility(ctx context.Context, shipmentID string) (*upstream.ClaimEligibility, error) {
	return m.eligibility, m.err
}

func (m *mockDataAPI) ListCommissions(ctx context.Context, brandID string) ([]upstream.Commission, error) {
	filtered := make([]upstream.Commission, 0, len(m.commissions))
	for _, c := range m.commissions {
		if brandID == "" || c.BrandID == brandID {
			filtered = append(filtered, c)
		}
	}
	return filtered, m.err
}

func (m *mockDataAPI) ListInvoiceFiles(ctx context.Context, invoiceID string) ([]upstream.InvoiceFile, error) {
	return m.files, m.err
}

type mockClaimRepo struct {
	tickets []domain.ClaimTicket
	created []domain.ClaimTicket
}

func (m *mockClaimRepo) Create(ctx context.Context, ticket *domain.ClaimTicket) error {
	ticket.ID = "claim-1"
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	m.created = append(m.created, *ticket)
	return nil
}

func (m *mockClaimRepo) GetByID(ctx context.Context, id string) (*domain.ClaimTicket, error) {
	for i := range m.tickets {
		if m.tickets[i].ID == id {
			return &m.tickets[i], nil
		}
	}
	return nil, apperrors.NewNotFound("claim", nil)
}

func (m *mockClaimRepo) ListByShipment(ctx context.Context, shipmentID string) ([]domain.ClaimTicket, error) {
	return m.tickets, nil
}

func (m *mockClaimRepo) UpdateStatus(ctx context.Context, id string, status domain.ClaimStatus) error {
	for i := range m.tickets {
		if m.tickets[i].ID != id {
			continue
		}
		m.tickets[i].Status = status
		m.tickets[i].UpdatedAt = time.Now()
		if status.Decided() {
			now := time.Now()
			m.tickets[i].ResolvedAt = &now
		}
		return nil
	}
	return apperrors.NewNotFound("claim", nil)
}

func parseTS(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatal(err)
	}
	return &parsed
}

func testSnapshot(t *testing.T) *upstream.ShipmentSnapshot {
	return &upstream.ShipmentSnapshot{
		ID:             "ship-1",
		BrandID:        "brand-1",
		OrderNumber:    "ORD-100",
		TrackingNumber: "1Z999AA10123456784",
		Status:         "in_transit",
		CreatedAt:      parseTS(t, "2026-02-01T08:00:00Z"),
		PickedAt:       parseTS(t, "2026-02-01T12:00:00Z"),
		Package:        upstream.ShipmentPackage{Carrier: "UPS", WeightOz: 20},
		Events: []upstream.ShipmentEvent{
			{Timestamp: *parseTS(t, "2026-02-01T08:00:00Z"), Description: "Order imported"},
			{Timestamp: *parseTS(t, "2026-02-01T12:00:00Z"), Description: "Picked"},
		},
		Transactions: []upstream.Transaction{
			{ID: "tx-1", Description: "Pick fee", Amount: decimal.RequireFromString("1.25")},
			{ID: "tx-2", Description: "Postage", Amount: decimal.RequireFromString("8.10")},
		},
	}
}

func newShipmentService(data ShipmentDataAPI, claimRepo *mockClaimRepo) *ShipmentService {
	return NewShipmentService(data, claimRepo, nil, 0, events.NewInMemoryDispatcher(), zap.NewNop())
}

func careViewer() *domain.User {
	return &domain.User{ID: "user-1", Role: domain.RoleCareTeam}
}

func TestGetDetailsAssemblesView(t *testing.T) {
	svc := newShipmentService(&mockDataAPI{snapshot: testSnapshot(t)}, &mockClaimRepo{})

	details, err := svc.GetDetails(context.Background(), careViewer(), "ship-1")
	if err != nil {
		t.Fatalf("GetDetails: %v", err)
	}

	if details.Tracking.Carrier != "ups" {
		t.Errorf("expected UPS detection, got %q", details.Tracking.Carrier)
	}
	if details.Tracking.URL == "" {
		t.Error("expected tracking link for detected carrier")
	}
	if details.TotalCharged != "9.35" {
		t.Errorf("total charged = %s, want 9.35", details.TotalCharged)
	}
	if details.Package.WeightDisplay != "1 lb 4.0 oz" {
		t.Errorf("weight display = %q", details.Package.WeightDisplay)
	}
	if !details.Timeline.Steps[0].IsComplete || !details.Timeline.Steps[1].IsComplete {
		t.Error("Imported and Processing should be complete")
	}
	if !details.Timeline.Steps[2].IsCurrent {
		t.Error("Shipped should be current")
	}
	if len(details.Timeline.Groups) != 1 {
		t.Errorf("both events share a date, expected one group, got %d", len(details.Timeline.Groups))
	}
}

func TestGetDetailsMergesClaimEvents(t *testing.T) {
	claimRepo := &mockClaimRepo{tickets: []domain.ClaimTicket{openTicket(t)}}
	svc := newShipmentService(&mockDataAPI{snapshot: testSnapshot(t)}, claimRepo)

	details, err := svc.GetDetails(context.Background(), careViewer(), "ship-1")
	if err != nil {
		t.Fatalf("GetDetails: %v", err)
	}

	last := details.Timeline.Groups[len(details.Timeline.Groups)-1]
	if last.Events[len(last.Events)-1].Origin != "claim" {
		t.Error("claim ticket should appear as a claim-origin timeline event")
	}
	if len(details.Claims) != 1 || details.Claims[0].Type != domain.ClaimDamaged {
		t.Errorf("claims block wrong: %+v", details.Claims)
	}
}

func TestGetDetailsBrandScoping(t *testing.T) {
	svc := newShipmentService(&mockDataAPI{snapshot: testSnapshot(t)}, &mockClaimRepo{})

	otherBrand := "brand-2"
	viewer := &domain.User{ID: "user-2", Role: domain.RoleBrandUser, BrandID: &otherBrand}
	if _, err := svc.GetDetails(context.Background(), viewer, "ship-1"); err == nil {
		t.Fatal("brand user must not see another brand's shipment")
	}

	ownBrand := "brand-1"
	viewer.BrandID = &ownBrand
	if _, err := svc.GetDetails(context.Background(), viewer, "ship-1"); err != nil {
		t.Fatalf("brand user should see their own shipment: %v", err)
	}
}

func TestSubmitClaimRejectsIneligibleType(t *testing.T) {
	data := &mockDataAPI{
		snapshot: testSnapshot(t),
		eligibility: &upstream.ClaimEligibility{
			Damaged:     false,
			IsDelivered: false,
		},
	}
	claimRepo := &mockClaimRepo{}
	svc := newShipmentService(data, claimRepo)

	_, err := svc.SubmitClaim(context.Background(), careViewer(), "ship-1", domain.ClaimDamaged, "box crushed")
	if err == nil {
		t.Fatal("ineligible claim type must be rejected")
	}
	if len(claimRepo.created) != 0 {
		t.Error("no ticket may be persisted for a rejected claim")
	}
}

func TestSubmitClaimPersistsEligibleType(t *testing.T) {
	data := &mockDataAPI{
		snapshot: testSnapshot(t),
		eligibility: &upstream.ClaimEligibility{
			LostInTransit:       true,
			DaysSinceLastUpdate: 16,
		},
	}
	claimRepo := &mockClaimRepo{}
	svc := newShipmentService(data, claimRepo)

	ticket, err := svc.SubmitClaim(context.Background(), careViewer(), "ship-1", domain.ClaimLostInTransit, "no movement since Feb 1")
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}
	if ticket.Status != domain.ClaimStatusOpen {
		t.Errorf("new tickets open, got %s", ticket.Status)
	}
	if ticket.BrandID == nil || *ticket.BrandID != "brand-1" {
		t.Error("ticket should inherit the shipment's brand")
	}
	if len(claimRepo.created) != 1 {
		t.Errorf("expected one persisted ticket, got %d", len(claimRepo.created))
	}
}

func openTicket(t *testing.T) domain.ClaimTicket {
	return domain.ClaimTicket{
		ID:         "claim-9",
		ShipmentID: "ship-1",
		Type:       domain.ClaimDamaged,
		Status:     domain.ClaimStatusOpen,
		CreatedAt:  *parseTS(t, "2026-02-03T10:00:00Z"),
	}
}

func TestUpdateClaimStatusResolvesTicket(t *testing.T) {
	claimRepo := &mockClaimRepo{tickets: []domain.ClaimTicket{openTicket(t)}}
	svc := newShipmentService(&mockDataAPI{snapshot: testSnapshot(t)}, claimRepo)

	ticket, err := svc.UpdateClaimStatus(context.Background(), careViewer(), "ship-1", "claim-9", domain.ClaimStatusResolved)
	if err != nil {
		t.Fatalf("UpdateClaimStatus: %v", err)
	}
	if ticket.Status != domain.ClaimStatusResolved {
		t.Errorf("status = %s, want RESOLVED", ticket.Status)
	}
	if ticket.ResolvedAt == nil {
		t.Fatal("resolved ticket must carry a resolution timestamp")
	}

	details, err := svc.GetDetails(context.Background(), careViewer(), "ship-1")
	if err != nil {
		t.Fatalf("GetDetails: %v", err)
	}
	last := details.Timeline.Groups[len(details.Timeline.Groups)-1]
	resolution := last.Events[len(last.Events)-1]
	if resolution.Origin != "claim" || resolution.Description != "Claim resolved" {
		t.Errorf("resolution should surface as a claim-origin event, got %+v", resolution)
	}
	if details.Claims[0].ResolvedAt == nil {
		t.Error("claims block should expose the resolution timestamp")
	}
}

func TestUpdateClaimStatusWalksReviewPath(t *testing.T) {
	claimRepo := &mockClaimRepo{tickets: []domain.ClaimTicket{openTicket(t)}}
	svc := newShipmentService(&mockDataAPI{snapshot: testSnapshot(t)}, claimRepo)

	ticket, err := svc.UpdateClaimStatus(context.Background(), careViewer(), "ship-1", "claim-9", domain.ClaimStatusInReview)
	if err != nil {
		t.Fatalf("open ticket should enter review: %v", err)
	}
	if ticket.ResolvedAt != nil {
		t.Error("review is not a decision, no resolution timestamp yet")
	}

	if _, err := svc.UpdateClaimStatus(context.Background(), careViewer(), "ship-1", "claim-9", domain.ClaimStatusDenied); err != nil {
		t.Fatalf("reviewed ticket should be deniable: %v", err)
	}
	if _, err := svc.UpdateClaimStatus(context.Background(), careViewer(), "ship-1", "claim-9", domain.ClaimStatusOpen); err == nil {
		t.Fatal("decided tickets are final, reopening must fail")
	}
}

func TestUpdateClaimStatusRequiresCareAccess(t *testing.T) {
	claimRepo := &mockClaimRepo{tickets: []domain.ClaimTicket{openTicket(t)}}
	svc := newShipmentService(&mockDataAPI{snapshot: testSnapshot(t)}, claimRepo)

	brand := "brand-1"
	viewer := &domain.User{ID: "user-2", Role: domain.RoleBrandUser, BrandID: &brand}
	if _, err := svc.UpdateClaimStatus(context.Background(), viewer, "ship-1", "claim-9", domain.ClaimStatusResolved); err == nil {
		t.Fatal("brand users must not review claims")
	}
	if claimRepo.tickets[0].Status != domain.ClaimStatusOpen {
		t.Error("rejected update must not touch the ticket")
	}
}

func TestUpdateClaimStatusChecksShipmentOwnership(t *testing.T) {
	claimRepo := &mockClaimRepo{tickets: []domain.ClaimTicket{openTicket(t)}}
	svc := newShipmentService(&mockDataAPI{snapshot: testSnapshot(t)}, claimRepo)

	if _, err := svc.UpdateClaimStatus(context.Background(), careViewer(), "ship-other", "claim-9", domain.ClaimStatusResolved); err == nil {
		t.Fatal("claim addressed through the wrong shipment must not resolve")
	}
	if claimRepo.tickets[0].Status != domain.ClaimStatusOpen {
		t.Error("mismatched update must not touch the ticket")
	}
}

func TestListCommissionsScopesBrandUsers(t *testing.T) {
	data := &mockDataAPI{commissions: []upstream.Commission{
		{ID: "c-1", BrandID: "brand-1", Amount: decimal.RequireFromString("100.5")},
		{ID: "c-2", BrandID: "brand-2", Amount: decimal.RequireFromString("40")},
	}}
	svc := newShipmentService(data, &mockClaimRepo{})

	brand := "brand-1"
	viewer := &domain.User{ID: "user-2", Role: domain.RoleBrandUser, BrandID: &brand}
	views, err := svc.ListCommissions(context.Background(), viewer)
	if err != nil {
		t.Fatalf("ListCommissions: %v", err)
	}
	if len(views) != 1 || views[0].ID != "c-1" {
		t.Errorf("brand user should only see own commissions, got %+v", views)
	}
	if views[0].Amount != "100.50" {
		t.Errorf("amount should render fixed-point, got %s", views[0].Amount)
	}

	admin := &domain.User{ID: "user-3", Role: domain.RoleAdmin}
	views, err = svc.ListCommissions(context.Background(), admin)
	if err != nil {
		t.Fatalf("ListCommissions admin: %v", err)
	}
	if len(views) != 2 {
		t.Errorf("admin sees all commissions, got %d", len(views))
	}
}

func TestFormatWeight(t *testing.T) {
	cases := []struct {
		oz   float64
		want string
	}{
		{0, ""},
		{12.5, "12.5 oz"},
		{16, "1 lb"},
		{20, "1 lb 4.0 oz"},
	}
	for _, tc := range cases {
		if got := formatWeight(tc.oz); got != tc.want {
			t.Errorf("formatWeight(%v) = %q, want %q", tc.oz, got, tc.want)
		}
	}
}
