package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jetpack-ops/jetpack/internal/api/dto"
	"github.com/jetpack-ops/jetpack/internal/claims"
	"github.com/jetpack-ops/jetpack/internal/domain"
	"github.com/jetpack-ops/jetpack/internal/events"
	"github.com/jetpack-ops/jetpack/internal/repository"
	"github.com/jetpack-ops/jetpack/internal/timeline"
	"github.com/jetpack-ops/jetpack/internal/tracking"
	"github.com/jetpack-ops/jetpack/internal/upstream"
	apperrors "github.com/jetpack-ops/jetpack/pkg/util"
)

const shipmentCacheKeyPrefix = "jetpack:shipment:"

// ShipmentDataAPI is the slice of the upstream client the shipment service
// consumes.
type ShipmentDataAPI interface {
	GetShipment(ctx context.Context, shipmentID string) (*upstream.ShipmentSnapshot, error)
	GetClaimEligibility(ctx context.Context, shipmentID string) (*upstream.ClaimEligibility, error)
	ListCommissions(ctx context.Context, brandID string) ([]upstream.Commission, error)
	ListInvoiceFiles(ctx context.Context, invoiceID string) ([]upstream.InvoiceFile, error)
}

// ShipmentService assembles the shipment drawer view model from upstream
// snapshots and locally persisted claim tickets.
type ShipmentService struct {
	data       ShipmentDataAPI
	claimRepo  repository.ClaimTicketRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewShipmentService builds the service. cache may be nil, which disables
// snapshot caching.
func NewShipmentService(data ShipmentDataAPI, claimRepo repository.ClaimTicketRepository, cache *redis.Client, cacheTTL time.Duration, dispatcher events.Dispatcher, logger *zap.Logger) *ShipmentService {
	return &ShipmentService{
		data:       data,
		claimRepo:  claimRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// GetDetails fetches and assembles the drawer snapshot for one shipment.
func (s *ShipmentService) GetDetails(ctx context.Context, viewer *domain.User, shipmentID string) (*dto.ShipmentDetailsResponse, error) {
	snapshot, err := s.loadSnapshot(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeViewer(viewer, snapshot); err != nil {
		return nil, err
	}

	tickets, err := s.claimRepo.ListByShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	return assembleDetails(snapshot, tickets), nil
}

// GetClaimEligibility passes the authoritative upstream flags through the
// eligibility gate.
func (s *ShipmentService) GetClaimEligibility(ctx context.Context, viewer *domain.User, shipmentID string) (*dto.ClaimEligibilityResponse, error) {
	snapshot, err := s.loadSnapshot(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeViewer(viewer, snapshot); err != nil {
		return nil, err
	}

	elig, err := s.data.GetClaimEligibility(ctx, shipmentID)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	return &dto.ClaimEligibilityResponse{
		ShipmentID: shipmentID,
		Result:     claims.Evaluate(eligibilityInput(elig)),
	}, nil
}

// SubmitClaim files a claim ticket for the shipment. The chosen type must be
// eligible at submission time.
func (s *ShipmentService) SubmitClaim(ctx context.Context, viewer *domain.User, shipmentID string, claimType domain.ClaimType, description string) (*domain.ClaimTicket, error) {
	if !domain.ValidClaimType(claimType) {
		return nil, apperrors.NewValidationError("unknown claim type", map[string]any{"type": claimType})
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}

	snapshot, err := s.loadSnapshot(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeViewer(viewer, snapshot); err != nil {
		return nil, err
	}

	elig, err := s.data.GetClaimEligibility(ctx, shipmentID)
	if err != nil {
		return nil, mapUpstreamError(err)
	}
	result := claims.Evaluate(eligibilityInput(elig))
	for _, opt := range result.Options {
		if opt.Type == claimType && !opt.Eligible {
			return nil, apperrors.NewValidationError("claim type not eligible", map[string]any{"reason": opt.Reason})
		}
	}

	brandID := snapshot.BrandID
	ticket := &domain.ClaimTicket{
		ShipmentID:  shipmentID,
		BrandID:     &brandID,
		Type:        claimType,
		Status:      domain.ClaimStatusOpen,
		Description: strings.TrimSpace(description),
		SubmittedBy: viewer.ID,
	}
	if err := s.claimRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventClaimSubmitted,
		ActorID: viewer.ID,
		Payload: events.ClaimSubmittedPayload{
			ClaimID:    ticket.ID,
			ShipmentID: shipmentID,
			ClaimType:  claimType,
		},
	})
	return ticket, nil
}

// UpdateClaimStatus advances a claim ticket through its lifecycle. Only
// care and admin users review claims; brand users see status changes in the
// drawer but never make them.
func (s *ShipmentService) UpdateClaimStatus(ctx context.Context, viewer *domain.User, shipmentID, claimID string, status domain.ClaimStatus) (*domain.ClaimTicket, error) {
	caps := domain.ResolveCapabilities(viewer.Role)
	if !caps.IsAdmin && !caps.IsCareUser {
		return nil, apperrors.NewForbidden("claim review requires care or admin access")
	}
	if !domain.ValidClaimStatus(status) {
		return nil, apperrors.NewValidationError("unknown claim status", map[string]any{"status": status})
	}

	ticket, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if ticket.ShipmentID != shipmentID {
		return nil, apperrors.NewNotFound("claim", map[string]any{"shipment_id": shipmentID})
	}
	if !ticket.Status.CanTransition(status) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": ticket.Status,
			"to":   status,
		})
	}

	if err := s.claimRepo.UpdateStatus(ctx, claimID, status); err != nil {
		return nil, err
	}
	// Re-read so the decided timestamp set by the store is reflected.
	ticket, err = s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	if ticket.Status.Decided() {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventClaimDecided,
			ActorID: viewer.ID,
			Payload: events.ClaimDecidedPayload{
				ClaimID:    ticket.ID,
				ShipmentID: shipmentID,
				Status:     ticket.Status,
			},
		})
	}
	return ticket, nil
}

// ListCommissions returns commission lines scoped to the viewer's brand for
// brand users, unscoped otherwise.
func (s *ShipmentService) ListCommissions(ctx context.Context, viewer *domain.User) ([]dto.CommissionView, error) {
	brandID := ""
	if viewer.Role == domain.RoleBrandUser {
		if viewer.BrandID == nil {
			return nil, apperrors.NewForbidden("no brand assigned")
		}
		brandID = *viewer.BrandID
	}

	commissions, err := s.data.ListCommissions(ctx, brandID)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	views := make([]dto.CommissionView, 0, len(commissions))
	for _, c := range commissions {
		views = append(views, dto.CommissionView{
			ID:      c.ID,
			BrandID: c.BrandID,
			Period:  c.Period,
			Amount:  c.Amount.StringFixed(2),
		})
	}
	return views, nil
}

// ListInvoiceFiles proxies the invoice file listing.
func (s *ShipmentService) ListInvoiceFiles(ctx context.Context, invoiceID string) ([]upstream.InvoiceFile, error) {
	files, err := s.data.ListInvoiceFiles(ctx, invoiceID)
	if err != nil {
		return nil, mapUpstreamError(err)
	}
	return files, nil
}

func (s *ShipmentService) authorizeViewer(viewer *domain.User, snapshot *upstream.ShipmentSnapshot) error {
	if viewer.Role != domain.RoleBrandUser {
		return nil
	}
	if viewer.BrandID == nil || *viewer.BrandID != snapshot.BrandID {
		return apperrors.NewForbidden("shipment belongs to another brand")
	}
	return nil
}

// loadSnapshot serves from the Redis cache when possible, falling back to
// the data service. Cache failures degrade to a direct fetch.
func (s *ShipmentService) loadSnapshot(ctx context.Context, shipmentID string) (*upstream.ShipmentSnapshot, error) {
	key := shipmentCacheKeyPrefix + shipmentID

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var snapshot upstream.ShipmentSnapshot
			if json.Unmarshal(raw, &snapshot) == nil {
				return &snapshot, nil
			}
		}
	}

	snapshot, err := s.data.GetShipment(ctx, shipmentID)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if raw, err := json.Marshal(snapshot); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil && s.logger != nil {
				s.logger.Warn("shipment cache write failed", zap.Error(err))
			}
		}
	}
	return snapshot, nil
}

func assembleDetails(snapshot *upstream.ShipmentSnapshot, tickets []domain.ClaimTicket) *dto.ShipmentDetailsResponse {
	carrier, link := tracking.DetectURL(snapshot.TrackingNumber)

	milestones := timeline.Milestones{
		CreatedAt:   snapshot.CreatedAt,
		PickedAt:    snapshot.PickedAt,
		PackedAt:    snapshot.PackedAt,
		LabeledAt:   snapshot.LabeledAt,
		InTransitAt: snapshot.InTransitAt,
		DeliveredAt: snapshot.DeliveredAt,
	}

	evts := make([]timeline.Event, 0, len(snapshot.Events)+len(tickets)*2)
	for _, ev := range snapshot.Events {
		evts = append(evts, timeline.Event{
			Timestamp:   ev.Timestamp,
			Description: ev.Description,
			Origin:      timeline.OriginShipment,
		})
	}
	// Claim activity postdates carrier activity, so appending keeps the feed
	// chronological without re-sorting the upstream events.
	for _, ticket := range tickets {
		evts = append(evts, timeline.Event{
			Timestamp:   ticket.CreatedAt,
			Description: fmt.Sprintf("Claim submitted (%s)", ticket.Type),
			Origin:      timeline.OriginClaim,
		})
		if ticket.ResolvedAt != nil {
			evts = append(evts, timeline.Event{
				Timestamp:   *ticket.ResolvedAt,
				Description: fmt.Sprintf("Claim %s", strings.ToLower(string(ticket.Status))),
				Origin:      timeline.OriginClaim,
			})
		}
	}

	total := decimal.Zero
	transactions := make([]dto.TransactionView, 0, len(snapshot.Transactions))
	for _, tx := range snapshot.Transactions {
		total = total.Add(tx.Amount)
		transactions = append(transactions, dto.TransactionView{
			ID:          tx.ID,
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			ChargedAt:   tx.ChargedAt,
		})
	}

	claimViews := make([]dto.ClaimTicketView, 0, len(tickets))
	for _, ticket := range tickets {
		claimViews = append(claimViews, dto.ClaimTicketView{
			ID:         ticket.ID,
			Type:       ticket.Type,
			Status:     ticket.Status,
			CreatedAt:  ticket.CreatedAt,
			ResolvedAt: ticket.ResolvedAt,
		})
	}

	return &dto.ShipmentDetailsResponse{
		ID:          snapshot.ID,
		BrandID:     snapshot.BrandID,
		OrderNumber: snapshot.OrderNumber,
		Status:      snapshot.Status,
		Customer:    snapshot.Customer,
		Tracking: dto.TrackingView{
			Number:  snapshot.TrackingNumber,
			Carrier: carrier,
			URL:     link,
		},
		Package: dto.PackageView{
			Carrier:       snapshot.Package.Carrier,
			Service:       snapshot.Package.Service,
			WeightDisplay: formatWeight(snapshot.Package.WeightOz),
			Dimensions:    formatDimensions(snapshot.Package),
		},
		Timeline:     timeline.Build(milestones, evts),
		Items:        snapshot.Items,
		Transactions: transactions,
		TotalCharged: total.StringFixed(2),
		Returns:      snapshot.Returns,
		Claims:       claimViews,
	}
}

func eligibilityInput(elig *upstream.ClaimEligibility) claims.EligibilityInput {
	return claims.EligibilityInput{
		Eligible: map[domain.ClaimType]bool{
			domain.ClaimLostInTransit: elig.LostInTransit,
			domain.ClaimDamaged:       elig.Damaged,
			domain.ClaimWrongItem:     elig.WrongItem,
			domain.ClaimMissingItem:   elig.MissingItem,
		},
		IsDelivered:         elig.IsDelivered,
		IsInternational:     elig.IsInternational,
		DaysSinceLastUpdate: elig.DaysSinceLastUpdate,
	}
}

// formatWeight renders ounces as pounds and ounces, the way the drawer
// displays package weight.
func formatWeight(oz float64) string {
	if oz <= 0 {
		return ""
	}
	lbs := int(oz) / 16
	rem := oz - float64(lbs*16)
	if lbs == 0 {
		return fmt.Sprintf("%.1f oz", rem)
	}
	if rem == 0 {
		return fmt.Sprintf("%d lb", lbs)
	}
	return fmt.Sprintf("%d lb %.1f oz", lbs, rem)
}

func formatDimensions(p upstream.ShipmentPackage) string {
	if p.LengthIn <= 0 || p.WidthIn <= 0 || p.HeightIn <= 0 {
		return ""
	}
	return fmt.Sprintf("%g x %g x %g in", p.LengthIn, p.WidthIn, p.HeightIn)
}

// mapUpstreamError converts client errors to the request-scoped taxonomy:
// upstream 404s become local not-found, other upstream responses surface
// their message verbatim, transport failures become a generic 502.
func mapUpstreamError(err error) error {
	if err == nil {
		return nil
	}
	if upstream.IsStatus(err, 404) {
		return apperrors.NewNotFound("shipment", nil)
	}
	if msg := upstream.ErrorMessage(err); msg != "" {
		return apperrors.NewUpstreamError(msg, err)
	}
	return apperrors.NewUpstreamError("", err)
}
