package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jetpack-ops/jetpack/internal/domain"
	"github.com/jetpack-ops/jetpack/internal/events"
	"github.com/jetpack-ops/jetpack/internal/repository"
	apperrors "github.com/jetpack-ops/jetpack/pkg/util"
)

// shortCodePattern: 2-3 letter brand identifier used in invoice numbering.
var shortCodePattern = regexp.MustCompile(`^[A-Z]{2,3}$`)

// TokenVerifier checks a brand API token against the upstream data service.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) error
}

// BrandService manages brand (client) administration.
type BrandService struct {
	brands     repository.BrandRepository
	verifier   TokenVerifier
	dispatcher events.Dispatcher
}

// NewBrandService builds the service.
func NewBrandService(brands repository.BrandRepository, verifier TokenVerifier, dispatcher events.Dispatcher) *BrandService {
	return &BrandService{brands: brands, verifier: verifier, dispatcher: dispatcher}
}

// BrandInput carries create/update fields.
type BrandInput struct {
	CompanyName    string
	ShipbobUserID  *string
	ShortCode      string
	BillingAddress *string
}

func (s *BrandService) validate(input BrandInput) (BrandInput, error) {
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	input.ShortCode = strings.ToUpper(strings.TrimSpace(input.ShortCode))

	if input.CompanyName == "" {
		return input, apperrors.NewValidationError("company name required", nil)
	}
	if !shortCodePattern.MatchString(input.ShortCode) {
		return input, apperrors.NewValidationError("short code must be 2-3 letters", map[string]any{"short_code": input.ShortCode})
	}
	return input, nil
}

// Create validates and stores a new brand.
func (s *BrandService) Create(ctx context.Context, actorID string, input BrandInput) (*domain.Brand, error) {
	input, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	if existing, err := s.brands.GetByShortCode(ctx, input.ShortCode); err == nil && existing != nil {
		return nil, apperrors.NewConflict("short code already in use", map[string]any{"short_code": input.ShortCode})
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	brand := &domain.Brand{
		CompanyName:    input.CompanyName,
		ShipbobUserID:  input.ShipbobUserID,
		ShortCode:      input.ShortCode,
		BillingAddress: input.BillingAddress,
	}
	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventBrandCreated,
		ActorID: actorID,
		Payload: events.BrandCreatedPayload{
			BrandID:     brand.ID,
			CompanyName: brand.CompanyName,
			ShortCode:   brand.ShortCode,
		},
	})
	return brand, nil
}

// Update validates and stores brand edits.
func (s *BrandService) Update(ctx context.Context, id string, input BrandInput) (*domain.Brand, error) {
	input, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ShortCode != brand.ShortCode {
		if existing, err := s.brands.GetByShortCode(ctx, input.ShortCode); err == nil && existing.ID != id {
			return nil, apperrors.NewConflict("short code already in use", nil)
		} else if err != nil && err != pgx.ErrNoRows {
			return nil, err
		}
	}

	brand.CompanyName = input.CompanyName
	brand.ShipbobUserID = input.ShipbobUserID
	brand.ShortCode = input.ShortCode
	brand.BillingAddress = input.BillingAddress
	if err := s.brands.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// Get returns one brand.
func (s *BrandService) Get(ctx context.Context, id string) (*domain.Brand, error) {
	return s.brands.GetByID(ctx, id)
}

// List returns all brands.
func (s *BrandService) List(ctx context.Context) ([]domain.Brand, error) {
	return s.brands.List(ctx)
}

// Delete removes a brand.
func (s *BrandService) Delete(ctx context.Context, id string) error {
	return s.brands.Delete(ctx, id)
}

// SetToken stores the brand API token. The token value is write-only; only
// the derived has_token flag is ever returned.
func (s *BrandService) SetToken(ctx context.Context, id, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperrors.NewValidationError("token required", nil)
	}
	if _, err := s.brands.GetByID(ctx, id); err != nil {
		return err
	}
	return s.brands.SetToken(ctx, id, token)
}

// TestConnection verifies the stored token against the upstream data
// service.
func (s *BrandService) TestConnection(ctx context.Context, id string) error {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !brand.HasToken() {
		return apperrors.NewValidationError("no token stored for brand", nil)
	}
	if err := s.verifier.VerifyToken(ctx, *brand.APIToken); err != nil {
		return apperrors.NewUpstreamError("token verification failed", err)
	}
	return nil
}
