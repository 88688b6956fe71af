package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jetpack-ops/jetpack/internal/auth"
	"github.com/jetpack-ops/jetpack/internal/config"
	"github.com/jetpack-ops/jetpack/internal/domain"
	"github.com/jetpack-ops/jetpack/internal/events"
	"github.com/jetpack-ops/jetpack/internal/navigation"
	"github.com/jetpack-ops/jetpack/internal/repository"
	apperrors "github.com/jetpack-ops/jetpack/pkg/util"
)

// InviteService manages user invitations and their acceptance.
type InviteService struct {
	invites    repository.InvitationRepository
	users      repository.UserRepository
	brands     repository.BrandRepository
	dispatcher events.Dispatcher
	ttl        time.Duration
	bcryptCost int
}

// NewInviteService builds the service.
func NewInviteService(cfg config.Config, invites repository.InvitationRepository, users repository.UserRepository, brands repository.BrandRepository, dispatcher events.Dispatcher) *InviteService {
	ttl := time.Duration(cfg.Auth.InviteTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &InviteService{
		invites:    invites,
		users:      users,
		brands:     brands,
		dispatcher: dispatcher,
		ttl:        ttl,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// InviteInput carries the invite payload. BrandID and BrandRole apply only
// to brand_user invites and are cleared otherwise.
type InviteInput struct {
	Email     string
	FullName  *string
	Role      domain.UserRole
	BrandID   *string
	BrandRole *domain.BrandRole
}

// Create validates the payload against the inviter's capabilities and
// persists a pending invitation.
func (s *InviteService) Create(ctx context.Context, inviter *domain.User, input InviteInput) (*domain.Invitation, error) {
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("unknown user type", map[string]any{"userType": input.Role})
	}

	caps := domain.ResolveCapabilities(inviter.Role)
	if !navigation.CanInvite(caps, input.Role) {
		return nil, apperrors.NewForbidden("not allowed to invite this user type")
	}

	email := normalizeEmail(input.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.NewValidationError("invalid email address", nil)
	}

	// A selection left over from a previous form state must never reach the
	// store.
	input.BrandID, input.BrandRole = navigation.NormalizeInvite(input.Role, input.BrandID, input.BrandRole)

	if input.Role == domain.RoleBrandUser {
		if input.BrandID == nil || strings.TrimSpace(*input.BrandID) == "" {
			return nil, apperrors.NewValidationError("brand assignment required for brand users", nil)
		}
		if input.BrandRole != nil && !domain.ValidBrandRole(*input.BrandRole) {
			return nil, apperrors.NewValidationError("unknown brand role", nil)
		}
		if _, err := s.brands.GetByID(ctx, *input.BrandID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("brand", map[string]any{"client_id": *input.BrandID})
			}
			return nil, err
		}
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}
	if _, err := s.invites.GetPendingByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("invite already pending for this email", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	invite := &domain.Invitation{
		Email:     email,
		FullName:  input.FullName,
		Role:      input.Role,
		BrandID:   input.BrandID,
		BrandRole: input.BrandRole,
		Token:     uuid.NewString(),
		InvitedBy: inviter.ID,
		Status:    domain.InvitationStatusPending,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventInviteCreated,
		ActorID: inviter.ID,
		Payload: events.InviteCreatedPayload{
			InvitationID: invite.ID,
			Email:        invite.Email,
			Role:         invite.Role,
			Token:        invite.Token,
		},
	})
	return invite, nil
}

// Accept consumes an invite token and creates the account.
func (s *InviteService) Accept(ctx context.Context, token, fullName, password string) (*domain.User, error) {
	if len(password) < auth.MinPasswordLength {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}

	invite, err := s.invites.GetByToken(ctx, token)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("invitation", nil)
		}
		return nil, err
	}
	if invite.Expired(time.Now()) {
		if invite.Status == domain.InvitationStatusPending {
			_ = s.invites.MarkExpired(ctx, invite.ID)
		}
		return nil, apperrors.NewValidationError("invitation expired or already used", nil)
	}

	name := strings.TrimSpace(fullName)
	if name == "" && invite.FullName != nil {
		name = *invite.FullName
	}
	if name == "" {
		return nil, apperrors.NewValidationError("full name required", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FullName:     name,
		Email:        invite.Email,
		PasswordHash: hash,
		Role:         invite.Role,
		BrandID:      invite.BrandID,
		BrandRole:    invite.BrandRole,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.invites.MarkAccepted(ctx, invite.ID); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventInviteAccepted,
		ActorID: user.ID,
		Payload: events.InviteAcceptedPayload{InvitationID: invite.ID, UserID: user.ID},
	})
	return user, nil
}

// ListPending returns pending invitations for the users admin view.
func (s *InviteService) ListPending(ctx context.Context) ([]domain.Invitation, error) {
	return s.invites.ListPending(ctx)
}
