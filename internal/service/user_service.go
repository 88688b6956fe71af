package service

import (
	"context"

	"github.com/jetpack-ops/jetpack/internal/domain"
	"github.com/jetpack-ops/jetpack/internal/repository"
	apperrors "github.com/jetpack-ops/jetpack/pkg/util"
)

// UserService serves the users and care-users admin listings.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// ListBrandUsers returns brand_user accounts visible to the viewer: all of
// them for admins and care users, only the viewer's own brand for brand
// users.
func (s *UserService) ListBrandUsers(ctx context.Context, viewer *domain.User) ([]domain.User, error) {
	caps := domain.ResolveCapabilities(viewer.Role)
	if caps.IsAdmin || caps.IsCareUser {
		return s.users.ListByRoles(ctx, []domain.UserRole{domain.RoleBrandUser})
	}
	if viewer.BrandID == nil {
		return nil, apperrors.NewForbidden("no brand assigned")
	}
	return s.users.ListByBrand(ctx, *viewer.BrandID)
}

// ListCareUsers returns internal support staff accounts. Visible to admins
// and care users only.
func (s *UserService) ListCareUsers(ctx context.Context, viewer *domain.User) ([]domain.User, error) {
	caps := domain.ResolveCapabilities(viewer.Role)
	if !caps.IsAdmin && !caps.IsCareUser {
		return nil, apperrors.NewForbidden("care access required")
	}
	return s.users.ListByRoles(ctx, []domain.UserRole{domain.RoleCareAdmin, domain.RoleCareTeam})
}
