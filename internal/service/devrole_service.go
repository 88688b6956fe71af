package service

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jetpack-ops/jetpack/internal/domain"
	apperrors "github.com/jetpack-ops/jetpack/pkg/util"
)

// devRoleKeyPrefix is the fixed key namespace for persisted role overrides.
const devRoleKeyPrefix = "jetpack:devrole:"

// DevRoleService manages the developer role override: process-external state
// with one setter and one clearer, read back on demand. It affects only the
// effective role used for visibility responses and is disabled entirely in
// production. Authorization of mutating calls always uses the real session
// role.
type DevRoleService struct {
	client     *redis.Client
	production bool
}

// NewDevRoleService builds the service.
func NewDevRoleService(client *redis.Client, production bool) *DevRoleService {
	return &DevRoleService{client: client, production: production}
}

// Enabled reports whether overrides are available in this environment.
func (s *DevRoleService) Enabled() bool {
	return !s.production && s.client != nil
}

// Set stores an override for the user.
func (s *DevRoleService) Set(ctx context.Context, userID string, role domain.UserRole) error {
	if !s.Enabled() {
		return apperrors.NewNotFound("dev role override", nil)
	}
	if !domain.ValidRole(role) {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	return s.client.Set(ctx, devRoleKey(userID), string(role), 0).Err()
}

// Get returns the stored override, or nil when none is set.
func (s *DevRoleService) Get(ctx context.Context, userID string) (*domain.UserRole, error) {
	if !s.Enabled() {
		return nil, nil
	}
	val, err := s.client.Get(ctx, devRoleKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	role := domain.UserRole(val)
	if !domain.ValidRole(role) {
		return nil, nil
	}
	return &role, nil
}

// Clear removes the override.
func (s *DevRoleService) Clear(ctx context.Context, userID string) error {
	if !s.Enabled() {
		return apperrors.NewNotFound("dev role override", nil)
	}
	return s.client.Del(ctx, devRoleKey(userID)).Err()
}

// EffectiveRole resolves the role used for visibility composition: the real
// role unless an override is stored.
func (s *DevRoleService) EffectiveRole(ctx context.Context, user *domain.User) (domain.UserRole, error) {
	override, err := s.Get(ctx, user.ID)
	if err != nil {
		return user.Role, err
	}
	return domain.EffectiveRole(user.Role, override), nil
}

func devRoleKey(userID string) string {
	return fmt.Sprintf("%s%s", devRoleKeyPrefix, userID)
}
