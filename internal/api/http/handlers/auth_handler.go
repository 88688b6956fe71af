package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jetpack-ops/jetpack/internal/api/dto"
	"github.com/jetpack-ops/jetpack/internal/auth"
	"github.com/jetpack-ops/jetpack/internal/domain"
	"github.com/jetpack-ops/jetpack/internal/navigation"
	"github.com/jetpack-ops/jetpack/internal/service"
	apperrors "github.com/jetpack-ops/jetpack/pkg/util"
)

// AuthHandler exposes session, profile, and invite-acceptance endpoints.
type AuthHandler struct {
	authService *service.AuthService
	devRoles    *service.DevRoleService
	invites     *service.InviteService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, devRoles *service.DevRoleService, invites *service.InviteService) *AuthHandler {
	return &AuthHandler{authService: authService, devRoles: devRoles, invites: invites}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return apperrors.NewUnauthorized(err.Error())
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"token":      token,
		"expires_at": exp,
		"session":    h.sessionFor(c, user),
	}})
}

// Session handles GET /api/auth/session. The response reflects any active
// developer role override; the underlying account is always returned as-is.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": h.sessionFor(c, principal.User)})
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(principal.User)})
}

// UpdateProfile handles PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	fullName := principal.User.FullName
	if req.FullName != nil {
		fullName = *req.FullName
	}
	email := principal.User.Email
	if req.Email != nil {
		email = *req.Email
	}

	user, err := h.authService.UpdateProfile(c.Context(), principal.User.ID, fullName, email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// ChangePassword handles PUT /api/auth/password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current and new password required", nil)
	}

	if err := h.authService.ChangePassword(c.Context(), principal.User.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_changed"}})
}

// SetAvatar handles POST /api/auth/avatar.
func (h *AuthHandler) SetAvatar(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SetAvatarRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.authService.SetAvatar(c.Context(), principal.User.ID, req.AvatarURL)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// SetDevRole handles PUT /api/auth/dev-role. Available outside production
// only; the route 404s otherwise.
func (h *AuthHandler) SetDevRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.DevRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.devRoles.Set(c.Context(), principal.User.ID, req.Role); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.sessionFor(c, principal.User)})
}

// ClearDevRole handles DELETE /api/auth/dev-role.
func (h *AuthHandler) ClearDevRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.devRoles.Clear(c.Context(), principal.User.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.sessionFor(c, principal.User)})
}

// AcceptInvite handles POST /api/auth/invites/accept. Public: the token is
// the credential.
func (h *AuthHandler) AcceptInvite(c *fiber.Ctx) error {
	var req dto.AcceptInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" {
		return apperrors.NewValidationError("token required", nil)
	}

	user, err := h.invites.Accept(c.Context(), req.Token, req.FullName, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// sessionFor composes the session snapshot from the effective role. Override
// lookup failures degrade to the real role rather than failing the request.
func (h *AuthHandler) sessionFor(c *fiber.Ctx, user *domain.User) dto.SessionResponse {
	effective, _ := h.devRoles.EffectiveRole(c.Context(), user)
	caps := domain.ResolveCapabilities(effective)
	return dto.SessionResponse{
		User:          dto.NewUserResponse(user),
		EffectiveRole: effective,
		Capabilities:  caps,
		Layout:        navigation.Compose(caps),
	}
}
