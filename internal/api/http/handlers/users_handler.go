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

// UsersHandler exposes user listings and invitation management.
type UsersHandler struct {
	users   *service.UserService
	invites *service.InviteService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService, invites *service.InviteService) *UsersHandler {
	return &UsersHandler{users: users, invites: invites}
}

// ListBrandUsers handles GET /api/admin/users. Brand users see their own
// brand's accounts; internal roles see everything.
func (h *UsersHandler) ListBrandUsers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	list, err := h.users.ListBrandUsers(c.Context(), principal.User)
	if err != nil {
		return err
	}

	layout := navigation.Compose(principal.Capabilities)
	var invites []domain.Invitation
	if !layout.UsersReadOnly {
		invites, err = h.invites.ListPending(c.Context())
		if err != nil {
			return err
		}
	}
	return c.JSON(fiber.Map{"data": dto.NewUserList(list, invites, layout.UsersReadOnly)})
}

// ListCareUsers handles GET /api/admin/care-users.
func (h *UsersHandler) ListCareUsers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	list, err := h.users.ListCareUsers(c.Context(), principal.User)
	if err != nil {
		return err
	}
	layout := navigation.Compose(principal.Capabilities)
	return c.JSON(fiber.Map{"data": dto.NewUserList(list, nil, layout.UsersReadOnly)})
}

// CreateInvite handles POST /api/admin/users/invite.
func (h *UsersHandler) CreateInvite(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	inv, err := h.invites.Create(c.Context(), principal.User, service.InviteInput{
		Email:     req.Email,
		FullName:  req.FullName,
		Role:      req.UserType,
		BrandID:   req.ClientID,
		BrandRole: req.BrandRole,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewInvitationResponse(inv)})
}

// ListInvites handles GET /api/admin/invites.
func (h *UsersHandler) ListInvites(c *fiber.Ctx) error {
	list, err := h.invites.ListPending(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.InvitationResponse, 0, len(list))
	for i := range list {
		resp = append(resp, dto.NewInvitationResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// InviteSchema handles GET /api/admin/invites/schema. It tells the client
// which extra fields each invitable user type requires.
func (h *UsersHandler) InviteSchema(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	layout := navigation.Compose(principal.Capabilities)
	schemas := make([]dto.InviteFormSchema, 0, len(layout.InviteUserTypes))
	for _, role := range layout.InviteUserTypes {
		schemas = append(schemas, dto.InviteFormSchema{
			UserType: role,
			Fields:   navigation.InviteFieldsFor(role),
		})
	}
	return c.JSON(fiber.Map{"data": schemas})
}
