package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jetpack-ops/jetpack/internal/api/dto"
	"github.com/jetpack-ops/jetpack/internal/auth"
	"github.com/jetpack-ops/jetpack/internal/service"
	apperrors "github.com/jetpack-ops/jetpack/pkg/util"
)

// BrandsHandler exposes the admin client-management endpoints.
type BrandsHandler struct {
	brands *service.BrandService
}

// NewBrandsHandler constructs handler.
func NewBrandsHandler(brands *service.BrandService) *BrandsHandler {
	return &BrandsHandler{brands: brands}
}

// List handles GET /api/admin/clients.
func (h *BrandsHandler) List(c *fiber.Ctx) error {
	list, err := h.brands.List(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.BrandResponse, 0, len(list))
	for i := range list {
		resp = append(resp, dto.NewBrandResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /api/admin/clients/:id.
func (h *BrandsHandler) Get(c *fiber.Ctx) error {
	brand, err := h.brands.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBrandResponse(brand)})
}

// Create handles POST /api/admin/clients.
func (h *BrandsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.BrandRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	brand, err := h.brands.Create(c.Context(), principal.User.ID, brandInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBrandResponse(brand)})
}

// Update handles PUT /api/admin/clients/:id.
func (h *BrandsHandler) Update(c *fiber.Ctx) error {
	var req dto.BrandRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	brand, err := h.brands.Update(c.Context(), c.Params("id"), brandInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBrandResponse(brand)})
}

// Delete handles DELETE /api/admin/clients/:id.
func (h *BrandsHandler) Delete(c *fiber.Ctx) error {
	if err := h.brands.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// SetToken handles POST /api/admin/clients/:id/token.
func (h *BrandsHandler) SetToken(c *fiber.Ctx) error {
	var req dto.SetTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Token) == "" {
		return apperrors.NewValidationError("token required", nil)
	}

	if err := h.brands.SetToken(c.Context(), c.Params("id"), req.Token); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "token_saved"}})
}

// TestConnection handles POST /api/admin/clients/:id/test-connection.
func (h *BrandsHandler) TestConnection(c *fiber.Ctx) error {
	if err := h.brands.TestConnection(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TestConnectionResponse{OK: true}})
}

func brandInput(req dto.BrandRequest) service.BrandInput {
	return service.BrandInput{
		CompanyName:    req.CompanyName,
		ShipbobUserID:  req.ShipbobUserID,
		ShortCode:      req.ShortCode,
		BillingAddress: req.BillingAddress,
	}
}
