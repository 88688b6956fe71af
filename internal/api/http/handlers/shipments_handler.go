package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jetpack-ops/jetpack/internal/api/dto"
	"github.com/jetpack-ops/jetpack/internal/auth"
	"github.com/jetpack-ops/jetpack/internal/service"
	apperrors "github.com/jetpack-ops/jetpack/pkg/util"
)

// ShipmentsHandler exposes the shipment drawer, claims, and billing data.
type ShipmentsHandler struct {
	shipments *service.ShipmentService
}

// NewShipmentsHandler constructs handler.
func NewShipmentsHandler(shipments *service.ShipmentService) *ShipmentsHandler {
	return &ShipmentsHandler{shipments: shipments}
}

// GetDetails handles GET /api/data/shipments/:id.
func (h *ShipmentsHandler) GetDetails(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	details, err := h.shipments.GetDetails(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": details})
}

// GetClaimEligibility handles GET /api/data/shipments/:id/claim-eligibility.
func (h *ShipmentsHandler) GetClaimEligibility(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	result, err := h.shipments.GetClaimEligibility(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

// SubmitClaim handles POST /api/data/shipments/:id/claims.
func (h *ShipmentsHandler) SubmitClaim(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SubmitClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.shipments.SubmitClaim(c.Context(), principal.User, c.Params("id"), req.Type, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ClaimTicketView{
		ID:         ticket.ID,
		Type:       ticket.Type,
		Status:     ticket.Status,
		CreatedAt:  ticket.CreatedAt,
		ResolvedAt: ticket.ResolvedAt,
	}})
}

// UpdateClaimStatus handles PUT /api/data/shipments/:id/claims/:claimId.
func (h *ShipmentsHandler) UpdateClaimStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateClaimStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.shipments.UpdateClaimStatus(c.Context(), principal.User, c.Params("id"), c.Params("claimId"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ClaimTicketView{
		ID:         ticket.ID,
		Type:       ticket.Type,
		Status:     ticket.Status,
		CreatedAt:  ticket.CreatedAt,
		ResolvedAt: ticket.ResolvedAt,
	}})
}

// ListCommissions handles GET /api/data/commissions.
func (h *ShipmentsHandler) ListCommissions(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	views, err := h.shipments.ListCommissions(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": views})
}

// ListInvoiceFiles handles GET /api/invoices/:id/files.
func (h *ShipmentsHandler) ListInvoiceFiles(c *fiber.Ctx) error {
	files, err := h.shipments.ListInvoiceFiles(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": files})
}
