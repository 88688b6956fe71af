package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jetpack-ops/jetpack/internal/auth"
	"github.com/jetpack-ops/jetpack/internal/service"
	apperrors "github.com/jetpack-ops/jetpack/pkg/util"
)

// SyncHandler exposes the admin data-sync controls.
type SyncHandler struct {
	sync *service.SyncService
}

// NewSyncHandler constructs handler.
func NewSyncHandler(sync *service.SyncService) *SyncHandler {
	return &SyncHandler{sync: sync}
}

// Trigger handles POST /api/admin/sync. The job runs asynchronously; the
// response carries the job id to poll.
func (h *SyncHandler) Trigger(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	job, err := h.sync.Enqueue(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": job})
}

// Status handles GET /api/admin/sync/:id.
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	job, err := h.sync.GetStatus(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": job})
}
