package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/jetpack-ops/jetpack/pkg/util"
)

// RequireAdmin gates platform administration routes.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.Capabilities.IsAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}

// RequireCareAccess gates routes visible to internal support staff as well
// as admins.
func RequireCareAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || (!principal.Capabilities.IsAdmin && !principal.Capabilities.IsCareUser) {
			return apperrors.NewForbidden("care access required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a principal is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
