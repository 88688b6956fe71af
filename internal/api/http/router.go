package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jetpack-ops/jetpack/internal/api/http/handlers"
	"github.com/jetpack-ops/jetpack/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Brands         *handlers.BrandsHandler
	Users          *handlers.UsersHandler
	Shipments      *handlers.ShipmentsHandler
	Sync           *handlers.SyncHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/invites/accept", cfg.Auth.AcceptInvite)

	session := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	session.Get("/session", cfg.Auth.Session)
	session.Get("/profile", cfg.Auth.Profile)
	session.Put("/profile", cfg.Auth.UpdateProfile)
	session.Put("/password", cfg.Auth.ChangePassword)
	session.Post("/avatar", cfg.Auth.SetAvatar)
	session.Put("/dev-role", cfg.Auth.SetDevRole)
	session.Delete("/dev-role", cfg.Auth.ClearDevRole)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	clients := admin.Group("/clients", auth.RequireAdmin())
	clients.Get("/", cfg.Brands.List)
	clients.Post("/", cfg.Brands.Create)
	clients.Get("/:id", cfg.Brands.Get)
	clients.Put("/:id", cfg.Brands.Update)
	clients.Delete("/:id", cfg.Brands.Delete)
	clients.Post("/:id/token", cfg.Brands.SetToken)
	clients.Post("/:id/test-connection", cfg.Brands.TestConnection)

	admin.Get("/users", cfg.Users.ListBrandUsers)
	admin.Post("/users/invite", cfg.Users.CreateInvite)
	admin.Get("/care-users", auth.RequireCareAccess(), cfg.Users.ListCareUsers)
	admin.Get("/invites", auth.RequireCareAccess(), cfg.Users.ListInvites)
	admin.Get("/invites/schema", cfg.Users.InviteSchema)

	syncGroup := admin.Group("/sync", auth.RequireAdmin())
	syncGroup.Post("/", cfg.Sync.Trigger)
	syncGroup.Get("/:id", cfg.Sync.Status)

	data := api.Group("/data", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	data.Get("/shipments/:id", cfg.Shipments.GetDetails)
	data.Get("/shipments/:id/claim-eligibility", cfg.Shipments.GetClaimEligibility)
	data.Post("/shipments/:id/claims", cfg.Shipments.SubmitClaim)
	data.Put("/shipments/:id/claims/:claimId", auth.RequireCareAccess(), cfg.Shipments.UpdateClaimStatus)
	data.Get("/commissions", cfg.Shipments.ListCommissions)

	invoices := api.Group("/invoices", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	invoices.Get("/:id/files", cfg.Shipments.ListInvoiceFiles)
}
