package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/projectflow/projectflow-service/internal/api/http/handlers"
	"github.com/projectflow/projectflow-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Projects       *handlers.ProjectsHandler
	Users          *handlers.UsersHandler
	Preferences    *handlers.PreferencesHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	projects := app.Group("/projects", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	projects.Get("/", cfg.Projects.List)
	projects.Post("/", cfg.Projects.Create)
	projects.Get("/:id", cfg.Projects.Get)
	projects.Patch("/:id", cfg.Projects.Update)
	projects.Delete("/:id", cfg.Projects.Delete)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	users.Get("/", auth.RequireAdmin(), cfg.Users.List)
	users.Post("/", auth.RequireAdmin(), cfg.Users.Create)
	users.Get("/:id", auth.RequireAdmin(), cfg.Users.Get)
	users.Patch("/:id", cfg.Users.Update)
	users.Delete("/:id", auth.RequireAdmin(), cfg.Users.Delete)

	preferences := app.Group("/preferences", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	preferences.Get("/notifications", cfg.Preferences.GetNotifications)
	preferences.Put("/notifications", cfg.Preferences.UpdateNotifications)
	preferences.Get("/ui", cfg.Preferences.GetUIPreferences)
	preferences.Put("/ui", cfg.Preferences.UpdateUIPreferences)

	stats := app.Group("/stats", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	stats.Get("/dashboard", cfg.Stats.Dashboard)
}
