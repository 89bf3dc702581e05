package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/projectflow/projectflow-service/internal/auth"
	"github.com/projectflow/projectflow-service/internal/service"
)

// StatsHandler exposes dashboard counters.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: statsService}
}

// Dashboard handles GET /stats/dashboard.
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	return c.JSON(fiber.Map{"data": h.stats.Dashboard(principal)})
}
