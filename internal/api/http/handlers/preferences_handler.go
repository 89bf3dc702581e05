package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/projectflow/projectflow-service/internal/api/dto"
	"github.com/projectflow/projectflow-service/internal/auth"
	"github.com/projectflow/projectflow-service/internal/domain"
	"github.com/projectflow/projectflow-service/internal/service"
	apperrors "github.com/projectflow/projectflow-service/pkg/util"
)

// PreferencesHandler exposes the principal's notification and UI settings.
type PreferencesHandler struct {
	preferences *service.PreferenceService
}

// NewPreferencesHandler constructs handler.
func NewPreferencesHandler(preferenceService *service.PreferenceService) *PreferencesHandler {
	return &PreferencesHandler{preferences: preferenceService}
}

// GetNotifications handles GET /preferences/notifications.
func (h *PreferencesHandler) GetNotifications(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	prefs, err := h.preferences.Notifications(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NotificationPreferencesPayload{
		EmailNotifications: prefs.EmailNotifications,
		ProjectUpdates:     prefs.ProjectUpdates,
		TeamMessages:       prefs.TeamMessages,
		DeadlineReminders:  prefs.DeadlineReminders,
		WeeklyReports:      prefs.WeeklyReports,
	}})
}

// UpdateNotifications handles PUT /preferences/notifications.
func (h *PreferencesHandler) UpdateNotifications(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.NotificationPreferencesPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	prefs := domain.NotificationPreferences{
		EmailNotifications: req.EmailNotifications,
		ProjectUpdates:     req.ProjectUpdates,
		TeamMessages:       req.TeamMessages,
		DeadlineReminders:  req.DeadlineReminders,
		WeeklyReports:      req.WeeklyReports,
	}
	if err := h.preferences.UpdateNotifications(c.UserContext(), principal.ID, prefs); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": req})
}

// GetUIPreferences handles GET /preferences/ui.
func (h *PreferencesHandler) GetUIPreferences(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	prefs, err := h.preferences.UIPreferences(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UIPreferencesPayload{
		Theme:      prefs.Theme,
		Language:   prefs.Language,
		Timezone:   prefs.Timezone,
		DateFormat: prefs.DateFormat,
		Currency:   prefs.Currency,
	}})
}

// UpdateUIPreferences handles PUT /preferences/ui.
func (h *PreferencesHandler) UpdateUIPreferences(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.UIPreferencesPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	prefs := domain.UIPreferences{
		Theme:      req.Theme,
		Language:   req.Language,
		Timezone:   req.Timezone,
		DateFormat: req.DateFormat,
		Currency:   req.Currency,
	}
	if err := h.preferences.UpdateUIPreferences(c.UserContext(), principal.ID, prefs); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": req})
}
