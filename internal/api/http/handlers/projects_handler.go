package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/projectflow/projectflow-service/internal/api/dto"
	"github.com/projectflow/projectflow-service/internal/auth"
	"github.com/projectflow/projectflow-service/internal/domain"
	"github.com/projectflow/projectflow-service/internal/service"
	apperrors "github.com/projectflow/projectflow-service/pkg/util"
)

// ProjectsHandler exposes project CRUD endpoints.
type ProjectsHandler struct {
	projects *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projectService}
}

// List handles GET /projects. Admins see everything, users see what they
// own.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	projects := h.projects.ListForUser(principal)
	return c.JSON(fiber.Map{"data": dto.ToProjectResponses(projects)})
}

// Get handles GET /projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	project, err := h.projects.Get(c.Params("id"))
	if err != nil {
		return err
	}
	if !canAccessProject(principal, project) {
		return apperrors.NewForbidden("not a member of this project")
	}
	return c.JSON(fiber.Map{"data": dto.ToProjectResponse(*project)})
}

// Create handles POST /projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.ProjectCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" {
		return apperrors.NewValidationError("title required", nil)
	}
	status := domain.ProjectStatus(req.Status)
	if !status.Valid() {
		return apperrors.NewValidationError("invalid status", map[string]any{"status": req.Status})
	}
	priority := domain.ProjectPriority(req.Priority)
	if !priority.Valid() {
		return apperrors.NewValidationError("invalid priority", map[string]any{"priority": req.Priority})
	}
	if req.StartDate.IsZero() {
		return apperrors.NewValidationError("start_date required", nil)
	}
	if req.Budget != nil && *req.Budget < 0 {
		return apperrors.NewValidationError("budget must be non-negative", nil)
	}

	project, err := h.projects.Create(c.UserContext(), principal, service.ProjectCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ToProjectResponse(*project)})
}

// Update handles PATCH /projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	id := c.Params("id")

	existing, err := h.projects.Get(id)
	if err != nil {
		return err
	}
	if !canAccessProject(principal, existing) {
		return apperrors.NewForbidden("not a member of this project")
	}

	var req dto.ProjectUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := domain.ProjectPatch{
		Title:         req.Title,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TeamMemberIDs: req.TeamMemberIDs,
		Progress:      req.Progress,
		Budget:        req.Budget,
		Tags:          req.Tags,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		if !status.Valid() {
			return apperrors.NewValidationError("invalid status", map[string]any{"status": *req.Status})
		}
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := domain.ProjectPriority(*req.Priority)
		if !priority.Valid() {
			return apperrors.NewValidationError("invalid priority", map[string]any{"priority": *req.Priority})
		}
		patch.Priority = &priority
	}
	if req.Progress != nil && (*req.Progress < 0 || *req.Progress > 100) {
		return apperrors.NewValidationError("progress must be within [0,100]", map[string]any{"progress": *req.Progress})
	}
	if req.Budget != nil && *req.Budget < 0 {
		return apperrors.NewValidationError("budget must be non-negative", nil)
	}

	project, err := h.projects.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToProjectResponse(*project)})
}

// Delete handles DELETE /projects/:id. Deleting an unknown id still
// responds 204.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	id := c.Params("id")

	if existing, err := h.projects.Get(id); err == nil {
		if !canAccessProject(principal, existing) {
			return apperrors.NewForbidden("not a member of this project")
		}
	}

	if err := h.projects.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func canAccessProject(principal *domain.User, project *domain.Project) bool {
	if principal == nil {
		return false
	}
	return principal.Role == domain.RoleAdmin || project.OwnerID == principal.ID
}
