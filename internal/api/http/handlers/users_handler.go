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

// UsersHandler exposes user administration endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /users (admin only, enforced at the route).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.ToUserResponses(h.users.List())})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToUserResponse(*user)})
}

// Create handles POST /users (admin only, enforced at the route).
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Name == "" {
		return apperrors.NewValidationError("name and email required", nil)
	}
	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return apperrors.NewValidationError("invalid role", map[string]any{"role": req.Role})
	}

	user, err := h.users.Create(c.UserContext(), service.UserCreateInput{
		Email:    req.Email,
		Name:     req.Name,
		Role:     role,
		Avatar:   req.Avatar,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ToUserResponse(*user)})
}

// Update handles PATCH /users/:id. Admins can update anyone; users can only
// update themselves, and cannot change their own role.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	id := c.Params("id")

	if principal.Role != domain.RoleAdmin && principal.ID != id {
		return apperrors.NewForbidden("cannot update another user")
	}

	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := domain.UserPatch{
		Email:  req.Email,
		Name:   req.Name,
		Avatar: req.Avatar,
	}
	if req.Role != nil {
		if principal.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("only admins can change roles")
		}
		role := domain.Role(*req.Role)
		if !role.Valid() {
			return apperrors.NewValidationError("invalid role", map[string]any{"role": *req.Role})
		}
		patch.Role = &role
	}

	user, err := h.users.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToUserResponse(*user)})
}

// Delete handles DELETE /users/:id (admin only, enforced at the route).
// Deleting your own account is rejected; deleting an unknown id responds
// 204.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	if err := h.users.Delete(c.UserContext(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
