package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolit/asset-service/internal/authz"
	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/repositories"
	"github.com/schoolit/asset-service/internal/services"
	"github.com/schoolit/asset-service/internal/utils"
	"github.com/schoolit/asset-service/internal/validator"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
	helper      *authz.Helper
}

func NewUserHandler(userService services.UserService, helper *authz.Helper, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
		helper:      helper,
	}
}

// Signup creates a PENDING account. The only unauthenticated endpoint.
func (h *UserHandler) Signup(c *gin.Context) {
	var req validator.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	user, err := h.userService.Signup(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err, "signup failed")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Me returns the caller's account together with the UI visibility flags the
// frontend uses to hide navigation entries.
func (h *UserHandler) Me(c *gin.Context) {
	user := authz.CurrentUser(c)

	flags, err := h.helper.VisibilityFlags(c.Request.Context(), user)
	if err != nil {
		h.RespondError(c, err, "failed to compute feature flags")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"features": flags,
	})
}

// ListUsers lists accounts with optional filtering. Admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	limit, offset := h.Pagination(c)
	filters := repositories.UserFilters{
		Query:  c.Query("q"),
		Status: models.UserStatus(c.Query("status")),
		Role:   models.UserRole(c.Query("role")),
		Limit:  limit,
		Offset: offset,
	}

	users, total, err := h.userService.List(c.Request.Context(), authz.CurrentUser(c), filters)
	if err != nil {
		h.RespondError(c, err, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
	})
}

// UpdateStatus drives the approval workflow (approve, reject, suspend).
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	var req validator.UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	actor := authz.CurrentUser(c)
	err := h.userService.UpdateStatus(c.Request.Context(), actor, id, models.UserStatus(req.Status))
	if err != nil {
		h.RespondError(c, err, "failed to update user status")
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateRole changes a user's global role.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	var req validator.UserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	actor := authz.CurrentUser(c)
	err := h.userService.UpdateRole(c.Request.Context(), actor, id, models.UserRole(req.Role))
	if err != nil {
		h.RespondError(c, err, "failed to update user role")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteUser removes an account and all grants it owns.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	actor := authz.CurrentUser(c)
	if err := h.userService.Delete(c.Request.Context(), actor, id); err != nil {
		h.RespondError(c, err, "failed to delete user")
		return
	}

	c.Status(http.StatusNoContent)
}
