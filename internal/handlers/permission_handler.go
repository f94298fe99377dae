package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolit/asset-service/internal/authz"
	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/services"
	"github.com/schoolit/asset-service/internal/utils"
	"github.com/schoolit/asset-service/internal/validator"
)

// PermissionHandler exposes the admin grant-management endpoints. The
// ADMIN-role requirement is enforced inside the permission service.
type PermissionHandler struct {
	BaseHandler
	permissionService services.PermissionService
}

func NewPermissionHandler(permissionService services.PermissionService, logger utils.Logger) *PermissionHandler {
	return &PermissionHandler{
		BaseHandler:       NewBaseHandler(logger),
		permissionService: permissionService,
	}
}

// ListFeatureCatalog returns the capability catalog for the admin UI.
func (h *PermissionHandler) ListFeatureCatalog(c *gin.Context) {
	features := make([]gin.H, 0, len(models.AllFeatures))
	for _, f := range models.AllFeatures {
		features = append(features, gin.H{
			"id":    f.ID(),
			"name":  f,
			"label": f.Label(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"features": features})
}

// GetUserGrants lists both grant axes of one user.
func (h *PermissionHandler) GetUserGrants(c *gin.Context) {
	userID, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	actor := authz.CurrentUser(c)
	grants, err := h.permissionService.GetUserGrants(c.Request.Context(), actor, userID)
	if err != nil {
		h.RespondError(c, err, "failed to load grants")
		return
	}

	c.JSON(http.StatusOK, grants)
}

type featureOp func(ctx context.Context, actor *models.User, userID uint, feature models.Feature) error

func (h *PermissionHandler) mutateFeature(c *gin.Context, op featureOp, msg string) {
	userID, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	var req validator.FeatureGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	feature, err := models.FeatureByName(req.Feature)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	actor := authz.CurrentUser(c)
	if err := op(c.Request.Context(), actor, userID, feature); err != nil {
		h.RespondError(c, err, msg)
		return
	}

	c.Status(http.StatusNoContent)
}

// GrantFeature grants one feature to one user. Idempotent.
func (h *PermissionHandler) GrantFeature(c *gin.Context) {
	h.mutateFeature(c, h.permissionService.GrantFeature, "failed to grant feature")
}

// RevokeFeature revokes one feature from one user. Idempotent.
func (h *PermissionHandler) RevokeFeature(c *gin.Context) {
	h.mutateFeature(c, h.permissionService.RevokeFeature, "failed to revoke feature")
}

type schoolOp func(ctx context.Context, actor *models.User, userID, schoolID uint) error

func (h *PermissionHandler) mutateSchool(c *gin.Context, op schoolOp, msg string) {
	userID, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	var req validator.SchoolGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	actor := authz.CurrentUser(c)
	if err := op(c.Request.Context(), actor, userID, req.SchoolID); err != nil {
		h.RespondError(c, err, msg)
		return
	}

	c.Status(http.StatusNoContent)
}

// GrantSchool grants access to one school. Idempotent.
func (h *PermissionHandler) GrantSchool(c *gin.Context) {
	h.mutateSchool(c, h.permissionService.GrantSchool, "failed to grant school access")
}

// RevokeSchool revokes access to one school. Idempotent.
func (h *PermissionHandler) RevokeSchool(c *gin.Context) {
	h.mutateSchool(c, h.permissionService.RevokeSchool, "failed to revoke school access")
}
