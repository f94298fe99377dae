package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/schoolit/asset-service/internal/authz"
	"github.com/schoolit/asset-service/internal/repositories"
	"github.com/schoolit/asset-service/internal/services"
	"github.com/schoolit/asset-service/internal/utils"
	"github.com/schoolit/asset-service/internal/validator"
)

// ErrorResponse is the common error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// BaseHandler carries the shared handler dependencies.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string) {
	utils.FromContext(c, h.logger).Debug(msg, "path", c.Request.URL.Path)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	utils.FromContext(c, h.logger).Error(msg, "error", err, "path", c.Request.URL.Path)
}

// IDParam parses a numeric path parameter.
func (h *BaseHandler) IDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}

// RespondError maps service and repository errors to HTTP responses.
func (h *BaseHandler) RespondError(c *gin.Context, err error, msg string) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"message": msg,
			"fields":  verrs,
		})
	case errors.Is(err, repositories.ErrNotFound),
		errors.Is(err, authz.ErrSchoolNotFound),
		errors.Is(err, authz.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: msg,
		})
	case errors.Is(err, services.ErrAdminRequired):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "this operation requires the ADMIN role",
		})
	default:
		h.LogError(c, err, msg)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal",
			Message: msg,
			Details: err.Error(),
		})
	}
}

// Pagination reads limit/offset query parameters with sane bounds.
func (h *BaseHandler) Pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("size", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}
