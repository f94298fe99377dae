package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolit/asset-service/internal/services"
	"github.com/schoolit/asset-service/internal/utils"
	"github.com/schoolit/asset-service/internal/validator"
)

type SchoolHandler struct {
	BaseHandler
	schoolService services.SchoolService
}

func NewSchoolHandler(schoolService services.SchoolService, logger utils.Logger) *SchoolHandler {
	return &SchoolHandler{
		BaseHandler:   NewBaseHandler(logger),
		schoolService: schoolService,
	}
}

func (h *SchoolHandler) ListSchools(c *gin.Context) {
	limit, offset := h.Pagination(c)

	resp, err := h.schoolService.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.RespondError(c, err, "failed to list schools")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SchoolHandler) GetSchool(c *gin.Context) {
	id, ok := h.IDParam(c, "school_id")
	if !ok {
		return
	}

	school, err := h.schoolService.Get(c.Request.Context(), id)
	if err != nil {
		h.RespondError(c, err, "failed to load school")
		return
	}
	c.JSON(http.StatusOK, school)
}

func (h *SchoolHandler) CreateSchool(c *gin.Context) {
	var req validator.SchoolCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	school, err := h.schoolService.Create(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err, "failed to create school")
		return
	}
	c.JSON(http.StatusCreated, school)
}

func (h *SchoolHandler) UpdateSchool(c *gin.Context) {
	id, ok := h.IDParam(c, "school_id")
	if !ok {
		return
	}

	var req validator.SchoolUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	school, err := h.schoolService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.RespondError(c, err, "failed to update school")
		return
	}
	c.JSON(http.StatusOK, school)
}

func (h *SchoolHandler) DeleteSchool(c *gin.Context) {
	id, ok := h.IDParam(c, "school_id")
	if !ok {
		return
	}

	if err := h.schoolService.Delete(c.Request.Context(), id); err != nil {
		h.RespondError(c, err, "failed to delete school")
		return
	}
	c.Status(http.StatusNoContent)
}
