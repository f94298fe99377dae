package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolit/asset-service/internal/services"
	"github.com/schoolit/asset-service/internal/utils"
	"github.com/schoolit/asset-service/internal/validator"
)

// FacilityHandler serves classrooms, floor plans and wireless APs, all
// scoped to one school.
type FacilityHandler struct {
	BaseHandler
	classroomService services.ClassroomService
	floorPlanService services.FloorPlanService
	wirelessService  services.WirelessAPService
}

func NewFacilityHandler(
	classroomService services.ClassroomService,
	floorPlanService services.FloorPlanService,
	wirelessService services.WirelessAPService,
	logger utils.Logger,
) *FacilityHandler {
	return &FacilityHandler{
		BaseHandler:      NewBaseHandler(logger),
		classroomService: classroomService,
		floorPlanService: floorPlanService,
		wirelessService:  wirelessService,
	}
}

// ===== CLASSROOMS =====

func (h *FacilityHandler) ListClassrooms(c *gin.Context) {
	schoolID, ok := h.IDParam(c, "school_id")
	if !ok {
		return
	}

	rooms, err := h.classroomService.ListBySchool(c.Request.Context(), schoolID)
	if err != nil {
		h.RespondError(c, err, "failed to list classrooms")
		return
	}
	c.JSON(http.StatusOK, gin.H{"classrooms": rooms})
}

func (h *FacilityHandler) CreateClassroom(c *gin.Context) {
	schoolID, ok := h.IDParam(c, "school_id")
	if !ok {
		return
	}

	var req validator.ClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	room, err := h.classroomService.Create(c.Request.Context(), schoolID, &req)
	if err != nil {
		h.RespondError(c, err, "failed to create classroom")
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *FacilityHandler) UpdateClassroom(c *gin.Context) {
	id, ok := h.IDParam(c, "classroom_id")
	if !ok {
		return
	}

	var req validator.ClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	room, err := h.classroomService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.RespondError(c, err, "failed to update classroom")
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *FacilityHandler) DeleteClassroom(c *gin.Context) {
	id, ok := h.IDParam(c, "classroom_id")
	if !ok {
		return
	}

	if err := h.classroomService.Delete(c.Request.Context(), id); err != nil {
		h.RespondError(c, err, "failed to delete classroom")
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== FLOOR PLANS =====

func (h *FacilityHandler) ListFloorPlans(c *gin.Context) {
	schoolID, ok := h.IDParam(c, "school_id")
	if !ok {
		return
	}

	plans, err := h.floorPlanService.ListBySchool(c.Request.Context(), schoolID)
	if err != nil {
		h.RespondError(c, err, "failed to list floor plans")
		return
	}
	c.JSON(http.StatusOK, gin.H{"floor_plans": plans})
}

func (h *FacilityHandler) CreateFloorPlan(c *gin.Context) {
	schoolID, ok := h.IDParam(c, "school_id")
	if !ok {
		return
	}

	var req validator.FloorPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	plan, err := h.floorPlanService.Create(c.Request.Context(), schoolID, &req)
	if err != nil {
		h.RespondError(c, err, "failed to create floor plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *FacilityHandler) UpdateFloorPlan(c *gin.Context) {
	id, ok := h.IDParam(c, "plan_id")
	if !ok {
		return
	}

	var req validator.FloorPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	plan, err := h.floorPlanService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.RespondError(c, err, "failed to update floor plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *FacilityHandler) DeleteFloorPlan(c *gin.Context) {
	id, ok := h.IDParam(c, "plan_id")
	if !ok {
		return
	}

	if err := h.floorPlanService.Delete(c.Request.Context(), id); err != nil {
		h.RespondError(c, err, "failed to delete floor plan")
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== WIRELESS APS =====

func (h *FacilityHandler) ListWirelessAPs(c *gin.Context) {
	schoolID, ok := h.IDParam(c, "school_id")
	if !ok {
		return
	}

	aps, err := h.wirelessService.ListBySchool(c.Request.Context(), schoolID)
	if err != nil {
		h.RespondError(c, err, "failed to list wireless aps")
		return
	}
	c.JSON(http.StatusOK, gin.H{"wireless_aps": aps})
}

func (h *FacilityHandler) CreateWirelessAP(c *gin.Context) {
	schoolID, ok := h.IDParam(c, "school_id")
	if !ok {
		return
	}

	var req validator.WirelessAPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	ap, err := h.wirelessService.Create(c.Request.Context(), schoolID, &req)
	if err != nil {
		h.RespondError(c, err, "failed to create wireless ap")
		return
	}
	c.JSON(http.StatusCreated, ap)
}

func (h *FacilityHandler) UpdateWirelessAP(c *gin.Context) {
	id, ok := h.IDParam(c, "ap_id")
	if !ok {
		return
	}

	var req validator.WirelessAPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	ap, err := h.wirelessService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.RespondError(c, err, "failed to update wireless ap")
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *FacilityHandler) DeleteWirelessAP(c *gin.Context) {
	id, ok := h.IDParam(c, "ap_id")
	if !ok {
		return
	}

	if err := h.wirelessService.Delete(c.Request.Context(), id); err != nil {
		h.RespondError(c, err, "failed to delete wireless ap")
		return
	}
	c.Status(http.StatusNoContent)
}
