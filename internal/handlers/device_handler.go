package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/repositories"
	"github.com/schoolit/asset-service/internal/services"
	"github.com/schoolit/asset-service/internal/utils"
	"github.com/schoolit/asset-service/internal/validator"
)

type DeviceHandler struct {
	BaseHandler
	deviceService services.DeviceService
	exportService services.ExportService
	qrService     services.QRCodeService
}

func NewDeviceHandler(deviceService services.DeviceService, exportService services.ExportService, qrService services.QRCodeService, logger utils.Logger) *DeviceHandler {
	return &DeviceHandler{
		BaseHandler:   NewBaseHandler(logger),
		deviceService: deviceService,
		exportService: exportService,
		qrService:     qrService,
	}
}

// ListDevices lists devices of one school with optional filtering.
func (h *DeviceHandler) ListDevices(c *gin.Context) {
	schoolID, ok := h.IDParam(c, "school_id")
	if !ok {
		return
	}

	limit, offset := h.Pagination(c)
	filters := repositories.DeviceFilters{
		SchoolID: &schoolID,
		Type:     c.Query("type"),
		Status:   models.DeviceStatus(c.Query("status")),
		Query:    c.Query("q"),
		Limit:    limit,
		Offset:   offset,
	}

	resp, err := h.deviceService.List(c.Request.Context(), filters)
	if err != nil {
		h.RespondError(c, err, "failed to list devices")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DeviceHandler) GetDevice(c *gin.Context) {
	id, ok := h.IDParam(c, "device_id")
	if !ok {
		return
	}

	device, err := h.deviceService.Get(c.Request.Context(), id)
	if err != nil {
		h.RespondError(c, err, "failed to load device")
		return
	}
	c.JSON(http.StatusOK, device)
}

func (h *DeviceHandler) CreateDevice(c *gin.Context) {
	schoolID, ok := h.IDParam(c, "school_id")
	if !ok {
		return
	}

	var req validator.DeviceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	device, err := h.deviceService.Create(c.Request.Context(), schoolID, &req)
	if err != nil {
		h.RespondError(c, err, "failed to create device")
		return
	}
	c.JSON(http.StatusCreated, device)
}

func (h *DeviceHandler) UpdateDevice(c *gin.Context) {
	id, ok := h.IDParam(c, "device_id")
	if !ok {
		return
	}

	var req validator.DeviceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	device, err := h.deviceService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.RespondError(c, err, "failed to update device")
		return
	}
	c.JSON(http.StatusOK, device)
}

// DeleteDevice hard-deletes a device. Behind the data-delete gate.
func (h *DeviceHandler) DeleteDevice(c *gin.Context) {
	id, ok := h.IDParam(c, "device_id")
	if !ok {
		return
	}

	if err := h.deviceService.Delete(c.Request.Context(), id); err != nil {
		h.RespondError(c, err, "failed to delete device")
		return
	}
	c.Status(http.StatusNoContent)
}

// InspectDevice stamps the device as inspected now.
func (h *DeviceHandler) InspectDevice(c *gin.Context) {
	id, ok := h.IDParam(c, "device_id")
	if !ok {
		return
	}

	device, err := h.deviceService.Inspect(c.Request.Context(), id)
	if err != nil {
		h.RespondError(c, err, "failed to record inspection")
		return
	}
	c.JSON(http.StatusOK, device)
}

// ExportInventory streams the xlsx inventory workbook of one school.
func (h *DeviceHandler) ExportInventory(c *gin.Context) {
	schoolID, ok := h.IDParam(c, "school_id")
	if !ok {
		return
	}

	data, filename, err := h.exportService.DeviceInventory(c.Request.Context(), schoolID)
	if err != nil {
		h.RespondError(c, err, "failed to export inventory")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// DeviceQRCode streams a PNG label encoding the inventory number.
func (h *DeviceHandler) DeviceQRCode(c *gin.Context) {
	id, ok := h.IDParam(c, "device_id")
	if !ok {
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	png, err := h.qrService.DeviceLabel(c.Request.Context(), id, size)
	if err != nil {
		h.RespondError(c, err, "failed to generate qr label")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
