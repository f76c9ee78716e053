package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"entregas/internal/service"
)

// DriverHandler handles driver endpoints.
type DriverHandler struct {
	driverService service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// Create handles POST /api/v1/motoristas
func (h *DriverHandler) Create(c *gin.Context) {
	var in service.DriverCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "codemp, nomeusu and senha are required")
		return
	}

	dr, err := h.driverService.Create(c.Request.Context(), in)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, dr)
}

// List handles GET /api/v1/motoristas
func (h *DriverHandler) List(c *gin.Context) {
	drs, err := h.driverService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, drs)
}
