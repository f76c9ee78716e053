package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"entregas/internal/export"
	"entregas/internal/service"
)

// DeliveryHandler handles delivery endpoints.
type DeliveryHandler struct {
	deliveryService service.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(deliveryService service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// Create handles POST /api/v1/entregas
func (h *DeliveryHandler) Create(c *gin.Context) {
	var in service.DeliveryCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "chavenfe is required")
		return
	}

	d, err := h.deliveryService.Create(c.Request.Context(), in)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, d)
}

// List handles GET /api/v1/entregas
func (h *DeliveryHandler) List(c *gin.Context) {
	ds, err := h.deliveryService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ds)
}

// ListItems handles GET /api/v1/entregas/:id/itens
func (h *DeliveryHandler) ListItems(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		return
	}

	items, err := h.deliveryService.ListItems(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, items)
}

// Export handles GET /api/v1/entregas/exportar and streams the current
// delivery list as an XLSX workbook.
func (h *DeliveryHandler) Export(c *gin.Context) {
	ds, err := h.deliveryService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	f, err := export.DeliveriesWorkbook(ds)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	filename := fmt.Sprintf("entregas-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		requestID, _ := c.Get("request_id")
		// Headers are already out; all we can do is log.
		log.Printf("[%v] export write failed: %v", requestID, err)
	}
}
