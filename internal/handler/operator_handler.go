package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"entregas/internal/service"
)

// OperatorHandler handles back-office user endpoints.
type OperatorHandler struct {
	operatorService service.OperatorService
}

// NewOperatorHandler creates a new OperatorHandler.
func NewOperatorHandler(operatorService service.OperatorService) *OperatorHandler {
	return &OperatorHandler{operatorService: operatorService}
}

// Create handles POST /api/v1/usuarios
func (h *OperatorHandler) Create(c *gin.Context) {
	var in service.OperatorCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "codemp, nomeusu and senha are required")
		return
	}

	op, err := h.operatorService.Create(c.Request.Context(), in)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, op)
}

// List handles GET /api/v1/usuarios
func (h *OperatorHandler) List(c *gin.Context) {
	ops, err := h.operatorService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ops)
}

// GetByID handles GET /api/v1/usuarios/:codusu
func (h *OperatorHandler) GetByID(c *gin.Context) {
	id, err := parseID(c.Param("codusu"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "codusu must be a positive integer")
		return
	}

	op, err := h.operatorService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, op)
}

// Update handles PUT /api/v1/usuarios/:codusu
func (h *OperatorHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("codusu"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "codusu must be a positive integer")
		return
	}

	var in service.OperatorUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "malformed request body")
		return
	}

	op, err := h.operatorService.Update(c.Request.Context(), id, in)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, op)
}

// parseID parses a positive integer path parameter.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
