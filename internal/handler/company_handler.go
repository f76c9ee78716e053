package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"entregas/internal/service"
)

// CompanyHandler handles company endpoints.
type CompanyHandler struct {
	companyService service.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Create handles POST /api/v1/empresas
func (h *CompanyHandler) Create(c *gin.Context) {
	var in service.CompanyCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "cnpj and razaosocial are required")
		return
	}

	co, err := h.companyService.Create(c.Request.Context(), in)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, co)
}

// List handles GET /api/v1/empresas
func (h *CompanyHandler) List(c *gin.Context) {
	cos, err := h.companyService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, cos)
}

// Update handles PUT /api/v1/empresas/:codemp
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("codemp"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "codemp must be a positive integer")
		return
	}

	var in service.CompanyUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "malformed request body")
		return
	}

	co, err := h.companyService.Update(c.Request.Context(), id, in)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, co)
}
