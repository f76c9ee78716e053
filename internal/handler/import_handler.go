package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"entregas/internal/config"
	"entregas/internal/domain"
	"entregas/internal/service"
)

// ImportHandler handles NFe archive import.
type ImportHandler struct {
	importService service.ImportService
	cfg           *config.ImportConfig
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService service.ImportService, cfg *config.ImportConfig) *ImportHandler {
	return &ImportHandler{importService: importService, cfg: cfg}
}

// importResponse is the flat result shape the frontend consumes.
type importResponse struct {
	OK bool `json:"ok"`
	domain.ImportResult
}

// ImportZip handles POST /api/v1/nfe/importar-zip. The archive arrives as
// the multipart field "arquivo". Any non-empty archive yields a 200 with
// per-entry outcomes, even when every entry failed; only a missing or
// oversized payload is a request-level failure.
func (h *ImportHandler) ImportZip(c *gin.Context) {
	file, header, err := c.Request.FormFile("arquivo")
	if err != nil {
		status, code, msg := MapDomainError(domain.ErrNoFile)
		RespondError(c, status, code, msg)
		return
	}
	defer func() { _ = file.Close() }()

	maxBytes := h.cfg.MaxUploadMB * 1024 * 1024
	if header.Size > maxBytes {
		status, code, msg := MapDomainError(domain.ErrFileTooLarge)
		RespondError(c, status, code, msg)
		return
	}

	// The ceiling is enforced again while reading in case the declared
	// size is wrong.
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}
	if int64(len(data)) > maxBytes {
		status, code, msg := MapDomainError(domain.ErrFileTooLarge)
		RespondError(c, status, code, msg)
		return
	}

	result, err := h.importService.ImportArchive(c.Request.Context(), data)
	if err != nil {
		if errors.Is(err, domain.ErrNoFile) || errors.Is(err, domain.ErrInvalidArchive) {
			status, code, msg := MapDomainError(err)
			RespondError(c, status, code, msg)
			return
		}
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, importResponse{OK: true, ImportResult: *result})
}
