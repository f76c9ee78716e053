package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"entregas/internal/service"
)

// AuthHandler handles operator authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"nomeusu" binding:"required"`
	Password string `json:"senha" binding:"required"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "nomeusu and senha are required")
		return
	}

	token, op, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"token": token, "operator": op})
}
