package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"entregas/internal/service"
)

const (
	ctxOperatorID = "operator_id"
	ctxCompanyID  = "company_id"
	ctxUsername   = "username"
)

// AuthMiddleware validates the Bearer token and stores the operator's
// identity in the request context.
func AuthMiddleware(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := authSvc.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ctxOperatorID, claims.OperatorID)
		c.Set(ctxCompanyID, claims.CompanyID)
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// GetOperatorID returns the authenticated operator id from the context.
func GetOperatorID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxOperatorID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// GetCompanyID returns the authenticated operator's company id.
func GetCompanyID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxCompanyID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
