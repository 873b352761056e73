package handlers

import (
	"net/http"
	"strings"

	"hydraulic_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by authMiddleware.
const (
	ctxUserID   = "userId"
	ctxUserRole = "userRole"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userID, role, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(ctxUserID, userID)
	c.Set(ctxUserRole, role)
	c.Next()
}

// requirePermission gates a route on the static role → permission table.
func (h *Handler) requirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ctxUserRole)
		if !service.HasPermission(role, permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "permission denied: " + permission,
			})
			return
		}
		c.Next()
	}
}
