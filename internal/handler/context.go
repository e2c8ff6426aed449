package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MrsLondon/vivahub-api/internal/middleware"
)

// UserID returns the authenticated user's ID, or uuid.Nil for anonymous
// requests behind optional auth.
func UserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// UserRole returns the authenticated user's role, empty when anonymous.
func UserRole(c *gin.Context) string {
	return c.GetString(middleware.ContextUserRole)
}
