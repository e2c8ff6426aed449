package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MrsLondon/vivahub-api/internal/model"
	authService "github.com/MrsLondon/vivahub-api/internal/service/auth"
	apperrors "github.com/MrsLondon/vivahub-api/pkg/errors"
	"github.com/MrsLondon/vivahub-api/pkg/httputil"
)

// Context keys set by the auth middleware
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

type AuthMiddleware struct {
	authSvc *authService.Service
}

func NewAuthMiddleware(authSvc *authService.Service) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Authenticate verifies the bearer token and sets user info in context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.parseBearer(c)
		if !ok {
			httputil.RespondWithError(c, apperrors.Unauthorized("invalid or missing token", nil))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// OptionalAuthenticate sets user info when a valid token is present but lets
// anonymous requests through. Routes behind it decide themselves what an
// anonymous caller may do; the checkout gate relies on this to answer with a
// login redirect instead of a flat 401.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := m.parseBearer(c); ok {
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUserEmail, claims.Email)
			c.Set(ContextUserRole, claims.Role)
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user has the role.
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != role {
			httputil.RespondWithError(c, apperrors.Forbidden("insufficient permissions", nil))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) parseBearer(c *gin.Context) (*model.TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := m.authSvc.ValidateToken(c.Request.Context(), parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}
