package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrsLondon/vivahub-api/internal/handler"
	"github.com/MrsLondon/vivahub-api/internal/model"
	authService "github.com/MrsLondon/vivahub-api/internal/service/auth"
	"github.com/MrsLondon/vivahub-api/pkg/httputil"
)

type Handler struct {
	service *authService.Service
}

func NewHandler(service *authService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the public auth endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/password/forgot", h.ForgotPassword)
		auth.POST("/password/reset", h.ResetPassword)
	}
}

// RegisterProtectedRoutes registers the endpoints needing a valid token.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Profile)
		auth.PATCH("/me", h.UpdateProfile)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	tokens, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, authService.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "registration failed"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, tokens)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": err.Error()})
		case errors.Is(err, authService.ErrAccountLocked):
			c.JSON(http.StatusLocked, gin.H{"status": "error", "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "login failed"})
		}
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, tokens)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	tokens, err := h.service.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid refresh token"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, tokens)
}

// ForgotPassword always answers 200 so callers cannot probe which emails
// exist.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	if err := h.service.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to request password reset"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "if the email is registered, a reset link has been sent"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, authService.ErrInvalidResetToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to reset password"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "password updated"})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), handler.UserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "logout failed"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) Profile(c *gin.Context) {
	user, err := h.service.GetProfile(c.Request.Context(), handler.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "user not found"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), handler.UserID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to update profile"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, user)
}
