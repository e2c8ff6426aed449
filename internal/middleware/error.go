package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/MrsLondon/vivahub-api/pkg/errors"
	"github.com/MrsLondon/vivahub-api/pkg/httputil"
)

// ErrorHandler logs and renders errors attached to the gin context. Handlers
// that respond themselves are untouched; this catches c.Error usage.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Str("client_ip", c.ClientIP()).
				Msg("request error")
		}

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if appErr, ok := apperrors.AsAppError(lastErr.Err); ok {
			httputil.RespondWithError(c, appErr)
			return
		}

		c.JSON(http.StatusInternalServerError, httputil.Response{
			Status:  "error",
			Message: "internal server error",
		})
	}
}
