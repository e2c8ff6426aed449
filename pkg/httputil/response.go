package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrsLondon/vivahub-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	// Redirect is set on auth failures so clients can send the user to the
	// login page and return them to where they were afterwards.
	Redirect string `json:"redirect,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithError maps an error to its HTTP status and sends it
func RespondWithError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := "internal server error"

	if appErr, ok := errors.AsAppError(err); ok {
		statusCode = statusFromCode(appErr.Code)
		message = appErr.Message
	}

	c.JSON(statusCode, Response{
		Status:  "error",
		Message: message,
	})
}

// RespondWithLoginRedirect sends the 401 shape used by the checkout gate:
// the client is expected to follow redirect and come back to returnTo.
func RespondWithLoginRedirect(c *gin.Context, message, redirect string) {
	c.JSON(http.StatusUnauthorized, Response{
		Status:   "error",
		Message:  message,
		Redirect: redirect,
	})
}

func statusFromCode(code errors.ErrorCode) int {
	switch code {
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrBadRequest:
		return http.StatusBadRequest
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrForbidden:
		return http.StatusForbidden
	case errors.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
