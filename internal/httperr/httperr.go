package httperr

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond writes err using the business code table. Non-business errors
// are logged and reported as internal_error.
func Respond(c *gin.Context, err error) {
	code := CodeOf(err)
	if code == "" {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		code = CodeInternal
	}
	Write(c, StatusFor(code), code, MessageFor(code))
}

// Invalid reports a binding failure.
func Invalid(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error_code": CodeInvalidRequest,
		"message":    MessageFor(CodeInvalidRequest),
		"details":    err.Error(),
	})
}
