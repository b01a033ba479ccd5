package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/furrybuddy/service-adoption/internal/domain"
)

// ExceptionDescription is the uniform error envelope returned to clients.
type ExceptionDescription struct {
	ExceptionClassName string `json:"exceptionClassName"`
	Message            string `json:"message"`
}

// Error writes a failure as an ExceptionDescription. Domain errors carry
// their kind as the class name; anything else is reported as a
// RuntimeException.
func Error(c *gin.Context, err error) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		c.JSON(http.StatusInternalServerError, ExceptionDescription{
			ExceptionClassName: string(derr.Kind),
			Message:            derr.Message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, ExceptionDescription{
		ExceptionClassName: "RuntimeException",
		Message:            err.Error(),
	})
}

// BadRequest reports a malformed request body or path parameter.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ExceptionDescription{
		ExceptionClassName: "IllegalArgumentException",
		Message:            msg,
	})
}
