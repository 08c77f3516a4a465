package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"autoapi/internal/apperrors"
)

type APIResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Success(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Code:    code,
		Message: message,
	})
}

// Error maps an error to its HTTP status via the apperrors kind and sends
// the failure envelope. Unclassified errors are reported as a generic
// internal failure without leaking the driver message.
func Error(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindInvalidTable, apperrors.KindValidation, apperrors.KindConflict:
		status = http.StatusBadRequest
	}

	message := "internal server error"
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	Fail(c, status, kind.Code(), message)
}
