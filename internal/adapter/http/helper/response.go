package helper

import (
	"errors"
	"log/slog"
	"net/http"

	"userapp/internal/core/domain"
	"userapp/internal/core/model/response"

	"github.com/gin-gonic/gin"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeBadRequest = "BAD_REQUEST"
	CodeInternal   = "INTERNAL_ERROR"

	MsgInternal = "Internal server error"
)

func SendSuccess(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func SendError(c *gin.Context, statusCode int, code string, message string) {
	c.AbortWithStatusJSON(statusCode, response.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func SendValidationError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, CodeValidation, err.Error())
}

func SendBadRequestError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, CodeBadRequest, message)
}

// SendInternalError logs err and replies with a generic message; driver
// errors never reach the client.
func SendInternalError(c *gin.Context, err error) {
	slog.ErrorContext(c.Request.Context(), "Internal error",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)

	SendError(c, http.StatusInternalServerError, CodeInternal, MsgInternal)
}

// SendServiceError maps a service error onto its response.
func SendServiceError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError

	if errors.As(err, &validationErr) {
		SendValidationError(c, validationErr)
		return
	}

	SendInternalError(c, err)
}
