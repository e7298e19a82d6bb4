package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "Internal Server Error",
					Message: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	if status >= http.StatusInternalServerError {
		GetLogger().Error(message, zap.String("details", details))
	} else {
		GetLogger().Warn(message, zap.String("details", details))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Message: details})
}

// JSONFieldError reports a validation failure tied to one request field.
func JSONFieldError(c *gin.Context, field, message string) {
	GetLogger().Debug("validation failed", zap.String("field", field), zap.String("message", message))
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Error de Validación",
		Message: message,
		Field:   field,
	})
}
