package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// APIError is a domain error carrying the HTTP status it should map to.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func NewBadRequest(format string, args ...any) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorized(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: message}
}

func NewForbidden(format string, args ...any) *APIError {
	return &APIError{Status: http.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(resource, id string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: fmt.Sprintf("%s not found with id of %s", resource, id)}
}

func NewServerError(message string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: message}
}

// FromStoreError converts low-level store failures into domain errors.
// Duplicate-key violations become 400s naming the conflicting field,
// everything else stays a generic 500 with the detail logged only.
func FromStoreError(err error, field string) *APIError {
	if mongo.IsDuplicateKeyError(err) {
		return NewBadRequest("Duplicate field value entered: %s", field)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	GetLogger().Error("store operation failed", zap.Error(err))
	return NewServerError("Server Error")
}

// ErrorHandler is a middleware to catch panics and return the error envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   "Server Error",
				})
			}
		}()
		c.Next()
	}
}
