package handlers

import (
	"errors"
	"log"
	"net/http"

	"gigflow/internal/services"

	"github.com/gin-gonic/gin"
)

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Stable error codes for clients that branch on the failure kind. A conflict
// is a lost race and worth retrying; invalid_state is final.
const (
	codeValidation         = "validation_failed"
	codeInvalidCredentials = "invalid_credentials"
	codeForbidden          = "forbidden"
	codeNotFound           = "not_found"
	codeInvalidState       = "invalid_state"
	codeConflict           = "conflict"
	codeUnavailable        = "unavailable"
	codeInternal           = "internal"
)

// codeFor maps a service error onto its stable code.
func codeFor(err error) string {
	switch {
	case errors.Is(err, services.ErrValidation):
		return codeValidation
	case errors.Is(err, services.ErrInvalidCredentials):
		return codeInvalidCredentials
	case errors.Is(err, services.ErrForbidden):
		return codeForbidden
	case errors.Is(err, services.ErrNotFound):
		return codeNotFound
	case errors.Is(err, services.ErrInvalidState):
		return codeInvalidState
	case errors.Is(err, services.ErrConflict):
		return codeConflict
	case errors.Is(err, services.ErrStoreUnavailable):
		return codeUnavailable
	default:
		return codeInternal
	}
}

// writeServiceError responds to a failed service call. Client errors carry
// the service message; anything unexpected is logged and hidden behind
// "Failed to <action>".
func writeServiceError(c *gin.Context, err error, action string) {
	status, code := statusFor(err), codeFor(err)
	switch status {
	case http.StatusBadRequest:
		c.JSON(status, gin.H{"error": "Validation failed", "code": code, "details": FormatValidationErrors(err)})
	case http.StatusServiceUnavailable:
		log.Printf("Handler: store unavailable while trying to %s: %v", action, err)
		c.JSON(status, gin.H{"error": "Service temporarily unavailable, please retry", "code": code})
	case http.StatusInternalServerError:
		log.Printf("Handler: failed to %s: %v", action, err)
		c.JSON(status, gin.H{"error": "Failed to " + action, "code": code})
	default:
		c.JSON(status, gin.H{"error": err.Error(), "code": code})
	}
}
