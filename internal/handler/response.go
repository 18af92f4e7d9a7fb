package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"piiguard/internal/domain"
	"piiguard/internal/middleware"
	"piiguard/internal/telemetry"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Detail string `json:"detail" example:"LLM not available: connection refused"`
	Code   string `json:"code" example:"LLM_UNAVAILABLE"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, detail string) {
	c.JSON(status, ErrorResponse{Detail: detail, Code: code})
}

// MapDomainError translates domain errors to HTTP status codes, error codes
// and detail messages.
func MapDomainError(err error) (status int, code, detail string) {
	switch {
	case errors.Is(err, domain.ErrLLMUnavailable):
		return http.StatusServiceUnavailable, "LLM_UNAVAILABLE", err.Error()
	case errors.Is(err, domain.ErrLLMInvocation):
		return http.StatusInternalServerError, "LLM_ERROR", err.Error()
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, detail := MapDomainError(err)
	if status >= 500 {
		reportServerError(c, err)
	}
	RespondError(c, status, code, detail)
}

// Reportable reports whether err should be forwarded to Sentry. An
// unavailable model is a startup condition, logged once and exposed on
// /readyz, so it is not captured again on every request.
func Reportable(err error) bool {
	return err != nil && !errors.Is(err, domain.ErrLLMUnavailable)
}

// reportServerError logs err with the request ID and forwards reportable
// errors to Sentry.
func reportServerError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)
	log.Printf("[%s] internal error: %v", requestID, err)
	if Reportable(err) {
		telemetry.CaptureError(requestID, err)
	}
}
