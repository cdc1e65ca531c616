// Package response maps domain errors onto HTTP statuses and renders the
// shared error view, so page handlers stay thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/storefront-views/internal/repository"
	"github.com/maxviazov/storefront-views/internal/service"
)

// ErrorView is the template every failed page renders.
const ErrorView = "error.html"

// ErrorPayload is the data handed to the error view.
type ErrorPayload struct {
	Status      int                  `json:"status"`
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Status: http.StatusOK, Error: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Status:      http.StatusBadRequest,
			Error:       "invalid_input",
			Message:     "one or more parameters are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Status: http.StatusNotFound, Error: "not_found", Message: "the page you asked for does not exist"}
	case errors.Is(err, repository.ErrInvalidQuery):
		return http.StatusBadRequest, ErrorPayload{Status: http.StatusBadRequest, Error: "invalid_input", Message: "one or more parameters are invalid"}
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable, ErrorPayload{Status: http.StatusServiceUnavailable, Error: "unavailable", Message: "please try again shortly"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Status: http.StatusInternalServerError, Error: "internal_error", Message: "something went wrong"}
	}
}

// RenderError renders the error view for err and aborts the chain.
func RenderError(c *gin.Context, err error) {
	status, payload := MapError(err)
	_ = c.Error(err)
	c.HTML(status, ErrorView, payload)
	c.Abort()
}

// RenderView renders a named view with 200.
func RenderView(c *gin.Context, name string, data any) {
	c.HTML(http.StatusOK, name, data)
}
