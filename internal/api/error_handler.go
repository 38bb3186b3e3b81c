package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ems-platform/employee-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Details
// is populated only for validation failures; Timestamp is Unix milliseconds.
type errorResponse struct {
	Error     string   `json:"error"`
	Details   []string `json:"details,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Expands validation failures into a per-field details list.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", ...}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, details := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{
			Error:     msg,
			Details:   details,
			Timestamp: time.Now().UnixMilli(),
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, []string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	// Validation failures carry per-field messages for the client.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "Validation failed", ve.Messages
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound, "Employee not found", nil
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusBadRequest, "Email already exists", nil
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password", nil
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many failed login attempts, try again later", nil
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found", nil
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "User already exists", nil
	case errors.Is(err, domain.ErrExportFailed):
		return http.StatusInternalServerError, "Export failed", nil
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error", nil
}
