package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ems-platform/employee-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"employee not found", domain.ErrEmployeeNotFound, http.StatusNotFound, "Employee not found"},
		{"email exists", domain.ErrEmailExists, http.StatusBadRequest, "Email already exists"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
		{"too many attempts", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many failed login attempts, try again later"},
		{"export failed", domain.ErrExportFailed, http.StatusInternalServerError, "Export failed"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := renderError(t, tc.err)
			if code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, code)
			}
			if body["error"] != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, body["error"])
			}
			if _, ok := body["timestamp"].(float64); !ok {
				t.Fatalf("timestamp missing: %+v", body)
			}
			if _, ok := body["details"]; ok {
				t.Fatalf("details must be omitted for non-validation errors")
			}
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("loading employees"), domain.ErrExportFailed)
	code, body := renderError(t, wrapped)
	if code != http.StatusInternalServerError || body["error"] != "Export failed" {
		t.Fatalf("wrapped sentinel not resolved: %d %v", code, body)
	}
}

func TestErrorHandler_ValidationError(t *testing.T) {
	code, body := renderError(t, domain.NewValidationError(
		"firstName: first name is required",
		"email: email should be valid",
	))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if body["error"] != "Validation failed" {
		t.Fatalf("unexpected message: %v", body["error"])
	}
	details, ok := body["details"].([]any)
	if !ok || len(details) != 2 {
		t.Fatalf("unexpected details: %+v", body["details"])
	}
	if details[0] != "firstName: first name is required" {
		t.Fatalf("unexpected first detail: %v", details[0])
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusForbidden, "access denied"))
	if code != http.StatusForbidden || body["error"] != "access denied" {
		t.Fatalf("echo error not passed through: %d %v", code, body)
	}
}
