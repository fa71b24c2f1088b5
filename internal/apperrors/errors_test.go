package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

// TestToResponseDictionary verifies the fixed kind -> status/code table.
func TestToResponseDictionary(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", Validation("Missing info on body"), http.StatusBadRequest, "validation_error"},
		{"existing item", ExistingItem("Product with id: p1 already exist"), http.StatusBadRequest, "database_error"},
		{"not found", NotFound("No item with ID p1 found"), http.StatusNotFound, "not_found"},
		{"system", System("backend unavailable"), http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := ToResponse(tc.err)
			if status != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, status)
			}
			if body.Code != tc.wantCode {
				t.Errorf("Expected code '%s', got '%s'", tc.wantCode, body.Code)
			}
			if body.Message != tc.err.Error() {
				t.Errorf("Expected message '%s', got '%s'", tc.err.Error(), body.Message)
			}
		})
	}
}

// TestToResponseUnknownError verifies non-domain failures collapse to an
// opaque 500 body.
func TestToResponseUnknownError(t *testing.T) {
	status, body := ToResponse(errors.New("connection reset by peer"))

	if status != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", status)
	}
	if body.Code != "internal_server_error" {
		t.Errorf("Expected code 'internal_server_error', got '%s'", body.Code)
	}
	if body.Message != "unknown error" {
		t.Errorf("Expected message 'unknown error', got '%s'", body.Message)
	}
}

// TestToResponseWrappedError verifies domain errors are recognized
// through wrapping.
func TestToResponseWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", NotFound("No item with ID p1 found"))

	status, body := ToResponse(wrapped)
	if status != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", status)
	}
	if body.Code != "not_found" {
		t.Errorf("Expected code 'not_found', got '%s'", body.Code)
	}
}

// TestErrorIsMatchesByKind verifies errors.Is matching on kind.
func TestErrorIsMatchesByKind(t *testing.T) {
	err := NotFound("No item with ID p1 found")

	if !errors.Is(err, NotFound("")) {
		t.Error("Expected not-found errors to match by kind")
	}
	if errors.Is(err, Validation("")) {
		t.Error("Expected different kinds not to match")
	}
}
