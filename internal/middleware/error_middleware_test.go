package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/okandemir/academix/internal/app/models/dto"
	"github.com/okandemir/academix/internal/pkg/apperrors"
)

func runHandleAPIError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	HandleAPIError(c, err)
	return recorder
}

func TestHandleAPIErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"course not found", apperrors.ErrCourseNotFound, 404},
		{"student not found", apperrors.ErrStudentNotFound, 404},
		{"professor not found", apperrors.ErrProfessorNotFound, 404},
		{"user not found", apperrors.ErrUserNotFound, 404},
		{"generic not found", apperrors.ErrResourceNotFound, 404},
		{"already enrolled", apperrors.ErrAlreadyEnrolled, 409},
		{"already advisee", apperrors.ErrAlreadyAdvisee, 409},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, 409},
		{"invalid sort", apperrors.ErrInvalidSortField, 400},
		{"invalid page size", apperrors.ErrInvalidPageSize, 400},
		{"bad request", apperrors.ErrBadRequest, 400},
		{"validation failed", apperrors.ErrValidationFailed, 400},
		{"unknown error", fmt.Errorf("connection reset"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := runHandleAPIError(t, tt.err)
			if recorder.Code != tt.status {
				t.Errorf("status = %d, want %d", recorder.Code, tt.status)
			}
		})
	}
}

func TestHandleAPIErrorUnwrapsCustomErrors(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrInvalidSortField, `unknown sort field "gpa"`)
	recorder := runHandleAPIError(t, err)

	if recorder.Code != 400 {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}

	var resp dto.APIResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Error == nil {
		t.Fatal("error detail missing from response")
	}
	if resp.Error.Message != `unknown sort field "gpa"` {
		t.Errorf("custom message lost: %q", resp.Error.Message)
	}
	if resp.Error.Code != dto.ErrorCodeInvalidSort {
		t.Errorf("error code = %s, want %s", resp.Error.Code, dto.ErrorCodeInvalidSort)
	}
}

func TestHandleAPIErrorWrappedNotFound(t *testing.T) {
	wrapped := fmt.Errorf("loading course: %w", apperrors.ErrCourseNotFound)
	recorder := runHandleAPIError(t, wrapped)
	if recorder.Code != 404 {
		t.Errorf("wrapped sentinel must still map to 404, got %d", recorder.Code)
	}
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	recorder := runHandleAPIError(t, fmt.Errorf("pq: password authentication failed"))

	var resp dto.APIResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Error == nil {
		t.Fatal("error detail missing from response")
	}
	if resp.Error.Message != "Internal server error" {
		t.Errorf("internal error details leaked: %q", resp.Error.Message)
	}
}
