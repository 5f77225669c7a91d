package helpers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/okandemir/academix/internal/pkg/apperrors"
)

func contextWithQuery(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/courses/search?"+query, nil)
	return c
}

func TestParsePageRequestDefaults(t *testing.T) {
	req, err := ParsePageRequest(contextWithQuery(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Page != 0 {
		t.Errorf("default page = %d, want 0", req.Page)
	}
	if req.Size != DefaultPageSize {
		t.Errorf("default size = %d, want %d", req.Size, DefaultPageSize)
	}
}

func TestParsePageRequestExplicitValues(t *testing.T) {
	req, err := ParsePageRequest(contextWithQuery(t, "page=2&size=50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Page != 2 || req.Size != 50 {
		t.Errorf("got page=%d size=%d, want 2/50", req.Page, req.Size)
	}
}

func TestParsePageRequestRejectsZeroSize(t *testing.T) {
	_, err := ParsePageRequest(contextWithQuery(t, "size=0"))
	if !errors.Is(err, apperrors.ErrInvalidPageSize) {
		t.Fatalf("size=0 must be rejected, not clamped; got %v", err)
	}
}

func TestParsePageRequestRejectsNegativeSize(t *testing.T) {
	_, err := ParsePageRequest(contextWithQuery(t, "size=-5"))
	if !errors.Is(err, apperrors.ErrInvalidPageSize) {
		t.Fatalf("negative size must be rejected, got %v", err)
	}
}

func TestParsePageRequestRejectsOversizedPage(t *testing.T) {
	_, err := ParsePageRequest(contextWithQuery(t, "size=101"))
	if !errors.Is(err, apperrors.ErrInvalidPageSize) {
		t.Fatalf("size above %d must be rejected, got %v", MaxPageSize, err)
	}
}

func TestParsePageRequestRejectsNegativePage(t *testing.T) {
	_, err := ParsePageRequest(contextWithQuery(t, "page=-1"))
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("negative page must be a bad request, got %v", err)
	}
}

func TestParsePageRequestRejectsGarbage(t *testing.T) {
	if _, err := ParsePageRequest(contextWithQuery(t, "page=abc")); err == nil {
		t.Error("non-numeric page must be rejected")
	}
	if _, err := ParsePageRequest(contextWithQuery(t, "size=abc")); err == nil {
		t.Error("non-numeric size must be rejected")
	}
}
