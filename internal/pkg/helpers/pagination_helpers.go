package helpers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/okandemir/academix/internal/app/models/dto"
	"github.com/okandemir/academix/internal/pkg/apperrors"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultPage     = 0 // Page index is zero-based
)

// ParsePageRequest extracts pagination parameters from the request.
// A missing page defaults to 0 and a missing size to DefaultPageSize; an
// explicit non-positive or oversized value is rejected rather than clamped.
func ParsePageRequest(c *gin.Context) (dto.PageRequest, error) {
	req := dto.PageRequest{Page: DefaultPage, Size: DefaultPageSize}

	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			return req, apperrors.NewBadRequestError(fmt.Sprintf("invalid page number: %q", pageStr))
		}
		req.Page = page
	}

	if sizeStr := c.Query("size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return req, apperrors.NewBadRequestError(fmt.Sprintf("invalid page size: %q", sizeStr))
		}
		if size <= 0 || size > MaxPageSize {
			return req, apperrors.NewCustomError(apperrors.ErrInvalidPageSize,
				fmt.Sprintf("page size must be between 1 and %d, got %d", MaxPageSize, size))
		}
		req.Size = size
	}

	return req, nil
}
