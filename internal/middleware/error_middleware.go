package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/okandemir/academix/internal/app/models/dto"
	"github.com/okandemir/academix/internal/pkg/apperrors"
	"github.com/okandemir/academix/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses. Controllers call
// this for every error path so status codes stay consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, messageFor(err, "Course not found"))
	case errors.Is(err, apperrors.ErrStudentNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, messageFor(err, "Student not found"))
	case errors.Is(err, apperrors.ErrProfessorNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, messageFor(err, "Professor not found"))
	case errors.Is(err, apperrors.ErrProfileNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, messageFor(err, "Student profile not found"))
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, messageFor(err, "User not found"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, messageFor(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respondError(c, 409, dto.ErrorCodeResourceConflict, messageFor(err, "Student is already enrolled in this course"))
	case errors.Is(err, apperrors.ErrAlreadyAdvisee):
		respondError(c, 409, dto.ErrorCodeResourceConflict, messageFor(err, "Student is already advised by this professor"))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, messageFor(err, "Email already exists"))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		respondError(c, 409, dto.ErrorCodeResourceConflict, messageFor(err, "Resource conflict"))
	case errors.Is(err, apperrors.ErrInvalidSortField):
		respondError(c, 400, dto.ErrorCodeInvalidSort, messageFor(err, "Invalid sort field"))
	case errors.Is(err, apperrors.ErrInvalidPageSize):
		respondError(c, 400, dto.ErrorCodeInvalidPageSize, messageFor(err, "Invalid page size"))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, 400, dto.ErrorCodeValidationFailed, messageFor(err, "Invalid request"))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respondError(c, 500, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// messageFor prefers the wrapped CustomError message over the generic
// fallback, so callers see what actually went wrong.
func messageFor(err error, fallback string) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return fallback
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.APIResponse{
		Error: dto.NewErrorDetail(code, message),
	})
}
