package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/okandemir/academix/internal/app/models/dto"
)

// parseIDParam extracts a positive int64 path parameter. On failure it writes
// the standard 400 response and reports false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	idStr := ctx.Param(name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails(name + " must be a positive number").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// parseOptionalIntQuery extracts an optional non-negative int query
// parameter. Absent yields nil; a malformed value writes the standard 400
// response and reports false.
func parseOptionalIntQuery(ctx *gin.Context, name string) (*int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails(name + " must be a non-negative number").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return &value, true
}

// parseFloatQuery extracts a required float query parameter. On failure it
// writes the standard 400 response and reports false.
func parseFloatQuery(ctx *gin.Context, name string) (float64, bool) {
	raw := ctx.Query(name)
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails(name + " must be a number").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return value, true
}

// parseLimitQuery extracts an optional positive "limit" query parameter,
// falling back to the given default.
func parseLimitQuery(ctx *gin.Context, defaultLimit int) (int, bool) {
	limitStr := ctx.Query("limit")
	if limitStr == "" {
		return defaultLimit, true
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid limit parameter")
		errorDetail = errorDetail.WithDetails("limit must be a positive number").WithField("limit")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return limit, true
}
