package dto

import (
	"github.com/okandemir/academix/internal/app/models"
)

// CreateCourseRequest represents the payload for creating a course.
// ProfessorID is optional: absent means the course starts unowned.
type CreateCourseRequest struct {
	Code        string  `json:"code" binding:"required,min=2,max=10"`
	Title       string  `json:"title" binding:"required,min=3,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
	Department  string  `json:"department" binding:"required"`
	Credits     int     `json:"credits" binding:"required,min=1,max=6"`
	Capacity    *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
	ProfessorID *int64  `json:"professorId,omitempty" binding:"omitempty,min=1"`
}

// UpdateCourseRequest carries a partial course update. Absent fields leave the
// stored values untouched (ignore-unset merge).
type UpdateCourseRequest struct {
	Code        *string `json:"code,omitempty" binding:"omitempty,min=2,max=10"`
	Title       *string `json:"title,omitempty" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
	Department  *string `json:"department,omitempty"`
	Credits     *int    `json:"credits,omitempty" binding:"omitempty,min=1,max=6"`
	Capacity    *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
	IsActive    *bool   `json:"isActive,omitempty"`
	ProfessorID *int64  `json:"professorId,omitempty" binding:"omitempty,min=1"`
}

// CourseSearchCriteria holds the optional course search filters. Every field
// left unset imposes no constraint.
type CourseSearchCriteria struct {
	CourseCode        *string  `form:"courseCode"`
	Title             *string  `form:"title"`
	Department        *string  `form:"department"`
	MinCredits        *int     `form:"minCredits" binding:"omitempty,min=0"`
	MinEnrollment     *int     `form:"minEnrollment" binding:"omitempty,min=0"`
	HasAvailableSeats *bool    `form:"hasAvailableSeats"`
	MinAverageGrade   *float64 `form:"minAverageGrade" binding:"omitempty,min=0,max=4"`
	IsActive          *bool    `form:"isActive"`
	SortBy            string   `form:"sortBy"`
	SortDirection     string   `form:"sortDirection"`
}

// ProfessorResponse is the professor summary nested in course views.
type ProfessorResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// CourseBasicResponse is the minimal course view.
type CourseBasicResponse struct {
	ID         int64  `json:"id"`
	CourseCode string `json:"courseCode"`
	Title      string `json:"title"`
}

// CourseDetailResponse is the full course view with its professor summary.
type CourseDetailResponse struct {
	ID              int64              `json:"id"`
	CourseCode      string             `json:"courseCode"`
	Title           string             `json:"title"`
	Description     *string            `json:"description,omitempty"`
	Department      string             `json:"department"`
	Credits         int                `json:"credits"`
	Capacity        int                `json:"capacity"`
	IsActive        bool               `json:"isActive"`
	Professor       *ProfessorResponse `json:"professor,omitempty"`
	EnrollmentCount int                `json:"enrollmentCount"`
}

// CourseSearchResult is the flattened search view with derived fields.
type CourseSearchResult struct {
	ID              int64    `json:"id"`
	Code            string   `json:"code"`
	Title           string   `json:"title"`
	ProfessorName   *string  `json:"professorName,omitempty"`
	EnrollmentCount int      `json:"enrollmentCount"`
	AverageGrade    *float64 `json:"averageGrade,omitempty"`
}

// FromProfessor converts a professor model to its summary view.
func FromProfessor(p *models.Professor) *ProfessorResponse {
	if p == nil {
		return nil
	}
	return &ProfessorResponse{
		ID:         p.ID,
		Name:       p.Name,
		Department: p.Department,
	}
}

// FromCourseBasic converts a course model to the basic view.
func FromCourseBasic(c *models.Course) CourseBasicResponse {
	return CourseBasicResponse{
		ID:         c.ID,
		CourseCode: c.CourseCode,
		Title:      c.Title,
	}
}

// FromCourseBasicList converts a slice of course models to basic views.
func FromCourseBasicList(courses []*models.Course) []CourseBasicResponse {
	result := make([]CourseBasicResponse, 0, len(courses))
	for _, c := range courses {
		result = append(result, FromCourseBasic(c))
	}
	return result
}

// FromCourseDetail converts a course model to the detailed view. The
// enrollment count comes from the loaded relation state; no queries here.
func FromCourseDetail(c *models.Course) CourseDetailResponse {
	return CourseDetailResponse{
		ID:              c.ID,
		CourseCode:      c.CourseCode,
		Title:           c.Title,
		Description:     c.Description,
		Department:      c.Department,
		Credits:         c.Credits,
		Capacity:        c.Capacity,
		IsActive:        c.IsActive,
		Professor:       FromProfessor(c.Professor),
		EnrollmentCount: c.EnrollmentCount,
	}
}

// FromCourseSearchResult converts a course model to the flattened search view.
func FromCourseSearchResult(c *models.Course) CourseSearchResult {
	result := CourseSearchResult{
		ID:              c.ID,
		Code:            c.CourseCode,
		Title:           c.Title,
		EnrollmentCount: c.EnrollmentCount,
		AverageGrade:    c.AverageGrade,
	}
	if c.Professor != nil {
		name := c.Professor.Name
		result.ProfessorName = &name
	}
	return result
}

// FromCourseSearchResultList converts a slice of course models to search views.
func FromCourseSearchResultList(courses []*models.Course) []CourseSearchResult {
	result := make([]CourseSearchResult, 0, len(courses))
	for _, c := range courses {
		result = append(result, FromCourseSearchResult(c))
	}
	return result
}
