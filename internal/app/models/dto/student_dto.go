package dto

import (
	"time"

	"github.com/okandemir/academix/internal/app/models"
)

// CreateStudentRequest represents the payload for registering a student with
// their owned profile. The profile is persisted in the same transaction.
type CreateStudentRequest struct {
	Name    string                `json:"name" binding:"required,min=2,max=100"`
	Major   string                `json:"major" binding:"required"`
	GPA     *float64              `json:"gpa,omitempty" binding:"omitempty,min=0,max=4"`
	Profile StudentProfileRequest `json:"profile" binding:"required"`
}

// StudentProfileRequest is the nested profile payload.
type StudentProfileRequest struct {
	Email       string     `json:"email" binding:"required,email"`
	PhoneNumber *string    `json:"phoneNumber,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
}

// StudentSearchCriteria holds the optional student search filters.
type StudentSearchCriteria struct {
	Major          *string  `form:"major"`
	MinGPA         *float64 `form:"minGpa" binding:"omitempty,min=0,max=4"`
	CourseEnrolled *string  `form:"courseEnrolled"`
	AdvisorName    *string  `form:"advisorName"`
	SortBy         string   `form:"sortBy"`
	SortDirection  string   `form:"sortDirection"`
}

// StudentBasicResponse is the minimal student view.
type StudentBasicResponse struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Major string   `json:"major"`
	GPA   *float64 `json:"gpa,omitempty"`
}

// StudentProfileResponse is the profile view nested in student details.
type StudentProfileResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	PhoneNumber *string    `json:"phoneNumber,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
}

// StudentDetailResponse is the full student view with profile, enrolled
// course summaries and advisor summaries.
type StudentDetailResponse struct {
	ID              int64                   `json:"id"`
	Name            string                  `json:"name"`
	Major           string                  `json:"major"`
	GPA             *float64                `json:"gpa,omitempty"`
	Profile         *StudentProfileResponse `json:"profile,omitempty"`
	EnrolledCourses []CourseBasicResponse   `json:"enrolledCourses"`
	Advisors        []ProfessorResponse     `json:"advisors"`
}

// StudentSearchResult is the flattened search view: email comes from the
// profile and the course count from the enrollment relation.
type StudentSearchResult struct {
	ID                   int64    `json:"id"`
	Name                 string   `json:"name"`
	Major                string   `json:"major"`
	GPA                  *float64 `json:"gpa,omitempty"`
	Email                *string  `json:"email,omitempty"`
	EnrolledCoursesCount int      `json:"enrolledCoursesCount"`
}

// FromStudentBasic converts a student model to the basic view.
func FromStudentBasic(s *models.Student) StudentBasicResponse {
	return StudentBasicResponse{
		ID:    s.ID,
		Name:  s.Name,
		Major: s.Major,
		GPA:   s.GPA,
	}
}

// FromStudentProfile converts a profile model to its view.
func FromStudentProfile(p *models.StudentProfile) *StudentProfileResponse {
	if p == nil {
		return nil
	}
	return &StudentProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		DateOfBirth: p.DateOfBirth,
	}
}

// FromStudentDetail converts a student model with its loaded relations to the
// detailed view. Relations must already be loaded; mapping never queries.
func FromStudentDetail(s *models.Student) StudentDetailResponse {
	courses := make([]CourseBasicResponse, 0, len(s.EnrolledCourses))
	for _, c := range s.EnrolledCourses {
		courses = append(courses, FromCourseBasic(c))
	}

	advisors := make([]ProfessorResponse, 0, len(s.Advisors))
	for _, p := range s.Advisors {
		advisors = append(advisors, *FromProfessor(p))
	}

	return StudentDetailResponse{
		ID:              s.ID,
		Name:            s.Name,
		Major:           s.Major,
		GPA:             s.GPA,
		Profile:         FromStudentProfile(s.Profile),
		EnrolledCourses: courses,
		Advisors:        advisors,
	}
}

// FromStudentSearchResult converts a student model to the flattened search
// view. The enrolled course count reflects the loaded relation state.
func FromStudentSearchResult(s *models.Student, enrolledCount int) StudentSearchResult {
	result := StudentSearchResult{
		ID:                   s.ID,
		Name:                 s.Name,
		Major:                s.Major,
		GPA:                  s.GPA,
		EnrolledCoursesCount: enrolledCount,
	}
	if s.Profile != nil {
		email := s.Profile.Email
		result.Email = &email
	}
	return result
}
