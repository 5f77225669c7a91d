package services

import (
	"context"

	"github.com/okandemir/academix/internal/app/models"
	"github.com/okandemir/academix/internal/app/models/dto"
	"github.com/okandemir/academix/internal/app/repositories"
)

// AcademicQueryService handles the read-side search and reporting operations.
// It never mutates state.
type AcademicQueryService struct {
	courseRepo  *repositories.CourseRepository
	studentRepo *repositories.StudentRepository
}

// NewAcademicQueryService creates a new academic query service instance
func NewAcademicQueryService(
	courseRepo *repositories.CourseRepository,
	studentRepo *repositories.StudentRepository,
) *AcademicQueryService {
	return &AcademicQueryService{
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
	}
}

// SearchCourses runs the dynamic course search and returns the matching page
// with the total match count.
func (s *AcademicQueryService) SearchCourses(ctx context.Context, criteria dto.CourseSearchCriteria, page dto.PageRequest) ([]*models.Course, int64, error) {
	return s.courseRepo.Search(ctx, criteria, page)
}

// SearchStudents runs the dynamic student search and returns the matching
// page with the total match count.
func (s *AcademicQueryService) SearchStudents(ctx context.Context, criteria dto.StudentSearchCriteria, page dto.PageRequest) ([]repositories.StudentSearchRow, int64, error) {
	return s.studentRepo.Search(ctx, criteria, page)
}

// GetTopPopularCourses returns the N most enrolled courses.
func (s *AcademicQueryService) GetTopPopularCourses(ctx context.Context, limit int) ([]*models.Course, error) {
	if limit <= 0 {
		limit = 3
	}
	return s.courseRepo.FindTopPopular(ctx, limit)
}

// GetTopStudentsByGpa returns the N highest-GPA students.
func (s *AcademicQueryService) GetTopStudentsByGpa(ctx context.Context, limit int) ([]*models.Student, error) {
	if limit <= 0 {
		limit = 3
	}
	return s.studentRepo.FindTopByGpa(ctx, limit)
}

// GetPopularCoursesByThresholds returns courses above both a credit and an
// enrollment threshold, most enrolled first.
func (s *AcademicQueryService) GetPopularCoursesByThresholds(ctx context.Context, minCredits, minStudents int) ([]*models.Course, error) {
	return s.courseRepo.FindPopular(ctx, minCredits, minStudents)
}

// GetCoursesByDepartment returns a department's courses, optionally filtered
// to a minimum credit value.
func (s *AcademicQueryService) GetCoursesByDepartment(ctx context.Context, department string, minCredits *int) ([]*models.Course, error) {
	if minCredits != nil {
		return s.courseRepo.FindByDepartmentAndMinCredits(ctx, department, *minCredits)
	}
	return s.courseRepo.FindByDepartment(ctx, department)
}

// GetCourseCountsByDepartment returns the per-department course tallies.
func (s *AcademicQueryService) GetCourseCountsByDepartment(ctx context.Context) ([]repositories.DepartmentCourseCount, error) {
	return s.courseRepo.CountByDepartment(ctx)
}

// GetStudentsByMajor returns all students in a major.
func (s *AcademicQueryService) GetStudentsByMajor(ctx context.Context, major string) ([]*models.Student, error) {
	return s.studentRepo.FindByMajor(ctx, major)
}

// GetHighAchievers returns students strictly above the GPA threshold.
func (s *AcademicQueryService) GetHighAchievers(ctx context.Context, minGPA float64) ([]*models.Student, error) {
	return s.studentRepo.FindByGpaGreaterThan(ctx, minGPA)
}
