package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/okandemir/academix/internal/app/models"
	"github.com/okandemir/academix/internal/app/models/dto"
	"github.com/okandemir/academix/internal/app/repositories"
	"github.com/okandemir/academix/internal/db"
	"github.com/okandemir/academix/internal/pkg/apperrors"
	"github.com/okandemir/academix/internal/pkg/logger"
)

// AcademicService handles course, professor and student lifecycle operations
// including the relationship mutations between them.
type AcademicService struct {
	courseRepo    *repositories.CourseRepository
	professorRepo *repositories.ProfessorRepository
	studentRepo   *repositories.StudentRepository
	database      *db.PostgresDB
}

// NewAcademicService creates a new academic service instance
func NewAcademicService(
	courseRepo *repositories.CourseRepository,
	professorRepo *repositories.ProfessorRepository,
	studentRepo *repositories.StudentRepository,
	database *db.PostgresDB,
) *AcademicService {
	return &AcademicService{
		courseRepo:    courseRepo,
		professorRepo: professorRepo,
		studentRepo:   studentRepo,
		database:      database,
	}
}

// CreateCourse creates a course in two steps: the row is inserted first to
// obtain its identity, then the professor assignment is applied. The
// professor is verified before the insert so step two cannot fail on a
// missing reference.
func (s *AcademicService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if req.ProfessorID != nil {
		if _, err := s.professorRepo.GetByID(ctx, *req.ProfessorID); err != nil {
			return nil, err
		}
	}

	capacity := 50
	if req.Capacity != nil {
		capacity = *req.Capacity
	}

	course := &models.Course{
		CourseCode:  req.Code,
		Title:       req.Title,
		Description: req.Description,
		Department:  req.Department,
		Credits:     req.Credits,
		Capacity:    capacity,
		IsActive:    true,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	if req.ProfessorID != nil {
		if err := s.courseRepo.SetProfessor(ctx, course.ID, req.ProfessorID); err != nil {
			return nil, err
		}
		course.ProfessorID = req.ProfessorID
	}

	logger.Info().Int64("courseId", course.ID).Str("courseCode", course.CourseCode).Msg("Course created")
	return course, nil
}

// GetCourse retrieves a course with its professor, derived aggregates and
// enrolled students.
func (s *AcademicService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	students, err := s.courseRepo.GetEnrolledStudents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading enrolled students: %w", err)
	}
	course.EnrolledStudents = students

	return course, nil
}

// GetAllCourses retrieves all courses without relations.
func (s *AcademicService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// applyCourseUpdate merges the sparse update request into the loaded course.
// Fields absent from the request keep their current value.
func applyCourseUpdate(course *models.Course, req dto.UpdateCourseRequest) {
	if req.Code != nil {
		course.CourseCode = *req.Code
	}
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Department != nil {
		course.Department = *req.Department
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.Capacity != nil {
		course.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}
	if req.ProfessorID != nil {
		course.ProfessorID = req.ProfessorID
	}
}

// UpdateCourse applies a sparse update to a course. Unset request fields are
// ignored rather than zeroed.
func (s *AcademicService) UpdateCourse(ctx context.Context, id int64, req dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ProfessorID != nil {
		if _, err := s.professorRepo.GetByID(ctx, *req.ProfessorID); err != nil {
			return nil, err
		}
	}

	applyCourseUpdate(course, req)

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return s.courseRepo.GetByID(ctx, id)
}

// DeleteCourse removes a course and all its enrollment rows atomically.
// Enrolled students survive with the membership dissolved.
func (s *AcademicService) DeleteCourse(ctx context.Context, id int64) error {
	if _, err := s.courseRepo.GetByID(ctx, id); err != nil {
		return err
	}

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.courseRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("courseId", id).Msg("Course deleted")
	return nil
}

// AssignProfessorToCourse sets the owning professor of a course. Assigning
// the same professor again is a no-op, not an error.
func (s *AcademicService) AssignProfessorToCourse(ctx context.Context, courseID, professorID int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.professorRepo.GetByID(ctx, professorID); err != nil {
		return nil, err
	}

	if course.ProfessorID == nil || *course.ProfessorID != professorID {
		if err := s.courseRepo.SetProfessor(ctx, courseID, &professorID); err != nil {
			return nil, err
		}
	}

	return s.courseRepo.GetByID(ctx, courseID)
}

// EnrollStudentInCourse adds a student to a course. Both sides are verified
// first; a duplicate enrollment is a conflict. The pre-check catches the
// common case, the primary key on the join row catches the race.
func (s *AcademicService) EnrollStudentInCourse(ctx context.Context, courseID, studentID int64) error {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return err
	}

	enrolled, err := s.courseRepo.IsEnrolled(ctx, courseID, studentID)
	if err != nil {
		return err
	}
	if enrolled {
		return apperrors.ErrAlreadyEnrolled
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.courseRepo.AddEnrollment(ctx, tx, courseID, studentID)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("courseId", courseID).Int64("studentId", studentID).Msg("Student enrolled")
	return nil
}

// CreateProfessor creates a new professor.
func (s *AcademicService) CreateProfessor(ctx context.Context, professor *models.Professor) error {
	return s.professorRepo.Create(ctx, professor)
}

// GetProfessor retrieves a professor with owned courses and advisees loaded.
func (s *AcademicService) GetProfessor(ctx context.Context, id int64) (*models.Professor, error) {
	professor, err := s.professorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	courses, err := s.professorRepo.GetCourses(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading professor courses: %w", err)
	}
	professor.Courses = courses

	advisees, err := s.professorRepo.GetAdvisees(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading advisees: %w", err)
	}
	professor.Advisees = advisees

	return professor, nil
}

// GetAllProfessors retrieves all professors without relations.
func (s *AcademicService) GetAllProfessors(ctx context.Context) ([]*models.Professor, error) {
	return s.professorRepo.GetAll(ctx)
}

// AssignAdviseeToProfessor records an advising relationship. Both sides are
// verified first; a duplicate assignment is a conflict. Same pre-check plus
// constraint backstop as enrollment.
func (s *AcademicService) AssignAdviseeToProfessor(ctx context.Context, professorID, studentID int64) error {
	if _, err := s.professorRepo.GetByID(ctx, professorID); err != nil {
		return err
	}
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return err
	}

	advisee, err := s.professorRepo.IsAdvisee(ctx, professorID, studentID)
	if err != nil {
		return err
	}
	if advisee {
		return apperrors.ErrAlreadyAdvisee
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.professorRepo.AddAdvisee(ctx, tx, professorID, studentID)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("professorId", professorID).Int64("studentId", studentID).Msg("Advisee assigned")
	return nil
}

// CreateStudent registers a student together with their owned profile. The
// two inserts share a transaction so a half-registered student cannot exist.
func (s *AcademicService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		Name:  req.Name,
		Major: req.Major,
		GPA:   req.GPA,
	}
	profile := &models.StudentProfile{
		Email:       req.Profile.Email,
		PhoneNumber: req.Profile.PhoneNumber,
		DateOfBirth: req.Profile.DateOfBirth,
	}

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.studentRepo.CreateTx(ctx, tx, student, profile)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("studentId", student.ID).Str("name", student.Name).Msg("Student registered")
	return student, nil
}

// GetStudent retrieves a student with profile, enrolled courses and advisors.
func (s *AcademicService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile, err := s.studentRepo.GetProfile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading student profile: %w", err)
	}
	student.Profile = profile

	courses, err := s.studentRepo.GetEnrolledCourses(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading enrolled courses: %w", err)
	}
	student.EnrolledCourses = courses

	advisors, err := s.studentRepo.GetAdvisors(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading advisors: %w", err)
	}
	student.Advisors = advisors

	return student, nil
}

// GetAllStudents retrieves all students without relations.
func (s *AcademicService) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

// DeleteStudent removes a student, their owned profile and every membership
// row atomically. Courses and professors survive.
func (s *AcademicService) DeleteStudent(ctx context.Context, id int64) error {
	if _, err := s.studentRepo.GetByID(ctx, id); err != nil {
		return err
	}

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.studentRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("studentId", id).Msg("Student deleted")
	return nil
}
