package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/okandemir/academix/internal/app/models"
	"github.com/okandemir/academix/internal/pkg/apperrors"
	"github.com/okandemir/academix/internal/pkg/dberrors"
	"github.com/okandemir/academix/internal/pkg/logger"
)

// ProfessorRepository handles database operations for professors and the
// professor_advisee join table.
type ProfessorRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewProfessorRepository creates a new ProfessorRepository
func NewProfessorRepository(db Querier) *ProfessorRepository {
	return &ProfessorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new professor and assigns its identity.
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	err := r.db.QueryRow(ctx,
		"INSERT INTO professors (name, department) VALUES ($1, $2) RETURNING id",
		professor.Name, professor.Department).Scan(&professor.ID)
	if err != nil {
		logger.Error().Err(err).Str("name", professor.Name).Msg("Error creating professor")
		return fmt.Errorf("error creating professor: %w", err)
	}
	return nil
}

// GetByID retrieves a professor without relations.
func (r *ProfessorRepository) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	var professor models.Professor
	err := r.db.QueryRow(ctx,
		"SELECT id, name, department FROM professors WHERE id = $1", id).
		Scan(&professor.ID, &professor.Name, &professor.Department)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfessorNotFound
		}
		return nil, fmt.Errorf("error retrieving professor: %w", err)
	}
	return &professor, nil
}

// GetAll retrieves all professors.
func (r *ProfessorRepository) GetAll(ctx context.Context) ([]*models.Professor, error) {
	query := r.sb.Select("id", "name", "department").From("professors").OrderBy("id ASC")
	return r.queryProfessors(ctx, query)
}

// FindByDepartment retrieves professors in a department.
func (r *ProfessorRepository) FindByDepartment(ctx context.Context, department string) ([]*models.Professor, error) {
	query := r.sb.Select("id", "name", "department").
		From("professors").
		Where(squirrel.Eq{"department": department}).
		OrderBy("id ASC")
	return r.queryProfessors(ctx, query)
}

// GetCourses retrieves the courses owned by a professor.
func (r *ProfessorRepository) GetCourses(ctx context.Context, professorID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(
		"id", "course_code", "title", "description", "department",
		"credits", "capacity", "is_active", "professor_id",
	).
		From("courses").
		Where(squirrel.Eq{"professor_id": professorID}).
		OrderBy("course_code ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build professor courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving professor courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		err := rows.Scan(
			&course.ID, &course.CourseCode, &course.Title, &course.Description,
			&course.Department, &course.Credits, &course.Capacity,
			&course.IsActive, &course.ProfessorID,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, &course)
	}
	return courses, rows.Err()
}

// IsAdvisee reports whether the advising join row already exists.
func (r *ProfessorRepository) IsAdvisee(ctx context.Context, professorID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM professor_advisee WHERE professor_id = $1 AND student_id = $2)",
		professorID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking advising relation: %w", err)
	}
	return exists, nil
}

// AddAdvisee inserts the advising join row. A concurrent duplicate insert
// loses at the composite primary key and surfaces as a conflict.
func (r *ProfessorRepository) AddAdvisee(ctx context.Context, tx pgx.Tx, professorID, studentID int64) error {
	_, err := tx.Exec(ctx,
		"INSERT INTO professor_advisee (professor_id, student_id) VALUES ($1, $2)",
		professorID, studentID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "professor_advisee_pkey") {
			return apperrors.ErrAlreadyAdvisee
		}
		return fmt.Errorf("error adding advisee: %w", err)
	}
	return nil
}

// GetAdvisees retrieves the students advised by a professor.
func (r *ProfessorRepository) GetAdvisees(ctx context.Context, professorID int64) ([]*models.Student, error) {
	sql, args, err := r.sb.Select("s.id", "s.name", "s.major", "s.gpa").
		From("students s").
		Join("professor_advisee a ON a.student_id = s.id").
		Where(squirrel.Eq{"a.professor_id": professorID}).
		OrderBy("s.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build advisees query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving advisees: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.Major, &student.GPA); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, &student)
	}
	return students, rows.Err()
}

func (r *ProfessorRepository) queryProfessors(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Professor, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build professor query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing professor query")
		return nil, fmt.Errorf("error retrieving professors: %w", err)
	}
	defer rows.Close()

	var professors []*models.Professor
	for rows.Next() {
		var professor models.Professor
		if err := rows.Scan(&professor.ID, &professor.Name, &professor.Department); err != nil {
			return nil, fmt.Errorf("error scanning professor row: %w", err)
		}
		professors = append(professors, &professor)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return professors, nil
}
