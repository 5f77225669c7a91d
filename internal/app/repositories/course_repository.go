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

// courseColumns is the plain course projection used by the simple finders.
var courseColumns = []string{
	"id", "course_code", "title", "description", "department",
	"credits", "capacity", "is_active", "professor_id",
}

// CourseRepository handles database operations for courses and the
// course_enrollment join table.
type CourseRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db Querier) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new course and assigns its identity.
// The professor relation is attached separately after identity assignment.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("course_code", "title", "description", "department", "credits", "capacity", "is_active").
		Values(course.CourseCode, course.Title, course.Description, course.Department,
			course.Credits, course.Capacity, course.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		logger.Error().Err(err).Str("courseCode", course.CourseCode).Msg("Error creating course")
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course with its professor summary and derived
// enrollment aggregates.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.course_code", "c.title", "c.description", "c.department",
		"c.credits", "c.capacity", "c.is_active", "c.professor_id",
		"p.name",
		enrollmentCountExpr+" AS enrollment_count",
		averageGradeExpr+" AS average_grade",
	).
		From("courses c").
		LeftJoin("professors p ON p.id = c.professor_id").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourseSearchRow(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}

	// Fill in the professor's department, which the wide projection omits.
	if course.Professor != nil {
		var department string
		err = r.db.QueryRow(ctx, "SELECT department FROM professors WHERE id = $1", course.Professor.ID).Scan(&department)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("error loading professor department: %w", err)
			}
		} else {
			course.Professor.Department = department
		}
	}

	return course, nil
}

// GetAll retrieves all courses without relations or derived fields.
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	query := r.sb.Select(courseColumns...).From("courses").OrderBy("course_code ASC", "id ASC")
	return r.queryCourses(ctx, query)
}

// FindByDepartment retrieves all courses in a department.
func (r *CourseRepository) FindByDepartment(ctx context.Context, department string) ([]*models.Course, error) {
	query := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"department": department}).
		OrderBy("course_code ASC", "id ASC")
	return r.queryCourses(ctx, query)
}

// FindByCodeContaining retrieves courses whose code contains the given
// fragment, case-insensitive.
func (r *CourseRepository) FindByCodeContaining(ctx context.Context, code string) ([]*models.Course, error) {
	query := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.ILike{"course_code": "%" + code + "%"}).
		OrderBy("course_code ASC", "id ASC")
	return r.queryCourses(ctx, query)
}

// FindByTitleContaining retrieves courses whose title contains the given
// fragment, case-insensitive.
func (r *CourseRepository) FindByTitleContaining(ctx context.Context, title string) ([]*models.Course, error) {
	query := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.ILike{"title": "%" + title + "%"}).
		OrderBy("course_code ASC", "id ASC")
	return r.queryCourses(ctx, query)
}

// FindByDepartmentAndMinCredits retrieves courses in a department worth at
// least the given credits.
func (r *CourseRepository) FindByDepartmentAndMinCredits(ctx context.Context, department string, minCredits int) ([]*models.Course, error) {
	query := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"department": department}).
		Where(squirrel.GtOrEq{"credits": minCredits}).
		OrderBy("course_code ASC", "id ASC")
	return r.queryCourses(ctx, query)
}

// FindByProfessorDepartment retrieves courses whose owning professor belongs
// to the given department.
func (r *CourseRepository) FindByProfessorDepartment(ctx context.Context, department string) ([]*models.Course, error) {
	query := r.sb.Select(
		"c.id", "c.course_code", "c.title", "c.description", "c.department",
		"c.credits", "c.capacity", "c.is_active", "c.professor_id",
	).
		From("courses c").
		Join("professors p ON p.id = c.professor_id").
		Where(squirrel.Eq{"p.department": department}).
		OrderBy("c.course_code ASC", "c.id ASC")
	return r.queryCourses(ctx, query)
}

// DepartmentCourseCount is a per-department course tally.
type DepartmentCourseCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// CountByDepartment groups courses by department and counts them.
func (r *CourseRepository) CountByDepartment(ctx context.Context) ([]DepartmentCourseCount, error) {
	sql, args, err := r.sb.Select("department", "COUNT(*)").
		From("courses").
		GroupBy("department").
		OrderBy("department ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build department count query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error counting courses by department: %w", err)
	}
	defer rows.Close()

	var counts []DepartmentCourseCount
	for rows.Next() {
		var c DepartmentCourseCount
		if err := rows.Scan(&c.Department, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning department count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// FindWithMinEnrollment retrieves courses with at least the given number of
// enrolled students, computed as set-based aggregation over the join table.
func (r *CourseRepository) FindWithMinEnrollment(ctx context.Context, minEnrollment int) ([]*models.Course, error) {
	query := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Expr(
			"(SELECT COUNT(*) FROM course_enrollment e WHERE e.course_id = courses.id) >= ?", minEnrollment)).
		OrderBy("course_code ASC", "id ASC")
	return r.queryCourses(ctx, query)
}

// FindPopular retrieves courses above both a credit and an enrollment
// threshold, ordered by enrollment count descending with id tie-break.
func (r *CourseRepository) FindPopular(ctx context.Context, minCredits, minStudents int) ([]*models.Course, error) {
	query := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Gt{"credits": minCredits}).
		Where(squirrel.Expr(
			"(SELECT COUNT(*) FROM course_enrollment e WHERE e.course_id = courses.id) >= ?", minStudents)).
		OrderBy("(SELECT COUNT(*) FROM course_enrollment e WHERE e.course_id = courses.id) DESC", "id ASC")
	return r.queryCourses(ctx, query)
}

// FindWithHighAchievingStudents retrieves courses whose enrolled students
// average at least the given GPA.
func (r *CourseRepository) FindWithHighAchievingStudents(ctx context.Context, minGPA float64) ([]*models.Course, error) {
	query := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Expr(
			"(SELECT AVG(s.gpa)::float8 FROM course_enrollment e JOIN students s ON s.id = e.student_id WHERE e.course_id = courses.id) >= ?",
			minGPA)).
		OrderBy("course_code ASC", "id ASC")
	return r.queryCourses(ctx, query)
}

// Update persists the full course row. Merge semantics live in the service
// layer; by the time the row reaches here every column carries its final value.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("course_code", course.CourseCode).
		Set("title", course.Title).
		Set("description", course.Description).
		Set("department", course.Department).
		Set("credits", course.Credits).
		Set("capacity", course.Capacity).
		Set("is_active", course.IsActive).
		Set("professor_id", course.ProfessorID).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseId", course.ID).Msg("Error updating course")
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// UpdateCredits changes the credit value of a course identified by its code.
// Returns the number of affected rows.
func (r *CourseRepository) UpdateCredits(ctx context.Context, courseCode string, credits int) (int64, error) {
	sql, args, err := r.sb.Update("courses").
		Set("credits", credits).
		Where(squirrel.Eq{"course_code": courseCode}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build update credits query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error updating course credits: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SetProfessor attaches or detaches the owning professor of a course.
func (r *CourseRepository) SetProfessor(ctx context.Context, courseID int64, professorID *int64) error {
	tag, err := r.db.Exec(ctx, "UPDATE courses SET professor_id = $1 WHERE id = $2", professorID, courseID)
	if err != nil {
		return fmt.Errorf("error setting course professor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course and dissolves its enrollment join rows inside the
// caller's transaction, so no dangling membership can survive.
func (r *CourseRepository) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, err := tx.Exec(ctx, "DELETE FROM course_enrollment WHERE course_id = $1", id); err != nil {
		return fmt.Errorf("error deleting course enrollments: %w", err)
	}

	tag, err := tx.Exec(ctx, "DELETE FROM courses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// IsEnrolled reports whether the student already holds a join row for the course.
func (r *CourseRepository) IsEnrolled(ctx context.Context, courseID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM course_enrollment WHERE course_id = $1 AND student_id = $2)",
		courseID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return exists, nil
}

// AddEnrollment inserts the enrollment join row. A concurrent duplicate
// insert loses at the composite primary key and surfaces as a conflict.
func (r *CourseRepository) AddEnrollment(ctx context.Context, tx pgx.Tx, courseID, studentID int64) error {
	_, err := tx.Exec(ctx,
		"INSERT INTO course_enrollment (course_id, student_id) VALUES ($1, $2)",
		courseID, studentID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "course_enrollment_pkey") {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error enrolling student: %w", err)
	}
	return nil
}

// GetEnrolledStudents retrieves the students enrolled in a course.
func (r *CourseRepository) GetEnrolledStudents(ctx context.Context, courseID int64) ([]*models.Student, error) {
	sql, args, err := r.sb.Select("s.id", "s.name", "s.major", "s.gpa").
		From("students s").
		Join("course_enrollment e ON e.student_id = s.id").
		Where(squirrel.Eq{"e.course_id": courseID}).
		OrderBy("s.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrolled students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrolled students: %w", err)
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

// queryCourses executes a plain course projection query and scans the rows.
func (r *CourseRepository) queryCourses(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing course query")
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		err := rows.Scan(
			&course.ID,
			&course.CourseCode,
			&course.Title,
			&course.Description,
			&course.Department,
			&course.Credits,
			&course.Capacity,
			&course.IsActive,
			&course.ProfessorID,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, &course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
