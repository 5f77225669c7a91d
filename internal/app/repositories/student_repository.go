package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/okandemir/academix/internal/app/models"
	"github.com/okandemir/academix/internal/app/models/dto"
	"github.com/okandemir/academix/internal/pkg/apperrors"
	"github.com/okandemir/academix/internal/pkg/dberrors"
	"github.com/okandemir/academix/internal/pkg/logger"
)

// studentEnrollmentCountExpr counts a student's course memberships.
const studentEnrollmentCountExpr = "(SELECT COUNT(*) FROM course_enrollment e WHERE e.student_id = st.id)"

// studentSortColumns whitelists the sortable fields for student search.
var studentSortColumns = map[string]string{
	"id":    "st.id",
	"name":  "st.name",
	"major": "st.major",
	"gpa":   "st.gpa",
}

// StudentRepository handles database operations for students, their owned
// profiles and their relation join tables.
type StudentRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db Querier) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTx inserts a student and its owned profile in the given transaction.
// Either both rows land or neither does.
func (r *StudentRepository) CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student, profile *models.StudentProfile) error {
	err := tx.QueryRow(ctx,
		"INSERT INTO students (name, major, gpa) VALUES ($1, $2, $3) RETURNING id",
		student.Name, student.Major, student.GPA).Scan(&student.ID)
	if err != nil {
		logger.Error().Err(err).Str("name", student.Name).Msg("Error creating student")
		return fmt.Errorf("error creating student: %w", err)
	}

	if profile != nil {
		profile.StudentID = student.ID
		err = tx.QueryRow(ctx,
			"INSERT INTO student_profiles (student_id, email, phone_number, date_of_birth) VALUES ($1, $2, $3, $4) RETURNING id",
			profile.StudentID, profile.Email, profile.PhoneNumber, profile.DateOfBirth).Scan(&profile.ID)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "student_profiles_email_key") {
				return apperrors.ErrEmailAlreadyExists
			}
			return fmt.Errorf("error creating student profile: %w", err)
		}
		student.Profile = profile
	}

	return nil
}

// GetByID retrieves a student without relations.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	err := r.db.QueryRow(ctx,
		"SELECT id, name, major, gpa FROM students WHERE id = $1", id).
		Scan(&student.ID, &student.Name, &student.Major, &student.GPA)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &student, nil
}

// GetAll retrieves all students without relations.
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := r.sb.Select("id", "name", "major", "gpa").From("students").OrderBy("id ASC")
	return r.queryStudents(ctx, query)
}

// GetProfile retrieves a student's owned profile, or nil when none exists.
func (r *StudentRepository) GetProfile(ctx context.Context, studentID int64) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := r.db.QueryRow(ctx,
		"SELECT id, student_id, email, phone_number, date_of_birth FROM student_profiles WHERE student_id = $1",
		studentID).
		Scan(&profile.ID, &profile.StudentID, &profile.Email, &profile.PhoneNumber, &profile.DateOfBirth)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}
	return &profile, nil
}

// GetEnrolledCourses retrieves the courses a student is enrolled in.
func (r *StudentRepository) GetEnrolledCourses(ctx context.Context, studentID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.course_code", "c.title", "c.description", "c.department",
		"c.credits", "c.capacity", "c.is_active", "c.professor_id",
	).
		From("courses c").
		Join("course_enrollment e ON e.course_id = c.id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("c.course_code ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrolled courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrolled courses: %w", err)
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

// GetAdvisors retrieves the professors advising a student.
func (r *StudentRepository) GetAdvisors(ctx context.Context, studentID int64) ([]*models.Professor, error) {
	sql, args, err := r.sb.Select("p.id", "p.name", "p.department").
		From("professors p").
		Join("professor_advisee a ON a.professor_id = p.id").
		Where(squirrel.Eq{"a.student_id": studentID}).
		OrderBy("p.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build advisors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving advisors: %w", err)
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
	return professors, rows.Err()
}

// buildStudentSearchPredicates turns the sparse criteria into an ordered
// predicate list, mirroring the course search builder.
func buildStudentSearchPredicates(criteria dto.StudentSearchCriteria) []squirrel.Sqlizer {
	var predicates []squirrel.Sqlizer

	if criteria.Major != nil && *criteria.Major != "" {
		predicates = append(predicates, squirrel.Eq{"st.major": *criteria.Major})
	}
	if criteria.MinGPA != nil {
		predicates = append(predicates, squirrel.GtOrEq{"st.gpa": *criteria.MinGPA})
	}
	if criteria.CourseEnrolled != nil && *criteria.CourseEnrolled != "" {
		predicates = append(predicates, squirrel.Expr(
			"EXISTS (SELECT 1 FROM course_enrollment e JOIN courses c ON c.id = e.course_id WHERE e.student_id = st.id AND c.course_code = ?)",
			*criteria.CourseEnrolled))
	}
	if criteria.AdvisorName != nil && *criteria.AdvisorName != "" {
		predicates = append(predicates, squirrel.Expr(
			"EXISTS (SELECT 1 FROM professor_advisee a JOIN professors p ON p.id = a.professor_id WHERE a.student_id = st.id AND p.name = ?)",
			*criteria.AdvisorName))
	}

	return predicates
}

// StudentSearchRow pairs a student (profile attached when present) with its
// derived enrollment count.
type StudentSearchRow struct {
	Student       *models.Student
	EnrolledCount int
}

// Search returns the filtered, sorted page of students plus the total match
// count. The profile email is flattened in via a left join and the enrollment
// count is computed per row.
func (r *StudentRepository) Search(ctx context.Context, criteria dto.StudentSearchCriteria, page dto.PageRequest) ([]StudentSearchRow, int64, error) {
	predicates := buildStudentSearchPredicates(criteria)

	orderBy, err := resolveSortClause(studentSortColumns, criteria.SortBy, criteria.SortDirection, "st.id")
	if err != nil {
		return nil, 0, err
	}

	dataQuery := r.sb.Select(
		"st.id", "st.name", "st.major", "st.gpa",
		"sp.email",
		studentEnrollmentCountExpr+" AS enrolled_count",
	).
		From("students st").
		LeftJoin("student_profiles sp ON sp.student_id = st.id")

	countQuery := r.sb.Select("COUNT(*)").From("students st")

	for _, predicate := range predicates {
		dataQuery = dataQuery.Where(predicate)
		countQuery = countQuery.Where(predicate)
	}

	dataQuery = dataQuery.
		OrderBy(orderBy, "st.id ASC").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset()))

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build student count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing student count query")
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	dataSQL, dataArgs, err := dataQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build student search query: %w", err)
	}

	rows, err := r.db.Query(ctx, dataSQL, dataArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing student search query")
		return nil, 0, fmt.Errorf("error searching students: %w", err)
	}
	defer rows.Close()

	var results []StudentSearchRow
	for rows.Next() {
		var student models.Student
		var email *string
		var enrolledCount int

		err := rows.Scan(&student.ID, &student.Name, &student.Major, &student.GPA, &email, &enrolledCount)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		if email != nil {
			student.Profile = &models.StudentProfile{StudentID: student.ID, Email: *email}
		}
		results = append(results, StudentSearchRow{Student: &student, EnrolledCount: enrolledCount})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// FindByMajor retrieves all students in a major.
func (r *StudentRepository) FindByMajor(ctx context.Context, major string) ([]*models.Student, error) {
	query := r.sb.Select("id", "name", "major", "gpa").
		From("students").
		Where(squirrel.Eq{"major": major}).
		OrderBy("id ASC")
	return r.queryStudents(ctx, query)
}

// FindByMajorIn retrieves students whose major is any of the given values.
func (r *StudentRepository) FindByMajorIn(ctx context.Context, majors []string) ([]*models.Student, error) {
	query := r.sb.Select("id", "name", "major", "gpa").
		From("students").
		Where(squirrel.Eq{"major": majors}).
		OrderBy("id ASC")
	return r.queryStudents(ctx, query)
}

// FindByGpaGreaterThan retrieves students strictly above a GPA threshold.
// Students without a GPA never match.
func (r *StudentRepository) FindByGpaGreaterThan(ctx context.Context, gpa float64) ([]*models.Student, error) {
	query := r.sb.Select("id", "name", "major", "gpa").
		From("students").
		Where(squirrel.Gt{"gpa": gpa}).
		OrderBy("id ASC")
	return r.queryStudents(ctx, query)
}

// FindByMajorAndMinGpa retrieves students in a major at or above a GPA floor.
func (r *StudentRepository) FindByMajorAndMinGpa(ctx context.Context, major string, minGPA float64) ([]*models.Student, error) {
	query := r.sb.Select("id", "name", "major", "gpa").
		From("students").
		Where(squirrel.Eq{"major": major}).
		Where(squirrel.GtOrEq{"gpa": minGPA}).
		OrderBy("id ASC")
	return r.queryStudents(ctx, query)
}

// FindByMajorOrderByGpaDesc retrieves a major's students ranked by GPA.
// Students with no GPA sort last.
func (r *StudentRepository) FindByMajorOrderByGpaDesc(ctx context.Context, major string) ([]*models.Student, error) {
	query := r.sb.Select("id", "name", "major", "gpa").
		From("students").
		Where(squirrel.Eq{"major": major}).
		OrderBy("gpa DESC NULLS LAST", "id ASC")
	return r.queryStudents(ctx, query)
}

// FindByNameContaining retrieves students by case-insensitive name fragment.
func (r *StudentRepository) FindByNameContaining(ctx context.Context, name string) ([]*models.Student, error) {
	query := r.sb.Select("id", "name", "major", "gpa").
		From("students").
		Where(squirrel.ILike{"name": "%" + name + "%"}).
		OrderBy("id ASC")
	return r.queryStudents(ctx, query)
}

// FindTopByGpa retrieves the top N students by GPA descending. Students with
// no GPA sort last; ties break on id ascending.
func (r *StudentRepository) FindTopByGpa(ctx context.Context, limit int) ([]*models.Student, error) {
	query := r.sb.Select("id", "name", "major", "gpa").
		From("students").
		OrderBy("gpa DESC NULLS LAST", "id ASC").
		Limit(uint64(limit))
	return r.queryStudents(ctx, query)
}

// FindWithMinEnrollments retrieves students enrolled in at least the given
// number of courses.
func (r *StudentRepository) FindWithMinEnrollments(ctx context.Context, minEnrollments int) ([]*models.Student, error) {
	query := r.sb.Select("st.id", "st.name", "st.major", "st.gpa").
		From("students st").
		Where(squirrel.Expr(studentEnrollmentCountExpr+" >= ?", minEnrollments)).
		OrderBy("st.id ASC")
	return r.queryStudents(ctx, query)
}

// Update persists the student's own columns. Relations are managed through
// the join-table operations.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE students SET name = $1, major = $2, gpa = $3 WHERE id = $4",
		student.Name, student.Major, student.GPA, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student and dissolves its memberships inside the caller's
// transaction. The owned profile goes with it via ON DELETE CASCADE.
func (r *StudentRepository) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, err := tx.Exec(ctx, "DELETE FROM course_enrollment WHERE student_id = $1", id); err != nil {
		return fmt.Errorf("error deleting student enrollments: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM professor_advisee WHERE student_id = $1", id); err != nil {
		return fmt.Errorf("error deleting advising relations: %w", err)
	}

	tag, err := tx.Exec(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// queryStudents executes a plain student projection query and scans the rows.
func (r *StudentRepository) queryStudents(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Student, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing student query")
		return nil, fmt.Errorf("error retrieving students: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
