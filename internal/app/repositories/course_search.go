package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/okandemir/academix/internal/app/models"
	"github.com/okandemir/academix/internal/app/models/dto"
	"github.com/okandemir/academix/internal/pkg/apperrors"
	"github.com/okandemir/academix/internal/pkg/logger"
)

// Derived-field expressions over the enrollment join. Written as scalar
// subqueries so the same expression works in both SELECT and WHERE.
const (
	enrollmentCountExpr = "(SELECT COUNT(*) FROM course_enrollment e WHERE e.course_id = c.id)"
	averageGradeExpr    = "(SELECT AVG(s.gpa)::float8 FROM course_enrollment e JOIN students s ON s.id = e.student_id WHERE e.course_id = c.id)"
)

// courseSortColumns whitelists the sortable fields for course search.
// An unknown field is a caller error, rejected before any query runs.
var courseSortColumns = map[string]string{
	"id":              "c.id",
	"courseCode":      "c.course_code",
	"title":           "c.title",
	"department":      "c.department",
	"credits":         "c.credits",
	"enrollmentCount": "enrollment_count",
}

// buildCourseSearchPredicates turns the sparse criteria into an ordered
// predicate list. The evaluation order is fixed so generated SQL is stable
// for identical criteria. Absent filters contribute nothing.
func buildCourseSearchPredicates(criteria dto.CourseSearchCriteria) []squirrel.Sqlizer {
	var predicates []squirrel.Sqlizer

	if criteria.CourseCode != nil && *criteria.CourseCode != "" {
		predicates = append(predicates, squirrel.ILike{"c.course_code": "%" + *criteria.CourseCode + "%"})
	}
	if criteria.Title != nil && *criteria.Title != "" {
		predicates = append(predicates, squirrel.ILike{"c.title": "%" + *criteria.Title + "%"})
	}
	if criteria.Department != nil && *criteria.Department != "" {
		predicates = append(predicates, squirrel.Eq{"c.department": *criteria.Department})
	}
	if criteria.MinCredits != nil {
		predicates = append(predicates, squirrel.GtOrEq{"c.credits": *criteria.MinCredits})
	}
	if criteria.MinEnrollment != nil {
		predicates = append(predicates, squirrel.Expr(enrollmentCountExpr+" >= ?", *criteria.MinEnrollment))
	}
	if criteria.HasAvailableSeats != nil {
		if *criteria.HasAvailableSeats {
			predicates = append(predicates, squirrel.Expr(enrollmentCountExpr+" < c.capacity"))
		} else {
			predicates = append(predicates, squirrel.Expr(enrollmentCountExpr+" >= c.capacity"))
		}
	}
	// A NULL average (no enrolled students) never satisfies the threshold.
	if criteria.MinAverageGrade != nil {
		predicates = append(predicates, squirrel.Expr(averageGradeExpr+" >= ?", *criteria.MinAverageGrade))
	}
	if criteria.IsActive != nil {
		predicates = append(predicates, squirrel.Eq{"c.is_active": *criteria.IsActive})
	}

	return predicates
}

// resolveSortClause validates a sort request against a column whitelist and
// returns the ORDER BY expression. Empty field falls back to defaultColumn.
func resolveSortClause(whitelist map[string]string, field, direction, defaultColumn string) (string, error) {
	column := defaultColumn
	if field != "" {
		mapped, ok := whitelist[field]
		if !ok {
			return "", apperrors.NewCustomError(apperrors.ErrInvalidSortField,
				fmt.Sprintf("unknown sort field %q", field))
		}
		column = mapped
	}

	dir := "ASC"
	switch strings.ToUpper(direction) {
	case "", "ASC":
	case "DESC":
		dir = "DESC"
	default:
		return "", apperrors.NewCustomError(apperrors.ErrInvalidSortField,
			fmt.Sprintf("invalid sort direction %q", direction))
	}

	return column + " " + dir, nil
}

// Search returns the filtered, sorted page of courses plus the total match
// count. Data and count queries are built from the same predicate slice so
// the two can never disagree on what matches.
func (r *CourseRepository) Search(ctx context.Context, criteria dto.CourseSearchCriteria, page dto.PageRequest) ([]*models.Course, int64, error) {
	predicates := buildCourseSearchPredicates(criteria)

	orderBy, err := resolveSortClause(courseSortColumns, criteria.SortBy, criteria.SortDirection, "c.course_code")
	if err != nil {
		return nil, 0, err
	}

	dataQuery := r.sb.Select(
		"c.id", "c.course_code", "c.title", "c.description", "c.department",
		"c.credits", "c.capacity", "c.is_active", "c.professor_id",
		"p.name",
		enrollmentCountExpr+" AS enrollment_count",
		averageGradeExpr+" AS average_grade",
	).
		From("courses c").
		LeftJoin("professors p ON p.id = c.professor_id")

	countQuery := r.sb.Select("COUNT(*)").From("courses c")

	for _, predicate := range predicates {
		dataQuery = dataQuery.Where(predicate)
		countQuery = countQuery.Where(predicate)
	}

	// Secondary id sort keeps ordering stable across pages when rows share
	// the primary sort key.
	dataQuery = dataQuery.
		OrderBy(orderBy, "c.id ASC").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset()))

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build course count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing course count query")
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	dataSQL, dataArgs, err := dataQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build course search query: %w", err)
	}

	rows, err := r.db.Query(ctx, dataSQL, dataArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing course search query")
		return nil, 0, fmt.Errorf("error searching courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourseSearchRow(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// FindTopPopular returns the top N courses by enrollment count, descending.
// Courses tied on enrollment are ordered by id ascending.
func (r *CourseRepository) FindTopPopular(ctx context.Context, limit int) ([]*models.Course, error) {
	query := r.sb.Select(
		"c.id", "c.course_code", "c.title", "c.description", "c.department",
		"c.credits", "c.capacity", "c.is_active", "c.professor_id",
		"p.name",
		enrollmentCountExpr+" AS enrollment_count",
		averageGradeExpr+" AS average_grade",
	).
		From("courses c").
		LeftJoin("professors p ON p.id = c.professor_id").
		OrderBy("enrollment_count DESC", "c.id ASC").
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build top popular courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing top popular courses query")
		return nil, fmt.Errorf("error retrieving popular courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourseSearchRow(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// scanCourseSearchRow scans the wide search projection: course columns, the
// flattened professor name and both derived aggregates.
func scanCourseSearchRow(row pgxRow) (*models.Course, error) {
	var course models.Course
	var professorName *string

	err := row.Scan(
		&course.ID,
		&course.CourseCode,
		&course.Title,
		&course.Description,
		&course.Department,
		&course.Credits,
		&course.Capacity,
		&course.IsActive,
		&course.ProfessorID,
		&professorName,
		&course.EnrollmentCount,
		&course.AverageGrade,
	)
	if err != nil {
		return nil, fmt.Errorf("error scanning course row: %w", err)
	}

	if course.ProfessorID != nil && professorName != nil {
		course.Professor = &models.Professor{
			ID:   *course.ProfessorID,
			Name: *professorName,
		}
	}

	return &course, nil
}

// pgxRow is the common scan interface of pgx.Row and pgx.Rows.
type pgxRow interface {
	Scan(dest ...any) error
}
