package repositories

import (
	"errors"
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"

	"github.com/okandemir/academix/internal/app/models/dto"
	"github.com/okandemir/academix/internal/pkg/apperrors"
)

func strPtr(s string) *string       { return &s }
func intPtr(i int) *int             { return &i }
func boolPtr(b bool) *bool          { return &b }
func floatPtr(f float64) *float64   { return &f }
func renderPredicates(preds []squirrel.Sqlizer) (string, []interface{}, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("c.id").From("courses c")
	for _, p := range preds {
		query = query.Where(p)
	}
	return query.ToSql()
}

func TestBuildCourseSearchPredicatesEmpty(t *testing.T) {
	preds := buildCourseSearchPredicates(dto.CourseSearchCriteria{})
	if len(preds) != 0 {
		t.Fatalf("expected no predicates for empty criteria, got %d", len(preds))
	}
}

func TestBuildCourseSearchPredicatesAllFilters(t *testing.T) {
	criteria := dto.CourseSearchCriteria{
		CourseCode:        strPtr("CS"),
		Title:             strPtr("intro"),
		Department:        strPtr("Computer Science"),
		MinCredits:        intPtr(3),
		MinEnrollment:     intPtr(5),
		HasAvailableSeats: boolPtr(true),
		MinAverageGrade:   floatPtr(3.0),
		IsActive:          boolPtr(true),
	}

	preds := buildCourseSearchPredicates(criteria)
	if len(preds) != 8 {
		t.Fatalf("expected 8 predicates, got %d", len(preds))
	}

	sql, args, err := renderPredicates(preds)
	if err != nil {
		t.Fatalf("unexpected error rendering predicates: %v", err)
	}

	for _, fragment := range []string{
		"c.course_code ILIKE",
		"c.title ILIKE",
		"c.department =",
		"c.credits >=",
		"(SELECT COUNT(*) FROM course_enrollment e WHERE e.course_id = c.id) >=",
		"< c.capacity",
		"AVG(s.gpa)",
		"c.is_active =",
	} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("generated SQL missing %q:\n%s", fragment, sql)
		}
	}

	if args[0] != "%CS%" || args[1] != "%intro%" {
		t.Errorf("fragment filters should be wrapped in wildcards, got %v", args[:2])
	}
}

func TestBuildCourseSearchPredicatesIgnoresEmptyStrings(t *testing.T) {
	criteria := dto.CourseSearchCriteria{
		CourseCode: strPtr(""),
		Title:      strPtr(""),
		Department: strPtr(""),
	}
	preds := buildCourseSearchPredicates(criteria)
	if len(preds) != 0 {
		t.Fatalf("empty string filters must impose no constraint, got %d predicates", len(preds))
	}
}

func TestBuildCourseSearchPredicatesNoSeats(t *testing.T) {
	preds := buildCourseSearchPredicates(dto.CourseSearchCriteria{HasAvailableSeats: boolPtr(false)})
	sql, _, err := renderPredicates(preds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sql, ">= c.capacity") {
		t.Errorf("hasAvailableSeats=false should match full courses, got:\n%s", sql)
	}
}

func TestBuildCourseSearchPredicatesMinAverageGradeExcludesUnenrolled(t *testing.T) {
	preds := buildCourseSearchPredicates(dto.CourseSearchCriteria{MinAverageGrade: floatPtr(0)})
	sql, args, err := renderPredicates(preds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A course with no enrolled students has a NULL average, which must not
	// satisfy any threshold, zero included.
	if strings.Contains(sql, "COALESCE") {
		t.Errorf("NULL averages must not be coalesced into matching:\n%s", sql)
	}
	if !strings.Contains(sql, "AVG(s.gpa)::float8 FROM course_enrollment e JOIN students s ON s.id = e.student_id WHERE e.course_id = c.id) >= ") {
		t.Errorf("expected bare average threshold comparison, got:\n%s", sql)
	}
	if args[len(args)-1] != 0.0 {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildCourseSearchPredicatesDeterministicOrder(t *testing.T) {
	criteria := dto.CourseSearchCriteria{
		Department: strPtr("Math"),
		MinCredits: intPtr(2),
		IsActive:   boolPtr(true),
	}

	first, _, err := renderPredicates(buildCourseSearchPredicates(criteria))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, _, err := renderPredicates(buildCourseSearchPredicates(criteria))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("same criteria produced different SQL:\n%s\nvs\n%s", first, again)
		}
	}
}

func TestResolveSortClause(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		direction string
		want      string
		wantErr   bool
	}{
		{"default column", "", "", "c.course_code ASC", false},
		{"mapped field", "courseCode", "", "c.course_code ASC", false},
		{"derived field", "enrollmentCount", "desc", "enrollment_count DESC", false},
		{"explicit asc", "credits", "asc", "c.credits ASC", false},
		{"uppercase direction", "title", "DESC", "c.title DESC", false},
		{"unknown field", "gpa", "", "", true},
		{"injection attempt", "id; DROP TABLE courses", "", "", true},
		{"bad direction", "id", "sideways", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSortClause(courseSortColumns, tt.field, tt.direction, "c.course_code")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for field %q direction %q", tt.field, tt.direction)
				}
				if !errors.Is(err, apperrors.ErrInvalidSortField) {
					t.Errorf("expected ErrInvalidSortField, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildStudentSearchPredicates(t *testing.T) {
	criteria := dto.StudentSearchCriteria{
		Major:          strPtr("Computer Science"),
		MinGPA:         floatPtr(3.5),
		CourseEnrolled: strPtr("CS101"),
		AdvisorName:    strPtr("Nguyen"),
	}

	preds := buildStudentSearchPredicates(criteria)
	if len(preds) != 4 {
		t.Fatalf("expected 4 predicates, got %d", len(preds))
	}

	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("st.id").From("students st")
	for _, p := range preds {
		query = query.Where(p)
	}
	sql, args, err := query.ToSql()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, fragment := range []string{
		"st.major =",
		"st.gpa >=",
		"EXISTS (SELECT 1 FROM course_enrollment e JOIN courses c ON c.id = e.course_id",
		"c.course_code = ",
		"EXISTS (SELECT 1 FROM professor_advisee a JOIN professors p ON p.id = a.professor_id",
		"p.name = ",
	} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("generated SQL missing %q:\n%s", fragment, sql)
		}
	}

	last := args[len(args)-1]
	if last != "Nguyen" {
		t.Errorf("advisor name must match exactly, got %v", last)
	}
}

func TestStudentSortWhitelistRejectsRelationFields(t *testing.T) {
	_, err := resolveSortClause(studentSortColumns, "advisorName", "asc", "st.id")
	if !errors.Is(err, apperrors.ErrInvalidSortField) {
		t.Fatalf("relation fields must not be sortable, got %v", err)
	}
}
