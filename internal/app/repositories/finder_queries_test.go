package repositories

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/okandemir/academix/internal/pkg/apperrors"
)

// fakeQuerier records every statement handed to the pool so tests can assert
// the SQL the finders generate without a database.
type fakeQuerier struct {
	queries []queryCall
	execs   []queryCall
	rowScan func(sql string, dest ...any) error
	execTag pgconn.CommandTag
}

type queryCall struct {
	sql  string
	args []any
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, queryCall{sql: sql, args: args})
	return emptyRows{}, nil
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, queryCall{sql: sql, args: args})
	return fakeRow{sql: sql, scan: f.rowScan}
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, queryCall{sql: sql, args: args})
	return f.execTag, nil
}

type fakeRow struct {
	sql  string
	scan func(sql string, dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.scan == nil {
		return nil
	}
	return r.scan(r.sql, dest...)
}

// emptyRows is a result set with no rows.
type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(dest ...any) error                       { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

func lastCall(t *testing.T, calls []queryCall) queryCall {
	t.Helper()
	if len(calls) == 0 {
		t.Fatal("no statement reached the database")
	}
	return calls[len(calls)-1]
}

func assertFragments(t *testing.T, sql string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(sql, fragment) {
			t.Errorf("generated SQL missing %q:\n%s", fragment, sql)
		}
	}
}

func TestCourseFinderQueries(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		run       func(r *CourseRepository) error
		fragments []string
		args      []any
	}{
		{
			name: "FindByCodeContaining",
			run: func(r *CourseRepository) error {
				_, err := r.FindByCodeContaining(ctx, "cs")
				return err
			},
			fragments: []string{"FROM courses", "course_code ILIKE", "ORDER BY course_code ASC, id ASC"},
			args:      []any{"%cs%"},
		},
		{
			name: "FindByTitleContaining",
			run: func(r *CourseRepository) error {
				_, err := r.FindByTitleContaining(ctx, "intro")
				return err
			},
			fragments: []string{"title ILIKE"},
			args:      []any{"%intro%"},
		},
		{
			name: "FindByDepartmentAndMinCredits",
			run: func(r *CourseRepository) error {
				_, err := r.FindByDepartmentAndMinCredits(ctx, "Computer Science", 3)
				return err
			},
			fragments: []string{"department =", "credits >="},
			args:      []any{"Computer Science", 3},
		},
		{
			name: "FindByProfessorDepartment",
			run: func(r *CourseRepository) error {
				_, err := r.FindByProfessorDepartment(ctx, "Math")
				return err
			},
			fragments: []string{"JOIN professors p ON p.id = c.professor_id", "p.department ="},
			args:      []any{"Math"},
		},
		{
			name: "FindWithMinEnrollment",
			run: func(r *CourseRepository) error {
				_, err := r.FindWithMinEnrollment(ctx, 5)
				return err
			},
			fragments: []string{"(SELECT COUNT(*) FROM course_enrollment e WHERE e.course_id = courses.id) >="},
			args:      []any{5},
		},
		{
			name: "FindPopular",
			run: func(r *CourseRepository) error {
				_, err := r.FindPopular(ctx, 2, 10)
				return err
			},
			fragments: []string{
				"credits >",
				"(SELECT COUNT(*) FROM course_enrollment e WHERE e.course_id = courses.id) >=",
				"ORDER BY (SELECT COUNT(*) FROM course_enrollment e WHERE e.course_id = courses.id) DESC, id ASC",
			},
			args: []any{2, 10},
		},
		{
			name: "FindWithHighAchievingStudents",
			run: func(r *CourseRepository) error {
				_, err := r.FindWithHighAchievingStudents(ctx, 3.5)
				return err
			},
			fragments: []string{"AVG(s.gpa)::float8", ">="},
			args:      []any{3.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeQuerier{}
			r := NewCourseRepository(fake)

			if err := tt.run(r); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			call := lastCall(t, fake.queries)
			assertFragments(t, call.sql, tt.fragments...)

			if len(call.args) != len(tt.args) {
				t.Fatalf("got %d args %v, want %d %v", len(call.args), call.args, len(tt.args), tt.args)
			}
			for i := range tt.args {
				if call.args[i] != tt.args[i] {
					t.Errorf("arg %d = %v, want %v", i, call.args[i], tt.args[i])
				}
			}
		})
	}
}

func TestCourseUpdateCredits(t *testing.T) {
	fake := &fakeQuerier{execTag: pgconn.NewCommandTag("UPDATE 2")}
	r := NewCourseRepository(fake)

	affected, err := r.UpdateCredits(context.Background(), "CS101", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 2 {
		t.Errorf("affected = %d, want 2", affected)
	}

	call := lastCall(t, fake.execs)
	assertFragments(t, call.sql, "UPDATE courses SET credits =", "WHERE course_code =")
	if call.args[0] != 4 || call.args[1] != "CS101" {
		t.Errorf("unexpected args: %v", call.args)
	}
}

func TestStudentFinderQueries(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		run       func(r *StudentRepository) error
		fragments []string
		lastArg   any
	}{
		{
			name: "FindByMajorIn",
			run: func(r *StudentRepository) error {
				_, err := r.FindByMajorIn(ctx, []string{"Computer Science", "Math"})
				return err
			},
			fragments: []string{"major IN ("},
			lastArg:   "Math",
		},
		{
			name: "FindByMajorAndMinGpa",
			run: func(r *StudentRepository) error {
				_, err := r.FindByMajorAndMinGpa(ctx, "Computer Science", 3.0)
				return err
			},
			fragments: []string{"major =", "gpa >="},
			lastArg:   3.0,
		},
		{
			name: "FindByMajorOrderByGpaDesc",
			run: func(r *StudentRepository) error {
				_, err := r.FindByMajorOrderByGpaDesc(ctx, "Math")
				return err
			},
			fragments: []string{"major =", "ORDER BY gpa DESC NULLS LAST, id ASC"},
			lastArg:   "Math",
		},
		{
			name: "FindByNameContaining",
			run: func(r *StudentRepository) error {
				_, err := r.FindByNameContaining(ctx, "an")
				return err
			},
			fragments: []string{"name ILIKE"},
			lastArg:   "%an%",
		},
		{
			name: "FindWithMinEnrollments",
			run: func(r *StudentRepository) error {
				_, err := r.FindWithMinEnrollments(ctx, 2)
				return err
			},
			fragments: []string{"(SELECT COUNT(*) FROM course_enrollment e WHERE e.student_id = st.id) >="},
			lastArg:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeQuerier{}
			r := NewStudentRepository(fake)

			if err := tt.run(r); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			call := lastCall(t, fake.queries)
			assertFragments(t, call.sql, tt.fragments...)

			if len(call.args) == 0 {
				t.Fatal("expected at least one argument")
			}
			if got := call.args[len(call.args)-1]; got != tt.lastArg {
				t.Errorf("last arg = %v, want %v", got, tt.lastArg)
			}
		})
	}
}

func TestProfessorFindByDepartment(t *testing.T) {
	fake := &fakeQuerier{}
	r := NewProfessorRepository(fake)

	if _, err := r.FindByDepartment(context.Background(), "Math"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := lastCall(t, fake.queries)
	assertFragments(t, call.sql, "FROM professors", "department =")
	if call.args[0] != "Math" {
		t.Errorf("unexpected args: %v", call.args)
	}
}

func TestUserGetByEmail(t *testing.T) {
	fake := &fakeQuerier{
		rowScan: func(sql string, dest ...any) error {
			*(dest[0].(*int64)) = 9
			*(dest[1].(*string)) = "Registrar"
			*(dest[2].(*string)) = "registrar@example.edu"
			return nil
		},
	}
	r := NewUserRepository(fake)

	user, err := r.GetByEmail(context.Background(), "registrar@example.edu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 9 || user.Email != "registrar@example.edu" {
		t.Errorf("unexpected user: %+v", user)
	}

	call := lastCall(t, fake.queries)
	assertFragments(t, call.sql, "FROM users WHERE email =")
	if call.args[0] != "registrar@example.edu" {
		t.Errorf("unexpected args: %v", call.args)
	}
}

func TestUserGetByEmailNotFound(t *testing.T) {
	fake := &fakeQuerier{
		rowScan: func(sql string, dest ...any) error { return pgx.ErrNoRows },
	}
	r := NewUserRepository(fake)

	_, err := r.GetByEmail(context.Background(), "nobody@example.edu")
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCourseGetByIDPropagatesProfessorLookupFailure(t *testing.T) {
	lookupErr := errors.New("connection reset")
	professorID := int64(7)

	fake := &fakeQuerier{}
	fake.rowScan = func(sql string, dest ...any) error {
		if strings.Contains(sql, "SELECT department FROM professors") {
			return lookupErr
		}
		*(dest[8].(**int64)) = &professorID
		name := "Alice Nguyen"
		*(dest[9].(**string)) = &name
		return nil
	}
	r := NewCourseRepository(fake)

	_, err := r.GetByID(context.Background(), 1)
	if !errors.Is(err, lookupErr) {
		t.Fatalf("professor lookup failure must propagate, got %v", err)
	}
}

func TestCourseGetByIDToleratesVanishedProfessor(t *testing.T) {
	professorID := int64(7)

	fake := &fakeQuerier{}
	fake.rowScan = func(sql string, dest ...any) error {
		if strings.Contains(sql, "SELECT department FROM professors") {
			return pgx.ErrNoRows
		}
		*(dest[8].(**int64)) = &professorID
		name := "Alice Nguyen"
		*(dest[9].(**string)) = &name
		return nil
	}
	r := NewCourseRepository(fake)

	course, err := r.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if course.Professor == nil || course.Professor.Department != "" {
		t.Errorf("expected professor with empty department, got %+v", course.Professor)
	}
}
