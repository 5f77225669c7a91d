package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/okandemir/academix/internal/app/repositories"
	"github.com/okandemir/academix/internal/db"
	"github.com/okandemir/academix/internal/pkg/apperrors"
)

// fakeStore backs the repositories without a database. Single-row lookups go
// through rowScan; any write is recorded so tests can assert nothing was
// persisted.
type fakeStore struct {
	rowScan func(sql string, dest ...any) error
	execs   []string
}

func (f *fakeStore) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("unexpected query: %s", sql)
}

func (f *fakeStore) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return storeRow{sql: sql, scan: f.rowScan}
}

func (f *fakeStore) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return pgconn.CommandTag{}, nil
}

type storeRow struct {
	sql  string
	scan func(sql string, dest ...any) error
}

func (r storeRow) Scan(dest ...any) error {
	if r.scan == nil {
		return nil
	}
	return r.scan(r.sql, dest...)
}

func newAcademicServiceWithStore(store *fakeStore) *AcademicService {
	return NewAcademicService(
		repositories.NewCourseRepository(store),
		repositories.NewProfessorRepository(store),
		repositories.NewStudentRepository(store),
		&db.PostgresDB{},
	)
}

func TestEnrollStudentInCourseDuplicateConflict(t *testing.T) {
	store := &fakeStore{
		rowScan: func(sql string, dest ...any) error {
			if strings.Contains(sql, "SELECT EXISTS(SELECT 1 FROM course_enrollment") {
				*(dest[0].(*bool)) = true
			}
			return nil
		},
	}
	svc := newAcademicServiceWithStore(store)

	err := svc.EnrollStudentInCourse(context.Background(), 1, 2)
	if !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
	if len(store.execs) != 0 {
		t.Errorf("a duplicate enrollment must not write, got %v", store.execs)
	}
}

func TestEnrollStudentInCourseMissingCourse(t *testing.T) {
	store := &fakeStore{
		rowScan: func(sql string, dest ...any) error {
			if strings.Contains(sql, "FROM courses") {
				return pgx.ErrNoRows
			}
			return nil
		},
	}
	svc := newAcademicServiceWithStore(store)

	err := svc.EnrollStudentInCourse(context.Background(), 1, 2)
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestEnrollStudentInCourseMissingStudent(t *testing.T) {
	store := &fakeStore{
		rowScan: func(sql string, dest ...any) error {
			if strings.Contains(sql, "FROM students") {
				return pgx.ErrNoRows
			}
			return nil
		},
	}
	svc := newAcademicServiceWithStore(store)

	err := svc.EnrollStudentInCourse(context.Background(), 1, 2)
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestAssignAdviseeToProfessorDuplicateConflict(t *testing.T) {
	store := &fakeStore{
		rowScan: func(sql string, dest ...any) error {
			if strings.Contains(sql, "SELECT EXISTS(SELECT 1 FROM professor_advisee") {
				*(dest[0].(*bool)) = true
			}
			return nil
		},
	}
	svc := newAcademicServiceWithStore(store)

	err := svc.AssignAdviseeToProfessor(context.Background(), 3, 2)
	if !errors.Is(err, apperrors.ErrAlreadyAdvisee) {
		t.Fatalf("expected ErrAlreadyAdvisee, got %v", err)
	}
	if len(store.execs) != 0 {
		t.Errorf("a duplicate assignment must not write, got %v", store.execs)
	}
}
