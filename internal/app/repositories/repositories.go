package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the query surface the repositories need from the connection
// pool. *pgxpool.Pool satisfies it; tests substitute a fake to inspect the
// generated SQL without a database.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository    *CourseRepository
	ProfessorRepository *ProfessorRepository
	StudentRepository   *StudentRepository
	UserRepository      *UserRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db Querier) *Repositories {
	return &Repositories{
		CourseRepository:    NewCourseRepository(db),
		ProfessorRepository: NewProfessorRepository(db),
		StudentRepository:   NewStudentRepository(db),
		UserRepository:      NewUserRepository(db),
	}
}
