package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	appModels "github.com/okandemir/academix/internal/app/models"
	appRepos "github.com/okandemir/academix/internal/app/repositories"
	"github.com/okandemir/academix/internal/db"
	"github.com/okandemir/academix/internal/pkg/apperrors"
)

// CreateDefaultData populates an empty database with a small demo campus:
// a few professors, courses, students and users, plus enrollment and
// advising relationships. A database that already holds courses is left
// untouched.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	courseRepo := appRepos.NewCourseRepository(database.Pool)
	professorRepo := appRepos.NewProfessorRepository(database.Pool)
	studentRepo := appRepos.NewStudentRepository(database.Pool)
	userRepo := appRepos.NewUserRepository(database.Pool)

	existing, err := courseRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing courses: %w", err)
	}
	if len(existing) > 0 {
		lgr.Info().Msg("Database already seeded, skipping default data")
		return nil
	}

	lgr.Info().Msg("Seeding default data...")

	// --- Professors --- //
	professors := []*appModels.Professor{
		{Name: "Alice Nguyen", Department: "Computer Science"},
		{Name: "Mehmet Demir", Department: "Computer Science"},
		{Name: "Laura Bianchi", Department: "Mathematics"},
	}
	for _, p := range professors {
		if err := professorRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed professor %s: %w", p.Name, err)
		}
	}

	// --- Courses --- //
	dbDesc := "Relational model, SQL and transaction processing"
	courses := []*appModels.Course{
		{CourseCode: "CS101", Title: "Introduction to Programming", Department: "Computer Science", Credits: 4, Capacity: 60, IsActive: true},
		{CourseCode: "CS301", Title: "Database Systems", Description: &dbDesc, Department: "Computer Science", Credits: 3, Capacity: 40, IsActive: true},
		{CourseCode: "MATH201", Title: "Linear Algebra", Department: "Mathematics", Credits: 3, Capacity: 50, IsActive: true},
		{CourseCode: "CS499", Title: "Legacy Compilers", Department: "Computer Science", Credits: 3, Capacity: 20, IsActive: false},
	}
	for _, c := range courses {
		if err := courseRepo.Create(ctx, c); err != nil {
			return fmt.Errorf("failed to seed course %s: %w", c.CourseCode, err)
		}
	}
	// Course ownership
	if err := courseRepo.SetProfessor(ctx, courses[0].ID, &professors[0].ID); err != nil {
		return fmt.Errorf("failed to assign professor: %w", err)
	}
	if err := courseRepo.SetProfessor(ctx, courses[1].ID, &professors[1].ID); err != nil {
		return fmt.Errorf("failed to assign professor: %w", err)
	}
	if err := courseRepo.SetProfessor(ctx, courses[2].ID, &professors[2].ID); err != nil {
		return fmt.Errorf("failed to assign professor: %w", err)
	}

	// --- Students with profiles --- //
	gpa := func(v float64) *float64 { return &v }
	students := []struct {
		student *appModels.Student
		profile *appModels.StudentProfile
	}{
		{&appModels.Student{Name: "Deniz Kaya", Major: "Computer Science", GPA: gpa(3.8)},
			&appModels.StudentProfile{Email: "deniz.kaya@example.edu"}},
		{&appModels.Student{Name: "Sofia Rossi", Major: "Computer Science", GPA: gpa(3.2)},
			&appModels.StudentProfile{Email: "sofia.rossi@example.edu"}},
		{&appModels.Student{Name: "Tom Becker", Major: "Mathematics", GPA: gpa(2.9)},
			&appModels.StudentProfile{Email: "tom.becker@example.edu"}},
		{&appModels.Student{Name: "Mina Park", Major: "Mathematics"},
			&appModels.StudentProfile{Email: "mina.park@example.edu"}},
	}
	for _, entry := range students {
		entry := entry
		err := database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			return studentRepo.CreateTx(ctx, tx, entry.student, entry.profile)
		})
		if err != nil {
			return fmt.Errorf("failed to seed student %s: %w", entry.student.Name, err)
		}
	}

	// --- Enrollments and advising --- //
	enrollments := []struct{ course, student int }{
		{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {2, 2}, {2, 3},
	}
	for _, e := range enrollments {
		err := database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			return courseRepo.AddEnrollment(ctx, tx, courses[e.course].ID, students[e.student].student.ID)
		})
		if err != nil && !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
			return fmt.Errorf("failed to seed enrollment: %w", err)
		}
	}

	advising := []struct{ professor, student int }{
		{0, 0}, {1, 1}, {2, 2}, {2, 3},
	}
	for _, a := range advising {
		err := database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			return professorRepo.AddAdvisee(ctx, tx, professors[a.professor].ID, students[a.student].student.ID)
		})
		if err != nil && !errors.Is(err, apperrors.ErrAlreadyAdvisee) {
			return fmt.Errorf("failed to seed advising relation: %w", err)
		}
	}

	// --- Users --- //
	users := []*appModels.User{
		{Name: "Registrar Office", Email: "registrar@example.edu"},
		{Name: "Admissions Desk", Email: "admissions@example.edu"},
	}
	for _, u := range users {
		if err := userRepo.Create(ctx, u); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}

	lgr.Info().Msg("Default data created.")
	return nil
}
