package services

import (
	"github.com/okandemir/academix/internal/app/repositories"
	"github.com/okandemir/academix/internal/db"
)

// Services holds all the service instances
type Services struct {
	AcademicService      *AcademicService
	AcademicQueryService *AcademicQueryService
	UserService          *UserService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, database *db.PostgresDB) *Services {
	return &Services{
		AcademicService: NewAcademicService(
			repos.CourseRepository,
			repos.ProfessorRepository,
			repos.StudentRepository,
			database,
		),
		AcademicQueryService: NewAcademicQueryService(
			repos.CourseRepository,
			repos.StudentRepository,
		),
		UserService: NewUserService(repos.UserRepository),
	}
}
