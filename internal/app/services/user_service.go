package services

import (
	"context"

	"github.com/okandemir/academix/internal/app/models"
	"github.com/okandemir/academix/internal/app/models/dto"
	"github.com/okandemir/academix/internal/app/repositories"
	"github.com/okandemir/academix/internal/pkg/logger"
)

// UserService handles user management operations.
type UserService struct {
	userRepo *repositories.UserRepository
}

// NewUserService creates a new user service instance
func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser creates a new user. A duplicate email is a conflict.
func (s *UserService) CreateUser(ctx context.Context, req dto.UserRequest) (*models.User, error) {
	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Msg("User created")
	return user, nil
}

// GetUser retrieves a user by identity.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByEmail retrieves a user by email address.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// UpdateUser replaces a user's name and email.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req dto.UserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Email = req.Email

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes a user.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("userId", id).Msg("User deleted")
	return nil
}
