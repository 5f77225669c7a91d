package dto

import "github.com/okandemir/academix/internal/app/models"

// UserRequest represents the payload for creating or replacing a user.
type UserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UserResponse is the user view returned by the user-management API.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FromUser converts a user model to its response view.
func FromUser(u *models.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// FromUserList converts a slice of user models to response views.
func FromUserList(users []*models.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, FromUser(u))
	}
	return result
}
