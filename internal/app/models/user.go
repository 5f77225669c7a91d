package models

// User is a platform account managed by the user-management API.
// Email is unique across all users.
type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}
