package models

// Professor represents a faculty member who can own courses and advise students.
type Professor struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Department string `json:"department" db:"department"`

	// Relations (populated when needed)
	Courses  []*Course  `json:"courses,omitempty"`
	Advisees []*Student `json:"advisees,omitempty"`
}
