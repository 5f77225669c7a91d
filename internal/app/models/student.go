package models

// Student defines the student model based on the 'students' table.
// GPA is nullable: a newly admitted student has no grade history yet.
type Student struct {
	ID    int64    `json:"id" db:"id"`
	Name  string   `json:"name" db:"name"`
	Major string   `json:"major" db:"major"`
	GPA   *float64 `json:"gpa,omitempty" db:"gpa"`

	// Relations (populated when needed)
	Profile         *StudentProfile `json:"profile,omitempty"`
	EnrolledCourses []*Course       `json:"enrolledCourses,omitempty"`
	Advisors        []*Professor    `json:"advisors,omitempty"`
}
