package models

// Course represents a course offered by a department.
// A course may be owned by a professor (nullable many-to-one) and holds a
// many-to-many enrollment relation with students through course_enrollment.
type Course struct {
	ID          int64   `json:"id" db:"id"`
	CourseCode  string  `json:"courseCode" db:"course_code"`
	Title       string  `json:"title" db:"title"`
	Description *string `json:"description,omitempty" db:"description"` // Nullable
	Department  string  `json:"department" db:"department"`
	Credits     int     `json:"credits" db:"credits"`
	Capacity    int     `json:"capacity" db:"capacity"`
	IsActive    bool    `json:"isActive" db:"is_active"`
	ProfessorID *int64  `json:"professorId,omitempty" db:"professor_id"` // Nullable

	// Relations (populated when needed)
	Professor        *Professor `json:"professor,omitempty"`
	EnrolledStudents []*Student `json:"enrolledStudents,omitempty"`

	// Derived at read time from the enrollment join, never stored.
	EnrollmentCount int      `json:"enrollmentCount"`
	AverageGrade    *float64 `json:"averageGrade,omitempty"`
}
