package models

import "time"

// StudentProfile holds contact details for exactly one student.
// The profile is owned by the student: it is created, updated and deleted
// together with its owner.
type StudentProfile struct {
	ID          int64      `json:"id" db:"id"`
	StudentID   int64      `json:"studentId" db:"student_id"`
	Email       string     `json:"email" db:"email"`
	PhoneNumber *string    `json:"phoneNumber,omitempty" db:"phone_number"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
}
