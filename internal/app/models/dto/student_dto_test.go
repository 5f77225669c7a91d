package dto

import (
	"testing"

	"github.com/okandemir/academix/internal/app/models"
)

func TestFromStudentDetailEmptyRelations(t *testing.T) {
	student := &models.Student{ID: 1, Name: "Mina Park", Major: "Mathematics"}

	detail := FromStudentDetail(student)

	if detail.EnrolledCourses == nil || detail.Advisors == nil {
		t.Fatal("relation slices must be empty, not nil")
	}
	if detail.Profile != nil {
		t.Errorf("student without profile must map to nil profile, got %+v", detail.Profile)
	}
	if detail.GPA != nil {
		t.Error("student without grade history must have nil gpa")
	}
}

func TestFromStudentDetailLoadsRelations(t *testing.T) {
	gpa := 3.8
	student := &models.Student{
		ID:    2,
		Name:  "Deniz Kaya",
		Major: "Computer Science",
		GPA:   &gpa,
		Profile: &models.StudentProfile{
			ID:        10,
			StudentID: 2,
			Email:     "deniz.kaya@example.edu",
		},
		EnrolledCourses: []*models.Course{
			{ID: 1, CourseCode: "CS101", Title: "Introduction to Programming"},
		},
		Advisors: []*models.Professor{
			{ID: 9, Name: "Alice Nguyen", Department: "Computer Science"},
		},
	}

	detail := FromStudentDetail(student)

	if detail.Profile == nil || detail.Profile.Email != "deniz.kaya@example.edu" {
		t.Fatalf("profile not mapped: %+v", detail.Profile)
	}
	if len(detail.EnrolledCourses) != 1 || detail.EnrolledCourses[0].CourseCode != "CS101" {
		t.Errorf("enrolled courses not mapped: %+v", detail.EnrolledCourses)
	}
	if len(detail.Advisors) != 1 || detail.Advisors[0].Name != "Alice Nguyen" {
		t.Errorf("advisors not mapped: %+v", detail.Advisors)
	}
}

func TestFromStudentSearchResultFlattensEmail(t *testing.T) {
	student := &models.Student{
		ID:    3,
		Name:  "Sofia Rossi",
		Major: "Computer Science",
		Profile: &models.StudentProfile{
			StudentID: 3,
			Email:     "sofia.rossi@example.edu",
		},
	}

	result := FromStudentSearchResult(student, 2)

	if result.Email == nil || *result.Email != "sofia.rossi@example.edu" {
		t.Errorf("email not flattened from profile: %+v", result.Email)
	}
	if result.EnrolledCoursesCount != 2 {
		t.Errorf("EnrolledCoursesCount = %d, want 2", result.EnrolledCoursesCount)
	}
}

func TestFromStudentSearchResultWithoutProfile(t *testing.T) {
	result := FromStudentSearchResult(&models.Student{ID: 4, Name: "Tom Becker", Major: "Mathematics"}, 0)
	if result.Email != nil {
		t.Errorf("student without profile must have nil email, got %v", *result.Email)
	}
}
