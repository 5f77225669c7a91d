package dto

import (
	"testing"

	"github.com/okandemir/academix/internal/app/models"
)

func TestFromCourseSearchResultWithoutProfessor(t *testing.T) {
	course := &models.Course{
		ID:              7,
		CourseCode:      "CS101",
		Title:           "Introduction to Programming",
		EnrollmentCount: 12,
	}

	result := FromCourseSearchResult(course)

	if result.ProfessorName != nil {
		t.Errorf("unowned course must have nil professorName, got %v", *result.ProfessorName)
	}
	if result.AverageGrade != nil {
		t.Errorf("course without graded students must have nil averageGrade")
	}
	if result.Code != "CS101" || result.EnrollmentCount != 12 {
		t.Errorf("unexpected mapping: %+v", result)
	}
}

func TestFromCourseSearchResultFlattensProfessor(t *testing.T) {
	avg := 3.4
	course := &models.Course{
		ID:              1,
		CourseCode:      "CS301",
		Title:           "Database Systems",
		EnrollmentCount: 2,
		AverageGrade:    &avg,
		Professor:       &models.Professor{ID: 9, Name: "Alice Nguyen"},
	}

	result := FromCourseSearchResult(course)

	if result.ProfessorName == nil || *result.ProfessorName != "Alice Nguyen" {
		t.Errorf("professor name not flattened: %+v", result.ProfessorName)
	}
	if result.AverageGrade == nil || *result.AverageGrade != 3.4 {
		t.Errorf("average grade lost in mapping: %+v", result.AverageGrade)
	}
}

func TestFromCourseDetail(t *testing.T) {
	desc := "Relational model and SQL"
	profID := int64(3)
	course := &models.Course{
		ID:              5,
		CourseCode:      "CS301",
		Title:           "Database Systems",
		Description:     &desc,
		Department:      "Computer Science",
		Credits:         3,
		Capacity:        40,
		IsActive:        true,
		ProfessorID:     &profID,
		Professor:       &models.Professor{ID: 3, Name: "Mehmet Demir", Department: "Computer Science"},
		EnrollmentCount: 25,
	}

	detail := FromCourseDetail(course)

	if detail.Professor == nil || detail.Professor.ID != 3 {
		t.Fatalf("professor summary missing: %+v", detail.Professor)
	}
	if detail.EnrollmentCount != 25 {
		t.Errorf("EnrollmentCount = %d, want 25", detail.EnrollmentCount)
	}
	if detail.Capacity != 40 || !detail.IsActive {
		t.Errorf("unexpected mapping: %+v", detail)
	}
}

func TestFromProfessorNil(t *testing.T) {
	if FromProfessor(nil) != nil {
		t.Error("nil professor must map to nil summary")
	}
}

func TestFromCourseBasicList(t *testing.T) {
	list := FromCourseBasicList(nil)
	if list == nil {
		t.Fatal("nil input must map to an empty slice")
	}
	if len(list) != 0 {
		t.Errorf("expected empty slice, got %v", list)
	}
}
