package services

import (
	"testing"

	"github.com/okandemir/academix/internal/app/models"
	"github.com/okandemir/academix/internal/app/models/dto"
)

func courseFixture() *models.Course {
	desc := "Relational model and SQL"
	profID := int64(3)
	return &models.Course{
		ID:          5,
		CourseCode:  "CS301",
		Title:       "Database Systems",
		Description: &desc,
		Department:  "Computer Science",
		Credits:     3,
		Capacity:    40,
		IsActive:    true,
		ProfessorID: &profID,
	}
}

func TestApplyCourseUpdateEmptyRequestChangesNothing(t *testing.T) {
	course := courseFixture()
	before := *course

	applyCourseUpdate(course, dto.UpdateCourseRequest{})

	if course.CourseCode != before.CourseCode ||
		course.Title != before.Title ||
		course.Department != before.Department ||
		course.Credits != before.Credits ||
		course.Capacity != before.Capacity ||
		course.IsActive != before.IsActive {
		t.Errorf("empty update must leave the course untouched: %+v", course)
	}
	if course.Description == nil || *course.Description != *before.Description {
		t.Error("empty update must keep the description")
	}
	if course.ProfessorID == nil || *course.ProfessorID != *before.ProfessorID {
		t.Error("empty update must keep the professor assignment")
	}
}

func TestApplyCourseUpdateMergesSetFields(t *testing.T) {
	course := courseFixture()

	newTitle := "Advanced Database Systems"
	newCredits := 4
	inactive := false
	applyCourseUpdate(course, dto.UpdateCourseRequest{
		Title:    &newTitle,
		Credits:  &newCredits,
		IsActive: &inactive,
	})

	if course.Title != newTitle {
		t.Errorf("Title = %q, want %q", course.Title, newTitle)
	}
	if course.Credits != 4 {
		t.Errorf("Credits = %d, want 4", course.Credits)
	}
	if course.IsActive {
		t.Error("IsActive must be updatable to false")
	}

	// Untouched fields survive the merge.
	if course.CourseCode != "CS301" || course.Capacity != 40 {
		t.Errorf("unset fields must keep their values: %+v", course)
	}
	if course.ProfessorID == nil || *course.ProfessorID != 3 {
		t.Error("unset professor must keep its value")
	}
}

func TestApplyCourseUpdateReassignsProfessor(t *testing.T) {
	course := courseFixture()

	newProf := int64(8)
	applyCourseUpdate(course, dto.UpdateCourseRequest{ProfessorID: &newProf})

	if course.ProfessorID == nil || *course.ProfessorID != 8 {
		t.Errorf("ProfessorID = %v, want 8", course.ProfessorID)
	}
}

func TestApplyCourseUpdateCanClearDescription(t *testing.T) {
	course := courseFixture()

	empty := ""
	applyCourseUpdate(course, dto.UpdateCourseRequest{Description: &empty})

	if course.Description == nil || *course.Description != "" {
		t.Errorf("explicit empty description must overwrite, got %v", course.Description)
	}
}
