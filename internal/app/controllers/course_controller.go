package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okandemir/academix/internal/app/models/dto"
	"github.com/okandemir/academix/internal/app/services"
	"github.com/okandemir/academix/internal/middleware"
	"github.com/okandemir/academix/internal/pkg/helpers"
)

// CourseController handles course-related operations
type CourseController struct {
	academicService *services.AcademicService
	queryService    *services.AcademicQueryService
}

// NewCourseController creates a new CourseController
func NewCourseController(academicService *services.AcademicService, queryService *services.AcademicQueryService) *CourseController {
	return &CourseController{
		academicService: academicService,
		queryService:    queryService,
	}
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Description Creates a course, optionally assigned to a professor
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.academicService.CreateCourse(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromCourseDetail(course),
		Timestamp: time.Now(),
	})
}

// GetCourseByID retrieves a course by ID
// @Summary Get course by ID
// @Description Retrieves a course with its professor, enrollment count and enrolled students
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.academicService.GetCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromCourseDetail(course),
		Timestamp: time.Now(),
	})
}

// GetAllCourses retrieves all courses
// @Summary Get all courses
// @Description Retrieves a list of all courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseBasicResponse} "Courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.academicService.GetAllCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromCourseBasicList(courses),
		Timestamp: time.Now(),
	})
}

// SearchCourses runs the dynamic course search
// @Summary Search courses
// @Description Searches courses by any combination of filters with pagination and sorting
// @Tags courses
// @Produce json
// @Param courseCode query string false "Course code fragment, case-insensitive"
// @Param title query string false "Title fragment, case-insensitive"
// @Param department query string false "Exact department"
// @Param minCredits query int false "Minimum credits"
// @Param minEnrollment query int false "Minimum enrolled students"
// @Param hasAvailableSeats query bool false "Only courses with free capacity"
// @Param minAverageGrade query number false "Minimum average GPA of enrolled students"
// @Param isActive query bool false "Active flag"
// @Param sortBy query string false "Sort field" Enums(id, courseCode, title, department, credits, enrollmentCount)
// @Param sortDirection query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Zero-based page index"
// @Param size query int false "Page size (1-100)"
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse[dto.CourseSearchResult]} "Search results"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter, sort or pagination parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/courses/search [get]
func (c *CourseController) SearchCourses(ctx *gin.Context) {
	var criteria dto.CourseSearchCriteria
	if err := ctx.ShouldBindQuery(&criteria); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	page, err := helpers.ParsePageRequest(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courses, total, err := c.queryService.SearchCourses(ctx, criteria, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	results := dto.FromCourseSearchResultList(courses)
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewPageResponse(results, page, total),
		Timestamp: time.Now(),
	})
}

// GetPopularCourses retrieves the most enrolled courses
// @Summary Get popular courses
// @Description Retrieves the top N courses by enrollment count
// @Tags courses
// @Produce json
// @Param limit query int false "Number of courses to return" default(3)
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseSearchResult} "Popular courses"
// @Failure 400 {object} dto.ErrorResponse "Invalid limit"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/courses/popular [get]
func (c *CourseController) GetPopularCourses(ctx *gin.Context) {
	limit, ok := parseLimitQuery(ctx, 3)
	if !ok {
		return
	}

	courses, err := c.queryService.GetTopPopularCourses(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromCourseSearchResultList(courses),
		Timestamp: time.Now(),
	})
}

// GetDepartmentCourseCounts retrieves per-department course tallies
// @Summary Count courses per department
// @Description Retrieves the number of courses grouped by department
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse "Per-department counts"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/courses/department-counts [get]
func (c *CourseController) GetDepartmentCourseCounts(ctx *gin.Context) {
	counts, err := c.queryService.GetCourseCountsByDepartment(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      counts,
		Timestamp: time.Now(),
	})
}

// GetCoursesByDepartment lists the courses offered by a department
// @Summary Get courses by department
// @Description Retrieves all courses in the given department, optionally filtered to a minimum credit value
// @Tags courses
// @Produce json
// @Param department path string true "Department name"
// @Param minCredits query int false "Minimum credits"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseBasicResponse} "Courses in the department"
// @Failure 400 {object} dto.ErrorResponse "Invalid minCredits"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/courses/department/{department} [get]
func (c *CourseController) GetCoursesByDepartment(ctx *gin.Context) {
	department := ctx.Param("department")

	minCredits, ok := parseOptionalIntQuery(ctx, "minCredits")
	if !ok {
		return
	}

	courses, err := c.queryService.GetCoursesByDepartment(ctx, department, minCredits)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromCourseBasicList(courses),
		Timestamp: time.Now(),
	})
}

// GetFilteredPopularCourses lists courses above credit and enrollment thresholds
// @Summary Get popular courses by thresholds
// @Description Retrieves courses above both thresholds, most enrolled first
// @Tags courses
// @Produce json
// @Param minCredits query int false "Courses must be worth more than this many credits" default(0)
// @Param minStudents query int false "Minimum number of enrolled students" default(0)
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseBasicResponse} "Matching courses"
// @Failure 400 {object} dto.ErrorResponse "Invalid threshold"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/courses/popular/filtered [get]
func (c *CourseController) GetFilteredPopularCourses(ctx *gin.Context) {
	minCredits, ok := parseOptionalIntQuery(ctx, "minCredits")
	if !ok {
		return
	}
	minStudents, ok := parseOptionalIntQuery(ctx, "minStudents")
	if !ok {
		return
	}

	credits, students := 0, 0
	if minCredits != nil {
		credits = *minCredits
	}
	if minStudents != nil {
		students = *minStudents
	}

	courses, err := c.queryService.GetPopularCoursesByThresholds(ctx, credits, students)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromCourseBasicList(courses),
		Timestamp: time.Now(),
	})
}

// UpdateCourse applies a partial course update
// @Summary Update a course
// @Description Updates the provided course fields; absent fields are left unchanged
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course or professor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/courses/{id} [patch]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.academicService.UpdateCourse(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromCourseDetail(course),
		Timestamp: time.Now(),
	})
}

// DeleteCourse removes a course
// @Summary Delete a course
// @Description Deletes a course and dissolves all its enrollments
// @Tags courses
// @Param id path int true "Course ID"
// @Success 204 "Course deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.academicService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AssignProfessor sets the owning professor of a course
// @Summary Assign a professor to a course
// @Description Sets the course's professor; assigning the current professor again is a no-op
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Param professorId path int true "Professor ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Professor assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Course or professor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/courses/{id}/professor/{professorId} [put]
func (c *CourseController) AssignProfessor(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	professorID, ok := parseIDParam(ctx, "professorId")
	if !ok {
		return
	}

	course, err := c.academicService.AssignProfessorToCourse(ctx, courseID, professorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromCourseDetail(course),
		Timestamp: time.Now(),
	})
}

// EnrollStudent adds a student to a course
// @Summary Enroll a student in a course
// @Description Creates the enrollment; enrolling the same student twice is a conflict
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Param studentId path int true "Student ID"
// @Success 201 {object} dto.APIResponse "Student enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Course or student not found"
// @Failure 409 {object} dto.ErrorResponse "Student already enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/courses/{id}/students/{studentId} [post]
func (c *CourseController) EnrollStudent(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	if err := c.academicService.EnrollStudentInCourse(ctx, courseID, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      gin.H{"courseId": courseID, "studentId": studentID},
		Timestamp: time.Now(),
	})
}

// GetEnrolledStudents lists the students enrolled in a course
// @Summary List enrolled students
// @Description Retrieves the students enrolled in a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentBasicResponse} "Enrolled students"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/courses/{id}/students [get]
func (c *CourseController) GetEnrolledStudents(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.academicService.GetCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	students := make([]dto.StudentBasicResponse, 0, len(course.EnrolledStudents))
	for _, s := range course.EnrolledStudents {
		students = append(students, dto.FromStudentBasic(s))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}
