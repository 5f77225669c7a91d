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

// StudentController handles student-related operations
type StudentController struct {
	academicService *services.AcademicService
	queryService    *services.AcademicQueryService
}

// NewStudentController creates a new StudentController
func NewStudentController(academicService *services.AcademicService, queryService *services.AcademicQueryService) *StudentController {
	return &StudentController{
		academicService: academicService,
		queryService:    queryService,
	}
}

// CreateStudent handles student registration
// @Summary Register a new student
// @Description Creates a student together with their profile in one transaction
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentDetailResponse} "Student registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Profile email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := c.academicService.CreateStudent(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromStudentDetail(student),
		Timestamp: time.Now(),
	})
}

// GetStudentByID retrieves a student by ID
// @Summary Get student by ID
// @Description Retrieves a student with profile, enrolled courses and advisors
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentDetailResponse} "Student retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.academicService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromStudentDetail(student),
		Timestamp: time.Now(),
	})
}

// GetAllStudents retrieves all students
// @Summary Get all students
// @Description Retrieves a list of all students
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentBasicResponse} "Students retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/students [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.academicService.GetAllStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result := make([]dto.StudentBasicResponse, 0, len(students))
	for _, s := range students {
		result = append(result, dto.FromStudentBasic(s))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// SearchStudents runs the dynamic student search
// @Summary Search students
// @Description Searches students by any combination of filters with pagination and sorting
// @Tags students
// @Produce json
// @Param major query string false "Exact major"
// @Param minGpa query number false "Minimum GPA"
// @Param courseEnrolled query string false "Exact course code the student is enrolled in"
// @Param advisorName query string false "Exact advisor name"
// @Param sortBy query string false "Sort field" Enums(id, name, major, gpa)
// @Param sortDirection query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Zero-based page index"
// @Param size query int false "Page size (1-100)"
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse[dto.StudentSearchResult]} "Search results"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter, sort or pagination parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/students/search [get]
func (c *StudentController) SearchStudents(ctx *gin.Context) {
	var criteria dto.StudentSearchCriteria
	if err := ctx.ShouldBindQuery(&criteria); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	page, err := helpers.ParsePageRequest(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rows, total, err := c.queryService.SearchStudents(ctx, criteria, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	results := make([]dto.StudentSearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, dto.FromStudentSearchResult(row.Student, row.EnrolledCount))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewPageResponse(results, page, total),
		Timestamp: time.Now(),
	})
}

// GetTopStudents retrieves the highest-GPA students
// @Summary Get top students by GPA
// @Description Retrieves the top N students ordered by GPA descending
// @Tags students
// @Produce json
// @Param limit query int false "Number of students to return" default(3)
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentBasicResponse} "Top students"
// @Failure 400 {object} dto.ErrorResponse "Invalid limit"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/students/top [get]
func (c *StudentController) GetTopStudents(ctx *gin.Context) {
	limit, ok := parseLimitQuery(ctx, 3)
	if !ok {
		return
	}

	students, err := c.queryService.GetTopStudentsByGpa(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result := make([]dto.StudentBasicResponse, 0, len(students))
	for _, s := range students {
		result = append(result, dto.FromStudentBasic(s))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// GetStudentsByMajor lists the students in a major
// @Summary Get students by major
// @Description Retrieves all students with the given major
// @Tags students
// @Produce json
// @Param major path string true "Major name"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentBasicResponse} "Students in the major"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/students/major/{major} [get]
func (c *StudentController) GetStudentsByMajor(ctx *gin.Context) {
	major := ctx.Param("major")

	students, err := c.queryService.GetStudentsByMajor(ctx, major)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result := make([]dto.StudentBasicResponse, 0, len(students))
	for _, s := range students {
		result = append(result, dto.FromStudentBasic(s))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// GetHighAchievers lists students above a GPA threshold
// @Summary Get high-achieving students
// @Description Retrieves students with a GPA strictly above the threshold
// @Tags students
// @Produce json
// @Param minGpa query number true "GPA threshold (exclusive)"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentBasicResponse} "Matching students"
// @Failure 400 {object} dto.ErrorResponse "Invalid threshold"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/students/high-achievers [get]
func (c *StudentController) GetHighAchievers(ctx *gin.Context) {
	minGPA, ok := parseFloatQuery(ctx, "minGpa")
	if !ok {
		return
	}

	students, err := c.queryService.GetHighAchievers(ctx, minGPA)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result := make([]dto.StudentBasicResponse, 0, len(students))
	for _, s := range students {
		result = append(result, dto.FromStudentBasic(s))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// DeleteStudent removes a student
// @Summary Delete a student
// @Description Deletes a student, their profile and all relationship rows
// @Tags students
// @Param id path int true "Student ID"
// @Success 204 "Student deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.academicService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
