package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okandemir/academix/internal/app/models"
	"github.com/okandemir/academix/internal/app/models/dto"
	"github.com/okandemir/academix/internal/app/services"
	"github.com/okandemir/academix/internal/middleware"
)

// ProfessorController handles professor-related operations
type ProfessorController struct {
	academicService *services.AcademicService
}

// NewProfessorController creates a new ProfessorController
func NewProfessorController(academicService *services.AcademicService) *ProfessorController {
	return &ProfessorController{academicService: academicService}
}

// professorRequest is the creation payload.
type professorRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Department string `json:"department" binding:"required"`
}

// CreateProfessor handles professor creation
// @Summary Create a new professor
// @Description Creates a professor with the provided information
// @Tags professors
// @Accept json
// @Produce json
// @Param request body object true "Professor information"
// @Success 201 {object} dto.APIResponse{data=dto.ProfessorResponse} "Professor created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/professors [post]
func (c *ProfessorController) CreateProfessor(ctx *gin.Context) {
	var req professorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	professor := &models.Professor{
		Name:       req.Name,
		Department: req.Department,
	}
	if err := c.academicService.CreateProfessor(ctx, professor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromProfessor(professor),
		Timestamp: time.Now(),
	})
}

// GetProfessorByID retrieves a professor by ID
// @Summary Get professor by ID
// @Description Retrieves a professor with owned courses and advisees
// @Tags professors
// @Produce json
// @Param id path int true "Professor ID"
// @Success 200 {object} dto.APIResponse "Professor retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid professor ID"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/professors/{id} [get]
func (c *ProfessorController) GetProfessorByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	professor, err := c.academicService.GetProfessor(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	advisees := make([]dto.StudentBasicResponse, 0, len(professor.Advisees))
	for _, s := range professor.Advisees {
		advisees = append(advisees, dto.FromStudentBasic(s))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{
			"id":         professor.ID,
			"name":       professor.Name,
			"department": professor.Department,
			"courses":    dto.FromCourseBasicList(professor.Courses),
			"advisees":   advisees,
		},
		Timestamp: time.Now(),
	})
}

// GetAllProfessors retrieves all professors
// @Summary Get all professors
// @Description Retrieves a list of all professors
// @Tags professors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ProfessorResponse} "Professors retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/professors [get]
func (c *ProfessorController) GetAllProfessors(ctx *gin.Context) {
	professors, err := c.academicService.GetAllProfessors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result := make([]dto.ProfessorResponse, 0, len(professors))
	for _, p := range professors {
		result = append(result, *dto.FromProfessor(p))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// AssignAdvisee records an advising relationship
// @Summary Assign an advisee to a professor
// @Description Creates the advising relationship; assigning the same student twice is a conflict
// @Tags professors
// @Produce json
// @Param id path int true "Professor ID"
// @Param studentId path int true "Student ID"
// @Success 201 {object} dto.APIResponse "Advisee assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Professor or student not found"
// @Failure 409 {object} dto.ErrorResponse "Student already advised by this professor"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/professors/{id}/advisees/{studentId} [post]
func (c *ProfessorController) AssignAdvisee(ctx *gin.Context) {
	professorID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	if err := c.academicService.AssignAdviseeToProfessor(ctx, professorID, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      gin.H{"professorId": professorID, "studentId": studentID},
		Timestamp: time.Now(),
	})
}

// GetAdvisees lists the students advised by a professor
// @Summary List advisees
// @Description Retrieves the students advised by a professor
// @Tags professors
// @Produce json
// @Param id path int true "Professor ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentBasicResponse} "Advisees retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid professor ID"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic/professors/{id}/advisees [get]
func (c *ProfessorController) GetAdvisees(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	professor, err := c.academicService.GetProfessor(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	advisees := make([]dto.StudentBasicResponse, 0, len(professor.Advisees))
	for _, s := range professor.Advisees {
		advisees = append(advisees, dto.FromStudentBasic(s))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      advisees,
		Timestamp: time.Now(),
	})
}
