package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/okandemir/academix/internal/app/controllers"
	"github.com/okandemir/academix/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	professorController *controllers.ProfessorController,
	studentController *controllers.StudentController,
	userController *controllers.UserController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Academic routes ---
	academic := v1.Group("/academic")

	courses := academic.Group("/courses")
	{
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/search", courseController.SearchCourses)
		courses.GET("/popular", courseController.GetPopularCourses)
		courses.GET("/popular/filtered", courseController.GetFilteredPopularCourses)
		courses.GET("/department-counts", courseController.GetDepartmentCourseCounts)
		courses.GET("/department/:department", courseController.GetCoursesByDepartment)
		courses.GET("/:id", courseController.GetCourseByID)
		courses.POST("", courseController.CreateCourse)
		courses.PATCH("/:id", courseController.UpdateCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)

		// Relationship management
		courses.PUT("/:id/professor/:professorId", courseController.AssignProfessor)
		courses.GET("/:id/students", courseController.GetEnrolledStudents)
		courses.POST("/:id/students/:studentId", courseController.EnrollStudent)
	}

	professors := academic.Group("/professors")
	{
		professors.GET("", professorController.GetAllProfessors)
		professors.GET("/:id", professorController.GetProfessorByID)
		professors.POST("", professorController.CreateProfessor)

		professors.GET("/:id/advisees", professorController.GetAdvisees)
		professors.POST("/:id/advisees/:studentId", professorController.AssignAdvisee)
	}

	students := academic.Group("/students")
	{
		students.GET("", studentController.GetAllStudents)
		students.GET("/search", studentController.SearchStudents)
		students.GET("/top", studentController.GetTopStudents)
		students.GET("/high-achievers", studentController.GetHighAchievers)
		students.GET("/major/:major", studentController.GetStudentsByMajor)
		students.GET("/:id", studentController.GetStudentByID)
		students.POST("", studentController.CreateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}

	// --- User management routes ---
	users := v1.Group("/users")
	{
		users.GET("", userController.GetAllUsers)
		users.GET("/by-email", userController.GetUserByEmail)
		users.GET("/:id", userController.GetUserByID)
		users.POST("", userController.CreateUser)
		users.PUT("/:id", userController.UpdateUser)
		users.DELETE("/:id", userController.DeleteUser)
	}

	// Health check endpoint
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
