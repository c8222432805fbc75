package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Calabangata/Graduation-System/internal/app/controllers"
	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	departmentController *controllers.DepartmentController,
	applicationController *controllers.ApplicationController,
	statementController *controllers.StatementController,
	reviewController *controllers.ReviewController,
	defenceController *controllers.DefenceController,
	userController *controllers.UserController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Public department reads ---
	departments := v1.Group("/departments")
	{
		departments.GET("", departmentController.GetAllDepartments)
		departments.GET("/:id", departmentController.GetDepartmentByID)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		teacherRole := string(models.RoleTeacher)
		adminRole := string(models.RoleAdmin)
		studentRole := string(models.RoleStudent)

		// Department administration
		departmentsProtected := authenticated.Group("/departments")
		departmentsProtected.Use(authMiddleware.RoleRequired(adminRole, teacherRole))
		{
			departmentsProtected.POST("", departmentController.CreateDepartment)
			departmentsProtected.POST("/:id/teachers", departmentController.AssignTeacher)
		}

		// Roster lookups
		authenticated.GET("/users/me", userController.GetMe)
		authenticated.GET("/students/:facultyNumber", userController.GetStudent)
		authenticated.GET("/teachers/:id", userController.GetTeacher)

		// Thesis applications
		applications := authenticated.Group("/thesis-applications")
		{
			applications.GET("", applicationController.GetAllApplications)
			applications.GET("/search", applicationController.SearchByTopic)
			applications.GET("/student/:studentId", applicationController.GetApplicationsByStudent)
			applications.GET("/supervisor/:supervisorId", applicationController.GetApplicationsBySupervisor)

			applicationsTeacher := applications.Group("")
			applicationsTeacher.Use(authMiddleware.RoleRequired(teacherRole))
			{
				applicationsTeacher.POST("", applicationController.SubmitApplication)
				applicationsTeacher.POST("/vote", applicationController.VoteOnApplication)
				applicationsTeacher.POST("/:id/evaluate", applicationController.EvaluateVotes)
				applicationsTeacher.DELETE("/:id", applicationController.DeleteApplication)
			}
		}

		// Thesis statements
		statements := authenticated.Group("/thesis-statements")
		{
			statements.GET("/grades", statementController.FindByGradeRange)

			statementsStudent := statements.Group("")
			statementsStudent.Use(authMiddleware.RoleRequired(studentRole))
			{
				statementsStudent.POST("", statementController.CreateStatement)
			}

			statementsTeacher := statements.Group("")
			statementsTeacher.Use(authMiddleware.RoleRequired(teacherRole))
			{
				statementsTeacher.POST("/grade", statementController.GradeStatement)
				statementsTeacher.DELETE("/:id", statementController.DeleteStatement)
			}
		}

		// Thesis reviews
		reviews := authenticated.Group("/thesis-reviews")
		{
			reviews.GET("/statement/:statementId", reviewController.GetReviewByStatement)

			reviewsTeacher := reviews.Group("")
			reviewsTeacher.Use(authMiddleware.RoleRequired(teacherRole))
			{
				reviewsTeacher.POST("", reviewController.CreateReview)
			}
		}

		// Thesis defences
		defences := authenticated.Group("/thesis-defences")
		{
			defences.GET("", defenceController.GetAllDefences)
			defences.GET("/:id", defenceController.GetDefence)

			defencesTeacher := defences.Group("")
			defencesTeacher.Use(authMiddleware.RoleRequired(teacherRole, adminRole))
			{
				defencesTeacher.POST("", defenceController.CreateDefence)
				defencesTeacher.POST("/:id/students", defenceController.AssignStudents)
				defencesTeacher.POST("/:id/teachers", defenceController.AssignTeachers)
				defencesTeacher.PUT("/:id", defenceController.UpdateDefence)
				defencesTeacher.DELETE("/:id", defenceController.DeleteDefence)
			}
		}
	}
}
