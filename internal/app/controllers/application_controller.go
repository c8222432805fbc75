package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Calabangata/Graduation-System/internal/app/models/dto"
	"github.com/Calabangata/Graduation-System/internal/app/services"
	"github.com/Calabangata/Graduation-System/internal/middleware"
)

// ApplicationController handles thesis application operations
type ApplicationController struct {
	applicationService *services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService) *ApplicationController {
	return &ApplicationController{applicationService: applicationService}
}

// SubmitApplication handles thesis application submission
// @Summary Submit a thesis application
// @Description Submits a thesis application for a student, supervised by the calling teacher
// @Tags thesis-applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitApplicationRequest true "Application details"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application submitted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student or supervisor not found"
// @Failure 409 {object} dto.ErrorResponse "Student graduated, already has an active application, or supervisor has no department"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-applications [post]
func (c *ApplicationController) SubmitApplication(ctx *gin.Context) {
	var req dto.SubmitApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	application, err := c.applicationService.SubmitApplication(ctx, middleware.CallerEmail(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      application,
		Timestamp: time.Now(),
	})
}

// VoteOnApplication handles a committee member's vote
// @Summary Vote on a thesis application
// @Description Records the calling teacher's vote on an application's approval
// @Tags thesis-applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VoteRequest true "Vote"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Vote recorded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Teacher does not belong to the approval's department"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Teacher already voted or roster complete"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-applications/vote [post]
func (c *ApplicationController) VoteOnApplication(ctx *gin.Context) {
	var req dto.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid vote data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.applicationService.VoteOnApplication(ctx, middleware.CallerEmail(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Vote recorded successfully"},
		Timestamp: time.Now(),
	})
}

// EvaluateVotes tallies the votes on an application and resolves its approval
// @Summary Evaluate the committee votes
// @Description Resolves an application's approval status once the whole department roster has voted
// @Tags thesis-applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Approval evaluated"
// @Failure 400 {object} dto.ErrorResponse "Invalid application ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Not all teachers have voted yet"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-applications/{id}/evaluate [post]
func (c *ApplicationController) EvaluateVotes(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Application ID must be a valid number")
	if !ok {
		return
	}

	status, err := c.applicationService.EvaluateVotes(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Thesis approval status: " + string(status)},
		Timestamp: time.Now(),
	})
}

// DeleteApplication removes an application and its approval record
// @Summary Delete a thesis application
// @Description Deletes an application along with its approval and votes; applications with a statement cannot be deleted
// @Tags thesis-applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 204 "Application deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid application ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Application has an associated statement"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-applications/{id} [delete]
func (c *ApplicationController) DeleteApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Application ID must be a valid number")
	if !ok {
		return
	}

	if err := c.applicationService.DeleteApplication(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetAllApplications lists every thesis application
// @Summary Get all thesis applications
// @Description Retrieves all thesis applications in the system
// @Tags thesis-applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse} "Applications retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-applications [get]
func (c *ApplicationController) GetAllApplications(ctx *gin.Context) {
	applications, err := c.applicationService.GetAllApplications(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      applications,
		Timestamp: time.Now(),
	})
}

// GetApplicationsByStudent lists a student's applications
// @Summary Get applications by student
// @Description Retrieves all applications a student ever submitted
// @Tags thesis-applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student faculty number"
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse} "Applications retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-applications/student/{studentId} [get]
func (c *ApplicationController) GetApplicationsByStudent(ctx *gin.Context) {
	applications, err := c.applicationService.GetApplicationsByStudent(ctx, ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      applications,
		Timestamp: time.Now(),
	})
}

// GetApplicationsBySupervisor lists a supervisor's applications by status
// @Summary Get applications by supervisor and status
// @Description Retrieves a supervisor's applications filtered by approval status
// @Tags thesis-applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param supervisorId path int true "Supervisor ID"
// @Param status query string true "Approval status" Enums(PENDING, APPROVED, REJECTED)
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse} "Applications retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid supervisor ID or status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Supervisor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-applications/supervisor/{supervisorId} [get]
func (c *ApplicationController) GetApplicationsBySupervisor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "supervisorId", "Supervisor ID must be a valid number")
	if !ok {
		return
	}

	applications, err := c.applicationService.GetApplicationsBySupervisor(ctx, id, ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      applications,
		Timestamp: time.Now(),
	})
}

// SearchByTopic searches applications by topic keyword
// @Summary Search applications by topic
// @Description Retrieves all applications whose topic contains the keyword
// @Tags thesis-applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param keyword query string true "Topic keyword"
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse} "Applications retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-applications/search [get]
func (c *ApplicationController) SearchByTopic(ctx *gin.Context) {
	applications, err := c.applicationService.SearchByTopic(ctx, ctx.Query("keyword"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      applications,
		Timestamp: time.Now(),
	})
}

// parseIDParam parses a numeric path parameter and writes a 400 response when
// it is malformed
func parseIDParam(ctx *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithDetails(message)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
