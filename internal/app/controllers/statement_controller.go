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

// StatementController handles thesis statement operations
type StatementController struct {
	statementService *services.StatementService
}

// NewStatementController creates a new StatementController
func NewStatementController(statementService *services.StatementService) *StatementController {
	return &StatementController{statementService: statementService}
}

// CreateStatement files the thesis document for the caller's active application
// @Summary Create a thesis statement
// @Description Files the thesis document for the calling student's approved active application
// @Tags thesis-statements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStatementRequest true "Statement content"
// @Success 201 {object} dto.APIResponse{data=dto.StatementResponse} "Statement created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Application is not approved"
// @Failure 404 {object} dto.ErrorResponse "Active application not found"
// @Failure 409 {object} dto.ErrorResponse "Statement already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-statements [post]
func (c *StatementController) CreateStatement(ctx *gin.Context) {
	var req dto.CreateStatementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid statement data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	statement, err := c.statementService.CreateStatement(ctx, middleware.CallerEmail(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      statement,
		Timestamp: time.Now(),
	})
}

// GradeStatement records the final grade for a student's thesis
// @Summary Grade a thesis statement
// @Description Records the grade a defence-panel teacher gives a student's thesis; a passing grade graduates the student
// @Tags thesis-statements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GradeStatementRequest true "Grade"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Statement graded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Teacher, student, defence, application or statement not found"
// @Failure 409 {object} dto.ErrorResponse "Defence has not occurred, grader not on panel, already graded, or grade out of range"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-statements/grade [post]
func (c *StatementController) GradeStatement(ctx *gin.Context) {
	var req dto.GradeStatementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid grade data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.statementService.GradeStatement(ctx, middleware.CallerEmail(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Thesis graded successfully"},
		Timestamp: time.Now(),
	})
}

// FindByGradeRange lists graded statements within a grade range
// @Summary Find statements by grade range
// @Description Retrieves all statements graded within [minGrade, maxGrade]
// @Tags thesis-statements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param minGrade query int true "Minimum grade" minimum(2)
// @Param maxGrade query int true "Maximum grade" maximum(6)
// @Success 200 {object} dto.APIResponse{data=[]dto.StatementResponse} "Statements retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid grade range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-statements/grades [get]
func (c *StatementController) FindByGradeRange(ctx *gin.Context) {
	minGrade, err := strconv.Atoi(ctx.Query("minGrade"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid minGrade").
			WithDetails("minGrade must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	maxGrade, err := strconv.Atoi(ctx.Query("maxGrade"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid maxGrade").
			WithDetails("maxGrade must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	statements, err := c.statementService.FindByGradeRange(ctx, minGrade, maxGrade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      statements,
		Timestamp: time.Now(),
	})
}

// DeleteStatement removes an ungraded statement
// @Summary Delete a thesis statement
// @Description Deletes an ungraded statement together with its review, if any
// @Tags thesis-statements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Statement ID"
// @Success 204 "Statement deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid statement ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Statement not found"
// @Failure 409 {object} dto.ErrorResponse "Statement is already graded"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-statements/{id} [delete]
func (c *StatementController) DeleteStatement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Statement ID must be a valid number")
	if !ok {
		return
	}

	if err := c.statementService.DeleteStatement(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
