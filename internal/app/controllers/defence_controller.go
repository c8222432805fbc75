package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Calabangata/Graduation-System/internal/app/models/dto"
	"github.com/Calabangata/Graduation-System/internal/app/services"
	"github.com/Calabangata/Graduation-System/internal/middleware"
)

// DefenceController handles thesis defence operations
type DefenceController struct {
	defenceService *services.DefenceService
}

// NewDefenceController creates a new DefenceController
func NewDefenceController(defenceService *services.DefenceService) *DefenceController {
	return &DefenceController{defenceService: defenceService}
}

// CreateDefence schedules a defence session
// @Summary Schedule a thesis defence
// @Description Schedules a defence session for a department; ineligible candidates are dropped silently
// @Tags thesis-defences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDefenceRequest true "Defence details"
// @Success 201 {object} dto.APIResponse{data=dto.DefenceResponse} "Defence scheduled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Date is not in the future"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-defences [post]
func (c *DefenceController) CreateDefence(ctx *gin.Context) {
	var req dto.CreateDefenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid defence data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	defence, err := c.defenceService.CreateDefence(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      defence,
		Timestamp: time.Now(),
	})
}

// AssignStudents adds students to an existing defence
// @Summary Assign students to a defence
// @Description Assigns students by faculty number; all must exist and at least one must be eligible
// @Tags thesis-defences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Defence ID"
// @Param request body dto.AssignStudentsRequest true "Faculty numbers"
// @Success 200 {object} dto.APIResponse{data=dto.DefenceResponse} "Students assigned successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Defence or a referenced student not found"
// @Failure 409 {object} dto.ErrorResponse "No eligible students to assign"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-defences/{id}/students [post]
func (c *DefenceController) AssignStudents(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Defence ID must be a valid number")
	if !ok {
		return
	}

	var req dto.AssignStudentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	defence, err := c.defenceService.AssignStudents(ctx, id, req.StudentIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      defence,
		Timestamp: time.Now(),
	})
}

// AssignTeachers adds panel members to an existing defence
// @Summary Assign teachers to a defence
// @Description Assigns teachers by email; all must exist and at least one must belong to the defence's department
// @Tags thesis-defences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Defence ID"
// @Param request body dto.AssignTeachersRequest true "Teacher emails"
// @Success 200 {object} dto.APIResponse{data=dto.DefenceResponse} "Teachers assigned successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Defence or a referenced teacher not found"
// @Failure 409 {object} dto.ErrorResponse "No eligible teachers to assign"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-defences/{id}/teachers [post]
func (c *DefenceController) AssignTeachers(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Defence ID must be a valid number")
	if !ok {
		return
	}

	var req dto.AssignTeachersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	defence, err := c.defenceService.AssignTeachers(ctx, id, req.TeacherEmails)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      defence,
		Timestamp: time.Now(),
	})
}

// UpdateDefence applies a partial update to a defence
// @Summary Update a thesis defence
// @Description Updates a defence's date and location; a new date must lie in the future
// @Tags thesis-defences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Defence ID"
// @Param request body dto.UpdateDefenceRequest true "Updated fields"
// @Success 200 {object} dto.APIResponse{data=dto.DefenceResponse} "Defence updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Defence not found"
// @Failure 409 {object} dto.ErrorResponse "Date is not in the future"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-defences/{id} [put]
func (c *DefenceController) UpdateDefence(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Defence ID must be a valid number")
	if !ok {
		return
	}

	var req dto.UpdateDefenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid defence data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	defence, err := c.defenceService.UpdateDefence(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      defence,
		Timestamp: time.Now(),
	})
}

// DeleteDefence removes a defence
// @Summary Delete a thesis defence
// @Description Deletes a defence and releases its membership
// @Tags thesis-defences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Defence ID"
// @Success 204 "Defence deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid defence ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Defence not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-defences/{id} [delete]
func (c *DefenceController) DeleteDefence(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Defence ID must be a valid number")
	if !ok {
		return
	}

	if err := c.defenceService.DeleteDefence(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetDefence retrieves a defence and its membership
// @Summary Get a thesis defence
// @Description Retrieves a defence session with its assigned students and teachers
// @Tags thesis-defences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Defence ID"
// @Success 200 {object} dto.APIResponse{data=dto.DefenceResponse} "Defence retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid defence ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Defence not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-defences/{id} [get]
func (c *DefenceController) GetDefence(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Defence ID must be a valid number")
	if !ok {
		return
	}

	defence, err := c.defenceService.GetDefence(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      defence,
		Timestamp: time.Now(),
	})
}

// GetAllDefences lists every scheduled defence
// @Summary Get all thesis defences
// @Description Retrieves every scheduled defence session
// @Tags thesis-defences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.DefenceResponse} "Defences retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-defences [get]
func (c *DefenceController) GetAllDefences(ctx *gin.Context) {
	defences, err := c.defenceService.GetAllDefences(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      defences,
		Timestamp: time.Now(),
	})
}
