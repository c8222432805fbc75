package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Calabangata/Graduation-System/internal/app/models/dto"
	"github.com/Calabangata/Graduation-System/internal/app/services"
	"github.com/Calabangata/Graduation-System/internal/middleware"
)

// ReviewController handles thesis review operations
type ReviewController struct {
	reviewService *services.ReviewService
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService *services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// CreateReview files the caller's verdict on a thesis statement
// @Summary Review a thesis statement
// @Description Files the calling teacher's APPROVED or REJECTED verdict on a statement
// @Tags thesis-reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReviewRequest true "Review"
// @Success 201 {object} dto.APIResponse{data=dto.ReviewResponse} "Review created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Statement or reviewer not found"
// @Failure 409 {object} dto.ErrorResponse "Statement already reviewed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-reviews [post]
func (c *ReviewController) CreateReview(ctx *gin.Context) {
	var req dto.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid review data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	review, err := c.reviewService.CreateReview(ctx, middleware.CallerEmail(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      review,
		Timestamp: time.Now(),
	})
}

// GetReviewByStatement returns the review filed for a statement
// @Summary Get the review of a statement
// @Description Retrieves the review filed for a thesis statement
// @Tags thesis-reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param statementId path int true "Statement ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewResponse} "Review retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid statement ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /thesis-reviews/statement/{statementId} [get]
func (c *ReviewController) GetReviewByStatement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "statementId", "Statement ID must be a valid number")
	if !ok {
		return
	}

	review, err := c.reviewService.GetReviewByStatement(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      review,
		Timestamp: time.Now(),
	})
}
