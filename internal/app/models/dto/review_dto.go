package dto

import "time"

// CreateReviewRequest is the payload for reviewing a thesis statement
type CreateReviewRequest struct {
	StatementID      int64  `json:"statementId" binding:"required" example:"1"`
	Title            string `json:"title"`
	Body             string `json:"body" binding:"required"`
	ApprovalDecision *bool  `json:"approvalDecision" binding:"required" example:"true"`
}

// ReviewResponse describes a stored review
type ReviewResponse struct {
	ID           int64     `json:"id" example:"1"`
	Body         string    `json:"body"`
	Decision     string    `json:"decision" example:"APPROVED"`
	ReviewerName string    `json:"reviewerName"`
	UploadedAt   time.Time `json:"uploadedAt"`
}
