package dto

// CreateStatementRequest is the payload for submitting a thesis statement
type CreateStatementRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// GradeStatementRequest is the payload for grading a statement after defence
type GradeStatementRequest struct {
	StudentID string `json:"studentId" binding:"required" example:"F048291"`
	Grade     int    `json:"grade" binding:"required" example:"5"`
}

// StatementResponse describes a thesis statement
type StatementResponse struct {
	ID            int64  `json:"id" example:"1"`
	ApplicationID int64  `json:"applicationId"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	Grade         *int   `json:"grade,omitempty" example:"5"`
}
