package models

import "time"

// ThesisReview defines a reviewer's verdict on a statement based on the
// 'thesis_reviews' table. At most one review per statement; the decision is
// stored as the literal "APPROVED" or "REJECTED" string.
type ThesisReview struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	StatementID int64     `json:"statementId" db:"statement_id"`
	ReviewerID  int64     `json:"reviewerId" db:"reviewer_id"`
	Body        string    `json:"body" db:"body"`
	Decision    string    `json:"decision" db:"decision" example:"APPROVED"`
	UploadedAt  time.Time `json:"uploadedAt" db:"uploaded_at"`
}
