package services

import (
	"context"
	"errors"
	"time"

	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/app/models/dto"
	"github.com/Calabangata/Graduation-System/internal/app/repositories"
	"github.com/Calabangata/Graduation-System/internal/db"
	"github.com/Calabangata/Graduation-System/internal/pkg/apperrors"
)

// ReviewService handles reviewer verdicts on thesis statements. The review's
// APPROVED decision is the gate a student must pass to join a defence.
type ReviewService struct {
	txManager  db.TxManager
	statements StatementStore
	reviews    ReviewStore
	teachers   TeacherStore

	now func() time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(txManager db.TxManager, statements StatementStore, reviews ReviewStore, teachers TeacherStore) *ReviewService {
	return &ReviewService{
		txManager:  txManager,
		statements: statements,
		reviews:    reviews,
		teachers:   teachers,
		now:        time.Now,
	}
}

// CreateReview files the caller's verdict on a thesis statement. Each
// statement gets exactly one review.
func (s *ReviewService) CreateReview(ctx context.Context, reviewerEmail string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	var resp *dto.ReviewResponse

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		statement, err := s.statements.GetByID(ctx, req.StatementID)
		if err != nil {
			if errors.Is(err, repositories.ErrStatementNotFound) {
				return apperrors.NewResourceNotFoundError("Thesis statement not found")
			}
			return err
		}

		reviewer, err := s.teachers.GetByEmail(ctx, reviewerEmail)
		if err != nil {
			if errors.Is(err, repositories.ErrTeacherNotFound) {
				return apperrors.NewResourceNotFoundError("Reviewer not found or not owned by current user")
			}
			return err
		}

		exists, err := s.reviews.ExistsByStatementID(ctx, statement.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.NewConflictError("Thesis statement has already been reviewed")
		}

		decision := string(models.ApprovalRejected)
		if req.ApprovalDecision != nil && *req.ApprovalDecision {
			decision = string(models.ApprovalApproved)
		}

		review := &models.ThesisReview{
			StatementID: statement.ID,
			ReviewerID:  reviewer.ID,
			Body:        req.Body,
			Decision:    decision,
			UploadedAt:  s.now(),
		}
		if err := s.reviews.Create(ctx, review); err != nil {
			return err
		}

		resp = &dto.ReviewResponse{
			ID:           review.ID,
			Body:         review.Body,
			Decision:     review.Decision,
			ReviewerName: reviewer.User.FullName(),
			UploadedAt:   review.UploadedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// GetReviewByStatement returns the review filed for a statement
func (s *ReviewService) GetReviewByStatement(ctx context.Context, statementID int64) (*dto.ReviewResponse, error) {
	review, err := s.reviews.GetByStatementID(ctx, statementID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Thesis review not found")
		}
		return nil, err
	}

	reviewer, err := s.teachers.GetByID(ctx, review.ReviewerID)
	if err != nil {
		return nil, err
	}

	return &dto.ReviewResponse{
		ID:           review.ID,
		Body:         review.Body,
		Decision:     review.Decision,
		ReviewerName: reviewer.User.FullName(),
		UploadedAt:   review.UploadedAt,
	}, nil
}
