package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/db"
)

// Review error types
var (
	ErrReviewNotFound = errors.New("thesis review not found")
)

// ReviewRepository handles database operations for thesis reviews
type ReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a new review
func (r *ReviewRepository) Create(ctx context.Context, review *models.ThesisReview) error {
	query := `
		INSERT INTO thesis_reviews (statement_id, reviewer_id, body, decision, uploaded_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := db.From(ctx, r.pool).QueryRow(ctx, query,
		review.StatementID, review.ReviewerID, review.Body, review.Decision, review.UploadedAt,
	).Scan(&review.ID)
	if err != nil {
		return fmt.Errorf("error creating thesis review: %w", err)
	}

	return nil
}

// GetByStatementID retrieves the review attached to a statement
func (r *ReviewRepository) GetByStatementID(ctx context.Context, statementID int64) (*models.ThesisReview, error) {
	query := `
		SELECT id, statement_id, reviewer_id, body, decision, uploaded_at
		FROM thesis_reviews
		WHERE statement_id = $1
	`

	var review models.ThesisReview
	err := db.From(ctx, r.pool).QueryRow(ctx, query, statementID).Scan(
		&review.ID,
		&review.StatementID,
		&review.ReviewerID,
		&review.Body,
		&review.Decision,
		&review.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("error retrieving thesis review: %w", err)
	}

	return &review, nil
}

// ExistsByStatementID checks whether the statement already has a review
func (r *ReviewRepository) ExistsByStatementID(ctx context.Context, statementID int64) (bool, error) {
	var exists bool
	err := db.From(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM thesis_reviews WHERE statement_id = $1)`,
		statementID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking review existence: %w", err)
	}
	return exists, nil
}

// DeleteByStatementID removes the review attached to a statement, if any
func (r *ReviewRepository) DeleteByStatementID(ctx context.Context, statementID int64) error {
	_, err := db.From(ctx, r.pool).Exec(ctx,
		`DELETE FROM thesis_reviews WHERE statement_id = $1`, statementID)
	if err != nil {
		return fmt.Errorf("error deleting review: %w", err)
	}
	return nil
}
