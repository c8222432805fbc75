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

// Approval error types
var (
	ErrApprovalNotFound = errors.New("thesis approval not found")
)

// ApprovalRepository handles database operations for thesis approvals
type ApprovalRepository struct {
	pool *pgxpool.Pool
}

// NewApprovalRepository creates a new approval repository
func NewApprovalRepository(pool *pgxpool.Pool) *ApprovalRepository {
	return &ApprovalRepository{pool: pool}
}

// Create inserts the approval paired with a newly submitted application
func (r *ApprovalRepository) Create(ctx context.Context, approval *models.ThesisApproval) error {
	query := `
		INSERT INTO thesis_approvals (application_id, department_id, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := db.From(ctx, r.pool).QueryRow(ctx, query,
		approval.ApplicationID, approval.DepartmentID, approval.Status).Scan(&approval.ID)
	if err != nil {
		return fmt.Errorf("error creating thesis approval: %w", err)
	}

	return nil
}

// GetByApplicationID retrieves the approval attached to an application
func (r *ApprovalRepository) GetByApplicationID(ctx context.Context, applicationID int64) (*models.ThesisApproval, error) {
	return r.getByApplicationID(ctx, applicationID, false)
}

// GetByApplicationIDForUpdate retrieves the approval row with a row lock so a
// concurrent vote or evaluation on the same application serializes behind it.
// Must run inside a transaction.
func (r *ApprovalRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID int64) (*models.ThesisApproval, error) {
	return r.getByApplicationID(ctx, applicationID, true)
}

func (r *ApprovalRepository) getByApplicationID(ctx context.Context, applicationID int64, forUpdate bool) (*models.ThesisApproval, error) {
	query := `
		SELECT id, application_id, department_id, status
		FROM thesis_approvals
		WHERE application_id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var approval models.ThesisApproval
	err := db.From(ctx, r.pool).QueryRow(ctx, query, applicationID).Scan(
		&approval.ID,
		&approval.ApplicationID,
		&approval.DepartmentID,
		&approval.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApprovalNotFound
		}
		return nil, fmt.Errorf("error retrieving thesis approval: %w", err)
	}

	return &approval, nil
}

// UpdateStatus durably resolves an approval to APPROVED or REJECTED
func (r *ApprovalRepository) UpdateStatus(ctx context.Context, id int64, status models.ApprovalStatus) error {
	cmdTag, err := db.From(ctx, r.pool).Exec(ctx,
		`UPDATE thesis_approvals SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating approval status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrApprovalNotFound
	}
	return nil
}

// Delete removes an approval row
func (r *ApprovalRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := db.From(ctx, r.pool).Exec(ctx,
		`DELETE FROM thesis_approvals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting approval: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrApprovalNotFound
	}
	return nil
}
