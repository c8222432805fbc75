package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/db"
)

// VoteRepository handles database operations for committee votes
type VoteRepository struct {
	pool *pgxpool.Pool
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(pool *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{pool: pool}
}

// Create records a teacher's vote. The unique (approval_id, teacher_id)
// constraint is the backstop against double votes slipping past the service
// check.
func (r *VoteRepository) Create(ctx context.Context, vote *models.TeacherVote) error {
	query := `
		INSERT INTO teacher_votes (approval_id, teacher_id, decision)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := db.From(ctx, r.pool).QueryRow(ctx, query,
		vote.ApprovalID, vote.TeacherID, vote.Decision).Scan(&vote.ID)
	if err != nil {
		return fmt.Errorf("error recording vote: %w", err)
	}

	return nil
}

// ExistsByApprovalAndTeacher checks whether the teacher already voted on the
// approval
func (r *VoteRepository) ExistsByApprovalAndTeacher(ctx context.Context, approvalID, teacherID int64) (bool, error) {
	var exists bool
	err := db.From(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM teacher_votes WHERE approval_id = $1 AND teacher_id = $2)`,
		approvalID, teacherID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking vote existence: %w", err)
	}
	return exists, nil
}

// CountByApproval returns how many votes the approval has received
func (r *VoteRepository) CountByApproval(ctx context.Context, approvalID int64) (int, error) {
	var count int
	err := db.From(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM teacher_votes WHERE approval_id = $1`, approvalID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting votes: %w", err)
	}
	return count, nil
}

// ListByApproval retrieves all votes cast on the approval
func (r *VoteRepository) ListByApproval(ctx context.Context, approvalID int64) ([]*models.TeacherVote, error) {
	query := `
		SELECT id, approval_id, teacher_id, decision
		FROM teacher_votes
		WHERE approval_id = $1
		ORDER BY id
	`

	rows, err := db.From(ctx, r.pool).Query(ctx, query, approvalID)
	if err != nil {
		return nil, fmt.Errorf("error listing votes: %w", err)
	}
	defer rows.Close()

	var votes []*models.TeacherVote
	for rows.Next() {
		var vote models.TeacherVote
		if err := rows.Scan(&vote.ID, &vote.ApprovalID, &vote.TeacherID, &vote.Decision); err != nil {
			return nil, err
		}
		votes = append(votes, &vote)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return votes, nil
}

// DeleteByApproval removes every vote cast on an approval, used when an
// application is withdrawn
func (r *VoteRepository) DeleteByApproval(ctx context.Context, approvalID int64) error {
	_, err := db.From(ctx, r.pool).Exec(ctx,
		`DELETE FROM teacher_votes WHERE approval_id = $1`, approvalID)
	if err != nil {
		return fmt.Errorf("error deleting votes: %w", err)
	}
	return nil
}
