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

// Statement error types
var (
	ErrStatementNotFound = errors.New("thesis statement not found")
)

// StatementRepository handles database operations for thesis statements
type StatementRepository struct {
	pool *pgxpool.Pool
}

// NewStatementRepository creates a new statement repository
func NewStatementRepository(pool *pgxpool.Pool) *StatementRepository {
	return &StatementRepository{pool: pool}
}

const statementColumns = `id, application_id, title, body, grade`

func scanStatement(row pgx.Row) (*models.ThesisStatement, error) {
	var statement models.ThesisStatement
	err := row.Scan(
		&statement.ID,
		&statement.ApplicationID,
		&statement.Title,
		&statement.Body,
		&statement.Grade,
	)
	if err != nil {
		return nil, err
	}
	return &statement, nil
}

// Create inserts a new ungraded statement
func (r *StatementRepository) Create(ctx context.Context, statement *models.ThesisStatement) error {
	query := `
		INSERT INTO thesis_statements (application_id, title, body)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := db.From(ctx, r.pool).QueryRow(ctx, query,
		statement.ApplicationID, statement.Title, statement.Body).Scan(&statement.ID)
	if err != nil {
		return fmt.Errorf("error creating thesis statement: %w", err)
	}

	return nil
}

// GetByID retrieves a statement by ID
func (r *StatementRepository) GetByID(ctx context.Context, id int64) (*models.ThesisStatement, error) {
	query := `SELECT ` + statementColumns + ` FROM thesis_statements WHERE id = $1`

	statement, err := scanStatement(db.From(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatementNotFound
		}
		return nil, fmt.Errorf("error retrieving thesis statement: %w", err)
	}

	return statement, nil
}

// GetByApplicationID retrieves the statement attached to an application
func (r *StatementRepository) GetByApplicationID(ctx context.Context, applicationID int64) (*models.ThesisStatement, error) {
	query := `SELECT ` + statementColumns + ` FROM thesis_statements WHERE application_id = $1`

	statement, err := scanStatement(db.From(ctx, r.pool).QueryRow(ctx, query, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatementNotFound
		}
		return nil, fmt.Errorf("error retrieving thesis statement: %w", err)
	}

	return statement, nil
}

// GetByApplicationIDForUpdate retrieves the statement row with a row lock so
// a concurrent grading attempt on the same statement serializes behind it.
// Must run inside a transaction.
func (r *StatementRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID int64) (*models.ThesisStatement, error) {
	query := `SELECT ` + statementColumns + ` FROM thesis_statements WHERE application_id = $1 FOR UPDATE`

	statement, err := scanStatement(db.From(ctx, r.pool).QueryRow(ctx, query, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatementNotFound
		}
		return nil, fmt.Errorf("error retrieving thesis statement: %w", err)
	}

	return statement, nil
}

// ExistsByApplicationID checks whether the application already has a statement
func (r *StatementRepository) ExistsByApplicationID(ctx context.Context, applicationID int64) (bool, error) {
	var exists bool
	err := db.From(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM thesis_statements WHERE application_id = $1)`,
		applicationID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking statement existence: %w", err)
	}
	return exists, nil
}

// SetGrade writes the final grade. The grade column never changes once set.
func (r *StatementRepository) SetGrade(ctx context.Context, id int64, grade int) error {
	cmdTag, err := db.From(ctx, r.pool).Exec(ctx,
		`UPDATE thesis_statements SET grade = $1 WHERE id = $2 AND grade IS NULL`, grade, id)
	if err != nil {
		return fmt.Errorf("error grading statement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrStatementNotFound
	}
	return nil
}

// ListByGradeRange retrieves graded statements with grade in [min, max]
func (r *StatementRepository) ListByGradeRange(ctx context.Context, min, max int) ([]*models.ThesisStatement, error) {
	query := `
		SELECT ` + statementColumns + `
		FROM thesis_statements
		WHERE grade BETWEEN $1 AND $2
		ORDER BY id
	`

	rows, err := db.From(ctx, r.pool).Query(ctx, query, min, max)
	if err != nil {
		return nil, fmt.Errorf("error listing statements: %w", err)
	}
	defer rows.Close()

	var statements []*models.ThesisStatement
	for rows.Next() {
		statement, err := scanStatement(rows)
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statements, nil
}

// Delete removes a statement row
func (r *StatementRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := db.From(ctx, r.pool).Exec(ctx,
		`DELETE FROM thesis_statements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting statement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrStatementNotFound
	}
	return nil
}
