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

// Application error types
var (
	ErrApplicationNotFound = errors.New("thesis application not found")
)

// ApplicationRepository handles database operations for thesis applications
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

const applicationColumns = `id, topic, purpose, tasks, tech_stack, active, student_id, supervisor_id`

func scanApplication(row pgx.Row) (*models.ThesisApplication, error) {
	var app models.ThesisApplication
	err := row.Scan(
		&app.ID,
		&app.Topic,
		&app.Purpose,
		&app.Tasks,
		&app.TechStack,
		&app.Active,
		&app.StudentID,
		&app.SupervisorID,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Create inserts a new application and sets its generated ID
func (r *ApplicationRepository) Create(ctx context.Context, app *models.ThesisApplication) error {
	query := `
		INSERT INTO thesis_applications (topic, purpose, tasks, tech_stack, active, student_id, supervisor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := db.From(ctx, r.pool).QueryRow(ctx, query,
		app.Topic, app.Purpose, app.Tasks, app.TechStack, app.Active, app.StudentID, app.SupervisorID,
	).Scan(&app.ID)
	if err != nil {
		return fmt.Errorf("error creating thesis application: %w", err)
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.ThesisApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM thesis_applications WHERE id = $1`

	app, err := scanApplication(db.From(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving thesis application: %w", err)
	}

	return app, nil
}

// HasActiveByStudent checks whether the student already has an active application
func (r *ApplicationRepository) HasActiveByStudent(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := db.From(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM thesis_applications WHERE student_id = $1 AND active)`,
		studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking active application: %w", err)
	}
	return exists, nil
}

// GetActiveByStudentEmail retrieves the active application of the student
// owning the given account email
func (r *ApplicationRepository) GetActiveByStudentEmail(ctx context.Context, email string) (*models.ThesisApplication, error) {
	query := `
		SELECT a.id, a.topic, a.purpose, a.tasks, a.tech_stack, a.active, a.student_id, a.supervisor_id
		FROM thesis_applications a
		JOIN students s ON s.id = a.student_id
		JOIN users u ON u.id = s.user_id
		WHERE u.email = $1 AND a.active
	`

	app, err := scanApplication(db.From(ctx, r.pool).QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving active application: %w", err)
	}

	return app, nil
}

// GetActiveByStudentID retrieves the student's active application
func (r *ApplicationRepository) GetActiveByStudentID(ctx context.Context, studentID string) (*models.ThesisApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM thesis_applications WHERE student_id = $1 AND active`

	app, err := scanApplication(db.From(ctx, r.pool).QueryRow(ctx, query, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving active application: %w", err)
	}

	return app, nil
}

// Deactivate marks an application inactive, typically after graduation
func (r *ApplicationRepository) Deactivate(ctx context.Context, id int64) error {
	cmdTag, err := db.From(ctx, r.pool).Exec(ctx,
		`UPDATE thesis_applications SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating application: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// Delete removes an application row
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := db.From(ctx, r.pool).Exec(ctx,
		`DELETE FROM thesis_applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting application: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// GetAll retrieves all applications
func (r *ApplicationRepository) GetAll(ctx context.Context) ([]*models.ThesisApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM thesis_applications ORDER BY id`
	return r.queryMany(ctx, query)
}

// ListByStudent retrieves all applications ever submitted by a student
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.ThesisApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM thesis_applications WHERE student_id = $1 ORDER BY id`
	return r.queryMany(ctx, query, studentID)
}

// ListBySupervisorAndStatus retrieves a supervisor's applications filtered by
// approval status
func (r *ApplicationRepository) ListBySupervisorAndStatus(ctx context.Context, supervisorID int64, status models.ApprovalStatus) ([]*models.ThesisApplication, error) {
	query := `
		SELECT a.id, a.topic, a.purpose, a.tasks, a.tech_stack, a.active, a.student_id, a.supervisor_id
		FROM thesis_applications a
		JOIN thesis_approvals ap ON ap.application_id = a.id
		WHERE a.supervisor_id = $1 AND ap.status = $2
		ORDER BY a.id
	`
	return r.queryMany(ctx, query, supervisorID, status)
}

// SearchByTopic retrieves applications whose topic contains the keyword
func (r *ApplicationRepository) SearchByTopic(ctx context.Context, keyword string) ([]*models.ThesisApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM thesis_applications WHERE topic ILIKE '%' || $1 || '%' ORDER BY id`
	return r.queryMany(ctx, query, keyword)
}

func (r *ApplicationRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.ThesisApplication, error) {
	rows, err := db.From(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.ThesisApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}
