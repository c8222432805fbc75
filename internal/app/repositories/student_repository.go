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

// Student error types
var (
	ErrStudentNotFound = errors.New("student not found")
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `
	s.id, s.user_id, s.graduated, s.supervisor_id,
	u.id, u.email, u.password, u.first_name, u.last_name, u.role_type, u.created_at, u.updated_at
`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var user models.User
	err := row.Scan(
		&student.ID,
		&student.UserID,
		&student.Graduated,
		&student.SupervisorID,
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.RoleType,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	student.User = &user
	return &student, nil
}

// Create inserts a new student keyed by faculty number
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (id, user_id, graduated)
		VALUES ($1, $2, $3)
	`

	_, err := db.From(ctx, r.pool).Exec(ctx, query, student.ID, student.UserID, student.Graduated)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student with its user row by faculty number
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1
	`

	student, err := scanStudent(db.From(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByEmail retrieves a student by the email of its user account
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE u.email = $1
	`

	student, err := scanStudent(db.From(ctx, r.pool).QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// ExistsByID checks whether a student with the given faculty number exists
func (r *StudentRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := db.From(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}

// ListByIDs retrieves all students matching the given faculty numbers
func (r *StudentRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = ANY($1)
	`

	rows, err := db.From(ctx, r.pool).Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// SetGraduated marks a student as graduated
func (r *StudentRepository) SetGraduated(ctx context.Context, id string, graduated bool) error {
	cmdTag, err := db.From(ctx, r.pool).Exec(ctx,
		`UPDATE students SET graduated = $1 WHERE id = $2`, graduated, id)
	if err != nil {
		return fmt.Errorf("error updating student graduation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// SetSupervisor registers the student under a supervisor's roster
func (r *StudentRepository) SetSupervisor(ctx context.Context, id string, teacherID int64) error {
	cmdTag, err := db.From(ctx, r.pool).Exec(ctx,
		`UPDATE students SET supervisor_id = $1 WHERE id = $2`, teacherID, id)
	if err != nil {
		return fmt.Errorf("error updating student supervisor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}
