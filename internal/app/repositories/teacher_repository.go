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

// Teacher error types
var (
	ErrTeacherNotFound = errors.New("teacher not found")
)

// TeacherRepository handles database operations for teachers
type TeacherRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{pool: pool}
}

const teacherColumns = `
	t.id, t.user_id, t.department_id, t.academic_rank,
	u.id, u.email, u.password, u.first_name, u.last_name, u.role_type, u.created_at, u.updated_at
`

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	var teacher models.Teacher
	var user models.User
	err := row.Scan(
		&teacher.ID,
		&teacher.UserID,
		&teacher.DepartmentID,
		&teacher.AcademicRank,
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
	teacher.User = &user
	return &teacher, nil
}

// Create inserts a new teacher and sets its generated ID
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (user_id, department_id, academic_rank)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := db.From(ctx, r.pool).QueryRow(ctx, query,
		teacher.UserID, teacher.DepartmentID, teacher.AcademicRank).Scan(&teacher.ID)
	if err != nil {
		return fmt.Errorf("error creating teacher: %w", err)
	}

	return nil
}

// GetByID retrieves a teacher with its user row
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := `
		SELECT ` + teacherColumns + `
		FROM teachers t
		JOIN users u ON u.id = t.user_id
		WHERE t.id = $1
	`

	teacher, err := scanTeacher(db.From(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return teacher, nil
}

// GetByEmail retrieves a teacher by the email of its user account
func (r *TeacherRepository) GetByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	query := `
		SELECT ` + teacherColumns + `
		FROM teachers t
		JOIN users u ON u.id = t.user_id
		WHERE u.email = $1
	`

	teacher, err := scanTeacher(db.From(ctx, r.pool).QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return teacher, nil
}

// ListByEmails retrieves all teachers whose user emails are in the given set
func (r *TeacherRepository) ListByEmails(ctx context.Context, emails []string) ([]*models.Teacher, error) {
	query := `
		SELECT ` + teacherColumns + `
		FROM teachers t
		JOIN users u ON u.id = t.user_id
		WHERE u.email = ANY($1)
	`

	rows, err := db.From(ctx, r.pool).Query(ctx, query, emails)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teachers, nil
}

// ListByIDs retrieves all teachers matching the given IDs
func (r *TeacherRepository) ListByIDs(ctx context.Context, ids []int64) ([]*models.Teacher, error) {
	query := `
		SELECT ` + teacherColumns + `
		FROM teachers t
		JOIN users u ON u.id = t.user_id
		WHERE t.id = ANY($1)
	`

	rows, err := db.From(ctx, r.pool).Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teachers, nil
}

// CountByDepartment returns the size of a department's teacher roster, which
// is the voting quorum for approvals owned by that department
func (r *TeacherRepository) CountByDepartment(ctx context.Context, departmentID int64) (int, error) {
	var count int
	err := db.From(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM teachers WHERE department_id = $1`, departmentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting department teachers: %w", err)
	}
	return count, nil
}

// SetDepartment assigns a teacher to a department
func (r *TeacherRepository) SetDepartment(ctx context.Context, teacherID, departmentID int64) error {
	cmdTag, err := db.From(ctx, r.pool).Exec(ctx,
		`UPDATE teachers SET department_id = $1 WHERE id = $2`, departmentID, teacherID)
	if err != nil {
		return fmt.Errorf("error updating teacher department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrTeacherNotFound
	}
	return nil
}
