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

// Defence error types
var (
	ErrDefenceNotFound = errors.New("thesis defence not found")
)

// DefenceRepository handles database operations for thesis defences and
// their membership join tables
type DefenceRepository struct {
	pool *pgxpool.Pool
}

// NewDefenceRepository creates a new defence repository
func NewDefenceRepository(pool *pgxpool.Pool) *DefenceRepository {
	return &DefenceRepository{pool: pool}
}

// Create inserts a new defence and its initial membership
func (r *DefenceRepository) Create(ctx context.Context, defence *models.ThesisDefence) error {
	query := `
		INSERT INTO thesis_defences (date, location, department_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := db.From(ctx, r.pool).QueryRow(ctx, query,
		defence.Date, defence.Location, defence.DepartmentID).Scan(&defence.ID)
	if err != nil {
		return fmt.Errorf("error creating thesis defence: %w", err)
	}

	if len(defence.StudentIDs) > 0 {
		if err := r.AddStudents(ctx, defence.ID, defence.StudentIDs); err != nil {
			return err
		}
	}
	if len(defence.TeacherIDs) > 0 {
		if err := r.AddTeachers(ctx, defence.ID, defence.TeacherIDs); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a defence and loads its membership
func (r *DefenceRepository) GetByID(ctx context.Context, id int64) (*models.ThesisDefence, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate retrieves the defence row with a row lock so concurrent
// assignments to the same defence serialize. Must run inside a transaction.
func (r *DefenceRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.ThesisDefence, error) {
	return r.getByID(ctx, id, true)
}

func (r *DefenceRepository) getByID(ctx context.Context, id int64, forUpdate bool) (*models.ThesisDefence, error) {
	query := `
		SELECT id, date, location, department_id
		FROM thesis_defences
		WHERE id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var defence models.ThesisDefence
	err := db.From(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&defence.ID,
		&defence.Date,
		&defence.Location,
		&defence.DepartmentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDefenceNotFound
		}
		return nil, fmt.Errorf("error retrieving thesis defence: %w", err)
	}

	if err := r.loadMembers(ctx, &defence); err != nil {
		return nil, err
	}

	return &defence, nil
}

func (r *DefenceRepository) loadMembers(ctx context.Context, defence *models.ThesisDefence) error {
	rows, err := db.From(ctx, r.pool).Query(ctx,
		`SELECT student_id FROM defence_students WHERE defence_id = $1 ORDER BY student_id`, defence.ID)
	if err != nil {
		return fmt.Errorf("error loading defence students: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var studentID string
		if err := rows.Scan(&studentID); err != nil {
			return err
		}
		defence.StudentIDs = append(defence.StudentIDs, studentID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	teacherRows, err := db.From(ctx, r.pool).Query(ctx,
		`SELECT teacher_id FROM defence_teachers WHERE defence_id = $1 ORDER BY teacher_id`, defence.ID)
	if err != nil {
		return fmt.Errorf("error loading defence teachers: %w", err)
	}
	defer teacherRows.Close()

	for teacherRows.Next() {
		var teacherID int64
		if err := teacherRows.Scan(&teacherID); err != nil {
			return err
		}
		defence.TeacherIDs = append(defence.TeacherIDs, teacherID)
	}
	return teacherRows.Err()
}

// GetByStudentID retrieves the defence a student is assigned to
func (r *DefenceRepository) GetByStudentID(ctx context.Context, studentID string) (*models.ThesisDefence, error) {
	var defenceID int64
	err := db.From(ctx, r.pool).QueryRow(ctx,
		`SELECT defence_id FROM defence_students WHERE student_id = $1`, studentID).Scan(&defenceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDefenceNotFound
		}
		return nil, fmt.Errorf("error retrieving student defence: %w", err)
	}

	return r.GetByID(ctx, defenceID)
}

// ExistsByStudent checks whether the student was ever assigned to a defence.
// Membership is lifetime unique, so this also gates future assignments.
func (r *DefenceRepository) ExistsByStudent(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := db.From(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM defence_students WHERE student_id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking defence membership: %w", err)
	}
	return exists, nil
}

// IsTeacherAssigned checks whether the teacher sits on the defence panel of
// the student's defence
func (r *DefenceRepository) IsTeacherAssigned(ctx context.Context, studentID string, teacherID int64) (bool, error) {
	var exists bool
	err := db.From(ctx, r.pool).QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM defence_students ds
			JOIN defence_teachers dt ON dt.defence_id = ds.defence_id
			WHERE ds.student_id = $1 AND dt.teacher_id = $2
		)`, studentID, teacherID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking panel membership: %w", err)
	}
	return exists, nil
}

// AddStudents appends students to the defence membership. Conflicting rows
// are skipped so the union stays idempotent.
func (r *DefenceRepository) AddStudents(ctx context.Context, defenceID int64, studentIDs []string) error {
	for _, studentID := range studentIDs {
		_, err := db.From(ctx, r.pool).Exec(ctx, `
			INSERT INTO defence_students (defence_id, student_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, defenceID, studentID)
		if err != nil {
			return fmt.Errorf("error assigning student %s: %w", studentID, err)
		}
	}
	return nil
}

// AddTeachers appends teachers to the defence membership
func (r *DefenceRepository) AddTeachers(ctx context.Context, defenceID int64, teacherIDs []int64) error {
	for _, teacherID := range teacherIDs {
		_, err := db.From(ctx, r.pool).Exec(ctx, `
			INSERT INTO defence_teachers (defence_id, teacher_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, defenceID, teacherID)
		if err != nil {
			return fmt.Errorf("error assigning teacher %d: %w", teacherID, err)
		}
	}
	return nil
}

// Update writes the defence date and location
func (r *DefenceRepository) Update(ctx context.Context, defence *models.ThesisDefence) error {
	cmdTag, err := db.From(ctx, r.pool).Exec(ctx,
		`UPDATE thesis_defences SET date = $1, location = $2 WHERE id = $3`,
		defence.Date, defence.Location, defence.ID)
	if err != nil {
		return fmt.Errorf("error updating defence: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrDefenceNotFound
	}
	return nil
}

// ClearMembers removes all membership rows before the defence itself is
// deleted, so no orphaned join rows remain
func (r *DefenceRepository) ClearMembers(ctx context.Context, defenceID int64) error {
	if _, err := db.From(ctx, r.pool).Exec(ctx,
		`DELETE FROM defence_students WHERE defence_id = $1`, defenceID); err != nil {
		return fmt.Errorf("error clearing defence students: %w", err)
	}
	if _, err := db.From(ctx, r.pool).Exec(ctx,
		`DELETE FROM defence_teachers WHERE defence_id = $1`, defenceID); err != nil {
		return fmt.Errorf("error clearing defence teachers: %w", err)
	}
	return nil
}

// Delete removes a defence row
func (r *DefenceRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := db.From(ctx, r.pool).Exec(ctx,
		`DELETE FROM thesis_defences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting defence: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrDefenceNotFound
	}
	return nil
}

// GetAll retrieves all defences with membership loaded
func (r *DefenceRepository) GetAll(ctx context.Context) ([]*models.ThesisDefence, error) {
	rows, err := db.From(ctx, r.pool).Query(ctx,
		`SELECT id, date, location, department_id FROM thesis_defences ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing defences: %w", err)
	}
	defer rows.Close()

	var defences []*models.ThesisDefence
	for rows.Next() {
		var defence models.ThesisDefence
		if err := rows.Scan(&defence.ID, &defence.Date, &defence.Location, &defence.DepartmentID); err != nil {
			return nil, err
		}
		defences = append(defences, &defence)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, defence := range defences {
		if err := r.loadMembers(ctx, defence); err != nil {
			return nil, err
		}
	}

	return defences, nil
}
