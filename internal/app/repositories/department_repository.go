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

// Department error types
var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDepartmentAlreadyExists = errors.New("department with this name already exists")
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(pool *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

// Create inserts a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	var exists bool
	err := db.From(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM departments WHERE name = $1)`, department.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking department uniqueness: %w", err)
	}
	if exists {
		return ErrDepartmentAlreadyExists
	}

	query := `
		INSERT INTO departments (name)
		VALUES ($1)
		RETURNING id
	`

	if err := db.From(ctx, r.pool).QueryRow(ctx, query, department.Name).Scan(&department.ID); err != nil {
		return fmt.Errorf("error creating department: %w", err)
	}

	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	var department models.Department
	err := db.From(ctx, r.pool).QueryRow(ctx,
		`SELECT id, name FROM departments WHERE id = $1`, id).Scan(&department.ID, &department.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &department, nil
}

// GetByName retrieves a department by name
func (r *DepartmentRepository) GetByName(ctx context.Context, name string) (*models.Department, error) {
	var department models.Department
	err := db.From(ctx, r.pool).QueryRow(ctx,
		`SELECT id, name FROM departments WHERE name = $1`, name).Scan(&department.ID, &department.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &department, nil
}

// GetAll retrieves all departments
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	rows, err := db.From(ctx, r.pool).Query(ctx, `SELECT id, name FROM departments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.ID, &department.Name); err != nil {
			return nil, err
		}
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}
