package services

import (
	"context"
	"errors"

	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/app/models/dto"
	"github.com/Calabangata/Graduation-System/internal/app/repositories"
	"github.com/Calabangata/Graduation-System/internal/db"
	"github.com/Calabangata/Graduation-System/internal/pkg/apperrors"
	"github.com/Calabangata/Graduation-System/internal/pkg/logger"
)

// DepartmentService manages departments and their teacher rosters
type DepartmentService struct {
	txManager   db.TxManager
	departments DepartmentStore
	teachers    TeacherStore
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(txManager db.TxManager, departments DepartmentStore, teachers TeacherStore) *DepartmentService {
	return &DepartmentService{
		txManager:   txManager,
		departments: departments,
		teachers:    teachers,
	}
}

// CreateDepartment creates a department with a unique name
func (s *DepartmentService) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department := &models.Department{Name: req.Name}

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.departments.Create(ctx, department); err != nil {
			if errors.Is(err, repositories.ErrDepartmentAlreadyExists) {
				return apperrors.NewConflictError("Department with this name already exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("departmentId", department.ID).Str("name", department.Name).Msg("Department created")

	return &dto.DepartmentResponse{ID: department.ID, Name: department.Name}, nil
}

// AssignTeacher moves a teacher into a department. The roster size defines
// the voting quorum for approvals owned by the department.
func (s *DepartmentService) AssignTeacher(ctx context.Context, departmentID, teacherID int64) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
			if errors.Is(err, repositories.ErrDepartmentNotFound) {
				return apperrors.NewResourceNotFoundError("Department not found")
			}
			return err
		}

		if _, err := s.teachers.GetByID(ctx, teacherID); err != nil {
			if errors.Is(err, repositories.ErrTeacherNotFound) {
				return apperrors.NewResourceNotFoundError("Teacher not found")
			}
			return err
		}

		return s.teachers.SetDepartment(ctx, teacherID, departmentID)
	})
}

// GetDepartment returns a department with its roster size
func (s *DepartmentService) GetDepartment(ctx context.Context, departmentID int64) (*dto.DepartmentResponse, error) {
	department, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Department not found")
		}
		return nil, err
	}

	return s.toResponse(ctx, department)
}

// GetAllDepartments returns every department with its roster size
func (s *DepartmentService) GetAllDepartments(ctx context.Context) ([]*dto.DepartmentResponse, error) {
	departments, err := s.departments.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		resp, err := s.toResponse(ctx, department)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *DepartmentService) toResponse(ctx context.Context, department *models.Department) (*dto.DepartmentResponse, error) {
	size, err := s.teachers.CountByDepartment(ctx, department.ID)
	if err != nil {
		return nil, err
	}
	return &dto.DepartmentResponse{
		ID:          department.ID,
		Name:        department.Name,
		TeacherSize: size,
	}, nil
}
