package services

import (
	"context"
	"errors"

	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/app/models/dto"
	"github.com/Calabangata/Graduation-System/internal/app/repositories"
	"github.com/Calabangata/Graduation-System/internal/pkg/apperrors"
)

// UserService serves roster lookups and the caller's own profile
type UserService struct {
	users       UserStore
	students    StudentStore
	teachers    TeacherStore
	departments DepartmentStore
}

// NewUserService creates a new UserService
func NewUserService(users UserStore, students StudentStore, teachers TeacherStore, departments DepartmentStore) *UserService {
	return &UserService{
		users:       users,
		students:    students,
		teachers:    teachers,
		departments: departments,
	}
}

// GetProfile returns the authenticated caller's account with role-specific
// details
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError("User not found")
		}
		return nil, err
	}

	resp := &dto.ProfileResponse{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName(),
		Role:     string(user.RoleType),
	}

	switch user.RoleType {
	case models.RoleStudent:
		student, err := s.students.GetByEmail(ctx, user.Email)
		if err != nil {
			if errors.Is(err, repositories.ErrStudentNotFound) {
				return resp, nil
			}
			return nil, err
		}
		resp.FacultyNumber = student.ID
		resp.Graduated = &student.Graduated
	case models.RoleTeacher:
		teacher, err := s.teachers.GetByEmail(ctx, user.Email)
		if err != nil {
			if errors.Is(err, repositories.ErrTeacherNotFound) {
				return resp, nil
			}
			return nil, err
		}
		resp.AcademicRank = teacher.AcademicRank
		if teacher.HasDepartment() {
			department, err := s.departments.GetByID(ctx, *teacher.DepartmentID)
			if err != nil && !errors.Is(err, repositories.ErrDepartmentNotFound) {
				return nil, err
			}
			if department != nil {
				resp.Department = department.Name
			}
		}
	}

	return resp, nil
}

// GetStudent returns a student by faculty number
func (s *UserService) GetStudent(ctx context.Context, facultyNumber string) (*dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, facultyNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Student not found")
		}
		return nil, err
	}

	resp := &dto.StudentResponse{
		FacultyNumber: student.ID,
		Graduated:     student.Graduated,
	}
	if student.User != nil {
		resp.FullName = student.User.FullName()
		resp.Email = student.User.Email
	}

	if student.SupervisorID != nil {
		supervisor, err := s.teachers.GetByID(ctx, *student.SupervisorID)
		if err != nil && !errors.Is(err, repositories.ErrTeacherNotFound) {
			return nil, err
		}
		if supervisor != nil && supervisor.User != nil {
			resp.SupervisorName = supervisor.User.FullName()
		}
	}

	return resp, nil
}

// GetTeacher returns a teacher by ID
func (s *UserService) GetTeacher(ctx context.Context, teacherID int64) (*dto.TeacherResponse, error) {
	teacher, err := s.teachers.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeacherNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Teacher not found")
		}
		return nil, err
	}

	resp := &dto.TeacherResponse{
		ID:           teacher.ID,
		AcademicRank: teacher.AcademicRank,
	}
	if teacher.User != nil {
		resp.FullName = teacher.User.FullName()
		resp.Email = teacher.User.Email
	}

	if teacher.HasDepartment() {
		department, err := s.departments.GetByID(ctx, *teacher.DepartmentID)
		if err != nil && !errors.Is(err, repositories.ErrDepartmentNotFound) {
			return nil, err
		}
		if department != nil {
			resp.DepartmentName = department.Name
		}
	}

	return resp, nil
}
