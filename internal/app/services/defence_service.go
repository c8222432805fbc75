package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/app/models/dto"
	"github.com/Calabangata/Graduation-System/internal/app/repositories"
	"github.com/Calabangata/Graduation-System/internal/db"
	"github.com/Calabangata/Graduation-System/internal/pkg/apperrors"
	"github.com/Calabangata/Graduation-System/internal/pkg/logger"
)

// DefenceService schedules defence sessions and assembles their panels.
// Candidate filtering is lenient: ineligible candidates are skipped with a
// warning rather than failing the whole request.
type DefenceService struct {
	txManager    db.TxManager
	defences     DefenceStore
	departments  DepartmentStore
	students     StudentStore
	teachers     TeacherStore
	applications ApplicationStore
	statements   StatementStore
	reviews      ReviewStore

	now func() time.Time
}

// NewDefenceService creates a new DefenceService
func NewDefenceService(
	txManager db.TxManager,
	defences DefenceStore,
	departments DepartmentStore,
	students StudentStore,
	teachers TeacherStore,
	applications ApplicationStore,
	statements StatementStore,
	reviews ReviewStore,
) *DefenceService {
	return &DefenceService{
		txManager:    txManager,
		defences:     defences,
		departments:  departments,
		students:     students,
		teachers:     teachers,
		applications: applications,
		statements:   statements,
		reviews:      reviews,
		now:          time.Now,
	}
}

// CreateDefence schedules a defence session for a department. The date must
// lie in the future. Optional candidate lists are filtered for eligibility;
// ineligible candidates are dropped silently.
func (s *DefenceService) CreateDefence(ctx context.Context, req *dto.CreateDefenceRequest) (*dto.DefenceResponse, error) {
	var resp *dto.DefenceResponse

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if req.Date.Before(s.now()) {
			return apperrors.NewConflictError("Scheduled date and time must be in the future")
		}

		department, err := s.departments.GetByID(ctx, req.DepartmentID)
		if err != nil {
			if errors.Is(err, repositories.ErrDepartmentNotFound) {
				return apperrors.NewResourceNotFoundError("Department not found")
			}
			return err
		}

		defence := &models.ThesisDefence{
			Date:         req.Date,
			Location:     req.Location,
			DepartmentID: department.ID,
		}

		if len(req.StudentIDs) > 0 {
			students, err := s.students.ListByIDs(ctx, req.StudentIDs)
			if err != nil {
				return err
			}
			for _, student := range students {
				eligible, err := s.isStudentEligible(ctx, student)
				if err != nil {
					return err
				}
				if eligible {
					defence.StudentIDs = append(defence.StudentIDs, student.ID)
				}
			}
		}

		if len(req.TeacherIDs) > 0 {
			teachers, err := s.teachers.ListByIDs(ctx, req.TeacherIDs)
			if err != nil {
				return err
			}
			for _, teacher := range teachers {
				if s.isTeacherEligible(teacher, defence.DepartmentID) {
					defence.TeacherIDs = append(defence.TeacherIDs, teacher.ID)
				}
			}
		}

		if err := s.defences.Create(ctx, defence); err != nil {
			return err
		}

		resp, err = s.toResponse(ctx, defence)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("defenceId", resp.ID).
		Int("students", len(resp.Students)).
		Msg("Thesis defence scheduled")

	return resp, nil
}

// AssignStudents adds students to an existing defence by faculty number. All
// referenced students must exist; of those, at least one must be eligible.
func (s *DefenceService) AssignStudents(ctx context.Context, defenceID int64, facultyNumbers []string) (*dto.DefenceResponse, error) {
	var resp *dto.DefenceResponse

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		defence, err := s.defences.GetByIDForUpdate(ctx, defenceID)
		if err != nil {
			if errors.Is(err, repositories.ErrDefenceNotFound) {
				return apperrors.NewResourceNotFoundError("Thesis defence not found")
			}
			return err
		}

		students, err := s.students.ListByIDs(ctx, facultyNumbers)
		if err != nil {
			return err
		}
		if len(students) != len(facultyNumbers) {
			return apperrors.NewResourceNotFoundError("One or more students not found for provided faculty numbers")
		}

		var eligible []string
		for _, student := range students {
			ok, err := s.isStudentEligible(ctx, student)
			if err != nil {
				return err
			}
			if ok {
				eligible = append(eligible, student.ID)
			}
		}
		if len(eligible) == 0 {
			return apperrors.NewConflictError("No eligible students to assign for defence")
		}

		if err := s.defences.AddStudents(ctx, defence.ID, eligible); err != nil {
			return err
		}
		defence.StudentIDs = append(defence.StudentIDs, eligible...)

		resp, err = s.toResponse(ctx, defence)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// AssignTeachers adds panel members to an existing defence by email. All
// referenced teachers must exist; of those, at least one must belong to the
// defence's department.
func (s *DefenceService) AssignTeachers(ctx context.Context, defenceID int64, teacherEmails []string) (*dto.DefenceResponse, error) {
	var resp *dto.DefenceResponse

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		defence, err := s.defences.GetByIDForUpdate(ctx, defenceID)
		if err != nil {
			if errors.Is(err, repositories.ErrDefenceNotFound) {
				return apperrors.NewResourceNotFoundError("Thesis defence not found")
			}
			return err
		}

		teachers, err := s.teachers.ListByEmails(ctx, teacherEmails)
		if err != nil {
			return err
		}
		if len(teachers) != len(teacherEmails) {
			return apperrors.NewResourceNotFoundError("One or more teachers not found for provided emails")
		}

		var eligible []int64
		for _, teacher := range teachers {
			if s.isTeacherEligible(teacher, defence.DepartmentID) {
				eligible = append(eligible, teacher.ID)
			}
		}
		if len(eligible) == 0 {
			return apperrors.NewConflictError("No eligible teachers to assign for defence")
		}

		if err := s.defences.AddTeachers(ctx, defence.ID, eligible); err != nil {
			return err
		}
		defence.TeacherIDs = append(defence.TeacherIDs, eligible...)

		resp, err = s.toResponse(ctx, defence)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// UpdateDefence applies a partial update to a defence's date and location. A
// new date must lie in the future.
func (s *DefenceService) UpdateDefence(ctx context.Context, defenceID int64, req *dto.UpdateDefenceRequest) (*dto.DefenceResponse, error) {
	var resp *dto.DefenceResponse

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		defence, err := s.defences.GetByIDForUpdate(ctx, defenceID)
		if err != nil {
			if errors.Is(err, repositories.ErrDefenceNotFound) {
				return apperrors.NewResourceNotFoundError("Thesis defence not found")
			}
			return err
		}

		if req.Date != nil && req.Date.Before(s.now()) {
			return apperrors.NewConflictError("Scheduled date and time must be in the future")
		}

		if req.Date != nil {
			defence.Date = *req.Date
		}
		if req.Location != nil {
			defence.Location = *req.Location
		}

		if err := s.defences.Update(ctx, defence); err != nil {
			return err
		}
		logger.Info().Int64("defenceId", defence.ID).Msg("Thesis defence updated")

		resp, err = s.toResponse(ctx, defence)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// DeleteDefence removes a defence and releases its membership
func (s *DefenceService) DeleteDefence(ctx context.Context, defenceID int64) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.defences.GetByIDForUpdate(ctx, defenceID); err != nil {
			if errors.Is(err, repositories.ErrDefenceNotFound) {
				return apperrors.NewResourceNotFoundError("Thesis defence not found")
			}
			return err
		}

		if err := s.defences.ClearMembers(ctx, defenceID); err != nil {
			return err
		}
		if err := s.defences.Delete(ctx, defenceID); err != nil {
			return err
		}

		logger.Info().Int64("defenceId", defenceID).Msg("Thesis defence deleted")
		return nil
	})
}

// GetDefence returns a defence and its membership
func (s *DefenceService) GetDefence(ctx context.Context, defenceID int64) (*dto.DefenceResponse, error) {
	defence, err := s.defences.GetByID(ctx, defenceID)
	if err != nil {
		if errors.Is(err, repositories.ErrDefenceNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Thesis defence not found")
		}
		return nil, err
	}
	return s.toResponse(ctx, defence)
}

// GetAllDefences returns every scheduled defence
func (s *DefenceService) GetAllDefences(ctx context.Context) ([]*dto.DefenceResponse, error) {
	defences, err := s.defences.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.DefenceResponse, 0, len(defences))
	for _, defence := range defences {
		resp, err := s.toResponse(ctx, defence)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// isStudentEligible reports whether a student may join a defence: not yet
// graduated, never assigned to a defence before, and holding an approved
// review on the statement of their active application.
func (s *DefenceService) isStudentEligible(ctx context.Context, student *models.Student) (bool, error) {
	if student.Graduated {
		logger.Warn().Str("studentId", student.ID).Msg("Student has already graduated. Skipped")
		return false, nil
	}

	assigned, err := s.defences.ExistsByStudent(ctx, student.ID)
	if err != nil {
		return false, err
	}
	if assigned {
		logger.Warn().Str("studentId", student.ID).Msg("Student is already assigned to a defence. Skipped")
		return false, nil
	}

	application, err := s.applications.GetActiveByStudentID(ctx, student.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			logger.Warn().Str("studentId", student.ID).Msg("Student is not eligible for defence (missing/invalid review). Skipped")
			return false, nil
		}
		return false, err
	}

	statement, err := s.statements.GetByApplicationID(ctx, application.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrStatementNotFound) {
			logger.Warn().Str("studentId", student.ID).Msg("Student is not eligible for defence (missing/invalid review). Skipped")
			return false, nil
		}
		return false, err
	}

	review, err := s.reviews.GetByStatementID(ctx, statement.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			logger.Warn().Str("studentId", student.ID).Msg("Student is not eligible for defence (missing/invalid review). Skipped")
			return false, nil
		}
		return false, err
	}

	return review.Decision == string(models.ApprovalApproved), nil
}

// isTeacherEligible reports whether a teacher may sit on a defence panel: the
// teacher must belong to the defence's department.
func (s *DefenceService) isTeacherEligible(teacher *models.Teacher, departmentID int64) bool {
	if !teacher.HasDepartment() {
		logger.Warn().Int64("teacherId", teacher.ID).Msg("Teacher has no department assigned. Skipped")
		return false
	}
	if *teacher.DepartmentID != departmentID {
		logger.Warn().Int64("teacherId", teacher.ID).Msg("Teacher does not belong to the same department as the defence. Skipped")
		return false
	}
	return true
}

func (s *DefenceService) toResponse(ctx context.Context, defence *models.ThesisDefence) (*dto.DefenceResponse, error) {
	studentNames := make(map[string]string, len(defence.StudentIDs))
	if len(defence.StudentIDs) > 0 {
		students, err := s.students.ListByIDs(ctx, defence.StudentIDs)
		if err != nil {
			return nil, err
		}
		for _, student := range students {
			studentNames[student.ID] = student.User.FullName()
		}
	}

	teacherNames := make(map[string]string, len(defence.TeacherIDs))
	if len(defence.TeacherIDs) > 0 {
		teachers, err := s.teachers.ListByIDs(ctx, defence.TeacherIDs)
		if err != nil {
			return nil, err
		}
		for _, teacher := range teachers {
			teacherNames[teacher.User.Email] = teacher.User.FullName()
		}
	}

	return &dto.DefenceResponse{
		ID:       defence.ID,
		Date:     defence.Date,
		Location: defence.Location,
		Students: studentNames,
		Teachers: teacherNames,
		Message:  fmt.Sprintf("Defence scheduled with %d students.", len(studentNames)),
	}, nil
}
