package services

import (
	"context"
	"errors"
	"time"

	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/app/models/dto"
	"github.com/Calabangata/Graduation-System/internal/app/repositories"
	"github.com/Calabangata/Graduation-System/internal/db"
	"github.com/Calabangata/Graduation-System/internal/pkg/apperrors"
	"github.com/Calabangata/Graduation-System/internal/pkg/logger"
)

// Grades follow the Bulgarian 2..6 scale; 3 is the lowest passing grade.
const (
	MinGrade     = 2
	MaxGrade     = 6
	PassingGrade = 3
)

// StatementService handles thesis statement creation, grading and the
// graduation side effects of a passing grade
type StatementService struct {
	txManager    db.TxManager
	applications ApplicationStore
	approvals    ApprovalStore
	statements   StatementStore
	reviews      ReviewStore
	students     StudentStore
	teachers     TeacherStore
	defences     DefenceStore

	// now is swappable for tests
	now func() time.Time
}

// NewStatementService creates a new StatementService
func NewStatementService(
	txManager db.TxManager,
	applications ApplicationStore,
	approvals ApprovalStore,
	statements StatementStore,
	reviews ReviewStore,
	students StudentStore,
	teachers TeacherStore,
	defences DefenceStore,
) *StatementService {
	return &StatementService{
		txManager:    txManager,
		applications: applications,
		approvals:    approvals,
		statements:   statements,
		reviews:      reviews,
		students:     students,
		teachers:     teachers,
		defences:     defences,
		now:          time.Now,
	}
}

// CreateStatement files the thesis document for the caller's active
// application. The application must be approved by the committee and must not
// already have a statement.
func (s *StatementService) CreateStatement(ctx context.Context, studentEmail string, req *dto.CreateStatementRequest) (*dto.StatementResponse, error) {
	var statement *models.ThesisStatement

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		application, err := s.applications.GetActiveByStudentEmail(ctx, studentEmail)
		if err != nil {
			if errors.Is(err, repositories.ErrApplicationNotFound) {
				return apperrors.NewResourceNotFoundError("Thesis application not found or not owned by current user")
			}
			return err
		}

		approval, err := s.approvals.GetByApplicationID(ctx, application.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrApprovalNotFound) {
				return apperrors.NewResourceNotFoundError("Thesis approval not found")
			}
			return err
		}
		if approval.Status != models.ApprovalApproved {
			return apperrors.NewForbiddenError("Thesis application is not approved")
		}

		exists, err := s.statements.ExistsByApplicationID(ctx, application.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.NewConflictError("Thesis statement already exists for this application")
		}

		statement = &models.ThesisStatement{
			ApplicationID: application.ID,
			Title:         req.Title,
			Body:          req.Body,
		}
		return s.statements.Create(ctx, statement)
	})
	if err != nil {
		return nil, err
	}

	return toStatementResponse(statement), nil
}

// GradeStatement records the final grade a defence-panel teacher gives a
// student's thesis. The student's defence must have occurred, the grader must
// sit on that defence's panel, and the statement must still be ungraded. A
// passing grade graduates the student and closes the active application in
// the same transaction.
func (s *StatementService) GradeStatement(ctx context.Context, teacherEmail string, req *dto.GradeStatementRequest) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		teacher, err := s.teachers.GetByEmail(ctx, teacherEmail)
		if err != nil {
			if errors.Is(err, repositories.ErrTeacherNotFound) {
				return apperrors.NewResourceNotFoundError("Teacher not found")
			}
			return err
		}

		student, err := s.students.GetByID(ctx, req.StudentID)
		if err != nil {
			if errors.Is(err, repositories.ErrStudentNotFound) {
				return apperrors.NewResourceNotFoundError("Student not found")
			}
			return err
		}

		defence, err := s.defences.GetByStudentID(ctx, student.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrDefenceNotFound) {
				return apperrors.NewResourceNotFoundError("No thesis defence found for this student")
			}
			return err
		}
		if !defence.Occurred(s.now()) {
			return apperrors.NewConflictError("Thesis defence has not occurred yet. Grading not allowed before defence")
		}

		assigned, err := s.defences.IsTeacherAssigned(ctx, student.ID, teacher.ID)
		if err != nil {
			return err
		}
		if !assigned {
			return apperrors.NewConflictError("You are not assigned to this student's defence session")
		}

		application, err := s.applications.GetActiveByStudentID(ctx, student.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrApplicationNotFound) {
				return apperrors.NewResourceNotFoundError("Student does not have an active thesis application")
			}
			return err
		}

		statement, err := s.statements.GetByApplicationIDForUpdate(ctx, application.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrStatementNotFound) {
				return apperrors.NewResourceNotFoundError("No thesis statement found for the student's active application")
			}
			return err
		}
		if statement.Graded() {
			return apperrors.NewConflictError("Thesis statement is already graded")
		}

		if req.Grade < MinGrade || req.Grade > MaxGrade {
			return apperrors.NewConflictError("Grade must be between 2 and 6")
		}

		if err := s.statements.SetGrade(ctx, statement.ID, req.Grade); err != nil {
			return err
		}

		if req.Grade >= PassingGrade {
			if err := s.students.SetGraduated(ctx, student.ID, true); err != nil {
				return err
			}
			if err := s.applications.Deactivate(ctx, application.ID); err != nil {
				return err
			}
			logger.Info().
				Str("studentId", student.ID).
				Int("grade", req.Grade).
				Msg("Student has graduated after successful thesis grading")
		}

		return nil
	})
}

// FindByGradeRange returns the statements graded within [minGrade, maxGrade]
func (s *StatementService) FindByGradeRange(ctx context.Context, minGrade, maxGrade int) ([]*dto.StatementResponse, error) {
	if minGrade < MinGrade || maxGrade > MaxGrade || minGrade > maxGrade {
		return nil, apperrors.NewBadRequestError("Invalid grade range: min must be >= 2, max must be <= 6, and min must be <= max")
	}

	statements, err := s.statements.ListByGradeRange(ctx, minGrade, maxGrade)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.StatementResponse, 0, len(statements))
	for _, statement := range statements {
		responses = append(responses, toStatementResponse(statement))
	}
	return responses, nil
}

// DeleteStatement removes an ungraded statement along with its review, if one
// was filed. Graded statements are part of the academic record and cannot be
// deleted.
func (s *StatementService) DeleteStatement(ctx context.Context, statementID int64) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		statement, err := s.statements.GetByID(ctx, statementID)
		if err != nil {
			if errors.Is(err, repositories.ErrStatementNotFound) {
				return apperrors.NewResourceNotFoundError("Thesis statement not found")
			}
			return err
		}
		if statement.Graded() {
			return apperrors.NewConflictError("Thesis statement cannot be deleted after grading")
		}

		hasReview, err := s.reviews.ExistsByStatementID(ctx, statement.ID)
		if err != nil {
			return err
		}
		if hasReview {
			if err := s.reviews.DeleteByStatementID(ctx, statement.ID); err != nil {
				return err
			}
			logger.Info().Int64("statementId", statement.ID).Msg("Thesis review deleted with its statement")
		}

		return s.statements.Delete(ctx, statement.ID)
	})
}

func toStatementResponse(statement *models.ThesisStatement) *dto.StatementResponse {
	return &dto.StatementResponse{
		ID:            statement.ID,
		ApplicationID: statement.ApplicationID,
		Title:         statement.Title,
		Body:          statement.Body,
		Grade:         statement.Grade,
	}
}
