package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/app/models/dto"
	"github.com/Calabangata/Graduation-System/internal/app/repositories"
	"github.com/Calabangata/Graduation-System/internal/db"
	"github.com/Calabangata/Graduation-System/internal/pkg/apperrors"
	"github.com/Calabangata/Graduation-System/internal/pkg/logger"
)

// ApplicationService handles thesis application submission, committee voting
// and vote evaluation
type ApplicationService struct {
	txManager    db.TxManager
	students     StudentStore
	teachers     TeacherStore
	departments  DepartmentStore
	applications ApplicationStore
	approvals    ApprovalStore
	votes        VoteStore
	statements   StatementStore
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	txManager db.TxManager,
	students StudentStore,
	teachers TeacherStore,
	departments DepartmentStore,
	applications ApplicationStore,
	approvals ApprovalStore,
	votes VoteStore,
	statements StatementStore,
) *ApplicationService {
	return &ApplicationService{
		txManager:    txManager,
		students:     students,
		teachers:     teachers,
		departments:  departments,
		applications: applications,
		approvals:    approvals,
		votes:        votes,
		statements:   statements,
	}
}

// SubmitApplication creates a thesis application on behalf of the supervising
// teacher identified by supervisorEmail. The student must exist, must not have
// graduated and must not hold another active application; the supervisor must
// belong to a department, which becomes the owner of the paired approval.
func (s *ApplicationService) SubmitApplication(ctx context.Context, supervisorEmail string, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error) {
	var resp *dto.ApplicationResponse

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		student, err := s.students.GetByID(ctx, req.StudentID)
		if err != nil {
			if errors.Is(err, repositories.ErrStudentNotFound) {
				return apperrors.NewResourceNotFoundError("Student not found")
			}
			return err
		}

		if student.Graduated {
			return apperrors.NewConflictError("Student has already graduated and cannot submit a thesis application")
		}

		hasActive, err := s.applications.HasActiveByStudent(ctx, student.ID)
		if err != nil {
			return err
		}
		if hasActive {
			return apperrors.NewConflictError("Student already has an active thesis application")
		}

		supervisor, err := s.teachers.GetByEmail(ctx, supervisorEmail)
		if err != nil {
			if errors.Is(err, repositories.ErrTeacherNotFound) {
				return apperrors.NewResourceNotFoundError("Supervisor not found or not owned by current user")
			}
			return err
		}
		if !supervisor.HasDepartment() {
			return apperrors.NewConflictError("The current supervisor must belong to a department to complete this action")
		}

		if err := s.students.SetSupervisor(ctx, student.ID, supervisor.ID); err != nil {
			return err
		}

		application := &models.ThesisApplication{
			Topic:        req.Topic,
			Purpose:      req.Purpose,
			Tasks:        req.Tasks,
			TechStack:    req.TechStack,
			Active:       true,
			StudentID:    student.ID,
			SupervisorID: supervisor.ID,
		}
		if err := s.applications.Create(ctx, application); err != nil {
			return err
		}

		approval := &models.ThesisApproval{
			ApplicationID: application.ID,
			DepartmentID:  *supervisor.DepartmentID,
			Status:        models.ApprovalPending,
		}
		if err := s.approvals.Create(ctx, approval); err != nil {
			return err
		}
		application.Approval = approval

		resp, err = s.toResponse(ctx, application)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("applicationId", resp.ID).
		Str("studentId", resp.StudentID).
		Msg("Thesis application submitted")

	return resp, nil
}

// VoteOnApplication records a committee member's vote on an application's
// approval. The voter must belong to the approval's department, may vote only
// once, and no votes are accepted once the whole roster has voted.
func (s *ApplicationService) VoteOnApplication(ctx context.Context, teacherEmail string, req *dto.VoteRequest) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		teacher, err := s.teachers.GetByEmail(ctx, teacherEmail)
		if err != nil {
			if errors.Is(err, repositories.ErrTeacherNotFound) {
				return apperrors.NewResourceNotFoundError("Teacher not found or not owned by current user")
			}
			return err
		}

		if _, err := s.applications.GetByID(ctx, req.ApplicationID); err != nil {
			if errors.Is(err, repositories.ErrApplicationNotFound) {
				return apperrors.NewResourceNotFoundError("Thesis application not found")
			}
			return err
		}

		approval, err := s.approvals.GetByApplicationIDForUpdate(ctx, req.ApplicationID)
		if err != nil {
			if errors.Is(err, repositories.ErrApprovalNotFound) {
				return apperrors.NewResourceNotFoundError("Thesis approval not found")
			}
			return err
		}

		if !teacher.HasDepartment() || *teacher.DepartmentID != approval.DepartmentID {
			return apperrors.NewForbiddenError("Teacher does not belong to the required department")
		}

		voted, err := s.votes.ExistsByApprovalAndTeacher(ctx, approval.ID, teacher.ID)
		if err != nil {
			return err
		}
		if voted {
			return apperrors.NewDuplicateActionError("Teacher has already voted")
		}

		totalTeachers, err := s.teachers.CountByDepartment(ctx, approval.DepartmentID)
		if err != nil {
			return err
		}
		castVotes, err := s.votes.CountByApproval(ctx, approval.ID)
		if err != nil {
			return err
		}
		if castVotes >= totalTeachers {
			return apperrors.NewConflictError("All teachers in the department have already voted")
		}

		decision := models.ApprovalRejected
		if req.Approved != nil && *req.Approved {
			decision = models.ApprovalApproved
		}

		return s.votes.Create(ctx, &models.TeacherVote{
			ApprovalID: approval.ID,
			TeacherID:  teacher.ID,
			Decision:   decision,
		})
	})
}

// EvaluateVotes tallies the committee votes of an application's approval and
// resolves its status once the whole department roster has voted. A strict
// negative majority rejects; otherwise the positive votes decide. If neither
// threshold is met the approval stays pending.
func (s *ApplicationService) EvaluateVotes(ctx context.Context, applicationID int64) (models.ApprovalStatus, error) {
	var status models.ApprovalStatus

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.applications.GetByID(ctx, applicationID); err != nil {
			if errors.Is(err, repositories.ErrApplicationNotFound) {
				return apperrors.NewResourceNotFoundError("Thesis application not found")
			}
			return err
		}

		approval, err := s.approvals.GetByApplicationIDForUpdate(ctx, applicationID)
		if err != nil {
			if errors.Is(err, repositories.ErrApprovalNotFound) {
				return apperrors.NewResourceNotFoundError("Thesis approval not found")
			}
			return err
		}

		totalTeachers, err := s.teachers.CountByDepartment(ctx, approval.DepartmentID)
		if err != nil {
			return err
		}

		votes, err := s.votes.ListByApproval(ctx, approval.ID)
		if err != nil {
			return err
		}
		if len(votes) < totalTeachers {
			return apperrors.NewConflictError("Not all teachers in the department have voted yet")
		}

		totalVotes := len(votes)
		var positive, negative int
		for _, vote := range votes {
			switch vote.Decision {
			case models.ApprovalApproved:
				positive++
			case models.ApprovalRejected:
				negative++
			}
		}

		status = approval.Status
		switch {
		case positive >= totalVotes/2:
			status = models.ApprovalApproved
		case negative > totalVotes/2:
			status = models.ApprovalRejected
		default:
			// Neither threshold reached: the approval stays pending.
			return nil
		}

		if status == approval.Status {
			return nil
		}
		return s.approvals.UpdateStatus(ctx, approval.ID, status)
	})
	if err != nil {
		return "", err
	}

	logger.Info().
		Int64("applicationId", applicationID).
		Str("status", string(status)).
		Msg("Thesis approval evaluated")

	return status, nil
}

// DeleteApplication removes an application together with its approval and
// votes. An application that already has a thesis statement cannot be deleted.
func (s *ApplicationService) DeleteApplication(ctx context.Context, applicationID int64) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.applications.GetByID(ctx, applicationID); err != nil {
			if errors.Is(err, repositories.ErrApplicationNotFound) {
				return apperrors.NewResourceNotFoundError("Thesis application not found")
			}
			return err
		}

		hasStatement, err := s.statements.ExistsByApplicationID(ctx, applicationID)
		if err != nil {
			return err
		}
		if hasStatement {
			return apperrors.NewConflictError("Cannot delete application with an associated thesis statement")
		}

		approval, err := s.approvals.GetByApplicationID(ctx, applicationID)
		if err != nil && !errors.Is(err, repositories.ErrApprovalNotFound) {
			return err
		}
		if approval != nil {
			if err := s.votes.DeleteByApproval(ctx, approval.ID); err != nil {
				return err
			}
			if err := s.approvals.Delete(ctx, approval.ID); err != nil {
				return err
			}
		}

		return s.applications.Delete(ctx, applicationID)
	})
}

// GetAllApplications returns every application in the system
func (s *ApplicationService) GetAllApplications(ctx context.Context) ([]*dto.ApplicationResponse, error) {
	apps, err := s.applications.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, apps)
}

// GetApplicationsByStudent returns all applications a student ever submitted
func (s *ApplicationService) GetApplicationsByStudent(ctx context.Context, studentID string) ([]*dto.ApplicationResponse, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Student not found")
		}
		return nil, err
	}

	apps, err := s.applications.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, apps)
}

// GetApplicationsBySupervisor returns a supervisor's applications filtered by
// approval status
func (s *ApplicationService) GetApplicationsBySupervisor(ctx context.Context, supervisorID int64, approvalStatus string) ([]*dto.ApplicationResponse, error) {
	status := models.ApprovalStatus(strings.ToUpper(approvalStatus))
	if !status.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid approval status: " + approvalStatus)
	}

	if _, err := s.teachers.GetByID(ctx, supervisorID); err != nil {
		if errors.Is(err, repositories.ErrTeacherNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Supervisor not found")
		}
		return nil, err
	}

	apps, err := s.applications.ListBySupervisorAndStatus(ctx, supervisorID, status)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, apps)
}

// SearchByTopic returns applications whose topic contains the keyword
func (s *ApplicationService) SearchByTopic(ctx context.Context, keyword string) ([]*dto.ApplicationResponse, error) {
	apps, err := s.applications.SearchByTopic(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, apps)
}

func (s *ApplicationService) toResponses(ctx context.Context, apps []*models.ThesisApplication) ([]*dto.ApplicationResponse, error) {
	responses := make([]*dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		resp, err := s.toResponse(ctx, app)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *ApplicationService) toResponse(ctx context.Context, app *models.ThesisApplication) (*dto.ApplicationResponse, error) {
	approval := app.Approval
	if approval == nil {
		var err error
		approval, err = s.approvals.GetByApplicationID(ctx, app.ID)
		if err != nil {
			if !errors.Is(err, repositories.ErrApprovalNotFound) {
				return nil, err
			}
			approval = &models.ThesisApproval{Status: models.ApprovalPending}
		}
	}

	supervisor, err := s.teachers.GetByID(ctx, app.SupervisorID)
	if err != nil {
		return nil, err
	}

	var departmentName string
	if supervisor.HasDepartment() {
		department, err := s.departments.GetByID(ctx, *supervisor.DepartmentID)
		if err != nil && !errors.Is(err, repositories.ErrDepartmentNotFound) {
			return nil, err
		}
		if department != nil {
			departmentName = department.Name
		}
	}

	return &dto.ApplicationResponse{
		ID:             app.ID,
		Topic:          app.Topic,
		Purpose:        app.Purpose,
		Tasks:          app.Tasks,
		TechStack:      app.TechStack,
		Active:         app.Active,
		Approved:       approval.Status == models.ApprovalApproved,
		ApprovalStatus: string(approval.Status),
		StudentID:      app.StudentID,
		SupervisorID:   supervisor.ID,
		SupervisorName: supervisor.User.FullName(),
		DepartmentName: departmentName,
	}, nil
}
