// Package services implements the thesis lifecycle workflow: application
// submission, committee voting and evaluation, statement creation and
// grading, reviews, and defence assembly.
//
// Services depend on narrow store interfaces rather than concrete
// repositories so the workflow rules can be tested without a database. The
// pgx repositories satisfy these interfaces; every mutating operation runs
// inside a TxManager transaction so invariant checks and writes are atomic.
package services

import (
	"context"

	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/app/repositories"
)

// UserStore is the account surface consumed by the auth service
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// StudentStore supplies student roster facts
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ListByIDs(ctx context.Context, ids []string) ([]*models.Student, error)
	SetGraduated(ctx context.Context, id string, graduated bool) error
	SetSupervisor(ctx context.Context, id string, teacherID int64) error
}

// TeacherStore supplies teacher roster facts, including the department
// roster size that defines an approval's voting quorum
type TeacherStore interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetByEmail(ctx context.Context, email string) (*models.Teacher, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*models.Teacher, error)
	ListByEmails(ctx context.Context, emails []string) ([]*models.Teacher, error)
	CountByDepartment(ctx context.Context, departmentID int64) (int, error)
	SetDepartment(ctx context.Context, teacherID, departmentID int64) error
}

// DepartmentStore supplies department identities
type DepartmentStore interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetByName(ctx context.Context, name string) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
}

// ApplicationStore persists thesis applications
type ApplicationStore interface {
	Create(ctx context.Context, app *models.ThesisApplication) error
	GetByID(ctx context.Context, id int64) (*models.ThesisApplication, error)
	HasActiveByStudent(ctx context.Context, studentID string) (bool, error)
	GetActiveByStudentEmail(ctx context.Context, email string) (*models.ThesisApplication, error)
	GetActiveByStudentID(ctx context.Context, studentID string) (*models.ThesisApplication, error)
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]*models.ThesisApplication, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.ThesisApplication, error)
	ListBySupervisorAndStatus(ctx context.Context, supervisorID int64, status models.ApprovalStatus) ([]*models.ThesisApplication, error)
	SearchByTopic(ctx context.Context, keyword string) ([]*models.ThesisApplication, error)
}

// ApprovalStore persists the committee decision record paired with each
// application
type ApprovalStore interface {
	Create(ctx context.Context, approval *models.ThesisApproval) error
	GetByApplicationID(ctx context.Context, applicationID int64) (*models.ThesisApproval, error)
	GetByApplicationIDForUpdate(ctx context.Context, applicationID int64) (*models.ThesisApproval, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApprovalStatus) error
	Delete(ctx context.Context, id int64) error
}

// VoteStore persists committee votes
type VoteStore interface {
	Create(ctx context.Context, vote *models.TeacherVote) error
	ExistsByApprovalAndTeacher(ctx context.Context, approvalID, teacherID int64) (bool, error)
	CountByApproval(ctx context.Context, approvalID int64) (int, error)
	ListByApproval(ctx context.Context, approvalID int64) ([]*models.TeacherVote, error)
	DeleteByApproval(ctx context.Context, approvalID int64) error
}

// StatementStore persists thesis statements
type StatementStore interface {
	Create(ctx context.Context, statement *models.ThesisStatement) error
	GetByID(ctx context.Context, id int64) (*models.ThesisStatement, error)
	GetByApplicationID(ctx context.Context, applicationID int64) (*models.ThesisStatement, error)
	GetByApplicationIDForUpdate(ctx context.Context, applicationID int64) (*models.ThesisStatement, error)
	ExistsByApplicationID(ctx context.Context, applicationID int64) (bool, error)
	SetGrade(ctx context.Context, id int64, grade int) error
	ListByGradeRange(ctx context.Context, min, max int) ([]*models.ThesisStatement, error)
	Delete(ctx context.Context, id int64) error
}

// ReviewStore persists reviewer verdicts
type ReviewStore interface {
	Create(ctx context.Context, review *models.ThesisReview) error
	GetByStatementID(ctx context.Context, statementID int64) (*models.ThesisReview, error)
	ExistsByStatementID(ctx context.Context, statementID int64) (bool, error)
	DeleteByStatementID(ctx context.Context, statementID int64) error
}

// DefenceStore persists defences and their membership
type DefenceStore interface {
	Create(ctx context.Context, defence *models.ThesisDefence) error
	GetByID(ctx context.Context, id int64) (*models.ThesisDefence, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*models.ThesisDefence, error)
	GetByStudentID(ctx context.Context, studentID string) (*models.ThesisDefence, error)
	ExistsByStudent(ctx context.Context, studentID string) (bool, error)
	IsTeacherAssigned(ctx context.Context, studentID string, teacherID int64) (bool, error)
	AddStudents(ctx context.Context, defenceID int64, studentIDs []string) error
	AddTeachers(ctx context.Context, defenceID int64, teacherIDs []int64) error
	Update(ctx context.Context, defence *models.ThesisDefence) error
	ClearMembers(ctx context.Context, defenceID int64) error
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]*models.ThesisDefence, error)
}

// TokenStore persists refresh tokens
type TokenStore interface {
	Save(ctx context.Context, token *repositories.RefreshToken) error
	Get(ctx context.Context, token string) (*repositories.RefreshToken, error)
	Delete(ctx context.Context, token string) error
}
