package models

// ThesisApproval defines the committee decision record based on the
// 'thesis_approvals' table. Exactly one approval exists per application, and
// it belongs to the supervisor's department at creation time; that
// department's roster is the voting quorum.
type ThesisApproval struct {
	ID            int64          `json:"id" db:"id" example:"1"`
	ApplicationID int64          `json:"applicationId" db:"application_id"`
	DepartmentID  int64          `json:"departmentId" db:"department_id"`
	Status        ApprovalStatus `json:"status" db:"status" example:"PENDING"`

	// Relations (populated when needed)
	Votes []*TeacherVote `json:"votes,omitempty"`
}

// TeacherVote defines a single committee member's vote based on the
// 'teacher_votes' table. Unique per (approval, teacher).
type TeacherVote struct {
	ID         int64          `json:"id" db:"id"`
	ApprovalID int64          `json:"approvalId" db:"approval_id"`
	TeacherID  int64          `json:"teacherId" db:"teacher_id"`
	Decision   ApprovalStatus `json:"decision" db:"decision" example:"APPROVED"`
}
