package dto

import "time"

// CreateDefenceRequest is the payload for scheduling a defence session.
// Candidate lists are optional; ineligible candidates are dropped silently.
type CreateDefenceRequest struct {
	Date         time.Time `json:"date" binding:"required" example:"2026-07-01T10:00:00Z"`
	Location     string    `json:"location" binding:"required" example:"Hall 210"`
	DepartmentID int64     `json:"departmentId" binding:"required" example:"1"`
	StudentIDs   []string  `json:"studentIds,omitempty"`
	TeacherIDs   []int64   `json:"teacherIds,omitempty"`
}

// AssignStudentsRequest assigns students to an existing defence by faculty number
type AssignStudentsRequest struct {
	StudentIDs []string `json:"studentIds" binding:"required,min=1"`
}

// AssignTeachersRequest assigns teachers to an existing defence by email
type AssignTeachersRequest struct {
	TeacherEmails []string `json:"teacherEmails" binding:"required,min=1"`
}

// UpdateDefenceRequest carries a partial defence update
type UpdateDefenceRequest struct {
	Date     *time.Time `json:"date,omitempty"`
	Location *string    `json:"location,omitempty"`
}

// DefenceResponse describes a defence and its membership
type DefenceResponse struct {
	ID       int64             `json:"id" example:"1"`
	Date     time.Time         `json:"date"`
	Location string            `json:"location"`
	Students map[string]string `json:"students"` // faculty number -> full name
	Teachers map[string]string `json:"teachers"` // email -> full name
	Message  string            `json:"message,omitempty"`
}
