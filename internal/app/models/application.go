package models

// ThesisApplication defines the application model based on the
// 'thesis_applications' table. A student has at most one active application
// at a time; the paired ThesisApproval is created together with it.
type ThesisApplication struct {
	ID           int64  `json:"id" db:"id" example:"1"`
	Topic        string `json:"topic" db:"topic" example:"Distributed task scheduling"`
	Purpose      string `json:"purpose" db:"purpose"`
	Tasks        string `json:"tasks" db:"tasks"`
	TechStack    string `json:"techStack" db:"tech_stack" example:"Go, PostgreSQL"`
	Active       bool   `json:"active" db:"active"`
	StudentID    string `json:"studentId" db:"student_id"`
	SupervisorID int64  `json:"supervisorId" db:"supervisor_id"`

	// Relations (populated when needed)
	Approval *ThesisApproval `json:"approval,omitempty"`
}
