package dto

// SubmitApplicationRequest is the payload for submitting a thesis application
type SubmitApplicationRequest struct {
	StudentID string `json:"studentId" binding:"required" example:"F048291"`
	Topic     string `json:"topic" binding:"required" example:"Distributed task scheduling"`
	Purpose   string `json:"purpose" binding:"required"`
	Tasks     string `json:"tasks" binding:"required"`
	TechStack string `json:"techStack" binding:"required" example:"Go, PostgreSQL"`
}

// VoteRequest is the payload for a committee member's vote
type VoteRequest struct {
	ApplicationID int64 `json:"applicationId" binding:"required" example:"1"`
	Approved      *bool `json:"approved" binding:"required" example:"true"`
}

// ApplicationResponse is the combined application + approval view
type ApplicationResponse struct {
	ID             int64  `json:"id" example:"1"`
	Topic          string `json:"topic"`
	Purpose        string `json:"purpose"`
	Tasks          string `json:"tasks"`
	TechStack      string `json:"techStack"`
	Active         bool   `json:"active"`
	Approved       bool   `json:"approved"`
	ApprovalStatus string `json:"approvalStatus" example:"PENDING"`
	StudentID      string `json:"studentId"`
	SupervisorID   int64  `json:"supervisorId"`
	SupervisorName string `json:"supervisorName"`
	DepartmentName string `json:"departmentName"`
}
