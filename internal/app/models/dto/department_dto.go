package dto

// CreateDepartmentRequest is the payload for creating a department
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required" example:"Software Engineering"`
}

// AssignTeacherRequest assigns a teacher to a department
type AssignTeacherRequest struct {
	TeacherID int64 `json:"teacherId" binding:"required" example:"1"`
}

// DepartmentResponse describes a department
type DepartmentResponse struct {
	ID          int64  `json:"id" example:"1"`
	Name        string `json:"name"`
	TeacherSize int    `json:"teacherSize" example:"3"`
}
