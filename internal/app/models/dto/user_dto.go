package dto

// ProfileResponse describes the authenticated caller's account. Role-specific
// fields are filled only for the matching role.
type ProfileResponse struct {
	UserID        int64  `json:"userId" example:"1"`
	Email         string `json:"email"`
	FullName      string `json:"fullName" example:"Ivan Petrov"`
	Role          string `json:"role" example:"STUDENT"`
	FacultyNumber string `json:"facultyNumber,omitempty" example:"F048291"`
	Graduated     *bool  `json:"graduated,omitempty"`
	AcademicRank  string `json:"academicRank,omitempty" example:"PROFESSOR"`
	Department    string `json:"department,omitempty"`
}

// StudentResponse describes a student for roster lookups
type StudentResponse struct {
	FacultyNumber  string `json:"facultyNumber" example:"F048291"`
	FullName       string `json:"fullName" example:"Ivan Petrov"`
	Email          string `json:"email"`
	Graduated      bool   `json:"graduated"`
	SupervisorName string `json:"supervisorName,omitempty"`
}

// TeacherResponse describes a teacher for roster lookups
type TeacherResponse struct {
	ID             int64  `json:"id" example:"1"`
	FullName       string `json:"fullName" example:"Maria Ivanova"`
	Email          string `json:"email"`
	AcademicRank   string `json:"academicRank" example:"ASSOCIATE_PROFESSOR"`
	DepartmentName string `json:"departmentName,omitempty"`
}
