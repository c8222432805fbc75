package models

// Teacher defines the teacher model based on the 'teachers' table. A teacher
// must belong to a department before supervising applications or voting.
type Teacher struct {
	ID           int64  `json:"id" db:"id" example:"1"`
	UserID       int64  `json:"userId" db:"user_id"`
	DepartmentID *int64 `json:"departmentId,omitempty" db:"department_id"`
	AcademicRank string `json:"academicRank" db:"academic_rank" example:"ASSOCIATE_PROFESSOR"`

	// Relations (populated when needed)
	User       *User       `json:"user,omitempty"`
	Department *Department `json:"department,omitempty"`
}

// HasDepartment reports whether the teacher belongs to a department
func (t *Teacher) HasDepartment() bool {
	return t.DepartmentID != nil
}
