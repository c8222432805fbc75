package models

// Department defines the department model based on the 'departments' table.
// Its teacher roster is the voting quorum for thesis approvals created under
// the department.
type Department struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"Software Engineering"`
}
