package models

import "time"

// ThesisDefence defines a scheduled defence session based on the
// 'thesis_defences' table plus its membership join tables. A student may be
// assigned to at most one defence ever.
type ThesisDefence struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Date         time.Time `json:"date" db:"date"`
	Location     string    `json:"location" db:"location" example:"Hall 210"`
	DepartmentID int64     `json:"departmentId" db:"department_id"`

	// Membership (populated when needed)
	StudentIDs []string `json:"studentIds,omitempty"`
	TeacherIDs []int64  `json:"teacherIds,omitempty"`
}

// Occurred reports whether the scheduled date has passed. Grading is only
// allowed after the defence occurred.
func (d *ThesisDefence) Occurred(now time.Time) bool {
	return d.Date.Before(now)
}
