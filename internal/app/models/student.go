package models

// Student defines the student model based on the 'students' table. The
// primary key is the faculty number assigned at registration.
type Student struct {
	ID        string `json:"id" db:"id" example:"FN2400123"` // Faculty number
	UserID    int64  `json:"userId" db:"user_id"`
	Graduated bool   `json:"graduated" db:"graduated"`
	// SupervisorID is set when a supervisor accepts the student's thesis
	// application (nullable until then).
	SupervisorID *int64 `json:"supervisorId,omitempty" db:"supervisor_id"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}
