package models

// ThesisStatement defines the submitted thesis document based on the
// 'thesis_statements' table. At most one per application, created only after
// the application is approved. Grade stays NULL until a defence-panel
// teacher grades it; once set it never changes.
type ThesisStatement struct {
	ID            int64  `json:"id" db:"id" example:"1"`
	ApplicationID int64  `json:"applicationId" db:"application_id"`
	Title         string `json:"title" db:"title"`
	Body          string `json:"body" db:"body"`
	Grade         *int   `json:"grade,omitempty" db:"grade" example:"5"`
}

// Graded reports whether a final grade has been assigned
func (s *ThesisStatement) Graded() bool {
	return s.Grade != nil
}
