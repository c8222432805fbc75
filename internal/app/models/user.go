package models

import "time"

// User defines the account model based on the 'users' table. Students and
// teachers each reference a user row for identity and credentials.
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"student@university.bg"`
	Password  string    `json:"-" db:"password"`
	FirstName string    `json:"firstName" db:"first_name" example:"Ivan"`
	LastName  string    `json:"lastName" db:"last_name" example:"Petrov"`
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"STUDENT"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
