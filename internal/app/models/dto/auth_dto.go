package dto

// RegisterRequest is the payload for creating a new account. Students
// receive a generated faculty number; teachers register with an academic
// rank and join a department later.
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email" example:"student@university.bg"`
	Password     string `json:"password" binding:"required,min=8"`
	FirstName    string `json:"firstName" binding:"required" example:"Ivan"`
	LastName     string `json:"lastName" binding:"required" example:"Petrov"`
	Role         string `json:"role" binding:"required,oneof=STUDENT TEACHER" example:"STUDENT"`
	AcademicRank string `json:"academicRank,omitempty" example:"ASSISTANT_PROFESSOR"`
}

// LoginRequest is the payload for authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn" example:"3600"`
	TokenType    string `json:"tokenType" example:"Bearer"`
}

// RegisterResponse confirms a completed registration
type RegisterResponse struct {
	UserID        int64  `json:"userId" example:"1"`
	Email         string `json:"email"`
	Role          string `json:"role" example:"STUDENT"`
	FacultyNumber string `json:"facultyNumber,omitempty" example:"F048291"`
}
