package apperrors

import "errors"

// Error kinds. Every service error wraps exactly one of these so the HTTP
// layer can map it to a status code with errors.Is.
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrForbiddenAction  = errors.New("forbidden action")
	ErrDuplicateAction  = errors.New("duplicate action")
	ErrBadRequest       = errors.New("bad request")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrInvalidFormat      = errors.New("invalid token format")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Roster errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrDepartmentNotFound = errors.New("department not found")
)

// NewResourceNotFoundError creates an error for a missing referenced entity
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates an error for an invariant violation or an invalid
// state transition
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates an error for an actor lacking department or
// ownership standing
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrForbiddenAction,
		Message: message,
	}
}

// NewDuplicateActionError creates an error for a repeat of an already
// performed one-shot action, such as a double vote
func NewDuplicateActionError(message string) error {
	return &CustomError{
		Err:     ErrDuplicateAction,
		Message: message,
	}
}

// NewBadRequestError creates an error for malformed input
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError carries an error kind plus a caller-facing message
type CustomError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap so errors.Is matches the kind
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
