package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingFields is returned when a required registration field is empty.
	ErrMissingFields = errors.New("missing required fields")
	// ErrEmailTaken is returned when the registration email is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrMissingCredentials is returned when login email or password is empty.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrInvalidCredentials covers both unknown email and wrong password so the
	// response does not reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrStudentNotFound is returned when a student id resolves to no record.
	ErrStudentNotFound = errors.New("student not found")
	// ErrCoursesNotArray is returned when the PUT body's courses field is not an array.
	ErrCoursesNotArray = errors.New("courses must be an array")
)

// ErrorResponse is the wire format for every error body.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HTTPError pairs a status code with the client-facing message.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Message: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// 500 whose message never leaks internals.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusBadRequest, "Missing required fields.")
	case errors.Is(err, ErrMissingCredentials):
		return NewHTTPError(http.StatusBadRequest, "Email and password are required.")
	case errors.Is(err, ErrCoursesNotArray):
		return NewHTTPError(http.StatusBadRequest, "Courses must be an array.")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid email or password.")
	case errors.Is(err, ErrStudentNotFound):
		return NewHTTPError(http.StatusNotFound, "Student not found.")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, "An account with this email already exists.")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error.")
	}
}
