package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned on login failure. It deliberately
	// does not distinguish an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingCredential is returned when a protected operation is
	// called without a bearer token.
	ErrMissingCredential = errors.New("access token required")
	// ErrInvalidCredential is returned when a bearer token is present but
	// fails verification.
	ErrInvalidCredential = errors.New("invalid or expired token")
	// ErrForbidden is returned when the actor is authenticated but not
	// permitted to perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound is returned when a user lookup finds no record.
	ErrUserNotFound = errors.New("user not found")
	// ErrArticleNotFound is returned when an article lookup finds no record.
	ErrArticleNotFound = errors.New("article not found")
)

// InvalidInputError reports caller-fixable input problems. Reasons lists
// every violated rule, not just the first.
type InvalidInputError struct {
	Reasons []string
}

func (e *InvalidInputError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

// NewInvalidInput creates an InvalidInputError from the given reasons.
func NewInvalidInput(reasons ...string) *InvalidInputError {
	return &InvalidInputError{Reasons: reasons}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Reasons []string `json:"reasons,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Reasons    []string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Reasons: e.Reasons,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unrecognized errors
// map to a generic internal error; their detail is for server-side logs
// only and must never reach the caller.
func MapErrorToHTTP(err error) *HTTPError {
	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		he := NewHTTPError(http.StatusBadRequest, "invalid input", "INVALID_INPUT")
		he.Reasons = invalid.Reasons
		return he
	}

	switch {
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrMissingCredential):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "MISSING_CREDENTIAL")
	case errors.Is(err, ErrInvalidCredential):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIAL")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrArticleNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
