package apperrors

import "net/http"

// Factories for errors that originate in repositories or business rules.

// ErrNotFound converts a repository not-found (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrUpstreamQuery marks a data-store read failure that exhausted every
// recovery path in the search cascade.
func ErrUpstreamQuery(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "search", "Creator search is temporarily unavailable", http.StatusInternalServerError)
}

// ErrPersistence marks a match write failure after validation passed.
func ErrPersistence(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "match", "Failed to persist match", http.StatusInternalServerError)
}

// Static errors for frequent cases.

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserMismatch = New(
	CodeForbidden,
	"match",
	"user_id does not match the authenticated session",
	http.StatusForbidden,
)
