package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrAlreadyExists        = errors.New("resource already exists")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountDisabled      = errors.New("account disabled")
	ErrAlreadyRegistered    = errors.New("account already registered")
	ErrWeakPassword         = errors.New("password too weak")
	ErrTooManyAttempts      = errors.New("too many attempts")
	ErrCodeSpaceExhausted   = errors.New("could not allocate a unique registration code")
	ErrCompensationPending  = errors.New("compensation failed, manual reconciliation required")
	ErrIdempotencyKeyReused = errors.New("idempotency key reused with a different request")
)

// Stable error codes returned to callers
const (
	CodeInvalidArgument  = "invalid-argument"
	CodeNotFound         = "not-found"
	CodeAlreadyExists    = "already-exists"
	CodePermissionDenied = "permission-denied"
	CodeUnauthenticated  = "unauthenticated"
	CodeInternal         = "internal"
)

// AppError represents application error with HTTP status and a stable code
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the wrapped sentinel to errors.Is
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func InvalidArgument(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidArgument, message, ErrInvalidInput)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func AlreadyExists(message string, err error) *AppError {
	if err == nil {
		err = ErrAlreadyExists
	}
	return NewAppError(http.StatusConflict, CodeAlreadyExists, message, err)
}

func PermissionDenied(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodePermissionDenied, message, ErrForbidden)
}

func Unauthenticated(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthenticated, message, ErrUnauthorized)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}

// AsAppError returns err as an *AppError. Anything that is not already typed
// becomes internal, so callers never see an untyped failure.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}

// CodeOf returns the stable code for err
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	return AsAppError(err).Code
}
