package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to act on the target.
var ErrForbidden = errors.New("forbidden")

// ErrInsufficientFunds indicates the source account balance cannot cover a transfer.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidTransfer indicates a transfer request that is structurally invalid,
// e.g. a non-positive amount or a sender transferring to itself.
var ErrInvalidTransfer = errors.New("invalid transfer")

// ErrDestinationNotFound indicates the transfer destination could not be
// resolved via PIX key or email.
var ErrDestinationNotFound = errors.New("transfer destination not found")

// ErrRefreshTokenExpired indicates the stored refresh token has passed its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrInternal indicates an unexpected store or infrastructure failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with an HTTP status code and a message
// safe to surface to the client.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given status code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
