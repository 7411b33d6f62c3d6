package common

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes carried by AppError
const (
	CodeValidation = "VALIDATION"
	CodeAnalysis   = "ANALYSIS"
	CodeConfig     = "CONFIG_ERROR"
	CodeInternal   = "INTERNAL"
)

// Common application errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrValidation   = errors.New("validation failed")
	ErrUnavailable  = errors.New("service unavailable")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsValidation reports whether err is (or wraps) a validation AppError.
func IsValidation(err error) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Code == CodeValidation
}

// gRPC error helpers
func InvalidArgumentError(message string) error {
	return status.Error(codes.InvalidArgument, message)
}

func InternalError(message string) error {
	return status.Error(codes.Internal, message)
}

func InternalErrorf(format string, args ...interface{}) error {
	return InternalError(fmt.Sprintf(format, args...))
}

// ToStatus maps an error onto a gRPC status; AppError messages are kept verbatim.
// Anything wrapping ErrUnavailable becomes codes.Unavailable.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	var ae *AppError
	if !errors.As(err, &ae) {
		if errors.Is(err, ErrUnavailable) {
			return status.Error(codes.Unavailable, err.Error())
		}
		return InternalError(err.Error())
	}
	if errors.Is(ae.Cause, ErrUnavailable) {
		return status.Error(codes.Unavailable, ae.Message)
	}
	switch ae.Code {
	case CodeValidation, CodeConfig:
		return InvalidArgumentError(ae.Message)
	default:
		return InternalError(ae.Message)
	}
}
