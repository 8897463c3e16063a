package errors

import (
	stderrors "errors"
	"fmt"

	"tablens/domain/analysis"
	"tablens/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a
// wrapped AppError anywhere in the chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	code := CodeInternalError
	if appErr, ok := As(err); ok {
		code = appErr.Code
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// As finds the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := As(err)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeInsufficientData       = "INSUFFICIENT_DATA"
	CodeInvalidColumnSelection = "INVALID_COLUMN_SELECTION"
	CodeEmptyTable             = "EMPTY_TABLE"
	CodeInvalidTable           = "INVALID_TABLE"
	CodeConfigInvalid          = "CONFIG_INVALID"
	CodeDatabaseError          = "DATABASE_ERROR"
	CodeNotFound               = "NOT_FOUND"
	CodeInternalError          = "INTERNAL_ERROR"
	CodeInvalidInput           = "INVALID_INPUT"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string, cause error) *AppError {
	return &AppError{Code: CodeDatabaseError, Message: message, Cause: cause}
}

func InvalidTable(message string, cause error) *AppError {
	return &AppError{Code: CodeInvalidTable, Message: message, Cause: cause}
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// FromStatus converts a tagged analysis outcome into an AppError for
// transport boundaries, wrapping the matching core sentinel. An ok status
// yields nil.
func FromStatus(s analysis.Status) *AppError {
	switch s.Outcome {
	case analysis.OutcomeOK:
		return nil
	case analysis.OutcomeInsufficientData:
		return &AppError{Code: CodeInsufficientData, Message: s.Message, Cause: core.ErrInsufficientData}
	case analysis.OutcomeInvalidColumnSelection:
		return &AppError{Code: CodeInvalidColumnSelection, Message: s.Message, Cause: core.ErrInvalidColumnSelection}
	case analysis.OutcomeEmptyTable:
		return &AppError{Code: CodeEmptyTable, Message: s.Message, Cause: core.ErrEmptyTable}
	default:
		return New(CodeInternalError, fmt.Sprintf("unknown outcome %q", s.Outcome))
	}
}
