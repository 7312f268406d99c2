package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Import specific errors
	CodeInvalidSource   ErrorCode = "INVALID_SOURCE"
	CodeUnmappedSheet   ErrorCode = "UNMAPPED_SHEET"
	CodeRowValidation   ErrorCode = "ROW_VALIDATION_FAILED"
	CodeStorageFailure  ErrorCode = "STORAGE_FAILURE"
	CodeSourceUnreached ErrorCode = "SOURCE_UNREACHABLE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewInvalidSourceError(message string, cause error) *DomainError {
	return NewError(CodeInvalidSource, message, cause)
}

func NewUnmappedSheetError(sheetName string) *DomainError {
	return NewError(CodeUnmappedSheet, fmt.Sprintf("Unknown sheet name: %s", sheetName), nil)
}

func NewRowValidationError(reason string, rowNum int) *DomainError {
	return NewError(CodeRowValidation, fmt.Sprintf("Row %d: %s", rowNum, reason), nil)
}

func NewStorageError(message string, cause error) *DomainError {
	return NewError(CodeStorageFailure, message, cause)
}

func NewSourceUnreachableError(cause error) *DomainError {
	return NewError(CodeSourceUnreached, "Failed to read spreadsheet source", cause)
}
