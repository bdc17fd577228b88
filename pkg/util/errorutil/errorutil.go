package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

// NewParseError marks a malformed input file. Ingestion aborts that file
// only; the caller keeps the file in place for the next pass.
func NewParseError(file string, err error) error {
	return &DomainError{
		Code:       "PARSE_ERROR",
		Message:    fmt.Sprintf("malformed input file %s", file),
		HTTPStatus: http.StatusUnprocessableEntity,
		Err:        err,
	}
}

// NewStoreUnreachable marks a primary store failure. Never user-visible on
// the read path; the resolver falls back to the local store instead.
func NewStoreUnreachable(err error) error {
	return &DomainError{
		Code:       "STORE_UNREACHABLE",
		Message:    "primary store unreachable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// NewStoreCorrupt marks an unreadable persisted store. Callers treat the
// store as empty and log the condition.
func NewStoreCorrupt(path string, err error) error {
	return &DomainError{
		Code:       "STORE_CORRUPT",
		Message:    fmt.Sprintf("persisted store %s unreadable", path),
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewWriteConflict(message string) error {
	return NewDomainError("WRITE_CONFLICT", message, http.StatusConflict, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
