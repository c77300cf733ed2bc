// Package errors provides structured error types for commitgraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Graph operation failures carry a code naming the broken rule
// (DUPLICATE_BRANCH, INACTIVE_BRANCH, SELF_MERGE, ...). Input problems use
// INVALID_*, lookups use NOT_FOUND_*, and unexpected failures INTERNAL_*.
//
// # Usage
//
// Packages declare coded sentinels and wrap them with context:
//
//	var ErrSelfMerge = errors.New(errors.ErrCodeSelfMerge, "cannot merge a branch into itself")
//
//	return fmt.Errorf("merge %s: %w", name, ErrSelfMerge)
//
// Callers match either the sentinel (stdlib errors.Is) or the code:
//
//	if errors.Is(err, errors.ErrCodeSelfMerge) {
//	    // Handle the rejected merge
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph operation errors
	ErrCodeDuplicateBranch Code = "DUPLICATE_BRANCH"
	ErrCodeInactiveBranch  Code = "INACTIVE_BRANCH"
	ErrCodeSelfMerge       Code = "SELF_MERGE"
	ErrCodeNothingToMerge  Code = "NOTHING_TO_MERGE"
	ErrCodeEmptyBranch     Code = "EMPTY_BRANCH"
	ErrCodeDuplicateTag    Code = "DUPLICATE_TAG"
	ErrCodeDuplicateCommit Code = "DUPLICATE_COMMIT"
	ErrCodeInvalidImport   Code = "INVALID_IMPORT"
	ErrCodeNoHead          Code = "NO_HEAD"
	ErrCodeDeleteHead      Code = "DELETE_HEAD"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidRefName  Code = "INVALID_REF_NAME"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"
	ErrCodeInvalidScript   Code = "INVALID_SCRIPT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeBranchNotFound Code = "BRANCH_NOT_FOUND"
	ErrCodeCommitNotFound Code = "COMMIT_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsConflict reports whether the code describes an operation that collides
// with existing graph state (a duplicate name or hash).
func (c Code) IsConflict() bool {
	switch c {
	case ErrCodeDuplicateBranch, ErrCodeDuplicateTag, ErrCodeDuplicateCommit:
		return true
	}
	return false
}

// IsRejected reports whether the code describes an operation the graph
// refused because of branch state (inactive, empty, self merge, ...).
func (c Code) IsRejected() bool {
	switch c {
	case ErrCodeInactiveBranch, ErrCodeSelfMerge, ErrCodeNothingToMerge,
		ErrCodeEmptyBranch, ErrCodeNoHead, ErrCodeDeleteHead:
		return true
	}
	return false
}
