package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidImport, cause, "bad record")

	if err.Code != ErrCodeInvalidImport {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidImport)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestSentinelWrapping(t *testing.T) {
	sentinel := New(ErrCodeSelfMerge, "cannot merge a branch into itself")
	err := fmt.Errorf("merge %q: %w", "main", sentinel)

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is(err, sentinel) = false, want true")
	}
	if !Is(err, ErrCodeSelfMerge) {
		t.Error("Is(err, ErrCodeSelfMerge) = false, want true")
	}
	if got := GetCode(err); got != ErrCodeSelfMerge {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeSelfMerge)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeDuplicateBranch, "test"),
			code:     ErrCodeDuplicateBranch,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeDuplicateBranch, "test"),
			code:     ErrCodeDuplicateTag,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidScript, New(ErrCodeInactiveBranch, "inner"), "outer"),
			code:     ErrCodeInvalidScript,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeEmptyBranch, "test"), ErrCodeEmptyBranch},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCodeClasses(t *testing.T) {
	tests := []struct {
		code     Code
		conflict bool
		rejected bool
	}{
		{ErrCodeDuplicateBranch, true, false},
		{ErrCodeDuplicateTag, true, false},
		{ErrCodeDuplicateCommit, true, false},
		{ErrCodeInactiveBranch, false, true},
		{ErrCodeSelfMerge, false, true},
		{ErrCodeNothingToMerge, false, true},
		{ErrCodeEmptyBranch, false, true},
		{ErrCodeDeleteHead, false, true},
		{ErrCodeInvalidImport, false, false},
		{ErrCodeInternal, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.IsConflict(); got != tt.conflict {
				t.Errorf("IsConflict() = %v, want %v", got, tt.conflict)
			}
			if got := tt.code.IsRejected(); got != tt.rejected {
				t.Errorf("IsRejected() = %v, want %v", got, tt.rejected)
			}
		})
	}
}
