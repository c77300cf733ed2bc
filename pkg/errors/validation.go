package errors

import (
	"strings"
	"unicode"
)

// ValidateRefName validates a branch or tag name.
// The rules are a conservative subset of git-check-ref-format:
//   - No empty names
//   - No control characters or spaces
//   - No "..", "@{", "//" sequences
//   - No ~ ^ : ? * [ \ characters
//   - Must not start with "-" or "/" or end with "/", "." or ".lock"
//   - Maximum length of 256 characters
//   - The literal "HEAD" is reserved
func ValidateRefName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidRefName, "ref name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidRefName, "ref name too long (max 256 characters)")
	}

	if name == "HEAD" {
		return New(ErrCodeInvalidRefName, "ref name %q is reserved", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidRefName, "ref name %q contains whitespace or control characters", name)
		}
	}

	for _, pattern := range []string{"..", "@{", "//"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidRefName, "ref name %q contains %q", name, pattern)
		}
	}

	if i := strings.IndexAny(name, "~^:?*[\\"); i >= 0 {
		return New(ErrCodeInvalidRefName, "ref name %q contains invalid character %q", name, name[i])
	}

	if strings.HasPrefix(name, "-") || strings.HasPrefix(name, "/") {
		return New(ErrCodeInvalidRefName, "ref name %q has an invalid prefix", name)
	}

	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, ".") || strings.HasSuffix(name, ".lock") {
		return New(ErrCodeInvalidRefName, "ref name %q has an invalid suffix", name)
	}

	return nil
}

// ValidatePath validates a file path referenced from a script for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
