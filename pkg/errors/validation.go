package errors

import (
	"strings"
	"unicode"
)

// ValidateOutputPath validates a user-supplied output path before the CLI
// or server writes to it. The rules are intentionally conservative:
//   - no empty paths
//   - maximum length of 500 characters
//   - no null bytes or control characters
//   - no parent-directory traversal segments
func ValidateOutputPath(path string) error {
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

	for _, seg := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain traversal segments")
		}
	}
	return nil
}

// ValidateThemeName validates a theme argument: either a known name or a
// readable-looking TOML path, without control characters.
func ValidateThemeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTheme, "theme cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTheme, "theme contains invalid control characters")
		}
	}
	return nil
}
