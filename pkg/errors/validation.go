package errors

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

const maxCodeLength = 128

// ValidateCode validates a registry node code taken from user input.
// It rejects codes that could be used for path traversal or injection when
// interpolated into registry URLs or cache keys:
//   - No empty codes
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return New(ErrCodeInvalidInput, "code cannot be empty")
	}
	if len(code) > maxCodeLength {
		return New(ErrCodeInvalidInput, "code too long (max %d characters)", maxCodeLength)
	}
	for _, r := range code {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "code contains invalid control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(code, pattern) {
			return New(ErrCodeInvalidInput, "code contains invalid characters: %q", pattern)
		}
	}
	return nil
}

// nodeIDRegex matches graph node IDs of the form "<kind>:<code>".
var nodeIDRegex = regexp.MustCompile(`^[a-zA-Z_]+:.+$`)

// ValidateNodeID validates a graph root ID. An empty ID is valid and means
// "no root".
func ValidateNodeID(id string) error {
	if id == "" {
		return nil
	}
	if !nodeIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "node id must look like <kind>:<code>, got %q", id)
	}
	_, code, _ := strings.Cut(id, ":")
	return ValidateCode(code)
}

// focusRegex matches diagram entity names.
var focusRegex = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

// ValidateFocus validates the focus entity of a schema diagram. An empty
// focus is valid.
func ValidateFocus(name string) error {
	if !focusRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "focus must be a diagram entity name, got %q", name)
	}
	return nil
}

// ValidateFormat checks that format is one of the allowed output formats.
func ValidateFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidSource, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidSource, "URL must use http or https scheme")
	}
	return nil
}
