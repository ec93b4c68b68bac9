package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxLayoutNameLength bounds saved layout names; they are used as map keys in
// the settings document and as URL path segments.
const maxLayoutNameLength = 128

// ValidateLayoutName validates a snapshot name and returns it trimmed.
//
// A valid name has:
//   - At least one character after trimming
//   - No control characters
//   - No null bytes
//   - Maximum length of 128 characters
func ValidateLayoutName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", New(ErrCodeInvalidName, "layout name cannot be empty")
	}

	if len(name) > maxLayoutNameLength {
		return "", New(ErrCodeInvalidName, "layout name too long (max %d characters)", maxLayoutNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return "", New(ErrCodeInvalidName, "layout name contains invalid control characters")
		}
	}

	return name, nil
}

// widgetKeyRegex matches catalog keys such as "stats_value" or "recent_decks".
var widgetKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateWidgetKey checks the lexical form of a widget key. It does not check
// that the key exists in a catalog.
func ValidateWidgetKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "widget key cannot be empty")
	}
	if len(key) > 64 {
		return New(ErrCodeInvalidInput, "widget key too long (max 64 characters)")
	}
	if !widgetKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidInput, "invalid widget key: %q", key)
	}
	return nil
}

// ValidateUserID validates a user identifier used to scope persisted settings.
// It rejects identifiers that could escape a storage namespace.
func ValidateUserID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "user id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "user id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "user id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "user id contains invalid characters: %q", pattern)
		}
	}

	return nil
}
