package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Size limits (in bytes)
const (
	MaxMessageSize = 16 * 1024 // 16KB - single WebSocket event
)

// String length limits
const (
	MaxIDLength    = 128
	MaxTitleLength = 256
	MaxIconLength  = 512
)

// Regular expressions for validation
var (
	// SafeIDPattern allows alphanumeric, hyphens, underscores
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// IconPathPattern allows site-relative paths and http(s) URLs
	IconPathPattern = regexp.MustCompile(`^(/|https?://)[^\s"'<>]*$`)
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil // Optional field, empty is OK
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	// Check for null bytes (security issue)
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateID validates an ID field
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateTitle validates a window title. Empty titles are allowed and fall
// back to the default title when a window opens.
func ValidateTitle(title string) error {
	return ValidateString(title, "title", 0, MaxTitleLength, false)
}

// ValidateIcon validates an icon reference
func ValidateIcon(icon string) error {
	if err := ValidateString(icon, "icon", 0, MaxIconLength, false); err != nil {
		return err
	}

	if icon != "" && !IconPathPattern.MatchString(icon) {
		return fmt.Errorf("icon must be a site-relative path or http(s) URL")
	}

	return nil
}

// ValidateMessageSize checks a raw message against max, or MaxMessageSize
// when max is not positive
func ValidateMessageSize(data []byte, max int) error {
	if max <= 0 {
		max = MaxMessageSize
	}
	if len(data) > max {
		return fmt.Errorf("message size %d bytes exceeds maximum %d bytes", len(data), max)
	}
	return nil
}
