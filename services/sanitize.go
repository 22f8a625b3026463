package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips all HTML from free-text inputs (titles, observations,
// cancellation reasons) before they are persisted.
var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText removes any HTML markup and trims whitespace
func SanitizeText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// SanitizeTextPtr sanitizes an optional text field, preserving nil
func SanitizeTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := SanitizeText(*s)
	return &clean
}
