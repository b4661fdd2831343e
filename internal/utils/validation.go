package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxQueryLength bounds free-text queries, in characters.
const MaxQueryLength = 200

const maxNameLength = 100

var (
	// Indicator, place and country names: letters, digits, spaces, hyphens, apostrophes
	validNamePattern = regexp.MustCompile(`^[\p{L}0-9 '\-]+$`)

	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateSessionID checks that id is a UUID.
func ValidateSessionID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("id must be a UUID")
	}
	return nil
}

// ValidateName validates an indicator, place or country name taken from a path or query parameter.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name cannot be empty")
	}

	if utf8.RuneCountInString(name) > maxNameLength {
		return errors.New("name too long (max 100 characters)")
	}

	if !validNamePattern.MatchString(name) {
		return errors.New("name contains invalid characters")
	}

	return nil
}

// ValidateQuery validates free-text query strings. Empty queries are left to the query processor.
func ValidateQuery(query string) error {
	if query == "" {
		return nil
	}

	if utf8.RuneCountInString(query) > MaxQueryLength {
		return errors.New("query too long (max 200 characters)")
	}

	if dangerousPattern.MatchString(query) {
		return errors.New("query contains invalid characters")
	}

	return nil
}

// SanitizeInput strips HTML tags and surrounding whitespace.
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// ValidateAndSanitizeQuery validates query and returns it sanitized.
func ValidateAndSanitizeQuery(query string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}

	return SanitizeInput(query), nil
}
