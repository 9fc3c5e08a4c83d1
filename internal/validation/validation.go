// Package validation holds the pure input rules for account fields.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

const (
	// MinPasswordLength is the minimum password length in UTF-16 code units,
	// so a character outside the Basic Multilingual Plane counts twice.
	MinPasswordLength = 8

	// ForbiddenUsernameChars lists the punctuation a username may not contain.
	ForbiddenUsernameChars = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"
)

// Loose shape check, not an RFC 5322 validator.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidPassword(password string) bool {
	return password != "" && len(utf16.Encode([]rune(password))) >= MinPasswordLength
}

// IsValidUsername rejects blank names and names containing any forbidden
// character. Embedded spaces are allowed.
func IsValidUsername(username string) bool {
	if strings.TrimSpace(username) == "" {
		return false
	}
	return !strings.ContainsAny(username, ForbiddenUsernameChars)
}
