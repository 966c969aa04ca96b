// Package utils holds small input helpers shared by the flows and handlers.
package utils

import (
	"strings"
	"unicode"
)

// NormalizeMatric upper-cases a matriculation number and strips surrounding
// whitespace. Inner characters are left alone: lookups are exact.
func NormalizeMatric(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CollapseSpaces trims s and folds every run of whitespace into one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
