// utils/validation.go
package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugStrip    = regexp.MustCompile(`[^a-z0-9]+`)
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(CleanPhone(phone))
}

// CleanPhone drops spaces, dashes and parentheses.
func CleanPhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
}

// IsE164 reports whether the phone can be addressed over WhatsApp.
func IsE164(phone string) bool {
	cleaned := CleanPhone(phone)
	return strings.HasPrefix(cleaned, "+") && phonePattern.MatchString(cleaned)
}

// NormalizeSlug trims and lowercases the input and requires the canonical
// URL-safe pattern.
func NormalizeSlug(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errors.New("slug is required")
	}
	normalized := strings.ToLower(trimmed)
	if !slugPattern.MatchString(normalized) {
		return "", fmt.Errorf("invalid slug %q: must match %s", input, slugPattern.String())
	}
	return normalized, nil
}

// Slugify turns free text ("Salão da Ana") into a slug ("salao-da-ana").
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(s)) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Trim(slugStrip.ReplaceAllString(b.String(), "-"), "-")
}
