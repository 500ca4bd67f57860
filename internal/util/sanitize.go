package util

import (
	"regexp"
	"strings"
	"unicode"

	"coupon-generator/pkg/apierror"
)

const (
	MaxPrefixLength = 20
	// Shopify rejects discount codes longer than this.
	MaxDiscountCodeLength = 255
)

var allowedCodeText = regexp.MustCompile(`^[A-Z0-9_-]+$`)

// SanitizePrefix upper-cases a user supplied prefix and strips invisible
// characters. An empty prefix is valid and means "no prefix".
func SanitizePrefix(prefix string) (string, error) {
	cleaned := stripInvisible(prefix)
	if cleaned == "" {
		return "", nil
	}

	cleaned = strings.ToUpper(cleaned)
	if !allowedCodeText.MatchString(cleaned) {
		return "", apierror.Validation("prefix may only contain letters, digits, '-' and '_'")
	}

	if len([]rune(cleaned)) > MaxPrefixLength {
		return "", apierror.Validation("prefix is too long")
	}

	return cleaned, nil
}

// SanitizeDiscountCode normalizes a hand-entered code the same way.
func SanitizeDiscountCode(code string) (string, error) {
	cleaned := strings.ToUpper(stripInvisible(code))
	if cleaned == "" {
		return "", apierror.Validation("code cannot be empty")
	}

	if !allowedCodeText.MatchString(cleaned) {
		return "", apierror.Validation("code may only contain letters, digits, '-' and '_'")
	}

	if len(cleaned) > MaxDiscountCodeLength {
		return "", apierror.Validation("code is too long")
	}

	return cleaned, nil
}

func stripInvisible(value string) string {
	builder := strings.Builder{}
	builder.Grow(len(value))

	for _, char := range value {
		if unicode.IsControl(char) || isInvisibleUnicode(char) {
			continue
		}
		builder.WriteRune(char)
	}

	return strings.TrimSpace(builder.String())
}

// isInvisibleUnicode reports zero-width and formatting characters that tend
// to ride along when codes are pasted from chat or spreadsheets.
func isInvisibleUnicode(r rune) bool {
	switch r {
	case
		'\u200B', // Zero-Width Space
		'\u200C', // Zero-Width Non-Joiner
		'\u200D', // Zero-Width Joiner
		'\u2060', // Word Joiner
		'\uFEFF': // BOM
		return true
	}

	return unicode.Is(unicode.Cf, r)
}
