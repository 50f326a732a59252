package validation

import (
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8

	// PasswordSymbols is the only punctuation a new password may contain.
	PasswordSymbols = "!@#$%^&*"
)

// IsStrongPassword reports whether pw is at least MinPasswordLength long,
// consists only of ASCII letters, digits and PasswordSymbols, and contains
// at least one digit and one symbol.
func IsStrongPassword(pw string) bool {
	if len(pw) < MinPasswordLength {
		return false
	}
	var hasDigit, hasSymbol bool
	for _, r := range pw {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(PasswordSymbols, r):
			hasSymbol = true
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return hasDigit && hasSymbol
}

// PasswordStrength scores pw from 0 to 100. Length, lowercase and uppercase
// are worth 25 each; a digit and a symbol are worth 12.5 each.
func PasswordStrength(pw string) float64 {
	var score float64
	if utf8.RuneCountInString(pw) >= MinPasswordLength {
		score += 25
	}
	if strings.ContainsFunc(pw, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		score += 25
	}
	if strings.ContainsFunc(pw, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		score += 25
	}
	if strings.ContainsFunc(pw, func(r rune) bool { return r >= '0' && r <= '9' }) {
		score += 12.5
	}
	if strings.ContainsAny(pw, PasswordSymbols) {
		score += 12.5
	}
	return min(score, 100)
}

// StrengthLabel names a PasswordStrength score.
func StrengthLabel(score float64) string {
	switch {
	case score < 25:
		return "Weak"
	case score < 50:
		return "Fair"
	case score < 75:
		return "Good"
	default:
		return "Strong"
	}
}
