// Package validate holds the input predicates used by the create handlers.
package validate

import (
	"regexp"

	"rentflow-portal/internal/format"
)

var (
	kenyanPhonePattern = regexp.MustCompile(`^254[17]\d{8}$`)
	// Loose heuristic: one @ with a dot somewhere after it. Not RFC 5322.
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	kenyanIDPattern = regexp.MustCompile(`^\d{7,8}$`)
	nonDigits       = regexp.MustCompile(`\D`)
)

// KenyanPhone reports whether phone normalizes to a valid Safaricom/Airtel
// style Kenyan mobile number (254 7xx / 254 1xx).
func KenyanPhone(phone string) bool {
	return kenyanPhonePattern.MatchString(format.NormalizePhone(phone))
}

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// KenyanID reports whether the digit-only form of id has 7 or 8 digits.
func KenyanID(id string) bool {
	return kenyanIDPattern.MatchString(nonDigits.ReplaceAllString(id, ""))
}
