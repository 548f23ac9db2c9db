// internal/domain/registration/validate.go
package registration

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MsgRequired = "This field is required"
	MsgName     = "Must be at least 2 characters"
	MsgCNPJ     = "Invalid CNPJ"
	MsgPhone    = "Phone must have 10 or 11 digits"
	MsgEmail    = "Invalid email address"
	MsgPassword = "Use at least 8 characters mixing upper and lower case letters, numbers and symbols"
	MsgMismatch = "Passwords do not match"
)

const minNameLength = 2

// emailShape is a permissive local@domain.tld check, not RFC 5322. \s is
// ASCII-only in RE2, so Unicode separators are excluded with \p{Z}.
var emailShape = regexp.MustCompile(`^[^\s\p{Z}@]+@[^\s\p{Z}@]+\.[^\s\p{Z}@]+$`)

// ValidationContext carries what a rule needs beyond the raw value.
type ValidationContext struct {
	Required bool
	// Password is the sibling password value, read by KindConfirmPassword.
	Password string
}

// Validate applies the required rule and then the rule for kind. It has no
// side effects and keeps no state between calls.
func Validate(kind Kind, raw string, vc ValidationContext) FieldResult {
	if vc.Required && strings.TrimSpace(raw) == "" {
		return fail(MsgRequired)
	}

	switch kind {
	case KindName:
		if utf8.RuneCountInString(strings.TrimSpace(raw)) < minNameLength {
			return fail(MsgName)
		}
	case KindCNPJ:
		if !ValidCNPJ(raw) {
			return fail(MsgCNPJ)
		}
	case KindPhone:
		if !ValidPhone(raw) {
			return fail(MsgPhone)
		}
	case KindEmail:
		if !ValidEmail(raw) {
			return fail(MsgEmail)
		}
	case KindPassword:
		if ScorePassword(raw).Score < minPasswordScore {
			return fail(MsgPassword)
		}
	case KindConfirmPassword:
		if raw != vc.Password {
			return fail(MsgMismatch)
		}
	}
	return ok()
}

// ValidateField validates values[field] using the field's kind and required
// flag. Unknown fields are reported valid.
func ValidateField(field Field, values Values) FieldResult {
	kind, known := field.Kind()
	if !known {
		return ok()
	}
	return Validate(kind, values[field], ValidationContext{
		Required: field.Required(),
		Password: values[FieldPassword],
	})
}

// ValidPhone reports whether s holds 10 or 11 digits once punctuation is
// dropped.
func ValidPhone(s string) bool {
	n := len(digitsOnly(s))
	return n == 10 || n == 11
}

// ValidEmail reports whether s has the local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailShape.MatchString(s)
}
