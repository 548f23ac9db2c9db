// internal/domain/registration/cnpj.go
package registration

import "strings"

const cnpjLength = 14

// digitsOnly drops every rune that is not an ASCII digit.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeCNPJ strips punctuation, keeping the digits as stored.
func NormalizeCNPJ(s string) string {
	return digitsOnly(s)
}

// ValidCNPJ reports whether s, after punctuation is stripped, is a 14-digit
// CNPJ whose two trailing check digits verify.
func ValidCNPJ(s string) bool {
	d := digitsOnly(s)
	if len(d) != cnpjLength {
		return false
	}
	if strings.Count(d, d[:1]) == cnpjLength {
		return false
	}

	first := cnpjCheckDigit(d[:12])
	if int(d[12]-'0') != first {
		return false
	}
	second := cnpjCheckDigit(d[:13])
	return int(d[13]-'0') == second
}

// cnpjCheckDigit weighs digits right to left with 2..9, wrapping back to 2.
func cnpjCheckDigit(digits string) int {
	sum, weight := 0, 2
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	if rem := sum % 11; rem >= 2 {
		return 11 - rem
	}
	return 0
}

// FormatCNPJ renders a CNPJ as 00.000.000/0000-00. Inputs that do not carry
// exactly 14 digits are returned unchanged.
func FormatCNPJ(s string) string {
	d := digitsOnly(s)
	if len(d) != cnpjLength {
		return s
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// FormatPhone renders 10 or 11 digit phones as (00) 0000-0000 or
// (00) 00000-0000.
func FormatPhone(s string) string {
	d := digitsOnly(s)
	switch len(d) {
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	default:
		return s
	}
}
