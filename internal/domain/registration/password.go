// internal/domain/registration/password.go
package registration

import (
	"unicode"
	"unicode/utf8"
)

const minPasswordLength = 8

// minPasswordScore is the lowest score accepted by the password validator.
const minPasswordScore = 2

var strengthLabels = [...]string{
	"Type a password",
	"Very weak",
	"Weak",
	"Good",
	"Strong",
	"Very strong",
}

// ScorePassword awards one point each for length, lowercase, uppercase,
// ASCII digits and any rune that is neither a letter nor an ASCII digit.
func ScorePassword(password string) PasswordStrength {
	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case char >= '0' && char <= '9':
			hasNumber = true
		case !unicode.IsLetter(char):
			hasSpecial = true
		}
	}

	score := 0
	for _, point := range []bool{
		utf8.RuneCountInString(password) >= minPasswordLength,
		hasLower,
		hasUpper,
		hasNumber,
		hasSpecial,
	} {
		if point {
			score++
		}
	}

	return PasswordStrength{Score: score, Label: strengthLabels[score]}
}
