package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorePassword(t *testing.T) {
	tests := []struct {
		password string
		score    int
		label    string
	}{
		{"", 0, "Type a password"},
		{"a", 1, "Very weak"},
		{"A", 1, "Very weak"},
		{"aB", 2, "Weak"},
		{"password1", 3, "Good"},
		{"Password1", 4, "Strong"},
		{"Password1!", 5, "Very strong"},
		{"12345678", 2, "Weak"},
		{"áéíóúçãõ", 2, "Weak"},
		{"pass word", 3, "Good"},
		{"Abcdefg\u0663", 4, "Strong"},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			got := ScorePassword(tt.password)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.label, got.Label)
		})
	}
}

func TestScorePassword_LabelTableIsTotal(t *testing.T) {
	assert.Len(t, strengthLabels, 6)
	for _, label := range strengthLabels {
		assert.NotEmpty(t, label)
	}
}

func TestScorePassword_CountsRunesForLength(t *testing.T) {
	// seven runes, fourteen bytes
	assert.Equal(t, 1, ScorePassword("ççççççç").Score)
}
