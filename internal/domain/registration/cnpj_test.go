package registration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCNPJ_KnownFixtures(t *testing.T) {
	for _, cnpj := range []string{
		"11222333000181",
		"11.222.333/0001-81",
		"11.444.777/0001-61",
		" 11 444 777 0001 61 ",
	} {
		assert.True(t, ValidCNPJ(cnpj), cnpj)
	}
}

func TestValidCNPJ_RepeatedDigitsRejected(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		cnpj := strings.Repeat(string(d), 14)
		assert.False(t, ValidCNPJ(cnpj), cnpj)
	}
}

func TestValidCNPJ_FlippedCheckDigit(t *testing.T) {
	cases := map[string]string{
		"first check digit":  "11222333000191",
		"second check digit": "11222333000182",
		"both check digits":  "11222333000100",
	}
	for name, cnpj := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, ValidCNPJ(cnpj))
		})
	}
}

func TestValidCNPJ_WrongLength(t *testing.T) {
	for _, cnpj := range []string{"", "1122233300018", "112223330001811", "abc", "11.222.333/0001"} {
		assert.False(t, ValidCNPJ(cnpj), cnpj)
	}
}

func TestCNPJCheckDigit(t *testing.T) {
	assert.Equal(t, 8, cnpjCheckDigit("112223330001"))
	assert.Equal(t, 1, cnpjCheckDigit("1122233300018"))
	assert.Equal(t, 6, cnpjCheckDigit("114447770001"))
}

func TestFormatCNPJ(t *testing.T) {
	assert.Equal(t, "11.222.333/0001-81", FormatCNPJ("11222333000181"))
	assert.Equal(t, "11.222.333/0001-81", FormatCNPJ("11.222.333/0001-81"))
	assert.Equal(t, "123", FormatCNPJ("123"))
}

func TestNormalizeCNPJ(t *testing.T) {
	assert.Equal(t, "11222333000181", NormalizeCNPJ("11.222.333/0001-81"))
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "(11) 3456-7890", FormatPhone("1134567890"))
	assert.Equal(t, "(11) 98765-4321", FormatPhone("11 98765 4321"))
	assert.Equal(t, "12345", FormatPhone("12345"))
}
