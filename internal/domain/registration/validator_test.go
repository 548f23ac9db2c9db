package registration

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() RegistrationRequest {
	return RegistrationRequest{
		CompanyName:     "Acme Ltda",
		CNPJ:            "11.222.333/0001-81",
		CompanyPhone:    "(11) 3456-7890",
		CompanyEmail:    "contato@acme.com.br",
		AdminName:       "Maria Souza",
		AdminEmail:      "maria@acme.com.br",
		Password:        "Password1!",
		ConfirmPassword: "Password1!",
	}
}

func newTestValidator(t *testing.T) Validator {
	t.Helper()
	v, err := NewValidator(validator.New())
	require.NoError(t, err)
	return v
}

func TestValidator_AcceptsValidRequest(t *testing.T) {
	v := newTestValidator(t)
	req := validRequest()
	assert.NoError(t, v.Validate(&req))
}

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	v := newTestValidator(t)
	req := validRequest()
	req.CompanyName = " A "
	req.CNPJ = "11222333000182"
	req.CompanyPhone = "123"
	req.AdminEmail = "maria@acme"
	req.Password = "abc"
	req.ConfirmPassword = "abd"

	err := v.Validate(&req)

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, FieldErrors{
		FieldCompanyName:     MsgName,
		FieldCNPJ:            MsgCNPJ,
		FieldCompanyPhone:    MsgPhone,
		FieldAdminEmail:      MsgEmail,
		FieldPassword:        MsgPassword,
		FieldConfirmPassword: MsgMismatch,
	}, fields)
}

func TestValidator_BlankIsRequired(t *testing.T) {
	v := newTestValidator(t)
	req := validRequest()
	req.AdminName = "   "

	var fields FieldErrors
	require.ErrorAs(t, v.Validate(&req), &fields)
	assert.Equal(t, FieldErrors{FieldAdminName: MsgRequired}, fields)
}

func TestValidator_NonStruct(t *testing.T) {
	v := newTestValidator(t)
	err := v.Validate("not a struct")

	require.Error(t, err)
	var fields FieldErrors
	assert.False(t, errors.As(err, &fields))
}
