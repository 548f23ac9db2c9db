// internal/domain/registration/validator.go
package registration

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Validator checks tagged request structs.
type Validator interface {
	Validate(interface{}) error
}

// RegistrationRequest is the one-shot form of the wizard: both steps in a
// single payload.
type RegistrationRequest struct {
	CompanyName     string `json:"companyName" validate:"not_blank,min_trimmed=2"`
	CNPJ            string `json:"cnpj" validate:"not_blank,cnpj"`
	CompanyPhone    string `json:"companyPhone" validate:"not_blank,br_phone"`
	CompanyEmail    string `json:"companyEmail" validate:"not_blank,email_shape"`
	AdminName       string `json:"adminName" validate:"not_blank,min_trimmed=2"`
	AdminEmail      string `json:"adminEmail" validate:"not_blank,email_shape"`
	Password        string `json:"password" validate:"not_blank,password_strength"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

// Draft drops the confirmation and keeps the rest as typed.
func (r RegistrationRequest) Draft() Draft {
	return Draft{
		CompanyName:  r.CompanyName,
		CNPJ:         r.CNPJ,
		CompanyPhone: r.CompanyPhone,
		CompanyEmail: r.CompanyEmail,
		AdminName:    r.AdminName,
		AdminEmail:   r.AdminEmail,
		Password:     r.Password,
	}
}

type ValidatorWrapper struct {
	validate *validator.Validate
}

// NewValidator registers the registration rules on v and reports fields by
// their JSON names.
func NewValidator(v *validator.Validate) (Validator, error) {
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"not_blank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"min_trimmed": func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
		},
		"cnpj": func(fl validator.FieldLevel) bool {
			return ValidCNPJ(fl.Field().String())
		},
		"br_phone": func(fl validator.FieldLevel) bool {
			return ValidPhone(fl.Field().String())
		},
		"email_shape": func(fl validator.FieldLevel) bool {
			return ValidEmail(fl.Field().String())
		},
		"password_strength": func(fl validator.FieldLevel) bool {
			return ScorePassword(fl.Field().String()).Score >= minPasswordScore
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, err
		}
	}

	return &ValidatorWrapper{
		validate: v,
	}, nil
}

// Validate returns FieldErrors for rule failures and the raw error for
// anything else, such as a non-struct argument.
func (v *ValidatorWrapper) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := FieldErrors{}
	for _, fe := range verrs {
		fields[Field(fe.Field())] = tagMessage(fe)
	}
	return fields
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "not_blank", "required", "required_if":
		return MsgRequired
	case "min_trimmed":
		return MsgName
	case "cnpj":
		return MsgCNPJ
	case "br_phone":
		return MsgPhone
	case "email_shape":
		return MsgEmail
	case "password_strength":
		return MsgPassword
	case "eqfield":
		return MsgMismatch
	default:
		return fe.Error()
	}
}
