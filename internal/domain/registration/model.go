// internal/domain/registration/model.go
package registration

// Field names a wizard input.
type Field string

const (
	FieldCompanyName     Field = "companyName"
	FieldCNPJ            Field = "cnpj"
	FieldCompanyPhone    Field = "companyPhone"
	FieldCompanyEmail    Field = "companyEmail"
	FieldAdminName       Field = "adminName"
	FieldAdminEmail      Field = "adminEmail"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
)

// Kind selects the validation rule applied to a field.
type Kind int

const (
	KindName Kind = iota
	KindCNPJ
	KindPhone
	KindEmail
	KindPassword
	KindConfirmPassword
)

var fieldKinds = map[Field]Kind{
	FieldCompanyName:     KindName,
	FieldCNPJ:            KindCNPJ,
	FieldCompanyPhone:    KindPhone,
	FieldCompanyEmail:    KindEmail,
	FieldAdminName:       KindName,
	FieldAdminEmail:      KindEmail,
	FieldPassword:        KindPassword,
	FieldConfirmPassword: KindConfirmPassword,
}

// Kind returns the validation kind of f and whether f is a known field.
func (f Field) Kind() (Kind, bool) {
	k, ok := fieldKinds[f]
	return k, ok
}

// Required reports whether f must be non-blank. confirmPassword is
// cross-checked against password instead.
func (f Field) Required() bool {
	_, ok := fieldKinds[f]
	return ok && f != FieldConfirmPassword
}

// Step is the wizard position.
type Step int

const (
	StepCompany Step = iota + 1
	StepAdmin
	StepConfirmation
)

// TotalSteps is the number of wizard steps.
const TotalSteps = 3

func (s Step) String() string {
	switch s {
	case StepCompany:
		return "company"
	case StepAdmin:
		return "admin"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

var stepFields = map[Step][]Field{
	StepCompany: {FieldCompanyName, FieldCNPJ, FieldCompanyPhone, FieldCompanyEmail},
	StepAdmin:   {FieldAdminName, FieldAdminEmail, FieldPassword, FieldConfirmPassword},
}

// Fields returns the inputs shown on step s, in display order.
func (s Step) Fields() []Field {
	return append([]Field(nil), stepFields[s]...)
}

// Values holds raw input values as currently typed.
type Values map[Field]string

// FieldResult is the outcome of validating one field.
type FieldResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

func ok() FieldResult { return FieldResult{Valid: true} }

func fail(msg string) FieldResult { return FieldResult{Valid: false, Message: msg} }

// PasswordStrength is a 0-5 score with its label.
type PasswordStrength struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// Draft accumulates values that passed validation when their step was left.
// It never holds the password confirmation.
type Draft struct {
	CompanyName  string `json:"companyName"`
	CNPJ         string `json:"cnpj"`
	CompanyPhone string `json:"companyPhone"`
	CompanyEmail string `json:"companyEmail"`
	AdminName    string `json:"adminName"`
	AdminEmail   string `json:"adminEmail"`
	Password     string `json:"-"`
}

func (d *Draft) set(f Field, v string) {
	switch f {
	case FieldCompanyName:
		d.CompanyName = v
	case FieldCNPJ:
		d.CNPJ = v
	case FieldCompanyPhone:
		d.CompanyPhone = v
	case FieldCompanyEmail:
		d.CompanyEmail = v
	case FieldAdminName:
		d.AdminName = v
	case FieldAdminEmail:
		d.AdminEmail = v
	case FieldPassword:
		d.Password = v
	}
}

// Confirmation is the read-only summary rendered on the last step.
type Confirmation struct {
	CompanyName  string `json:"companyName"`
	CNPJ         string `json:"cnpj"`
	CompanyPhone string `json:"companyPhone"`
	CompanyEmail string `json:"companyEmail"`
	AdminName    string `json:"adminName"`
	AdminEmail   string `json:"adminEmail"`
}

// Confirm projects d into display fields.
func (d Draft) Confirm() Confirmation {
	return Confirmation{
		CompanyName:  d.CompanyName,
		CNPJ:         FormatCNPJ(d.CNPJ),
		CompanyPhone: FormatPhone(d.CompanyPhone),
		CompanyEmail: d.CompanyEmail,
		AdminName:    d.AdminName,
		AdminEmail:   d.AdminEmail,
	}
}
