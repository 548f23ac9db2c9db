// internal/domain/registration/errors.go
package registration

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrStepInvalid        = errors.New("step has invalid fields")
	ErrSubmissionInFlight = errors.New("registration submission already in progress")
	ErrNoPreviousStep     = errors.New("already on the first step")
	ErrTerminalStep       = errors.New("registration already completed")
	ErrWrongStep          = errors.New("action not available on this step")
	ErrUnknownField       = errors.New("unknown field")
	ErrClosed             = errors.New("wizard closed")

	// ErrCompanyExists is returned by backends when the CNPJ is already registered.
	ErrCompanyExists = errors.New("a company with this CNPJ is already registered")
	// ErrAdminExists is returned by backends when the admin email already has an account.
	ErrAdminExists = errors.New("an account with this email already exists")
	// ErrDuplicateSubmission is returned when the same CNPJ is being submitted elsewhere.
	ErrDuplicateSubmission = errors.New("a registration for this CNPJ is already being processed")
)

// FieldErrors maps each failing field to its message.
type FieldErrors map[Field]string

func (e FieldErrors) Error() string {
	names := make([]string, 0, len(e))
	for f := range e {
		names = append(names, string(f))
	}
	slices.Sort(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

// StepError is returned when a forward transition is rejected.
type StepError struct {
	Step   Step
	Fields FieldErrors
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %s", e.Step, e.Fields.Error())
}

func (e *StepError) Unwrap() error {
	return ErrStepInvalid
}
