// cmd/regcli/register.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"trustpanel-registration/internal/domain/registration"
	"trustpanel-registration/internal/logger"
)

type registerOptions struct {
	SubmitDelay time.Duration
	LoginDelay  time.Duration
	LoginURL    string
}

func newRegisterCmd() *cobra.Command {
	opts := registerOptions{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Run the three-step company registration wizard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runRegister(cmd.Context(), cmd.OutOrStdout(), opts)
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Registration cancelled.")
				return nil
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&opts.SubmitDelay, "submit-delay", registration.DefaultSubmitDelay, "simulated backend latency")
	cmd.Flags().DurationVar(&opts.LoginDelay, "login-delay", registration.DefaultLoginDelay, "pause before opening the login page")
	cmd.Flags().StringVar(&opts.LoginURL, "login-url", "https://app.trustpanel.com.br/login", "login page shown at the end")
	return cmd
}

func runRegister(ctx context.Context, out io.Writer, opts registerOptions) error {
	log := logger.New(io.Discard, "error")
	if verbose {
		log = logger.New(os.Stderr, "debug")
	}

	surface := newTerminalSurface(out, opts.LoginURL)
	wizard := registration.NewWizard(surface, registration.NewSimulatedSubmitter(opts.SubmitDelay),
		registration.WithNotifier(surface),
		registration.WithLoginNavigator(surface),
		registration.WithLoginDelay(opts.LoginDelay),
		registration.WithLogger(log),
	)
	defer wizard.Close()
	wizard.Start()

	answers := newAnswers()
	for {
		switch wizard.Step() {
		case registration.StepCompany:
			if err := companyForm(answers).Run(); err != nil {
				return err
			}
			feed(wizard, registration.StepCompany, answers)
			if err := wizard.Next(ctx); err != nil && !errors.Is(err, registration.ErrStepInvalid) {
				return err
			}

		case registration.StepAdmin:
			if err := adminForm(answers).Run(); err != nil {
				return err
			}
			feed(wizard, registration.StepAdmin, answers)

			action, err := chooseAction()
			if err != nil {
				return err
			}
			if action == "back" {
				if err := wizard.Back(); err != nil {
					return err
				}
				continue
			}

			done, err := wizard.Finish(ctx)
			if errors.Is(err, registration.ErrStepInvalid) {
				continue
			}
			if err != nil {
				return err
			}
			// A failed submission was already reported; the loop returns to step two.
			<-done

		case registration.StepConfirmation:
			return exitToLogin(ctx, wizard, surface)
		}
	}
}

func exitToLogin(ctx context.Context, wizard *registration.Wizard, surface *terminalSurface) error {
	var login bool
	err := huh.NewConfirm().
		Title("Go to login now?").
		Affirmative("Yes").
		Negative("No").
		Value(&login).
		Run()
	if err != nil || !login {
		return err
	}

	if err := wizard.GoToLogin(); err != nil {
		return err
	}
	select {
	case <-surface.navigated:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func chooseAction() (string, error) {
	action := "finish"
	err := huh.NewSelect[string]().
		Title("Ready to register?").
		Options(
			huh.NewOption("Finish registration", "finish"),
			huh.NewOption("Back to company data", "back"),
		).
		Value(&action).
		Run()
	return action, err
}

// feed replays the answers of step into the wizard the way a browser would:
// one input and one blur per field.
func feed(wizard *registration.Wizard, step registration.Step, a answers) {
	for _, f := range step.Fields() {
		if err := wizard.Input(f, *a[f]); err != nil {
			continue
		}
		_, _ = wizard.Blur(f)
	}
}

type answers map[registration.Field]*string

func newAnswers() answers {
	a := answers{}
	for _, step := range []registration.Step{registration.StepCompany, registration.StepAdmin} {
		for _, f := range step.Fields() {
			a[f] = new(string)
		}
	}
	return a
}

func (a answers) values() registration.Values {
	v := registration.Values{}
	for f, p := range a {
		v[f] = *p
	}
	return v
}

// check adapts the field validators to huh's inline validation.
func (a answers) check(field registration.Field) func(string) error {
	return func(s string) error {
		values := a.values()
		values[field] = s
		if res := registration.ValidateField(field, values); !res.Valid {
			return errors.New(res.Message)
		}
		return nil
	}
}

func (a answers) input(field registration.Field, title, placeholder string) *huh.Input {
	return huh.NewInput().
		Key(string(field)).
		Title(title).
		Placeholder(placeholder).
		Value(a[field]).
		Validate(a.check(field))
}

func companyForm(a answers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			a.input(registration.FieldCompanyName, "Company name", "Acme Ltda"),
			a.input(registration.FieldCNPJ, "CNPJ", "00.000.000/0000-00"),
			a.input(registration.FieldCompanyPhone, "Company phone", "(11) 98765-4321"),
			a.input(registration.FieldCompanyEmail, "Company email", "contact@company.com.br"),
		).Title("Step 1 of 3 · Company data"),
	)
}

func adminForm(a answers) *huh.Form {
	password := a[registration.FieldPassword]
	return huh.NewForm(
		huh.NewGroup(
			a.input(registration.FieldAdminName, "Administrator name", "Maria Souza"),
			a.input(registration.FieldAdminEmail, "Administrator email", "maria@company.com.br"),
			a.input(registration.FieldPassword, "Password", "").
				EchoMode(huh.EchoModePassword).
				DescriptionFunc(func() string {
					return "Strength: " + registration.ScorePassword(*password).Label
				}, password),
			a.input(registration.FieldConfirmPassword, "Confirm password", "").
				EchoMode(huh.EchoModePassword),
		).Title("Step 2 of 3 · Administrator"),
	)
}
