// cmd/regcli/surface.go
package main

import (
	"fmt"
	"io"
	"sync"

	"trustpanel-registration/internal/domain/registration"
)

// terminalSurface prints wizard state as plain lines. huh already renders
// inputs and inline errors, so only step changes, errors that slipped past
// the form and notifications are written.
type terminalSurface struct {
	mu        sync.Mutex
	out       io.Writer
	loginURL  string
	navigated chan struct{}
	once      sync.Once
}

func newTerminalSurface(out io.Writer, loginURL string) *terminalSurface {
	return &terminalSurface{out: out, loginURL: loginURL, navigated: make(chan struct{})}
}

func (t *terminalSurface) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}

func (t *terminalSurface) SetFieldState(field registration.Field, state registration.FieldState, message string) {
	if state == registration.StateError {
		t.printf("  ✗ %s: %s\n", field, message)
	}
}

func (t *terminalSurface) SetPasswordStrength(registration.PasswordStrength) {}

func (t *terminalSurface) ShowStep(step registration.Step) {
	t.printf("\n== Step %d of %d: %s ==\n", int(step), registration.TotalSteps, step)
}

func (t *terminalSurface) SetBusy(busy bool) {
	if busy {
		t.printf("Submitting registration...\n")
	}
}

func (t *terminalSurface) ShowConfirmation(c registration.Confirmation) {
	t.printf("  Company:        %s\n  CNPJ:           %s\n  Phone:          %s\n  Company email:  %s\n  Administrator:  %s\n  Admin email:    %s\n",
		c.CompanyName, c.CNPJ, c.CompanyPhone, c.CompanyEmail, c.AdminName, c.AdminEmail)
}

func (t *terminalSurface) Notify(message string, kind registration.NotificationKind) {
	t.printf("[%s] %s\n", kind, message)
}

func (t *terminalSurface) GoToLogin() {
	t.printf("Log in at %s\n", t.loginURL)
	t.once.Do(func() { close(t.navigated) })
}
