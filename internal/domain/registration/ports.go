// internal/domain/registration/ports.go
package registration

import "context"

// FieldState is the visual state of one input.
type FieldState string

const (
	StateNeutral FieldState = "neutral"
	StateSuccess FieldState = "success"
	StateError   FieldState = "error"
)

// NotificationKind selects the toast style.
type NotificationKind string

const (
	NotifyInfo    NotificationKind = "info"
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Presenter is the surface the wizard draws on. The wizard never reads
// layout back from it.
type Presenter interface {
	SetFieldState(field Field, state FieldState, message string)
	SetPasswordStrength(strength PasswordStrength)
	ShowStep(step Step)
	SetBusy(busy bool)
	ShowConfirmation(c Confirmation)
}

// Notifier shows transient messages.
type Notifier interface {
	Notify(message string, kind NotificationKind)
}

// LoginNavigator leaves the wizard for the login page.
type LoginNavigator interface {
	GoToLogin()
}

// Submitter hands a completed draft to a backend. It may block; the wizard
// calls it off the caller's goroutine.
type Submitter interface {
	Submit(ctx context.Context, draft Draft) error
}
