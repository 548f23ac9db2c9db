// internal/domain/registration/wizard.go
package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"trustpanel-registration/internal/metrics"
)

const (
	DefaultLoginDelay = 2 * time.Second

	MsgSubmitted    = "Registration completed! Your account is ready."
	MsgSubmitFailed = "Registration failed. Please try again."
	MsgRedirecting  = "Redirecting to login..."
)

// Wizard owns the registration progress: the current step, the values typed
// so far and the draft of values that passed their step. One Wizard serves
// one form; callers may use it from several goroutines.
type Wizard struct {
	mu         sync.Mutex
	step       Step
	values     Values
	draft      Draft
	submitting bool
	closed     bool
	loginTimer *time.Timer

	surface    Presenter
	fields     *FieldPresenter
	notifier   Notifier
	navigator  LoginNavigator
	submitter  Submitter
	loginDelay time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Wizard)

func WithNotifier(n Notifier) Option {
	return func(w *Wizard) { w.notifier = n }
}

func WithLoginNavigator(n LoginNavigator) Option {
	return func(w *Wizard) { w.navigator = n }
}

func WithLoginDelay(d time.Duration) Option {
	return func(w *Wizard) { w.loginDelay = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Wizard) { w.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Wizard) { w.metrics = m }
}

// NewWizard starts on the company step with an empty draft.
func NewWizard(surface Presenter, submitter Submitter, opts ...Option) *Wizard {
	w := &Wizard{
		step:       StepCompany,
		values:     Values{},
		surface:    surface,
		fields:     NewFieldPresenter(surface),
		notifier:   nopNotifier{},
		navigator:  nopNavigator{},
		submitter:  submitter,
		loginDelay: DefaultLoginDelay,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start draws the current step and an empty strength meter.
func (w *Wizard) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.surface.ShowStep(w.step)
	w.surface.SetPasswordStrength(ScorePassword(w.values[FieldPassword]))
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Input records a keystroke-level change. Prior error state on the field is
// cleared; the password confirmation is re-checked whenever either password
// field changes.
func (w *Wizard) Input(field Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editable(field); err != nil {
		return err
	}
	w.values[field] = value

	if field == FieldConfirmPassword && value != "" {
		w.present(field)
	} else {
		w.fields.Clear(field)
	}

	if field == FieldPassword {
		w.surface.SetPasswordStrength(ScorePassword(value))
		if w.values[FieldConfirmPassword] != "" {
			w.present(FieldConfirmPassword)
		}
	}
	return nil
}

// Blur runs full validation on field and shows the result.
func (w *Wizard) Blur(field Field) (FieldResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editable(field); err != nil {
		return FieldResult{}, err
	}
	return w.present(field), nil
}

// Next moves forward. On the company step every field must pass; on the
// admin step it behaves like Finish and the outcome arrives through the
// notifier.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.navigable(); err != nil {
		return err
	}

	switch w.step {
	case StepCompany:
		if invalid := w.validateStep(StepCompany); len(invalid) > 0 {
			w.logger.Debug("step rejected", "step", StepCompany.String(), "fields", len(invalid))
			return &StepError{Step: StepCompany, Fields: invalid}
		}
		w.persist(StepCompany)
		w.moveTo(StepAdmin)
		return nil
	case StepAdmin:
		_, err := w.finish(ctx)
		return err
	default:
		return ErrTerminalStep
	}
}

// Back returns from the admin step to the company step without validating
// anything. Saved draft values are kept.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.navigable(); err != nil {
		return err
	}

	switch w.step {
	case StepAdmin:
		w.moveTo(StepCompany)
		return nil
	case StepCompany:
		return ErrNoPreviousStep
	default:
		return ErrTerminalStep
	}
}

// Finish validates the admin step and hands the draft to the submitter.
// The returned channel yields the backend result exactly once. Only one
// submission may be in flight.
func (w *Wizard) Finish(ctx context.Context) (<-chan error, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.navigable(); err != nil {
		return nil, err
	}
	return w.finish(ctx)
}

func (w *Wizard) finish(ctx context.Context) (<-chan error, error) {
	switch w.step {
	case StepAdmin:
	case StepConfirmation:
		return nil, ErrTerminalStep
	default:
		return nil, ErrWrongStep
	}

	if invalid := w.validateStep(StepAdmin); len(invalid) > 0 {
		w.logger.Debug("step rejected", "step", StepAdmin.String(), "fields", len(invalid))
		return nil, &StepError{Step: StepAdmin, Fields: invalid}
	}
	w.persist(StepAdmin)

	w.submitting = true
	w.surface.SetBusy(true)
	w.track("registration_submitted")

	draft := w.draft
	done := make(chan error, 1)
	go func() {
		start := time.Now()
		err := w.submitter.Submit(ctx, draft)
		w.metrics.ObserveSubmission(start, err)
		w.resolve(err)
		done <- err
		close(done)
	}()
	return done, nil
}

func (w *Wizard) resolve(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.submitting = false
	if w.closed {
		w.logger.Debug("submission resolved after close", "error", err)
		return
	}
	w.surface.SetBusy(false)

	if err != nil {
		w.logger.Warn("registration submission failed", "error", err)
		w.notifier.Notify(submitFailureMessage(err), NotifyError)
		return
	}

	w.moveTo(StepConfirmation)
	w.surface.ShowConfirmation(w.draft.Confirm())
	w.notifier.Notify(MsgSubmitted, NotifySuccess)
}

// GoToLogin is the exit action of the confirmation step. The navigator is
// called after the login delay unless the wizard is closed first.
func (w *Wizard) GoToLogin() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.step != StepConfirmation {
		return ErrWrongStep
	}
	if w.loginTimer != nil {
		return nil
	}

	w.notifier.Notify(MsgRedirecting, NotifyInfo)
	w.track("go_to_login")
	w.loginTimer = time.AfterFunc(w.loginDelay, func() {
		w.mu.Lock()
		closed := w.closed
		w.mu.Unlock()
		if !closed {
			w.navigator.GoToLogin()
		}
	})
	return nil
}

// Close detaches the wizard from its collaborators. Pending submissions and
// redirects resolve without touching the surface.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	if w.loginTimer != nil {
		w.loginTimer.Stop()
	}
}

func (w *Wizard) editable(field Field) error {
	if w.closed {
		return ErrClosed
	}
	if _, known := field.Kind(); !known {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if w.step == StepConfirmation {
		return ErrTerminalStep
	}
	return nil
}

func (w *Wizard) navigable() error {
	if w.closed {
		return ErrClosed
	}
	if w.submitting {
		return ErrSubmissionInFlight
	}
	return nil
}

func (w *Wizard) present(field Field) FieldResult {
	result := ValidateField(field, w.values)
	w.fields.Apply(field, w.values[field], result)
	if !result.Valid {
		w.metrics.IncrementValidationFailure(string(field))
	}
	return result
}

// validateStep shows the state of every field on step and returns those that
// failed. All fields are checked so every error is visible at once.
func (w *Wizard) validateStep(step Step) FieldErrors {
	invalid := FieldErrors{}
	for _, f := range step.Fields() {
		if res := w.present(f); !res.Valid {
			invalid[f] = res.Message
		}
	}
	return invalid
}

func (w *Wizard) persist(step Step) {
	for _, f := range step.Fields() {
		w.draft.set(f, w.values[f])
	}
}

func (w *Wizard) moveTo(step Step) {
	from := w.step
	w.step = step
	w.surface.ShowStep(step)
	w.metrics.ObserveTransition(from.String(), step.String())
	w.track("step_changed", "from", from.String(), "to", step.String())
}

func (w *Wizard) track(event string, attrs ...any) {
	w.logger.Info("event tracked", append([]any{"event", event}, attrs...)...)
}

func submitFailureMessage(err error) string {
	switch {
	case errors.Is(err, ErrCompanyExists):
		return ErrCompanyExists.Error()
	case errors.Is(err, ErrAdminExists):
		return ErrAdminExists.Error()
	case errors.Is(err, ErrDuplicateSubmission):
		return ErrDuplicateSubmission.Error()
	default:
		return MsgSubmitFailed
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, NotificationKind) {}

type nopNavigator struct{}

func (nopNavigator) GoToLogin() {}
