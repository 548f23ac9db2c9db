package registration

import (
	"context"
	"sync"
)

type fieldView struct {
	State   FieldState
	Message string
}

type notification struct {
	Message string
	Kind    NotificationKind
}

// recordingSurface implements Presenter, Notifier and LoginNavigator.
type recordingSurface struct {
	mu           sync.Mutex
	fields       map[Field]fieldView
	steps        []Step
	busy         []bool
	strength     PasswordStrength
	confirmation *Confirmation
	notes        []notification
	navigations  int
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{fields: map[Field]fieldView{}}
}

func (s *recordingSurface) SetFieldState(f Field, state FieldState, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[f] = fieldView{state, msg}
}

func (s *recordingSurface) SetPasswordStrength(p PasswordStrength) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strength = p
}

func (s *recordingSurface) ShowStep(step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, step)
}

func (s *recordingSurface) SetBusy(b bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = append(s.busy, b)
}

func (s *recordingSurface) ShowConfirmation(c Confirmation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmation = &c
}

func (s *recordingSurface) Notify(msg string, kind NotificationKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, notification{msg, kind})
}

func (s *recordingSurface) GoToLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigations++
}

func (s *recordingSurface) field(f Field) fieldView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields[f]
}

func (s *recordingSurface) lastNote() notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notes) == 0 {
		return notification{}
	}
	return s.notes[len(s.notes)-1]
}

func (s *recordingSurface) navigationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navigations
}

// stubSubmitter returns queued results in order and nil once they run out.
// When gate is set every call waits for it.
type stubSubmitter struct {
	mu      sync.Mutex
	results []error
	gate    chan struct{}
	drafts  []Draft
}

func (s *stubSubmitter) Submit(ctx context.Context, d Draft) error {
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = append(s.drafts, d)
	if len(s.results) == 0 {
		return nil
	}
	err := s.results[0]
	s.results = s.results[1:]
	return err
}
