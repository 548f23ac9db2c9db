// internal/domain/registration/submit.go
package registration

import (
	"context"
	"fmt"
	"time"
)

// DefaultSubmitDelay matches the latency the landing page used to fake.
const DefaultSubmitDelay = 2 * time.Second

// SimulatedSubmitter accepts every draft after Delay.
type SimulatedSubmitter struct {
	Delay time.Duration
}

func NewSimulatedSubmitter(delay time.Duration) *SimulatedSubmitter {
	return &SimulatedSubmitter{Delay: delay}
}

func (s *SimulatedSubmitter) Submit(ctx context.Context, _ Draft) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// GuardedSubmitter holds a per-CNPJ guard around the wrapped submitter so the
// same company cannot be submitted twice at the same time.
type GuardedSubmitter struct {
	guard SubmissionGuard
	next  Submitter
}

func NewGuardedSubmitter(guard SubmissionGuard, next Submitter) *GuardedSubmitter {
	return &GuardedSubmitter{guard: guard, next: next}
}

func (s *GuardedSubmitter) Submit(ctx context.Context, draft Draft) error {
	key := NormalizeCNPJ(draft.CNPJ)

	token, acquired, err := s.guard.Acquire(ctx, key)
	if err != nil {
		return fmt.Errorf("acquire submission guard: %w", err)
	}
	if !acquired {
		return ErrDuplicateSubmission
	}
	defer s.guard.Release(context.WithoutCancel(ctx), key, token)

	return s.next.Submit(ctx, draft)
}
