package usecases

import (
	"context"
	"errors"
	"fmt"

	domainerrors "partner-onboarding.backend/internal/domain/errors"
)

// Saga tracks the completed steps of an operation that spans systems without a
// shared transaction, together with the compensation each step owes.
type Saga struct {
	name          string
	completed     []string
	compensations []sagaCompensation
}

type sagaCompensation struct {
	step string
	fn   func(ctx context.Context) error
}

// CompensationFailure is a compensating action that could not be applied
type CompensationFailure struct {
	Step string
	Err  error
}

// SagaResult reports what Compensate did
type SagaResult struct {
	Saga        string
	Completed   []string
	Compensated []string
	Failures    []CompensationFailure
}

// Clean reports whether every owed compensation succeeded
func (r SagaResult) Clean() bool {
	return len(r.Failures) == 0
}

// Err joins the compensation failures under ErrCompensationPending, or nil
// when the rollback was clean
func (r SagaResult) Err() error {
	if r.Clean() {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f.Err)
	}
	return fmt.Errorf("%w: %w", domainerrors.ErrCompensationPending, errors.Join(errs...))
}

// NewSaga starts an empty saga
func NewSaga(name string) *Saga {
	return &Saga{name: name}
}

// Completed records step as done. A non-nil compensate is owed if a later step fails.
func (s *Saga) Completed(step string, compensate func(ctx context.Context) error) {
	s.completed = append(s.completed, step)
	if compensate != nil {
		s.compensations = append(s.compensations, sagaCompensation{step: step, fn: compensate})
	}
}

// Steps returns the names of completed steps in order
func (s *Saga) Steps() []string {
	return append([]string(nil), s.completed...)
}

// Compensate runs owed compensations in reverse order. It never stops early:
// every compensation is attempted and each failure is recorded.
func (s *Saga) Compensate(ctx context.Context) SagaResult {
	result := SagaResult{Saga: s.name, Completed: s.Steps()}
	for i := len(s.compensations) - 1; i >= 0; i-- {
		c := s.compensations[i]
		if err := c.fn(ctx); err != nil {
			result.Failures = append(result.Failures, CompensationFailure{Step: c.step, Err: err})
			continue
		}
		result.Compensated = append(result.Compensated, c.step)
	}
	s.compensations = nil
	return result
}
