package mfaflow

import (
	"errors"
	"fmt"
	"sync"
)

type PanelOpts struct {
	Provider Provider

	// OnCleanupError receives failures removing abandoned factors when
	// an enrollment flow opened by this panel is closed
	OnCleanupError func(err error)
}

// Panel manages the user's list of enrolled factors: listing them,
// starting new enrollments, removing factors, and cleaning up
// abandoned unverified ones. The listing is refreshed after every
// mutation so the panel never renders stale state.
type Panel struct {
	provider       Provider
	onCleanupError func(error)

	mu      sync.Mutex
	factors []Factor
}

func NewPanel(opts PanelOpts) *Panel {
	return &Panel{
		provider:       opts.Provider,
		onCleanupError: opts.OnCleanupError,
	}
}

// Refresh reloads the factor listing from the controller.
func (p *Panel) Refresh() error {
	factors, err := p.provider.ListFactors()
	if err != nil {
		return fmt.Errorf("failed to list factors: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.factors = factors
	return nil
}

// Factors returns the most recently loaded listing.
func (p *Panel) Factors() []Factor {
	p.mu.Lock()
	defer p.mu.Unlock()
	factors := make([]Factor, len(p.factors))
	copy(factors, p.factors)
	return factors
}

// VerifiedCount returns how many of the loaded factors are verified.
func (p *Panel) VerifiedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	for _, factor := range p.factors {
		if factor.IsVerified {
			count++
		}
	}
	return count
}

// BeginEnrollment starts an enrollment flow for a new factor. When
// the user already has the maximum number of verified factors the
// panel refuses locally, without the controller being asked to issue
// a secret that could never be verified. Unverified leftovers from
// abandoned enrollments are purged first, best effort, so they never
// accumulate.
func (p *Panel) BeginEnrollment(name *string) (*EnrollmentFlow, error) {
	if err := p.Refresh(); err != nil {
		return nil, err
	}
	if p.VerifiedCount() >= MaxVerifiedFactors {
		return nil, ErrorFactorLimitReached
	}
	p.RemoveUnverified()
	flow := NewEnrollmentFlow(EnrollmentFlowOpts{
		Provider: p.provider,
		Name:     name,
		OnEnrolled: func(factorId string) {
			p.Refresh()
		},
		OnCleanupError: p.onCleanupError,
	})
	return flow, nil
}

// Remove unenrolls the identified factor and refreshes the listing.
func (p *Panel) Remove(factorId string) error {
	if err := p.provider.Unenroll(factorId); err != nil {
		return fmt.Errorf("failed to remove factor[%s]: %w", factorId, err)
	}
	return p.Refresh()
}

// RemoveUnverified removes every unverified factor sequentially,
// carrying on past individual failures, and returns how many were
// removed alongside any errors encountered. The listing is refreshed
// once at the end regardless of outcome.
func (p *Panel) RemoveUnverified() (int, error) {
	if err := p.Refresh(); err != nil {
		return 0, err
	}
	removed := 0
	var errs []error
	for _, factor := range p.Factors() {
		if factor.IsVerified {
			continue
		}
		if err := p.provider.Unenroll(factor.Id); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove factor[%s]: %w", factor.Id, err))
			continue
		}
		removed++
	}
	if err := p.Refresh(); err != nil {
		errs = append(errs, err)
	}
	return removed, errors.Join(errs...)
}
