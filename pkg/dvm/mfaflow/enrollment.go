package mfaflow

import (
	"fmt"
	"sync"
)

// Enrollment flow states.
const (
	EnrollmentStateIdle         = "idle"
	EnrollmentStateAwaitingCode = "awaiting_code"
	EnrollmentStateVerified     = "verified"
	EnrollmentStateCancelled    = "cancelled"
)

type EnrollmentFlowOpts struct {
	Provider Provider

	// Name is an optional label for the new factor
	Name *string

	// OnEnrolled when set is invoked after a factor has been verified
	OnEnrolled func(factorId string)

	// OnCleanupError receives failures removing an abandoned factor
	// when the flow is closed, callers typically log them
	OnCleanupError func(err error)
}

// EnrollmentFlow walks a user through adding an authenticator app:
// request a secret once, show it, then verify the first code the
// user's app produces. An abandoned flow removes the half-enrolled
// factor so it never counts against the user's factor limit.
type EnrollmentFlow struct {
	provider       Provider
	name           *string
	onEnrolled     func(string)
	onCleanupError func(error)

	mu         sync.Mutex
	state      string
	enrollment *Enrollment
	code       string
	verified   bool
	handled    bool
	unenrolled bool
}

func NewEnrollmentFlow(opts EnrollmentFlowOpts) *EnrollmentFlow {
	return &EnrollmentFlow{
		provider:       opts.Provider,
		name:           opts.Name,
		onEnrolled:     opts.OnEnrolled,
		onCleanupError: opts.OnCleanupError,
		state:          EnrollmentStateIdle,
	}
}

// Start requests a new secret from the controller and moves the flow
// into the awaiting-code state. Calling Start again returns the
// enrollment already in progress instead of requesting another
// secret.
func (f *EnrollmentFlow) Start() (*Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == EnrollmentStateCancelled {
		return nil, ErrorFlowClosed
	}
	if f.enrollment != nil {
		return f.enrollment, nil
	}
	enrollment, err := f.provider.Enroll(f.name)
	if err != nil {
		return nil, fmt.Errorf("failed to start enrollment: %w", err)
	}
	f.enrollment = enrollment
	f.state = EnrollmentStateAwaitingCode
	return enrollment, nil
}

// Input accepts whatever the user typed, keeps only the digits, and
// submits the code for verification once exactly six digits have been
// captured. It returns the sanitised code currently held by the flow.
func (f *EnrollmentFlow) Input(text string) (string, error) {
	f.mu.Lock()
	if f.enrollment == nil {
		f.mu.Unlock()
		return "", ErrorNoEnrollment
	}
	if f.state != EnrollmentStateAwaitingCode {
		code := f.code
		f.mu.Unlock()
		return code, ErrorFlowClosed
	}
	f.code = filterDigits(text)
	if len(f.code) < TotpCodeLength {
		code := f.code
		f.mu.Unlock()
		return code, nil
	}
	if err := f.provider.VerifyEnrollment(f.enrollment.FactorId, f.code); err != nil {
		// the entered code is kept so a failed attempt loses nothing
		code := f.code
		f.mu.Unlock()
		return code, fmt.Errorf("failed to verify enrollment: %w", err)
	}
	f.verified = true
	f.handled = true
	f.state = EnrollmentStateVerified
	factorId := f.enrollment.FactorId
	code := f.code
	f.mu.Unlock()
	// the flow is marked verified before the callback fires so that
	// observers never see a verified callback on an unverified flow
	if f.onEnrolled != nil {
		f.onEnrolled(factorId)
	}
	return code, nil
}

// Cancel abandons the flow and removes the half-enrolled factor if a
// secret was already issued. Removal is best-effort since the factor
// is unverified and unusable either way.
func (f *EnrollmentFlow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.handled {
		return nil
	}
	f.handled = true
	f.state = EnrollmentStateCancelled
	return f.unenroll()
}

// Close releases the flow. If a secret was issued but never verified
// and nothing else dealt with it, the dangling factor is removed;
// removal failures are reported through OnCleanupError.
func (f *EnrollmentFlow) Close() {
	f.mu.Lock()
	if f.handled || f.verified {
		f.mu.Unlock()
		return
	}
	f.handled = true
	f.state = EnrollmentStateCancelled
	err := f.unenroll()
	f.mu.Unlock()
	if err != nil && f.onCleanupError != nil {
		f.onCleanupError(err)
	}
}

// unenroll removes the pending factor at most once. Callers must hold
// f.mu.
func (f *EnrollmentFlow) unenroll() error {
	if f.enrollment == nil || f.unenrolled {
		return nil
	}
	f.unenrolled = true
	if err := f.provider.Unenroll(f.enrollment.FactorId); err != nil {
		return fmt.Errorf("failed to remove pending factor: %w", err)
	}
	return nil
}

func (f *EnrollmentFlow) State() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *EnrollmentFlow) IsVerified() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verified
}
