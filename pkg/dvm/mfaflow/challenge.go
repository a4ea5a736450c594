package mfaflow

import (
	"fmt"
	"sync"
	"time"
)

// DefaultSubmitDebounce is how long the challenge flow waits after the
// sixth digit before submitting, giving a paste event time to settle.
const DefaultSubmitDebounce = 100 * time.Millisecond

type ChallengeFlowOpts struct {
	Provider Provider

	// SubmitDebounce overrides DefaultSubmitDebounce when non-zero
	SubmitDebounce time.Duration

	// OnPassed is invoked once a code has been accepted and the
	// session has been lifted to AalMultiFactor
	OnPassed func(aal Aal)

	// OnError is invoked when an automatic submission fails; the flow
	// remains usable and the user may try again
	OnError func(err error)
}

// ChallengeFlow answers a step-up prompt: it picks the user's first
// verified authenticator factor, opens a challenge against it, and
// submits the one-time code once six digits have been entered.
// Challenges are single-use on the controller so every attempt,
// successful or not, consumes one; the flow opens a fresh challenge
// after each failed attempt to allow unlimited retries.
type ChallengeFlow struct {
	provider Provider
	debounce time.Duration
	onPassed func(Aal)
	onError  func(error)

	mu        sync.Mutex
	challenge *Challenge
	code      string
	timer     *time.Timer
	passed    bool
}

func NewChallengeFlow(opts ChallengeFlowOpts) *ChallengeFlow {
	debounce := opts.SubmitDebounce
	if debounce <= 0 {
		debounce = DefaultSubmitDebounce
	}
	return &ChallengeFlow{
		provider: opts.Provider,
		debounce: debounce,
		onPassed: opts.OnPassed,
		onError:  opts.OnError,
	}
}

// Start opens a challenge against the user's first verified factor.
// A user with no verified factors cannot pass a step-up prompt, so
// that case fails immediately rather than presenting a code entry
// that can never succeed.
func (f *ChallengeFlow) Start() (*Challenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	factors, err := f.provider.ListFactors()
	if err != nil {
		return nil, fmt.Errorf("failed to list factors: %w", err)
	}
	hasVerifiedFactor := false
	for _, factor := range factors {
		if factor.IsVerified {
			hasVerifiedFactor = true
			break
		}
	}
	if !hasVerifiedFactor {
		return nil, ErrorNoFactorsEnrolled
	}
	return f.openChallenge()
}

// openChallenge asks the controller for a challenge, letting it pick
// the first verified factor. Callers must hold f.mu.
func (f *ChallengeFlow) openChallenge() (*Challenge, error) {
	challenge, err := f.provider.CreateChallenge(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	f.challenge = challenge
	return challenge, nil
}

// Input accepts whatever the user typed, keeps only the digits, and
// schedules a submission once exactly six digits have been captured.
// The submission is debounced so that a paste followed by a keystroke
// does not fire twice.
func (f *ChallengeFlow) Input(text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.challenge == nil {
		return "", ErrorNoChallenge
	}
	if f.passed {
		return f.code, ErrorFlowClosed
	}
	f.code = filterDigits(text)
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	if len(f.code) < TotpCodeLength {
		return f.code, nil
	}
	code := f.code
	f.timer = time.AfterFunc(f.debounce, func() {
		aal, err := f.Submit(code)
		if err != nil {
			if f.onError != nil {
				f.onError(err)
			}
			return
		}
		if f.onPassed != nil {
			f.onPassed(*aal)
		}
	})
	return f.code, nil
}

// Submit sends the given code against the current challenge. On
// failure the consumed challenge is replaced with a fresh one so the
// user can try again with their next code; the entered code is kept
// so nothing the user typed is lost.
func (f *ChallengeFlow) Submit(code string) (*Aal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.challenge == nil {
		return nil, ErrorNoChallenge
	}
	if f.passed {
		return nil, ErrorFlowClosed
	}
	aal, err := f.provider.VerifyChallenge(f.challenge.Id, code)
	if err != nil {
		if _, openErr := f.openChallenge(); openErr != nil {
			return nil, fmt.Errorf("failed to verify challenge and failed to open a new one: %w", openErr)
		}
		return nil, fmt.Errorf("failed to verify challenge: %w", err)
	}
	f.passed = true
	return aal, nil
}

// Close stops any pending submission.
func (f *ChallengeFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *ChallengeFlow) IsPassed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.passed
}
