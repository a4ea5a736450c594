package mfaflow

import (
	"testing"
	"time"
)

func TestChallengeFlowRequiresVerifiedFactor(t *testing.T) {
	provider := newFakeProvider()
	provider.addUnverifiedFactor("factor-a")
	flow := NewChallengeFlow(ChallengeFlowOpts{Provider: provider})
	if _, err := flow.Start(); err != ErrorNoFactorsEnrolled {
		t.Errorf("expected ErrorNoFactorsEnrolled without verified factors, got: %s", err)
	}
	if provider.counters()["challenge"] != 0 {
		t.Errorf("expected no challenge to be opened without verified factors")
	}
}

func TestChallengeFlowPicksFirstVerifiedFactor(t *testing.T) {
	provider := newFakeProvider()
	provider.addUnverifiedFactor("factor-a")
	provider.addVerifiedFactor("factor-b")
	provider.addVerifiedFactor("factor-c")
	flow := NewChallengeFlow(ChallengeFlowOpts{Provider: provider})
	challenge, err := flow.Start()
	if err != nil {
		t.Fatalf("expected no error starting the flow, got: %s", err)
	}
	if challenge.FactorId != "factor-b" {
		t.Errorf("expected the first verified factor to be challenged, got: %s", challenge.FactorId)
	}
}

func TestChallengeFlowDebouncedAutoSubmit(t *testing.T) {
	provider := newFakeProvider()
	provider.addVerifiedFactor("factor-a")
	passed := make(chan Aal, 1)
	flow := NewChallengeFlow(ChallengeFlowOpts{
		Provider:       provider,
		SubmitDebounce: time.Millisecond,
		OnPassed: func(aal Aal) {
			passed <- aal
		},
	})
	if _, err := flow.Start(); err != nil {
		t.Fatalf("expected no error starting the flow, got: %s", err)
	}
	if _, err := flow.Input("12345"); err != nil {
		t.Fatalf("expected no error for a partial code, got: %s", err)
	}
	if provider.counters()["verifyChallenge"] != 0 {
		t.Errorf("expected no submission before six digits are present")
	}
	if _, err := flow.Input("123456"); err != nil {
		t.Fatalf("expected no error entering the full code, got: %s", err)
	}
	select {
	case aal := <-passed:
		if aal.CurrentLevel != AalMultiFactor {
			t.Errorf("expected the session to be lifted to %s, got: %s", AalMultiFactor, aal.CurrentLevel)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected the code to be submitted automatically")
	}
	if !flow.IsPassed() {
		t.Errorf("expected the flow to report passed")
	}
}

func TestChallengeFlowRetriesWithFreshChallenge(t *testing.T) {
	provider := newFakeProvider()
	provider.addVerifiedFactor("factor-a")
	flow := NewChallengeFlow(ChallengeFlowOpts{Provider: provider})
	if _, err := flow.Start(); err != nil {
		t.Fatalf("expected no error starting the flow, got: %s", err)
	}
	if _, err := flow.Submit("000000"); err == nil {
		t.Fatalf("expected a wrong code to be rejected")
	}
	// the first challenge was consumed by the failed attempt so the
	// retry must run against a newly opened one
	if provider.counters()["challenge"] != 2 {
		t.Errorf("expected a fresh challenge after a failed attempt, got %d challenge calls", provider.counters()["challenge"])
	}
	aal, err := flow.Submit("123456")
	if err != nil {
		t.Fatalf("expected the retry to pass, got: %s", err)
	}
	if aal.CurrentLevel != AalMultiFactor {
		t.Errorf("expected the session to be lifted to %s, got: %s", AalMultiFactor, aal.CurrentLevel)
	}
}

func TestChallengeFlowKeepsCodeAfterFailedSubmit(t *testing.T) {
	provider := newFakeProvider()
	provider.addVerifiedFactor("factor-a")
	flow := NewChallengeFlow(ChallengeFlowOpts{
		Provider:       provider,
		SubmitDebounce: time.Hour,
	})
	if _, err := flow.Start(); err != nil {
		t.Fatalf("expected no error starting the flow, got: %s", err)
	}
	if _, err := flow.Input("000000"); err != nil {
		t.Fatalf("expected no error entering a code, got: %s", err)
	}
	if _, err := flow.Submit("000000"); err == nil {
		t.Fatalf("expected a wrong code to be rejected")
	}
	flow.mu.Lock()
	held := flow.code
	flow.mu.Unlock()
	if held != "000000" {
		t.Errorf("expected the rejected code to be kept for the user to edit, got: %s", held)
	}
}

func TestChallengeFlowInputWithoutStart(t *testing.T) {
	provider := newFakeProvider()
	flow := NewChallengeFlow(ChallengeFlowOpts{Provider: provider})
	if _, err := flow.Input("123456"); err != ErrorNoChallenge {
		t.Errorf("expected ErrorNoChallenge before the flow is started, got: %s", err)
	}
}

func TestChallengeFlowNewInputResetsDebounce(t *testing.T) {
	provider := newFakeProvider()
	provider.addVerifiedFactor("factor-a")
	passed := make(chan Aal, 1)
	flow := NewChallengeFlow(ChallengeFlowOpts{
		Provider:       provider,
		SubmitDebounce: 50 * time.Millisecond,
		OnPassed: func(aal Aal) {
			passed <- aal
		},
	})
	if _, err := flow.Start(); err != nil {
		t.Fatalf("expected no error starting the flow, got: %s", err)
	}
	if _, err := flow.Input("000000"); err != nil {
		t.Fatalf("expected no error entering a code, got: %s", err)
	}
	// correcting the code before the debounce fires must replace the
	// pending submission rather than submitting the stale code
	if _, err := flow.Input("123456"); err != nil {
		t.Fatalf("expected no error correcting the code, got: %s", err)
	}
	select {
	case <-passed:
	case <-time.After(time.Second):
		t.Fatalf("expected the corrected code to be submitted")
	}
	if provider.counters()["verifyChallenge"] != 1 {
		t.Errorf("expected a single submission of the corrected code, got: %d", provider.counters()["verifyChallenge"])
	}
}
