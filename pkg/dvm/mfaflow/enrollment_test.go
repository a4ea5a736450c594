package mfaflow

import (
	"errors"
	"testing"
)

func TestEnrollmentFlowStartRequestsOneSecret(t *testing.T) {
	provider := newFakeProvider()
	flow := NewEnrollmentFlow(EnrollmentFlowOpts{Provider: provider})

	first, err := flow.Start()
	if err != nil {
		t.Fatalf("expected no error starting the flow, got: %s", err)
	}
	if flow.State() != EnrollmentStateAwaitingCode {
		t.Errorf("expected flow to await a code after starting, got state: %s", flow.State())
	}
	second, err := flow.Start()
	if err != nil {
		t.Fatalf("expected no error starting the flow again, got: %s", err)
	}
	if first.FactorId != second.FactorId {
		t.Errorf("expected repeated starts to return the same enrollment")
	}
	if provider.counters()["enroll"] != 1 {
		t.Errorf("expected exactly one enroll call, got: %d", provider.counters()["enroll"])
	}
}

func TestEnrollmentFlowInputFiltersToSixDigits(t *testing.T) {
	provider := newFakeProvider()
	flow := NewEnrollmentFlow(EnrollmentFlowOpts{Provider: provider})
	if _, err := flow.Start(); err != nil {
		t.Fatalf("expected no error starting the flow, got: %s", err)
	}

	code, err := flow.Input("1a2-b3")
	if err != nil {
		t.Fatalf("expected no error for a partial code, got: %s", err)
	}
	if code != "123" {
		t.Errorf("expected non-digits to be stripped, got: %s", code)
	}
	if provider.counters()["verifyEnrollment"] != 0 {
		t.Errorf("expected no submission before six digits are present")
	}

	code, err = flow.Input(" 12 34 56 789 ")
	if err != nil {
		t.Fatalf("expected the truncated code to verify, got: %s", err)
	}
	if code != "123456" {
		t.Errorf("expected the code to be truncated to six digits, got: %s", code)
	}
	if provider.counters()["verifyEnrollment"] != 1 {
		t.Errorf("expected exactly one submission at six digits, got: %d", provider.counters()["verifyEnrollment"])
	}
}

func TestEnrollmentFlowVerifiedBeforeCallback(t *testing.T) {
	provider := newFakeProvider()
	verifiedAtCallback := false
	var flow *EnrollmentFlow
	flow = NewEnrollmentFlow(EnrollmentFlowOpts{
		Provider: provider,
		OnEnrolled: func(factorId string) {
			verifiedAtCallback = flow.IsVerified()
		},
	})
	if _, err := flow.Start(); err != nil {
		t.Fatalf("expected no error starting the flow, got: %s", err)
	}
	if _, err := flow.Input("123456"); err != nil {
		t.Fatalf("expected the code to verify, got: %s", err)
	}
	if !verifiedAtCallback {
		t.Errorf("expected the flow to report verified by the time the callback fires")
	}
	if flow.State() != EnrollmentStateVerified {
		t.Errorf("expected the flow to end verified, got state: %s", flow.State())
	}
}

func TestEnrollmentFlowRetriesAfterBadCode(t *testing.T) {
	provider := newFakeProvider()
	flow := NewEnrollmentFlow(EnrollmentFlowOpts{Provider: provider})
	if _, err := flow.Start(); err != nil {
		t.Fatalf("expected no error starting the flow, got: %s", err)
	}
	code, err := flow.Input("000000")
	if err == nil {
		t.Fatalf("expected a wrong code to be rejected")
	}
	if code != "000000" {
		t.Errorf("expected the rejected code to be kept for the user to edit, got: %s", code)
	}
	if flow.State() != EnrollmentStateAwaitingCode {
		t.Errorf("expected the flow to keep awaiting a code after a rejection, got state: %s", flow.State())
	}
	if _, err := flow.Input("123456"); err != nil {
		t.Fatalf("expected the correct code to verify after a rejection, got: %s", err)
	}
}

func TestEnrollmentFlowCancelRemovesPendingFactor(t *testing.T) {
	provider := newFakeProvider()
	flow := NewEnrollmentFlow(EnrollmentFlowOpts{Provider: provider})
	if _, err := flow.Start(); err != nil {
		t.Fatalf("expected no error starting the flow, got: %s", err)
	}
	if err := flow.Cancel(); err != nil {
		t.Fatalf("expected no error cancelling the flow, got: %s", err)
	}
	if provider.counters()["unenroll"] != 1 {
		t.Errorf("expected the pending factor to be removed on cancel, got %d unenroll calls", provider.counters()["unenroll"])
	}
	// a close after a cancel must not remove anything again
	flow.Close()
	if provider.counters()["unenroll"] != 1 {
		t.Errorf("expected at most one unenroll call, got: %d", provider.counters()["unenroll"])
	}
}

func TestEnrollmentFlowCloseRemovesUnverifiedFactor(t *testing.T) {
	provider := newFakeProvider()
	flow := NewEnrollmentFlow(EnrollmentFlowOpts{Provider: provider})
	if _, err := flow.Start(); err != nil {
		t.Fatalf("expected no error starting the flow, got: %s", err)
	}
	flow.Close()
	if provider.counters()["unenroll"] != 1 {
		t.Errorf("expected an abandoned flow to remove its pending factor, got %d unenroll calls", provider.counters()["unenroll"])
	}
}

func TestEnrollmentFlowCloseKeepsVerifiedFactor(t *testing.T) {
	provider := newFakeProvider()
	flow := NewEnrollmentFlow(EnrollmentFlowOpts{Provider: provider})
	if _, err := flow.Start(); err != nil {
		t.Fatalf("expected no error starting the flow, got: %s", err)
	}
	if _, err := flow.Input("123456"); err != nil {
		t.Fatalf("expected the code to verify, got: %s", err)
	}
	flow.Close()
	if provider.counters()["unenroll"] != 0 {
		t.Errorf("expected a verified factor to survive the flow closing, got %d unenroll calls", provider.counters()["unenroll"])
	}
}

func TestEnrollmentFlowCloseReportsCleanupFailure(t *testing.T) {
	provider := newFakeProvider()
	provider.unenrollErr = errors.New("controller unreachable")
	var reported error
	flow := NewEnrollmentFlow(EnrollmentFlowOpts{
		Provider:       provider,
		OnCleanupError: func(err error) { reported = err },
	})
	if _, err := flow.Start(); err != nil {
		t.Fatalf("expected no error starting the flow, got: %s", err)
	}
	flow.Close()
	if !errors.Is(reported, provider.unenrollErr) {
		t.Errorf("expected the cleanup failure to be surfaced, got: %v", reported)
	}
}

func TestEnrollmentFlowCloseWithoutStartIsNoop(t *testing.T) {
	provider := newFakeProvider()
	flow := NewEnrollmentFlow(EnrollmentFlowOpts{Provider: provider})
	flow.Close()
	if provider.counters()["unenroll"] != 0 {
		t.Errorf("expected no unenroll calls before a secret was issued, got: %d", provider.counters()["unenroll"])
	}
}
